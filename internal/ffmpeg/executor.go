package ffmpeg

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/five82/scenechapters/internal/errors"
	"github.com/five82/scenechapters/internal/logging"
	"github.com/five82/scenechapters/internal/util"
)

// stderrTailLines is how many trailing stderr lines are kept for error messages.
const stderrTailLines = 20

// Progress represents decoding progress information.
type Progress struct {
	CurrentFrame uint64
	Percent      float32
	Speed        float32
	FPS          float32
	ETA          time.Duration
	ElapsedSecs  float64
}

// ProgressCallback is called with progress updates while ffmpeg runs.
type ProgressCallback func(Progress)

// RunOptions configures a single ffmpeg invocation.
type RunOptions struct {
	// Path is the ffmpeg executable.
	Path string
	Args []string
	// Duration of the input in seconds, used for percent and ETA. Zero if unknown.
	Duration   float64
	OnProgress ProgressCallback
	// Stderr, if set, receives ffmpeg's raw stderr.
	Stderr io.Writer
}

var timeRegex = regexp.MustCompile(`time=(\d{2}:\d{2}:\d{2}\.?\d*)`)

// Run executes ffmpeg and blocks until it exits. A non-zero exit status is
// returned as a command error carrying the tail of stderr.
func Run(ctx context.Context, opts RunOptions) error {
	cmd := exec.CommandContext(ctx, opts.Path, opts.Args...)
	logging.Debug("running ffmpeg", "path", opts.Path, "args", strings.Join(opts.Args, " "))

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.NewCommandStartError(opts.Path, err)
	}

	if err := cmd.Start(); err != nil {
		return errors.NewCommandStartError(opts.Path, err)
	}

	var src io.Reader = stderr
	if opts.Stderr != nil {
		src = io.TeeReader(stderr, opts.Stderr)
	}
	tail := newLineTail(stderrTailLines)
	parseProgress(src, tail, opts.Duration, opts.OnProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.WrapExecError(opts.Path, err, tail.String())
	}

	return nil
}

// parseProgress reads FFmpeg stderr, records it in tail and parses progress updates.
func parseProgress(stderr io.Reader, tail *lineTail, duration float64, callback ProgressCallback) {
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	flush := func() {
		line := lineBuf.String()
		lineBuf.Reset()
		if strings.TrimSpace(line) == "" {
			return
		}

		if strings.Contains(line, "frame=") && strings.Contains(line, "time=") {
			if callback != nil {
				callback(*parseProgressLine(line, duration))
			}
			return
		}
		tail.Add(line)
	}

	for {
		b, err := reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				logging.Warn("error reading ffmpeg stderr", "error", err)
			}
			flush()
			return
		}

		// Progress lines end with \r, log lines with \n
		if b == '\r' || b == '\n' {
			flush()
		} else {
			lineBuf.WriteByte(b)
		}
	}
}

// parseProgressLine extracts progress information from an FFmpeg progress line.
func parseProgressLine(line string, duration float64) *Progress {
	var elapsedSecs float64
	if matches := timeRegex.FindStringSubmatch(line); len(matches) >= 2 {
		if secs, ok := util.ParseFFmpegTime(matches[1]); ok {
			elapsedSecs = secs
		}
	}

	var frame uint64
	if v, ok := fieldValue(line, "frame="); ok {
		if f, err := strconv.ParseUint(v, 10, 64); err == nil {
			frame = f
		}
	}

	var fps float32
	if v, ok := fieldValue(line, "fps="); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			fps = float32(f)
		}
	}

	var speed float32
	if v, ok := fieldValue(line, "speed="); ok {
		if s, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 32); err == nil {
			speed = float32(s)
		}
	}

	var percent float32
	if duration > 0 {
		percent = float32((elapsedSecs / duration) * 100)
		if percent > 100 {
			percent = 100
		}
	}

	var eta time.Duration
	if speed > 0 && duration > 0 && elapsedSecs < duration {
		etaSeconds := (duration - elapsedSecs) / float64(speed)
		eta = time.Duration(etaSeconds * float64(time.Second))
	}

	return &Progress{
		CurrentFrame: frame,
		Percent:      percent,
		Speed:        speed,
		FPS:          fps,
		ETA:          eta,
		ElapsedSecs:  elapsedSecs,
	}
}

// fieldValue returns the token following key, skipping the padding ffmpeg
// inserts after '='.
func fieldValue(line, key string) (string, bool) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return "", false
	}
	fields := strings.Fields(line[idx+len(key):])
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// lineTail keeps the last n lines written to it.
type lineTail struct {
	lines []string
	max   int
}

func newLineTail(n int) *lineTail {
	return &lineTail{max: n}
}

func (t *lineTail) Add(line string) {
	if len(t.lines) == t.max {
		t.lines = t.lines[1:]
	}
	t.lines = append(t.lines, line)
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "\n")
}
