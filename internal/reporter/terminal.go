package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/five82/scenechapters/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu          sync.Mutex
	out         io.Writer
	errOut      io.Writer
	interactive bool
	verbose     bool
	progress    *progressbar.ProgressBar
	maxPercent  float32
	lastStage   string
	cyan        *color.Color
	green       *color.Color
	yellow      *color.Color
	red         *color.Color
	magenta     *color.Color
	faint       *color.Color
	bold        *color.Color
}

// NewTerminalReporter creates a terminal reporter on stdout and stderr.
// The progress bar is only drawn when stderr is a terminal.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriters(os.Stdout, os.Stderr, IsTerminal(os.Stderr), verbose)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewTerminalReporterWithWriters creates a terminal reporter with custom writers.
func NewTerminalReporterWithWriters(out, errOut io.Writer, interactive, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:         out,
		errOut:      errOut,
		interactive: interactive,
		verbose:     verbose,
		cyan:        color.New(color.FgCyan, color.Bold),
		green:       color.New(color.FgGreen),
		yellow:      color.New(color.FgYellow, color.Bold),
		red:         color.New(color.FgRed, color.Bold),
		magenta:     color.New(color.FgMagenta),
		faint:       color.New(color.Faint),
		bold:        color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) section(title string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	accel := summary.Accelerator
	if accel == "" {
		accel = r.faint.Sprint("none (software decoding)")
	}
	r.section("HARDWARE")
	r.printLabel(12, "Hostname:", summary.Hostname)
	r.printLabel(12, "Decoding:", accel)
}

func (r *TerminalReporter) Initialization(summary InitializationSummary) {
	if summary.Pipeline == PipelineFrames {
		r.section("FRAME LIST")
	} else {
		r.section("VIDEO")
	}
	r.printLabel(12, "File:", summary.InputFile)
	if summary.Duration != "" {
		r.printLabel(12, "Duration:", summary.Duration)
	}
	if summary.Resolution != "" {
		r.printLabel(12, "Resolution:", summary.Resolution)
	}
	if summary.FrameRate != "" {
		r.printLabel(12, "Frame rate:", summary.FrameRate)
	}
	if summary.ScenesFile != "" {
		r.printLabel(12, "Scene log:", summary.ScenesFile)
	}
	r.printLabel(12, "Chapters:", summary.ChaptersFile)
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.mu.Lock()
	newStage := r.lastStage != update.Stage
	r.lastStage = update.Stage
	r.mu.Unlock()

	if newStage {
		r.section(strings.ToUpper(update.Stage))
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) DetectionStarted(info DetectionInfo) {
	r.finishProgress()

	r.section("SCENE DETECTION")
	r.printLabel(12, "Threshold:", fmt.Sprintf("%g", info.Threshold))
	if info.HWAccel != "" {
		r.printLabel(12, "Hwaccel:", info.HWAccel)
	}

	if !r.interactive {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Detecting [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) DetectionProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := progress.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}

	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	desc := fmt.Sprintf("frame %d, speed %.1fx, fps %.1f, eta %s",
		progress.CurrentFrame, progress.Speed, progress.FPS,
		util.FormatElapsed(progress.ETA))
	r.progress.Describe(desc)
}

func (r *TerminalReporter) DetectionComplete(outcome DetectionOutcome) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.out, "  %s scene log written to %s in %s\n",
		r.green.Sprint("✓"),
		r.bold.Sprint(outcome.ScenesFile),
		util.FormatElapsed(outcome.Elapsed))
}

func (r *TerminalReporter) ChaptersWritten(outcome ChaptersOutcome) {
	r.section("RESULTS")
	r.printLabel(10, "Chapters:", fmt.Sprintf("%d", outcome.ChapterCount))
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(outcome.ChaptersFile))
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()

	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint(message))
}
