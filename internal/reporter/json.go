package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs one JSON event per line (NDJSON) for machine consumers.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
	now                func() time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		lastProgressBucket: -1,
		now:                time.Now,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return r.now().Unix()
}

func (r *JSONReporter) write(v map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]any{
		"type":        "hardware",
		"hostname":    summary.Hostname,
		"accelerator": summary.Accelerator,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) Initialization(summary InitializationSummary) {
	event := map[string]any{
		"type":          "initialization",
		"input_file":    summary.InputFile,
		"pipeline":      summary.Pipeline,
		"chapters_file": summary.ChaptersFile,
		"frame_rate":    summary.FrameRate,
		"timestamp":     r.timestamp(),
	}
	if summary.ScenesFile != "" {
		event["scenes_file"] = summary.ScenesFile
	}
	if summary.Duration != "" {
		event["duration"] = summary.Duration
	}
	if summary.Resolution != "" {
		event["resolution"] = summary.Resolution
	}
	r.write(event)
}

func (r *JSONReporter) StageProgress(update StageProgress) {
	event := map[string]any{
		"type":      "stage_progress",
		"stage":     update.Stage,
		"percent":   update.Percent,
		"message":   update.Message,
		"timestamp": r.timestamp(),
	}
	if update.ETA != nil {
		event["eta_seconds"] = int64(update.ETA.Seconds())
	}
	r.write(event)
}

func (r *JSONReporter) DetectionStarted(info DetectionInfo) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()

	r.write(map[string]any{
		"type":             "detection_started",
		"threshold":        info.Threshold,
		"hwaccel":          info.HWAccel,
		"duration_seconds": info.DurationSecs,
		"timestamp":        r.timestamp(),
	})
}

// DetectionProgress emits at most one event per whole percent, plus one
// every five seconds so consumers can tell a slow run from a stalled one.
func (r *JSONReporter) DetectionProgress(progress ProgressSnapshot) {
	const minInterval = 5 * time.Second

	bucket := int(progress.Percent)
	now := r.now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	shouldEmit := bucket > r.lastProgressBucket || intervalElapsed || progress.Percent >= 99.0

	if !shouldEmit {
		r.mu.Unlock()
		return
	}

	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write(map[string]any{
		"type":          "detection_progress",
		"stage":         "detection",
		"current_frame": progress.CurrentFrame,
		"percent":       progress.Percent,
		"speed":         progress.Speed,
		"fps":           progress.FPS,
		"eta_seconds":   int64(progress.ETA.Seconds()),
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) DetectionComplete(outcome DetectionOutcome) {
	r.write(map[string]any{
		"type":            "detection_complete",
		"scenes_file":     outcome.ScenesFile,
		"elapsed_seconds": outcome.Elapsed.Seconds(),
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) ChaptersWritten(outcome ChaptersOutcome) {
	r.write(map[string]any{
		"type":          "chapters_written",
		"chapters_file": outcome.ChaptersFile,
		"chapter_count": outcome.ChapterCount,
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]any{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]any{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
