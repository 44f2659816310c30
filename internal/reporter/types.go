// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// Pipeline names used in InitializationSummary.
const (
	PipelineVideo  = "video"
	PipelineFrames = "frames"
)

// HardwareSummary contains hardware information.
type HardwareSummary struct {
	Hostname string
	// Accelerator is the ffmpeg -hwaccel method, empty for software decoding.
	Accelerator string
}

// InitializationSummary describes the input before processing starts.
type InitializationSummary struct {
	InputFile    string
	Pipeline     string
	ChaptersFile string
	ScenesFile   string // video pipeline only
	Duration     string
	Resolution   string
	FrameRate    string
}

// DetectionInfo describes a scene detection run about to start.
type DetectionInfo struct {
	Threshold    float64
	HWAccel      string
	DurationSecs float64
}

// ProgressSnapshot contains decoding progress information.
type ProgressSnapshot struct {
	CurrentFrame uint64
	Percent      float32
	Speed        float32
	FPS          float32
	ETA          time.Duration
}

// DetectionOutcome contains the result of a finished detection run.
type DetectionOutcome struct {
	ScenesFile string
	Elapsed    time.Duration
}

// ChaptersOutcome contains the result of writing a chapter file.
type ChaptersOutcome struct {
	ChaptersFile string
	ChapterCount int
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// StageProgress represents a generic stage update.
type StageProgress struct {
	Stage   string
	Percent float32
	Message string
	ETA     *time.Duration
}
