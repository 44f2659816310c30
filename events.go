package scenechapters

import (
	"time"

	"github.com/five82/scenechapters/internal/reporter"
)

// Reporter receives every progress update of a run. Implement it to drive a
// custom UI, or use WithEventHandler for a smaller set of typed events.
type Reporter = reporter.Reporter

// Types passed to Reporter methods.
type (
	HardwareSummary       = reporter.HardwareSummary
	InitializationSummary = reporter.InitializationSummary
	StageProgress         = reporter.StageProgress
	DetectionInfo         = reporter.DetectionInfo
	ProgressSnapshot      = reporter.ProgressSnapshot
	DetectionOutcome      = reporter.DetectionOutcome
	ChaptersOutcome       = reporter.ChaptersOutcome
	ReporterError         = reporter.ReporterError
)

// Event types.
const (
	EventTypeDetectionProgress = "detection_progress"
	EventTypeChaptersWritten   = "chapters_written"
	EventTypeWarning           = "warning"
	EventTypeError             = "error"
)

// Event is implemented by every event passed to an EventHandler.
type Event interface {
	Type() string
}

// EventHandler receives events. A returned error is ignored; it exists so
// handlers can share signatures with other event sinks.
type EventHandler func(Event) error

// BaseEvent carries the fields common to all events.
type BaseEvent struct {
	EventType string `json:"type"`
	Time      int64  `json:"timestamp"`
}

// Type returns the event type.
func (e BaseEvent) Type() string { return e.EventType }

// NewTimestamp returns the current Unix time in seconds.
func NewTimestamp() int64 {
	return time.Now().Unix()
}

// DetectionProgressEvent reports ffmpeg decoding progress.
type DetectionProgressEvent struct {
	BaseEvent
	CurrentFrame uint64  `json:"current_frame"`
	Percent      float32 `json:"percent"`
	Speed        float32 `json:"speed"`
	FPS          float32 `json:"fps"`
	ETASeconds   int64   `json:"eta_seconds"`
}

// ChaptersWrittenEvent reports a finished chapter file.
type ChaptersWrittenEvent struct {
	BaseEvent
	ChaptersFile string `json:"chapters_file"`
	ChapterCount int    `json:"chapter_count"`
}

// WarningEvent reports a non-fatal problem.
type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// ErrorEvent reports a fatal problem.
type ErrorEvent struct {
	BaseEvent
	Title      string `json:"title"`
	Message    string `json:"message"`
	Context    string `json:"context,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Hardware(reporter.HardwareSummary)             {}
func (r *eventReporter) Initialization(reporter.InitializationSummary) {}
func (r *eventReporter) StageProgress(reporter.StageProgress)          {}
func (r *eventReporter) DetectionStarted(reporter.DetectionInfo)       {}
func (r *eventReporter) DetectionComplete(reporter.DetectionOutcome)   {}
func (r *eventReporter) OperationComplete(string)                      {}
func (r *eventReporter) Verbose(string)                                {}

func (r *eventReporter) DetectionProgress(p reporter.ProgressSnapshot) {
	_ = r.handler(DetectionProgressEvent{
		BaseEvent:    BaseEvent{EventType: EventTypeDetectionProgress, Time: NewTimestamp()},
		CurrentFrame: p.CurrentFrame,
		Percent:      p.Percent,
		Speed:        p.Speed,
		FPS:          p.FPS,
		ETASeconds:   int64(p.ETA.Seconds()),
	})
}

func (r *eventReporter) ChaptersWritten(o reporter.ChaptersOutcome) {
	_ = r.handler(ChaptersWrittenEvent{
		BaseEvent:    BaseEvent{EventType: EventTypeChaptersWritten, Time: NewTimestamp()},
		ChaptersFile: o.ChaptersFile,
		ChapterCount: o.ChapterCount,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}
