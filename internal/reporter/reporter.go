package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	Initialization(summary InitializationSummary)
	StageProgress(update StageProgress)
	DetectionStarted(info DetectionInfo)
	DetectionProgress(progress ProgressSnapshot)
	DetectionComplete(outcome DetectionOutcome)
	ChaptersWritten(outcome ChaptersOutcome)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)             {}
func (NullReporter) Initialization(InitializationSummary) {}
func (NullReporter) StageProgress(StageProgress)          {}
func (NullReporter) DetectionStarted(DetectionInfo)       {}
func (NullReporter) DetectionProgress(ProgressSnapshot)   {}
func (NullReporter) DetectionComplete(DetectionOutcome)   {}
func (NullReporter) ChaptersWritten(ChaptersOutcome)      {}
func (NullReporter) Warning(string)                       {}
func (NullReporter) Error(ReporterError)                  {}
func (NullReporter) OperationComplete(string)             {}
func (NullReporter) Verbose(string)                       {}
