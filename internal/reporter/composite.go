package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) Initialization(summary InitializationSummary) {
	for _, r := range c.reporters {
		r.Initialization(summary)
	}
}

func (c *CompositeReporter) StageProgress(update StageProgress) {
	for _, r := range c.reporters {
		r.StageProgress(update)
	}
}

func (c *CompositeReporter) DetectionStarted(info DetectionInfo) {
	for _, r := range c.reporters {
		r.DetectionStarted(info)
	}
}

func (c *CompositeReporter) DetectionProgress(progress ProgressSnapshot) {
	for _, r := range c.reporters {
		r.DetectionProgress(progress)
	}
}

func (c *CompositeReporter) DetectionComplete(outcome DetectionOutcome) {
	for _, r := range c.reporters {
		r.DetectionComplete(outcome)
	}
}

func (c *CompositeReporter) ChaptersWritten(outcome ChaptersOutcome) {
	for _, r := range c.reporters {
		r.ChaptersWritten(outcome)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
