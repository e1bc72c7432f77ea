package analyzer

// ProgressReporter receives callbacks during a batch analysis run.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnAnalysisStart is called before parsing begins.
	OnAnalysisStart(totalFiles int)

	// OnFileAnalyzed is called after each file is parsed and trimmed.
	OnFileAnalyzed(fileName string)

	// OnAnalysisComplete is called when the whole batch finishes.
	OnAnalysisComplete(stats *Stats)
}

// NoOpProgressReporter discards all progress callbacks.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                  {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (n *NoOpProgressReporter) OnAnalysisStart(totalFiles int)     {}
func (n *NoOpProgressReporter) OnFileAnalyzed(fileName string)     {}
func (n *NoOpProgressReporter) OnAnalysisComplete(stats *Stats)    {}
