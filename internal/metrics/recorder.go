package metrics

import "time"

// OutcomeLabel enumerates run outcomes for counters.
type OutcomeLabel string

const (
	OutcomePassed OutcomeLabel = "passed"
	OutcomeFailed OutcomeLabel = "failed"
)

// Recorder defines observability hooks for a link check run. All methods must
// be safe for nil receivers when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	IncFilesScanned()
	IncUnreadableFiles()
	IncReferences(kind string)
	IncBrokenReferences(kind string)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFilesScanned()                {}
func (NoopRecorder) IncUnreadableFiles()             {}
func (NoopRecorder) IncReferences(string)            {}
func (NoopRecorder) IncBrokenReferences(string)      {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)      {}
