package metrics

import "time"

// DocumentOutcome enumerates per-document result categories for counters.
type DocumentOutcome string

const (
	DocumentConverted DocumentOutcome = "converted"
	DocumentSkipped   DocumentOutcome = "skipped"
	DocumentFailed    DocumentOutcome = "failed"
)

// Recorder defines observability hooks for conversion runs.
type Recorder interface {
	IncDocument(outcome DocumentOutcome)
	IncSkip(reason string)
	IncAsset(outcome string)
	ObserveDocumentDuration(d time.Duration)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocument(DocumentOutcome)           {}
func (NoopRecorder) IncSkip(string)                        {}
func (NoopRecorder) IncAsset(string)                       {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)      {}
