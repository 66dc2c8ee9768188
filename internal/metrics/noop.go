package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncURLCreated is a no-op.
func (n *NoopRecorder) IncURLCreated() {}

// IncURLUpdated is a no-op.
func (n *NoopRecorder) IncURLUpdated() {}

// IncURLDeleted is a no-op.
func (n *NoopRecorder) IncURLDeleted() {}

// IncVisitRecorded is a no-op.
func (n *NoopRecorder) IncVisitRecorded(newVisitor bool) {}

// ObserveRedirectDuration is a no-op.
func (n *NoopRecorder) ObserveRedirectDuration(duration time.Duration) {}
