// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User directory metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	// URL registry metrics
	IncURLCreated()
	IncURLUpdated()
	IncURLDeleted()

	// Visit tracking metrics
	IncVisitRecorded(newVisitor bool)
	ObserveRedirectDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
