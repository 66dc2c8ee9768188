package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered         uint64 `json:"users_registered"`
	LoginSuccesses          uint64 `json:"login_successes"`
	LoginFailures           uint64 `json:"login_failures"`
	URLsCreated             uint64 `json:"urls_created"`
	URLsUpdated             uint64 `json:"urls_updated"`
	URLsDeleted             uint64 `json:"urls_deleted"`
	VisitsRecorded          uint64 `json:"visits_recorded"`
	NewVisitorVisits        uint64 `json:"new_visitor_visits"`
	RedirectDurationCount   uint64 `json:"redirect_duration_count"`
	RedirectDurationTotalNs int64  `json:"redirect_duration_total_ns"`
}

// InMemoryRecorder stores counters in memory, readable via Snapshot.
type InMemoryRecorder struct {
	usersRegistered         uint64
	loginSuccesses          uint64
	loginFailures           uint64
	urlsCreated             uint64
	urlsUpdated             uint64
	urlsDeleted             uint64
	visitsRecorded          uint64
	newVisitorVisits        uint64
	redirectDurationCount   uint64
	redirectDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:         atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:          atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:           atomic.LoadUint64(&m.loginFailures),
		URLsCreated:             atomic.LoadUint64(&m.urlsCreated),
		URLsUpdated:             atomic.LoadUint64(&m.urlsUpdated),
		URLsDeleted:             atomic.LoadUint64(&m.urlsDeleted),
		VisitsRecorded:          atomic.LoadUint64(&m.visitsRecorded),
		NewVisitorVisits:        atomic.LoadUint64(&m.newVisitorVisits),
		RedirectDurationCount:   atomic.LoadUint64(&m.redirectDurationCount),
		RedirectDurationTotalNs: atomic.LoadInt64(&m.redirectDurationTotalNs),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncURLCreated increments the URL created counter.
func (m *InMemoryRecorder) IncURLCreated() {
	atomic.AddUint64(&m.urlsCreated, 1)
}

// IncURLUpdated increments the URL updated counter.
func (m *InMemoryRecorder) IncURLUpdated() {
	atomic.AddUint64(&m.urlsUpdated, 1)
}

// IncURLDeleted increments the URL deleted counter.
func (m *InMemoryRecorder) IncURLDeleted() {
	atomic.AddUint64(&m.urlsDeleted, 1)
}

// IncVisitRecorded counts a visit, tracking new visitors separately.
func (m *InMemoryRecorder) IncVisitRecorded(newVisitor bool) {
	atomic.AddUint64(&m.visitsRecorded, 1)
	if newVisitor {
		atomic.AddUint64(&m.newVisitorVisits, 1)
	}
}

// ObserveRedirectDuration records redirect duration.
func (m *InMemoryRecorder) ObserveRedirectDuration(duration time.Duration) {
	atomic.AddUint64(&m.redirectDurationCount, 1)
	atomic.AddInt64(&m.redirectDurationTotalNs, duration.Nanoseconds())
}
