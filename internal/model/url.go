// Package model defines domain entities for the application.
package model

import "time"

// VisitEvent represents a single traversal of a short URL.
// Events are append-only; they are never mutated or removed.
type VisitEvent struct {
	ID        string    `json:"id"` // ULID (time-sortable)
	VisitorID string    `json:"visitor_id"`
	VisitedAt time.Time `json:"visited_at"`
}

// ShortURLRecord represents a shortened URL entity and its visit history.
//
// Invariant: UniqueVisits <= TotalVisits, and UniqueVisits never exceeds
// the number of distinct visitor IDs appearing in Visits.
type ShortURLRecord struct {
	Code         string       `json:"code"`
	LongURL      string       `json:"long_url"`
	OwnerID      string       `json:"owner_id"`
	CreatedAt    time.Time    `json:"created_at"`
	TotalVisits  int64        `json:"total_visits"`
	UniqueVisits int64        `json:"unique_visits"`
	Visits       []VisitEvent `json:"visits"`
}

// Clone returns a deep copy of the record, including its visit log.
// Store lookups hand out clones so callers can never mutate store internals.
func (r *ShortURLRecord) Clone() *ShortURLRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Visits != nil {
		c.Visits = make([]VisitEvent, len(r.Visits))
		copy(c.Visits, r.Visits)
	}
	return &c
}

// SeenVisitor reports whether the given visitor already appears in the
// record's visit log.
func (r *ShortURLRecord) SeenVisitor(visitorID string) bool {
	for _, v := range r.Visits {
		if v.VisitorID == visitorID {
			return true
		}
	}
	return false
}
