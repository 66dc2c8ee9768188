package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/store"
)

// VisitService tracks redirect traversals of short URLs.
type VisitService struct {
	store   *store.Store
	metrics metrics.Recorder
}

// NewVisitService creates a new VisitService.
func NewVisitService(st *store.Store, recorder metrics.Recorder) *VisitService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &VisitService{store: st, metrics: recorder}
}

// VisitResult is the outcome of recording one traversal.
type VisitResult struct {
	LongURL    string
	NewVisitor bool
}

// Record accounts for one traversal of a short URL by a visitor.
// The event is always appended and the total counter incremented; the
// unique counter moves only when the visitor has never hit this code
// before. Returns the destination so the caller can redirect.
func (s *VisitService) Record(code, visitorID string) (*VisitResult, error) {
	eventID := ulid.Make().String() // time-sortable event id

	longURL, newVisitor, err := s.store.RecordVisit(code, visitorID, eventID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrURLNotFound) {
			return nil, ErrURLNotFound
		}
		return nil, fmt.Errorf("record visit: %w", err)
	}

	s.metrics.IncVisitRecorded(newVisitor)

	return &VisitResult{LongURL: longURL, NewVisitor: newVisitor}, nil
}

// AssignVisitorID mints an identity for an anonymous visitor. The caller
// hands it to the client as a cookie so repeat traversals are recognized.
func (s *VisitService) AssignVisitorID() (string, error) {
	id, err := s.store.AllocateVisitorID()
	if err != nil {
		return "", fmt.Errorf("assign visitor id: %w", err)
	}
	return id, nil
}
