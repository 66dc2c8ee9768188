package store

import (
	"fmt"
	"time"

	"github.com/tinyapp/tinyapp/internal/model"
	"github.com/tinyapp/tinyapp/internal/policy"
	"github.com/tinyapp/tinyapp/internal/shortid"
)

// CreateURL allocates a fresh short code for longURL and records the owner.
// Returns ErrUnknownOwner if the owner ID does not resolve to a user.
func (s *Store) CreateURL(ownerID, longURL string, now time.Time) (*model.ShortURLRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ownerID]; !ok {
		return nil, ErrUnknownOwner
	}

	code, err := shortid.New(func(candidate string) bool {
		_, taken := s.urls[candidate]
		return taken
	})
	if err != nil {
		return nil, fmt.Errorf("allocate short code: %w", err)
	}

	record := &model.ShortURLRecord{
		Code:      code,
		LongURL:   longURL,
		OwnerID:   ownerID,
		CreatedAt: now.UTC(),
		Visits:    []model.VisitEvent{},
	}
	s.urls[code] = record

	return record.Clone(), nil
}

// URL retrieves a record by short code. The result is a deep copy, so
// mutating it does not touch store internals.
func (s *Store) URL(code string) (*model.ShortURLRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.urls[code]
	if !ok {
		return nil, ErrURLNotFound
	}
	return record.Clone(), nil
}

// URLsForOwner returns a snapshot of every record owned by the given user,
// keyed by short code. A user with no records gets an empty map.
func (s *Store) URLsForOwner(ownerID string) map[string]*model.ShortURLRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make(map[string]*model.ShortURLRecord)
	for code, record := range s.urls {
		if record.OwnerID == ownerID {
			filtered[code] = record.Clone()
		}
	}
	return filtered
}

// UpdateLongURL replaces the destination of a record. The code must exist
// (ErrURLNotFound) and the requester must own it (ErrNotOwner); the checks
// run in that order so callers can map them to 404 vs 401.
func (s *Store) UpdateLongURL(code, newLongURL, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.urls[code]
	if !ok {
		return ErrURLNotFound
	}
	if !policy.CanModify(record, requesterID) {
		return ErrNotOwner
	}

	record.LongURL = newLongURL
	return nil
}

// DeleteURL removes a record and its visit history. Same existence and
// ownership checks as UpdateLongURL.
func (s *Store) DeleteURL(code, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.urls[code]
	if !ok {
		return ErrURLNotFound
	}
	if !policy.CanModify(record, requesterID) {
		return ErrNotOwner
	}

	delete(s.urls, code)
	return nil
}

// RecordVisit appends a visit event and updates the counters of a record.
// The novelty check, the append and both counter increments happen under
// the store mutex as one atomic sequence. Returns the destination URL and
// whether this visitor was new for this code.
func (s *Store) RecordVisit(code, visitorID, eventID string, at time.Time) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.urls[code]
	if !ok {
		return "", false, ErrURLNotFound
	}

	newVisitor := !record.SeenVisitor(visitorID)

	record.Visits = append(record.Visits, model.VisitEvent{
		ID:        eventID,
		VisitorID: visitorID,
		VisitedAt: at.UTC(),
	})
	record.TotalVisits++
	if newVisitor {
		record.UniqueVisits++
	}

	return record.LongURL, newVisitor, nil
}
