package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/model"
	"github.com/tinyapp/tinyapp/internal/store"
)

// URL service errors.
var (
	ErrInvalidLongURL = errors.New("invalid long URL")
	ErrURLTooLong     = errors.New("long URL too long")
	ErrURLNotFound    = errors.New("short URL not found")
	ErrNotOwner       = errors.New("requester does not own this URL")
	ErrUnknownOwner   = errors.New("owner does not exist")
)

const maxLongURLLength = 2048

// URLService handles short URL management.
type URLService struct {
	store   *store.Store
	baseURL string
	metrics metrics.Recorder
}

// NewURLService creates a new URLService.
func NewURLService(st *store.Store, baseURL string, recorder metrics.Recorder) *URLService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &URLService{
		store:   st,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
	}
}

// Create shortens a long URL for the given owner. The owner must already
// exist in the user directory; callers resolve the session first.
func (s *URLService) Create(ownerID, longURL string) (*model.ShortURLRecord, error) {
	if err := validateLongURL(longURL); err != nil {
		return nil, err
	}

	record, err := s.store.CreateURL(ownerID, longURL, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrUnknownOwner) {
			return nil, ErrUnknownOwner
		}
		return nil, fmt.Errorf("create url: %w", err)
	}

	s.metrics.IncURLCreated()

	return record, nil
}

// Get retrieves a record by short code.
func (s *URLService) Get(code string) (*model.ShortURLRecord, error) {
	record, err := s.store.URL(code)
	if err != nil {
		if errors.Is(err, store.ErrURLNotFound) {
			return nil, ErrURLNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListForOwner returns a snapshot of the owner's records keyed by code.
func (s *URLService) ListForOwner(ownerID string) map[string]*model.ShortURLRecord {
	return s.store.URLsForOwner(ownerID)
}

// UpdateLongURL replaces a record's destination. The code must exist and
// the requester must own the record; the existence check runs first so the
// HTTP layer can distinguish 404 from 401.
func (s *URLService) UpdateLongURL(code, newLongURL, requesterID string) error {
	if err := validateLongURL(newLongURL); err != nil {
		return err
	}

	if err := s.store.UpdateLongURL(code, newLongURL, requesterID); err != nil {
		switch {
		case errors.Is(err, store.ErrURLNotFound):
			return ErrURLNotFound
		case errors.Is(err, store.ErrNotOwner):
			return ErrNotOwner
		}
		return err
	}

	s.metrics.IncURLUpdated()

	return nil
}

// Delete removes a record and its visit history, owner only.
func (s *URLService) Delete(code, requesterID string) error {
	if err := s.store.DeleteURL(code, requesterID); err != nil {
		switch {
		case errors.Is(err, store.ErrURLNotFound):
			return ErrURLNotFound
		case errors.Is(err, store.ErrNotOwner):
			return ErrNotOwner
		}
		return err
	}

	s.metrics.IncURLDeleted()

	return nil
}

// BaseURL returns the configured base URL for building short links.
func (s *URLService) BaseURL() string {
	return s.baseURL
}

// validateLongURL checks that a destination is an absolute http(s) URL.
func validateLongURL(longURL string) error {
	if longURL == "" {
		return ErrInvalidLongURL
	}
	if len(longURL) > maxLongURLLength {
		return ErrURLTooLong
	}

	parsed, err := url.Parse(longURL)
	if err != nil {
		return ErrInvalidLongURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidLongURL
	}
	if parsed.Host == "" {
		return ErrInvalidLongURL
	}

	return nil
}
