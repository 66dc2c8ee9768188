// Package store provides the in-memory data store backing the application.
//
// A single Store holds the user directory, the URL registry and the set of
// known visitor IDs. All state is memory-resident and lost on restart.
// Every operation runs under one mutex, so the read-modify-write sequences
// (identifier allocation, visit accounting) stay atomic even though chi
// serves requests concurrently.
package store

import (
	"errors"
	"sync"

	"github.com/tinyapp/tinyapp/internal/model"
)

// Common errors for store operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrURLNotFound  = errors.New("short URL not found")
	ErrUnknownOwner = errors.New("owner does not exist")
	ErrNotOwner     = errors.New("requester does not own this URL")
)

// Store is the process-wide mutable state. Construct one at startup and
// pass it by reference; tests construct an isolated Store per case.
type Store struct {
	mu       sync.Mutex
	users    map[string]*model.User
	urls     map[string]*model.ShortURLRecord
	visitors map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[string]*model.User),
		urls:     make(map[string]*model.ShortURLRecord),
		visitors: make(map[string]struct{}),
	}
}

// Stats reports entity counts for readiness probes and metrics.
type Stats struct {
	Users    int `json:"users"`
	URLs     int `json:"urls"`
	Visitors int `json:"visitors"`
}

// Stats returns current entity counts.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Users:    len(s.users),
		URLs:     len(s.urls),
		Visitors: len(s.visitors),
	}
}
