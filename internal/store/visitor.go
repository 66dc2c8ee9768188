package store

import (
	"fmt"

	"github.com/tinyapp/tinyapp/internal/shortid"
)

// AllocateVisitorID mints an identifier for an anonymous visitor, unique
// against every visitor seen so far, and remembers it. The caller persists
// the ID client-side via a cookie.
func (s *Store) AllocateVisitorID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := shortid.New(func(candidate string) bool {
		_, taken := s.visitors[candidate]
		return taken
	})
	if err != nil {
		return "", fmt.Errorf("allocate visitor id: %w", err)
	}

	s.visitors[id] = struct{}{}
	return id, nil
}
