// Package session provides in-memory session management for cookie login.
// Sessions live only for the process lifetime, like the rest of the state.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"
)

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "session_id"

var (
	// ErrNotFound indicates no session exists for the given token.
	ErrNotFound = errors.New("session not found")
	// ErrExpired indicates the session exists but has passed its TTL.
	ErrExpired = errors.New("session expired")
)

// entry is the server-side session state. The user ID is a lookup key into
// the user directory, not an ownership relation.
type entry struct {
	userID    string
	expiresAt time.Time
}

// Manager stores active sessions keyed by opaque token.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]entry
	now      func() time.Time
}

// NewManager creates a Manager whose sessions expire after ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Create opens a session for the given user and returns its token.
func (m *Manager) Create(userID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = entry{
		userID:    userID,
		expiresAt: m.now().Add(m.ttl),
	}
	return token, nil
}

// Resolve returns the user ID bound to a token. Expired sessions are
// removed on sight.
func (m *Manager) Resolve(token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return "", ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.sessions, token)
		return "", ErrExpired
	}
	return e.userID, nil
}

// Destroy removes a session. Destroying an unknown token is not an error.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len returns the number of live sessions, counting expired-but-unreaped
// entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// generateToken returns an opaque 256-bit random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
