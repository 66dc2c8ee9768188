package store

import (
	"fmt"
	"time"

	"github.com/tinyapp/tinyapp/internal/model"
	"github.com/tinyapp/tinyapp/internal/shortid"
)

// CreateUser registers a new user with an already-hashed password.
// The user ID is allocated from the same identifier space as short codes.
// Returns ErrEmailExists if the email is already registered.
func (s *Store) CreateUser(email, passwordHash string, now time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(email) != nil {
		return nil, ErrEmailExists
	}

	id, err := shortid.New(func(candidate string) bool {
		_, taken := s.users[candidate]
		return taken
	})
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}
	s.users[id] = user

	return user.Clone(), nil
}

// UserByID retrieves a user by ID.
func (s *Store) UserByID(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// UserByEmail retrieves a user by exact, case-sensitive email match.
// Registration enforces uniqueness, so at most one user can match.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByEmail(email)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// findByEmail scans the directory for a stored email. Caller holds s.mu.
func (s *Store) findByEmail(email string) *model.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}
