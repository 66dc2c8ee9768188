// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/tinyapp/tinyapp/internal/auth"
	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/model"
	"github.com/tinyapp/tinyapp/internal/store"
)

// User service errors.
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles registration and authentication.
type UserService struct {
	store   *store.Store
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(st *store.Store, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{store: st, metrics: recorder}
}

// Register creates a new account. The password is stored only as an
// Argon2id hash. Fails with ErrEmailRequired/ErrPasswordRequired on blank
// fields and ErrEmailTaken on a duplicate email.
func (s *UserService) Register(email, password string) (*model.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(email, hash, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Authenticate verifies credentials against the user directory. Unknown
// emails and bad passwords both report ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncLoginSuccess()

	return user, nil
}

// UserByID resolves a user ID, typically from a session.
func (s *UserService) UserByID(id string) (*model.User, error) {
	user, err := s.store.UserByID(id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
