package session

import (
	"errors"
	"testing"
	"time"
)

func TestManager_CreateAndResolve(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)

	token, err := m.Create("user42")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := m.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if userID != "user42" {
		t.Errorf("expected user42, got %s", userID)
	}
}

func TestManager_TokensAreUnique(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := m.Create("u")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestManager_ResolveUnknownToken(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)
	if _, err := m.Resolve("no-such-token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_Expiry(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)

	current := time.Now()
	m.now = func() time.Time { return current }

	token, err := m.Create("user42")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Advance past the TTL
	current = current.Add(2 * time.Minute)

	if _, err := m.Resolve(token); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}

	// Expired session is reaped; a second resolve reports not found
	if _, err := m.Resolve(token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after reaping, got %v", err)
	}
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)

	token, err := m.Create("user42")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m.Destroy(token)

	if _, err := m.Resolve(token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after destroy, got %v", err)
	}

	// Destroying again is a no-op
	m.Destroy(token)
}
