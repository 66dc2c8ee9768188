package service

import (
	"errors"
	"testing"

	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/model"
	"github.com/tinyapp/tinyapp/internal/store"
)

// fixture wires the services against one isolated store.
type fixture struct {
	users *UserService
	urls  *URLService
	owner *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.New()
	users := NewUserService(st, nil)
	urls := NewURLService(st, "http://localhost:8080", metrics.NewInMemory())

	owner, err := users.Register("owner@example.com", "owner-password")
	if err != nil {
		t.Fatalf("register owner: %v", err)
	}

	return &fixture{users: users, urls: urls, owner: owner}
}

func TestURLService_Create(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.urls.Create(f.owner.ID, "http://www.lighthouselabs.ca")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.LongURL != "http://www.lighthouselabs.ca" {
		t.Errorf("unexpected long URL %q", record.LongURL)
	}
	if record.OwnerID != f.owner.ID {
		t.Errorf("unexpected owner %q", record.OwnerID)
	}
}

func TestURLService_Create_InvalidLongURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	cases := []string{
		"",
		"not a url",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"http://",
	}
	for _, longURL := range cases {
		if _, err := f.urls.Create(f.owner.ID, longURL); !errors.Is(err, ErrInvalidLongURL) {
			t.Errorf("long URL %q: expected ErrInvalidLongURL, got %v", longURL, err)
		}
	}
}

func TestURLService_Create_UnknownOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if _, err := f.urls.Create("zzzzzz", "http://example.com"); !errors.Is(err, ErrUnknownOwner) {
		t.Errorf("expected ErrUnknownOwner, got %v", err)
	}
}

func TestURLService_Get(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	record, err := f.urls.Create(f.owner.ID, "http://example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := f.urls.Get(record.Code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != record.Code {
		t.Errorf("expected code %s, got %s", record.Code, got.Code)
	}

	if _, err := f.urls.Get("zzzzzz"); !errors.Is(err, ErrURLNotFound) {
		t.Errorf("expected ErrURLNotFound, got %v", err)
	}
}

func TestURLService_ListForOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	other, err := f.users.Register("other@example.com", "other-password")
	if err != nil {
		t.Fatalf("register other: %v", err)
	}

	mine, err := f.urls.Create(f.owner.ID, "http://mine.example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.urls.Create(other.ID, "http://theirs.example.com"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	listed := f.urls.ListForOwner(f.owner.ID)
	if len(listed) != 1 {
		t.Fatalf("expected 1 record, got %d", len(listed))
	}
	if _, ok := listed[mine.Code]; !ok {
		t.Errorf("expected own record %s in listing", mine.Code)
	}
}

func TestURLService_UpdateLongURL_Ownership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	other, err := f.users.Register("other@example.com", "other-password")
	if err != nil {
		t.Fatalf("register other: %v", err)
	}

	record, err := f.urls.Create(f.owner.ID, "http://original.example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Non-owner request fails and leaves the destination unchanged
	err = f.urls.UpdateLongURL(record.Code, "http://hijacked.example.com", other.ID)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	got, err := f.urls.Get(record.Code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LongURL != "http://original.example.com" {
		t.Errorf("destination changed despite auth failure: %s", got.LongURL)
	}

	// Owner succeeds
	if err := f.urls.UpdateLongURL(record.Code, "http://updated.example.com", f.owner.ID); err != nil {
		t.Fatalf("UpdateLongURL failed: %v", err)
	}
	got, err = f.urls.Get(record.Code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LongURL != "http://updated.example.com" {
		t.Errorf("expected updated destination, got %s", got.LongURL)
	}
}

func TestURLService_UpdateLongURL_UnknownCodeBeforeOwnership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	// Unknown code reports not-found even for an anonymous requester,
	// so the HTTP layer answers 404 rather than 401.
	if err := f.urls.UpdateLongURL("zzzzzz", "http://x.example.com", ""); !errors.Is(err, ErrURLNotFound) {
		t.Errorf("expected ErrURLNotFound, got %v", err)
	}
}

func TestURLService_Delete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	other, err := f.users.Register("other@example.com", "other-password")
	if err != nil {
		t.Fatalf("register other: %v", err)
	}

	record, err := f.urls.Create(f.owner.ID, "http://example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := f.urls.Delete(record.Code, other.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := f.urls.Delete(record.Code, f.owner.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := f.urls.Get(record.Code); !errors.Is(err, ErrURLNotFound) {
		t.Errorf("expected ErrURLNotFound after delete, got %v", err)
	}
}
