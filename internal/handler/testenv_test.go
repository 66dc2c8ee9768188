package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/middleware"
	"github.com/tinyapp/tinyapp/internal/service"
	"github.com/tinyapp/tinyapp/internal/session"
	"github.com/tinyapp/tinyapp/internal/store"
)

// testEnv wires the full handler stack against an isolated store,
// mirroring the router wiring in cmd/api.
type testEnv struct {
	router   *chi.Mux
	store    *store.Store
	sessions *session.Manager
	metrics  *metrics.InMemoryRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New()
	sessions := session.NewManager(time.Hour)
	recorder := metrics.NewInMemory()

	userService := service.NewUserService(st, recorder)
	urlService := service.NewURLService(st, "http://localhost:8080", recorder)
	visitService := service.NewVisitService(st, recorder)

	h := New()
	authHandler := NewAuthHandler(userService, sessions, logger, false)
	urlHandler := NewURLHandler(urlService, logger)
	redirectHandler := NewRedirectHandler(visitService, recorder, logger, false, time.Hour)
	healthHandler := NewHealthHandler(st, sessions)
	metricsHandler := NewMetricsHandler(recorder)

	r := chi.NewRouter()
	r.Use(middleware.Session(middleware.SessionConfig{Logger: logger, Sessions: sessions}))

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/", h.Hello)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api/v1/urls", func(r chi.Router) {
		r.Use(middleware.RequireUser())

		r.Get("/", urlHandler.List)
		r.Post("/", urlHandler.Create)
		r.Get("/{shortCode}", urlHandler.Get)
		r.Patch("/{shortCode}", urlHandler.Update)
		r.Delete("/{shortCode}", urlHandler.Delete)
	})

	r.Get("/api/v1/metrics", metricsHandler.Snapshot)
	r.Get("/u/{shortCode}", redirectHandler.Redirect)

	r.NotFound(h.NotFound)

	return &testEnv{
		router:   r,
		store:    st,
		sessions: sessions,
		metrics:  recorder,
	}
}

// do executes a JSON request against the test router.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its session cookie.
func (e *testEnv) register(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("register %s: no session cookie set", email)
	return nil
}

// createURL shortens a URL for the session and returns its code.
func (e *testEnv) createURL(t *testing.T, cookie *http.Cookie, longURL string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/urls", map[string]string{"long_url": longURL}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create url: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.Code
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp.Code
}
