package handler

import (
	"net/http"
	"strconv"

	"github.com/tinyapp/tinyapp/internal/session"
	"github.com/tinyapp/tinyapp/internal/store"
)

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store    *store.Store
	sessions *session.Manager
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st *store.Store, sessions *session.Manager) *HealthHandler {
	return &HealthHandler{
		store:    st,
		sessions: sessions,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint. The store is in-process so there
// are no external dependencies to ping; the checks report entity counts.
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	stats := h.store.Stats()
	checks["users"] = strconv.Itoa(stats.Users)
	checks["urls"] = strconv.Itoa(stats.URLs)
	checks["visitors"] = strconv.Itoa(stats.Visitors)
	checks["sessions"] = strconv.Itoa(h.sessions.Len())

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}
