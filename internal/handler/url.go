package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tinyapp/tinyapp/internal/auth"
	"github.com/tinyapp/tinyapp/internal/handler/dto"
	"github.com/tinyapp/tinyapp/internal/policy"
	"github.com/tinyapp/tinyapp/internal/service"
)

// URLHandler handles HTTP requests for short URL management.
// All routes run behind RequireUser, so the context always carries a user.
type URLHandler struct {
	svc    *service.URLService
	logger *slog.Logger
}

// NewURLHandler creates a new URLHandler.
func NewURLHandler(svc *service.URLService, logger *slog.Logger) *URLHandler {
	return &URLHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/urls.
func (h *URLHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	record, err := h.svc.Create(userID, req.LongURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("url_created",
		"code", record.Code,
		"owner_id", userID,
	)

	writeJSON(w, http.StatusCreated, dto.ToURLResponse(record, h.svc.BaseURL()))
}

// List handles GET /api/v1/urls.
// Returns only the records owned by the session user.
func (h *URLHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	records := h.svc.ListForOwner(userID)
	writeJSON(w, http.StatusOK, dto.ToURLListResponse(records, h.svc.BaseURL()))
}

// Get handles GET /api/v1/urls/{shortCode}.
// Existence is checked before ownership: unknown codes get 404, known
// codes owned by someone else get 401.
func (h *URLHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	code := chi.URLParam(r, "shortCode")

	record, err := h.svc.Get(code)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !policy.CanView(record, userID) {
		writeError(w, http.StatusUnauthorized, "NOT_OWNER", "You do not own this URL")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToURLResponse(record, h.svc.BaseURL()))
}

// Update handles PATCH /api/v1/urls/{shortCode}.
func (h *URLHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	code := chi.URLParam(r, "shortCode")

	var req dto.UpdateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.UpdateLongURL(code, req.LongURL, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("url_updated",
		"code", code,
		"owner_id", userID,
	)

	record, err := h.svc.Get(code)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToURLResponse(record, h.svc.BaseURL()))
}

// Delete handles DELETE /api/v1/urls/{shortCode}.
func (h *URLHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	code := chi.URLParam(r, "shortCode")

	if err := h.svc.Delete(code, userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("url_deleted",
		"code", code,
		"owner_id", userID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps URL service errors to HTTP responses.
func (h *URLHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrURLNotFound):
		writeError(w, http.StatusNotFound, "URL_NOT_FOUND", "Short URL not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "NOT_OWNER", "You do not own this URL")
	case errors.Is(err, service.ErrInvalidLongURL):
		writeError(w, http.StatusBadRequest, "INVALID_LONG_URL", "Invalid long URL")
	case errors.Is(err, service.ErrURLTooLong):
		writeError(w, http.StatusBadRequest, "URL_TOO_LONG", "Long URL too long")
	case errors.Is(err, service.ErrUnknownOwner):
		writeError(w, http.StatusUnauthorized, "UNKNOWN_OWNER", "Session user no longer exists")
	default:
		h.logger.Error("url service error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
