package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/service"
)

// VisitorCookieName is the cookie carrying the anonymous visitor identity.
const VisitorCookieName = "visitor_id"

// RedirectHandler handles short URL traversal.
type RedirectHandler struct {
	visits       *service.VisitService
	metrics      metrics.Recorder
	logger       *slog.Logger
	cookieSecure bool
	visitorTTL   time.Duration
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(visits *service.VisitService, recorder metrics.Recorder, logger *slog.Logger, cookieSecure bool, visitorTTL time.Duration) *RedirectHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RedirectHandler{
		visits:       visits,
		metrics:      recorder,
		logger:       logger,
		cookieSecure: cookieSecure,
		visitorTTL:   visitorTTL,
	}
}

// Redirect handles GET /u/{shortCode}.
// First-time visitors get a generated identity persisted in a cookie;
// the visit is then accounted for and the client redirected.
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	if shortCode == "" {
		writeError(w, http.StatusNotFound, "URL_NOT_FOUND", "Short URL not found")
		return
	}

	start := time.Now()

	visitorID, err := h.resolveVisitor(w, r)
	if err != nil {
		h.logger.Error("visitor id assignment failed",
			"short_code", shortCode,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	result, err := h.visits.Record(shortCode, visitorID)
	duration := time.Since(start)
	h.metrics.ObserveRedirectDuration(duration)

	if err != nil {
		if errors.Is(err, service.ErrURLNotFound) {
			h.logger.Info("redirect_not_found",
				"short_code", shortCode,
				"duration_ms", float64(duration.Microseconds())/1000,
			)
			writeError(w, http.StatusNotFound, "URL_NOT_FOUND", "Short URL not found")
			return
		}
		h.logger.Error("redirect_error",
			"short_code", shortCode,
			"error", err,
			"duration_ms", float64(duration.Microseconds())/1000,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("redirect_success",
		"short_code", shortCode,
		"new_visitor", result.NewVisitor,
		"duration_ms", float64(duration.Microseconds())/1000,
	)

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=0")

	http.Redirect(w, r, result.LongURL, http.StatusFound)
}

// resolveVisitor returns the visitor identity from the cookie, assigning
// and setting a fresh one for first-time visitors.
func (h *RedirectHandler) resolveVisitor(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	visitorID, err := h.visits.AssignVisitorID()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    visitorID,
		Path:     "/",
		MaxAge:   int(h.visitorTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return visitorID, nil
}
