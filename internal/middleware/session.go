package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tinyapp/tinyapp/internal/auth"
	"github.com/tinyapp/tinyapp/internal/session"
)

// SessionConfig holds dependencies for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions *session.Manager
}

// Session resolves the session cookie into a user identity and stores it
// in the request context. Requests without a valid session proceed as
// anonymous; enforcing authentication is RequireUser's job.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := cfg.Sessions.Resolve(cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrExpired) {
					cfg.Logger.Error("session resolution failed",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
				}
				// Stale cookie: clear it and continue anonymous
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
// Must run after Session.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserIDFromContext(r.Context()) == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required","code":"UNAUTHENTICATED"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
