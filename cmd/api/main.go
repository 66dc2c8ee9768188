// Package main is the entrypoint for the TinyApp API server.
package main

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tinyapp/tinyapp/internal/config"
	"github.com/tinyapp/tinyapp/internal/handler"
	"github.com/tinyapp/tinyapp/internal/metrics"
	"github.com/tinyapp/tinyapp/internal/middleware"
	"github.com/tinyapp/tinyapp/internal/server"
	"github.com/tinyapp/tinyapp/internal/service"
	"github.com/tinyapp/tinyapp/internal/session"
	"github.com/tinyapp/tinyapp/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize in-memory state. Everything lives for the process
	// lifetime only; a restart starts from an empty store.
	st := store.New()
	sessions := session.NewManager(cfg.SessionTTL)
	recorder := metrics.NewInMemory()

	// Initialize services
	userService := service.NewUserService(st, recorder)
	urlService := service.NewURLService(st, cfg.BaseURL, recorder)
	visitService := service.NewVisitService(st, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(st, sessions)
	authHandler := handler.NewAuthHandler(userService, sessions, logger, cfg.CookieSecure)
	urlHandler := handler.NewURLHandler(urlService, logger)
	redirectHandler := handler.NewRedirectHandler(visitService, recorder, logger, cfg.CookieSecure, cfg.VisitorTTL)
	metricsHandler := handler.NewMetricsHandler(recorder)

	// Setup router
	r := setupRouter(cfg, h, healthHandler, authHandler, urlHandler, redirectHandler, metricsHandler, sessions, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	cfg *config.Config,
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	urlHandler *handler.URLHandler,
	redirectHandler *handler.RedirectHandler,
	metricsHandler *handler.MetricsHandler,
	sessions *session.Manager,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.Session(middleware.SessionConfig{
		Logger:   logger,
		Sessions: sessions,
	}))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Auth endpoints (anonymous access)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// URL management (requires a session)
	r.Route("/api/v1/urls", func(r chi.Router) {
		r.Use(middleware.RequireUser())

		r.Get("/", urlHandler.List)
		r.Post("/", urlHandler.Create)
		r.Get("/{shortCode}", urlHandler.Get)
		r.Patch("/{shortCode}", urlHandler.Update)
		r.Delete("/{shortCode}", urlHandler.Delete)
	})

	// Metrics snapshot
	r.Get("/api/v1/metrics", metricsHandler.Snapshot)

	// Redirect traversal (anonymous, tracks visits)
	r.Get("/u/{shortCode}", redirectHandler.Redirect)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
