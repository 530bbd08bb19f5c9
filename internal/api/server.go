// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rvales/mediary/internal/auth"
	"github.com/rvales/mediary/internal/catalog/components"
	"github.com/rvales/mediary/internal/catalog/media"
	"github.com/rvales/mediary/internal/library/lists"
	"github.com/rvales/mediary/internal/library/saves"
	"github.com/rvales/mediary/internal/platform/config"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/middleware"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/internal/social/comments"
	"github.com/rvales/mediary/internal/users"
	"github.com/rvales/mediary/internal/verifications"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles account routes (register, login, profile, TOTP).
	Auth *auth.Handler

	// Media handles the catalogue of entries.
	Media *media.Handler

	// Component handles ordered parts nested under entries.
	Component *components.Handler

	// List handles user-curated collections.
	List *lists.Handler

	// Save handles per-user bookmarks.
	Save *saves.Handler

	// Comment handles discussion threads under entries.
	Comment *comments.Handler

	// User is the administrative account surface.
	User *users.Handler

	// Session is the administrative login audit surface.
	Session *sessions.Handler

	// Verification is the administrative pending-code surface.
	Verification *verifications.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, guard middleware.Authenticator, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(guard))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Route("/media", func(catalog chi.Router) {
			catalog.Mount("/", h.Media.Routes())
			catalog.Mount("/{mediaID}/components", h.Component.ScopedRoutes())
			catalog.Mount("/{mediaID}/comments", h.Comment.ScopedRoutes())
		})
		api.Mount("/components", h.Component.DirectRoutes())
		api.Mount("/comments", h.Comment.DirectRoutes())

		api.Mount("/lists", h.List.Routes())
		api.Mount("/saves", h.Save.Routes())

		// Back-office surface, moderators are not enough here.
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.Mount("/users", h.User.Routes())
			admin.Mount("/sessions", h.Session.Routes())
			admin.Mount("/verifications", h.Verification.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
