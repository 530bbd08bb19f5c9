// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

// Command api is the entry point for the Mediary HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire repositories, services, and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rvales/mediary/internal/api"
	"github.com/rvales/mediary/internal/auth"
	"github.com/rvales/mediary/internal/catalog/components"
	"github.com/rvales/mediary/internal/catalog/media"
	"github.com/rvales/mediary/internal/library/lists"
	"github.com/rvales/mediary/internal/library/saves"
	"github.com/rvales/mediary/internal/platform/cache"
	"github.com/rvales/mediary/internal/platform/config"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/migration"
	pgstore "github.com/rvales/mediary/internal/platform/postgres"
	redisstore "github.com/rvales/mediary/internal/platform/redis"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/internal/social/comments"
	"github.com/rvales/mediary/internal/users"
	"github.com/rvales/mediary/internal/verifications"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "mediary"))
	slog.SetDefault(log)

	log.Info("[Mediary] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "mediary"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Shared Platform Services ───────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTPeriod)
	must(log, err, "initialize token service")

	cacheService := cache.NewService(rdb, cfg.PublicName, cfg.CacheDefaultTTL, log)
	engine := search.NewEngine(cfg.FetchLimit, log)
	totpEngine := users.NewTotpEngine(constants.TotpIssuer)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	// Sessions come first: the user service revokes them on password change
	// and the guard resolves them on every request.
	sessionRepository := sessions.NewRepository(pool)
	sessionService := sessions.NewService(sessionRepository, tokens, cacheService, engine, log)
	sessionHandler := sessions.NewHandler(sessionService)

	userRepository := users.NewRepository(pool)
	userService := users.NewService(userRepository, cacheService, sessionService, engine, totpEngine, log)
	userHandler := users.NewHandler(userService)

	verificationRepository := verifications.NewRepository(pool)
	verificationService := verifications.NewService(verificationRepository, engine, log)
	verificationHandler := verifications.NewHandler(verificationService)

	authService := auth.NewService(userService, sessionService, verificationService, tokens, log)
	authHandler := auth.NewHandler(authService)

	guard := auth.NewGuard(tokens, sessionService, userService, cacheService, log)

	mediaRepository := media.NewRepository(pool)
	mediaService := media.NewService(mediaRepository, engine, log)
	mediaHandler := media.NewHandler(mediaService)

	componentRepository := components.NewRepository(pool)
	componentService := components.NewService(componentRepository, mediaService, engine, log)
	componentHandler := components.NewHandler(componentService)

	listRepository := lists.NewRepository(pool)
	listService := lists.NewService(listRepository, engine, log)
	listHandler := lists.NewHandler(listService)

	saveRepository := saves.NewRepository(pool)
	saveService := saves.NewService(saveRepository, engine, log)
	saveHandler := saves.NewHandler(saveService)

	commentRepository := comments.NewRepository(pool)
	commentService := comments.NewService(commentRepository, mediaService, engine, log)
	commentHandler := comments.NewHandler(commentService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Media:        mediaHandler,
		Component:    componentHandler,
		List:         listHandler,
		Save:         saveHandler,
		Comment:      commentHandler,
		User:         userHandler,
		Session:      sessionHandler,
		Verification: verificationHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, guard, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
