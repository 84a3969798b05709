// Package main is the entry point for the trip application API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lmittmann/tint"
	"github.com/pressly/goose/v3"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/config"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/gezi"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/handler"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/lookup"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/middleware"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/repo"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/service"
	"github.com/eerdem5387/gezi-basvuru-sistemi/migrations"
)

// maxBodyBytes caps request bodies at 1 MiB. Form submissions and trip
// payloads are tiny; anything larger is abuse.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON output for log aggregators in production; tint's colorized
	// human-readable handler in development.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	var logHandler slog.Handler
	if cfg.IsDevelopment() {
		logHandler = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// Apply pending migrations on startup from the embedded SQL files.
	// stdlib.OpenDBFromPool reuses the pool's config for the database/sql
	// handle goose needs.
	migrationDB := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, migrationDB, migrations.FS)
	if err != nil {
		slog.Error("failed to create migration provider", "error", err)
		os.Exit(1)
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	if err := migrationDB.Close(); err != nil {
		slog.Error("failed to close migration connection", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", len(results))

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	appRepo := repo.NewApplicationRepo(pool)

	srvHandler := handler.NewServer(
		service.NewTripService(tripRepo, appRepo),
		service.NewApplicationService(tripRepo, appRepo),
		service.NewExportService(tripRepo, appRepo),
		gezi.NewClient(cfg.GeziServiceURL, cfg.ServiceSecret),
		lookup.NewClient(cfg.LookupBaseURLs, logger),
		logger,
		cfg.IsDevelopment(),
	)

	// --- Router -----------------------------------------------------------
	// Global middleware is applied inside Router via RouterOptions plus the
	// chain below: RequestID → RealIP → SlogLogger → Recoverer → MaxBodySize.
	router := srvHandler.Router(handler.RouterOptions{
		CORS:        middleware.NewCORSHandler(cfg.CORSOrigins),
		ServiceAuth: middleware.NewServiceAuthHandler(cfg.ServiceSecret, logger),
	})

	chain := chi.Chain(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewSlogLogger(logger),
		chimiddleware.Recoverer,
		middleware.NewMaxBodySizeHandler(maxBodyBytes),
	).Handler(router)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
