// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the BookScout HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the outbound limiter and the catalog client.
//  4. Prepare the lazily connected cache tiers (PostgreSQL, Redis).
//  5. Wire the retrieval service and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// Cache tiers connect on first use, so the server starts even when they are down.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookscout/internal/api"
	"github.com/taibuivan/bookscout/internal/catalog"
	"github.com/taibuivan/bookscout/internal/core/book"
	"github.com/taibuivan/bookscout/internal/platform/config"
	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/internal/platform/lazy"
	"github.com/taibuivan/bookscout/internal/platform/migration"
	"github.com/taibuivan/bookscout/internal/platform/outbound"
	pgstore "github.com/taibuivan/bookscout/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookscout/internal/platform/redis"
	"github.com/taibuivan/bookscout/internal/scrape"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("db_enabled", cfg.DBEnabled),
		slog.Bool("redis_enabled", cfg.RedisEnabled),
		slog.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
	)

	// Root context of background work (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Catalog ────────────────────────────────────────────────────────
	limiter := outbound.New(cfg.OutboundConcurrency, cfg.OutboundMinTime)
	catalogClient, err := catalog.NewClient(catalog.Options{
		BaseURL:        cfg.CatalogBaseURL,
		SearchPath:     cfg.CatalogSearchPath,
		Timeout:        cfg.CatalogTimeout,
		UserAgent:      cfg.CatalogUserAgent,
		AcceptLanguage: cfg.CatalogAcceptLanguage,
	}, limiter, log)
	must(log, err, "initialize catalog client")

	// ── 4. Cache Tiers ────────────────────────────────────────────────────
	// Disabled tiers stay untyped nil interfaces so the service skips them.
	var (
		durable    book.DetailsStore
		ephemeral  book.Cache
		healthDeps api.HealthDependencies
		closeTiers []func() error
	)

	if cfg.DBEnabled {
		dsn := cfg.DatabaseDSN()
		poolConn := lazy.New[*pgxpool.Pool](func(ctx context.Context) (*pgxpool.Pool, error) {
			ctx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
			defer cancel()

			if err := migration.RunUp(dsn, log); err != nil {
				return nil, err
			}
			return pgstore.NewPool(ctx, dsn, log)
		}, func(pool *pgxpool.Pool) error {
			log.Info("closing_postgres_pool")
			pool.Close()
			return nil
		})

		store := book.NewPostgresDetailsStore(poolConn, log)
		durable = store
		healthDeps.CheckDatabase = store.Ping
		closeTiers = append(closeTiers, poolConn.Close)
	}

	if cfg.RedisEnabled {
		redisConn := lazy.New[*redis.Client](func(ctx context.Context) (*redis.Client, error) {
			ctx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
			defer cancel()
			return redisstore.NewClient(ctx, cfg.RedisURL, log)
		}, func(client *redis.Client) error {
			log.Info("closing_redis_client")
			return client.Close()
		})

		cache := book.NewRedisCache(redisConn, cfg.SearchCacheTTL, log)
		ephemeral = cache
		healthDeps.CheckCache = cache.Ping
		closeTiers = append(closeTiers, redisConn.Close)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	bookService := book.NewService(durable, ephemeral, catalogClient, scrape.NewParser(), log)
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(bookService),
	})

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	exitCode := 0
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		exitCode = 1
	}

	for _, closeTier := range closeTiers {
		if err := closeTier(); err != nil {
			log.Error("cache_tier_close_error", slog.Any("error", err))
		}
	}

	if exitCode != 0 {
		rootCancel()
		os.Exit(exitCode)
	}
	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger carrying the global app attribute.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
