// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Truyenmoi HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Select the file store (local disk or S3).
//  7. Wire services and HTTP handlers.
//  8. Seed the default administrator and backfill chapter slugs if configured.
//  9. Start HTTP server with graceful shutdown.
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
	"strings"
	"syscall"

	"github.com/taibuivan/truyenmoi/internal/api"
	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/core/media"
	"github.com/taibuivan/truyenmoi/internal/platform/config"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/filestore"
	"github.com/taibuivan/truyenmoi/internal/platform/metrics"
	"github.com/taibuivan/truyenmoi/internal/platform/migration"
	pgstore "github.com/taibuivan/truyenmoi/internal/platform/postgres"
	redisstore "github.com/taibuivan/truyenmoi/internal/platform/redis"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/internal/reader"
	"github.com/taibuivan/truyenmoi/internal/social/comment"
	"github.com/taibuivan/truyenmoi/internal/system/ads"
	"github.com/taibuivan/truyenmoi/internal/users/account"
	"github.com/taibuivan/truyenmoi/internal/users/auth"
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
		slog.String("storage", cfg.StorageDriver),
	)

	// Root context for the process; cancelled on shutdown so background
	// sweepers (rate limiter cleanup) stop.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup gets a deadline so misconfiguration is caught quickly rather
	// than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolSize{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(startupCtx, cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. File Store ─────────────────────────────────────────────────────
	files, uploads, err := newFileStore(startupCtx, cfg)
	must(log, err, "initialize file store")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	instruments := metrics.New()
	instruments.ObservePool(pool.Stat)

	catalogService := catalog.NewService(
		catalog.NewSeriesRepository(pool),
		catalog.NewChapterRepository(pool),
		catalog.NewCategoryRepository(pool),
		files,
		log,
	)
	accountService := account.NewService(account.NewUserRepository(pool), log)
	authService := auth.NewService(accountService, tokens, auth.NewAttemptStore(rdb), log)
	commentService := comment.NewService(comment.NewCommentRepository(pool), catalogService, accountService, log)
	adsService := ads.NewService(ads.NewConfigRepository(pool), ads.NewConfigCache(rdb), log)
	readerService := reader.NewService(catalogService, adsService, log)
	mediaService := media.NewService(files, log)

	// ── 8. Seeding ────────────────────────────────────────────────────────
	if cfg.SeedAdmin() {
		created, err := accountService.EnsureAdmin(startupCtx, cfg.AdminEmail, cfg.AdminPassword)
		must(log, err, "seed default admin")
		log.Info("default_admin_checked", slog.Bool("created", created))
	}

	if cfg.SlugBackfillOnStartup {
		written, err := catalogService.BackfillChapterSlugs(startupCtx)
		must(log, err, "backfill chapter slugs")
		log.Info("startup_backfill_done", slog.Int("chapters", written))
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Instrument: instruments.Middleware,
		Metrics:    instruments.Handler(),
		Uploads:    uploads,
		Auth:       auth.NewHandler(authService),
		Accounts:   account.NewHandler(accountService),
		Catalog:    catalog.NewHandler(catalogService, instruments),
		Comments:   comment.NewHandler(commentService),
		Ads:        ads.NewHandler(adsService),
		Reader:     reader.NewHandler(readerService, instruments),
		Media:      media.NewHandler(mediaService),
	}

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

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

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// newFileStore selects the configured backend. The returned handler serves
// local files and is nil for object storage.
func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, http.Handler, error) {
	base := strings.TrimRight(cfg.PublicUploadBase, "/")

	if cfg.StorageDriver == config.StorageS3 {
		client, err := filestore.NewS3Client(ctx, filestore.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return filestore.NewS3(client, cfg.S3Bucket, base), nil, nil
	}

	local, err := filestore.NewLocal(cfg.UploadDir, base+constants.UploadRoutePrefix)
	if err != nil {
		return nil, nil, err
	}
	return local, local.Handler(constants.UploadRoutePrefix), nil
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
