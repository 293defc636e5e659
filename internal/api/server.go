// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/core/media"
	"github.com/taibuivan/truyenmoi/internal/platform/config"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/middleware"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/internal/reader"
	"github.com/taibuivan/truyenmoi/internal/social/comment"
	"github.com/taibuivan/truyenmoi/internal/system/ads"
	"github.com/taibuivan/truyenmoi/internal/users/account"
	"github.com/taibuivan/truyenmoi/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Instrument records request metrics. Optional.
	Instrument func(http.Handler) http.Handler

	// Metrics serves the Prometheus scrape endpoint. Optional.
	Metrics http.Handler

	// Uploads serves locally stored files under /uploads. Nil when files
	// live in object storage.
	Uploads http.Handler

	Auth     *auth.Handler
	Accounts *account.Handler
	Catalog  *catalog.Handler
	Comments *comment.Handler
	Ads      *ads.Handler
	Reader   *reader.Handler
	Media    *media.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if h.Instrument != nil {
		r.Use(h.Instrument)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.CORSOrigins, cfg.IsDevelopment()))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes and scrape targets.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	if h.Uploads != nil {
		r.Mount(constants.UploadRoutePrefix, h.Uploads)
	}
	r.Get("/ads.txt", h.Ads.AdsTxt)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/series", h.Catalog.SeriesRoutes())
		api.Mount("/chapters", h.Catalog.ChapterRoutes())
		api.Mount("/categories", h.Catalog.CategoryRoutes())
		api.Mount("/comments", h.Comments.Routes())
		api.Mount("/ads", h.Ads.Routes())
		api.Mount("/read", h.Reader.Routes())

		// # Management API
		// Publishers manage content; only admins manage accounts and ads.
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RolePublisher))

			admin.Mount("/series", h.Catalog.AdminSeriesRoutes())
			admin.Mount("/chapters", h.Catalog.AdminChapterRoutes())
			admin.Mount("/categories", h.Catalog.AdminCategoryRoutes())
			admin.Mount("/comments", h.Comments.AdminRoutes())
			admin.Mount("/upload", h.Media.Routes())

			admin.Group(func(root chi.Router) {
				root.Use(middleware.RequireRole(sec.RoleAdmin))
				root.Mount("/users", h.Accounts.Routes())
				root.Mount("/ads", h.Ads.AdminRoutes())
			})
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

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
