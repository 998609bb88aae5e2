// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - Two security scopes share one router. Paths under /actuator form the
    operational scope, which accepts HTTP Basic credentials and bearer tokens.
    Every other path forms the application scope, which accepts bearer
    tokens only.
  - Each scope runs its authentication interceptors and then its access
    policy, so unknown paths are judged by the policy before they 404.
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

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/catalog/recommendation"
	"github.com/taibuivan/bookreview/internal/catalog/review"
	"github.com/taibuivan/bookreview/internal/platform/access"
	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/config"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/metrics"
	"github.com/taibuivan/bookreview/internal/platform/middleware"
	"github.com/taibuivan/bookreview/internal/platform/respond"
	"github.com/taibuivan/bookreview/internal/users/auth"
)

// HelloMessage is the body of GET /api/hello.
const HelloMessage = "Hello, World!"

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Dependencies

// Security groups the collaborators of the authentication interceptors.
type Security struct {
	Tokens      middleware.TokenVerifier
	Identities  middleware.IdentityResolver
	Credentials middleware.CredentialVerifier
}

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here and a mount in [applicationRoutes].
type Handlers struct {
	Health          *HealthHandler
	Auth            *auth.Handler
	Books           *book.Handler
	Reviews         *review.Handler
	Favourites      *favourite.Handler
	Recommendations *recommendation.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers both security scopes.
func NewServer(cfg *config.Config, log *slog.Logger, collector *metrics.Collector, security Security, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(collector.Middleware)
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)))
	r.Use(middleware.CanonicalPath())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))

	r.Mount(access.OperationalPrefix, operationalRoutes(collector, security, h))
	r.Mount("/", applicationRoutes(collector, security, h))

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

// operationalRoutes builds the /actuator scope: probes, build info and metrics.
func operationalRoutes(collector *metrics.Collector, security Security, h Handlers) chi.Router {
	ops := chi.NewRouter()

	ops.Use(middleware.BasicAuthenticate(security.Credentials, collector))
	ops.Use(middleware.Authenticate(security.Tokens, security.Identities, collector))
	ops.Use(middleware.Authorize(access.OperationalPolicy(), constants.BasicChallenge, collector))

	ops.Get("/health", h.Health.Readiness)
	ops.Get("/health/liveness", h.Health.Liveness)
	ops.Get("/health/readiness", h.Health.Readiness)
	ops.Get("/info", h.Health.Info)
	ops.Handle("/metrics", collector.Handler())
	ops.Handle("/prometheus", collector.Handler())

	ops.NotFound(notFound)
	return ops
}

// applicationRoutes builds every non-operational route.
func applicationRoutes(collector *metrics.Collector, security Security, h Handlers) chi.Router {
	app := chi.NewRouter()

	app.Use(middleware.Authenticate(security.Tokens, security.Identities, collector))
	app.Use(middleware.Authorize(access.ApplicationPolicy(), constants.BearerChallenge, collector))

	app.Get("/api/hello", hello)
	app.Mount("/auth", h.Auth.Routes())
	app.Route("/books", h.Books.RegisterRoutes)
	app.Route("/admin/books", h.Books.RegisterAdminRoutes)
	app.Mount("/reviews", h.Reviews.Routes())
	app.Mount("/favourites", h.Favourites.Routes())
	app.Mount("/recommendations", h.Recommendations.Routes())

	app.NotFound(notFound)
	return app
}

func hello(writer http.ResponseWriter, _ *http.Request) {
	respond.Text(writer, http.StatusOK, HelloMessage)
}

func notFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFound("Route"))
}

// # Server Lifecycle

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
