// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/bookreview/internal/api"
	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/catalog/recommendation"
	"github.com/taibuivan/bookreview/internal/catalog/review"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/gemini"
	"github.com/taibuivan/bookreview/internal/platform/logger"
	"github.com/taibuivan/bookreview/internal/platform/mailer"
	"github.com/taibuivan/bookreview/internal/platform/metrics"
	"github.com/taibuivan/bookreview/internal/platform/migration"
	pgstore "github.com/taibuivan/bookreview/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookreview/internal/platform/redis"
	"github.com/taibuivan/bookreview/internal/platform/sec"
	"github.com/taibuivan/bookreview/internal/users/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

// runServe performs the startup sequence:
//
//  1. Logger and configuration.
//  2. PostgreSQL pool and Redis client.
//  3. Database migrations (idempotent).
//  4. Token service, mailer and language model client.
//  5. Domain wiring.
//  6. HTTP server with graceful shutdown.
func runServe(_ *cobra.Command, _ []string) error {
	// ── 1. Logger & Configuration ─────────────────────────────────────────
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	// Bounded so that misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 2. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return startupFailure(log, "connect to postgres", err)
	}
	defer func() {
		log.Info("postgres_pool_closing")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return startupFailure(log, "connect to redis", err)
	}
	defer func() {
		log.Info("redis_client_closing")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", logger.Err(cerr))
		}
	}()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return startupFailure(log, "run migrations", err)
	}

	// ── 4. Security, Mail & Language Model ────────────────────────────────
	signingKey, err := cfg.SigningKey()
	if err != nil {
		return startupFailure(log, "decode signing key", err)
	}
	tokens, err := sec.NewTokenService(signingKey, cfg.JWTTTL)
	if err != nil {
		return startupFailure(log, "initialize token service", err)
	}

	mail, err := mailer.New(mailer.Options{
		Enabled:  cfg.EmailEnabled,
		Sender:   cfg.EmailSender,
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	if err != nil {
		return startupFailure(log, "initialize mailer", err)
	}
	log.Info("mailer_configured", slog.Bool("enabled", mail.Enabled()))

	model := gemini.New(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	log.Info("language_model_configured", slog.Bool("enabled", model.Enabled()), slog.String("model", cfg.GeminiModel))

	collector := metrics.NewCollector()

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	users := auth.NewUserRepository(pool)
	directory := auth.NewDirectory(users)
	authService := auth.NewService(users, tokens, mail, collector)

	bookService := book.NewService(book.NewPostgresRepository(pool), log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), bookService, log)
	favouriteService := favourite.NewService(favourite.NewPostgresRepository(pool), bookService)
	recommendationService := recommendation.NewService(
		bookService,
		favouriteService,
		model,
		recommendation.NewRedisCache(rdb),
		collector,
		log,
	)

	health := api.NewHealthHandler(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, cfg.AppVersion, log)

	server := api.NewServer(cfg, log, collector,
		api.Security{Tokens: tokens, Identities: directory, Credentials: directory},
		api.Handlers{
			Health:          health,
			Auth:            auth.NewHandler(authService),
			Books:           book.NewHandler(bookService),
			Reviews:         review.NewHandler(reviewService),
			Favourites:      favourite.NewHandler(favouriteService),
			Recommendations: recommendation.NewHandler(recommendationService),
		},
	)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-signalCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_failed", logger.Err(err))
		return err
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", logger.Err(err))
		return err
	}

	log.Info("server_stopped")
	return nil
}

// startupFailure logs a failed startup stage and returns the error for cobra.
func startupFailure(log *slog.Logger, stage string, err error) error {
	log.Error("startup_failure", slog.String("stage", stage), logger.Err(err))
	return fmt.Errorf("%s: %w", stage, err)
}

