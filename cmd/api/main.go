// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the BookReview HTTP API server.
//
// # Commands
//
//   - serve (default): run the HTTP server.
//   - migrate: apply database migrations and exit.
//   - grant-role <email> <role>: add a role to an existing account.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/bookreview/internal/platform/config"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "bookreview",
	Short:         "BookReview API server",
	Long:          `bookreview serves the book catalogue, reviews, favourites and recommendations over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, grantRoleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap builds the logger and loads the configuration.
//
// A JSON logger is used until the environment is known, so configuration
// errors are structured too.
func bootstrap() (*config.Config, *slog.Logger, error) {
	log := logger.New(os.Stdout, logger.Options{App: constants.AppName})

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failure", slog.String("stage", "load configuration"), logger.Err(err))
		return nil, nil, err
	}

	log = logger.New(os.Stdout, logger.Options{
		App:         constants.AppName,
		Development: cfg.IsDevelopment(),
		Debug:       cfg.Debug,
	})
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("version", cfg.AppVersion),
	)

	return cfg, log, nil
}
