// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/bookreview/internal/platform/constants"
	pgstore "github.com/taibuivan/bookreview/internal/platform/postgres"
	"github.com/taibuivan/bookreview/internal/users/auth"
)

// grantRoleCmd is the only way to create operators: signup grants USER only.
var grantRoleCmd = &cobra.Command{
	Use:     "grant-role <email> <role>",
	Short:   "Add a role (USER, ADMIN, ACTUATOR) to an existing account",
	Args:    cobra.ExactArgs(2),
	Example: "  bookreview grant-role ops@example.com ACTUATOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), constants.StartupTimeout)
		defer cancel()

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return startupFailure(log, "connect to postgres", err)
		}
		defer pool.Close()

		// Granting needs no token issuer, mailer or observer.
		service := auth.NewService(auth.NewUserRepository(pool), nil, nil, nil)
		if err := service.GrantRole(ctx, args[0], args[1]); err != nil {
			return err
		}

		log.Info("role_granted", slog.String("email", args[0]), slog.String("role", args[1]))
		return nil
	},
}
