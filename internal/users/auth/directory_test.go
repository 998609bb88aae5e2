// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/platform/sec"
	"github.com/taibuivan/bookreview/internal/users/auth"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return hash
}

/*
TestDirectory_Resolve covers hits, misses and directory failures.
*/
func TestDirectory_Resolve(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers(
		&auth.User{Email: "reader@example.com", Roles: []string{"USER"}},
		&auth.User{Email: "legacy@example.com", Roles: []string{"ROLE_ADMIN", "role_user", "EDITOR"}},
		&auth.User{Email: "orphan@example.com", Roles: []string{"EDITOR"}},
	)
	directory := auth.NewDirectory(users)

	t.Run("hit", func(t *testing.T) {
		principal, err := directory.Resolve(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", principal.Subject)
		assert.Equal(t, []sec.Role{sec.RoleUser}, principal.Roles)
		assert.NotZero(t, principal.UserID)
	})

	t.Run("legacy_prefixes_normalised", func(t *testing.T) {
		principal, err := directory.Resolve(ctx, "legacy@example.com")
		require.NoError(t, err)
		assert.Equal(t, []sec.Role{sec.RoleAdmin, sec.RoleUser}, principal.Roles)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := directory.Resolve(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, sec.ErrIdentityNotFound)
	})

	t.Run("subject_is_case_sensitive", func(t *testing.T) {
		_, err := directory.Resolve(ctx, "READER@example.com")
		assert.ErrorIs(t, err, sec.ErrIdentityNotFound)
	})

	t.Run("no_recognised_roles", func(t *testing.T) {
		_, err := directory.Resolve(ctx, "orphan@example.com")
		assert.ErrorIs(t, err, sec.ErrIdentityNotFound)
	})

	t.Run("store_failure", func(t *testing.T) {
		broken := newMemoryUsers()
		broken.failWith = errors.New("connection refused")

		_, err := auth.NewDirectory(broken).Resolve(ctx, "reader@example.com")
		assert.ErrorIs(t, err, sec.ErrDirectoryUnavailable)
		assert.NotErrorIs(t, err, sec.ErrIdentityNotFound)
	})
}

/*
TestDirectory_VerifyCredentials checks password verification for Basic auth.
*/
func TestDirectory_VerifyCredentials(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers(&auth.User{
		Email:        "ops@example.com",
		PasswordHash: mustHash(t, "s3cret-pass"),
		Roles:        []string{"ACTUATOR"},
	})
	directory := auth.NewDirectory(users)

	principal, err := directory.VerifyCredentials(ctx, "ops@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, principal.HasRole(sec.RoleActuator))

	_, err = directory.VerifyCredentials(ctx, "ops@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = directory.VerifyCredentials(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, sec.ErrIdentityNotFound)
}
