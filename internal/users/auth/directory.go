// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/bookreview/internal/platform/dberr"
	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// ErrInvalidCredentials is returned when a password does not match the account.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Directory resolves identities against the account store.
//
// It satisfies both the bearer interceptor's identity resolver and the
// Basic interceptor's credential verifier.
type Directory struct {
	users UserRepository
}

// NewDirectory creates a directory over users.
func NewDirectory(users UserRepository) *Directory {
	return &Directory{users: users}
}

// Resolve loads the principal for a verified token subject.
//
// An unknown subject, or an account left without any recognised role, yields
// [sec.ErrIdentityNotFound]. Every other store failure wraps
// [sec.ErrDirectoryUnavailable].
func (directory *Directory) Resolve(ctx context.Context, subject string) (*sec.Principal, error) {
	user, err := directory.lookup(ctx, subject)
	if err != nil {
		return nil, err
	}

	return principalOf(user)
}

// VerifyCredentials checks an email and password pair.
//
// Unknown accounts still pay for one bcrypt comparison.
func (directory *Directory) VerifyCredentials(ctx context.Context, login, password string) (*sec.Principal, error) {
	user, err := directory.lookup(ctx, login)
	if err != nil {
		if errors.Is(err, sec.ErrIdentityNotFound) {
			sec.BurnPasswordCheck(password)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return principalOf(user)
}

func (directory *Directory) lookup(ctx context.Context, email string) (*User, error) {
	user, err := directory.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return user, nil
	case dberr.IsNotFound(err):
		return nil, sec.ErrIdentityNotFound
	default:
		return nil, fmt.Errorf("%w: %w", sec.ErrDirectoryUnavailable, err)
	}
}

func principalOf(user *User) (*sec.Principal, error) {
	principal := user.Principal()
	if len(principal.Roles) == 0 {
		return nil, sec.ErrIdentityNotFound
	}
	return principal, nil
}
