// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// # Contracts & Types

// TokenIssuer signs access tokens. It is satisfied by [sec.TokenService].
type TokenIssuer interface {
	Issue(subject string, extraClaims map[string]any, now time.Time) (string, error)
}

// WelcomeMailer sends the signup greeting. Delivery failures never fail a signup.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// IssueObserver counts issued tokens.
type IssueObserver interface {
	ObserveTokenIssued()
}

var errInvalidLogin = apperr.Unauthorized("Invalid email or password")

// Service implements the account use cases.
type Service struct {
	userRepository UserRepository
	directory      *Directory
	tokenIssuer    TokenIssuer
	mailer         WelcomeMailer
	observer       IssueObserver
	now            func() time.Time
}

// NewService constructs a [Service]. mailer and observer may be nil.
func NewService(users UserRepository, tokens TokenIssuer, mailer WelcomeMailer, observer IssueObserver) *Service {
	return &Service{
		userRepository: users,
		directory:      NewDirectory(users),
		tokenIssuer:    tokens,
		mailer:         mailer,
		observer:       observer,
		now:            time.Now,
	}
}

// # Registration Flow

// SignupInput holds the data required to open an account.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

/*
Signup creates a USER account, sends the welcome mail and logs the caller in.

Parameters:
  - context: context.Context
  - input: SignupInput (already validated for shape)

Returns:
  - string: Signed access token for the new account
  - error: Conflict if the email is taken, or storage failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (string, error) {
	email := strings.TrimSpace(input.Email)

	exists, err := service.userRepository.ExistsByEmail(context, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.Conflict("Email already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashedPassword,
		Roles:        []string{sec.RoleUser.String()},
	}

	// A concurrent signup can still win the race on the unique index.
	if err := service.userRepository.Create(context, user); err != nil {
		if dberr.IsConflict(err) {
			return "", apperr.Conflict("Email already registered")
		}
		return "", err
	}

	service.sendWelcome(context, user)

	return service.issue(user.Principal())
}

// # Authentication Flow

/*
Login verifies an email and password pair and issues a token.

Returns:
  - string: Signed access token
  - error: Unauthorized for any credential failure, Internal if the directory is down
*/
func (service *Service) Login(context context.Context, email, password string) (string, error) {
	principal, err := service.directory.VerifyCredentials(context, strings.TrimSpace(email), password)
	if err != nil {
		if errors.Is(err, sec.ErrDirectoryUnavailable) {
			return "", apperr.Internal(err)
		}
		return "", errInvalidLogin
	}

	return service.issue(principal)
}

// # Administration

/*
GrantRole adds a role to an existing account.

Parameters:
  - context: context.Context
  - email: string
  - roleName: string (USER, ADMIN or ACTUATOR, optionally ROLE_-prefixed)

Returns:
  - error: ValidationError for an unknown role, NotFound for an unknown account
*/
func (service *Service) GrantRole(context context.Context, email, roleName string) error {
	role, ok := sec.ParseRole(roleName)
	if !ok {
		return apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of USER, ADMIN, ACTUATOR",
		})
	}

	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return err
	}

	return service.userRepository.AddRole(context, user.ID, role.String())
}

// # Helpers

// issue signs a token for principal carrying its roles as a claim.
func (service *Service) issue(principal *sec.Principal) (string, error) {
	token, err := service.tokenIssuer.Issue(principal.Subject, map[string]any{
		constants.RolesClaim: principal.RoleNames(),
	}, service.now())
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_token_issue_failed: %w", err))
	}

	if service.observer != nil {
		service.observer.ObserveTokenIssued()
	}

	return token, nil
}

func (service *Service) sendWelcome(context context.Context, user *User) {
	if service.mailer == nil {
		return
	}

	if err := service.mailer.SendWelcome(context, user.Email, user.Name); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "welcome_email_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
