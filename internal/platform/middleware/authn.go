// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
	"github.com/taibuivan/bookreview/internal/platform/respond"
	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// Authentication outcomes reported to the [SecurityObserver].
const (
	OutcomeAnonymous            = "anonymous"
	OutcomeTokenRejected        = "token_rejected"
	OutcomeAlreadyAuthenticated = "already_authenticated"
	OutcomeIdentityNotFound     = "identity_not_found"
	OutcomeSubjectMismatch      = "subject_mismatch"
	OutcomeDirectoryUnavailable = "directory_unavailable"
	OutcomeCancelled            = "cancelled"
	OutcomeAuthenticated        = "authenticated"
	OutcomeBasicRejected        = "basic_rejected"
	OutcomeBasicAuthenticated   = "basic_authenticated"
)

// TokenVerifier is the subset of [sec.TokenService] the interceptor needs.
type TokenVerifier interface {
	ValidateAndExtractSubject(token string) (string, error)
	IsValid(token, expectedSubject string) bool
}

// IdentityResolver loads the principal for a verified token subject.
//
// Implementations return an error wrapping [sec.ErrIdentityNotFound] for an
// unknown subject and [sec.ErrDirectoryUnavailable] when the directory fails.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (*sec.Principal, error)
}

// CredentialVerifier checks a login and password pair against the directory.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, login, password string) (*sec.Principal, error)
}

// Authenticate establishes the request principal from a bearer token.
//
// It never rejects a request on its own: a missing, foreign or invalid
// credential lets the request continue as anonymous, and the access policy
// decides later. The only failure it surfaces is an unavailable user
// directory, answered with 500 so the outage is not mistaken for anonymity.
//
// # Flow
//  1. No header, or a scheme other than "Bearer " (case-sensitive): anonymous.
//  2. Token fails verification: anonymous.
//  3. A principal is already bound: pass through untouched.
//  4. Resolve the subject. Unknown subject: anonymous.
//  5. Re-check the token against the resolved subject, then bind.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver, observer SecurityObserver) func(http.Handler) http.Handler {
	observer = observerOrNop(observer)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// ── 1. Credential Presence ────────────────────────────────────────
			token, ok := bearerToken(request)
			if !ok {
				if !ctxutil.IsAuthenticated(ctx) {
					observer.ObserveAuthentication(OutcomeAnonymous)
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			subject, err := verifier.ValidateAndExtractSubject(token)
			if err != nil {
				logger.DebugContext(ctx, "bearer_token_rejected", slog.String("reason", tokenFailureReason(err)))
				observer.ObserveAuthentication(OutcomeTokenRejected)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Idempotent Re-entry ────────────────────────────────────────
			if ctxutil.IsAuthenticated(ctx) {
				observer.ObserveAuthentication(OutcomeAlreadyAuthenticated)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Identity Resolution ────────────────────────────────────────
			principal, err := resolver.Resolve(ctx, subject)

			if ctx.Err() != nil {
				// The caller went away or the request deadline passed while the
				// directory was being consulted. Nothing is bound and the
				// handler chain is not entered.
				logger.DebugContext(ctx, "authentication_abandoned", slog.Any("error", ctx.Err()))
				observer.ObserveAuthentication(OutcomeCancelled)
				return
			}

			switch {
			case err == nil:
			case errors.Is(err, sec.ErrIdentityNotFound):
				logger.DebugContext(ctx, "bearer_subject_unknown", slog.String("subject", subject))
				observer.ObserveAuthentication(OutcomeIdentityNotFound)
				next.ServeHTTP(writer, request)
				return
			default:
				observer.ObserveAuthentication(OutcomeDirectoryUnavailable)
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			// ── 5. Subject Binding ────────────────────────────────────────────
			if !verifier.IsValid(token, principal.Subject) {
				logger.DebugContext(ctx, "bearer_subject_mismatch", slog.String("subject", subject))
				observer.ObserveAuthentication(OutcomeSubjectMismatch)
				next.ServeHTTP(writer, request)
				return
			}

			observer.ObserveAuthentication(OutcomeAuthenticated)
			next.ServeHTTP(writer, request.WithContext(bindPrincipal(ctx, principal)))
		})
	}
}

// BasicAuthenticate establishes the principal from HTTP Basic credentials.
//
// It is mounted on the operational scope only. Like [Authenticate] it never
// rejects: wrong credentials leave the request anonymous. A directory outage
// is answered with 500.
func BasicAuthenticate(verifier CredentialVerifier, observer SecurityObserver) func(http.Handler) http.Handler {
	observer = observerOrNop(observer)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			login, password, ok := request.BasicAuth()
			if !ok || ctxutil.IsAuthenticated(ctx) {
				next.ServeHTTP(writer, request)
				return
			}

			principal, err := verifier.VerifyCredentials(ctx, login, password)
			if ctx.Err() != nil {
				observer.ObserveAuthentication(OutcomeCancelled)
				return
			}

			switch {
			case err == nil:
				observer.ObserveAuthentication(OutcomeBasicAuthenticated)
				next.ServeHTTP(writer, request.WithContext(bindPrincipal(ctx, principal)))
			case errors.Is(err, sec.ErrDirectoryUnavailable):
				observer.ObserveAuthentication(OutcomeDirectoryUnavailable)
				respond.Error(writer, request, apperr.Internal(err))
			default:
				ctxutil.GetLogger(ctx).InfoContext(ctx, "basic_credentials_rejected")
				observer.ObserveAuthentication(OutcomeBasicRejected)
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme comparison is case-sensitive.
func bearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	token, found := strings.CutPrefix(header, constants.BearerPrefix)
	if !found {
		return "", false
	}
	return token, true
}

// tokenFailureReason names a verification failure for logs without echoing
// any part of the token.
func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return "expired"
	case errors.Is(err, sec.ErrTokenSignatureInvalid):
		return "signature_invalid"
	default:
		return "malformed"
	}
}

// principalSlot lets [StructuredLogger] see the principal bound by an inner
// interceptor. It belongs to a single request.
type principalSlot struct {
	principal *sec.Principal
}

type principalSlotKey struct{}

// bindPrincipal attaches principal to a derived context and records it in
// the request's log slot.
func bindPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	if slot, ok := ctx.Value(principalSlotKey{}).(*principalSlot); ok {
		slot.principal = principal
	}
	return ctxutil.WithPrincipal(ctx, principal)
}
