// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil binds per-request values to a [context.Context]: the
// correlation ID, the request-scoped logger and the authenticated principal.
//
// Keys are unexported struct values, so no other package can read or
// overwrite them without going through these helpers.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookreview/internal/platform/sec"
)

type contextKey struct{ name string }

var (
	requestIDKey = contextKey{"request_id"}
	loggerKey    = contextKey{"logger"}
	principalKey = contextKey{"principal"}
)

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID is empty when no ID was assigned.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger falls back to [slog.Default] outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithPrincipal binds the caller resolved from the request credentials.
func WithPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *sec.Principal {
	principal, _ := ctx.Value(principalKey).(*sec.Principal)
	return principal
}

func IsAuthenticated(ctx context.Context) bool {
	return GetPrincipal(ctx) != nil
}
