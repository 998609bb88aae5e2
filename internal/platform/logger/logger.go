// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the process-wide structured logger.
//
// Production writes JSON lines for log shipping; development writes coloured
// console output through tint. Both redact credential-bearing attributes.
package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// redactedKeys are attribute keys whose values never reach the output.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"authorization": {},
	"secret":        {},
	"api_key":       {},
}

// Options selects the handler and level.
type Options struct {
	App         string
	Development bool
	Debug       bool
}

// New creates a logger writing to output and tagged with the app attribute.
func New(output io.Writer, options Options) *slog.Logger {
	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if options.Development {
		handler = tint.NewHandler(output, &tint.Options{
			Level:       level,
			TimeFormat:  time.Kitchen,
			ReplaceAttr: redact,
		})
	} else {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redact,
		})
	}

	return slog.New(handler).With(slog.String("app", options.App))
}

// Err wraps an error as a log attribute that tint renders highlighted.
func Err(err error) slog.Attr {
	return tint.Err(err)
}

// redact blanks out attributes that may carry credentials.
func redact(_ []string, attr slog.Attr) slog.Attr {
	if _, found := redactedKeys[attr.Key]; found {
		return slog.String(attr.Key, "[REDACTED]")
	}
	return attr
}
