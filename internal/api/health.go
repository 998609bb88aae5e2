// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/respond"
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"

	// checkTimeout bounds each dependency check of a probe.
	checkTimeout = 3 * time.Second
)

// HealthDependencies holds the injectable dependency checkers for the readiness probe.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(context.Context) error
}

// HealthHandler serves the public probes and build information of the
// operational scope.
type HealthHandler struct {
	dependencies HealthDependencies
	version      string
	logger       *slog.Logger
}

// NewHealthHandler creates the probe handlers.
func NewHealthHandler(deps HealthDependencies, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{dependencies: deps, version: version, logger: logger}
}

type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Liveness handles GET /actuator/health/liveness. The process answering is enough.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{constants.FieldStatus: StatusUp})
}

// Readiness handles GET /actuator/health and /actuator/health/readiness.
// It answers 503 when any dependency fails its check.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		result := checkResult{Name: dependency.name, Status: StatusUp}

		checkCtx, cancel := context.WithTimeout(request.Context(), checkTimeout)
		err := dependency.check(checkCtx)
		cancel()

		if err != nil {
			result.Status = StatusDown
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	responseStatus := StatusUp
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = StatusDown
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}

// Info handles GET /actuator/info.
func (handler *HealthHandler) Info(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: handler.version,
	})
}
