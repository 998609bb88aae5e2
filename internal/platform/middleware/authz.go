// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookreview/internal/platform/access"
	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
	"github.com/taibuivan/bookreview/internal/platform/respond"
)

// Policy decision labels reported to the [SecurityObserver].
const (
	DecisionAllow           = "allow"
	DecisionUnauthenticated = "unauthenticated"
	DecisionForbidden       = "forbidden"
)

// SecurityObserver receives authentication and authorization outcomes.
// [metrics.Collector] implements it.
type SecurityObserver interface {
	ObserveAuthentication(outcome string)
	ObservePolicyDecision(scope, decision string)
}

type nopObserver struct{}

func (nopObserver) ObserveAuthentication(string)         {}
func (nopObserver) ObservePolicyDecision(string, string) {}

func observerOrNop(observer SecurityObserver) SecurityObserver {
	if observer == nil {
		return nopObserver{}
	}
	return observer
}

// Authorize enforces an access policy after the authentication interceptors.
//
// # Outcomes
//   - Requirement satisfied: the handler runs.
//   - Anonymous caller on a protected route: 401 with a WWW-Authenticate
//     challenge naming the scheme the scope accepts.
//   - Authenticated caller without the required role, or a denied route: 403.
func Authorize(policy *access.Policy, challenge string, observer SecurityObserver) func(http.Handler) http.Handler {
	observer = observerOrNop(observer)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			principal := ctxutil.GetPrincipal(ctx)
			requirement := policy.EvaluateRequest(request)

			switch requirement.Check(principal) {
			case access.Allow:
				observer.ObservePolicyDecision(policy.Name(), DecisionAllow)
				next.ServeHTTP(writer, request)

			case access.Unauthenticated:
				observer.ObservePolicyDecision(policy.Name(), DecisionUnauthenticated)
				writer.Header().Set(constants.HeaderWWWAuthenticate, challenge)
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))

			default:
				observer.ObservePolicyDecision(policy.Name(), DecisionForbidden)
				ctxutil.GetLogger(ctx).InfoContext(ctx, "access_denied",
					slog.String("scope", policy.Name()),
					slog.String("requirement", requirement.String()),
				)
				respond.Error(writer, request, apperr.Forbidden("Access denied"))
			}
		})
	}
}
