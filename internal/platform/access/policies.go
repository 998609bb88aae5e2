// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"net/http"

	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// OperationalPrefix is the path prefix routed to the operational scope.
const OperationalPrefix = "/actuator"

// # Operational Scope

// OperationalPolicy guards the /actuator endpoints.
//
// Probes and build info are public, everything else needs ACTUATOR, and any
// path outside the table is denied.
func OperationalPolicy() *Policy {
	return MustPolicy("operational", Deny,
		Rule{
			Patterns:    []string{"/actuator/health/**", "/actuator/info"},
			Requirement: Public,
		},
		Rule{
			Patterns:    []string{"/actuator/**"},
			Requirement: RequiresRole(sec.RoleActuator),
		},
	)
}

// # Application Scope

// ApplicationPolicy guards every non-operational route.
//
// Order matters: the first matching rule wins, so the public catalogue reads
// come before the authenticated catch-all.
func ApplicationPolicy() *Policy {
	return MustPolicy("application", Authenticated,
		Rule{
			Patterns: []string{
				"/auth/**",
				"/api/hello",
				"/v3/api-docs/**",
				"/swagger-ui/**",
				"/swagger-ui.html",
			},
			Requirement: Public,
		},
		Rule{
			Patterns:    []string{"/books/**"},
			Requirement: Public,
		},
		Rule{
			Patterns:    []string{"/reviews/book/**"},
			Methods:     []string{http.MethodGet},
			Requirement: Public,
		},
		Rule{
			Patterns:    []string{"/recommendations/top-rated"},
			Methods:     []string{http.MethodGet},
			Requirement: Public,
		},
		Rule{
			Patterns:    []string{"/recommendations/ai"},
			Requirement: Authenticated,
		},
		Rule{
			Patterns:    []string{"/favourites/**"},
			Requirement: Authenticated,
		},
		Rule{
			Patterns:    []string{"/admin/**"},
			Requirement: RequiresRole(sec.RoleAdmin),
		},
	)
}
