// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"slices"
	"strings"
)

// # User Roles

// Role is an authorization tag granted to an account.
//
// Roles form a flat set: ADMIN does not imply ACTUATOR and vice versa.
type Role string

const (
	// Default role for standard registered users
	RoleUser Role = "USER"

	// Catalogue administration (book import)
	RoleAdmin Role = "ADMIN"

	// Access to operational endpoints beyond health and info
	RoleActuator Role = "ACTUATOR"
)

// legacyRolePrefix is stripped from stored values such as "ROLE_ADMIN".
const legacyRolePrefix = "ROLE_"

// ParseRole normalises a stored role value. Unknown values report false.
func ParseRole(raw string) (Role, bool) {
	normalised := strings.ToUpper(strings.TrimSpace(raw))
	normalised = strings.TrimPrefix(normalised, legacyRolePrefix)

	switch role := Role(normalised); role {
	case RoleUser, RoleAdmin, RoleActuator:
		return role, true
	default:
		return "", false
	}
}

// ParseRoles normalises every value and drops unknown ones and duplicates.
// The result is sorted.
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, value := range raw {
		if role, ok := ParseRole(value); ok && !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	slices.Sort(roles)
	return roles
}

// String implements [fmt.Stringer].
func (r Role) String() string {
	return string(r)
}
