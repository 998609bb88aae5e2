// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// Principal is the authenticated identity bound to a single request.
//
// It is built once by the identity resolver, attached to the request context
// and discarded with it. It is never persisted or shared between requests.
type Principal struct {
	UserID  int64
	Subject string
	Roles   []Role
}

// NewPrincipal builds a Principal with a sorted, duplicate-free role set.
func NewPrincipal(userID int64, subject string, roles ...Role) *Principal {
	set := make([]Role, 0, len(roles))
	for _, role := range roles {
		if !slices.Contains(set, role) {
			set = append(set, role)
		}
	}
	slices.Sort(set)

	return &Principal{UserID: userID, Subject: subject, Roles: set}
}

// HasRole reports whether the principal carries role.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, role)
}

// RoleNames returns the roles as plain strings, e.g. for a "roles" token claim.
func (p *Principal) RoleNames() []string {
	names := make([]string, len(p.Roles))
	for i, role := range p.Roles {
		names[i] = role.String()
	}
	return names
}
