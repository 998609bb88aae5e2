// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user directory and the account entry points.

It owns the account records consulted by the authentication layer, the
identity resolution that turns a verified token subject into a request
principal, and the signup / login / logout endpoints that issue tokens.

# Architecture

  - Directory: resolves subjects and Basic credentials into [sec.Principal] values.
  - Service: account use cases (signup, login, role grants).
  - Repository: [UserRepository] over PostgreSQL.
*/
package auth

import (
	"time"

	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// # Domain Entities

// User represents a registered reader or operator.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal converts the record into a request principal.
//
// Stored role values are normalised; unknown ones are dropped, so the
// returned principal may carry no roles at all.
func (u *User) Principal() *sec.Principal {
	return sec.NewPrincipal(u.ID, u.Email, sec.ParseRoles(u.Roles)...)
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
	FieldRole     = "role"
)
