// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Account Constraints

const (
	// MinPasswordLength is enforced on signup.
	MinPasswordLength = 6

	// MaxPasswordLength is the bcrypt input limit.
	MaxPasswordLength = 72

	// MaxNameLength matches the users.name column.
	MaxNameLength = 255

	// MaxEmailLength matches the users.email column.
	MaxEmailLength = 255
)

// LogoutMessage is returned by the logout endpoint. Tokens are stateless, so
// logging out only means the client discards its token.
const LogoutMessage = "Logged out"
