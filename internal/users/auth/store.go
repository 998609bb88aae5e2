// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email, roles included.

		Parameters:
		  - context: context.Context
		  - email: string (exact, case-sensitive)

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound when absent, otherwise storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		ExistsByEmail reports whether an account already uses the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: true if taken
		  - error: Storage failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a new account together with its roles.

		The generated ID and creation time are written back into user.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrConflict on a duplicate email, otherwise storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		AddRole grants a role to an existing account. Granting a held role is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - role: string

		Returns:
		  - error: dberr.ErrNotFound-style error for an unknown account, otherwise storage failures
	*/
	AddRole(context context.Context, userID int64, role string) error
}
