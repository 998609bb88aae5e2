// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookreview/internal/platform/database/schema"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectUserWithRoles aggregates the role rows next to the account columns.
var selectUserWithRoles = fmt.Sprintf(`
	SELECT u.%s, u.%s, u.%s, u.%s, u.%s,
	       COALESCE(array_agg(r.%s ORDER BY r.%s) FILTER (WHERE r.%s IS NOT NULL), '{}')
	FROM %s u
	LEFT JOIN %s r ON r.%s = u.%s`,
	schema.Users.ID, schema.Users.Email, schema.Users.Name, schema.Users.PasswordHash, schema.Users.CreatedAt,
	schema.UserRoles.Role, schema.UserRoles.Role, schema.UserRoles.Role,
	schema.Users.Table,
	schema.UserRoles.Table, schema.UserRoles.UserID, schema.Users.ID,
)

/*
FindByEmail retrieves an account and its roles by the unique email address.

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or wrapped database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := selectUserWithRoles + fmt.Sprintf(`
	WHERE u.%s = $1
	GROUP BY u.%s`, schema.Users.Email, schema.Users.ID)

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.Roles,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}

	return user, nil
}

// ExistsByEmail reports whether the email is already registered.
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Users.Table, schema.Users.Email)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_user_by_email")
	}

	return exists, nil
}

/*
Create inserts the account row and its role rows in one transaction.

Returns:
  - error: dberr.ErrConflict on duplicate email, or wrapped database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_user_begin")
	}
	defer transaction.Rollback(context)

	insertUser := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		schema.Users.Table, schema.Users.Email, schema.Users.Name, schema.Users.PasswordHash,
		schema.Users.ID, schema.Users.CreatedAt,
	)

	err = transaction.QueryRow(context, insertUser, user.Email, user.Name, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	if len(user.Roles) > 0 {
		insertRoles := fmt.Sprintf(`
			INSERT INTO %s (%s, %s)
			SELECT $1, unnest($2::varchar[])
			ON CONFLICT DO NOTHING`,
			schema.UserRoles.Table, schema.UserRoles.UserID, schema.UserRoles.Role,
		)

		if _, err := transaction.Exec(context, insertRoles, user.ID, user.Roles); err != nil {
			return dberr.Wrap(err, "create_user_roles")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_user_commit")
	}

	return nil
}

// AddRole grants role to the account. An unknown account violates the foreign key.
func (repository *PostgresUserRepository) AddRole(context context.Context, userID int64, role string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		schema.UserRoles.Table, schema.UserRoles.UserID, schema.UserRoles.Role,
	)

	if _, err := repository.pool.Exec(context, query, userID, role); err != nil {
		return dberr.Wrap(err, "add_user_role")
	}

	return nil
}
