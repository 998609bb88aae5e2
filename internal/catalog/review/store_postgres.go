// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookreview/internal/platform/database/schema"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectReviews joins reviews with the author's name and the book title.
var selectReviews = fmt.Sprintf(`
	SELECT r.%s, r.%s, b.%s, r.%s, u.%s, COALESCE(r.%s, ''), r.%s, r.%s, r.%s
	FROM %s r
	JOIN %s u ON u.%s = r.%s
	JOIN %s b ON b.%s = r.%s`,
	schema.Reviews.ID, schema.Reviews.BookID, schema.Books.Title, schema.Reviews.UserID,
	schema.Users.Name, schema.Reviews.Text, schema.Reviews.Rating,
	schema.Reviews.CreatedAt, schema.Reviews.UpdatedAt,
	schema.Reviews.Table,
	schema.Users.Table, schema.Users.ID, schema.Reviews.UserID,
	schema.Books.Table, schema.Books.ID, schema.Reviews.BookID,
)

// newestFirst orders by creation time with the id as a tie-breaker.
var newestFirst = fmt.Sprintf(` ORDER BY r.%s DESC, r.%s DESC`, schema.Reviews.CreatedAt, schema.Reviews.ID)

func scanReview(row pgx.Row) (*Review, error) {
	r := &Review{}
	err := row.Scan(&r.ID, &r.BookID, &r.BookTitle, &r.UserID, &r.UserName, &r.Text, &r.Rating, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (repository *PostgresRepository) list(context context.Context, action, query string, args ...any) ([]*Review, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int64) ([]*Review, error) {
	query := selectReviews + fmt.Sprintf(` WHERE r.%s = $1`, schema.Reviews.BookID) + newestFirst
	return repository.list(context, "list_reviews_by_book", query, bookID)
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]*Review, error) {
	query := selectReviews + fmt.Sprintf(` WHERE r.%s = $1`, schema.Reviews.UserID) + newestFirst
	return repository.list(context, "list_reviews_by_user", query, userID)
}

func (repository *PostgresRepository) FindByBookAndUser(context context.Context, bookID, userID int64) (*Review, error) {
	query := selectReviews + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`, schema.Reviews.BookID, schema.Reviews.UserID)

	r, err := scanReview(repository.db.QueryRow(context, query, bookID, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_review")
	}
	return r, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Review, error) {
	query := selectReviews + fmt.Sprintf(` WHERE r.%s = $1`, schema.Reviews.ID)

	r, err := scanReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}
	return r, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = now()
		RETURNING %s, %s, %s`,
		schema.Reviews.Table,
		schema.Reviews.BookID, schema.Reviews.UserID, schema.Reviews.Text, schema.Reviews.Rating,
		schema.Reviews.UserID, schema.Reviews.BookID,
		schema.Reviews.Text, schema.Reviews.Text,
		schema.Reviews.Rating, schema.Reviews.Rating,
		schema.Reviews.UpdatedAt,
		schema.Reviews.ID, schema.Reviews.CreatedAt, schema.Reviews.UpdatedAt,
	)

	var text *string
	if r.Text != "" {
		text = &r.Text
	}

	err := repository.db.QueryRow(context, query, r.BookID, r.UserID, text, r.Rating).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "upsert_review")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Reviews.Table, schema.Reviews.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Stats(context context.Context, bookID int64) (int64, int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0), COUNT(*) FROM %s WHERE %s = $1`,
		schema.Reviews.Rating, schema.Reviews.Table, schema.Reviews.BookID)

	var sum, count int64
	if err := repository.db.QueryRow(context, query, bookID).Scan(&sum, &count); err != nil {
		return 0, 0, dberr.Wrap(err, "review_stats")
	}
	return sum, count, nil
}
