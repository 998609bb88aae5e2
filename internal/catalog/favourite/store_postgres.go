// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/platform/database/schema"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectFavourites = fmt.Sprintf(`
	SELECT f.%s, f.%s, f.%s,
	       b.%s, b.%s, b.%s, COALESCE(b.%s, ''), COALESCE(b.%s, ''), COALESCE(b.%s, ''), b.%s, b.%s, b.%s
	FROM %s f
	JOIN %s b ON b.%s = f.%s`,
	schema.Favourites.ID, schema.Favourites.UserID, schema.Favourites.CreatedAt,
	schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Description,
	schema.Books.CoverURL, schema.Books.Genres, schema.Books.Year, schema.Books.AvgRating,
	schema.Books.ReviewCount,
	schema.Favourites.Table,
	schema.Books.Table, schema.Books.ID, schema.Favourites.BookID,
)

func scanFavourite(row pgx.Row) (*Favourite, error) {
	f := &Favourite{Book: &book.Book{}}
	b := f.Book
	err := row.Scan(&f.ID, &f.UserID, &f.CreatedAt,
		&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL, &b.Genres, &b.Year, &b.AvgRating, &b.ReviewCount)
	return f, err
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]*Favourite, error) {
	query := selectFavourites + fmt.Sprintf(` WHERE f.%s = $1 ORDER BY f.%s DESC, f.%s DESC`,
		schema.Favourites.UserID, schema.Favourites.CreatedAt, schema.Favourites.ID)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favourites")
	}
	defer rows.Close()

	favourites := make([]*Favourite, 0)
	for rows.Next() {
		f, err := scanFavourite(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_favourite")
		}
		favourites = append(favourites, f)
	}

	return favourites, dberr.Wrap(rows.Err(), "list_favourites_rows")
}

func (repository *PostgresRepository) Exists(context context.Context, userID, bookID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Favourites.Table, schema.Favourites.UserID, schema.Favourites.BookID)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_favourite")
	}
	return exists, nil
}

// Add inserts the link and reads it back with its book in one round trip.
func (repository *PostgresRepository) Add(context context.Context, userID, bookID int64) (*Favourite, error) {
	query := fmt.Sprintf(`
		WITH f AS (
			INSERT INTO %s (%s, %s) VALUES ($1, $2)
			RETURNING %s, %s, %s, %s
		)
		SELECT f.%s, f.%s, f.%s,
		       b.%s, b.%s, b.%s, COALESCE(b.%s, ''), COALESCE(b.%s, ''), COALESCE(b.%s, ''), b.%s, b.%s, b.%s
		FROM f JOIN %s b ON b.%s = f.%s`,
		schema.Favourites.Table, schema.Favourites.UserID, schema.Favourites.BookID,
		schema.Favourites.ID, schema.Favourites.UserID, schema.Favourites.BookID, schema.Favourites.CreatedAt,
		schema.Favourites.ID, schema.Favourites.UserID, schema.Favourites.CreatedAt,
		schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Description,
		schema.Books.CoverURL, schema.Books.Genres, schema.Books.Year, schema.Books.AvgRating,
		schema.Books.ReviewCount,
		schema.Books.Table, schema.Books.ID, schema.Favourites.BookID,
	)

	f, err := scanFavourite(repository.db.QueryRow(context, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "add_favourite")
	}
	return f, nil
}

func (repository *PostgresRepository) Remove(context context.Context, userID, bookID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Favourites.Table, schema.Favourites.UserID, schema.Favourites.BookID)

	tag, err := repository.db.Exec(context, query, userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "remove_favourite")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
