// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

// selectColumns lists the book columns in [scanBook] order. Nullable text
// columns are read as empty strings.
var selectColumns = fmt.Sprintf(`%s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s`,
	schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Description,
	schema.Books.CoverURL, schema.Books.Genres, schema.Books.Year, schema.Books.AvgRating,
	schema.Books.ReviewCount,
)

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL, &b.Genres, &b.Year, &b.AvgRating, &b.ReviewCount)
	return b, err
}

func (repository *PostgresRepository) Search(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	var conditions []string
	var args []any

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, likePattern(value))
		conditions = append(conditions, fmt.Sprintf(`%s ILIKE $%d`, column, len(args)))
	}

	addLike(schema.Books.Title, f.Title)
	addLike(schema.Books.Author, f.Author)
	addLike(schema.Books.Genres, f.Genre)

	if f.Year != nil {
		args = append(args, *f.Year)
		conditions = append(conditions, fmt.Sprintf(`%s = $%d`, schema.Books.Year, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.Books.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC, %s ASC LIMIT $%s OFFSET $%s`,
		selectColumns, schema.Books.Table, where, schema.Books.Title, schema.Books.ID,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_books")
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "search_books_rows")
	}

	return books, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Books.Table, schema.Books.ID)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Books.Table, schema.Books.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_book")
	}
	return exists, nil
}

// CreateMany bulk-loads books with the COPY protocol.
func (repository *PostgresRepository) CreateMany(context context.Context, books []*Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	columns := []string{
		schema.Books.Title, schema.Books.Author, schema.Books.Description,
		schema.Books.CoverURL, schema.Books.Genres, schema.Books.Year,
	}

	copied, err := repository.db.CopyFrom(context,
		pgx.Identifier{schema.Books.Table},
		columns,
		pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
			b := books[i]
			return []any{b.Title, b.Author, nullable(b.Description), nullable(b.CoverURL), nullable(b.Genres), b.Year}, nil
		}),
	)
	if err != nil {
		return 0, dberr.Wrap(err, "copy_books")
	}

	return int(copied), nil
}

func (repository *PostgresRepository) TopRated(context context.Context, limit int) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s IS NOT NULL
		ORDER BY %s DESC, %s DESC, %s ASC
		LIMIT $1`,
		selectColumns, schema.Books.Table,
		schema.Books.AvgRating,
		schema.Books.AvgRating, schema.Books.ReviewCount, schema.Books.ID,
	)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "top_rated_books")
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, dberr.Wrap(rows.Err(), "top_rated_books_rows")
}

func (repository *PostgresRepository) UpdateAggregates(context context.Context, id int64, avgRating *float64, reviewCount int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Books.Table, schema.Books.AvgRating, schema.Books.ReviewCount, schema.Books.ID)

	tag, err := repository.db.Exec(context, query, id, avgRating, reviewCount)
	if err != nil {
		return dberr.Wrap(err, "update_book_aggregates")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// likePattern wraps value for a substring ILIKE match, escaping wildcards.
func likePattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
	return "%" + escaped + "%"
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
