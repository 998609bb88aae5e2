// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

type Repository interface {
	// ListByBook returns the reviews of a book, newest first.
	ListByBook(context context.Context, bookID int64) ([]*Review, error)

	// ListByUser returns the reviews written by a user, newest first.
	ListByUser(context context.Context, userID int64) ([]*Review, error)

	FindByBookAndUser(context context.Context, bookID, userID int64) (*Review, error)
	Get(context context.Context, id int64) (*Review, error)

	// Upsert inserts the review or replaces the text and rating of the
	// caller's existing review for the same book.
	Upsert(context context.Context, review *Review) error

	Delete(context context.Context, id int64) error

	// Stats returns the rating sum and review count of a book.
	Stats(context context.Context, bookID int64) (sum, count int64, err error)
}
