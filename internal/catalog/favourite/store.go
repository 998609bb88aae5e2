// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite

import "context"

type Repository interface {
	// ListByUser returns the reader's favourites with their books, newest first.
	ListByUser(context context.Context, userID int64) ([]*Favourite, error)

	Exists(context context.Context, userID, bookID int64) (bool, error)

	// Add returns a conflict error when the book is already a favourite.
	Add(context context.Context, userID, bookID int64) (*Favourite, error)

	// Remove returns a not-found error when the book was not a favourite.
	Remove(context context.Context, userID, bookID int64) error
}
