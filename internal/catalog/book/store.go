// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

type Repository interface {
	Search(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)
	Get(context context.Context, id int64) (*Book, error)
	Exists(context context.Context, id int64) (bool, error)
	CreateMany(context context.Context, books []*Book) (int, error)
	TopRated(context context.Context, limit int) ([]*Book, error)

	// UpdateAggregates stores a recomputed rating average (nil when the book
	// has no reviews) and review count.
	UpdateAggregates(context context.Context, id int64, avgRating *float64, reviewCount int64) error
}
