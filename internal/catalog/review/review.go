// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages reader reviews and keeps the per-book rating
aggregates in step with them.

A reader holds at most one review per book; posting again replaces it.
*/
package review

import "time"

// Review is a reader's rating of a book, joined with display names.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the body of a create-or-update request.
type Input struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

const (
	MinRating     = 1
	MaxRating     = 5
	MaxTextLength = 5000

	FieldText   = "text"
	FieldRating = "rating"
)

/*
Average returns the mean rating rounded half-up to one decimal place, or nil
when there are no reviews.

The division is carried out on integers so that 4.25 becomes 4.3 and 4.35
becomes 4.4, with no binary floating point drift.
*/
func Average(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}

	tenths := (20*sum + count) / (2 * count)
	avg := float64(tenths) / 10
	return &avg
}
