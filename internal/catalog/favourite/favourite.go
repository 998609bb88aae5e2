// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package favourite keeps each reader's shortlist of books.
package favourite

import (
	"time"

	"github.com/taibuivan/bookreview/internal/catalog/book"
)

// Favourite links a reader to a book. A book appears at most once per reader.
type Favourite struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Book      *book.Book `json:"book"`
	CreatedAt time.Time  `json:"created_at"`
}
