// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds pointers to values for optional fields such as a
// book's publication year.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
