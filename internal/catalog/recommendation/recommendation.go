// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recommendation suggests books to read next.

Two sources are offered: the highest rated books of the catalogue, and
suggestions from a language model primed with the reader's favourites.
Both are cached in Redis for a short time and never invalidated explicitly.
*/
package recommendation

import "time"

// AIRecommendation is a book suggested by the language model. It need not be
// in the catalogue.
type AIRecommendation struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

const (
	// TopRatedLimit is how many books the top-rated list holds.
	TopRatedLimit = 5

	// AILimit caps the suggestions taken from one model reply.
	AILimit = 5

	TopRatedTTL = 5 * time.Minute
	AITTL       = 30 * time.Minute
)

// Outcomes reported for each language model call.
const (
	OutcomeOK       = "ok"
	OutcomeDisabled = "disabled"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid_response"
)
