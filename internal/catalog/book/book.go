// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package book owns the catalogue: search, detail and CSV import.
package book

// Book is a catalogue entry. Rating aggregates are maintained by the review domain.
type Book struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
	Genres      string   `json:"genres"`
	Year        *int     `json:"year"`
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int64    `json:"review_count"`
}

// Filter holds the optional search criteria. Text criteria match
// case-insensitive substrings; Genres is matched as a substring of the
// comma-separated list.
type Filter struct {
	Title  string
	Author string
	Genre  string
	Year   *int
}

// Global field names for validation and CSV headers
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldCoverURL    = "cover_url"
	FieldGenres      = "genres"
	FieldYear        = "year"
	FieldFile        = "file"
)
