// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm normalises free text coming from CSV imports and search
// queries.
//
// # Usage
//
// Catalogue rows arrive from spreadsheets in mixed Unicode forms. [Clean] puts
// stored text in NFC; [Fold] builds accent- and case-insensitive keys used to
// deduplicate genres.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean returns s in NFC with control characters removed, runs of whitespace
// collapsed to one space and the ends trimmed.
func Clean(s string) string {
	s = norm.NFC.String(s)

	var builder strings.Builder
	builder.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = builder.Len() > 0
		case unicode.IsControl(r), r == unicode.ReplacementChar:
			continue
		default:
			if pendingSpace {
				builder.WriteByte(' ')
				pendingSpace = false
			}
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// Fold converts s into a comparison key.
//
// # Transformation Pipeline
//
// 1. Cleans the text.
// 2. Normalizes to NFD (é → e + combining acute).
// 3. Removes combining marks.
// 4. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, Clean(s))
	if err != nil {
		result = Clean(s)
	}
	return strings.ToLower(result)
}

// Genres normalises a comma-separated genre list: each entry is cleaned,
// empties are dropped and entries equal under [Fold] keep their first spelling.
func Genres(raw string) string {
	seen := make(map[string]struct{})
	var genres []string

	for _, entry := range strings.Split(raw, ",") {
		genre := Clean(entry)
		if genre == "" {
			continue
		}

		key := Fold(genre)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, genre)
	}

	return strings.Join(genres, ", ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
