// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page-based navigation for catalogue listings and
// builds the "meta" block returned alongside paginated data.
package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	// MaxLimit caps a single page. Larger requests are clamped, not rejected.
	MaxLimit = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes the requested page given the total number of matches.
func (p Params) Meta(total int) Meta {
	return NewMeta(p.Page, p.Limit, total)
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta computes TotalPages by ceiling division. A zero limit yields zero pages.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads "page" and "limit" from the query string.
//
// Missing or malformed values fall back to the defaults; a limit above
// [MaxLimit] is clamped to it.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	params := Params{
		Page:  positiveOr(query.Get("page"), DefaultPage),
		Limit: positiveOr(query.Get("limit"), DefaultLimit),
	}
	params.Limit = min(params.Limit, MaxLimit)

	return params
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
