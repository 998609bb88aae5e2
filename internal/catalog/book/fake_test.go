// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

type memoryBooks struct {
	mu      sync.Mutex
	books   []*book.Book
	batches []int
}

func (m *memoryBooks) Search(_ context.Context, f book.Filter, limit, offset int) ([]*book.Book, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	contains := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}

	var matched []*book.Book
	for _, b := range m.books {
		if !contains(b.Title, f.Title) || !contains(b.Author, f.Author) || !contains(b.Genres, f.Genre) {
			continue
		}
		if f.Year != nil && (b.Year == nil || *b.Year != *f.Year) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (m *memoryBooks) Get(_ context.Context, id int64) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memoryBooks) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := m.Get(ctx, id)
	return err == nil, nil
}

func (m *memoryBooks) CreateMany(_ context.Context, books []*book.Book) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batches = append(m.batches, len(books))
	for _, b := range books {
		clone := *b
		clone.ID = int64(len(m.books) + 1)
		m.books = append(m.books, &clone)
	}
	return len(books), nil
}

func (m *memoryBooks) TopRated(_ context.Context, limit int) ([]*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rated []*book.Book
	for _, b := range m.books {
		if b.AvgRating != nil {
			rated = append(rated, b)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].AvgRating != *rated[j].AvgRating {
			return *rated[i].AvgRating > *rated[j].AvgRating
		}
		return rated[i].ReviewCount > rated[j].ReviewCount
	})
	return rated[:min(limit, len(rated))], nil
}

func (m *memoryBooks) UpdateAggregates(_ context.Context, id int64, avg *float64, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.books {
		if b.ID == id {
			b.AvgRating, b.ReviewCount = avg, count
			return nil
		}
	}
	return dberr.ErrNotFound
}
