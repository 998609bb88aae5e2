// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/bookreview/internal/catalog/review"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

type memoryReviews struct {
	mu      sync.Mutex
	reviews map[int64]*review.Review
	nextID  int64
	clock   time.Time
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{
		reviews: make(map[int64]*review.Review),
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryReviews) filter(keep func(*review.Review) bool) []*review.Review {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*review.Review, 0)
	for _, r := range m.reviews {
		if keep(r) {
			clone := *r
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

func (m *memoryReviews) ListByBook(_ context.Context, bookID int64) ([]*review.Review, error) {
	return m.filter(func(r *review.Review) bool { return r.BookID == bookID }), nil
}

func (m *memoryReviews) ListByUser(_ context.Context, userID int64) ([]*review.Review, error) {
	return m.filter(func(r *review.Review) bool { return r.UserID == userID }), nil
}

func (m *memoryReviews) FindByBookAndUser(_ context.Context, bookID, userID int64) (*review.Review, error) {
	matched := m.filter(func(r *review.Review) bool { return r.BookID == bookID && r.UserID == userID })
	if len(matched) == 0 {
		return nil, dberr.ErrNotFound
	}
	return matched[0], nil
}

func (m *memoryReviews) Get(_ context.Context, id int64) (*review.Review, error) {
	matched := m.filter(func(r *review.Review) bool { return r.ID == id })
	if len(matched) == 0 {
		return nil, dberr.ErrNotFound
	}
	return matched[0], nil
}

func (m *memoryReviews) Upsert(_ context.Context, r *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Minute)

	for _, existing := range m.reviews {
		if existing.BookID == r.BookID && existing.UserID == r.UserID {
			existing.Text, existing.Rating, existing.UpdatedAt = r.Text, r.Rating, m.clock
			r.ID, r.CreatedAt, r.UpdatedAt = existing.ID, existing.CreatedAt, existing.UpdatedAt
			return nil
		}
	}

	m.nextID++
	r.ID, r.CreatedAt, r.UpdatedAt = m.nextID, m.clock, m.clock
	clone := *r
	m.reviews[r.ID] = &clone
	return nil
}

func (m *memoryReviews) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reviews[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memoryReviews) Stats(_ context.Context, bookID int64) (int64, int64, error) {
	var sum, count int64
	for _, r := range m.filter(func(r *review.Review) bool { return r.BookID == bookID }) {
		sum += int64(r.Rating)
		count++
	}
	return sum, count, nil
}

type aggregate struct {
	avg   *float64
	count int64
}

// fakeCatalog knows a fixed set of books and records aggregate updates.
type fakeCatalog struct {
	books      map[int64]bool
	aggregates map[int64]aggregate
}

func newFakeCatalog(ids ...int64) *fakeCatalog {
	catalog := &fakeCatalog{books: make(map[int64]bool), aggregates: make(map[int64]aggregate)}
	for _, id := range ids {
		catalog.books[id] = true
	}
	return catalog
}

func (c *fakeCatalog) Exists(_ context.Context, id int64) (bool, error) {
	return c.books[id], nil
}

func (c *fakeCatalog) UpdateAggregates(_ context.Context, id int64, avg *float64, count int64) error {
	if !c.books[id] {
		return dberr.ErrNotFound
	}
	c.aggregates[id] = aggregate{avg: avg, count: count}
	return nil
}

func newService(repo *memoryReviews, catalog *fakeCatalog) *review.Service {
	return review.NewService(repo, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
