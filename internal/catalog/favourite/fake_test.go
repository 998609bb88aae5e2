// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

type memoryFavourites struct {
	mu     sync.Mutex
	links  []*favourite.Favourite
	clock  time.Time
	nextID int64
}

func newMemoryFavourites() *memoryFavourites {
	return &memoryFavourites{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryFavourites) ListByUser(_ context.Context, userID int64) ([]*favourite.Favourite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*favourite.Favourite, 0)
	for _, f := range slices.Backward(m.links) {
		if f.UserID == userID {
			list = append(list, f)
		}
	}
	return list, nil
}

func (m *memoryFavourites) index(userID, bookID int64) int {
	return slices.IndexFunc(m.links, func(f *favourite.Favourite) bool {
		return f.UserID == userID && f.Book.ID == bookID
	})
}

func (m *memoryFavourites) Exists(_ context.Context, userID, bookID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index(userID, bookID) >= 0, nil
}

func (m *memoryFavourites) Add(_ context.Context, userID, bookID int64) (*favourite.Favourite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index(userID, bookID) >= 0 {
		return nil, dberr.ErrConflict
	}

	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	f := &favourite.Favourite{ID: m.nextID, UserID: userID, Book: &book.Book{ID: bookID}, CreatedAt: m.clock}
	m.links = append(m.links, f)
	return f, nil
}

func (m *memoryFavourites) Remove(_ context.Context, userID, bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(userID, bookID)
	if i < 0 {
		return dberr.ErrNotFound
	}
	m.links = slices.Delete(m.links, i, i+1)
	return nil
}

type fakeCatalog map[int64]bool

func (c fakeCatalog) Exists(_ context.Context, id int64) (bool, error) {
	return c[id], nil
}
