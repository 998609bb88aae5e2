// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommendation_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/catalog/recommendation"
)

// memoryCache mimics the Redis cache, JSON round trip included.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failGet {
		return false, errors.New("connection refused")
	}
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, target)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	c.ttls[key] = ttl
	return nil
}

type stubRanker struct {
	books []*book.Book
	calls int
}

func (s *stubRanker) TopRated(_ context.Context, limit int) ([]*book.Book, error) {
	s.calls++
	return append([]*book.Book{}, s.books[:min(limit, len(s.books))]...), nil
}

type stubFavourites map[int64][]*favourite.Favourite

func (s stubFavourites) List(_ context.Context, userID int64) ([]*favourite.Favourite, error) {
	return s[userID], nil
}

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

type outcomes []string

func (o *outcomes) ObserveRecommendation(outcome string) {
	*o = append(*o, outcome)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dune() *favourite.Favourite {
	return &favourite.Favourite{
		ID:     1,
		UserID: 10,
		Book:   &book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Genres: "Science Fiction"},
	}
}

func newService(generator *stubGenerator, cache *memoryCache, observer *outcomes) *recommendation.Service {
	return recommendation.NewService(&stubRanker{}, stubFavourites{10: {dune()}}, generator, cache, observer, quietLogger())
}
