// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/platform/constants"
	"github.com/taibuivan/bookreview/internal/platform/gemini"
)

// BookRanker lists the highest rated books.
type BookRanker interface {
	TopRated(context context.Context, limit int) ([]*book.Book, error)
}

// FavouriteLister lists a reader's favourites, newest first.
type FavouriteLister interface {
	List(context context.Context, userID int64) ([]*favourite.Favourite, error)
}

// Generator completes a text prompt.
type Generator interface {
	GenerateContent(context context.Context, prompt string) (string, error)
}

// Observer counts language model calls by outcome.
type Observer interface {
	ObserveRecommendation(outcome string)
}

type Service struct {
	books      BookRanker
	favourites FavouriteLister
	generator  Generator
	cache      Cache
	observer   Observer
	logger     *slog.Logger
}

// NewService wires the recommendation sources. observer may be nil.
func NewService(books BookRanker, favourites FavouriteLister, generator Generator, cache Cache, observer Observer, logger *slog.Logger) *Service {
	return &Service{
		books:      books,
		favourites: favourites,
		generator:  generator,
		cache:      cache,
		observer:   observer,
		logger:     logger,
	}
}

// TopRated returns the best rated books, served from the cache when fresh.
func (service *Service) TopRated(context context.Context) ([]*book.Book, error) {
	var books []*book.Book
	if service.load(context, constants.RedisPrefixTopRated, &books) {
		return books, nil
	}

	books, err := service.books.TopRated(context, TopRatedLimit)
	if err != nil {
		return nil, err
	}

	service.store(context, constants.RedisPrefixTopRated, books, TopRatedTTL)
	return books, nil
}

/*
ForReader asks the language model for books similar to the reader's
favourites.

It never fails: a reader without favourites, a disabled model, a failed call
or an unparsable reply all yield an empty list.
*/
func (service *Service) ForReader(context context.Context, userID int64) []AIRecommendation {
	key := constants.RedisPrefixAI + strconv.FormatInt(userID, 10)

	var cached []AIRecommendation
	if service.load(context, key, &cached) {
		return cached
	}

	favourites, err := service.favourites.List(context, userID)
	if err != nil {
		service.logger.Warn("ai_recommendation_favourites_failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return []AIRecommendation{}
	}
	if len(favourites) == 0 {
		return []AIRecommendation{}
	}

	reply, err := service.generator.GenerateContent(context, Prompt(favourites, AILimit))
	if err != nil {
		if errors.Is(err, gemini.ErrDisabled) {
			service.observe(OutcomeDisabled)
		} else {
			service.observe(OutcomeError)
			service.logger.Warn("ai_recommendation_call_failed", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		return []AIRecommendation{}
	}

	recommendations, err := ParseReply(reply, AILimit)
	if err != nil {
		service.observe(OutcomeInvalid)
		service.logger.Warn("ai_recommendation_reply_invalid", slog.Int64("user_id", userID), slog.Any("error", err))
		return []AIRecommendation{}
	}

	service.observe(OutcomeOK)
	if len(recommendations) > 0 {
		service.store(context, key, recommendations, AITTL)
	}
	return recommendations
}

// Prompt lists the favourites and asks for a strict JSON array in reply.
func Prompt(favourites []*favourite.Favourite, limit int) string {
	var builder strings.Builder

	builder.WriteString("You are a book recommendation assistant.\n")
	fmt.Fprintf(&builder, "Given the following user's favourite books (with title, author, and genres), recommend %d books that the user is likely to enjoy.\n", max(1, limit))
	builder.WriteString("Return STRICT JSON ONLY: an array of objects with fields: title, author, reason. No markdown, no explanation.\n\n")
	builder.WriteString("User favourites:\n")

	for i, f := range favourites {
		b := f.Book
		if b == nil {
			b = &book.Book{}
		}
		fmt.Fprintf(&builder, "%d. Title: %s, Author: %s, Genres: %s\n", i+1, b.Title, b.Author, b.Genres)
	}

	return builder.String()
}

// ParseReply decodes the model's JSON array, tolerating a markdown code
// fence, and keeps at most limit entries that carry a title.
func ParseReply(reply string, limit int) ([]AIRecommendation, error) {
	content := gemini.StripCodeFence(reply)
	if content == "" {
		return []AIRecommendation{}, nil
	}

	var entries []AIRecommendation
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	recommendations := make([]AIRecommendation, 0, min(limit, len(entries)))
	for _, entry := range entries {
		if len(recommendations) == limit {
			break
		}
		entry.Title = strings.TrimSpace(entry.Title)
		entry.Author = strings.TrimSpace(entry.Author)
		if entry.Title == "" {
			continue
		}
		recommendations = append(recommendations, entry)
	}

	return recommendations, nil
}

// load reads a cached value; cache failures count as a miss.
func (service *Service) load(context context.Context, key string, target any) bool {
	found, err := service.cache.Get(context, key, target)
	if err != nil {
		service.logger.Warn("recommendation_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return found
}

func (service *Service) store(context context.Context, key string, value any, ttl time.Duration) {
	if err := service.cache.Set(context, key, value, ttl); err != nil {
		service.logger.Warn("recommendation_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (service *Service) observe(outcome string) {
	if service.observer != nil {
		service.observer.ObserveRecommendation(outcome)
	}
}
