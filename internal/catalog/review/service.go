// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
	"github.com/taibuivan/bookreview/internal/platform/validate"
)

// Catalog is the slice of the book domain reviews depend on.
type Catalog interface {
	Exists(context context.Context, id int64) (bool, error)
	UpdateAggregates(context context.Context, id int64, avgRating *float64, reviewCount int64) error
}

type Service struct {
	repo    Repository
	catalog Catalog
	logger  *slog.Logger
}

func NewService(repo Repository, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// ListByBook returns the reviews of an existing book, newest first.
func (service *Service) ListByBook(context context.Context, bookID int64) ([]*Review, error) {
	if err := service.requireBook(context, bookID); err != nil {
		return nil, err
	}
	return service.repo.ListByBook(context, bookID)
}

func (service *Service) ListByUser(context context.Context, userID int64) ([]*Review, error) {
	return service.repo.ListByUser(context, userID)
}

// Mine returns the caller's review of a book, or NotFound.
func (service *Service) Mine(context context.Context, bookID, userID int64) (*Review, error) {
	r, err := service.repo.FindByBookAndUser(context, bookID, userID)
	if dberr.IsNotFound(err) {
		return nil, apperr.NotFound("Review")
	}
	return r, err
}

/*
Save creates the caller's review of a book or replaces the existing one, then
refreshes the book's rating aggregates.

Returns:
  - *Review: The stored review
  - error: ValidationError for a rating outside 1..5, NotFound for an unknown book
*/
func (service *Service) Save(context context.Context, bookID, userID int64, input Input) (*Review, error) {
	input.Text = strings.TrimSpace(input.Text)

	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, MinRating, MaxRating).
		MaxLen(FieldText, input.Text, MaxTextLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireBook(context, bookID); err != nil {
		return nil, err
	}

	r := &Review{BookID: bookID, UserID: userID, Text: input.Text, Rating: input.Rating}
	if err := service.repo.Upsert(context, r); err != nil {
		return nil, err
	}

	if err := service.refreshAggregates(context, bookID); err != nil {
		return nil, err
	}

	service.logger.Info("review_saved",
		slog.Int64("review_id", r.ID),
		slog.Int64("book_id", bookID),
		slog.Int64("user_id", userID),
	)

	return service.repo.Get(context, r.ID)
}

/*
Delete removes a review written by the caller and refreshes the book's
rating aggregates. Another reader's review cannot be deleted.
*/
func (service *Service) Delete(context context.Context, reviewID, userID int64) error {
	r, err := service.repo.Get(context, reviewID)
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Review")
	}
	if err != nil {
		return err
	}

	if r.UserID != userID {
		return apperr.Forbidden("You can only delete your own reviews")
	}

	if err := service.repo.Delete(context, reviewID); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Review")
		}
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", reviewID), slog.Int64("book_id", r.BookID))
	return service.refreshAggregates(context, r.BookID)
}

func (service *Service) requireBook(context context.Context, bookID int64) error {
	exists, err := service.catalog.Exists(context, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Book")
	}
	return nil
}

// refreshAggregates recomputes the average and count from the stored reviews.
func (service *Service) refreshAggregates(context context.Context, bookID int64) error {
	sum, count, err := service.repo.Stats(context, bookID)
	if err != nil {
		return err
	}

	if err := service.catalog.UpdateAggregates(context, bookID, Average(sum, count), count); err != nil {
		return fmt.Errorf("refresh aggregates of book %d: %w", bookID, err)
	}
	return nil
}
