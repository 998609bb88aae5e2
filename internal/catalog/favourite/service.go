// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite

import (
	"context"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
)

// Catalog reports whether a book exists.
type Catalog interface {
	Exists(context context.Context, id int64) (bool, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (service *Service) List(context context.Context, userID int64) ([]*Favourite, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) IsFavourite(context context.Context, userID, bookID int64) (bool, error) {
	return service.repo.Exists(context, userID, bookID)
}

/*
Add marks a book as a favourite of the reader.

Returns:
  - *Favourite: The new link with its book
  - error: NotFound for an unknown book, Conflict when already a favourite
*/
func (service *Service) Add(context context.Context, userID, bookID int64) (*Favourite, error) {
	exists, err := service.catalog.Exists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	f, err := service.repo.Add(context, userID, bookID)
	if dberr.IsConflict(err) {
		return nil, apperr.Conflict("Book already in favourites")
	}
	return f, err
}

func (service *Service) Remove(context context.Context, userID, bookID int64) error {
	err := service.repo.Remove(context, userID, bookID)
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Favourite")
	}
	return err
}

// Toggle adds the book when absent and removes it otherwise. It reports
// whether the book is a favourite afterwards.
func (service *Service) Toggle(context context.Context, userID, bookID int64) (bool, error) {
	exists, err := service.repo.Exists(context, userID, bookID)
	if err != nil {
		return false, err
	}

	if exists {
		return false, service.Remove(context, userID, bookID)
	}

	if _, err := service.Add(context, userID, bookID); err != nil {
		return false, err
	}
	return true, nil
}
