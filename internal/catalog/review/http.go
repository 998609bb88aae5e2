// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookreview/internal/platform/request"
	"github.com/taibuivan/bookreview/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the review endpoints, mounted under /reviews.
//
// # Endpoints
//   - GET    /book/{bookId}    : Reviews of a book (public).
//   - GET    /book/{bookId}/my : The caller's review of a book.
//   - POST   /book/{bookId}    : Create or replace the caller's review.
//   - GET    /my               : The caller's reviews.
//   - DELETE /{reviewId}       : Delete one of the caller's reviews.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/book/{bookId}", handler.listByBook)
	router.Get("/book/{bookId}/my", handler.mine)
	router.Post("/book/{bookId}", handler.save)
	router.Get("/my", handler.listMine)
	router.Delete("/{reviewId}", handler.delete)

	return router
}

func (handler *Handler) listByBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IDParam(request, "bookId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListByBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.IDParam(request, "bookId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.Mine(request.Context(), bookID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

/*
save creates or replaces the caller's review of a book.

POST /reviews/book/{bookId}

Request Body:
  - text: Optional review text
  - rating: 1..5

Response:
  - 200: The stored review
  - 400: Validation failure
  - 404: Book not found
*/
func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.IDParam(request, "bookId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.Save(request.Context(), bookID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := requestutil.IDParam(request, "reviewId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), reviewID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
