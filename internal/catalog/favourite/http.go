// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite

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

// Routes returns the favourite endpoints, mounted under /favourites.
// Every endpoint acts on the caller's own list.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/my", handler.list)
	router.Get("/book/{bookId}/check", handler.check)
	router.Post("/book/{bookId}", handler.add)
	router.Delete("/book/{bookId}", handler.remove)
	router.Put("/book/{bookId}/toggle", handler.toggle)

	return router
}

type statusResponse struct {
	BookID    int64 `json:"book_id"`
	Favourite bool  `json:"favourite"`
}

// target resolves the caller and the book id of the request.
func target(request *http.Request) (int64, int64, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return 0, 0, err
	}

	bookID, err := requestutil.IDParam(request, "bookId")
	if err != nil {
		return 0, 0, err
	}

	return userID, bookID, nil
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favourites, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, favourites)
}

func (handler *Handler) check(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favourite, err := handler.service.IsFavourite(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, statusResponse{BookID: bookID, Favourite: favourite})
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	f, err := handler.service.Add(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, f)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, bookID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favourite, err := handler.service.Toggle(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, statusResponse{BookID: bookID, Favourite: favourite})
}
