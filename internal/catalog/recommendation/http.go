// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommendation

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

// Routes returns the recommendation endpoints, mounted under /recommendations.
//
// # Endpoints
//   - GET /top-rated : Best rated books (public).
//   - GET /ai        : Suggestions based on the caller's favourites.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/top-rated", handler.topRated)
	router.Get("/ai", handler.forReader)

	return router
}

func (handler *Handler) topRated(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.TopRated(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) forReader(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.ForReader(request.Context(), userID))
}
