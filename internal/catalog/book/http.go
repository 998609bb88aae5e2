// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	requestutil "github.com/taibuivan/bookreview/internal/platform/request"
	"github.com/taibuivan/bookreview/internal/platform/respond"
	"github.com/taibuivan/bookreview/internal/platform/sec"
	"github.com/taibuivan/bookreview/pkg/pagination"
)

// maxImportBytes bounds the multipart upload of a CSV import.
const maxImportBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalogue under /books.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.searchBooks)
	router.Get("/{id}", handler.getBook)
}

// RegisterAdminRoutes mounts catalogue administration under /admin/books.
// Access is restricted by the application policy.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/import", handler.importBooks)
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	year, err := requestutil.QueryInt(request, FieldYear)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Title:  requestutil.QueryString(request, FieldTitle),
		Author: requestutil.QueryString(request, FieldAuthor),
		Genre:  requestutil.QueryString(request, "genre"),
		Year:   year,
	}

	books, total, err := handler.service.Search(request.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, page.Meta(total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.Get(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

type importResponse struct {
	Imported int `json:"imported"`
}

/*
importBooks loads a CSV upload into the catalogue.

POST /admin/books/import (multipart/form-data, part "file")

Response:
  - 200: {"data": {"imported": n}}
  - 400: Missing file or malformed CSV
  - 401 / 403: Caller is not an administrator
*/
func (handler *Handler) importBooks(writer http.ResponseWriter, request *http.Request) {
	// Admin only, whatever the route table says
	if _, err := requestutil.RequiredRole(request, sec.RoleAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxImportBytes)

	file, _, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("A CSV file is required", apperr.FieldError{
			Field:   FieldFile,
			Message: "Must be a multipart file part",
		}))
		return
	}
	defer file.Close()

	imported, err := handler.service.ImportCSV(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, importResponse{Imported: imported})
}
