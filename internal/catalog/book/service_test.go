// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/catalog/book"
	"github.com/taibuivan/bookreview/internal/platform/apperr"
)

func newService(repo *memoryBooks) *book.Service {
	return book.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_ImportCSV loads valid rows and skips incomplete ones.
*/
func TestService_ImportCSV(t *testing.T) {
	repo := &memoryBooks{}
	service := newService(repo)

	csv := "\ufeffTitle,AUTHOR,genres,year,cover_url,description\n" +
		"Dune,Frank Herbert,\"Sci-Fi, sci-fi ,Classic\",1965,https://covers.example.com/dune.jpg,Desert planet\n" +
		",Nobody,Drama,2001,,\n" +
		"Untitled Author,,Drama,2001,,\n" +
		"  The   Hobbit ,J.R.R. Tolkien,Fantasy,unknown,not-a-url,\n"

	imported, err := service.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	require.Len(t, repo.books, 2)

	dune := repo.books[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.Author)
	assert.Equal(t, "Sci-Fi, Classic", dune.Genres)
	require.NotNil(t, dune.Year)
	assert.Equal(t, 1965, *dune.Year)
	assert.Equal(t, "https://covers.example.com/dune.jpg", dune.CoverURL)
	assert.Equal(t, "Desert planet", dune.Description)

	hobbit := repo.books[1]
	assert.Equal(t, "The Hobbit", hobbit.Title)
	assert.Nil(t, hobbit.Year)
	assert.Empty(t, hobbit.CoverURL)
}

/*
TestService_ImportCSV_Batches sends large imports in several COPY batches.
*/
func TestService_ImportCSV_Batches(t *testing.T) {
	repo := &memoryBooks{}

	var builder strings.Builder
	builder.WriteString("title,author\n")
	for i := range 1201 {
		fmt.Fprintf(&builder, "Book %d,Author %d\n", i, i)
	}

	imported, err := newService(repo).ImportCSV(context.Background(), strings.NewReader(builder.String()))
	require.NoError(t, err)
	assert.Equal(t, 1201, imported)
	assert.Equal(t, []int{500, 500, 201}, repo.batches)
}

func TestService_ImportCSV_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":     "",
		"malformed": "title,author\n\"Dune,Frank Herbert\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newService(&memoryBooks{}).ImportCSV(context.Background(), strings.NewReader(input))
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}

func TestService_Get(t *testing.T) {
	repo := &memoryBooks{}
	_, _ = repo.CreateMany(context.Background(), []*book.Book{{Title: "Dune", Author: "Frank Herbert"}})
	service := newService(repo)

	b, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	_, err = service.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
