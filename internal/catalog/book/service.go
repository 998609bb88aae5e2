// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/dberr"
	"github.com/taibuivan/bookreview/internal/platform/validate"
	"github.com/taibuivan/bookreview/pkg/pointer"
	"github.com/taibuivan/bookreview/pkg/textnorm"
)

const (
	// importBatchSize bounds how many rows are sent per COPY.
	importBatchSize = 500

	// Column limits of the books table, in characters.
	MaxTextLength     = 255
	MaxGenresLength   = 512
	MaxCoverURLLength = 1024
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) Search(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	filter.Title = textnorm.Clean(filter.Title)
	filter.Author = textnorm.Clean(filter.Author)
	filter.Genre = textnorm.Clean(filter.Genre)

	return service.repo.Search(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id int64) (*Book, error) {
	b, err := service.repo.Get(context, id)
	if dberr.IsNotFound(err) {
		return nil, apperr.NotFound("Book")
	}
	return b, err
}

// Exists reports whether a book with id is in the catalogue.
func (service *Service) Exists(context context.Context, id int64) (bool, error) {
	return service.repo.Exists(context, id)
}

func (service *Service) TopRated(context context.Context, limit int) ([]*Book, error) {
	return service.repo.TopRated(context, max(1, limit))
}

func (service *Service) UpdateAggregates(context context.Context, id int64, avgRating *float64, reviewCount int64) error {
	return service.repo.UpdateAggregates(context, id, avgRating, reviewCount)
}

/*
ImportCSV loads books from a CSV document.

The first record is the header; columns are matched case-insensitively and
may appear in any order (title, author, description, cover_url, genres, year).
Rows without a title or author are skipped. An unparsable year is stored as
unknown and an invalid cover URL is dropped.

Returns:
  - int: Number of books inserted
  - error: ValidationError for a missing header or malformed CSV
*/
func (service *Service) ImportCSV(context context.Context, source io.Reader) (int, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, apperr.ValidationError("CSV file is empty")
		}
		return 0, malformed(err)
	}
	columns := indexHeader(header)

	imported, skipped := 0, 0
	batch := make([]*Book, 0, importBatchSize)

	flush := func() error {
		count, err := service.repo.CreateMany(context, batch)
		imported += count
		batch = batch[:0]
		return err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, malformed(err)
		}

		b, ok := parseRow(columns, record)
		if !ok {
			skipped++
			continue
		}

		batch = append(batch, b)
		if len(batch) == importBatchSize {
			if err := flush(); err != nil {
				return imported, err
			}
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}

	service.logger.Info("books_imported", slog.Int("imported", imported), slog.Int("skipped", skipped))
	return imported, nil
}

// indexHeader maps lower-cased header names to column positions.
func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	return columns
}

func parseRow(columns map[string]int, record []string) (*Book, bool) {
	value := func(name string) string {
		if i, ok := columns[name]; ok && i < len(record) {
			return textnorm.Clean(record[i])
		}
		return ""
	}

	b := &Book{
		Title:       value(FieldTitle),
		Author:      value(FieldAuthor),
		Description: value(FieldDescription),
		Genres:      textnorm.Genres(value(FieldGenres)),
	}
	if b.Title == "" || b.Author == "" {
		return nil, false
	}
	if utf8.RuneCountInString(b.Title) > MaxTextLength || utf8.RuneCountInString(b.Author) > MaxTextLength {
		return nil, false
	}

	if utf8.RuneCountInString(b.Genres) > MaxGenresLength {
		b.Genres = ""
	}

	if cover := value(FieldCoverURL); cover != "" && utf8.RuneCountInString(cover) <= MaxCoverURLLength {
		if validate.IsHTTPURL(cover) {
			b.CoverURL = cover
		}
	}

	if year, err := strconv.Atoi(value(FieldYear)); err == nil {
		b.Year = pointer.To(year)
	}

	return b, true
}

func malformed(err error) error {
	var parseError *csv.ParseError
	if errors.As(err, &parseError) {
		return apperr.ValidationError(fmt.Sprintf("Malformed CSV at line %d", parseError.Line))
	}
	return apperr.ValidationError("Malformed CSV")
}
