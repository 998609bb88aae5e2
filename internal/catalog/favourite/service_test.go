// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favourite_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/catalog/favourite"
	"github.com/taibuivan/bookreview/internal/platform/apperr"
)

func TestService_AddRemove(t *testing.T) {
	ctx := context.Background()
	service := favourite.NewService(newMemoryFavourites(), fakeCatalog{1: true, 2: true})

	// 1. Add twice
	_, err := service.Add(ctx, 10, 1)
	require.NoError(t, err)

	_, err = service.Add(ctx, 10, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)

	// 2. Unknown book
	_, err = service.Add(ctx, 10, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	// 3. Newest first
	_, err = service.Add(ctx, 10, 2)
	require.NoError(t, err)

	list, err := service.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].Book.ID)

	// 4. Remove twice
	require.NoError(t, service.Remove(ctx, 10, 1))
	err = service.Remove(ctx, 10, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestService_Toggle(t *testing.T) {
	ctx := context.Background()
	service := favourite.NewService(newMemoryFavourites(), fakeCatalog{1: true})

	on, err := service.Toggle(ctx, 10, 1)
	require.NoError(t, err)
	assert.True(t, on)

	marked, err := service.IsFavourite(ctx, 10, 1)
	require.NoError(t, err)
	assert.True(t, marked)

	on, err = service.Toggle(ctx, 10, 1)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = service.Toggle(ctx, 10, 42)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
