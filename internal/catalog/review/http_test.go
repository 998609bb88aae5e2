// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/catalog/review"
	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
	"github.com/taibuivan/bookreview/internal/platform/sec"
)

func serve(t *testing.T, handler http.Handler, method, path, body string, principal *sec.Principal) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_ReviewLifecycle posts, reads and deletes a review over HTTP.
*/
func TestHandler_ReviewLifecycle(t *testing.T) {
	router := review.NewHandler(newService(newMemoryReviews(), newFakeCatalog(7))).Routes()
	reader := sec.NewPrincipal(10, "reader@example.com", sec.RoleUser)
	other := sec.NewPrincipal(11, "other@example.com", sec.RoleUser)

	// 1. Post
	recorder := serve(t, router, http.MethodPost, "/book/7", `{"text":"Loved it","rating":5}`, reader)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data review.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Data.Rating)

	// 2. Public listing
	recorder = serve(t, router, http.MethodGet, "/book/7", ``, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Loved it")

	// 3. Mine needs a caller
	recorder = serve(t, router, http.MethodGet, "/book/7/my", ``, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(t, router, http.MethodGet, "/my", ``, reader)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Loved it")

	// 4. Only the author deletes
	path := "/" + strconv.FormatInt(body.Data.ID, 10)
	recorder = serve(t, router, http.MethodDelete, path, ``, other)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = serve(t, router, http.MethodDelete, path, ``, reader)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestHandler_Save_Rejects(t *testing.T) {
	router := review.NewHandler(newService(newMemoryReviews(), newFakeCatalog(7))).Routes()
	reader := sec.NewPrincipal(10, "reader@example.com", sec.RoleUser)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"bad_rating", "/book/7", `{"rating":9}`, http.StatusBadRequest},
		{"bad_json", "/book/7", `{"rating":`, http.StatusBadRequest},
		{"unknown_book", "/book/8", `{"rating":3}`, http.StatusNotFound},
		{"bad_id", "/book/seven", `{"rating":3}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, router, http.MethodPost, tt.path, tt.body, reader)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
