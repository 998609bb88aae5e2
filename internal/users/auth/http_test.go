// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/users/auth"
)

func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_SignupLoginLogout walks the public account endpoints.
*/
func TestHandler_SignupLoginLogout(t *testing.T) {
	tokens := newTokens(t)
	router := auth.NewHandler(auth.NewService(newMemoryUsers(), tokens, nil, nil)).Routes()

	// 1. Signup returns a bare token body
	recorder := post(t, router, "/signup", `{"email":"reader@example.com","name":"Reader","password":"password1"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, tokens.IsValid(body["token"], "reader@example.com"))

	// 2. Duplicate signup
	recorder = post(t, router, "/signup", `{"email":"reader@example.com","name":"Reader","password":"password1"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// 3. Login
	recorder = post(t, router, "/login", `{"email":"reader@example.com","password":"password1"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token"`)

	recorder = post(t, router, "/login", `{"email":"reader@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 4. Logout is a stateless acknowledgement
	recorder = post(t, router, "/logout", ``)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, recorder.Body.String())
}

/*
TestHandler_SignupValidation rejects malformed input before touching the store.
*/
func TestHandler_SignupValidation(t *testing.T) {
	router := auth.NewHandler(auth.NewService(newMemoryUsers(), newTokens(t), nil, nil)).Routes()

	tests := []struct {
		name string
		body string
	}{
		{"invalid_json", `{"email":`},
		{"bad_email", `{"email":"nope","name":"Reader","password":"password1"}`},
		{"short_password", `{"email":"reader@example.com","name":"Reader","password":"abc"}`},
		{"missing_name", `{"email":"reader@example.com","password":"password1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := post(t, router, "/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"code"`)
		})
	}
}
