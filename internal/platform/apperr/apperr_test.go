// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		code   string
		status int
	}{
		{apperr.NotFound("Book"), apperr.CodeNotFound, http.StatusNotFound},
		{apperr.Unauthorized("no"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{apperr.Forbidden("no"), apperr.CodeForbidden, http.StatusForbidden},
		{apperr.Conflict("dup"), apperr.CodeConflict, http.StatusConflict},
		{apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{apperr.Unprocessable("bad"), apperr.CodeUnprocessable, http.StatusUnprocessableEntity},
		{apperr.RateLimited(1), apperr.CodeRateLimited, http.StatusTooManyRequests},
		{apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
		{apperr.ServiceUnavailable("down"), apperr.CodeServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAs finds an AppError through wrapping and keeps the cause private.
*/
func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Review"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.True(t, apperr.IsAppError(wrapped))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(nil, apperr.CodeNotFound))

	cause := errors.New("connection reset")
	internal := apperr.Internal(cause)
	assert.ErrorIs(t, internal, cause)
	assert.NotContains(t, internal.Error(), "connection reset")
}

func TestWithCause_DoesNotMutate(t *testing.T) {
	base := apperr.Conflict("Email already registered")
	derived := base.WithCause(errors.New("23505"))

	assert.Nil(t, base.Cause)
	assert.NotNil(t, derived.Cause)
	assert.Equal(t, base.Message, derived.Message)
}
