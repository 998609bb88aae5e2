// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
	"github.com/taibuivan/bookreview/internal/platform/sec"
	"github.com/taibuivan/bookreview/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IDParam parses a named URL parameter as a positive numeric identifier.

Returns:
  - int64: The identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func IDParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   name,
			Message: "Must be a positive integer",
		})
	}

	return id, nil
}

/*
QueryString returns a trimmed query parameter, empty when absent.
*/
func QueryString(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
QueryInt parses an optional integer query parameter.

A missing parameter yields (nil, nil); a malformed one a validation error.
*/
func QueryInt(request *http.Request, name string) (*int, error) {
	raw := QueryString(request, name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.ValidationError("Invalid query parameter", apperr.FieldError{
			Field:   name,
			Message: "Must be an integer",
		})
	}

	return &value, nil
}

/*
Principal extracts the authenticated caller from the request context.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Principal: The authenticated caller
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {

	// Get the bound principal
	principal := ctxutil.GetPrincipal(request.Context())

	// Anonymous callers never reach protected handlers, but guard anyway
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}

// RequiredRole returns the caller when it holds role. Anonymous callers get
// 401 and authenticated callers without the role get 403.
func RequiredRole(request *http.Request, role sec.Role) (*sec.Principal, error) {
	principal, err := RequiredPrincipal(request)
	if err != nil {
		return nil, err
	}
	if !principal.HasRole(role) {
		return nil, apperr.Forbidden("Access denied")
	}
	return principal, nil
}

/*
RequiredUserID returns the directory key of the currently logged-in user.
*/
func RequiredUserID(request *http.Request) (int64, error) {
	principal, err := RequiredPrincipal(request)
	if err != nil {
		return 0, err
	}

	return principal.UserID, nil
}
