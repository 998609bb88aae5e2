// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level failures and reports them as one
// VALIDATION_ERROR.
//
// Handlers check request shape (signup fields, credentials). Services check
// business rules such as the review rating range.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/bookreview/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

const failedMessage = "Validation failed"

// Validator accumulates failures across chained rules. A zero value is ready
// to use; it must not be shared between requests.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) == "", field, "This field is required")
}

// MaxLen and MinLen count runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(utf8.RuneCountInString(value) > max, field, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(utf8.RuneCountInString(value) < min, field, fmt.Sprintf("Minimum %d characters", min))
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.check(value < min || value > max, field, fmt.Sprintf("Must be between %d and %d", min, max))
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(err != nil, field, "Must be a valid email address")
}

func (v *Validator) URL(field, value string) *Validator {
	return v.check(!IsHTTPURL(value), field, "Must be a valid http(s) URL")
}

// Err is nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.errs...)
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) check(failed bool, field, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// IsHTTPURL reports whether value is an absolute http or https URL with a host.
func IsHTTPURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
