// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "errors"

// # Authentication Failures
//
// Token and identity errors are sentinels so callers classify them with
// [errors.Is]. Only [ErrDirectoryUnavailable] is fatal to a request; every
// other kind makes the request continue as anonymous.

var (
	// ErrTokenMalformed means the token is not a three-part compact JWT, a part
	// is not valid base64url/JSON, or a required claim is missing or mistyped.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrTokenSignatureInvalid means the MAC does not verify under the current
	// key, or the header names an algorithm other than HS256.
	ErrTokenSignatureInvalid = errors.New("sec: token signature invalid")

	// ErrTokenExpired means the signature is valid but exp <= now.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrSubjectMismatch means the token is valid but names a different subject.
	ErrSubjectMismatch = errors.New("sec: token subject mismatch")

	// ErrIdentityNotFound means the subject has no record in the user directory.
	ErrIdentityNotFound = errors.New("sec: identity not found")

	// ErrDirectoryUnavailable means the user directory could not be consulted.
	ErrDirectoryUnavailable = errors.New("sec: user directory unavailable")
)
