// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. It has no storage or network dependencies: the token
// service only needs the symmetric key and a clock.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the minimum HMAC key size in bytes (256 bits for HS256).
const MinKeyLength = 32

// Registered claim names the service always controls.
const (
	ClaimSubject   = "sub"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// TokenService issues and verifies HS256 bearer tokens.
//
// The key is decoded once at startup and never mutated, so a TokenService is
// safe for concurrent use by any number of requests.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used during verification.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a TokenService bound to key and a fixed token lifetime.
func NewTokenService(key []byte, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("sec: signing key must be at least %d bytes, got %d", MinKeyLength, len(key))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	service := &TokenService{
		key: append([]byte(nil), key...),
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL returns the lifetime applied to every issued token.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue signs a token for subject, valid from now until now+TTL.
//
// Extra claims are copied into the payload first; sub, iat and exp are set
// afterwards so a caller can never override them.
func (service *TokenService) Issue(subject string, extraClaims map[string]any, now time.Time) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("sec: cannot issue a token without a subject")
	}

	claims := make(jwt.MapClaims, len(extraClaims)+3)
	for name, value := range extraClaims {
		claims[name] = value
	}
	claims[ClaimSubject] = subject
	claims[ClaimIssuedAt] = jwt.NewNumericDate(now)
	claims[ClaimExpiresAt] = jwt.NewNumericDate(now.Add(service.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.key)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateAndExtractSubject verifies the token and returns its sub claim.
//
// # Errors
//   - [ErrTokenMalformed]: structure, encoding or claim shape is wrong.
//   - [ErrTokenSignatureInvalid]: MAC mismatch or algorithm other than HS256.
//   - [ErrTokenExpired]: signature valid but exp <= now.
func (service *TokenService) ValidateAndExtractSubject(token string) (string, error) {
	claims, err := service.parse(token)
	if err != nil {
		return "", err
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	return subject, nil
}

// ExtractClaim verifies the token and returns the named claim.
//
// iat and exp are returned as [time.Time]; other JSON numbers as float64.
// An absent claim yields (nil, nil).
func (service *TokenService) ExtractClaim(token, name string) (any, error) {
	claims, err := service.parse(token)
	if err != nil {
		return nil, err
	}

	switch name {
	case ClaimIssuedAt:
		issuedAt, err := claims.GetIssuedAt()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
		if issuedAt == nil {
			return nil, nil
		}
		return issuedAt.Time, nil

	case ClaimExpiresAt:
		expiresAt, err := claims.GetExpirationTime()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
		return expiresAt.Time, nil
	}

	value, ok := claims[name]
	if !ok {
		return nil, nil
	}
	return value, nil
}

// VerifySubject verifies the token and checks it names expectedSubject.
// Subjects are compared exactly, including case.
func (service *TokenService) VerifySubject(token, expectedSubject string) error {
	subject, err := service.ValidateAndExtractSubject(token)
	if err != nil {
		return err
	}
	if subject != expectedSubject {
		return ErrSubjectMismatch
	}
	return nil
}

// IsValid reports whether the token verifies and belongs to expectedSubject.
func (service *TokenService) IsValid(token, expectedSubject string) bool {
	return service.VerifySubject(token, expectedSubject) == nil
}

// parse runs the single verification path shared by every read operation.
// Expiry is always checked, including when only a claim is requested.
func (service *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return service.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	return claims, nil
}

// classify maps golang-jwt errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
