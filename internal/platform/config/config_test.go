// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/platform/config"
)

var validSecret = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/bookreview")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", validSecret)
}

/*
TestLoad_Defaults verifies defaults for optional settings.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.EmailConfigured())
}

/*
TestLoad_RejectsBadSecrets fails fast on unusable signing keys.
*/
func TestLoad_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"not_base64", "this is not base64!"},
		{"too_short", base64.StdEncoding.EncodeToString([]byte("short-key"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("JWT_SECRET", tt.secret)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_RequiresSecret fails when JWT_SECRET is missing entirely.
*/
func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookreview")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_SigningKey decodes both base64 alphabets.
*/
func TestConfig_SigningKey(t *testing.T) {
	raw := []byte("\xfb\xff0123456789abcdef0123456789abcdef")

	for _, secret := range []string{
		base64.StdEncoding.EncodeToString(raw),
		base64.RawURLEncoding.EncodeToString(raw),
	} {
		cfg := &config.Config{JWTSecret: secret}
		key, err := cfg.SigningKey()
		require.NoError(t, err)
		assert.Equal(t, raw, key)
	}
}

/*
TestConfig_AllowedOrigins admits both schemes of the frontend host.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{
		FrontendURL:  "https://books.example.com",
		ExtraOrigins: " https://admin.example.com/ ,,http://localhost:3000",
	}

	assert.Equal(t, []string{
		"http://books.example.com",
		"http://localhost:3000",
		"https://admin.example.com",
		"https://books.example.com",
	}, cfg.AllowedOrigins())
}
