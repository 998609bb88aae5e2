// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, tokens) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the BookReview API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	AppVersion  string `env:"APP_VERSION"  envDefault:"0.1.0-dev"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing: base64-encoded HMAC secret and token lifetime
	JWTSecret string        `env:"JWT_SECRET,required,unset"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Cross-Origin Resource Sharing
	FrontendURL  string `env:"FRONTEND_URL"  envDefault:"http://localhost:3000"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Outbound e-mail (welcome message on signup)
	EmailEnabled bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	EmailSender  string `env:"EMAIL_SENDER"  envDefault:"no-reply@example.com"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD,unset"`

	// Generative language model used for AI recommendations
	GeminiAPIKey  string `env:"GEMINI_API_KEY,unset"`
	GeminiModel   string `env:"GEMINI_MODEL"    envDefault:"gemini-1.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Fail at startup rather than on the first login
	if _, err := cfg.SigningKey(); err != nil {
		return nil, err
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("config: JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// # Derived Values

// SigningKey decodes JWT_SECRET into the raw HMAC key.
// Both standard and URL-safe base64 alphabets are accepted.
func (c *Config) SigningKey() ([]byte, error) {
	secret := strings.TrimSpace(c.JWTSecret)

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		key, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(secret, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("config: JWT_SECRET is not valid base64: %w", err)
	}

	if len(key) < sec.MinKeyLength {
		return nil, fmt.Errorf("config: JWT_SECRET must decode to at least %d bytes, got %d", sec.MinKeyLength, len(key))
	}

	return key, nil
}

// AllowedOrigins lists the browser origins admitted by CORS.
//
// The frontend URL is admitted with both http and https schemes, together with
// the local development server and any EXTRA_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}

	if frontend, err := url.Parse(strings.TrimSpace(c.FrontendURL)); err == nil && frontend.Host != "" {
		origins = append(origins, "http://"+frontend.Host, "https://"+frontend.Host)
	}

	for _, extra := range strings.Split(c.ExtraOrigins, ",") {
		if extra = strings.TrimRight(strings.TrimSpace(extra), "/"); extra != "" {
			origins = append(origins, extra)
		}
	}

	slices.Sort(origins)
	return slices.Compact(origins)
}

// EmailConfigured reports whether outbound mail can be sent.
func (c *Config) EmailConfigured() bool {
	return c.EmailEnabled && c.SMTPHost != ""
}
