// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package gemini is a minimal client for the Generative Language API
// generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 20 * time.Second

	// maxResponseBytes bounds how much of a reply is read.
	maxResponseBytes = 1 << 20
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("gemini: no API key configured")

// Options configures the client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls a single model.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a client. An empty API key yields a client whose calls fail
// with [ErrDisabled].
func New(options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:     options.APIKey,
		endpoint:   fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(options.BaseURL, "/"), options.Model),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// --- API types ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateContent sends a single-turn user prompt and returns the text parts
// of the first candidate, joined by newlines.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("gemini: decode response (status %d): %w", response.StatusCode, err)
	}

	if decoded.Error != nil {
		return "", fmt.Errorf("gemini: API error %d (%s): %s", decoded.Error.Code, decoded.Error.Status, decoded.Error.Message)
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", response.StatusCode)
	}

	return extractText(&decoded), nil
}

func extractText(response *generateResponse) string {
	if len(response.Candidates) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		if p.Text == "" {
			continue
		}
		builder.WriteString(p.Text)
		builder.WriteByte('\n')
	}

	return strings.TrimSpace(builder.String())
}

// StripCodeFence removes a surrounding markdown code fence (``` or ```json)
// that models tend to add around JSON output.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)

	if rest, ok := strings.CutPrefix(cleaned, "```json"); ok {
		cleaned = strings.TrimSpace(rest)
	} else if rest, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = strings.TrimSpace(rest)
	}

	if rest, ok := strings.CutSuffix(cleaned, "```"); ok {
		cleaned = strings.TrimSpace(rest)
	}

	return cleaned
}
