// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// DefaultEndpoint is the hosted GTSearch backend.
const DefaultEndpoint = "https://tsearch-c7q4.onrender.com/tsearch/search"

const (
	defaultUserAgent        = "gtsearch"
	defaultMaxResponseBytes = 4 << 20
	bodySnippetRunes        = 200
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the search client.
type ClientConfig struct {
	// Endpoint receives the POST (default: DefaultEndpoint)
	Endpoint string

	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is sent on every request (default: "gtsearch")
	UserAgent string

	// MaxResponseBytes caps how much of a body is read (default: 4 MiB)
	MaxResponseBytes int64

	// HTTPClient overrides the underlying client, mostly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint:         DefaultEndpoint,
		UserAgent:        defaultUserAgent,
		MaxResponseBytes: defaultMaxResponseBytes,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends queries to the search backend. Each call to Search is a
// single attempt; there are no retries.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration. Zero
// fields are filled with defaults.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponseBytes
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		config:     &cfg,
		httpClient: httpClient,
	}
}

// Endpoint returns the URL queries are posted to.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// =============================================================================
// SEARCH
// =============================================================================

// Search posts query and returns the raw plain-text response body.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(Request{SearchQuery: query})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, readErr := c.readBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ClientError{
			Type:       ErrTypeStatus,
			Message:    "search request failed: " + resp.Status,
			StatusCode: resp.StatusCode,
			Body:       util.TruncateRunes(strings.TrimSpace(string(data)), bodySnippetRunes),
		}
	}

	if readErr != nil {
		if ce := classifyContextError(ctx, readErr); ce != nil {
			return "", ce
		}
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: readErr}
	}

	return string(data), nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	limit := c.config.MaxResponseBytes
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > limit {
		return data[:limit], errors.New("response exceeds size limit")
	}
	return data, nil
}

func classifyTransportError(ctx context.Context, err error) *ClientError {
	if ce := classifyContextError(ctx, err); ce != nil {
		return ce
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "search backend unreachable", Cause: err}
}

func classifyContextError(ctx context.Context, err error) *ClientError {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	}
	return nil
}
