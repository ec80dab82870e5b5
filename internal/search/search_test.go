// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{Endpoint: srv.URL, UserAgent: "gtsearch/test"})
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})

	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, "gtsearch", c.config.UserAgent)
	assert.EqualValues(t, 4<<20, c.config.MaxResponseBytes)
	assert.Zero(t, c.httpClient.Timeout)
}

func TestNewClientWithConfig_DoesNotMutateInput(t *testing.T) {
	cfg := &ClientConfig{}
	NewClientWithConfig(cfg)
	assert.Empty(t, cfg.Endpoint)
}

func TestNewClient_NilConfig(t *testing.T) {
	c := NewClientWithConfig(nil)
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestSearch_RequestShape(t *testing.T) {
	var (
		gotMethod  string
		gotHeaders http.Header
		gotBody    map[string]string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Write([]byte("Sunny"))
	})

	text, err := c.Search(context.Background(), "weather in Atlanta")
	require.NoError(t, err)

	assert.Equal(t, "Sunny", text)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "text/plain", gotHeaders.Get("Accept"))
	assert.Equal(t, "gtsearch/test", gotHeaders.Get("User-Agent"))
	assert.Equal(t, map[string]string{"search_query": "weather in Atlanta"}, gotBody)
}

func TestSearch_AnySuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("Line one\n\nLine two"))
	})

	text, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Line one\n\nLine two", text)
}

func TestSearch_EmptyBodyIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	text, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSearch_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("  boom: " + strings.Repeat("x", 500)))
	})

	_, err := c.Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, IsStatus(err))

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusInternalServerError, ce.StatusCode)
	assert.True(t, strings.HasPrefix(ce.Body, "boom: "))
	assert.LessOrEqual(t, len([]rune(ce.Body)), 200)
}

func TestSearch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClientWithConfig(&ClientConfig{Endpoint: url})
	_, err := c.Search(context.Background(), "q")

	require.Error(t, err)
	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrTypeConnection, ce.Type)
	assert.NotNil(t, ce.Unwrap())
}

func TestSearch_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, "q")
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "got %v", err)
}

func TestSearch_Canceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "q")
	require.Error(t, err)
	assert.True(t, IsCanceled(err), "got %v", err)
}

func TestSearch_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{Endpoint: srv.URL, MaxResponseBytes: 16})
	_, err := c.Search(context.Background(), "q")

	require.Error(t, err)
	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrTypeInvalidResponse, ce.Type)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestClientError_Message(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &ClientError{Type: ErrTypeConnection, Message: "search backend unreachable", Cause: cause}

	assert.Equal(t, "search backend unreachable: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection", err.Type.String())
}

func TestErrorHelpers_NonClientError(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, IsTimeout(err))
	assert.False(t, IsStatus(err))
	assert.False(t, IsCanceled(nil))
}
