// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import "errors"

// Request is the JSON body sent to the search endpoint.
type Request struct {
	SearchQuery string `json:"search_query"`
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the search client.
type ClientError struct {
	Type    ErrorType
	Message string

	// StatusCode and Body are set for ErrTypeStatus. Body is truncated.
	StatusCode int
	Body       string

	Cause error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

func errorType(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsStatus reports whether err came from a non-2xx response.
func IsStatus(err error) bool {
	return errorType(err) == ErrTypeStatus
}

// IsCanceled reports whether the request's context was canceled.
func IsCanceled(err error) bool {
	return errorType(err) == ErrTypeCanceled
}
