// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/AnirudhGatech/IECS-UI/internal/search"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitNetworkError = 5
	ExitTimeoutError = 8
)

// ErrSearchFailed is returned when a search ended with the failure entry.
var ErrSearchFailed = errors.New("search failed")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsageError, Err: fmt.Errorf(format, args...)}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// searchError converts the cause of a failed search into an exit error. The
// message names only the failure category.
func searchError(cause error) error {
	code := ExitGeneralError
	kind := search.ErrTypeUnknown

	var clientErr *search.ClientError
	if errors.As(cause, &clientErr) {
		kind = clientErr.Type
		switch clientErr.Type {
		case search.ErrTypeConnection:
			code = ExitNetworkError
		case search.ErrTypeTimeout:
			code = ExitTimeoutError
		}
	}
	return &ExitError{Code: code, Err: fmt.Errorf("%w (%s)", ErrSearchFailed, kind)}
}
