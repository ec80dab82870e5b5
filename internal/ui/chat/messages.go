// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/session"
)

// =============================================================================
// SEARCH MESSAGES
// =============================================================================

// SearchCompleteMsg carries the outcome of a request started by submit.
type SearchCompleteMsg struct {
	Outcome session.Outcome
}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportCompleteMsg reports the result of writing the transcript to disk.
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// statusTimeout is how long a notice stays in the status bar.
const statusTimeout = 4 * time.Second

// ClearStatusMsg clears the status notice with the matching sequence number.
// Newer notices are left alone.
type ClearStatusMsg struct {
	Seq int
}
