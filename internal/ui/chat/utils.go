// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/atotto/clipboard"
)

// formatTimestamp formats an entry time relative to now: clock time for
// today, weekday for the last week, otherwise the date.
func formatTimestamp(t, now time.Time) string {
	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("15:04")
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	default:
		return t.Format("Jan 2 15:04")
	}
}

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
