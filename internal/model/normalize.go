// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

const (
	// FallbackSegment replaces a response with no visible content.
	FallbackSegment = "No response received."

	// FailureSegment is the only text shown when a search fails.
	FailureSegment = "Sorry, there was an error processing your request."
)

// NormalizeResponse splits a raw response payload into display segments.
//
// The payload is split on "\n"; carriage returns directly before a newline
// belong to the line break. Segments that are blank after trimming whitespace
// are dropped and the rest are kept verbatim, in order. When nothing remains
// the result is the single FallbackSegment. The result is never empty.
//
// NormalizeResponse is idempotent over its own output joined with "\n".
func NormalizeResponse(raw string) []string {
	lines := strings.Split(raw, "\n")
	segments := make([]string, 0, len(lines))
	for i, line := range lines {
		if i < len(lines)-1 {
			line = strings.TrimRight(line, "\r")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		segments = append(segments, line)
	}
	if len(segments) == 0 {
		return []string{FallbackSegment}
	}
	return segments
}
