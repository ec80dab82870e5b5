// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultAssistantName is the label shown for assistant entries.
const DefaultAssistantName = "GTSearch"

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return DefaultAssistantName
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is a single transcript item. The zero value is not useful; build
// entries with NewUserEntry, NewAssistantEntry or NewFailureEntry.
type Entry struct {
	id        string
	role      Role
	timestamp time.Time
	segments  []string
	failed    bool
}

func newEntry(role Role, segments []string, failed bool) Entry {
	segs := make([]string, len(segments))
	copy(segs, segments)
	if len(segs) == 0 {
		segs = []string{""}
	}
	return Entry{
		id:        uuid.NewString(),
		role:      role,
		timestamp: time.Now(),
		segments:  segs,
		failed:    failed,
	}
}

// NewUserEntry creates the entry for a submitted query. The text is kept
// verbatim as a single segment.
func NewUserEntry(text string) Entry {
	return newEntry(RoleUser, []string{text}, false)
}

// NewAssistantEntry creates a response entry from normalized segments.
func NewAssistantEntry(segments []string) Entry {
	return newEntry(RoleAssistant, segments, false)
}

// NewFailureEntry creates the fixed assistant entry shown when a search
// could not be completed.
func NewFailureEntry() Entry {
	return newEntry(RoleAssistant, []string{FailureSegment}, true)
}

// ID returns the entry's unique identifier.
func (e Entry) ID() string { return e.id }

// Role returns who produced the entry.
func (e Entry) Role() Role { return e.role }

// Timestamp returns when the entry was created.
func (e Entry) Timestamp() time.Time { return e.timestamp }

// Failed reports whether this is the fixed failure entry.
func (e Entry) Failed() bool { return e.failed }

// Segments returns a copy of the entry's display segments.
func (e Entry) Segments() []string {
	out := make([]string, len(e.segments))
	copy(out, e.segments)
	return out
}

// SegmentCount returns the number of segments without copying them.
func (e Entry) SegmentCount() int { return len(e.segments) }

// Text returns the segments joined by newlines.
func (e Entry) Text() string {
	return strings.Join(e.segments, "\n")
}

// Preview returns a single-line preview of at most maxLen runes.
func (e Entry) Preview(maxLen int) string {
	text := strings.Join(strings.Fields(e.Text()), " ")
	if maxLen <= 0 {
		return text
	}
	return util.TruncateRunes(text, maxLen)
}

// entryJSON is the exported wire shape of an Entry.
type entryJSON struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	Segments  []string  `json:"segments"`
	Failed    bool      `json:"failed,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:        e.id,
		Role:      e.role,
		Timestamp: e.timestamp,
		Segments:  e.segments,
		Failed:    e.failed,
	})
}
