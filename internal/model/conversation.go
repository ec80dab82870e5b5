// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered record of one session. Entries are only ever
// appended; insertion order is display order.
//
// A Transcript is not safe for concurrent use. It has a single writer (the UI
// update loop or the CLI goroutine).
type Transcript struct {
	id        string
	createdAt time.Time
	entries   []Entry

	subscribers map[int]func(Entry)
	nextSubID   int
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		id:          uuid.NewString(),
		createdAt:   time.Now(),
		entries:     make([]Entry, 0, 8),
		subscribers: make(map[int]func(Entry)),
	}
}

// ID returns the transcript's session identifier.
func (t *Transcript) ID() string { return t.id }

// CreatedAt returns when the transcript was started.
func (t *Transcript) CreatedAt() time.Time { return t.createdAt }

// =============================================================================
// ENTRY MANAGEMENT
// =============================================================================

// Append adds an entry at the end and notifies subscribers.
func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
	t.notify(e)
}

// Entries returns a snapshot of all entries in order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int { return len(t.entries) }

// IsEmpty reports whether nothing has been appended yet.
func (t *Transcript) IsEmpty() bool { return len(t.entries) == 0 }

// At returns the entry at index i.
func (t *Transcript) At(i int) (Entry, bool) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Last returns the most recent entry.
func (t *Transcript) Last() (Entry, bool) {
	return t.At(len(t.entries) - 1)
}

// LastOfRole returns the most recent entry produced by role.
func (t *Transcript) LastOfRole(role Role) (Entry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].role == role {
			return t.entries[i], true
		}
	}
	return Entry{}, false
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn to be called after every append, with the appended
// entry. The returned func removes the subscription.
func (t *Transcript) Subscribe(fn func(Entry)) (unsubscribe func()) {
	id := t.nextSubID
	t.nextSubID++
	t.subscribers[id] = fn
	return func() {
		delete(t.subscribers, id)
	}
}

func (t *Transcript) notify(e Entry) {
	for _, fn := range t.subscribers {
		fn(e)
	}
}
