// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for a search conversation.
//
// A Transcript is the ordered, append-only record of one session. Each Entry
// is immutable once built and carries the role that produced it together
// with one or more display segments.
//
// # Key Types
//
//   - Role: who produced an entry (user or assistant)
//   - Entry: a single immutable transcript item
//   - Transcript: ordered entries plus change subscribers
//
// # Usage
//
//	t := model.NewTranscript()
//	unsubscribe := t.Subscribe(func(e model.Entry) { redraw() })
//	defer unsubscribe()
//
//	t.Append(model.NewUserEntry("weather in Atlanta"))
//	t.Append(model.NewAssistantEntry(model.NormalizeResponse(body)))
//
// NormalizeResponse turns a raw plain-text payload into display segments.
// It never interprets markup.
package model
