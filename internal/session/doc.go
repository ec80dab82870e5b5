// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the query submission lifecycle.
//
// A Session holds the pending input text, the busy flag and the transcript.
// A submission is split into three steps so a UI can run the network call
// off its event loop:
//
//	req, ok := s.Begin(text)   // append user entry, go busy, clear input
//	out := req.Run(ctx)        // one search call, never panics
//	entry := s.Complete(out)   // append exactly one reply, go idle
//
// Begin and Complete must be called from the same goroutine. Run may be
// called from any goroutine; it touches only the searcher and the request.
// Submit chains all three for line-mode callers.
package session
