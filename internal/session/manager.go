// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/search"
)

// Searcher sends one query to the search backend and returns the raw body.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// =============================================================================
// CHANGE EVENTS
// =============================================================================

// ChangeKind says which part of the session changed.
type ChangeKind int

const (
	ChangePending ChangeKind = iota
	ChangeBusy
	ChangeEntry
)

// Change is delivered to subscribers after every state change.
type Change struct {
	Kind    ChangeKind
	Pending string
	Busy    bool
	Entry   model.Entry // set for ChangeEntry
}

// =============================================================================
// SESSION
// =============================================================================

// Session tracks the pending query, the busy flag and the transcript.
// It is not safe for concurrent use.
type Session struct {
	searcher   Searcher
	transcript *model.Transcript
	logger     *slog.Logger

	pending string
	busy    bool
	current *Request

	startTime   time.Time
	submissions int
	failures    int

	subscribers map[int]func(Change)
	nextSubID   int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for request lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTranscript makes the session append to an existing transcript.
func WithTranscript(t *model.Transcript) Option {
	return func(s *Session) {
		if t != nil {
			s.transcript = t
		}
	}
}

// New creates an idle session with an empty transcript.
func New(searcher Searcher, opts ...Option) *Session {
	s := &Session{
		searcher:    searcher,
		transcript:  model.NewTranscript(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		startTime:   time.Now(),
		subscribers: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.transcript.ID())
	return s
}

// Transcript returns the session's transcript.
func (s *Session) Transcript() *model.Transcript { return s.transcript }

// Pending returns the current input text.
func (s *Session) Pending() string { return s.pending }

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool { return s.busy }

// SetPending records an edit of the input text.
func (s *Session) SetPending(text string) {
	if text == s.pending {
		return
	}
	s.pending = text
	s.notify(Change{Kind: ChangePending, Pending: text, Busy: s.busy})
}

// CanSubmit reports whether text would be accepted by Begin.
func (s *Session) CanSubmit(text string) bool {
	return !s.busy && strings.TrimSpace(text) != ""
}

// =============================================================================
// SUBMISSION LIFECYCLE
// =============================================================================

// Begin starts a submission of text. It appends the user entry, marks the
// session busy, clears the pending text and returns the request to run.
// It returns false and changes nothing when the session is busy or text is
// blank.
func (s *Session) Begin(text string) (*Request, bool) {
	if !s.CanSubmit(text) {
		return nil, false
	}

	entry := model.NewUserEntry(text)
	s.transcript.Append(entry)
	s.notify(Change{Kind: ChangeEntry, Entry: entry, Pending: s.pending, Busy: s.busy})

	s.busy = true
	s.notify(Change{Kind: ChangeBusy, Busy: true, Pending: s.pending})

	s.SetPending("")

	req := &Request{
		id:       uuid.NewString(),
		query:    strings.TrimSpace(text),
		searcher: s.searcher,
	}
	s.current = req
	s.submissions++

	s.logger.Info("search started", "request_id", req.id, "query_len", len(req.query))
	return req, true
}

// Complete settles the outstanding request with its outcome. It appends
// exactly one assistant entry, clears busy and the pending text, and
// returns the appended entry. Outcomes for any other request are ignored.
func (s *Session) Complete(out Outcome) (model.Entry, bool) {
	if !s.busy || s.current == nil || out.RequestID != s.current.id {
		s.logger.Warn("ignoring stale search outcome", "request_id", out.RequestID)
		return model.Entry{}, false
	}

	var entry model.Entry
	if out.Err != nil {
		s.failures++
		s.logFailure(out)
		entry = model.NewFailureEntry()
	} else {
		segments := model.NormalizeResponse(out.Body)
		s.logger.Info("search completed",
			"request_id", out.RequestID,
			"duration", out.Duration,
			"bytes", len(out.Body),
			"segments", len(segments),
		)
		entry = model.NewAssistantEntry(segments)
	}

	s.transcript.Append(entry)
	s.notify(Change{Kind: ChangeEntry, Entry: entry, Pending: s.pending, Busy: s.busy})

	s.current = nil
	s.busy = false
	s.notify(Change{Kind: ChangeBusy, Busy: false, Pending: s.pending})
	s.SetPending("")

	return entry, true
}

// Submit runs a whole submission synchronously and returns the reply
// entry. It returns false when text was not accepted.
func (s *Session) Submit(ctx context.Context, text string) (model.Entry, bool) {
	req, ok := s.Begin(text)
	if !ok {
		return model.Entry{}, false
	}
	return s.Complete(req.Run(ctx))
}

func (s *Session) logFailure(out Outcome) {
	attrs := []any{
		"request_id", out.RequestID,
		"duration", out.Duration,
		"error", out.Err,
	}
	var ce *search.ClientError
	if errors.As(out.Err, &ce) {
		attrs = append(attrs, "type", ce.Type.String())
		if ce.StatusCode != 0 {
			attrs = append(attrs, "status", ce.StatusCode, "body", ce.Body)
		}
	}
	s.logger.Error("search failed", attrs...)
}

// =============================================================================
// STATS
// =============================================================================

// Stats summarizes a session.
type Stats struct {
	StartedAt   time.Time
	Submissions int
	Failures    int
	Entries     int
}

// Stats returns counters for the session so far.
func (s *Session) Stats() Stats {
	return Stats{
		StartedAt:   s.startTime,
		Submissions: s.submissions,
		Failures:    s.failures,
		Entries:     s.transcript.Len(),
	}
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn for every session change. The returned func
// removes the subscription.
func (s *Session) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

func (s *Session) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}

// =============================================================================
// REQUEST
// =============================================================================

// Request is one outstanding search. It is created by Begin.
type Request struct {
	id       string
	query    string
	searcher Searcher
}

// ID returns the request identifier.
func (r *Request) ID() string { return r.id }

// Query returns the trimmed query text sent to the backend.
func (r *Request) Query() string { return r.query }

// Outcome is the result of running a Request: either a body or an error.
type Outcome struct {
	RequestID string
	Body      string
	Err       error
	Duration  time.Duration
}

// Run performs the search. A panic in the searcher is recovered and
// reported as an error outcome.
func (r *Request) Run(ctx context.Context) (out Outcome) {
	out.RequestID = r.id
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			out.Body = ""
			out.Err = fmt.Errorf("searcher panicked: %v", p)
		}
		out.Duration = time.Since(start)
	}()

	if r.searcher == nil {
		out.Err = errors.New("no searcher configured")
		return out
	}
	out.Body, out.Err = r.searcher.Search(ctx, r.query)
	return out
}
