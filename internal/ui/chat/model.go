// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
	"github.com/AnirudhGatech/IECS-UI/internal/ui/styles"
)

// Disclaimer is shown under the input box.
const Disclaimer = "GTSearch is prone to errors and may present inaccurate information. " +
	"It's wise to verify its responses for accuracy, especially when dealing with crucial information."

// Layout constants.
const (
	headerHeight    = 1
	indicatorHeight = 1
	inputHeight     = 2 // top border + text line
	statusHeight    = 1
	minViewport     = 3
	inputCharLimit  = 2000
	bubbleMaxWidth  = 100
	bubbleMinWidth  = 20
)

// Options configures the view.
type Options struct {
	Title          string
	AssistantName  string
	Endpoint       string
	Hyperlinks     bool
	ShowDisclaimer bool
	ExportDir      string
	ExportFormat   string
	Logger         *slog.Logger
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the search conversation. The session owns
// all conversation state; the model only renders it and forwards input.
type Model struct {
	ctx     context.Context
	session *session.Session
	theme   styles.Theme
	opts    Options
	logger  *slog.Logger
	keyMap  KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	width  int
	height int
	ready  bool

	// Shared with the transcript subscription, which outlives any single
	// copy of the model.
	render *renderState

	statusMsg   string
	statusError bool
	statusSeq   int

	copyText func(string) error
}

// renderState tracks whether the transcript changed since the last redraw.
type renderState struct {
	dirty       bool
	unsubscribe func()
}

// New creates the view for sess. ctx bounds every request started from it.
func New(ctx context.Context, sess *session.Session, theme styles.Theme, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Title == "" {
		opts.Title = model.DefaultAssistantName
	}
	if opts.AssistantName == "" {
		opts.AssistantName = model.DefaultAssistantName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask " + opts.AssistantName + " anything..."
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.CharLimit = inputCharLimit
	ti.SetValue(sess.Pending())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = styles.SearchSpinner
	if termenv.EnvColorProfile() == termenv.Ascii {
		sp.Spinner = styles.DotsSpinner
	}
	sp.Style = theme.Spinner

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc

	rs := &renderState{dirty: true}
	rs.unsubscribe = sess.Transcript().Subscribe(func(model.Entry) {
		rs.dirty = true
	})

	return Model{
		ctx:      ctx,
		session:  sess,
		theme:    theme,
		opts:     opts,
		logger:   logger,
		keyMap:   DefaultKeyMap(),
		viewport: viewport.New(0, 0),
		input:    ti,
		spinner:  sp,
		help:     h,
		render:   rs,
		copyText: copyToClipboard,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the session driving the view.
func (m Model) Session() *session.Session { return m.session }

// Close detaches the model from the transcript.
func (m Model) Close() {
	if m.render != nil && m.render.unsubscribe != nil {
		m.render.unsubscribe()
		m.render.unsubscribe = nil
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

// handleResize recomputes component sizes for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	reserved := headerHeight + indicatorHeight + inputHeight + statusHeight + m.disclaimerHeight()
	vpHeight := m.height - reserved
	if vpHeight < minViewport {
		vpHeight = minViewport
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}

	m.input.Width = m.width - len(m.input.Prompt) - 1
	if m.input.Width < 1 {
		m.input.Width = 1
	}
	m.help.Width = m.width

	m.render.dirty = true
	return m.refresh()
}

// bubbleWidth returns the outer width of a transcript bubble.
func (m Model) bubbleWidth() int {
	w := m.width - 2
	if w > bubbleMaxWidth {
		w = bubbleMaxWidth
	}
	if w < bubbleMinWidth {
		w = bubbleMinWidth
	}
	return w
}

// refresh rebuilds the viewport content when the transcript has changed and
// keeps the newest entry in view.
func (m Model) refresh() Model {
	if !m.ready || !m.render.dirty {
		return m
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	m.render.dirty = false
	return m
}

// setStatus shows a notice and returns the command that clears it.
func (m Model) setStatus(text string, isError bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.statusMsg = text
	m.statusError = isError
	return m, clearStatusAfter(m.statusSeq)
}
