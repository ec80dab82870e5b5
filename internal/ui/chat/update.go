// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SearchCompleteMsg:
		return m.handleSearchComplete(msg)

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ExportCompleteMsg:
		return m.handleExportComplete(msg)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusError = false
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Cursor blink and anything else the input wants.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m.refresh(), tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Copy):
		return m.copyLastResponse()

	case key.Matches(msg, m.keyMap.Export):
		return m.handleExport()

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if handled, next := m.handleNavigationKeys(msg); handled {
		return next, nil
	}

	// Input is disabled while a request is outstanding.
	if m.session.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetPending(m.input.Value())
	return m, cmd
}

// handleNavigationKeys scrolls the transcript.
func (m Model) handleNavigationKeys(msg tea.KeyMsg) (bool, Model) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
	default:
		return false, m
	}
	return true, m
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit starts a search for the input text. Blank input and submissions
// while busy are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.session.SetPending(text)

	req, ok := m.session.Begin(text)
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.statusMsg = ""

	return m.refresh(), tea.Batch(runSearch(m.ctx, req), m.spinner.Tick)
}

// runSearch performs the request off the update loop.
func runSearch(ctx context.Context, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		return SearchCompleteMsg{Outcome: req.Run(ctx)}
	}
}

func (m Model) handleSearchComplete(msg SearchCompleteMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.session.Complete(msg.Outcome); !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Focus()
	return m.refresh(), textinput.Blink
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// copyLastResponse copies the newest assistant entry to the clipboard.
func (m Model) copyLastResponse() (tea.Model, tea.Cmd) {
	entry, ok := m.session.Transcript().LastOfRole(model.RoleAssistant)
	if !ok {
		return m.setStatus("No response to copy yet", true)
	}
	if err := m.copyText(entry.Text()); err != nil {
		m.logger.Warn("clipboard copy failed", "error", err)
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus("Copied response to clipboard", false)
}

// =============================================================================
// STATUS
// =============================================================================

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
