// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AnirudhGatech/IECS-UI/internal/linkify"
	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.help.ShowAll {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Left, lipgloss.Top,
			m.help.View(m.keyMap))
	}

	parts := []string{
		m.renderHeader(),
		body,
		m.renderIndicator(),
		m.renderInput(),
	}
	if m.opts.ShowDisclaimer {
		parts = append(parts, m.renderDisclaimer())
	}
	parts = append(parts, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.opts.Title)
	meta := ""
	if n := m.session.Transcript().Len(); n > 0 {
		meta = m.theme.HeaderMeta.Render(pluralize(n, "entry", "entries"))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(meta) - 2
	if gap < 1 {
		gap = 1
	}
	line := title + strings.Repeat(" ", gap) + meta
	return m.theme.Header.Width(m.width).MaxHeight(headerHeight).Render(line)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript draws every entry in transcript order.
func (m Model) renderTranscript() string {
	entries := m.session.Transcript().Entries()
	if len(entries) == 0 {
		return m.theme.EmptyState.Render(
			"Ask " + m.opts.AssistantName + " anything. Press Enter to search.")
	}

	now := time.Now()
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, m.renderEntry(e, now))
	}
	return strings.Join(blocks, "\n\n")
}

// renderEntry draws one entry: a label line followed by a bubble holding its
// segments, one per line. User entries are right-aligned.
func (m Model) renderEntry(e model.Entry, now time.Time) string {
	user := e.Role() == model.RoleUser

	name := e.Role().DisplayName()
	if !user {
		name = m.opts.AssistantName
	}
	label := m.theme.Label(user).Render(name) + " " +
		m.theme.Timestamp.Render(formatTimestamp(e.Timestamp(), now))

	bubble := m.theme.Bubble(user, e.Failed())
	width := m.bubbleWidth()
	text := lipgloss.NewStyle().Foreground(bubble.GetForeground())

	lines := make([]string, 0, e.SegmentCount())
	for _, seg := range e.Segments() {
		lines = append(lines, m.renderSegment(seg, text))
	}
	content := strings.Join(lines, "\n")
	inner := width - bubble.GetHorizontalFrameSize()
	if natural := lipgloss.Width(content); natural < inner {
		inner = natural
	}
	if inner < 1 {
		inner = 1
	}
	body := bubble.Width(inner + bubble.GetHorizontalPadding()).Render(content)

	block := lipgloss.JoinVertical(lipgloss.Left, label, body)
	if user {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}
	return block
}

// renderSegment draws one segment. Text is shown literally with control
// characters escaped; links are underlined and, when enabled, emitted as
// terminal hyperlinks.
func (m Model) renderSegment(seg string, text lipgloss.Style) string {
	var b strings.Builder
	for _, u := range linkify.Split(seg) {
		if !u.IsLink() {
			b.WriteString(text.Render(util.EscapeControl(u.Value)))
			continue
		}
		styled := m.theme.Link.Render(u.Value)
		if m.opts.Hyperlinks {
			styled = termenv.Hyperlink(u.Value, styled)
		}
		b.WriteString(styled)
	}
	return b.String()
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

// renderIndicator shows the busy spinner while a request is outstanding.
func (m Model) renderIndicator() string {
	if !m.session.Busy() {
		return ""
	}
	return m.spinner.View() + " " + m.theme.SearchingText.Render("Searching...")
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) renderDisclaimer() string {
	return m.theme.Disclaimer.Width(m.width).Render(Disclaimer)
}

// disclaimerHeight is the number of lines the disclaimer takes at the
// current width.
func (m Model) disclaimerHeight() int {
	if !m.opts.ShowDisclaimer || m.width <= 0 {
		return 0
	}
	return lipgloss.Height(m.renderDisclaimer())
}

func (m Model) renderStatusBar() string {
	var content string
	switch {
	case m.statusMsg != "" && m.statusError:
		content = m.theme.NoticeError.Render(m.statusMsg)
	case m.statusMsg != "":
		content = m.theme.Notice.Render(m.statusMsg)
	default:
		content = m.help.ShortHelpView(m.keyMap.ShortHelp())
	}
	return m.theme.StatusBar.Width(m.width).Render(content)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
