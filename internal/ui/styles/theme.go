// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the color scheme.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeDark, ModeLight:
		return m, nil
	case "":
		return ModeAuto, nil
	}
	return ModeAuto, fmt.Errorf("unknown theme %q (want auto, dark or light)", s)
}

// Theme holds every style used by the interface. It is built once and
// passed by value; nothing mutates it afterwards.
type Theme struct {
	Mode   Mode
	IsDark bool

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	FailureBubble   lipgloss.Style
	Timestamp       lipgloss.Style
	Link            lipgloss.Style
	EmptyState      lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	Spinner          lipgloss.Style
	SearchingText    lipgloss.Style
	StatusBar        lipgloss.Style
	ShortcutKey      lipgloss.Style
	ShortcutDesc     lipgloss.Style
	Notice           lipgloss.Style
	NoticeError      lipgloss.Style
	Disclaimer       lipgloss.Style
}

// NewTheme builds a theme for mode. ModeAuto asks the terminal for its
// background color.
func NewTheme(mode Mode) Theme {
	dark := true
	switch mode {
	case ModeLight:
		dark = false
	case ModeDark:
	default:
		mode = ModeAuto
		dark = termenv.HasDarkBackground()
	}
	return newTheme(mode, dark)
}

func newTheme(mode Mode, dark bool) Theme {
	c := func(ac lipgloss.AdaptiveColor) lipgloss.Color { return resolve(ac, dark) }

	t := Theme{Mode: mode, IsDark: dark}

	t.Header = lipgloss.NewStyle().
		Background(c(PrimaryDeep)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))
	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(c(Accent))

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Accent))
	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Primary))

	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Accent)).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Primary)).
		Padding(0, 1)
	t.FailureBubble = t.AssistantBubble.
		BorderForeground(c(Rose)).
		Foreground(c(Rose))

	t.Timestamp = lipgloss.NewStyle().
		Foreground(c(TextMuted))
	t.Link = lipgloss.NewStyle().
		Foreground(c(Primary)).
		Underline(true)
	t.EmptyState = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true).
		Padding(1, 2)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(c(Overlay))
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(c(Accent)).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(c(Primary))
	t.SearchingText = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(c(SurfaceDim)).
		Foreground(c(TextSecondary)).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(c(Primary)).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(c(TextMuted))
	t.Notice = lipgloss.NewStyle().
		Foreground(c(Emerald))
	t.NoticeError = lipgloss.NewStyle().
		Foreground(c(Rose))

	t.Disclaimer = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true)

	return t
}

// Bubble returns the bubble style for an entry.
func (t Theme) Bubble(user, failed bool) lipgloss.Style {
	switch {
	case user:
		return t.UserBubble
	case failed:
		return t.FailureBubble
	default:
		return t.AssistantBubble
	}
}

// Label returns the label style for an entry.
func (t Theme) Label(user bool) lipgloss.Style {
	if user {
		return t.UserLabel
	}
	return t.AssistantLabel
}
