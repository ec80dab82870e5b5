// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AnirudhGatech/IECS-UI/internal/ui/styles"
)

// =============================================================================
// CLI STYLES
// =============================================================================

var (
	// TitleStyle is for section headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Primary)

	// UserLabelStyle labels the user's query.
	UserLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Accent)

	// AssistantLabelStyle labels answers.
	AssistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.Primary)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Rose)

	// SuccessStyle is for confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// DimStyle is for secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)
