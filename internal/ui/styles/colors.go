// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Every palette entry is a Light/Dark pair. A Theme resolves each pair once,
// for the mode it was built with.

// =============================================================================
// BRAND COLORS
// =============================================================================

// Primary - Brand blue, assistant label, links
var Primary = lipgloss.AdaptiveColor{Light: "#556CD6", Dark: "#8C9EF0"}

// PrimaryDeep - Header background
var PrimaryDeep = lipgloss.AdaptiveColor{Light: "#3F51B5", Dark: "#2B3674"}

// Accent - User messages
var Accent = lipgloss.AdaptiveColor{Light: "#FFA34D", Dark: "#FFB870"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Failed searches
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, disclaimer
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// Emerald - Success notices
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Assistant bubble background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#EEF1F5", Dark: "#181825"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D8E0", Dark: "#45475A"}

// TextPrimary - Body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#2E2E2E", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#575757", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextOnAccent - Text drawn over the accent color
var TextOnAccent = lipgloss.AdaptiveColor{Light: "#2E2E2E", Dark: "#1E1E2E"}

// resolve picks the half of c that matches the background.
func resolve(c lipgloss.AdaptiveColor, dark bool) lipgloss.Color {
	if dark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}
