// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the GTSearch TUI.

# Color System (colors.go)

Every color is a Lip Gloss AdaptiveColor pair. Primary is the brand blue used
for the assistant label and links; Accent is the orange used for the user's
own queries. Rose marks a failed search.

# Themes (theme.go)

A Theme is built once from a Mode:

	theme := styles.NewTheme(styles.ModeAuto)  // asks the terminal
	theme := styles.NewTheme(styles.ModeLight) // fixed

Each AdaptiveColor is resolved to a concrete color at construction, so a
Theme never changes after it is built and can be copied freely.

# Spinners (animations.go)

SearchSpinner and DotsSpinner are bubbles/spinner definitions for the busy
indicator.
*/
package styles
