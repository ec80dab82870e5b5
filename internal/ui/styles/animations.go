// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SearchSpinner is shown next to "Searching..." while a request is out.
// ASCII frames render on every terminal font.
var SearchSpinner = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// DotsSpinner is the fallback used when the terminal reports low color.
var DotsSpinner = spinner.Spinner{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    time.Second / 6,
}
