// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/AnirudhGatech/IECS-UI/internal/linkify"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// stdioIsTerminal reports whether both stdin and stdout are terminals.
func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// isTerminalReader reports whether r is a terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// wrapIndented word-wraps text to width and indents every line by pad
// spaces. Words longer than the width, such as URLs, are never split.
func wrapIndented(text string, width int, pad uint) string {
	limit := width - int(pad) - 1
	if limit < 20 {
		limit = 20
	}
	return indent.String(wordwrap.String(text, limit), pad)
}

// hyperlinkText wraps every URL in s in an OSC 8 hyperlink. Apply it after
// wrapping so the escape sequences never count toward line width.
func hyperlinkText(s string) string {
	var sb strings.Builder
	for _, u := range linkify.Split(s) {
		if u.IsLink() {
			sb.WriteString(termenv.Hyperlink(u.Value, u.Value))
			continue
		}
		sb.WriteString(u.Value)
	}
	return sb.String()
}
