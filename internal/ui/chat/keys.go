// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY BINDINGS
// =============================================================================

// KeyMap defines the keyboard shortcuts for the search view. Printable keys
// and the input's editing keys (ctrl+u, ctrl+a, home, end, ...) always go to
// the input, so scrolling uses keys the input does not bind.
type KeyMap struct {
	Submit key.Binding
	Quit   key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Copy   key.Binding
	Export key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("C-home", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("C-end", "bottom"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy answer"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Copy, k.Export, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help panel, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End},
		{k.Submit, k.Copy, k.Export},
		{k.Help, k.Quit},
	}
}
