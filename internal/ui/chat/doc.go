// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the interactive search view.

The view is a Bubble Tea model layered over a session.Session. It owns no
conversation state of its own: typing updates the session's pending text,
Enter starts a request through session.Begin, and the request runs as a
tea.Cmd whose result is fed back through session.Complete. A subscription on
the transcript marks the viewport dirty so each new entry is drawn and
scrolled into view.

# Layout

  - Header with the title and entry count
  - Scrollable transcript: label, timestamp and bubble per entry
  - Busy line with a spinner and "Searching..."
  - Single-line input, disabled while a request is outstanding
  - Optional disclaimer
  - Status bar with notices or key hints

Links inside entries are underlined and, when enabled, written as OSC 8
terminal hyperlinks. All other text is shown literally with control
characters escaped.

# Usage

	sess := session.New(search.NewClientWithConfig(&search.ClientConfig{
		Endpoint: cfg.Search.Endpoint,
	}))
	m := chat.New(ctx, sess, styles.NewTheme(styles.ModeAuto), chat.Options{
		Hyperlinks:     true,
		ShowDisclaimer: true,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
*/
package chat
