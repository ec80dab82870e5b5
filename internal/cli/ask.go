// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnirudhGatech/IECS-UI/internal/export"
	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// maxStdinQuery caps a query read from stdin.
const maxStdinQuery = 64 * 1024

// askFormats are the output formats accepted by ask.
var askFormats = []string{"text", "markdown", "html", "json"}

func (a *App) askCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ask [query...]",
		Short: "Ask a single question and print the answer",
		Long: `Send one query and print the answer.

The words of the query are joined with spaces. With no arguments the query
is read from standard input. The exit status is non-zero when the search
fails.`,
		Example: `  gtsearch ask what is the weather in Atlanta
  echo "course schedule" | gtsearch ask
  gtsearch ask --format json office hours`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), strings.Join(args, " "), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(askFormats, ", "))
	return cmd
}

func (a *App) runAsk(ctx context.Context, query, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(askFormats, format) {
		return usageError("unknown format %q (want %s)", format, strings.Join(askFormats, ", "))
	}

	if strings.TrimSpace(query) == "" && !isTerminalReader(a.Stdin) {
		data, err := io.ReadAll(io.LimitReader(a.Stdin, maxStdinQuery))
		if err != nil {
			return fmt.Errorf("read query from stdin: %w", err)
		}
		query = strings.TrimSpace(string(data))
	}
	if strings.TrimSpace(query) == "" {
		return usageError("no query given")
	}

	sess := a.newSession()
	req, ok := sess.Begin(query)
	if !ok {
		return usageError("no query given")
	}
	out := req.Run(ctx)
	entry, _ := sess.Complete(out)

	if format == "text" {
		a.printEntry(entry)
	} else if err := a.writeDocument(sess, format); err != nil {
		return err
	}

	if out.Err != nil {
		return searchError(out.Err)
	}
	return nil
}

// writeDocument renders the whole transcript in an export format to stdout.
func (a *App) writeDocument(sess *session.Session, format string) error {
	opts := &export.Options{
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             "light",
	}
	if a.cfg.UI.Theme == "dark" {
		opts.Theme = "dark"
	}

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return usageError("%v", err)
	}
	data, err := exporter.Export(export.FromTranscript(sess.Transcript(), a.exportMeta()))
	if err != nil {
		return err
	}
	if _, err := a.Stdout.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(a.Stdout)
	}
	return nil
}

func (a *App) exportMeta() export.Meta {
	return export.Meta{
		Title:         a.cfg.UI.Title,
		AssistantName: a.cfg.UI.AssistantName,
		Endpoint:      a.cfg.Search.Endpoint,
	}
}

// =============================================================================
// TEXT OUTPUT
// =============================================================================

// printEntry writes an entry as a label followed by its wrapped segments.
// Control characters are escaped so responses cannot drive the terminal.
// URLs become hyperlinks when ui.hyperlinks is set and stdout is a terminal.
func (a *App) printEntry(e model.Entry) {
	user := e.Role() == model.RoleUser

	label := a.cfg.UI.AssistantName
	style := AssistantLabelStyle
	if user {
		label = e.Role().DisplayName()
		style = UserLabelStyle
	}
	if e.Failed() {
		style = ErrorStyle
	}
	fmt.Fprintln(a.Stdout, style.Render(label+":"))

	width := terminalWidth(a.Stdout)
	links := a.cfg.UI.Hyperlinks && a.outputIsTerminal(a.Stdout)
	for _, seg := range e.Segments() {
		text := wrapIndented(util.EscapeControl(seg), width, 2)
		if links {
			text = hyperlinkText(text)
		}
		fmt.Fprintln(a.Stdout, text)
	}
}
