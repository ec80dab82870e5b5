// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/AnirudhGatech/IECS-UI/internal/config"
	"github.com/AnirudhGatech/IECS-UI/internal/export"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
	"github.com/AnirudhGatech/IECS-UI/internal/ui/chat"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// maxHistory is the number of lines kept in the history file.
const maxHistory = 500

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of input at a time.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// linerReader is a lineReader with editing and persistent history.
type linerReader struct {
	state       *liner.State
	historyPath string
	lines       int
}

func newLinerReader(historyPath string) lineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(false)

	r := &linerReader{state: state, historyPath: historyPath}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			r.lines, _ = state.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
	r.lines++
}

// Close writes the history file and restores the terminal.
func (r *linerReader) Close() error {
	var saveErr error
	if r.historyPath != "" && r.lines > 0 {
		var buf bytes.Buffer
		if _, err := r.state.WriteHistory(&buf); err == nil {
			saveErr = util.AtomicWriteFile(r.historyPath, trimHistory(buf.Bytes(), maxHistory), 0600)
		}
	}
	if err := r.state.Close(); err != nil {
		return err
	}
	return saveErr
}

// trimHistory keeps the newest limit lines.
func trimHistory(data []byte, limit int) []byte {
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) <= limit {
		return data
	}
	return append(bytes.Join(lines[len(lines)-limit:], []byte("\n")), '\n')
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

const chatHelp = `Type a question and press Enter.
  /export [markdown|html|json]  save the conversation
  /help                         show this help
  /quit                         leave (Ctrl+D also works)`

func (a *App) chatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode conversation with history",
		Long: `Start a conversation in plain line mode. Each line is sent as a query
and the answer is printed below it. Input history is kept between runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChat(cmd.Context())
		},
	}
}

func (a *App) runChat(ctx context.Context) error {
	historyPath := ""
	if dir, err := config.ConfigDir(); err == nil {
		historyPath = filepath.Join(dir, "history")
	}

	reader := a.newLineReader(historyPath)
	defer func() {
		if err := reader.Close(); err != nil {
			a.logger.Warn("could not save history", "error", err)
		}
	}()

	sess := a.newSession()

	fmt.Fprintln(a.Stdout, TitleStyle.Render(a.cfg.UI.Title))
	if a.cfg.UI.ShowDisclaimer {
		fmt.Fprintln(a.Stdout, DimStyle.Render(wrapIndented(chat.Disclaimer, terminalWidth(a.Stdout), 0)))
	}
	fmt.Fprintln(a.Stdout, DimStyle.Render("Type /help for commands."))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := reader.Prompt("You> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.Stdout)
			return nil
		}
		if err != nil {
			return err
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		reader.AppendHistory(line)

		if strings.HasPrefix(text, "/") {
			if quit := a.chatCommandLine(sess.Transcript().IsEmpty(), text, func(format string) error {
				return a.exportSession(sess, format)
			}); quit {
				return nil
			}
			continue
		}

		sess.SetPending(line)
		fmt.Fprintln(a.Stdout, DimStyle.Render("Searching..."))
		entry, ok := sess.Submit(ctx, sess.Pending())
		if !ok {
			continue
		}
		a.printEntry(entry)
		fmt.Fprintln(a.Stdout)
	}
}

// chatCommandLine handles a slash command. It reports whether to quit.
func (a *App) chatCommandLine(empty bool, text string, doExport func(string) error) bool {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/?":
		fmt.Fprintln(a.Stdout, chatHelp)
	case "/export":
		if empty {
			fmt.Fprintln(a.Stdout, ErrorStyle.Render("Nothing to export yet."))
			return false
		}
		format := a.cfg.Export.Format
		if len(fields) > 1 {
			format = fields[1]
		}
		if err := doExport(format); err != nil {
			fmt.Fprintln(a.Stdout, ErrorStyle.Render("Export failed: "+err.Error()))
		}
	default:
		fmt.Fprintln(a.Stdout, ErrorStyle.Render("Unknown command "+fields[0]+". Type /help."))
	}
	return false
}

// exportSession writes the transcript into the configured export directory.
func (a *App) exportSession(sess *session.Session, format string) error {
	dir, err := a.cfg.ExportDir()
	if err != nil {
		return err
	}
	opts := export.DefaultOptions()
	opts.OutputDir = dir
	if a.cfg.UI.Theme == "dark" {
		opts.Theme = "dark"
	}

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}
	path, err := export.ToFile(export.FromTranscript(sess.Transcript(), a.exportMeta()), exporter, opts)
	if err != nil {
		return err
	}
	a.logger.Info("transcript exported", "path", path)
	fmt.Fprintln(a.Stdout, SuccessStyle.Render("Exported to "+path))
	return nil
}
