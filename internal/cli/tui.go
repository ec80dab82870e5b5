// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AnirudhGatech/IECS-UI/internal/ui/chat"
	"github.com/AnirudhGatech/IECS-UI/internal/ui/styles"
)

// runTUI opens the interactive search view.
func (a *App) runTUI(cmd *cobra.Command, _ []string) error {
	if !a.isTerminal() {
		return usageError("the interactive view needs a terminal; use 'gtsearch ask <query>' instead")
	}

	mode, err := styles.ParseMode(a.cfg.UI.Theme)
	if err != nil {
		return configError(err)
	}
	exportDir, err := a.cfg.ExportDir()
	if err != nil {
		return configError(err)
	}

	sess := a.newSession()
	m := chat.New(cmd.Context(), sess, styles.NewTheme(mode), chat.Options{
		Title:          a.cfg.UI.Title,
		AssistantName:  a.cfg.UI.AssistantName,
		Endpoint:       a.cfg.Search.Endpoint,
		Hyperlinks:     a.cfg.UI.Hyperlinks,
		ShowDisclaimer: a.cfg.UI.ShowDisclaimer,
		ExportDir:      exportDir,
		ExportFormat:   a.cfg.Export.Format,
		Logger:         a.logger,
	})
	defer m.Close()

	a.logger.Info("interactive session started", "endpoint", a.cfg.Search.Endpoint)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(a.Stdin),
		tea.WithOutput(a.Stdout),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive view: %w", err)
	}

	stats := sess.Stats()
	a.logger.Info("interactive session ended",
		"submissions", stats.Submissions,
		"failures", stats.Failures,
		"entries", stats.Entries,
	)
	return nil
}
