// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnirudhGatech/IECS-UI/internal/export"
)

// handleExport writes the transcript to the export directory. The document
// is a snapshot taken here, so the write never touches live state.
func (m Model) handleExport() (tea.Model, tea.Cmd) {
	if m.session.Transcript().IsEmpty() {
		return m.setStatus("Nothing to export yet", true)
	}

	doc := export.FromTranscript(m.session.Transcript(), export.Meta{
		Title:         m.opts.Title,
		AssistantName: m.opts.AssistantName,
		Endpoint:      m.opts.Endpoint,
	})

	opts := export.DefaultOptions()
	if m.opts.ExportDir != "" {
		opts.OutputDir = m.opts.ExportDir
	}
	if m.theme.IsDark {
		opts.Theme = "dark"
	}

	format := m.opts.ExportFormat
	if format == "" {
		format = "markdown"
	}

	m.statusMsg = "Exporting..."
	m.statusError = false

	return m, func() tea.Msg {
		exporter, err := export.ForFormat(format, opts)
		if err != nil {
			return ExportCompleteMsg{Err: err}
		}
		path, err := export.ToFile(doc, exporter, opts)
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

func (m Model) handleExportComplete(msg ExportCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error("export failed", "error", msg.Err)
		return m.setStatus("Export failed: "+msg.Err.Error(), true)
	}
	m.logger.Info("transcript exported", "path", msg.Path)
	return m.setStatus("Exported to "+msg.Path, false)
}
