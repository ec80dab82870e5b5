// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript document to one file format.
type Exporter interface {
	// Export renders the document and returns the file content.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the output.
	MimeType() string
}

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("transcript has no entries")

// =============================================================================
// DOCUMENT
// =============================================================================

// Meta describes where a transcript came from.
type Meta struct {
	Title         string
	AssistantName string
	Endpoint      string
}

// Document is an exportable snapshot of a transcript.
type Document struct {
	Meta
	SessionID string
	CreatedAt time.Time
	Entries   []model.Entry
}

// FromTranscript snapshots t for export.
func FromTranscript(t *model.Transcript, meta Meta) *Document {
	if meta.Title == "" {
		meta.Title = "GTSearch"
	}
	if meta.AssistantName == "" {
		meta.AssistantName = model.DefaultAssistantName
	}
	return &Document{
		Meta:      meta,
		SessionID: t.ID(),
		CreatedAt: t.CreatedAt(),
		Entries:   t.Entries(),
	}
}

// Label returns the display label for an entry's role.
func (d *Document) Label(e model.Entry) string {
	if e.Role() == model.RoleAssistant {
		return d.AssistantName
	}
	return e.Role().DisplayName()
}

func (d *Document) validate() error {
	if d == nil {
		return errors.New("document is nil")
	}
	if len(d.Entries) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

// firstQuery returns the first user entry's text, used for filenames.
func (d *Document) firstQuery() string {
	for _, e := range d.Entries {
		if e.Role() == model.RoleUser {
			return e.Preview(0)
		}
	}
	return ""
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	OutputDir string

	// IncludeMetadata adds a metadata header (session, dates, counts).
	IncludeMetadata bool

	// IncludeTimestamps adds per-entry timestamps.
	IncludeTimestamps bool

	// Theme for HTML export ("light" or "dark").
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             "light",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Formats lists the accepted format names.
var Formats = []string{"markdown", "html", "json"}

// ForFormat returns the exporter for a format name.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", format)
}

// ToFile renders doc with exporter and writes it into opts.OutputDir.
// It returns the path of the written file.
func ToFile(doc *Document, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("gtsearch_%s_%s%s",
		sanitizeFilename(doc.firstQuery()),
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)

	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(strings.TrimSpace(s), 40)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "transcript"
	}
	return b.String()
}

func formatTimestamp(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}

func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
