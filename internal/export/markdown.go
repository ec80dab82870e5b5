// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/linkify"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a transcript document to Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "title: %s\n", escapeYAML(doc.Title))
		fmt.Fprintf(&sb, "session: %s\n", doc.SessionID)
		fmt.Fprintf(&sb, "date: %s\n", doc.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&sb, "entries: %d\n", len(doc.Entries))
		if doc.Endpoint != "" {
			fmt.Fprintf(&sb, "endpoint: %s\n", escapeYAML(doc.Endpoint))
		}
		fmt.Fprintf(&sb, "exported: %s\n", time.Now().Format(time.RFC3339))
		sb.WriteString("generator: gtsearch\n")
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(doc.Title))

	for i, entry := range doc.Entries {
		label := escapeMarkdown(doc.Label(entry))
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(entry.Timestamp()))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		for _, seg := range entry.Segments() {
			if entry.Failed() {
				sb.WriteString("> ")
			}
			sb.WriteString(markdownSegment(seg))
			sb.WriteString("\n\n")
		}

		if i < len(doc.Entries)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "*Exported from GTSearch on %s*\n", formatTimestamp(time.Now()))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// markdownSegment escapes plain text and turns links into autolinks. The
// result is always a single plain paragraph.
func markdownSegment(seg string) string {
	var sb strings.Builder
	for _, u := range linkify.Split(seg) {
		if u.IsLink() {
			sb.WriteString("<" + u.Value + ">")
			continue
		}
		sb.WriteString(escapeMarkdown(util.EscapeControl(u.Value)))
	}
	return escapeLineStart(sb.String())
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"&", "&amp;",
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// escapeMarkdown escapes characters that Markdown would treat as syntax.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// orderedListMarker matches "1." or "1)" at the start of a line.
var orderedListMarker = regexp.MustCompile(`^[0-9]{1,9}[.)]`)

var leadingSpaceEscaper = strings.NewReplacer(" ", "&#32;", "\t", "&#9;")

// escapeLineStart neutralizes syntax that only counts at the start of a
// line: indentation (code blocks) and list or heading-underline markers.
// s must already be escaped by escapeMarkdown.
func escapeLineStart(s string) string {
	body := strings.TrimLeft(s, " \t")
	lead := leadingSpaceEscaper.Replace(s[:len(s)-len(body)])

	switch {
	case strings.HasPrefix(body, "-"), strings.HasPrefix(body, "+"), strings.HasPrefix(body, "="):
		body = `\` + body
	default:
		if loc := orderedListMarker.FindStringIndex(body); loc != nil {
			end := loc[1] - 1
			body = body[:end] + `\` + body[end:]
		}
	}
	return lead + body
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
