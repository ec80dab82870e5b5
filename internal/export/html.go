// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/AnirudhGatech/IECS-UI/internal/linkify"
	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/util"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a standalone HTML page.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a transcript document to HTML.
func (e *HTMLExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "dark" {
		theme = "light"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", html.EscapeString(doc.Title))
	sb.WriteString("    <meta name=\"generator\" content=\"gtsearch\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", doc.CreatedAt.Format(time.RFC3339))
	sb.WriteString(htmlCSS)
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s-theme\">\n", theme)
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	fmt.Fprintf(&sb, "            <h1>%s</h1>\n", html.EscapeString(doc.Title))
	if e.options.IncludeMetadata {
		sb.WriteString("            <div class=\"metadata\">\n")
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Started:</strong> %s</span>\n", formatTimestamp(doc.CreatedAt))
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Entries:</strong> %d</span>\n", len(doc.Entries))
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </header>\n")

	sb.WriteString("        <main class=\"conversation\">\n")
	for _, entry := range doc.Entries {
		sb.WriteString(e.renderEntry(doc, entry))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	fmt.Fprintf(&sb, "            <p>Exported from <strong>GTSearch</strong> on %s</p>\n", formatTimestamp(time.Now()))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderEntry(doc *Document, entry model.Entry) string {
	var sb strings.Builder

	class := entry.Role().String() + "-message"
	if entry.Failed() {
		class += " failed"
	}
	fmt.Fprintf(&sb, "            <div class=\"message %s\">\n", class)
	sb.WriteString("                <div class=\"message-header\">\n")
	fmt.Fprintf(&sb, "                    <span class=\"role-label\">%s</span>\n", html.EscapeString(doc.Label(entry)))
	if e.options.IncludeTimestamps {
		fmt.Fprintf(&sb, "                    <span class=\"timestamp\">%s</span>\n", formatShortTimestamp(entry.Timestamp()))
	}
	sb.WriteString("                </div>\n")

	sb.WriteString("                <div class=\"message-content\">\n")
	for _, seg := range entry.Segments() {
		fmt.Fprintf(&sb, "                    <p>%s</p>\n", htmlSegment(seg))
	}
	sb.WriteString("                </div>\n")
	sb.WriteString("            </div>\n")

	return sb.String()
}

// htmlSegment escapes text and renders links as anchors opening in a new
// browsing context.
func htmlSegment(seg string) string {
	var sb strings.Builder
	for _, u := range linkify.Split(seg) {
		if u.IsLink() {
			href := html.EscapeString(u.Value)
			fmt.Fprintf(&sb, `<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, href)
			continue
		}
		sb.WriteString(html.EscapeString(util.EscapeControl(u.Value)))
	}
	return sb.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const htmlCSS = `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        .light-theme {
            --bg: #eef1f5;
            --surface: #ffffff;
            --text: #2e2e2e;
            --text-secondary: #575757;
            --primary: #556cd6;
            --user-bg: #ffa34d;
            --user-text: #2e2e2e;
            --error: #e11d48;
        }

        .dark-theme {
            --bg: #181825;
            --surface: #1e1e2e;
            --text: #cdd6f4;
            --text-secondary: #a6adc8;
            --primary: #8c9ef0;
            --user-bg: #ffb870;
            --user-text: #1e1e2e;
            --error: #fb7185;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: var(--text);
            background: var(--bg);
            padding: 2rem;
        }

        .container { max-width: 900px; margin: 0 auto; }
        .header { margin-bottom: 1.5rem; }
        .header h1 { color: var(--primary); font-size: 1.8rem; }
        .metadata { display: flex; gap: 1rem; color: var(--text-secondary); font-size: 0.9rem; }

        .message {
            padding: 12px 18px;
            margin-bottom: 12px;
            border-radius: 15px;
            background: var(--surface);
            overflow-wrap: break-word;
        }
        .user-message { background: var(--user-bg); color: var(--user-text); }
        .message.failed { border-left: 4px solid var(--error); }

        .message-header { display: flex; justify-content: space-between; margin-bottom: 4px; }
        .role-label { font-weight: bold; color: var(--primary); }
        .user-message .role-label { color: var(--user-text); }
        .timestamp { font-size: 0.8rem; color: var(--text-secondary); }
        .message-content p + p { margin-top: 0.5rem; }
        .message-content a { color: var(--primary); }

        .footer { margin-top: 2rem; font-size: 0.8rem; color: var(--text-secondary); text-align: center; }
    </style>
`
