// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhGatech/IECS-UI/internal/model"
)

func sampleDocument() *Document {
	t := model.NewTranscript()
	t.Append(model.NewUserEntry("What is the weather in Atlanta?"))
	t.Append(model.NewAssistantEntry([]string{
		"Sunny, high of 75.",
		"See https://weather.gov/atl for details <b>now</b>",
	}))
	t.Append(model.NewUserEntry("<script>alert('x')</script>"))
	t.Append(model.NewFailureEntry())
	return FromTranscript(t, Meta{Title: "GTSearch", Endpoint: "https://example.com/search"})
}

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestFromTranscript_Defaults(t *testing.T) {
	tr := model.NewTranscript()
	tr.Append(model.NewUserEntry("q"))

	doc := FromTranscript(tr, Meta{})

	assert.Equal(t, "GTSearch", doc.Title)
	assert.Equal(t, "GTSearch", doc.AssistantName)
	assert.Equal(t, tr.ID(), doc.SessionID)
	assert.Len(t, doc.Entries, 1)
}

func TestDocument_Label(t *testing.T) {
	doc := &Document{Meta: Meta{AssistantName: "Oracle"}}

	assert.Equal(t, "You", doc.Label(model.NewUserEntry("q")))
	assert.Equal(t, "Oracle", doc.Label(model.NewFailureEntry()))
}

func TestExport_EmptyTranscript(t *testing.T) {
	doc := FromTranscript(model.NewTranscript(), Meta{})

	for _, format := range Formats {
		exp, err := ForFormat(format, nil)
		require.NoError(t, err)
		_, err = exp.Export(doc)
		assert.True(t, errors.Is(err, ErrEmptyTranscript), format)
	}
}

func TestForFormat(t *testing.T) {
	tests := map[string]string{
		"markdown": ".md",
		"MD":       ".md",
		"html":     ".html",
		"json":     ".json",
	}
	for format, ext := range tests {
		exp, err := ForFormat(format, nil)
		require.NoError(t, err, format)
		assert.Equal(t, ext, exp.FileExtension(), format)
		assert.NotEmpty(t, exp.MimeType())
	}

	_, err := ForFormat("pdf", nil)
	assert.Error(t, err)
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestHTMLExporter_EscapesAndLinks(t *testing.T) {
	out, err := NewHTMLExporter(nil).Export(sampleDocument())
	require.NoError(t, err)
	result := string(out)

	assert.NotContains(t, result, "<script>alert")
	assert.Contains(t, result, "&lt;script&gt;")
	assert.Contains(t, result, "&lt;b&gt;now&lt;/b&gt;")
	assert.Contains(t, result,
		`<a href="https://weather.gov/atl" target="_blank" rel="noopener noreferrer">https://weather.gov/atl</a>`)
	assert.Contains(t, result, `class="message assistant-message failed"`)
	assert.Contains(t, result, "Sorry, there was an error processing your request.")
	assert.Contains(t, result, `<body class="light-theme">`)
}

func TestHTMLExporter_DarkTheme(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "dark"

	out, err := NewHTMLExporter(opts).Export(sampleDocument())
	require.NoError(t, err)
	assert.Contains(t, string(out), `<body class="dark-theme">`)
}

func TestHTMLSegment_ControlCharacters(t *testing.T) {
	got := htmlSegment("red \x1b[31mtext")
	assert.Equal(t, `red \x1b[31mtext`, got)
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleDocument())
	require.NoError(t, err)
	result := string(out)

	assert.True(t, strings.HasPrefix(result, "---\n"))
	assert.Contains(t, result, "endpoint: \"https://example.com/search\"")
	assert.Contains(t, result, "# GTSearch")
	assert.Contains(t, result, "### You")
	assert.Contains(t, result, "<https://weather.gov/atl>")
	assert.Contains(t, result, `\<b\>now\</b\>`)
	assert.Contains(t, result, "> Sorry, there was an error processing your request.")
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := &Options{}
	out, err := NewMarkdownExporter(opts).Export(sampleDocument())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "# GTSearch"))
	assert.NotContains(t, string(out), "<sub>")
}

func TestMarkdownSegment_Escaping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Sunny, high of 75.", "Sunny, high of 75."},
		{"entity", "&lt;b&gt; & co", "&amp;lt;b&amp;gt; &amp; co"},
		{"ordered list", "1. first", `1\. first`},
		{"ordered paren", "12) twelfth", `12\) twelfth`},
		{"number mid line", "Top 1. pick", "Top 1. pick"},
		{"dash list", "- item", `\- item`},
		{"plus list", "+ item", `\+ item`},
		{"setext underline", "===", `\===`},
		{"indented code", "    code()", "&#32;&#32;&#32;&#32;code()"},
		{"indented list", "  - item", `&#32;&#32;\- item`},
		{"link kept", "- https://weather.gov/atl", `\- <https://weather.gov/atl>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markdownSegment(tt.in))
		})
	}
}

func TestMarkdownExporter_ListLikeResponse(t *testing.T) {
	tr := model.NewTranscript()
	tr.Append(model.NewAssistantEntry([]string{"1. Buzz", "- Tech & Tower"}))
	out, err := NewMarkdownExporter(&Options{}).Export(FromTranscript(tr, Meta{Title: "GTSearch"}))
	require.NoError(t, err)

	assert.Contains(t, string(out), `1\. Buzz`)
	assert.Contains(t, string(out), `\- Tech &amp; Tower`)
}

func TestEscapeYAML_NewlineInjection(t *testing.T) {
	got := escapeYAML("Test\nInjection: malicious")
	assert.Equal(t, `"Test\nInjection: malicious"`, got)
	assert.Equal(t, "plain", escapeYAML("plain"))
}

func TestJSONExporter(t *testing.T) {
	doc := sampleDocument()
	out, err := NewJSONExporter(nil).Export(doc)
	require.NoError(t, err)

	var decoded struct {
		SessionID string `json:"session_id"`
		Meta      struct {
			Title string `json:"title"`
		} `json:"meta"`
		Entries []struct {
			Role     string   `json:"role"`
			Segments []string `json:"segments"`
			Failed   bool     `json:"failed"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, doc.SessionID, decoded.SessionID)
	assert.Equal(t, "GTSearch", decoded.Meta.Title)
	require.Len(t, decoded.Entries, 4)
	assert.Equal(t, "user", decoded.Entries[0].Role)
	assert.Len(t, decoded.Entries[1].Segments, 2)
	assert.True(t, decoded.Entries[3].Failed)
}

// =============================================================================
// FILE OUTPUT TESTS
// =============================================================================

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	opts := &Options{OutputDir: dir, IncludeMetadata: true}

	path, err := ToFile(sampleDocument(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "gtsearch_What_is_the_weather_in_Atlanta-_"))
	assert.True(t, strings.HasSuffix(path, ".md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sunny, high of 75.")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "transcript"},
		{"a/b:c", "a-b-c"},
		{"hello world", "hello_world"},
		{"tab\there", "tab_here"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, sanitizeFilename(tc.input), tc.input)
	}
}
