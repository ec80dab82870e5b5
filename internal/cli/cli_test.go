// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhGatech/IECS-UI/internal/config"
	"github.com/AnirudhGatech/IECS-UI/internal/model"
	"github.com/AnirudhGatech/IECS-UI/internal/search"
	"github.com/AnirudhGatech/IECS-UI/internal/session"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeSearcher struct {
	body    string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.body, f.err
}

type scriptedReader struct {
	lines   []string
	history []string
	closed  bool
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(line string) { r.history = append(r.history, line) }

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

type harness struct {
	app      *App
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	searcher *fakeSearcher
	reader   *scriptedReader
	endpoint string
	home     string
}

func newHarness(t *testing.T, fs *fakeSearcher) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"GTSEARCH_ENDPOINT", "GTSEARCH_TIMEOUT", "GTSEARCH_THEME",
		"GTSEARCH_LOG_FILE", "GTSEARCH_LOG_LEVEL", "GTSEARCH_EXPORT_DIR",
	} {
		t.Setenv(key, "")
	}

	h := &harness{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		searcher: fs,
		reader:   &scriptedReader{},
		home:     home,
	}
	h.app = NewApp()
	h.app.Stdin = strings.NewReader("")
	h.app.Stdout = h.stdout
	h.app.Stderr = h.stderr
	h.app.isTerminal = func() bool { return false }
	h.app.outputIsTerminal = func(io.Writer) bool { return false }
	h.app.newSearcher = func(cfg *config.Config) session.Searcher {
		h.endpoint = cfg.Search.Endpoint
		return h.searcher
	}
	h.app.newLineReader = func(string) lineReader { return h.reader }
	return h
}

func (h *harness) run(args ...string) error {
	root := h.app.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_PrintsSegments(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "Line one\n\nLine two"})

	err := h.run("ask", "what", "is", "the", "weather")
	require.NoError(t, err)

	out := h.stdout.String()
	assert.Contains(t, out, "GTSearch:")
	assert.Contains(t, out, "  Line one\n")
	assert.Contains(t, out, "  Line two\n")
	assert.Equal(t, []string{"what is the weather"}, h.searcher.queries)
	assert.Equal(t, search.DefaultEndpoint, h.endpoint)
}

func TestAsk_FailureExitCode(t *testing.T) {
	h := newHarness(t, &fakeSearcher{err: errors.New("boom")})

	err := h.run("ask", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Equal(t, ExitGeneralError, ExitCode(err))
	assert.Contains(t, h.stdout.String(), model.FailureSegment)
	assert.NotContains(t, h.stdout.String(), "boom")
}

func TestAsk_TimeoutExitCode(t *testing.T) {
	h := newHarness(t, &fakeSearcher{err: &search.ClientError{Type: search.ErrTypeTimeout, Message: "slow"}})

	err := h.run("ask", "anything")
	assert.Equal(t, ExitTimeoutError, ExitCode(err))
	assert.Contains(t, err.Error(), "timeout")
}

func TestAsk_ConnectionExitCode(t *testing.T) {
	h := newHarness(t, &fakeSearcher{err: &search.ClientError{Type: search.ErrTypeConnection, Message: "refused"}})

	err := h.run("ask", "anything")
	assert.Equal(t, ExitNetworkError, ExitCode(err))
}

func TestAsk_JSONFormat(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "answer"})

	require.NoError(t, h.run("ask", "--format", "json", "question"))

	var doc struct {
		Entries []struct {
			Role     string   `json:"role"`
			Segments []string `json:"segments"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &doc))
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "user", doc.Entries[0].Role)
	assert.Equal(t, []string{"answer"}, doc.Entries[1].Segments)
}

func TestAsk_MarkdownFormat(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "answer"})

	require.NoError(t, h.run("ask", "-f", "markdown", "question"))
	assert.Contains(t, h.stdout.String(), "### GTSearch")
}

func TestAsk_UnknownFormat(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	err := h.run("ask", "--format", "pdf", "question")
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Empty(t, h.searcher.queries)
}

func TestAsk_QueryFromStdin(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "ok"})
	h.app.Stdin = strings.NewReader("course schedule\n")

	require.NoError(t, h.run("ask"))
	assert.Equal(t, []string{"course schedule"}, h.searcher.queries)
}

func TestAsk_NoQuery(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	err := h.run("ask", "   ")
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Empty(t, h.searcher.queries)
}

func TestAsk_EscapesControlCharacters(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "red \x1b[31mtext"})

	require.NoError(t, h.run("ask", "q"))
	assert.NotContains(t, h.stdout.String(), "\x1b[31m")
	assert.Contains(t, h.stdout.String(), `\x1b[31mtext`)
}

func TestAsk_Hyperlinks(t *testing.T) {
	const osc = "\x1b]8;;"
	body := "see https://weather.gov/atl now"

	t.Run("terminal", func(t *testing.T) {
		h := newHarness(t, &fakeSearcher{body: body})
		h.app.outputIsTerminal = func(io.Writer) bool { return true }

		require.NoError(t, h.run("ask", "q"))
		out := h.stdout.String()
		assert.Contains(t, out, osc+"https://weather.gov/atl\x1b\\https://weather.gov/atl")
		assert.Contains(t, out, "  see ")
		assert.Contains(t, out, " now\n")
	})

	t.Run("not a terminal", func(t *testing.T) {
		h := newHarness(t, &fakeSearcher{body: body})

		require.NoError(t, h.run("ask", "q"))
		assert.NotContains(t, h.stdout.String(), osc)
		assert.Contains(t, h.stdout.String(), "  see https://weather.gov/atl now\n")
	})

	t.Run("disabled in config", func(t *testing.T) {
		h := newHarness(t, &fakeSearcher{body: body})
		h.app.outputIsTerminal = func(io.Writer) bool { return true }
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[ui]\nhyperlinks = false\n"), 0600))

		require.NoError(t, h.run("--config", path, "ask", "q"))
		assert.NotContains(t, h.stdout.String(), osc)
	})
}

func TestHyperlinkText(t *testing.T) {
	assert.Equal(t, "  plain text", hyperlinkText("  plain text"))
	got := hyperlinkText("go to https://gatech.edu.")
	assert.Equal(t, "go to \x1b]8;;https://gatech.edu\x1b\\https://gatech.edu\x1b]8;;\x1b\\.", got)
}

// =============================================================================
// FLAG AND CONFIG LOADING TESTS
// =============================================================================

func TestFlags_OverrideEndpoint(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "ok"})

	require.NoError(t, h.run("--endpoint", "https://search.example.edu/api", "ask", "q"))
	assert.Equal(t, "https://search.example.edu/api", h.endpoint)
}

func TestFlags_EnvBelowFlag(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "ok"})
	t.Setenv("GTSEARCH_ENDPOINT", "https://env.example.edu")

	require.NoError(t, h.run("ask", "q"))
	assert.Equal(t, "https://env.example.edu", h.endpoint)

	require.NoError(t, h.run("--endpoint", "https://flag.example.edu", "ask", "q"))
	assert.Equal(t, "https://flag.example.edu", h.endpoint)
}

func TestFlags_InvalidTheme(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	err := h.run("--theme", "purple", "ask", "q")
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestConfig_InvalidFile(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search\nendpoint = "), 0600))

	err := h.run("--config", path, "ask", "q")
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestRoot_NeedsTerminal(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	err := h.run()
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Contains(t, err.Error(), "gtsearch ask")
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Conversation(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "first answer"})
	h.reader.lines = []string{"hello", "", "/help", "second", "/quit", "never sent"}

	require.NoError(t, h.run("chat"))

	out := h.stdout.String()
	assert.Contains(t, out, "GTSearch is prone to errors")
	assert.Contains(t, out, "Searching...")
	assert.Contains(t, out, "first answer")
	assert.Contains(t, out, "/export")
	assert.Equal(t, []string{"hello", "second"}, h.searcher.queries)
	assert.Equal(t, []string{"hello", "/help", "second", "/quit"}, h.reader.history)
	assert.True(t, h.reader.closed)
}

func TestChat_EndsOnEOF(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "ok"})
	h.reader.lines = []string{"one"}

	require.NoError(t, h.run("chat"))
	assert.Equal(t, []string{"one"}, h.searcher.queries)
}

func TestChat_Export(t *testing.T) {
	h := newHarness(t, &fakeSearcher{body: "ok"})
	dir := t.TempDir()
	t.Setenv("GTSEARCH_EXPORT_DIR", dir)
	h.reader.lines = []string{"/export", "question", "/export json", "/export pdf"}

	require.NoError(t, h.run("chat"))

	out := h.stdout.String()
	assert.Contains(t, out, "Nothing to export yet.")
	assert.Contains(t, out, "Exported to "+dir)
	assert.Contains(t, out, "Export failed")

	files, err := filepath.Glob(filepath.Join(dir, "gtsearch_*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestChat_UnknownCommand(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})
	h.reader.lines = []string{"/bogus"}

	require.NoError(t, h.run("chat"))
	assert.Contains(t, h.stdout.String(), "Unknown command /bogus")
	assert.Empty(t, h.searcher.queries)
}

func TestTrimHistory(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&buf, "line %d\n", i)
	}

	assert.Equal(t, buf.Bytes(), trimHistory(buf.Bytes(), 20))
	assert.Equal(t, "line 7\nline 8\nline 9\n", string(trimHistory(buf.Bytes(), 3)))
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func TestConfigCommands(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, h.run("--config", path, "config", "init"))
	assert.FileExists(t, path)

	err := h.run("--config", path, "config", "init")
	assert.Equal(t, ExitUsageError, ExitCode(err))
	require.NoError(t, h.run("--config", path, "config", "init", "--force"))

	require.NoError(t, h.run("--config", path, "config", "set", "ui.theme", "dark"))

	h.stdout.Reset()
	require.NoError(t, h.run("--config", path, "config", "get", "ui.theme"))
	assert.Equal(t, "dark\n", h.stdout.String())

	err = h.run("--config", path, "config", "set", "ui.theme", "purple")
	assert.Equal(t, ExitConfigError, ExitCode(err))

	err = h.run("--config", path, "config", "set", "ui.nope", "x")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	h.stdout.Reset()
	require.NoError(t, h.run("--config", path, "config", "show", "--format", "yaml"))
	assert.Contains(t, h.stdout.String(), "# source: "+path)
	assert.Contains(t, h.stdout.String(), "theme: dark")

	h.stdout.Reset()
	require.NoError(t, h.run("--config", path, "config", "path"))
	assert.Equal(t, path+"\n", h.stdout.String())
}

func TestConfigSet_DoesNotPersistEnv(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("GTSEARCH_ENDPOINT", "https://env.example.edu")

	require.NoError(t, h.run("--config", path, "config", "set", "ui.title", "Campus Search"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Campus Search")
	assert.NotContains(t, string(data), "env.example.edu")
}

func TestConfigSet_RejectsNonTOML(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := h.run("--config", path, "config", "set", "ui.theme", "dark")
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestConfigKeys(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	require.NoError(t, h.run("config", "keys"))
	assert.Contains(t, h.stdout.String(), "search.endpoint\n")
	assert.Contains(t, h.stdout.String(), "ui.hyperlinks\n")
}

func TestVersion(t *testing.T) {
	h := newHarness(t, &fakeSearcher{})

	require.NoError(t, h.run("version"))
	assert.Contains(t, h.stdout.String(), "gtsearch "+Version)
}

// =============================================================================
// UTILITY TESTS
// =============================================================================

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(errors.New("x")))
	assert.Equal(t, ExitUsageError, ExitCode(usageError("bad")))
	assert.Equal(t, ExitConfigError, ExitCode(fmt.Errorf("wrapped: %w", configError(errors.New("x")))))
}

func TestWrapIndented(t *testing.T) {
	got := wrapIndented("alpha beta gamma delta epsilon zeta eta theta iota kappa", 25, 2)
	for _, line := range strings.Split(got, "\n") {
		assert.True(t, strings.HasPrefix(line, "  "), "line %q", line)
		assert.LessOrEqual(t, len(line), 25)
	}

	url := "https://example.com/" + strings.Repeat("a", 60)
	assert.Contains(t, wrapIndented(url, 40, 2), url)
}
