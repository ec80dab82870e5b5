// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("hello, world!")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "deep", "transcript.md")

	if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0600); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "updated" {
		t.Errorf("Content = %q, want 'updated'", string(content))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"héllo wörld", 8, "héllo..."},
		{"日本語テキスト", 5, "日本..."},
	}

	for _, tc := range tests {
		got := TruncateRunes(tc.input, tc.max)
		if got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"日本語", 5, "日..."},
		{"日本語", 3, "日"},
		{"abc", 0, ""},
	}

	for _, tc := range tests {
		got := TruncateWidth(tc.input, tc.max)
		if got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
		}
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("abc"); got != 3 {
		t.Errorf("StringWidth(abc) = %d, want 3", got)
	}
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", got)
	}
}

func TestEscapeControl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Sunny and mild", "Sunny and mild"},
		{"tab kept", "a\tb", "a\tb"},
		{"ansi color escaped", "\x1b[31mred\x1b[0m", `\x1b[31mred\x1b[0m`},
		{"osc title escaped", "\x1b]0;owned\x07", `\x1b]0;owned\x07`},
		{"carriage return escaped", "line\r", `line\x0d`},
		{"del escaped", "a\x7fb", `a\x7fb`},
		{"c1 csi escaped", "a\u009bb", `a\x9bb`},
		{"html left alone", "<b>bold</b>", "<b>bold</b>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EscapeControl(tc.input); got != tc.want {
				t.Errorf("EscapeControl(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
