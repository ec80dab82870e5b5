// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel converts a config level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// SetupLogger creates a logger writing JSON to logFile. When stderr is
// non-nil, text output to it is added alongside the file. The TUI passes a
// nil stderr since the terminal belongs to the program.
//
// If the file cannot be opened the logger falls back to stderr alone, or to
// nothing. The returned cleanup closes the file.
func SetupLogger(logFile string, level slog.Level, stderr io.Writer) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(stderr, opts))
	}

	file, err := openLogFile(logFile)
	if err != nil {
		if stderr != nil {
			fmt.Fprintf(stderr, "Warning: could not open log file %s: %v\n", logFile, err)
		}
		if len(handlers) == 0 {
			return slog.New(slog.NewTextHandler(io.Discard, opts)), noop
		}
		return slog.New(handlers[0]), noop
	}
	handlers = append(handlers, slog.NewJSONHandler(file, opts))

	logger := slog.New(slogmulti.Fanout(handlers...))
	return logger, file.Close
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
