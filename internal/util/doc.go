// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the gtsearch packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis (log snippets, status line)
//   - TruncateWidth: display-width aware truncation for terminal cells
//   - EscapeControl: renders terminal control characters as visible \xNN text
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync (exports, config)
//
// # Usage
//
//	// Keep backend bodies short in diagnostics
//	snippet := util.TruncateRunes(body, 200)
//
//	// Never let response text drive the terminal
//	safe := util.EscapeControl(segment)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
