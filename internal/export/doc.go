// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a search transcript to Markdown, HTML or JSON.
//
// Response text is treated as plain text in every format. Markdown and HTML
// escape it for their syntax and turn detected URLs into links; nothing the
// backend sends is ever interpreted as markup.
//
// Usage:
//
//	doc := export.FromTranscript(transcript, export.Meta{Title: "GTSearch"})
//	exp, err := export.ForFormat("html", nil)
//	path, err := export.ToFile(doc, exp, &export.Options{OutputDir: dir})
package export
