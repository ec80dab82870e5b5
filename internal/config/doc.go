// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config handles gtsearch configuration and logging setup.
//
// Configuration lives in ~/.gtsearch/ and is read from the first file found
// of config.toml, config.json and config.yaml. Missing keys keep their
// defaults. Environment variables override file values:
//
//   - GTSEARCH_ENDPOINT: search.endpoint
//   - GTSEARCH_TIMEOUT: search.timeout_secs
//   - GTSEARCH_THEME: ui.theme
//   - GTSEARCH_LOG_FILE: logging.file
//   - GTSEARCH_LOG_LEVEL: logging.level
//   - GTSEARCH_EXPORT_DIR: export.dir
//
// Example config.toml:
//
//	[search]
//	endpoint = "https://tsearch-c7q4.onrender.com/tsearch/search"
//	timeout_secs = 0
//
//	[ui]
//	theme = "auto"
//	hyperlinks = true
//
//	[export]
//	format = "markdown"
package config
