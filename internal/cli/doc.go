// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the gtsearch command line.

# Commands

	gtsearch                      Interactive search view (needs a terminal)
	gtsearch ask <query...>       One-shot search, answer on stdout
	gtsearch chat                 Line-mode conversation with history
	gtsearch config <subcommand>  show, path, init, get, set, keys
	gtsearch version              Version information

# Global Flags

	--config PATH     Config file (.toml, .json or .yaml)
	--endpoint URL    Search endpoint
	--timeout SECS    Request timeout in seconds, 0 for none
	--theme MODE      auto, dark or light
	--log-file PATH   Log file
	--log-level LVL   debug, info, warn or error
	-v, --verbose     Mirror logs to stderr

Flags override the config file, which overrides GTSEARCH_* environment
variables applied at load time.

# Exit Codes

	0  success
	1  general error or failed search
	2  usage error
	3  configuration error
	5  backend unreachable
	8  request timed out
*/
package cli
