// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search provides the HTTP client for the GTSearch backend.
//
// The backend takes a JSON body of the form {"search_query": "..."} and
// answers with a plain-text payload. Any 2xx status is a success.
//
// # Usage
//
//	client := search.NewClient()
//	text, err := client.Search(ctx, "weather in Atlanta")
//	if search.IsStatus(err) {
//	    ...
//	}
//
// Errors are always *ClientError values that classify the failure; the
// response body of a failed request is kept only as a short snippet for
// logging.
package search
