// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linkify splits text into plain runs and URL links.
//
// Recognized schemes are http, https, ftp and file, matched without regard to
// case. Splitting is lossless: Join(Split(s)) == s for every s.
package linkify

import (
	"regexp"
	"strings"
)

// Kind distinguishes plain text from a detected link.
type Kind int

const (
	Text Kind = iota
	Link
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// Unit is one run of a split segment. For a Link the value is both the
// visible label and the target.
type Unit struct {
	Kind  Kind
	Value string
}

// IsLink reports whether u is a link.
func (u Unit) IsLink() bool { return u.Kind == Link }

var urlPattern = regexp.MustCompile(`(?i)\b(?:https?|ftp|file)://[-A-Z0-9+&@#/%?=~_|!:,.;]*[-A-Z0-9+&@#/%=~_|]`)

// Split scans s left to right and returns its text and link units in order.
// Matches never overlap. A string with no links yields a single Text unit,
// including the empty string.
func Split(s string) []Unit {
	matches := urlPattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return []Unit{{Kind: Text, Value: s}}
	}

	units := make([]Unit, 0, len(matches)*2+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			units = append(units, Unit{Kind: Text, Value: s[pos:m[0]]})
		}
		units = append(units, Unit{Kind: Link, Value: s[m[0]:m[1]]})
		pos = m[1]
	}
	if pos < len(s) {
		units = append(units, Unit{Kind: Text, Value: s[pos:]})
	}
	return units
}

// Join concatenates unit values back into a string.
func Join(units []Unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteString(u.Value)
	}
	return b.String()
}

// Links returns only the link values found in s.
func Links(s string) []string {
	return urlPattern.FindAllString(s, -1)
}

// HasLink reports whether s contains at least one link.
func HasLink(s string) bool {
	return urlPattern.MatchString(s)
}
