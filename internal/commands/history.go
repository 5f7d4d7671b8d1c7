// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// INPUT HISTORY
// =============================================================================

// History is an append-only log of submitted lines with a navigation
// cursor. The cursor ranges over [0, Len()]; Len() is the fresh-line
// position reached after every Append.
//
// History is not safe for concurrent use; the presentation layer drives it
// from its input loop.
type History struct {
	entries []string
	cursor  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds a trimmed, non-blank line and resets the cursor to the
// fresh-line position. Blank lines are ignored.
func (h *History) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Previous moves the cursor one entry back, stopping at the oldest, and
// returns the entry there. ok is false when the history is empty.
func (h *History) Previous() (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves the cursor one entry forward, stopping at the fresh-line
// position. At that position the returned line is "". ok is false when
// the history is empty.
func (h *History) Next() (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the current cursor index.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
