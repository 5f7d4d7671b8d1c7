// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory()
	h.Append("a")
	h.Append("b")
	assert.Equal(t, 2, h.Cursor())

	line, ok := h.Previous()
	assert.True(t, ok)
	assert.Equal(t, "b", line)

	line, _ = h.Previous()
	assert.Equal(t, "a", line)

	line, _ = h.Next()
	assert.Equal(t, "b", line)

	line, ok = h.Next()
	assert.True(t, ok)
	assert.Equal(t, "", line, "end of history is the fresh line")
}

func TestHistoryClampsAtBounds(t *testing.T) {
	h := NewHistory()
	h.Append("a")
	h.Append("b")

	for i := 0; i < 5; i++ {
		h.Previous()
	}
	assert.Equal(t, 0, h.Cursor())
	line, _ := h.Previous()
	assert.Equal(t, "a", line)

	for i := 0; i < 5; i++ {
		h.Next()
	}
	assert.Equal(t, 2, h.Cursor())
	line, _ = h.Next()
	assert.Equal(t, "", line)
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()

	line, ok := h.Previous()
	assert.False(t, ok)
	assert.Equal(t, "", line)

	line, ok = h.Next()
	assert.False(t, ok)
	assert.Equal(t, "", line)
	assert.Equal(t, 0, h.Cursor())
}

func TestHistoryAppendResetsCursor(t *testing.T) {
	h := NewHistory()
	h.Append("a")
	h.Append("b")
	h.Previous()
	h.Previous()

	h.Append("  c  ")
	assert.Equal(t, 3, h.Cursor())
	assert.Equal(t, []string{"a", "b", "c"}, h.Entries())

	line, _ := h.Previous()
	assert.Equal(t, "c", line)
}

func TestHistoryIgnoresBlank(t *testing.T) {
	h := NewHistory()
	h.Append("")
	h.Append("   ")
	assert.Equal(t, 0, h.Len())
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistory()
	h.Append("a")
	entries := h.Entries()
	entries[0] = "changed"
	assert.Equal(t, []string{"a"}, h.Entries())
}
