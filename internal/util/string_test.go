// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"heal", 4},
		{"체력", 4},
		{"hp 체력", 7},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StringWidth(tc.input), "StringWidth(%q)", tc.input)
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"체력체력", 7, "체력..."},
	}
	for _, tc := range tests {
		got := TruncateWidth(tc.input, tc.width)
		assert.Equal(t, tc.want, got, "TruncateWidth(%q, %d)", tc.input, tc.width)
		assert.LessOrEqual(t, StringWidth(got), max(tc.width, 0))
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "hp   ", PadRight("hp", 5))
	assert.Equal(t, "체력 ", PadRight("체력", 5))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateRunes("short", 10))
	assert.Equal(t, "this is...", TruncateRunes("this is a long line", 10))
	assert.Equal(t, "체력", TruncateRunes("체력체력", 2))
	assert.Equal(t, "", TruncateRunes("x", 0))
}
