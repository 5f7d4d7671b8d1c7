// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is one input line split into a command name and arguments.
type ParseResult struct {
	// Name is the first token ("" for blank input)
	Name string

	// Args are the remaining tokens
	Args []string

	// RawInput is the original line
	RawInput string
}

// Empty reports whether the line had no tokens.
func (p ParseResult) Empty() bool {
	return p.Name == ""
}

// Parse splits a line on whitespace, discarding empty tokens. There is no
// quoting or escaping: every token is a run of non-space characters.
func Parse(line string) ParseResult {
	result := ParseResult{RawInput: line}

	tokens := strings.FieldsFunc(line, isSpace)
	if len(tokens) == 0 {
		return result
	}

	result.Name = tokens[0]
	if len(tokens) > 1 {
		result.Args = tokens[1:]
	}
	return result
}

// ExtractCommandName returns the first token of input, or "".
func ExtractCommandName(input string) string {
	return Parse(input).Name
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
