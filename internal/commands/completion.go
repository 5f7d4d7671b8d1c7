// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"golang.org/x/text/cases"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer matches partial input against registered command names.
// It only completes the command token, never arguments.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Match returns every registered name that starts with partial, compared
// with Unicode case folding, sorted by name. Blank input matches nothing.
// Match keeps no state and is safe for concurrent use.
func (c *Completer) Match(partial string) []string {
	if strings.TrimSpace(partial) == "" || c.registry == nil {
		return nil
	}

	// Casers are stateful; use a fresh one per call.
	fold := cases.Fold()
	prefix := fold.String(partial)

	var matches []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(fold.String(name), prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Completion is the result of pressing tab on some input.
type Completion struct {
	// Input is the text the input field should show afterwards
	Input string

	// Candidates holds every match when there was more than one
	Candidates []string

	// Replaced is true when Input was replaced by the single match
	Replaced bool
}

// Complete applies the autocomplete policy to input: exactly one match
// replaces the input, several leave it unchanged and report the
// candidates, none leaves it unchanged.
func (c *Completer) Complete(input string) Completion {
	matches := c.Match(input)
	switch len(matches) {
	case 0:
		return Completion{Input: input}
	case 1:
		return Completion{Input: matches[0], Replaced: true}
	default:
		return Completion{Input: input, Candidates: matches}
	}
}

// =============================================================================
// PREVIEW
// =============================================================================

// Preview formats the live hint shown while typing, based on the first
// token of input:
//
//	>> heal(int amount) - Restore health     one match
//	available: heal, help                    several matches
//	no matching command                      none
//
// Blank input yields "".
func (c *Completer) Preview(input string) string {
	name := ExtractCommandName(input)
	if name == "" {
		return ""
	}

	matches := c.Match(name)
	switch len(matches) {
	case 0:
		return "no matching command"
	case 1:
		match := matches[0]
		return ">> " + match + c.registry.Signature(match) + " - " + c.registry.Description(match)
	default:
		return "available: " + strings.Join(matches, ", ")
	}
}
