// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom line of the console panel
// =============================================================================

// StatusBar shows the session, the command count and the time scale.
type StatusBar struct {
	Session  string  // Console session id
	Commands int     // Registered command count
	Scale    float64 // Current time scale
	State    string  // Time scale state name; empty hides the clock section
	Width    int     // Available width
	theme    *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Scale: 1,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetClock updates the time scale display.
func (s *StatusBar) SetClock(scale float64, state string) {
	s.Scale = scale
	s.State = state
}

// View renders the status bar, dropping sections on narrow terminals.
func (s *StatusBar) View() string {
	t := s.theme
	sep := t.StatusKey.Render(" | ")

	var parts []string
	if s.State != "" {
		indicator := styles.StatusIndicators.Success
		if s.State != "running" {
			indicator = styles.StatusIndicators.Warning
		}
		parts = append(parts, t.StateStyle(s.State).Render(indicator+" "+s.State))
		parts = append(parts, t.StatusKey.Render("scale ")+t.StatusValue.Render(fmt.Sprintf("%.2f", s.Scale)))
	}
	parts = append(parts, t.StatusKey.Render("cmds ")+t.StatusValue.Render(fmt.Sprint(s.Commands)))

	if s.Width >= 60 && s.Session != "" {
		id := s.Session
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, t.StatusKey.Render("session ")+t.StatusValue.Render(id))
	}

	style := t.StatusBar
	if s.Width > 0 {
		style = style.MaxWidth(s.Width)
	}
	return style.Render(strings.Join(parts, sep))
}
