// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the console panel, or a one-line hint while hidden.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.console.Visible() {
		hint := m.theme.Hidden.Render("console hidden, press " + m.keys.Toggle.Help().Key + " to open")
		return lipgloss.JoinVertical(lipgloss.Left, hint, m.status.View())
	}

	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	panel := lipgloss.JoinVertical(lipgloss.Left,
		m.log.View(),
		m.input.View(),
		m.previewLine(inner),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Panel.Width(inner+2).Render(panel),
		m.status.View(),
		m.helpLine(),
	)
}

// previewLine shows the outcome of the last action when there is one,
// otherwise the signature of the command being typed.
func (m Model) previewLine(width int) string {
	if m.notice.kind != noticeNone {
		return m.noticeLine(width)
	}

	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		return ""
	}
	preview := m.console.Preview(value)
	if preview == "" {
		return ""
	}
	return m.theme.Preview.Render(util.TruncateWidth(preview, width))
}

func (m Model) noticeLine(width int) string {
	// Room for the indicator and its space.
	text := util.TruncateWidth(m.notice.text, width-4)
	switch m.notice.kind {
	case noticeError:
		return m.theme.RenderError(text)
	case noticeWarning:
		return m.theme.RenderWarning(text)
	default:
		return m.theme.RenderInfo(text)
	}
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 5)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(util.TruncateWidth(strings.Join(parts, "  "), m.width))
}
