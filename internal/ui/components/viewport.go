// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devconsole/internal/ui/styles"
	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// LOG VIEW COMPONENT - Scrollable console log
// =============================================================================

// LogView shows the console log in a scrollable viewport. It follows the
// newest line until the user scrolls up, and resumes following once the
// bottom is reached again.
type LogView struct {
	viewport   viewport.Model
	lines      []string
	width      int
	height     int
	autoScroll bool
	theme      *styles.Theme
}

// NewLogView creates a log view.
func NewLogView(theme *styles.Theme) *LogView {
	vp := viewport.New(80, 10)
	vp.Style = theme.LogLine.UnsetForeground()

	return &LogView{
		viewport:   vp,
		width:      80,
		height:     10,
		autoScroll: true,
		theme:      theme,
	}
}

// SetSize updates the viewport dimensions.
func (lv *LogView) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	lv.width = width
	lv.height = height
	lv.viewport.Width = width
	lv.viewport.Height = height
	lv.render()
}

// SetLines replaces the displayed lines.
func (lv *LogView) SetLines(lines []string) {
	lv.lines = lines
	lv.render()
}

// Lines returns the lines currently displayed.
func (lv *LogView) Lines() []string {
	return lv.lines
}

func (lv *LogView) render() {
	var sb strings.Builder
	for i, line := range lv.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		text := util.TruncateWidth(line, lv.width)
		sb.WriteString(lv.theme.LogLineStyle(line).Render(text))
	}
	lv.viewport.SetContent(sb.String())
	if lv.autoScroll {
		lv.viewport.GotoBottom()
	}
}

// ScrollUp scrolls one page up and stops following new lines.
func (lv *LogView) ScrollUp() {
	lv.viewport.HalfViewUp()
	lv.autoScroll = lv.viewport.AtBottom()
}

// ScrollDown scrolls one page down.
func (lv *LogView) ScrollDown() {
	lv.viewport.HalfViewDown()
	lv.autoScroll = lv.viewport.AtBottom()
}

// Following reports whether the view tracks the newest line.
func (lv *LogView) Following() bool {
	return lv.autoScroll
}

// Update forwards mouse wheel messages to the viewport.
func (lv *LogView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	lv.autoScroll = lv.viewport.AtBottom()
	return cmd
}

// View renders the log.
func (lv *LogView) View() string {
	return lv.viewport.View()
}
