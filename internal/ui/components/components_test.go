// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/devconsole/internal/ui/styles"
)

func plainTheme() *styles.Theme {
	return styles.NewTheme(styles.ThemeOptions{NoColor: true, Output: &bytes.Buffer{}})
}

func TestStatusBarView(t *testing.T) {
	sb := NewStatusBar(plainTheme())
	sb.Session = "0123456789abcdef"
	sb.Commands = 17
	sb.SetClock(0.25, "bullet-time")

	out := sb.View()
	assert.Contains(t, out, "[!] bullet-time")
	assert.Contains(t, out, "scale 0.25")
	assert.Contains(t, out, "cmds 17")
	assert.Contains(t, out, "session 01234567")
	assert.NotContains(t, out, "89abcdef")
}

func TestStatusBarNarrowDropsSession(t *testing.T) {
	sb := NewStatusBar(plainTheme())
	sb.Session = "abc"
	sb.SetWidth(40)

	out := sb.View()
	assert.Contains(t, out, "cmds 0")
	assert.NotContains(t, out, "session")
	assert.NotContains(t, out, "scale", "clock section hidden without a state")
}

func TestStatusBarRunning(t *testing.T) {
	sb := NewStatusBar(plainTheme())
	sb.SetClock(1, "running")
	assert.Contains(t, sb.View(), "[OK] running")
}

func TestInputAreaValue(t *testing.T) {
	in := NewInputArea(plainTheme(), "> ")
	in.SetValue("heal 10")
	assert.Equal(t, "heal 10", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())

	in.SetPrompt("$ ")
	in.Focus()
	assert.True(t, in.Focused())
	assert.Contains(t, in.View(), "$ ")
}

func TestLogViewFollowsNewest(t *testing.T) {
	lv := NewLogView(plainTheme())
	lv.SetSize(40, 3)

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	lv.SetLines(lines)

	view := lv.View()
	assert.Contains(t, view, "line 9")
	assert.NotContains(t, view, "line 0")
	assert.True(t, lv.Following())

	lv.ScrollUp()
	assert.False(t, lv.Following())
	assert.NotContains(t, lv.View(), "line 9")

	for i := 0; i < 10; i++ {
		lv.ScrollDown()
	}
	assert.True(t, lv.Following())
}

func TestLogViewTruncatesWideLines(t *testing.T) {
	lv := NewLogView(plainTheme())
	lv.SetSize(10, 2)
	lv.SetLines([]string{"abcdefghijklmnopqrstuvwxyz"})

	assert.NotContains(t, lv.View(), "klm")
	assert.Equal(t, []string{"abcdefghijklmnopqrstuvwxyz"}, lv.Lines())
}
