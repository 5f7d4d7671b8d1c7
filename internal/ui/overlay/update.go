// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles window, key, mouse and refresh messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.console.Visible() {
			return m, nil
		}
		return m, m.log.Update(msg)

	case refreshMsg:
		m.sync()
		return m, m.tick()
	}

	if m.console.Visible() {
		return m, m.input.Update(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	}

	// Hidden: the console swallows nothing else.
	if !m.console.Visible() {
		return m, nil
	}

	m.notice = notice{}

	switch {
	case key.Matches(msg, m.keys.Hide):
		return m.toggle()

	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		if err := m.console.Submit(line); err != nil {
			m.notice = notice{kind: noticeError, text: err.Error()}
		}
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		value := m.input.Value()
		switch n := len(m.console.Completer().Match(value)); {
		case n > 1:
			m.notice = notice{kind: noticeInfo, text: fmt.Sprintf("%d commands match, listed above", n)}
		case n == 0 && strings.TrimSpace(value) != "":
			m.notice = notice{kind: noticeWarning, text: fmt.Sprintf("no command starts with %q", strings.TrimSpace(value))}
		}
		m.input.SetValue(m.console.Autocomplete(value))
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.HistPrev):
		m.input.SetValue(m.console.HistoryPrevious(m.input.Value()))
		return m, nil

	case key.Matches(msg, m.keys.HistNext):
		m.input.SetValue(m.console.HistoryNext(m.input.Value()))
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.log.ScrollUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.log.ScrollDown()
		return m, nil
	}

	cmd := m.input.Update(msg)
	m.console.SetInput(m.input.Value())
	return m, cmd
}

// toggle flips visibility. Showing clears the input and takes focus.
func (m Model) toggle() (tea.Model, tea.Cmd) {
	m.notice = notice{}
	if m.console.Toggle() {
		m.input.Reset()
		m.sync()
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}
