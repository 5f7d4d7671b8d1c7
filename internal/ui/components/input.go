// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// =============================================================================
// INPUT AREA COMPONENT - Single-line command input
// =============================================================================

// DefaultCharLimit bounds a single command line.
const DefaultCharLimit = 1024

// InputArea is the console's command input field.
type InputArea struct {
	input textinput.Model
	width int
}

// NewInputArea creates an input field with the given prompt.
func NewInputArea(theme *styles.Theme, prompt string) *InputArea {
	ti := textinput.New()
	ti.Placeholder = "type help for commands"
	ti.CharLimit = DefaultCharLimit
	ti.Width = 70
	ti.Prompt = prompt

	ti.PromptStyle = theme.Prompt
	ti.TextStyle = theme.LogLine
	ti.PlaceholderStyle = theme.Preview
	ti.Cursor.Style = theme.EchoLine

	return &InputArea{input: ti, width: 80}
}

// Focus focuses the input.
func (i *InputArea) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur removes focus from the input.
func (i *InputArea) Blur() {
	i.input.Blur()
}

// Focused returns whether the input is focused.
func (i *InputArea) Focused() bool {
	return i.input.Focused()
}

// SetWidth sets the input area width.
func (i *InputArea) SetWidth(width int) {
	i.width = width
	inputWidth := width - len(i.input.Prompt) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	i.input.Width = inputWidth
}

// SetPrompt changes the prompt text.
func (i *InputArea) SetPrompt(prompt string) {
	i.input.Prompt = prompt
	i.SetWidth(i.width)
}

// Value returns the current input value.
func (i *InputArea) Value() string {
	return i.input.Value()
}

// SetValue replaces the input and moves the cursor to the end.
func (i *InputArea) SetValue(value string) {
	i.input.SetValue(value)
	i.input.CursorEnd()
}

// Reset clears the input.
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Update handles editing keys.
func (i *InputArea) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// View renders the input field.
func (i *InputArea) View() string {
	return i.input.View()
}
