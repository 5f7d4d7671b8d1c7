// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// DefaultToggleKey opens and closes the console when none is configured.
const DefaultToggleKey = "insert"

// KeyMap defines the overlay's keyboard bindings.
type KeyMap struct {
	Toggle     key.Binding
	Submit     key.Binding
	Complete   key.Binding
	HistPrev   key.Binding
	HistNext   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Hide       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the bindings with toggle bound to toggleKey.
func DefaultKeyMap(toggleKey string) KeyMap {
	if toggleKey == "" {
		toggleKey = DefaultToggleKey
	}
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(toggleKey),
			key.WithHelp(toggleKey, "toggle console"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		HistPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("Up", "previous"),
		),
		HistNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "next"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "hide"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown under the console.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.HistPrev, k.Toggle, k.Quit}
}
