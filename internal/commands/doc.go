// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the debug command system for the console.
//
// Live objects expose named commands by implementing Source. The Registry
// collects them, the Dispatcher turns a typed line into a call, and the
// Completer and History serve the input field.
//
// # Key Types
//
//   - Command: Immutable descriptor (name, description, params, thunk)
//   - Registry: Name to Command table built by Scan or Rescan
//   - Dispatcher: Parses, resolves, coerces and invokes one line
//   - Completer: Case-insensitive prefix matching and preview text
//   - History: Submitted lines with a clamped navigation cursor
//
// # Command Kinds
//
// Read commands report a live value each time they run:
//
//	commands.NewRead("hp", "Current health", func() any { return p.HP })
//	// "hp" prints "[hp] = 100"
//
// Invoke commands take typed, whitespace-separated arguments:
//
//	commands.NewInvoke("heal", "Restore health", p.heal, commands.IntParam("amount"))
//	// "heal 10" calls p.heal with IntValue(10)
//
// # Usage
//
//	reg := commands.Scan([]commands.Source{player, timeScale})
//	d := commands.NewDispatcher(reg, out)
//	if err := d.Execute("heal 10"); err != nil {
//	    switch commands.OutcomeOf(err) { ... }
//	}
package commands
