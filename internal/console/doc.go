// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console implements an interactive command console session.
//
// A Console ties the command registry, dispatcher, autocomplete matcher and
// history together with a bounded log and a visibility flag. It has no
// terminal code of its own; internal/ui and internal/repl present it.
//
// # Built-in Commands
//
//   - help: list commands and descriptions
//   - clear: empty the log
//   - history: numbered list of entered lines
//   - describe <name>: markdown manual card for a command
//   - rescan: rebuild the registry from all sources
//
// # Usage
//
//	c := console.New([]commands.Source{player}, console.Options{})
//	c.Submit("heal 10")
//	for _, line := range c.Log().Lines() {
//	    fmt.Println(line)
//	}
package console
