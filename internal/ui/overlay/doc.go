// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package overlay is the bubbletea presentation of a console session: a
// toggleable panel with the log, an input line with live signature preview
// and a status bar showing the time scale.
//
//	m := overlay.New(c, overlay.Options{Theme: theme, Clock: ctl})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
//
// Keys: the toggle key (insert by default) shows and hides the panel, Enter
// runs the line, Tab completes the command name, Up and Down walk history,
// PgUp and PgDn scroll the log.
package overlay
