// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the building blocks of the console overlay:
// the command input, the scrollable log view and the status bar.
//
// Components own no console state. The overlay model feeds them values on
// every update and composes their View output.
package components
