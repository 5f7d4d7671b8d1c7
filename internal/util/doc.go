// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides display-width aware string helpers.
//
// Console text mixes ASCII command names with whatever handlers print,
// including CJK text. These helpers measure and cut strings by terminal
// cell width using go-runewidth, never by byte length.
//
// # Key Functions
//
//   - StringWidth: Display width in terminal cells
//   - TruncateWidth: Cut to a width, appending "..." when shortened
//   - PadRight: Pad with spaces to a width
//   - TruncateRunes: Cut to a rune count
package util
