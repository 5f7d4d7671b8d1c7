// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repl is the line-mode presentation of a console session, used
// when stdout is not a terminal or when --mode line is given. Line editing,
// history and tab completion come from peterh/liner.
//
// RunScript feeds a file or --exec lines through the same console, which
// makes sessions scriptable:
//
//	r := repl.NewWithReader(c, nil, repl.Options{})
//	err := r.RunScript(ctx, strings.NewReader("heal 10\nhp"), true)
package repl
