// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the devconsole command line.
//
// Commands:
//
//	devconsole [--mode auto|tui|line]   Start an interactive console session
//	devconsole -e LINE [-e LINE...]     Run console lines and exit
//	devconsole --script FILE            Run console lines from a file
//	devconsole config show|path|init    Inspect or create the config file
//	devconsole doctor [--json]          Run health checks
//	devconsole version [--json]         Print version information
//
// NewApp wires one session (demo player, time scale controller, config
// store, journal, metrics) and is shared by every run mode.
//
// Exit codes:
//
//	0   success
//	1   general error
//	2   usage error (bad flag, no terminal for tui mode)
//	3   configuration error
//	4   a scripted console line failed
package cli
