// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timescale controls a simulation time scale: pause, hit-stop and
// bullet time.
//
// Only one effect runs at a time. While paused, in hit-stop or in bullet
// time, further Pause, HitStop and StartBulletTime calls fail with
// ErrLocked. Unpause always succeeds and cancels whatever is running.
//
// A Controller is also a commands.Source so it can be driven from the
// console:
//
//	pause
//	unpause
//	hitstop 0.1
//	bullettime 0.5 0.25 true
//	bullettime_end 0.5 0.25 true
package timescale
