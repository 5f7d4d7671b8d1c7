// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides dispatch metrics and session statistics for
// devconsole.
//
// # Key Types
//
//   - Metrics: Prometheus counters and histograms fed by the dispatcher
//   - Server: optional HTTP listener exposing /metrics
//   - Tracker: in-memory per-session stats behind the stats command
//
// Both Metrics and Tracker implement commands.Observer:
//
//	m := telemetry.NewMetrics()
//	d := commands.NewDispatcher(reg, out, commands.WithObserver(m))
//	srv, _ := telemetry.Serve("127.0.0.1:9464", m, logger)
//	defer srv.Shutdown(ctx)
//
// # Privacy
//
// Metrics are local-only; nothing is pushed anywhere. Arguments are never
// used as label values.
package telemetry
