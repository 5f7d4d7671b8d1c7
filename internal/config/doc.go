// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devconsole.
//
// TOML, YAML and JSON files are supported, with built-in defaults,
// environment variable overrides and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - Store: thread-safe live config with dotted Get/Set and subscribers
//   - Watcher: reloads a Store when its file changes
//
// # Configuration Precedence
//
// Configuration is resolved (highest first):
//   - Environment variables (DEVCONSOLE_*)
//   - The file passed with --config, or the first of
//     ~/.devconsole/config.toml, config.yaml, config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := config.NewStore(cfg, "")
//	_ = store.Set("console.prompt", "$ ")
package config
