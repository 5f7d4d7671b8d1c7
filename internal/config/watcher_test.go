// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcher_RequiresPath(t *testing.T) {
	if _, err := NewWatcher(NewStore(nil, ""), 0, nil); err == nil {
		t.Error("Expected error for store without path")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "config.toml", "[console]\nlog_capacity = 3\n")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	store := NewStore(cfg, path)

	reloaded := make(chan int, 4)
	store.Subscribe(func(c *Config) { reloaded <- c.Console.LogCapacity })

	w, err := NewWatcher(store, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("[console]\nlog_capacity = 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-reloaded:
		if got != 4 {
			t.Errorf("Expected reloaded capacity 4, got %d", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

func TestWatcher_CloseWithoutWatch(t *testing.T) {
	path := writeFile(t, "config.toml", "")
	w, err := NewWatcher(NewStore(nil, path), 0, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
