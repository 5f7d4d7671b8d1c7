// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jeranaias/devconsole/internal/commands"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// TestConfig_Default tests that the built-in defaults validate.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Console.LogCapacity != 50 {
		t.Errorf("Expected log capacity 50, got %d", cfg.Console.LogCapacity)
	}
	if cfg.Console.DuplicatePolicy != "overwrite" {
		t.Errorf("Expected duplicate policy 'overwrite', got '%s'", cfg.Console.DuplicatePolicy)
	}
	if cfg.UI.ToggleKey != "insert" {
		t.Errorf("Expected toggle key 'insert', got '%s'", cfg.UI.ToggleKey)
	}
	if cfg.Console.HistoryFile != "" {
		t.Errorf("Expected no history file by default, got '%s'", cfg.Console.HistoryFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestConfig_LoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[console]\nlog_capacity = 10\nprompt = \"$ \"\n[log]\nlevel = \"debug\"\n"},
		{"yaml", "config.yaml", "console:\n  log_capacity: 10\n  prompt: \"$ \"\nlog:\n  level: debug\n"},
		{"yml", "config.yml", "console:\n  log_capacity: 10\n  prompt: \"$ \"\nlog:\n  level: debug\n"},
		{"json", "config.json", `{"console":{"log_capacity":10,"prompt":"$ "},"log":{"level":"debug"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromPath(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFromPath: %v", err)
			}
			if cfg.Console.LogCapacity != 10 {
				t.Errorf("Expected log capacity 10, got %d", cfg.Console.LogCapacity)
			}
			if cfg.Console.Prompt != "$ " {
				t.Errorf("Expected prompt '$ ', got '%s'", cfg.Console.Prompt)
			}
			if cfg.Log.Level != "debug" {
				t.Errorf("Expected level 'debug', got '%s'", cfg.Log.Level)
			}
			// Untouched sections keep defaults
			if cfg.UI.ToggleKey != "insert" {
				t.Errorf("Expected default toggle key, got '%s'", cfg.UI.ToggleKey)
			}
		})
	}
}

func TestConfig_LoadInvalid(t *testing.T) {
	if _, err := LoadFromPath(writeFile(t, "config.toml", "[console\n")); err == nil {
		t.Error("Expected decode error for malformed TOML")
	}

	_, err := LoadFromPath(writeFile(t, "config.toml", "[console]\nmode = \"web\"\n"))
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidateErrors, got %v", err)
	}
	if verrs[0].Field != "console.mode" {
		t.Errorf("Expected console.mode error, got %s", verrs[0].Field)
	}

	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DEVCONSOLE_CONSOLE_LOG_CAPACITY", "7")
	t.Setenv("DEVCONSOLE_LOG_LEVEL", "warn")
	t.Setenv("DEVCONSOLE_METRICS_ENABLED", "true")
	t.Setenv("DEVCONSOLE_UI_TOGGLE_KEY", "f12")

	cfg, err := LoadFromPath(writeFile(t, "config.toml", "[console]\nlog_capacity = 20\n"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Console.LogCapacity != 7 {
		t.Errorf("Env should win over file: got %d", cfg.Console.LogCapacity)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected level 'warn', got '%s'", cfg.Log.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics enabled from env")
	}
	if cfg.UI.ToggleKey != "f12" {
		t.Errorf("Expected toggle key 'f12', got '%s'", cfg.UI.ToggleKey)
	}
}

func TestConfig_EnvOverrideInvalid(t *testing.T) {
	t.Setenv("DEVCONSOLE_CONSOLE_LOG_CAPACITY", "lots")
	cfg := Default()
	if err := cfg.ApplyEnvOverrides(); err == nil {
		t.Error("Expected error for non-numeric capacity")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(*Config) {}, "", false},
		{"zero capacity", func(c *Config) { c.Console.LogCapacity = 0 }, "console.log_capacity", true},
		{"bad policy", func(c *Config) { c.Console.DuplicatePolicy = "merge" }, "console.duplicate_policy", true},
		{"policy case", func(c *Config) { c.Console.DuplicatePolicy = "Reject" }, "", false},
		{"bad mode", func(c *Config) { c.Console.Mode = "gui" }, "console.mode", true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level", true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format", true},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, "metrics.addr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidateErrors, got %v", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, verrs[0].Field)
			}
		})
	}
}

func TestConfig_SetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Zero config with defaults should validate: %v", err)
	}
}

// TestConfig_GetSet tests dot-notation access.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("console.log_capacity", "25"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := cfg.Get("console.log_capacity")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.(int) != 25 {
		t.Errorf("Expected 25, got %v", v)
	}

	if err := cfg.Set("ui.no_color", "true"); err != nil {
		t.Fatalf("Set bool: %v", err)
	}
	if !cfg.UI.NoColor {
		t.Error("Expected no_color true")
	}

	if err := cfg.Set("ui.no_color", "maybe"); err == nil {
		t.Error("Expected error for invalid bool")
	}
	if err := cfg.Set("console.nope", "1"); err == nil {
		t.Error("Expected error for unknown field")
	}
	if _, err := cfg.Get("console"); err == nil {
		t.Error("Expected error when reading a whole section")
	}
	if _, err := cfg.Get(""); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestConfig_Keys(t *testing.T) {
	keys := Keys()
	want := map[string]bool{"console.log_capacity": true, "ui.toggle_key": true, "metrics.addr": true}
	for _, k := range keys {
		delete(want, k)
		if _, err := Default().Get(k); err != nil {
			t.Errorf("Key %s not readable: %v", k, err)
		}
	}
	if len(want) > 0 {
		t.Errorf("Missing keys: %v", want)
	}
}

func TestConfig_WriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Console.Prompt = "# "

	if err := WriteFile(cfg, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Console.Prompt != "# " {
		t.Errorf("Expected prompt '# ', got '%s'", loaded.Console.Prompt)
	}
}

func TestStore_SetValidates(t *testing.T) {
	store := NewStore(Default(), "")

	var seen []*Config
	store.Subscribe(func(c *Config) { seen = append(seen, c) })

	if err := store.Set("console.log_capacity", "0"); err == nil {
		t.Error("Expected validation error")
	}
	if store.Current().Console.LogCapacity != 50 {
		t.Error("Invalid set must not change the live config")
	}
	if len(seen) != 0 {
		t.Error("Subscribers must not see rejected changes")
	}

	if err := store.Set("console.log_capacity", "5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(seen) != 1 || seen[0].Console.LogCapacity != 5 {
		t.Errorf("Subscriber should see new capacity, got %+v", seen)
	}
}

func TestStore_CurrentIsCopy(t *testing.T) {
	store := NewStore(nil, "")
	c := store.Current()
	c.Console.Prompt = "changed"
	if store.Current().Console.Prompt == "changed" {
		t.Error("Current must return a copy")
	}
}

func TestStore_ReloadKeepsConfigOnError(t *testing.T) {
	path := writeFile(t, "config.toml", "[console]\nlog_capacity = 9\n")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	store := NewStore(cfg, path)

	if err := os.WriteFile(path, []byte("[console\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Error("Expected reload error")
	}
	if store.Current().Console.LogCapacity != 9 {
		t.Error("Failed reload must keep the previous config")
	}
}

// TestStore_ConcurrentAccess tests Current, Set and Replace from many
// goroutines. Run with -race.
func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(Default(), "")
	store.Subscribe(func(*Config) {})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = store.Set("console.prompt", "$ ")
		}()
		go func() {
			defer wg.Done()
			store.Replace(Default())
		}()
		go func() {
			defer wg.Done()
			if store.Current() == nil {
				t.Error("Current returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestStore_Commands(t *testing.T) {
	store := NewStore(Default(), "")
	reg := commands.Scan([]commands.Source{store})
	var out []string
	d := commands.NewDispatcher(reg, commands.OutputFunc(func(l string) { out = append(out, l) }))

	if err := d.Execute("config_set console.prompt $"); err != nil {
		t.Fatalf("config_set: %v", err)
	}
	if err := d.Execute("config_get console.prompt"); err != nil {
		t.Fatalf("config_get: %v", err)
	}
	if got := out[len(out)-1]; got != "console.prompt = $" {
		t.Errorf("Expected 'console.prompt = $', got %q", got)
	}

	err := d.Execute("config_set console.log_capacity -1")
	if commands.OutcomeOf(err) != commands.OutcomeInvocationError {
		t.Errorf("Expected invocation error for invalid value, got %v", err)
	}
	if err := d.Execute("config_get console.bogus"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestLocate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := Locate()
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if path != "" {
		t.Errorf("Locate() = %q with no config present, want empty", path)
	}

	dir := filepath.Join(home, ".devconsole")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(want, []byte("console:\n  log_capacity: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err = Locate()
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if path != want {
		t.Errorf("Locate() = %q, want %q", path, want)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Console.LogCapacity != 9 {
		t.Errorf("LogCapacity = %d, want 9", cfg.Console.LogCapacity)
	}
}
