// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete devconsole configuration.
type Config struct {
	Console ConsoleConfig `toml:"console" yaml:"console" json:"console" envPrefix:"CONSOLE_"`
	UI      UIConfig      `toml:"ui" yaml:"ui" json:"ui" envPrefix:"UI_"`
	Log     LogConfig     `toml:"log" yaml:"log" json:"log" envPrefix:"LOG_"`
	Journal JournalConfig `toml:"journal" yaml:"journal" json:"journal" envPrefix:"JOURNAL_"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics" json:"metrics" envPrefix:"METRICS_"`
}

// ConsoleConfig contains command console behaviour.
type ConsoleConfig struct {
	// LogCapacity is the number of lines kept in the console log
	LogCapacity int `toml:"log_capacity" yaml:"log_capacity" json:"log_capacity" env:"LOG_CAPACITY"`
	// Prompt is shown before the input field
	Prompt string `toml:"prompt" yaml:"prompt" json:"prompt" env:"PROMPT"`
	// DuplicatePolicy is "overwrite" (last registration wins) or "reject"
	DuplicatePolicy string `toml:"duplicate_policy" yaml:"duplicate_policy" json:"duplicate_policy" env:"DUPLICATE_POLICY"`
	// Mode selects the presentation: "auto", "tui" or "line"
	Mode string `toml:"mode" yaml:"mode" json:"mode" env:"MODE"`
	// StartVisible opens the console panel at startup (tui mode)
	StartVisible bool `toml:"start_visible" yaml:"start_visible" json:"start_visible" env:"START_VISIBLE"`
	// HistoryFile keeps line-mode input recall between runs; empty disables it
	HistoryFile string `toml:"history_file" yaml:"history_file" json:"history_file" env:"HISTORY_FILE"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ToggleKey shows and hides the console panel (bubbletea key name)
	ToggleKey string `toml:"toggle_key" yaml:"toggle_key" json:"toggle_key" env:"TOGGLE_KEY"`
	// NoColor disables colour output
	NoColor bool `toml:"no_color" yaml:"no_color" json:"no_color" env:"NO_COLOR"`
	// MarkdownStyle is the glamour style used by describe
	MarkdownStyle string `toml:"markdown_style" yaml:"markdown_style" json:"markdown_style" env:"MARKDOWN_STYLE"`
}

// LogConfig contains structured logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level" yaml:"level" json:"level" env:"LEVEL"`
	// Format is "text" or "json"
	Format string `toml:"format" yaml:"format" json:"format" env:"FORMAT"`
	// File receives log output; empty means stderr
	File string `toml:"file" yaml:"file" json:"file" env:"FILE"`
}

// JournalConfig contains the command journal settings.
type JournalConfig struct {
	// Enabled records every executed line
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled" env:"ENABLED"`
	// Path is the SQLite database file (empty = ~/.devconsole/journal.db)
	Path string `toml:"path" yaml:"path" json:"path" env:"PATH"`
}

// MetricsConfig contains the Prometheus endpoint settings.
type MetricsConfig struct {
	// Enabled serves /metrics on Addr
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled" env:"ENABLED"`
	// Addr is the listen address, e.g. "127.0.0.1:9464"
	Addr string `toml:"addr" yaml:"addr" json:"addr" env:"ADDR"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEVCONSOLE_"

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			LogCapacity:     50,
			Prompt:          "> ",
			DuplicatePolicy: "overwrite",
			Mode:            "auto",
			StartVisible:    true,
		},
		UI: UIConfig{
			ToggleKey:     "insert",
			MarkdownStyle: "notty",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// SetDefaults fills zero values left by a partial config file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Console.LogCapacity == 0 {
		c.Console.LogCapacity = d.Console.LogCapacity
	}
	if c.Console.Prompt == "" {
		c.Console.Prompt = d.Console.Prompt
	}
	if c.Console.DuplicatePolicy == "" {
		c.Console.DuplicatePolicy = d.Console.DuplicatePolicy
	}
	if c.Console.Mode == "" {
		c.Console.Mode = d.Console.Mode
	}
	if c.UI.ToggleKey == "" {
		c.UI.ToggleKey = d.UI.ToggleKey
	}
	if c.UI.MarkdownStyle == "" {
		c.UI.MarkdownStyle = d.UI.MarkdownStyle
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = d.Metrics.Addr
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.devconsole.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".devconsole"), nil
}

// candidatePaths lists config files in precedence order.
func candidatePaths() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.json"),
	}, nil
}

// Locate returns the first existing config file in ConfigDir, or "" when
// there is none.
func Locate() (string, error) {
	paths, err := candidatePaths()
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
	}
	return "", nil
}

// DefaultPath is where "config init" writes a new file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultJournalPath returns ~/.devconsole/journal.db.
func DefaultJournalPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the first config file found in ConfigDir, then applies
// environment overrides, defaults and validation. With no file present it
// returns the defaults.
func Load() (*Config, error) {
	path, err := Locate()
	if err != nil {
		return nil, err
	}
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a config file, choosing the decoder by extension:
// .yaml/.yml, .json, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := Decode(cfg, data, formatOf(path)); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Decode decodes data in the given format on top of cfg.
func Decode(cfg *Config, data []byte, format Format) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
	}
	return nil
}

// finish applies env overrides, defaults and validation.
func (c *Config) finish() error {
	if err := c.ApplyEnvOverrides(); err != nil {
		return err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies DEVCONSOLE_* environment variables, e.g.
// DEVCONSOLE_CONSOLE_LOG_CAPACITY or DEVCONSOLE_LOG_LEVEL. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeFormat renders cfg in the given format.
func EncodeFormat(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return Encode(cfg)
	}
}

// WriteFile writes cfg to path in the format its extension names,
// replacing any existing file via a temp file and rename so a crash never
// leaves a half-written config.
func WriteFile(cfg *Config, path string) error {
	data, err := EncodeFormat(cfg, formatOf(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	return os.Rename(tmpName, path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid config field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidateErrors collects every invalid field.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns ValidateErrors when any is
// invalid.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Console.LogCapacity < 1 {
		errs = append(errs, ValidationError{"console.log_capacity", c.Console.LogCapacity, "must be at least 1"})
	}
	if !oneOf(c.Console.DuplicatePolicy, "overwrite", "reject") {
		errs = append(errs, ValidationError{"console.duplicate_policy", c.Console.DuplicatePolicy, "must be overwrite or reject"})
	}
	if !oneOf(c.Console.Mode, "auto", "tui", "line") {
		errs = append(errs, ValidationError{"console.mode", c.Console.Mode, "must be auto, tui or line"})
	}
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		errs = append(errs, ValidationError{"log.level", c.Log.Level, "must be debug, info, warn or error"})
	}
	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, ValidationError{"log.format", c.Log.Format, "must be text or json"})
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, ValidationError{"metrics.addr", c.Metrics.Addr, "required when metrics are enabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
