// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"sync"
)

// =============================================================================
// SHARED CONFIG (THREAD-SAFE)
// =============================================================================

// Store holds the live configuration. The watcher replaces it on file
// changes while console commands read and edit it.
type Store struct {
	mu   sync.RWMutex
	cfg  *Config
	path string

	subsMu sync.Mutex
	subs   []func(*Config)
}

// NewStore wraps cfg. path is the file Reload reads; empty means Load().
func NewStore(cfg *Config, path string) *Store {
	if cfg == nil {
		cfg = Default()
	}
	return &Store{cfg: cfg, path: path}
}

// Path returns the backing file path, if any.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the live config.
func (s *Store) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Replace swaps in cfg and notifies subscribers.
func (s *Store) Replace(cfg *Config) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	snapshot := s.cfg.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// Reload re-reads the backing file. On error the live config is kept.
func (s *Store) Reload() error {
	var (
		cfg *Config
		err error
	)
	if s.path != "" {
		cfg, err = LoadFromPath(s.path)
	} else {
		cfg, err = Load()
	}
	if err != nil {
		return err
	}
	s.Replace(cfg)
	return nil
}

// Set edits one dotted key. The change is validated before it becomes
// live; an invalid value leaves the config untouched.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	next := s.cfg.Clone()
	if err := next.Set(key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cfg = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// Get reads one dotted key.
func (s *Store) Get(key string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Get(key)
}

// Subscribe registers fn to receive every new config.
func (s *Store) Subscribe(fn func(*Config)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(cfg *Config) {
	s.subsMu.Lock()
	subs := make([]func(*Config), len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(cfg.Clone())
	}
}
