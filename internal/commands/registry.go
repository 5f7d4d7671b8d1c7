// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the debug command system for the console.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// =============================================================================
// DUPLICATE POLICY
// =============================================================================

// DuplicatePolicy decides what happens when two sources register the same
// command name.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last registration. The replaced entry is
	// recorded in Conflicts.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject keeps the first registration and reports the second
	// as a *ConflictError.
	DuplicateReject
)

// ParseDuplicatePolicy parses "overwrite" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateOverwrite, fmt.Errorf("unknown duplicate policy %q (want overwrite or reject)", s)
	}
}

// String returns the config spelling of the policy.
func (p DuplicatePolicy) String() string {
	if p == DuplicateReject {
		return "reject"
	}
	return "overwrite"
}

// Conflict records one duplicate registration.
type Conflict struct {
	Name     string
	Existing string // source of the entry that was there first
	Incoming string // source of the later registration
	Kept     string // source whose descriptor survived
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps command names to descriptors. Lookups are case-sensitive.
//
// A Registry is safe for concurrent reads. Rescan swaps the whole table
// under the write lock; hosts should still rebuild only while idle so
// that a line is never resolved against a half-described source set.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]*Command
	conflicts []Conflict
	policy    DuplicatePolicy
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDuplicatePolicy sets the duplicate handling policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(r *Registry) { r.policy = p }
}

// WithLogger sets the logger used for conflict warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan builds a registry from sources, in order. Scanning never fails:
// sources describing nothing contribute nothing, and conflicts are
// resolved by the configured policy.
func Scan(sources []Source, opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Rescan(sources...)
	return r
}

// Register adds cmd under its name, attributed to source.
//
// Under DuplicateOverwrite a same-named entry is replaced and nil is
// returned. Under DuplicateReject the existing entry is kept and a
// *ConflictError is returned.
func (r *Registry) Register(source string, cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(r.commands, &r.conflicts, source, cmd)
}

func (r *Registry) registerLocked(table map[string]*Command, conflicts *[]Conflict, source string, cmd *Command) error {
	if cmd == nil || cmd.Name == "" {
		return fmt.Errorf("command from %s has no name", source)
	}
	if strings.ContainsFunc(cmd.Name, isSpace) {
		return fmt.Errorf("command name %q from %s contains whitespace", cmd.Name, source)
	}

	// Descriptors are immutable once registered; keep our own copy.
	entry := *cmd
	entry.Params = append([]Param(nil), cmd.Params...)
	entry.Source = source

	existing, taken := table[cmd.Name]
	if !taken {
		table[cmd.Name] = &entry
		return nil
	}

	c := Conflict{Name: cmd.Name, Existing: existing.Source, Incoming: source}
	if r.policy == DuplicateReject {
		c.Kept = existing.Source
		*conflicts = append(*conflicts, c)
		return &ConflictError{Name: cmd.Name, Existing: existing.Source, Incoming: source}
	}

	c.Kept = source
	*conflicts = append(*conflicts, c)
	table[cmd.Name] = &entry
	r.logger.Warn("Command replaced by later registration",
		"command", cmd.Name, "previous", existing.Source, "source", source)
	return nil
}

// Rescan rebuilds the registry from sources, replacing every entry.
func (r *Registry) Rescan(sources ...Source) {
	table := make(map[string]*Command)
	var conflicts []Conflict

	for _, src := range sources {
		if src == nil {
			continue
		}
		name := sourceName(src)
		for _, cmd := range src.DescribeCommands() {
			if err := r.registerLocked(table, &conflicts, name, cmd); err != nil {
				r.logger.Warn("Command not registered", "source", name, "error", err)
			}
		}
	}

	r.mu.Lock()
	r.commands = table
	r.conflicts = conflicts
	r.mu.Unlock()

	r.logger.Debug("Registry rebuilt", "commands", len(table), "sources", len(sources))
}

// Get retrieves a command by exact name.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Names returns all registered names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Signature returns the parameter signature of name, or "" if unknown.
func (r *Registry) Signature(name string) string {
	if cmd, ok := r.Get(name); ok {
		return cmd.Signature()
	}
	return ""
}

// Description returns the description of name, or "" if unknown.
func (r *Registry) Description(name string) string {
	if cmd, ok := r.Get(name); ok {
		return cmd.Description
	}
	return ""
}

// Conflicts returns the duplicate registrations seen since the last
// rebuild, in registration order.
func (r *Registry) Conflicts() []Conflict {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Conflict(nil), r.conflicts...)
}

// Policy returns the duplicate policy.
func (r *Registry) Policy() DuplicatePolicy {
	return r.policy
}
