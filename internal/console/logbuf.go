// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"
	"sync"
)

// DefaultLogCapacity is the number of lines kept when none is configured.
const DefaultLogCapacity = 50

// LogBuffer is a bounded FIFO of console lines. When full, the oldest line
// is dropped. Safe for concurrent use.
type LogBuffer struct {
	mu       sync.RWMutex
	lines    []string
	capacity int
	version  uint64

	nextID    int
	followers map[int]func(string)
}

// NewLogBuffer creates a buffer holding at most capacity lines. A
// capacity below 1 selects DefaultLogCapacity.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity < 1 {
		capacity = DefaultLogCapacity
	}
	return &LogBuffer{capacity: capacity}
}

// Print appends a line. Embedded newlines produce one entry per line so
// multi-line output (help tables, rendered markdown) scrolls correctly.
func (b *LogBuffer) Print(line string) {
	split := strings.Split(strings.TrimRight(line, "\n"), "\n")

	b.mu.Lock()
	b.lines = append(b.lines, split...)
	b.trimLocked()
	b.version++
	followers := make([]func(string), 0, len(b.followers))
	for _, fn := range b.followers {
		followers = append(followers, fn)
	}
	b.mu.Unlock()

	for _, fn := range followers {
		for _, l := range split {
			fn(l)
		}
	}
}

// Follow calls fn with every line printed from now on, outside the
// buffer lock. The returned func stops following.
func (b *LogBuffer) Follow(fn func(line string)) (stop func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.followers == nil {
		b.followers = make(map[int]func(string))
	}
	id := b.nextID
	b.nextID++
	b.followers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.followers, id)
	}
}

func (b *LogBuffer) trimLocked() {
	if over := len(b.lines) - b.capacity; over > 0 {
		// Copy so the backing array does not grow without bound.
		b.lines = append([]string(nil), b.lines[over:]...)
	}
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Tail returns up to n of the newest lines.
func (b *LogBuffer) Tail(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := max(len(b.lines)-n, 0)
	out := make([]string, len(b.lines)-start)
	copy(out, b.lines[start:])
	return out
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Capacity returns the maximum number of lines.
func (b *LogBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.capacity
}

// SetCapacity changes the bound, dropping the oldest lines if needed.
func (b *LogBuffer) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = DefaultLogCapacity
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.capacity = capacity
	b.trimLocked()
	b.version++
}

// Clear removes every line.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.version++
}

// Version increases on every change. Presentations compare it to skip
// redundant redraws.
func (b *LogBuffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// String returns the lines joined by newlines.
func (b *LogBuffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}
