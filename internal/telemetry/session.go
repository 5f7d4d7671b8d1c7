// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/util"
)

// maxSlowest is how many of the slowest executions a session keeps.
const maxSlowest = 10

// SessionStats aggregates executions for the current session.
type SessionStats struct {
	ID        string
	StartTime time.Time

	Total    int
	Outcomes map[string]int
	Commands map[string]int

	// Slowest lists the slowest executions, slowest first
	Slowest []ExecutionCost
}

// ExecutionCost is one timed execution.
type ExecutionCost struct {
	Timestamp time.Time
	Line      string // First 60 chars
	Outcome   string
	Duration  time.Duration
}

// Tracker keeps in-memory stats for one session. It implements
// commands.Observer.
type Tracker struct {
	mu      sync.RWMutex
	session *SessionStats
}

// NewTracker starts a session.
func NewTracker(sessionID string) *Tracker {
	return &Tracker{session: &SessionStats{
		ID:        sessionID,
		StartTime: time.Now(),
		Outcomes:  make(map[string]int),
		Commands:  make(map[string]int),
	}}
}

// Observe implements commands.Observer.
func (t *Tracker) Observe(exec commands.Execution) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session
	s.Total++
	s.Outcomes[exec.Outcome.String()]++
	if exec.Outcome != commands.OutcomeCommandNotFound {
		s.Commands[exec.Command]++
	}

	s.Slowest = append(s.Slowest, ExecutionCost{
		Timestamp: exec.Started,
		Line:      util.TruncateRunes(exec.Line, 60),
		Outcome:   exec.Outcome.String(),
		Duration:  exec.Duration,
	})
	sort.SliceStable(s.Slowest, func(i, j int) bool {
		return s.Slowest[i].Duration > s.Slowest[j].Duration
	})
	if len(s.Slowest) > maxSlowest {
		s.Slowest = s.Slowest[:maxSlowest]
	}
}

// Current returns a copy of the session stats.
func (t *Tracker) Current() *SessionStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	src := t.session
	cp := &SessionStats{
		ID:        src.ID,
		StartTime: src.StartTime,
		Total:     src.Total,
		Outcomes:  make(map[string]int, len(src.Outcomes)),
		Commands:  make(map[string]int, len(src.Commands)),
		Slowest:   append([]ExecutionCost(nil), src.Slowest...),
	}
	for k, v := range src.Outcomes {
		cp.Outcomes[k] = v
	}
	for k, v := range src.Commands {
		cp.Commands[k] = v
	}
	return cp
}

// TopCommands returns up to n command names by execution count, ties
// broken by name.
func (s *SessionStats) TopCommands(n int) []string {
	names := make([]string, 0, len(s.Commands))
	for name := range s.Commands {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := s.Commands[names[i]], s.Commands[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
