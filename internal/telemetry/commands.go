// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/devconsole/internal/commands"
)

// DescribeCommands exposes session stats to the console.
func (t *Tracker) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewInvoke("stats", "Show command statistics for this session", func(ctx *commands.Context, _ []commands.Value) error {
			s := t.Current()
			ctx.Printf("session %s, up %s, %d executed", s.ID, time.Since(s.StartTime).Round(time.Second), s.Total)

			outcomes := make([]string, 0, len(s.Outcomes))
			for o := range s.Outcomes {
				outcomes = append(outcomes, o)
			}
			sort.Strings(outcomes)
			for _, o := range outcomes {
				ctx.Printf("  %-24s %d", o, s.Outcomes[o])
			}

			if top := s.TopCommands(5); len(top) > 0 {
				parts := make([]string, len(top))
				for i, name := range top {
					parts[i] = fmt.Sprintf("%s (%d)", name, s.Commands[name])
				}
				ctx.Printf("  top: %s", strings.Join(parts, ", "))
			}
			if len(s.Slowest) > 0 {
				ctx.Printf("  slowest: %s in %s", s.Slowest[0].Line, s.Slowest[0].Duration)
			}
			return nil
		}),
	}
}
