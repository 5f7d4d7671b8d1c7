// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/devconsole/internal/commands"
)

// maxExport caps the entries written by journal_export.
const maxExport = 10000

// DescribeCommands exposes journal queries to the console.
func (j *Journal) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewInvoke("journal", "Show the newest journaled commands", func(ctx *commands.Context, args []commands.Value) error {
			qctx, cancel := context.WithTimeout(context.Background(), j.timeout)
			defer cancel()

			entries, err := j.Recent(qctx, int(args[0].Int()))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				ctx.Print("journal is empty")
				return nil
			}
			// Oldest first reads naturally in a scrolling log.
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				ctx.Printf("%s  %-24s %s", e.Started.Format(time.TimeOnly), e.Outcome, e.Line)
			}
			return nil
		}, commands.IntParam("count")),
		commands.NewInvoke("journal_stats", "Count journaled commands by outcome", func(ctx *commands.Context, _ []commands.Value) error {
			qctx, cancel := context.WithTimeout(context.Background(), j.timeout)
			defer cancel()

			counts, err := j.Counts(qctx)
			if err != nil {
				return err
			}
			outcomes := make([]string, 0, len(counts))
			for o := range counts {
				outcomes = append(outcomes, o)
			}
			sort.Strings(outcomes)

			parts := make([]string, len(outcomes))
			for i, o := range outcomes {
				parts[i] = fmt.Sprintf("%s=%d", o, counts[o])
			}
			ctx.Printf("journal: %s", strings.Join(parts, " "))
			return nil
		}),
		commands.NewInvoke("journal_export", "Write the journal to a directory as md or json", func(ctx *commands.Context, args []commands.Value) error {
			exporter, err := ExporterFor(args[0].Str())
			if err != nil {
				return err
			}

			qctx, cancel := context.WithTimeout(context.Background(), j.timeout)
			defer cancel()
			entries, err := j.Recent(qctx, maxExport)
			if err != nil {
				return err
			}
			for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
				entries[l], entries[r] = entries[r], entries[l]
			}

			path, err := ExportToFile(args[1].Str(), j.session, entries, exporter)
			if err != nil {
				return err
			}
			ctx.Printf("exported %d entries to %s", len(entries), path)
			return nil
		}, commands.StringParam("format"), commands.StringParam("dir")),
	}
}
