// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/util"
)

// builtins are the commands every console has.
type builtins struct {
	c *Console
}

func (b builtins) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewInvoke("help", "List available commands", b.help),
		commands.NewInvoke("clear", "Clear the console log", b.clear),
		commands.NewInvoke("history", "Show entered commands", b.history),
		commands.NewInvoke("describe", "Show the manual card for a command", b.describe,
			commands.StringParam("name")),
		commands.NewInvoke("rescan", "Rebuild the command registry", b.rescan),
	}
}

func (b builtins) help(ctx *commands.Context, _ []commands.Value) error {
	cmds := ctx.Registry.All()
	if len(cmds) == 0 {
		ctx.Print("no commands registered")
		return nil
	}

	width := 0
	for _, cmd := range cmds {
		width = max(width, util.StringWidth(cmd.Name))
	}

	ctx.Print("available commands:")
	for _, cmd := range cmds {
		ctx.Printf("- %s %s", util.PadRight(cmd.Name+":", width+1), cmd.Description)
	}
	return nil
}

func (b builtins) clear(*commands.Context, []commands.Value) error {
	b.c.log.Clear()
	return nil
}

func (b builtins) history(ctx *commands.Context, _ []commands.Value) error {
	entries := b.c.HistoryEntries()
	if len(entries) == 0 {
		ctx.Print("history is empty")
		return nil
	}
	for i, line := range entries {
		ctx.Printf("%3d  %s", i+1, line)
	}
	return nil
}

func (b builtins) describe(ctx *commands.Context, args []commands.Value) error {
	name := args[0].Str()
	cmd, ok := ctx.Registry.Get(name)
	if !ok {
		return fmt.Errorf("no command named %q", name)
	}

	out, err := glamour.Render(ManualCard(cmd), b.c.markdownStyle())
	if err != nil {
		return fmt.Errorf("render manual card: %w", err)
	}
	ctx.Print(strings.TrimRight(out, "\n"))
	return nil
}

func (b builtins) rescan(ctx *commands.Context, _ []commands.Value) error {
	b.c.Rescan()
	ctx.Printf("registry rebuilt: %d commands", ctx.Registry.Len())
	return nil
}

// ManualCard renders a command descriptor as markdown.
func ManualCard(cmd *commands.Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", cmd.Name)
	if cmd.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", cmd.Description)
	}
	fmt.Fprintf(&sb, "Usage: `%s`\n\n", usage(cmd))

	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Kind | %s |\n", cmd.Kind)
	fmt.Fprintf(&sb, "| Signature | `%s%s` |\n", cmd.Name, cmd.Signature())
	fmt.Fprintf(&sb, "| Source | %s |\n", cmd.Source)

	if len(cmd.Params) > 0 {
		sb.WriteString("\n## Parameters\n\n")
		for i, p := range cmd.Params {
			fmt.Fprintf(&sb, "%d. `%s` (%s)\n", i+1, p.Name, p.Type)
		}
	}
	return sb.String()
}

func usage(cmd *commands.Command) string {
	parts := []string{cmd.Name}
	for _, p := range cmd.Params {
		parts = append(parts, "<"+p.Name+">")
	}
	return strings.Join(parts, " ")
}
