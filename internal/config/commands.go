// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"github.com/jeranaias/devconsole/internal/commands"
)

// DescribeCommands exposes the live config to the console.
func (s *Store) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewInvoke("config_get", "Show a config value", func(ctx *commands.Context, args []commands.Value) error {
			key := args[0].Str()
			v, err := s.Get(key)
			if err != nil {
				return err
			}
			ctx.Printf("%s = %v", key, v)
			return nil
		}, commands.StringParam("key")),
		commands.NewInvoke("config_set", "Change a config value for this session", func(ctx *commands.Context, args []commands.Value) error {
			key, value := args[0].Str(), args[1].Str()
			if err := s.Set(key, value); err != nil {
				return err
			}
			ctx.Printf("%s = %s", key, value)
			return nil
		}, commands.StringParam("key"), commands.StringParam("value")),
		commands.NewInvoke("config_keys", "List config keys", func(ctx *commands.Context, _ []commands.Value) error {
			for _, k := range Keys() {
				ctx.Print(k)
			}
			return nil
		}),
		commands.NewInvoke("config_reload", "Re-read the config file", func(ctx *commands.Context, _ []commands.Value) error {
			if err := s.Reload(); err != nil {
				return err
			}
			ctx.Print("config reloaded")
			return nil
		}),
	}
}
