// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func newConfigCommand(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Long: `Show or create the configuration file.

Environment variables prefixed with DEVCONSOLE_ override file values, e.g.
DEVCONSOLE_CONSOLE_LOG_CAPACITY=100 or DEVCONSOLE_UI_TOGGLE_KEY=f12.`,
	}
	cmd.AddCommand(
		newConfigShowCommand(rf),
		newConfigPathCommand(rf),
		newConfigInitCommand(),
	)
	return cmd
}

func newConfigShowCommand(rf *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(rf)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return NewJSONResponse("config show", map[string]interface{}{
					"path":   path,
					"config": cfg,
				}).Print(out)
			}

			if path == "" {
				path = "(defaults)"
			}
			fmt.Fprintln(out, TitleStyle.Render("devconsole configuration"))
			fmt.Fprintln(out, LabelStyle.Render(util.PadRight("source", labelWidth))+ValueStyle.Render(path))
			for _, key := range config.Keys() {
				v, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, LabelStyle.Render(util.PadRight(key, labelWidth))+ValueStyle.Render(fmt.Sprint(v)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newConfigPathCommand(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := rf.configPath
			if path == "" {
				found, err := config.Locate()
				if err != nil {
					return &ConfigError{Err: err}
				}
				path = found
			}
			if path == "" {
				def, err := config.DefaultPath()
				if err != nil {
					return &ConfigError{Err: err}
				}
				fmt.Fprintln(cmd.OutOrStdout(), def+" (not created)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				def, err := config.DefaultPath()
				if err != nil {
					return &ConfigError{Err: err}
				}
				path = def
			}

			if _, err := os.Stat(path); err == nil && !force {
				return &UsageError{Message: path + " already exists (use --force to overwrite)"}
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return &ConfigError{Path: path, Err: err}
			}

			if err := config.WriteFile(config.Default(), path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("[OK]")+" wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
