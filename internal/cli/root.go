// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/repl"
	"github.com/jeranaias/devconsole/internal/ui/overlay"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	noColor    bool
}

// runFlags holds the flags of the console itself.
type runFlags struct {
	mode        string
	exec        []string
	script      string
	stopOnError bool
	noWatch     bool
}

// NewRootCommand builds the devconsole command tree.
func NewRootCommand() *cobra.Command {
	rf := &rootFlags{}
	run := &runFlags{}

	root := &cobra.Command{
		Use:   "devconsole",
		Short: "Runtime developer console",
		Long: `devconsole is a runtime developer console: type a command name and
arguments to read state or invoke operations of a running program.

The bundled demo exposes a player (hp, heal, damage, god) and a time scale
controller (pause, hitstop, bullettime). Type help inside the console for
the full list.

Keys (overlay mode):
  Insert    - Show or hide the console
  Enter     - Run the line
  Tab       - Complete the command name
  Up/Down   - Walk history
  Ctrl+C    - Quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			configureColor(GetColorProfile(rf.noColor))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, rf, run)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&rf.configPath, "config", "c", "", "config file (default: ~/.devconsole/config.{toml,yaml,json})")
	pf.StringVar(&rf.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&rf.noColor, "no-color", false, "disable colour output")

	f := root.Flags()
	f.StringVarP(&run.mode, "mode", "m", "", "presentation: auto, tui or line")
	f.StringArrayVarP(&run.exec, "exec", "e", nil, "run a console line and exit (repeatable)")
	f.StringVar(&run.script, "script", "", "run console lines from a file and exit (- for stdin)")
	f.BoolVar(&run.stopOnError, "stop-on-error", true, "stop scripts at the first failing line")
	f.BoolVar(&run.noWatch, "no-watch", false, "do not reload the config file on change")

	root.AddCommand(
		newVersionCommand(),
		newConfigCommand(rf),
		newDoctorCommand(rf),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(rf *rootFlags) (*config.Config, string, error) {
	path := rf.configPath
	if path == "" {
		found, err := config.Locate()
		if err != nil {
			return nil, "", &ConfigError{Err: err}
		}
		path = found
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}

	if rf.logLevel != "" {
		cfg.Log.Level = rf.logLevel
	}
	if rf.noColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	return cfg, path, nil
}

// =============================================================================
// CONSOLE RUN
// =============================================================================

func runConsole(cmd *cobra.Command, rf *rootFlags, run *runFlags) error {
	cfg, path, err := loadConfig(rf)
	if err != nil {
		return err
	}

	scripted := len(run.exec) > 0 || run.script != ""
	mode := ModeLine
	if !scripted {
		requested := run.mode
		if requested == "" {
			requested = cfg.Console.Mode
		}
		if mode, err = ResolveMode(requested, IsTTY(), IsStdoutTTY()); err != nil {
			return err
		}
	}
	configureColor(GetColorProfile(cfg.UI.NoColor))

	// The overlay owns the screen, so logs go nowhere unless a file is set.
	var logOut io.Writer = cmd.ErrOrStderr()
	if mode == ModeTUI {
		logOut = nil
	}

	app, err := NewApp(AppOptions{
		Config:     cfg,
		ConfigPath: path,
		LogOutput:  logOut,
		Watch:      !run.noWatch && !scripted,
	})
	if err != nil {
		return err
	}
	defer closeApp(app, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case scripted:
		return runScripted(ctx, cmd, app, run)
	case mode == ModeTUI:
		return runOverlay(ctx, app, cfg)
	default:
		return runLine(ctx, cmd, app, cfg)
	}
}

// closeApp releases the app and reports any failure on w, since the log
// file may be among the things that failed to close.
func closeApp(app *App, w io.Writer) {
	if err := app.Close(); err != nil {
		fmt.Fprintln(w, WarningStyle.Render("Warning:"), "shutdown:", err)
	}
}

func runScripted(ctx context.Context, cmd *cobra.Command, app *App, run *runFlags) error {
	r := repl.NewWithReader(app.Console, nil, repl.Options{Output: cmd.OutOrStdout(), Logger: app.Logger})
	defer r.Close()

	if len(run.exec) > 0 {
		if err := r.RunScript(ctx, strings.NewReader(strings.Join(run.exec, "\n")), run.stopOnError); err != nil {
			return err
		}
	}
	if run.script == "" {
		return nil
	}

	var src io.Reader = cmd.InOrStdin()
	if run.script != "-" {
		f, err := os.Open(run.script)
		if err != nil {
			return &UsageError{Message: fmt.Sprintf("open script: %v", err)}
		}
		defer f.Close()
		src = f
	}
	return r.RunScript(ctx, src, run.stopOnError)
}

// lineOptions builds the line-mode settings. Input recall is only
// persisted when console.history_file is set.
func lineOptions(cfg *config.Config, out io.Writer, app *App) repl.Options {
	return repl.Options{
		Prompt:      cfg.Console.Prompt,
		HistoryFile: cfg.Console.HistoryFile,
		Output:      out,
		Logger:      app.Logger,
	}
}

func runLine(ctx context.Context, cmd *cobra.Command, app *App, cfg *config.Config) error {
	r := repl.New(app.Console, lineOptions(cfg, cmd.OutOrStdout(), app))
	defer r.Close()

	fmt.Fprintln(cmd.OutOrStdout(), MutedStyle.Render("devconsole "+Version+", type help for commands, Ctrl+D to exit"))
	return r.Run(ctx)
}

func runOverlay(ctx context.Context, app *App, cfg *config.Config) error {
	theme := styles.NewTheme(styles.ThemeOptions{NoColor: !ColorsEnabled(cfg.UI.NoColor)})
	m := overlay.New(app.Console, overlay.Options{
		Theme:     theme,
		ToggleKey: cfg.UI.ToggleKey,
		Prompt:    cfg.Console.Prompt,
		Clock:     app.Clock,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("console overlay: %w", err)
	}
	return nil
}
