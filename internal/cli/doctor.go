// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/journal"
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the lowercase status name used in JSON output.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the styled indicator for the status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render("[OK]")
	case CheckWarn:
		return WarningStyle.Render("[!!]")
	case CheckFail:
		return ErrorStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// doctorTimeout bounds the whole doctor run.
const doctorTimeout = 5 * time.Second

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix command or instruction
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), ValueStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + MutedStyle.PaddingLeft(2).Render("-> "+c.Fix)
	}
	return result
}

// DoctorCheck is the JSON form of a HealthCheck.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorSummary counts check results.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

func newDoctorCommand(rf *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag"},
		Short:   "Check configuration, journal and terminal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()
			checks := RunChecks(ctx, rf.configPath)
			return reportChecks(cmd.OutOrStdout(), checks, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func reportChecks(out io.Writer, checks []*HealthCheck, asJSON bool) error {
	var sum DoctorSummary
	for _, c := range checks {
		switch c.Status {
		case CheckPass:
			sum.Passed++
		case CheckWarn:
			sum.Warned++
		case CheckFail:
			sum.Failed++
		}
	}
	sum.Healthy = sum.Failed == 0

	var failure error
	if sum.Failed > 0 {
		failure = fmt.Errorf("%d health check(s) failed", sum.Failed)
	}

	if asJSON {
		list := make([]DoctorCheck, 0, len(checks))
		for _, c := range checks {
			list = append(list, DoctorCheck{Name: c.Name, Status: c.Status.String(), Message: c.Message, Fix: c.Fix})
		}
		resp := NewJSONResponse("doctor", map[string]interface{}{"checks": list, "summary": sum})
		if failure != nil {
			resp.Fail(failure.Error())
		}
		if err := resp.Print(out); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(out, TitleStyle.Render("devconsole doctor"))
	for _, c := range checks {
		fmt.Fprintln(out, c.Render())
	}
	parts := []string{fmt.Sprintf("%d passed", sum.Passed)}
	if sum.Warned > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warning", sum.Warned)))
	}
	if sum.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", sum.Failed)))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Join(parts, ", "))
	return failure
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// RunChecks runs every health check against the config at path (or the
// located config when path is empty).
func RunChecks(ctx context.Context, path string) []*HealthCheck {
	cfgCheck, cfg := checkConfig(path)
	checks := []*HealthCheck{cfgCheck}
	if cfg == nil {
		return checks
	}
	return append(checks,
		checkRegistry(cfg),
		checkJournal(ctx, cfg),
		checkMetrics(cfg),
		checkTerminal(cfg),
	)
}

func checkConfig(path string) (*HealthCheck, *config.Config) {
	check := &HealthCheck{Name: "config"}
	if path == "" {
		found, err := config.Locate()
		if err != nil {
			check.Status = CheckFail
			check.Message = "Cannot resolve config directory: " + err.Error()
			return check, nil
		}
		path = found
	}

	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			check.Status = CheckFail
			check.Message = "Environment overrides invalid: " + err.Error()
			return check, nil
		}
		check.Status = CheckPass
		check.Message = "No config file, using defaults"
		return check, cfg
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		check.Status = CheckFail
		check.Message = "Config invalid: " + err.Error()
		check.Fix = "devconsole config init --force " + path
		return check, nil
	}
	check.Status = CheckPass
	check.Message = "Config valid (" + path + ")"
	return check, cfg
}

// checkRegistry builds the session once to surface duplicate commands.
func checkRegistry(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "registry"}

	checkCfg := cfg.Clone()
	checkCfg.Journal.Enabled = false
	checkCfg.Metrics.Enabled = false
	checkCfg.Log.File = ""
	app, err := NewApp(AppOptions{Config: checkCfg})
	if err != nil {
		check.Status = CheckFail
		check.Message = "Cannot build console: " + err.Error()
		return check
	}
	defer app.Close()

	reg := app.Console.Registry()
	conflicts := reg.Conflicts()
	if len(conflicts) > 0 {
		names := make([]string, len(conflicts))
		for i, c := range conflicts {
			names[i] = c.Name
		}
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("%d commands, duplicates: %s", reg.Len(), strings.Join(names, ", "))
		if reg.Policy() == commands.DuplicateOverwrite {
			check.Fix = "the last registration wins; set console.duplicate_policy = \"reject\" to keep the first"
		}
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("%d commands registered", reg.Len())
	return check
}

func checkJournal(ctx context.Context, cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "journal"}
	if !cfg.Journal.Enabled {
		check.Status = CheckPass
		check.Message = "Journal disabled"
		return check
	}

	path := cfg.Journal.Path
	if path == "" {
		var err error
		if path, err = config.DefaultJournalPath(); err != nil {
			check.Status = CheckFail
			check.Message = err.Error()
			return check
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		check.Status = CheckFail
		check.Message = "Journal directory not writable: " + err.Error()
		return check
	}

	j, err := journal.Open(path, "doctor", nil)
	if err != nil {
		check.Status = CheckFail
		check.Message = "Journal unusable: " + err.Error()
		check.Fix = "move " + path + " aside; it is recreated on next start"
		return check
	}
	defer j.Close()

	counts, err := j.Counts(ctx)
	if err != nil {
		check.Status = CheckWarn
		check.Message = "Journal opened but unreadable: " + err.Error()
		return check
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Journal OK, %d executions (%s)", total, path)
	return check
}

func checkMetrics(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "metrics"}
	if !cfg.Metrics.Enabled {
		check.Status = CheckPass
		check.Message = "Metrics endpoint disabled"
		return check
	}

	ln, err := net.Listen("tcp", cfg.Metrics.Addr)
	if err != nil {
		check.Status = CheckWarn
		check.Message = "Metrics address " + cfg.Metrics.Addr + " unavailable: " + err.Error()
		check.Fix = "pick a free port in metrics.addr"
		return check
	}
	_ = ln.Close()
	check.Status = CheckPass
	check.Message = "Metrics address " + cfg.Metrics.Addr + " free"
	return check
}

func checkTerminal(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "terminal"}
	mode, err := ResolveMode(cfg.Console.Mode, IsTTY(), IsStdoutTTY())
	if err != nil {
		check.Status = CheckWarn
		check.Message = err.Error()
		check.Fix = "use --mode line when piping"
		return check
	}
	w, h := GetTerminalSize()
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Mode %s, %dx%d, colour %v", mode, w, h, ColorsEnabled(cfg.UI.NoColor))
	return check
}
