// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalSize returns the terminal size, or 80x24 when unknown.
func GetTerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// ColorsEnabled reports whether colored output should be used. NO_COLOR
// (https://no-color.org/) and the no_color setting both disable it;
// FORCE_COLOR overrides TTY detection.
func ColorsEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsStdoutTTY()
}

// GetColorProfile returns the termenv profile matching ColorsEnabled.
func GetColorProfile(noColor bool) termenv.Profile {
	if !ColorsEnabled(noColor) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// PRESENTATION MODE
// =============================================================================

// Presentation modes.
const (
	ModeAuto = "auto"
	ModeTUI  = "tui"
	ModeLine = "line"
)

// ResolveMode turns "auto" into "tui" when both stdin and stdout are
// terminals and "line" otherwise. Asking for the TUI without a terminal
// is an error.
func ResolveMode(mode string, stdinTTY, stdoutTTY bool) (string, error) {
	interactive := stdinTTY && stdoutTTY
	switch mode {
	case "", ModeAuto:
		if interactive {
			return ModeTUI, nil
		}
		return ModeLine, nil
	case ModeTUI:
		if !interactive {
			return "", &TTYRequiredError{Operation: "run the console overlay"}
		}
		return ModeTUI, nil
	case ModeLine:
		return ModeLine, nil
	default:
		return "", &UsageError{Message: fmt.Sprintf("unknown mode %q (want auto, tui or line)", mode)}
	}
}

// TTYRequiredError is returned when an operation requires a TTY but none
// is available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	return "stdin/stdout is not a terminal; cannot " + e.Operation
}
