// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds every style the console overlay renders with. Styles come
// from the theme's own renderer so a no-colour theme never leaks escape
// codes, whatever the terminal supports.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// Frame
	Panel  lipgloss.Style
	Title  lipgloss.Style
	Hidden lipgloss.Style

	// Log area
	LogLine   lipgloss.Style
	EchoLine  lipgloss.Style
	ErrorLine lipgloss.Style
	WarnLine  lipgloss.Style

	// Input area
	Prompt  lipgloss.Style
	Preview lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Time scale states
	StateRunning lipgloss.Style
	StatePaused  lipgloss.Style
	StateSlowed  lipgloss.Style

	Help lipgloss.Style
}

// ThemeOptions configures NewTheme.
type ThemeOptions struct {
	// NoColor forces plain ASCII output
	NoColor bool
	// Output is the terminal the theme renders for (stdout if nil)
	Output io.Writer
}

// NewTheme creates a theme for the given output.
func NewTheme(opts ThemeOptions) *Theme {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	r := lipgloss.NewRenderer(out)

	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	profile := r.ColorProfile()

	t := &Theme{
		IsDark:       r.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// NoColor reports whether the theme renders without colour.
func (t *Theme) NoColor() bool {
	return t.ColorProfile == termenv.Ascii
}

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.Panel = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.Title = s().Bold(true).Foreground(Purple)
	t.Hidden = s().Foreground(TextMuted).Italic(true)

	t.LogLine = s().Foreground(TextPrimary)
	t.EchoLine = s().Foreground(Cyan)
	t.ErrorLine = s().Foreground(Rose)
	t.WarnLine = s().Foreground(Amber)

	t.Prompt = s().Bold(true).Foreground(Purple)
	t.Preview = s().Foreground(TextMuted).Italic(true)

	t.StatusBar = s().Background(SurfaceDim).Foreground(TextSecondary).Padding(0, 1)
	t.StatusKey = s().Foreground(TextSecondary)
	t.StatusValue = s().Bold(true).Foreground(TextPrimary)

	t.StateRunning = s().Bold(true).Foreground(Emerald)
	t.StatePaused = s().Bold(true).Foreground(Rose)
	t.StateSlowed = s().Bold(true).Foreground(Amber)

	t.Help = s().Foreground(TextMuted)
}

// =============================================================================
// LINE CLASSIFICATION
// =============================================================================

// LogLineStyle picks the style for one console log line. Echoed input
// starts with "> "; lines written by the slog bridge start with a level.
func (t *Theme) LogLineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "> "):
		return t.EchoLine
	case strings.HasPrefix(line, "ERROR "):
		return t.ErrorLine
	case strings.HasPrefix(line, "WARN "):
		return t.WarnLine
	default:
		return t.LogLine
	}
}

// RenderError renders a message with the error indicator.
func (t *Theme) RenderError(message string) string {
	return t.ErrorLine.Bold(true).Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a message with the warning indicator.
func (t *Theme) RenderWarning(message string) string {
	return t.WarnLine.Bold(true).Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders a message with the info indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.EchoLine.Render(StatusIndicators.Info + " " + message)
}

// StateStyle returns the style for a time scale state name.
func (t *Theme) StateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return t.StateRunning
	case "paused":
		return t.StatePaused
	default:
		return t.StateSlowed
	}
}
