// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/timescale"
	"github.com/jeranaias/devconsole/internal/ui/components"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// DefaultRefresh is how often the overlay polls for log lines written
// outside the update loop (slog records, timer callbacks).
const DefaultRefresh = 100 * time.Millisecond

// Clock is the time scale view shown in the status bar.
type Clock interface {
	Scale() float64
	State() timescale.State
}

// Options configures the overlay model.
type Options struct {
	Theme     *styles.Theme
	ToggleKey string
	Prompt    string
	Clock     Clock
	Refresh   time.Duration
}

// refreshMsg triggers a poll of the console log.
type refreshMsg time.Time

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeError
	noticeWarning
	noticeInfo
)

// notice is a one-line result of the last action, shown under the input
// until the next key press.
type notice struct {
	kind noticeKind
	text string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea presentation of a console session.
type Model struct {
	console *console.Console
	clock   Clock
	keys    KeyMap
	theme   *styles.Theme

	input  *components.InputArea
	log    *components.LogView
	status *components.StatusBar

	width      int
	height     int
	refresh    time.Duration
	logVersion uint64
	notice     notice
	quitting   bool
}

// New creates the overlay over c.
func New(c *console.Console, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ThemeOptions{})
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	m := Model{
		console: c,
		clock:   opts.Clock,
		keys:    DefaultKeyMap(opts.ToggleKey),
		theme:   theme,
		input:   components.NewInputArea(theme, prompt),
		log:     components.NewLogView(theme),
		status:  components.NewStatusBar(theme),
		width:   80,
		height:  24,
		refresh: refresh,
	}
	m.status.Session = c.ID()
	if c.Visible() {
		m.input.Focus()
	}
	m.layout()
	m.logVersion = c.Log().Version()
	m.log.SetLines(c.Log().Lines())
	m.sync()
	return m
}

// Init starts the cursor blink and the log poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Console returns the session the overlay drives.
func (m Model) Console() *console.Console {
	return m.console
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// sync copies console state into the components.
func (m *Model) sync() {
	if v := m.console.Log().Version(); v != m.logVersion {
		m.logVersion = v
		m.log.SetLines(m.console.Log().Lines())
	}
	m.status.Commands = m.console.Registry().Len()
	if m.clock != nil {
		m.status.SetClock(m.clock.Scale(), string(m.clock.State()))
	}
}

// layout sizes the components for the current window.
func (m *Model) layout() {
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}
	m.input.SetWidth(inner)
	m.status.SetWidth(m.width)

	// border (2) + input + preview + status + help
	m.log.SetSize(inner, m.height-6)
}
