// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/devconsole/internal/commands"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Console.
type Options struct {
	// LogCapacity bounds the log buffer (default 50)
	LogCapacity int

	// DuplicatePolicy decides what happens when two sources describe the
	// same command name
	DuplicatePolicy commands.DuplicatePolicy

	// Logger receives registry and dispatch diagnostics
	Logger *slog.Logger

	// Observers are notified after every executed line
	Observers []commands.Observer

	// MarkdownStyle is the glamour style used by describe ("notty" if empty)
	MarkdownStyle string

	// StartVisible opens the console immediately
	StartVisible bool

	// ID names the session; a random UUID when empty
	ID string

	// Buffer is used as the console log when set, so a slog handler can
	// write into it before the console exists. LogCapacity still applies.
	Buffer *LogBuffer
}

// =============================================================================
// CONSOLE
// =============================================================================

// Console is one interactive command session: registry, dispatcher,
// history, log and the current input state. Presentations (the bubbletea
// UI and the line REPL) drive it; it holds no terminal state itself.
//
// All methods are safe for concurrent use. Commands run while the console
// lock is not held so handlers may call back into the console.
type Console struct {
	mu      sync.Mutex
	visible bool
	input   string

	id         string
	sources    []commands.Source
	registry   *commands.Registry
	dispatcher *commands.Dispatcher
	completer  *commands.Completer
	history    *commands.History
	log        *LogBuffer
	logger     *slog.Logger
	mdStyle    string
}

// New builds a console over sources. The console's own built-ins are
// registered first so a later source may replace them.
func New(sources []commands.Source, opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	mdStyle := opts.MarkdownStyle
	if mdStyle == "" {
		mdStyle = "notty"
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	c := &Console{
		id:      id,
		visible: opts.StartVisible,
		history: commands.NewHistory(),
		log:     opts.Buffer,
		mdStyle: mdStyle,
	}
	if c.log == nil {
		c.log = NewLogBuffer(opts.LogCapacity)
	} else if opts.LogCapacity > 0 {
		c.log.SetCapacity(opts.LogCapacity)
	}
	c.logger = logger.With("session", c.id)

	c.sources = append([]commands.Source{commands.Named("console", builtins{c})}, sources...)
	c.registry = commands.Scan(c.sources,
		commands.WithDuplicatePolicy(opts.DuplicatePolicy),
		commands.WithLogger(c.logger),
	)
	c.completer = commands.NewCompleter(c.registry)

	dopts := []commands.DispatcherOption{commands.WithDispatchLogger(c.logger)}
	for _, o := range opts.Observers {
		dopts = append(dopts, commands.WithObserver(o))
	}
	c.dispatcher = commands.NewDispatcher(c.registry, c.log, dopts...)

	return c
}

// ID identifies this session in logs and the journal.
func (c *Console) ID() string { return c.id }

// Registry returns the command registry.
func (c *Console) Registry() *commands.Registry { return c.registry }

// Dispatcher returns the dispatcher, e.g. to add observers.
func (c *Console) Dispatcher() *commands.Dispatcher { return c.dispatcher }

// Completer returns the autocomplete matcher.
func (c *Console) Completer() *commands.Completer { return c.completer }

// Log returns the log buffer.
func (c *Console) Log() *LogBuffer { return c.log }

// Print writes a line to the console log.
func (c *Console) Print(line string) { c.log.Print(line) }

// =============================================================================
// INPUT
// =============================================================================

// Submit records and executes one line. Blank input is ignored. The line
// is echoed as "> line"; a failure of any kind is written to the log as
// its message and also returned.
func (c *Console) Submit(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	c.mu.Lock()
	c.history.Append(line)
	c.input = ""
	c.mu.Unlock()

	c.log.Print("> " + line)
	err := c.dispatcher.Execute(line)
	if err != nil {
		c.log.Print(err.Error())
		c.logger.Debug("Command failed", "line", line, "outcome", commands.OutcomeOf(err).String(), "error", err)
	}
	return err
}

// Autocomplete applies tab completion to input and returns the new input.
// One match replaces the input; several are listed in the log and the
// input is returned unchanged.
func (c *Console) Autocomplete(input string) string {
	comp := c.completer.Complete(input)
	if len(comp.Candidates) > 1 {
		c.log.Print("commands: " + strings.Join(comp.Candidates, ", "))
	}
	c.SetInput(comp.Input)
	return comp.Input
}

// Preview returns the live preview line for input.
func (c *Console) Preview(input string) string {
	return c.completer.Preview(input)
}

// HistoryPrevious moves back in history and returns the new input text.
// With no history the current text is kept.
func (c *Console) HistoryPrevious(current string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.history.Previous()
	if !ok {
		return current
	}
	c.input = line
	return line
}

// HistoryNext moves forward in history and returns the new input text.
// Past the newest entry the input becomes empty.
func (c *Console) HistoryNext(current string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.history.Next()
	if !ok {
		return current
	}
	c.input = line
	return line
}

// HistoryEntries returns a copy of the entered lines, oldest first.
func (c *Console) HistoryEntries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

// SetInput records the current input text.
func (c *Console) SetInput(s string) {
	c.mu.Lock()
	c.input = s
	c.mu.Unlock()
}

// Input returns the current input text.
func (c *Console) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// =============================================================================
// VISIBILITY
// =============================================================================

// Toggle flips visibility and returns the new state. Showing the console
// clears the input.
func (c *Console) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVisibleLocked(!c.visible)
	return c.visible
}

// Show makes the console visible.
func (c *Console) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVisibleLocked(true)
}

// Hide hides the console.
func (c *Console) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVisibleLocked(false)
}

func (c *Console) setVisibleLocked(v bool) {
	if v && !c.visible {
		c.input = ""
	}
	c.visible = v
}

// Visible reports whether the console is shown.
func (c *Console) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// =============================================================================
// REGISTRY
// =============================================================================

// AddSource registers another source and rescans.
func (c *Console) AddSource(src commands.Source) {
	c.mu.Lock()
	c.sources = append(c.sources, src)
	c.mu.Unlock()
	c.Rescan()
}

// Rescan rebuilds the registry from every source.
func (c *Console) Rescan() {
	c.mu.Lock()
	sources := make([]commands.Source, len(c.sources))
	copy(sources, c.sources)
	c.mu.Unlock()

	c.registry.Rescan(sources...)
}

// SetLogCapacity resizes the log buffer.
func (c *Console) SetLogCapacity(n int) {
	c.log.SetCapacity(n)
}

// SetMarkdownStyle changes the describe style.
func (c *Console) SetMarkdownStyle(style string) {
	if style == "" {
		return
	}
	c.mu.Lock()
	c.mdStyle = style
	c.mu.Unlock()
}

func (c *Console) markdownStyle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mdStyle
}
