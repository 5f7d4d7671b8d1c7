// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/jeranaias/devconsole/internal/console"
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader is the editing surface the loop reads from. *liner.State
// satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Options configures a REPL.
type Options struct {
	// Prompt is printed before each line ("> " if empty)
	Prompt string

	// HistoryFile persists line history between runs; empty disables it
	HistoryFile string

	// Output receives console lines (stdout if nil)
	Output io.Writer

	Logger *slog.Logger
}

// =============================================================================
// REPL
// =============================================================================

// REPL drives a console from a plain terminal line by line. Every line
// the console prints, including lines from background timers and the
// slog bridge, is written to the output as it happens.
type REPL struct {
	console *console.Console
	reader  LineReader
	state   *liner.State
	out     io.Writer
	prompt  string
	history string
	logger  *slog.Logger

	mu       sync.Mutex
	skipEcho string
	stop     func()
}

// New creates a REPL over c reading from the terminal.
func New(c *console.Console, opts Options) *REPL {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(Completions(c))

	r := newREPL(c, state, opts)
	r.state = state
	r.loadHistory()
	return r
}

// NewWithReader creates a REPL reading from reader instead of the
// terminal.
func NewWithReader(c *console.Console, reader LineReader, opts Options) *REPL {
	return newREPL(c, reader, opts)
}

func newREPL(c *console.Console, reader LineReader, opts Options) *REPL {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &REPL{
		console: c,
		reader:  reader,
		out:     out,
		prompt:  prompt,
		history: opts.HistoryFile,
		logger:  logger,
	}
	r.stop = c.Log().Follow(r.write)
	return r
}

// Completions returns a liner completer over the console's commands.
func Completions(c *console.Console) liner.Completer {
	return func(line string) []string {
		return c.Completer().Match(line)
	}
}

func (r *REPL) write(line string) {
	r.mu.Lock()
	if r.skipEcho != "" && line == r.skipEcho {
		r.skipEcho = ""
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

// Run reads and executes lines until EOF, Ctrl+C, or ctx is done.
// Failed commands are reported on the output and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.reader.Prompt(r.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		r.reader.AppendHistory(line)

		// The terminal already shows what was typed.
		r.mu.Lock()
		r.skipEcho = "> " + line
		r.mu.Unlock()

		_ = r.console.Submit(line)
	}
}

// RunScript executes every line of src in order, echoing each one. It
// stops at the first failing line when stopOnError is set and returns
// that error.
func (r *REPL) RunScript(ctx context.Context, src io.Reader, stopOnError bool) error {
	scanner := bufio.NewScanner(src)
	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.console.Submit(line); err != nil && stopOnError {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// =============================================================================
// HISTORY FILE
// =============================================================================

func (r *REPL) loadHistory() {
	if r.history == "" || r.state == nil {
		return
	}
	f, err := os.Open(r.history)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := r.state.ReadHistory(f); err != nil {
		r.logger.Warn("History file unreadable", "path", r.history, "error", err)
	}
}

func (r *REPL) saveHistory() {
	if r.history == "" || r.state == nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.history), 0700); err != nil {
		r.logger.Warn("Cannot create history directory", "error", err)
		return
	}
	f, err := os.OpenFile(r.history, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		r.logger.Warn("Cannot save history", "path", r.history, "error", err)
		return
	}
	defer f.Close()
	if _, err := r.state.WriteHistory(f); err != nil {
		r.logger.Warn("Cannot save history", "path", r.history, "error", err)
	}
}

// Close stops following the log, saves history and restores the
// terminal.
func (r *REPL) Close() error {
	r.stop()
	r.saveHistory()
	if r.state != nil {
		return r.state.Close()
	}
	return nil
}
