// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// =============================================================================
// EXECUTION RECORD
// =============================================================================

// Execution describes one dispatched line, delivered to observers.
type Execution struct {
	Line     string
	Command  string
	Args     []string
	Outcome  Outcome
	Err      error
	Started  time.Time
	Duration time.Duration
}

// Observer is notified after every non-blank line is dispatched.
// Observers run synchronously on the dispatching goroutine.
type Observer interface {
	Observe(exec Execution)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(exec Execution)

// Observe calls f.
func (f ObserverFunc) Observe(exec Execution) { f(exec) }

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher parses input lines, resolves them through a Registry,
// coerces arguments and invokes the command.
type Dispatcher struct {
	registry  *Registry
	out       Output
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the logger handed to command handlers.
func WithDispatchLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// NewDispatcher creates a dispatcher writing command output to out.
func NewDispatcher(registry *Registry, out Output, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		out:      out,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry commands are resolved from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// AddObserver registers an observer after construction.
func (d *Dispatcher) AddObserver(o Observer) {
	if o != nil {
		d.observers = append(d.observers, o)
	}
}

// Execute runs one line of input.
//
// A blank line is a no-op and returns nil. Otherwise the returned error is
// nil on success or one of *CommandNotFoundError, *ArgumentCountError,
// *CoercionError or *InvocationError. The handler is only called once the
// name resolved, the arity matched and every token coerced.
func (d *Dispatcher) Execute(line string) error {
	parsed := Parse(line)
	if parsed.Empty() {
		return nil
	}

	started := d.now()
	err := d.execute(parsed)

	exec := Execution{
		Line:     line,
		Command:  parsed.Name,
		Args:     parsed.Args,
		Outcome:  OutcomeOf(err),
		Err:      err,
		Started:  started,
		Duration: d.now().Sub(started),
	}
	for _, o := range d.observers {
		o.Observe(exec)
	}
	return err
}

func (d *Dispatcher) execute(parsed ParseResult) error {
	cmd, ok := d.registry.Get(parsed.Name)
	if !ok {
		return &CommandNotFoundError{Name: parsed.Name}
	}

	if len(parsed.Args) != cmd.Arity() {
		return &ArgumentCountError{
			Command:  cmd.Name,
			Expected: cmd.Arity(),
			Actual:   len(parsed.Args),
		}
	}

	values, err := Coerce(parsed.Args, cmd.Params)
	if err != nil {
		if ce, ok := err.(*CoercionError); ok {
			ce.Command = cmd.Name
		}
		return err
	}

	return d.invoke(cmd, values)
}

// invoke calls the command, converting failures and panics into an
// *InvocationError.
func (d *Dispatcher) invoke(cmd *Command, values []Value) (err error) {
	ctx := &Context{
		Out:      d.out,
		Registry: d.registry,
		Logger:   d.logger.With("command", cmd.Name),
		Command:  cmd,
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command panicked", "command", cmd.Name, "panic", r)
			err = &InvocationError{Command: cmd.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if ierr := cmd.Invoke(ctx, values); ierr != nil {
		return &InvocationError{Command: cmd.Name, Err: ierr}
	}
	return nil
}
