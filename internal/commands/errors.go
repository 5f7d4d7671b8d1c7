// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// =============================================================================
// OUTCOMES
// =============================================================================

// Outcome classifies the result of executing one input line.
type Outcome int

const (
	OutcomeNone                  Outcome = iota // Executed, or nothing to do
	OutcomeCommandNotFound                      // Name not in the registry
	OutcomeArgumentCountMismatch                // Wrong number of tokens
	OutcomeArgumentCoercionError                // A token failed to parse
	OutcomeInvocationError                      // The handler failed
)

// String returns a stable label, used for metrics and the journal.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "ok"
	case OutcomeCommandNotFound:
		return "command_not_found"
	case OutcomeArgumentCountMismatch:
		return "argument_count_mismatch"
	case OutcomeArgumentCoercionError:
		return "argument_coercion_error"
	case OutcomeInvocationError:
		return "invocation_error"
	default:
		return "unknown"
	}
}

// OutcomeOf maps an error returned by Dispatcher.Execute to its Outcome.
// Errors outside the taxonomy are treated as invocation errors.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeNone
	}

	var notFound *CommandNotFoundError
	var count *ArgumentCountError
	var coerce *CoercionError

	switch {
	case errors.As(err, &notFound):
		return OutcomeCommandNotFound
	case errors.As(err, &count):
		return OutcomeArgumentCountMismatch
	case errors.As(err, &coerce):
		return OutcomeArgumentCoercionError
	default:
		return OutcomeInvocationError
	}
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandNotFoundError is returned when the command name is not registered.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return "command [" + e.Name + "] not found"
}

// ArgumentCountError is returned when the number of argument tokens does
// not match the command's parameter list.
type ArgumentCountError struct {
	Command  string
	Expected int
	Actual   int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("[%s] expects %d argument(s), got %d", e.Command, e.Expected, e.Actual)
}

// CoercionError is returned when a token cannot be parsed into its
// parameter type. Index is zero-based.
type CoercionError struct {
	Command string
	Index   int
	Token   string
	Type    TypeTag
	Err     error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("argument %d %q is not a valid %s", e.Index+1, e.Token, e.Type)
	if e.Command != "" {
		msg = "[" + e.Command + "] " + msg
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

// InvocationError wraps a failure raised by a command handler, including
// recovered panics.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return "[" + e.Command + "] failed: " + e.Message()
}

// Message returns the underlying failure text.
func (e *InvocationError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ConflictError is returned by Register under DuplicateReject when a name
// is already taken.
type ConflictError struct {
	Name     string
	Existing string
	Incoming string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("command %q already registered by %s (rejected from %s)", e.Name, e.Existing, e.Incoming)
}
