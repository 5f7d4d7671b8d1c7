// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"log/slog"
	"strings"
)

// =============================================================================
// TYPE TAGS
// =============================================================================

// TypeTag identifies the type a command parameter is coerced into.
type TypeTag int

const (
	TypeString TypeTag = iota // Passed through unchanged
	TypeInt                   // Base-10 signed 64-bit integer
	TypeFloat                 // 64-bit float
	TypeBool                  // Literal true or false
)

// String returns the display name used in signatures.
func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Param describes one positional parameter of a command.
type Param struct {
	// Name is shown in the signature, e.g. "amount"
	Name string

	// Type selects the parser applied to the token
	Type TypeTag
}

// StringParam returns a string parameter.
func StringParam(name string) Param { return Param{Name: name, Type: TypeString} }

// IntParam returns an integer parameter.
func IntParam(name string) Param { return Param{Name: name, Type: TypeInt} }

// FloatParam returns a float parameter.
func FloatParam(name string) Param { return Param{Name: name, Type: TypeFloat} }

// BoolParam returns a boolean parameter.
func BoolParam(name string) Param { return Param{Name: name, Type: TypeBool} }

// =============================================================================
// VALUES
// =============================================================================

// Value is a coerced argument. The accessor matching Type returns the
// parsed value; the others return the zero value.
type Value struct {
	tag TypeTag
	s   string
	i   int64
	f   float64
	b   bool
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{tag: TypeString, s: s} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{tag: TypeInt, i: i} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{tag: TypeFloat, f: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{tag: TypeBool, b: b} }

// Type returns the tag the value was parsed as.
func (v Value) Type() TypeTag { return v.tag }

// Int returns the integer payload.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// Any returns the payload as an interface value.
func (v Value) Any() any {
	switch v.tag {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeBool:
		return v.b
	default:
		return v.s
	}
}

// String formats the payload for display.
func (v Value) String() string {
	return fmt.Sprint(v.Any())
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Kind distinguishes field-backed reads from method-backed invocations.
type Kind int

const (
	// KindRead commands take no arguments and report a live value.
	KindRead Kind = iota
	// KindInvoke commands take typed arguments and perform an action.
	KindInvoke
)

// String returns "read" or "invoke".
func (k Kind) String() string {
	if k == KindRead {
		return "read"
	}
	return "invoke"
}

// Handler performs a method-backed command. args has exactly one Value
// per declared Param, already coerced to its type.
type Handler func(ctx *Context, args []Value) error

// Command is an immutable descriptor binding a name to an invocable target.
// Build commands with NewRead or NewInvoke.
type Command struct {
	// Name is the unique registry key, e.g. "heal"
	Name string

	// Description is shown by help and previews
	Description string

	// Params lists the positional parameters (empty for reads)
	Params []Param

	// Kind selects the invocation shape
	Kind Kind

	// Source names the component that described the command. Set by the
	// registry at registration time.
	Source string

	read    func() any
	handler Handler
}

// NewRead creates a field-backed command. read is called on every
// invocation so the reported value is always current.
func NewRead(name, description string, read func() any) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Kind:        KindRead,
		read:        read,
	}
}

// NewInvoke creates a method-backed command taking params.
func NewInvoke(name, description string, handler Handler, params ...Param) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Params:      params,
		Kind:        KindInvoke,
		handler:     handler,
	}
}

// Arity returns the number of argument tokens the command expects.
func (c *Command) Arity() int {
	return len(c.Params)
}

// Signature renders the parameter list, e.g. "(int amount, string who)".
// Field-backed commands render as "()".
func (c *Command) Signature() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Invoke runs the command with already-coerced arguments. Reads ignore
// args and print "[name] = <value>" to the context output.
func (c *Command) Invoke(ctx *Context, args []Value) error {
	switch c.Kind {
	case KindRead:
		if c.read == nil {
			return fmt.Errorf("command %s has no value reader", c.Name)
		}
		ctx.Printf("[%s] = %v", c.Name, c.read())
		return nil
	default:
		if c.handler == nil {
			return fmt.Errorf("command %s has no handler", c.Name)
		}
		return c.handler(ctx, args)
	}
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Output receives the discrete lines a command produces.
type Output interface {
	Print(line string)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(line string)

// Print calls f.
func (f OutputFunc) Print(line string) { f(line) }

// Context gives handlers access to the console they run in.
//
// All fields are set by the Dispatcher; handlers should not retain it
// beyond the invocation.
type Context struct {
	// Out receives output lines
	Out Output

	// Registry is the registry the command was resolved from
	Registry *Registry

	// Logger is scoped to the running command
	Logger *slog.Logger

	// Command is the descriptor being invoked
	Command *Command
}

// Print writes one line to the output.
func (c *Context) Print(line string) {
	if c == nil || c.Out == nil {
		return
	}
	c.Out.Print(line)
}

// Printf formats and writes one line to the output.
func (c *Context) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// =============================================================================
// SOURCES
// =============================================================================

// Source is anything that exposes debug commands. Sources describe their
// commands explicitly; nothing is discovered by reflection.
type Source interface {
	DescribeCommands() []*Command
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []*Command

// DescribeCommands calls f.
func (f SourceFunc) DescribeCommands() []*Command { return f() }

// namedSource is implemented by sources that want to be attributed by a
// stable name in conflict reports.
type namedSource interface {
	CommandSourceName() string
}

type named struct {
	Source
	name string
}

func (n named) CommandSourceName() string { return n.name }

// Named attaches a display name to src.
func Named(name string, src Source) Source {
	return named{Source: src, name: name}
}

func sourceName(src Source) string {
	if n, ok := src.(namedSource); ok {
		return n.CommandSourceName()
	}
	return fmt.Sprintf("%T", src)
}
