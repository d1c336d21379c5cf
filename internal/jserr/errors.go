// Package jserr provides the structured ECMAScript error taxonomy used by
// pkg/runtime to report failures through a Context's pending-exception slot
// rather than by unwinding the Go call stack.
package jserr

import (
	"fmt"
	"strings"
)

// Kind identifies one of the built-in ECMAScript error constructors.
type Kind string

const (
	TypeError      Kind = "TypeError"
	RangeError     Kind = "RangeError"
	SyntaxError    Kind = "SyntaxError"
	ReferenceError Kind = "ReferenceError"
	URIError       Kind = "URIError"
	EvalError      Kind = "EvalError"
	AggregateError Kind = "AggregateError"
)

// Frame is a single captured call-stack entry, recorded at throw time.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	if f.File == "" {
		return f.Function
	}
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// StackTrace is an ordered list of frames, outermost call first.
type StackTrace []Frame

func (st StackTrace) String() string {
	lines := make([]string, len(st))
	for i, f := range st {
		lines[i] = "  at " + f.String()
	}
	return strings.Join(lines, "\n")
}

// Error is the ES error value surfaced through Context.pendingException.
// It is a plain Go error so it can also travel through %w wrapping when a
// Go-level caller (the CLI, tests) needs to report it, but callers inside
// pkg/runtime never unwind on it directly — see spec §7 propagation policy.
type Error struct {
	Name    Kind
	Message string
	Stack   StackTrace
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Name: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if len(e.Stack) == 0 {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Name, e.Message, e.Stack)
}

// WithStack returns a copy of e with the given stack trace attached.
func (e *Error) WithStack(stack StackTrace) *Error {
	cp := *e
	cp.Stack = stack
	return &cp
}

func NewTypeError(format string, args ...any) *Error      { return New(TypeError, format, args...) }
func NewRangeError(format string, args ...any) *Error     { return New(RangeError, format, args...) }
func NewSyntaxError(format string, args ...any) *Error    { return New(SyntaxError, format, args...) }
func NewReferenceError(format string, args ...any) *Error { return New(ReferenceError, format, args...) }
func NewURIError(format string, args ...any) *Error       { return New(URIError, format, args...) }
func NewEvalError(format string, args ...any) *Error      { return New(EvalError, format, args...) }
func NewAggregateError(format string, args ...any) *Error { return New(AggregateError, format, args...) }
