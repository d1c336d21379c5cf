// Package host declares the narrow interfaces pkg/runtime consumes from
// collaborators that are explicitly out of scope for this module: the
// lexer/parser/bytecode executor, the regular-expression engine, and the
// microtask queue (spec.md §1, §4.8, §9).
//
// pkg/runtime never depends on a concrete executor, parser, or regexp
// engine — only on these interfaces, supplied by the embedder at Context
// construction time. This mirrors the teacher repo's habit of depending on
// small interfaces (IClassInfo, ClassConstantProvider) instead of concrete
// types to avoid coupling the value/object layer to the layers above it.
package host

// Executor drives function bodies: getters, setters, @@toPrimitive methods,
// Proxy traps, and constructors. pkg/runtime calls into it whenever an
// internal method needs to invoke user code; it never executes bytecode or
// AST nodes itself.
//
// Callable is an opaque handle the Executor understands (a compiled function,
// closure, or native function); pkg/runtime treats it as a Value that merely
// happens to satisfy IsCallable.
type Executor interface {
	// Call invokes fn with the given this-binding and arguments, returning
	// the result value. ok is false if fn is not callable.
	Call(fn any, this any, args []any) (result any, ok bool)

	// Construct invokes fn as a constructor with an explicit newTarget,
	// per Reflect.construct's requirement to resolve newTarget.prototype
	// before instance allocation (spec.md §4.7).
	Construct(fn any, args []any, newTarget any) (result any, ok bool)

	// IsCallable reports whether v can be passed to Call.
	IsCallable(v any) bool

	// IsConstructor reports whether v can be passed to Construct.
	IsConstructor(v any) bool
}

// CompiledPattern is an opaque regular expression returned by RegExpCompiler.
// pkg/runtime never inspects it; it only stores and forwards it.
type CompiledPattern any

// RegExpCompiler compiles RegExp source/flags into an opaque pattern.
// Out of scope per spec.md §1; referenced only as a collaborator interface.
type RegExpCompiler interface {
	Compile(source, flags string) (CompiledPattern, error)
}

// MicrotaskQueue is the queuing contract for Promise reactions and other
// microtasks enqueued from within this core (spec.md §4.8, §5).
type MicrotaskQueue interface {
	Enqueue(job func())
}
