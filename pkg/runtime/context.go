package runtime

import (
	"github.com/ecma-go/ecmacore/internal/jserr"
	"github.com/ecma-go/ecmacore/pkg/host"
)

// wellKnownNames lists the well-known symbols allocated once per Context
// (spec.md §4.8, §9 "Global mutable state"). Only the ones this core's
// operations actually consult are pre-wired; others are reserved for an
// embedder's builtins layer to use via WellKnownSymbol.
var wellKnownNames = []string{
	"toPrimitive", "iterator", "asyncIterator", "hasInstance",
	"isConcatSpreadable", "species", "toStringTag", "unscopables",
	"match", "replace", "search", "split",
}

// Context is the collaboration surface to the Executor (spec.md §4.8): the
// global object, the prototype registry, the pending-exception slot, strict
// mode, a re-entrancy/cycle guard, and well-known symbols. A Context is not
// safe for concurrent use (spec.md §5): exactly one logical execution
// thread drives it at a time.
type Context struct {
	Config Config

	global      *Object
	prototypes  map[string]*Object
	wellKnown   map[string]*Symbol

	pendingException Value
	strictMode       bool

	chainDepth int
	callDepth  int

	executor       host.Executor
	regexpCompiler host.RegExpCompiler
	microtasks     host.MicrotaskQueue
}

// NewContext creates a Context with the given config and collaborators. Any
// of executor/regexpCompiler/microtasks may be nil, so a core-only embedder
// (as in most of this package's own tests) can construct a Context with all
// three nil: without an executor, CallFunction/ConstructFunction set a
// TypeError pending exception instead of panicking; without a RegExp
// compiler, CompileRegExp returns a TypeError-kind Go error; without a
// microtask queue, EnqueueMicrotask drops the job.
func NewContext(cfg Config, executor host.Executor, regexpCompiler host.RegExpCompiler, microtasks host.MicrotaskQueue) *Context {
	ctx := &Context{
		Config:         cfg.withDefaults(),
		prototypes:     make(map[string]*Object),
		wellKnown:      make(map[string]*Symbol),
		executor:       executor,
		regexpCompiler: regexpCompiler,
		microtasks:     microtasks,
	}
	for _, name := range wellKnownNames {
		ctx.wellKnown[name] = &Symbol{WellKnown: name}
	}
	objectProto := NewOrdinaryObject(nil)
	objectProto.SetClass("Object")
	ctx.prototypes["Object"] = objectProto

	arrayProto := NewOrdinaryObject(objectProto)
	arrayProto.SetClass("Array")
	ctx.prototypes["Array"] = arrayProto

	for _, kind := range errorKindNames {
		proto := NewOrdinaryObject(objectProto)
		proto.SetClass(kind)
		proto.defineNamedValue("name", StringValue(kind))
		proto.defineNamedValue("message", StringValue(""))
		ctx.prototypes[kind] = proto
	}

	ctx.global = NewOrdinaryObject(objectProto)
	ctx.global.SetClass("global")
	ctx.strictMode = ctx.Config.StrictMode
	return ctx
}

// errorKindNames lists the built-in error constructors whose prototypes a
// Context pre-registers, so thrown jserr.Error values always resolve a
// real prototype (spec.md §7 error taxonomy).
var errorKindNames = []string{
	"TypeError", "RangeError", "SyntaxError", "ReferenceError",
	"URIError", "EvalError", "AggregateError",
}

// Global returns the global object.
func (ctx *Context) Global() *Object { return ctx.global }

// RegisterPrototype installs a named prototype object, used by constructor
// helpers (spec.md §4.8 "a registry name -> prototype object").
func (ctx *Context) RegisterPrototype(name string, proto *Object) {
	ctx.prototypes[name] = proto
}

// Prototype looks up a registered prototype by name, or nil.
func (ctx *Context) Prototype(name string) *Object { return ctx.prototypes[name] }

// ObjectPrototype is a convenience accessor for the always-registered
// "Object" prototype.
func (ctx *Context) ObjectPrototype() *Object { return ctx.prototypes["Object"] }

// WellKnownSymbol returns the Context-local identity for a well-known
// symbol name (e.g. "toPrimitive", "iterator"); allocated once at Context
// construction and referenced by pointer identity thereafter.
func (ctx *Context) WellKnownSymbol(name string) *Symbol {
	if sym, ok := ctx.wellKnown[name]; ok {
		return sym
	}
	sym := &Symbol{WellKnown: name}
	ctx.wellKnown[name] = sym
	return sym
}

// StrictMode reports the Context's current strict-mode setting.
func (ctx *Context) StrictMode() bool { return ctx.strictMode }
func (ctx *Context) SetStrictMode(strict bool) { ctx.strictMode = strict }

// ---------------------------------------------------------------------------
// Pending-exception slot (spec.md §7 propagation policy).
// ---------------------------------------------------------------------------

func (ctx *Context) HasPendingException() bool { return ctx.pendingException != nil }

func (ctx *Context) PendingException() Value { return ctx.pendingException }

func (ctx *Context) ClearPendingException() {
	ctx.pendingException = nil
}

// SetPendingException sets the pending-exception slot directly to an
// arbitrary thrown value (JS `throw` is not restricted to Error objects).
func (ctx *Context) SetPendingException(v Value) {
	ctx.pendingException = v
}

// throwErrorValue wraps a jserr.Error as a thrown Value: a lightweight
// ordinary object carrying name/message (what jserr.Error already models),
// whose prototype is whatever object is registered under the error's name
// at throw time (NewContext pre-registers one per kind; RegisterPrototype
// can replace it).
func (ctx *Context) throwErrorValue(e *jserr.Error) {
	obj := NewOrdinaryObject(ctx.prototypes[string(e.Name)])
	obj.SetClass(string(e.Name))
	obj.defineNamedValue("name", StringValue(string(e.Name)))
	obj.defineNamedValue("message", StringValue(e.Message))
	ctx.pendingException = obj
}

func (ctx *Context) ThrowTypeError(format string, args ...any) {
	ctx.throwErrorValue(jserr.NewTypeError(format, args...))
}
func (ctx *Context) ThrowRangeError(format string, args ...any) {
	ctx.throwErrorValue(jserr.NewRangeError(format, args...))
}
func (ctx *Context) ThrowSyntaxError(format string, args ...any) {
	ctx.throwErrorValue(jserr.NewSyntaxError(format, args...))
}
func (ctx *Context) ThrowReferenceError(format string, args ...any) {
	ctx.throwErrorValue(jserr.NewReferenceError(format, args...))
}

// ---------------------------------------------------------------------------
// Re-entrancy / cycle guard (spec.md §5, §9).
// ---------------------------------------------------------------------------

// enterChain increments the prototype-chain / re-entrant-call depth and
// reports whether the new depth is still within Config.MaxCallStackDepth;
// on overflow it sets a RangeError pending exception and returns false.
func (ctx *Context) enterChain() bool {
	ctx.chainDepth++
	if ctx.chainDepth > ctx.Config.MaxCallStackDepth {
		ctx.chainDepth--
		ctx.ThrowRangeError("Maximum call stack size exceeded")
		return false
	}
	return true
}

func (ctx *Context) exitChain() {
	if ctx.chainDepth > 0 {
		ctx.chainDepth--
	}
}

// ---------------------------------------------------------------------------
// Executor bridge.
// ---------------------------------------------------------------------------

// IsCallable reports whether v is an Object marked callable.
func (ctx *Context) IsCallable(v Value) bool {
	obj, ok := v.(*Object)
	return ok && obj.IsCallable()
}

// IsConstructor reports whether v is an Object marked constructable.
func (ctx *Context) IsConstructor(v Value) bool {
	obj, ok := v.(*Object)
	return ok && obj.IsConstructable()
}

// CallFunction invokes fn(this, args...) through the configured Executor.
// Used for getter/setter/@@toPrimitive/trap invocation throughout this
// package. If fn is not callable or no Executor is configured, it sets a
// TypeError pending exception and returns Undefined.
func (ctx *Context) CallFunction(fn Value, this Value, args []Value) Value {
	obj, ok := fn.(*Object)
	if !ok || !obj.IsCallable() {
		ctx.ThrowTypeError("value is not a function")
		return Undefined
	}
	if ctx.executor == nil {
		ctx.ThrowTypeError("no executor configured to invoke function")
		return Undefined
	}
	if !ctx.enterChain() {
		return Undefined
	}
	defer ctx.exitChain()

	hostArgs := make([]any, len(args))
	for i, a := range args {
		hostArgs[i] = a
	}
	result, ok := ctx.executor.Call(obj.FnHandle(), this, hostArgs)
	if !ok {
		ctx.ThrowTypeError("function call failed")
		return Undefined
	}
	if v, ok := result.(Value); ok {
		return v
	}
	return Undefined
}

// ConstructFunction invokes fn as a constructor with an explicit newTarget
// through the configured Executor. It does not read newTarget.prototype
// itself; newTarget is handed to the Executor's Construct, which allocates
// the instance.
func (ctx *Context) ConstructFunction(fn Value, args []Value, newTarget Value) (Value, bool) {
	obj, ok := fn.(*Object)
	if !ok || !obj.IsConstructable() {
		ctx.ThrowTypeError("value is not a constructor")
		return Undefined, false
	}
	if ctx.executor == nil {
		ctx.ThrowTypeError("no executor configured to invoke constructor")
		return Undefined, false
	}
	hostArgs := make([]any, len(args))
	for i, a := range args {
		hostArgs[i] = a
	}
	result, ok := ctx.executor.Construct(obj.FnHandle(), hostArgs, newTarget)
	if !ok {
		ctx.ThrowTypeError("construct call failed")
		return Undefined, false
	}
	v, ok := result.(Value)
	if !ok {
		return Undefined, false
	}
	return v, true
}

// EnqueueMicrotask forwards to the configured MicrotaskQueue, if any.
func (ctx *Context) EnqueueMicrotask(job func()) {
	if ctx.microtasks != nil {
		ctx.microtasks.Enqueue(job)
	}
}

// CompileRegExp forwards to the configured RegExpCompiler, if any.
func (ctx *Context) CompileRegExp(source, flags string) (host.CompiledPattern, error) {
	if ctx.regexpCompiler == nil {
		return nil, jserr.NewTypeError("no RegExp compiler configured")
	}
	return ctx.regexpCompiler.Compile(source, flags)
}
