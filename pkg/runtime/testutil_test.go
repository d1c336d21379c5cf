package runtime

import "github.com/ecma-go/ecmacore/pkg/host"

// fakeExecutor is a minimal host.Executor for exercising getter/setter/trap
// invocation in tests, without a real lexer/parser/bytecode layer. Callable
// handles are plain Go closures of this shape.
type fakeExecutor struct{}

type nativeFn func(this any, args []any) any

func (fakeExecutor) Call(fn any, this any, args []any) (any, bool) {
	f, ok := fn.(nativeFn)
	if !ok {
		return nil, false
	}
	return f(this, args), true
}

func (fakeExecutor) Construct(fn any, args []any, newTarget any) (any, bool) {
	f, ok := fn.(nativeFn)
	if !ok {
		return nil, false
	}
	return f(newTarget, args), true
}

func (fakeExecutor) IsCallable(v any) bool    { _, ok := v.(nativeFn); return ok }
func (fakeExecutor) IsConstructor(v any) bool { _, ok := v.(nativeFn); return ok }

var _ host.Executor = fakeExecutor{}

func newExecutingContext() *Context {
	return NewContext(DefaultConfig(), fakeExecutor{}, nil, nil)
}

// newNativeFunction builds a callable Object whose body is a Go closure,
// for getter/setter/trap fixtures.
func newNativeFunction(ctx *Context, fn nativeFn) *Object {
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	obj.SetCallable(fn, false)
	return obj
}
