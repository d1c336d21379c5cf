package runtime

import "testing"

func TestNewContextRegistersErrorPrototypes(t *testing.T) {
	ctx := newTestContext()
	for _, kind := range errorKindNames {
		if ctx.Prototype(kind) == nil {
			t.Fatalf("prototype for %s should be registered", kind)
		}
	}
	if ctx.Prototype("Array") == nil {
		t.Fatalf("Array prototype should be registered")
	}
}

func TestThrowTypeErrorResolvesRealPrototype(t *testing.T) {
	ctx := newTestContext()
	ctx.ThrowTypeError("boom %d", 1)
	if !ctx.HasPendingException() {
		t.Fatalf("ThrowTypeError should set a pending exception")
	}
	thrown, ok := ctx.PendingException().(*Object)
	if !ok {
		t.Fatalf("thrown value should be an Object, got %T", ctx.PendingException())
	}
	if thrown.GetPrototypeOf(ctx) != ctx.Prototype("TypeError") {
		t.Fatalf("thrown TypeError must chain to the registered TypeError prototype")
	}
	if got := thrown.Get(ctx, StringKey("message"), thrown); !SameValue(got, StringValue("boom 1")) {
		t.Fatalf("message = %v, want \"boom 1\"", got)
	}
}

func TestClearPendingException(t *testing.T) {
	ctx := newTestContext()
	ctx.ThrowRangeError("overflow")
	if !ctx.HasPendingException() {
		t.Fatalf("expected a pending exception")
	}
	ctx.ClearPendingException()
	if ctx.HasPendingException() {
		t.Fatalf("ClearPendingException should clear the slot")
	}
}

func TestWellKnownSymbolStableIdentity(t *testing.T) {
	ctx := newTestContext()
	a := ctx.WellKnownSymbol("iterator")
	b := ctx.WellKnownSymbol("iterator")
	if a != b {
		t.Fatalf("WellKnownSymbol should return the same identity across calls")
	}
}

func TestCallFunctionWithoutExecutorThrows(t *testing.T) {
	ctx := newTestContext()
	fn := NewOrdinaryObject(ctx.ObjectPrototype())
	fn.SetCallable(nil, false)
	ctx.CallFunction(fn, Undefined, nil)
	if !ctx.HasPendingException() {
		t.Fatalf("CallFunction with no executor configured must throw")
	}
}

func TestCallFunctionWithExecutorRuns(t *testing.T) {
	ctx := newExecutingContext()
	fn := newNativeFunction(ctx, func(this any, args []any) any {
		return NumberValue(41)
	})
	got := ctx.CallFunction(fn, Undefined, nil)
	if ctx.HasPendingException() {
		t.Fatalf("unexpected pending exception: %v", ctx.PendingException())
	}
	if !SameValue(got, NumberValue(41)) {
		t.Fatalf("CallFunction result = %v, want 41", got)
	}
}

func TestEnterChainOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallStackDepth = 2
	ctx := NewContext(cfg, nil, nil, nil)
	if !ctx.enterChain() {
		t.Fatalf("first enterChain should succeed")
	}
	if !ctx.enterChain() {
		t.Fatalf("second enterChain should succeed")
	}
	if ctx.enterChain() {
		t.Fatalf("third enterChain should overflow the configured depth")
	}
	if !ctx.HasPendingException() {
		t.Fatalf("overflow should set a pending exception")
	}
}
