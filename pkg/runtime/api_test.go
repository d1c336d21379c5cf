package runtime

import "testing"

func TestValueGetSetDefaultReceiver(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	desc := CompleteDataDescriptor()
	desc.Writable, desc.Enumerable, desc.Configurable = true, true, true
	ValueDefineOwn(ctx, obj, StringKey("a"), desc)

	if !ValueSet(ctx, obj, StringKey("a"), NumberValue(1), nil) {
		t.Fatalf("ValueSet with a nil receiver should default to the object itself")
	}
	if got := ValueGet(ctx, obj, StringKey("a"), nil); !SameValue(got, NumberValue(1)) {
		t.Fatalf("ValueGet = %v, want 1", got)
	}
}

func TestValueSetStrictModeThrowsOnRejection(t *testing.T) {
	ctx := newTestContext()
	ctx.SetStrictMode(true)
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	desc := CompleteDataDescriptor()
	desc.Value = NumberValue(1) // not writable
	ValueDefineOwn(ctx, obj, StringKey("a"), desc)

	if ValueSet(ctx, obj, StringKey("a"), NumberValue(2), nil) {
		t.Fatalf("ValueSet must report failure for a non-writable property")
	}
	if !ctx.HasPendingException() {
		t.Fatalf("strict-mode ValueSet must convert a rejected Set into a TypeError")
	}
}

func TestValueSetSloppyModeNoThrowOnRejection(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	desc := CompleteDataDescriptor()
	desc.Value = NumberValue(1)
	ValueDefineOwn(ctx, obj, StringKey("a"), desc)

	if ValueSet(ctx, obj, StringKey("a"), NumberValue(2), nil) {
		t.Fatalf("ValueSet must report failure for a non-writable property")
	}
	if ctx.HasPendingException() {
		t.Fatalf("sloppy-mode ValueSet must not throw on a rejected Set")
	}
}

func TestProxyNewRejectsNonObjectArgs(t *testing.T) {
	ctx := newTestContext()
	_, ok := ProxyNew(ctx, NumberValue(1), NewOrdinaryObject(ctx.ObjectPrototype()))
	if ok {
		t.Fatalf("ProxyNew must reject a non-object target")
	}
	if !ctx.HasPendingException() {
		t.Fatalf("ProxyNew must set a pending exception for a non-object target")
	}
}

func TestArrayNewPreallocatesLength(t *testing.T) {
	ctx := newTestContext()
	arr := ArrayNew(ctx, 5)
	if arr.ArrayLength() != 5 {
		t.Fatalf("ArrayNew(5).ArrayLength() = %d, want 5", arr.ArrayLength())
	}
	if got := arr.Get(ctx, IndexKey(0), arr); !IsUndefined(got) {
		t.Fatalf("a preallocated array must read holes as undefined, got %v", got)
	}
}
