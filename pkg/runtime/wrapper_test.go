package runtime

import "testing"

func TestWrapperObjectPrimitiveValue(t *testing.T) {
	ctx := newTestContext()
	w := NewWrapperObject(ctx.ObjectPrototype(), "Number", NumberValue(7))

	v, ok := w.PrimitiveValue()
	if !ok {
		t.Fatalf("PrimitiveValue() ok = false, want true")
	}
	if !SameValue(v, NumberValue(7)) {
		t.Fatalf("PrimitiveValue() = %v, want 7", v)
	}
}

func TestWrapperObjectToPrimitiveUsesWrappedValue(t *testing.T) {
	ctx := newTestContext()
	w := NewWrapperObject(ctx.ObjectPrototype(), "Boolean", BoolValue(true))

	got := ToBoolean(w)
	if !got {
		t.Fatalf("ToBoolean on a wrapper object is true for any object, but primitive extraction is the point of ToPrimitive, not ToBoolean")
	}

	prim := ToPrimitive(ctx, w, HintDefault)
	if ctx.HasPendingException() {
		t.Fatalf("unexpected pending exception extracting wrapper primitive: %v", ctx.PendingException())
	}
	if !SameValue(prim, BoolValue(true)) {
		t.Fatalf("ToPrimitive(wrapper) = %v, want true", prim)
	}
}

func TestWrapperObjectHasNoIndexedOverrides(t *testing.T) {
	ctx := newTestContext()
	w := NewWrapperObject(ctx.ObjectPrototype(), "Number", NumberValue(1))
	if _, ok := w.GetOwnProperty(ctx, IndexKey(0)); ok {
		t.Fatalf("a Number/Boolean/Symbol/BigInt wrapper must dispatch as an ordinary object with no indexed own properties, got kind %v", w.ExoticKind())
	}
}
