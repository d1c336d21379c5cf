package runtime

import "testing"

func TestReflectGetSetHas(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	desc := CompleteDataDescriptor()
	desc.Value = NumberValue(1)
	desc.Writable, desc.Enumerable, desc.Configurable = true, true, true
	obj.DefineOwnProperty(ctx, StringKey("a"), desc)

	if got := ReflectGet(ctx, obj, StringValue("a"), obj); !SameValue(got, NumberValue(1)) {
		t.Fatalf("ReflectGet = %v, want 1", got)
	}
	if !ReflectSet(ctx, obj, StringValue("a"), NumberValue(2), obj) {
		t.Fatalf("ReflectSet should succeed on a writable property")
	}
	if !ReflectHas(ctx, obj, StringValue("a")) {
		t.Fatalf("ReflectHas should report true for an own property")
	}
	if !ReflectDeleteProperty(ctx, obj, StringValue("a")) {
		t.Fatalf("ReflectDeleteProperty should succeed on a configurable property")
	}
	if ReflectHas(ctx, obj, StringValue("a")) {
		t.Fatalf("property should be gone after ReflectDeleteProperty")
	}
}

func TestReflectGetOnNonObjectThrows(t *testing.T) {
	ctx := newTestContext()
	ReflectGet(ctx, NumberValue(1), StringValue("x"), NumberValue(1))
	if !ctx.HasPendingException() {
		t.Fatalf("Reflect.get on a non-object target must throw")
	}
}

func TestReflectIsExtensiblePreventExtensions(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	if !ReflectIsExtensible(ctx, obj) {
		t.Fatalf("a fresh object should be extensible")
	}
	if !ReflectPreventExtensions(ctx, obj) {
		t.Fatalf("ReflectPreventExtensions should succeed")
	}
	if ReflectIsExtensible(ctx, obj) {
		t.Fatalf("object should no longer be extensible")
	}
}

func TestReflectGetPrototypeOfSetPrototypeOf(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	newProto := NewOrdinaryObject(ctx.ObjectPrototype())

	if !ReflectSetPrototypeOf(ctx, obj, newProto) {
		t.Fatalf("ReflectSetPrototypeOf should succeed")
	}
	got := ReflectGetPrototypeOf(ctx, obj)
	if got != Value(newProto) {
		t.Fatalf("ReflectGetPrototypeOf should return the newly set prototype")
	}
}

func TestReflectOwnKeys(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	desc := CompleteDataDescriptor()
	desc.Enumerable = true
	obj.DefineOwnProperty(ctx, StringKey("a"), desc)
	obj.DefineOwnProperty(ctx, StringKey("b"), desc)

	keys := ReflectOwnKeys(ctx, obj)
	if len(keys) != 2 {
		t.Fatalf("ReflectOwnKeys returned %d keys, want 2", len(keys))
	}
}

func TestReflectConstructRejectsNonObjectResult(t *testing.T) {
	ctx := newExecutingContext()
	ctor := newNativeFunction(ctx, func(this any, args []any) any {
		return NumberValue(5)
	})
	ctor.SetCallable(ctor.FnHandle(), true)

	ReflectConstruct(ctx, ctor, nil, ctor)
	if !ctx.HasPendingException() {
		t.Fatalf("Reflect.construct must throw when the constructor returns a non-object")
	}
}
