package runtime

import "testing"

func TestArrayPushPopShiftUnshift(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))

	newLen, ok := ArrayPush(ctx, arr, []Value{NumberValue(1), NumberValue(2), NumberValue(3)})
	if !ok || newLen != 3 {
		t.Fatalf("ArrayPush = (%v, %v), want (3, true)", newLen, ok)
	}

	popped := ArrayPop(ctx, arr)
	if !SameValue(popped, NumberValue(3)) {
		t.Fatalf("ArrayPop = %v, want 3", popped)
	}
	if arr.ArrayLength() != 2 {
		t.Fatalf("length after pop = %d, want 2", arr.ArrayLength())
	}

	shifted := ArrayShift(ctx, arr)
	if !SameValue(shifted, NumberValue(1)) {
		t.Fatalf("ArrayShift = %v, want 1", shifted)
	}
	if got := arr.Get(ctx, IndexKey(0), arr); !SameValue(got, NumberValue(2)) {
		t.Fatalf("arr[0] after shift = %v, want 2", got)
	}

	newLen, ok = ArrayUnshift(ctx, arr, []Value{NumberValue(0)})
	if !ok || newLen != 2 {
		t.Fatalf("ArrayUnshift = (%v, %v), want (2, true)", newLen, ok)
	}
	if got := arr.Get(ctx, IndexKey(0), arr); !SameValue(got, NumberValue(0)) {
		t.Fatalf("arr[0] after unshift = %v, want 0", got)
	}
}

func TestArrayLengthExtendsOnIndexedWrite(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))
	arr.Set(ctx, IndexKey(5), NumberValue(9), arr)
	if arr.ArrayLength() != 6 {
		t.Fatalf("length after writing index 5 = %d, want 6", arr.ArrayLength())
	}
	if got := arr.Get(ctx, IndexKey(3), arr); !IsUndefined(got) {
		t.Fatalf("holes should read as undefined, got %v", got)
	}
}

// TestArrayLengthCoercionOrder covers scenario 1: defineProperty(a, 'length',
// {value: '1'}) against a non-writable length must coerce the string value
// before checking writability, and must fail without mutating length.
func TestArrayLengthCoercionOrder(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))

	narrowDesc := Descriptor{Writable: false, HasWritable: true}
	if !arr.DefineOwnProperty(ctx, StringKey("length"), narrowDesc) {
		t.Fatalf("narrowing length to non-writable should succeed")
	}

	attempt := Descriptor{Value: StringValue("1"), HasValue: true}
	if arr.DefineOwnProperty(ctx, StringKey("length"), attempt) {
		t.Fatalf("defineProperty(length, '1') must fail on a non-writable length")
	}
	if arr.ArrayLength() != 0 {
		t.Fatalf("length must remain 0 after the rejected define, got %d", arr.ArrayLength())
	}
}

// TestArrayShrinkStopsAtNonConfigurableIndex covers scenario 2: shrinking
// length past a non-configurable index must stop there, leaving the index
// and everything below it intact, and the define itself must report failure.
func TestArrayShrinkStopsAtNonConfigurableIndex(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))
	ArrayPush(ctx, arr, []Value{NumberValue(10), NumberValue(20), NumberValue(30)})

	nonConfig := Descriptor{Configurable: false, HasConfig: true}
	if !arr.DefineOwnProperty(ctx, IndexKey(1), nonConfig) {
		t.Fatalf("marking index 1 non-configurable should succeed")
	}

	shrink := Descriptor{Value: NumberValue(0), HasValue: true}
	if arr.DefineOwnProperty(ctx, StringKey("length"), shrink) {
		t.Fatalf("shrinking to 0 past a non-configurable index must fail")
	}
	if arr.ArrayLength() != 2 {
		t.Fatalf("length must stop at 2 (index 1 + 1), got %d", arr.ArrayLength())
	}
	if got := arr.Get(ctx, IndexKey(0), arr); !SameValue(got, NumberValue(10)) {
		t.Fatalf("arr[0] should survive the partial shrink, got %v", got)
	}
	if got := arr.Get(ctx, IndexKey(1), arr); !SameValue(got, NumberValue(20)) {
		t.Fatalf("arr[1] should survive the partial shrink, got %v", got)
	}
	if got := arr.Get(ctx, IndexKey(2), arr); !IsUndefined(got) {
		t.Fatalf("arr[2] should have been removed by the partial shrink, got %v", got)
	}
}

func TestArrayDenseToSparseTransition(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))
	// A large index forces the sparse map rather than growing the dense
	// vector to match.
	arr.Set(ctx, IndexKey(1<<20), NumberValue(7), arr)
	if arr.ArrayLength() != (1<<20)+1 {
		t.Fatalf("length after sparse write = %d", arr.ArrayLength())
	}
	if got := arr.Get(ctx, IndexKey(1<<20), arr); !SameValue(got, NumberValue(7)) {
		t.Fatalf("sparse index readback = %v, want 7", got)
	}
	if got := arr.Get(ctx, IndexKey(100), arr); !IsUndefined(got) {
		t.Fatalf("unwritten index between dense and sparse should read undefined, got %v", got)
	}
}

// TestArrayDefinePropertyNarrowsAttributesWithoutClobberingValue guards
// against an attribute-only defineProperty on an existing index resetting
// its value to undefined: the element must migrate into the shape with its
// current value intact, and the new attribute (here, non-configurable)
// must actually be recorded so a later shrink/delete respects it.
func TestArrayDefinePropertyNarrowsAttributesWithoutClobberingValue(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))
	ArrayPush(ctx, arr, []Value{NumberValue(10), NumberValue(20), NumberValue(30)})

	nonConfig := Descriptor{Configurable: false, HasConfig: true}
	if !arr.DefineOwnProperty(ctx, IndexKey(1), nonConfig) {
		t.Fatalf("marking index 1 non-configurable should succeed")
	}
	if got := arr.Get(ctx, IndexKey(1), arr); !SameValue(got, NumberValue(20)) {
		t.Fatalf("arr[1] must keep its value after an attribute-only defineProperty, got %v", got)
	}
	if arr.Delete(ctx, IndexKey(1)) {
		t.Fatalf("delete should fail: index 1's non-configurability must have been recorded")
	}
	if got := arr.Get(ctx, IndexKey(1), arr); !SameValue(got, NumberValue(20)) {
		t.Fatalf("arr[1] should survive the rejected delete, got %v", got)
	}
}
