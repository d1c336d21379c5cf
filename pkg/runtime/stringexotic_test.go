package runtime

import "testing"

func TestStringExoticIndexedRead(t *testing.T) {
	ctx := newTestContext()
	s := NewStringExotic(ctx.ObjectPrototype(), NewString("abc"))

	got := s.Get(ctx, IndexKey(1), s)
	if !SameValue(got, StringValue("b")) {
		t.Fatalf("s[1] = %v, want \"b\"", got)
	}
	if got := s.Get(ctx, IndexKey(99), s); !IsUndefined(got) {
		t.Fatalf("out-of-range index should read undefined, got %v", got)
	}
}

func TestStringExoticIndexedWriteFails(t *testing.T) {
	ctx := newTestContext()
	s := NewStringExotic(ctx.ObjectPrototype(), NewString("abc"))

	if s.Set(ctx, IndexKey(0), StringValue("z"), s) {
		t.Fatalf("writing an in-range string index must fail")
	}
	if got := s.Get(ctx, IndexKey(0), s); !SameValue(got, StringValue("a")) {
		t.Fatalf("string content must be unchanged after a rejected write, got %v", got)
	}
}

func TestStringExoticIndexedDeleteFails(t *testing.T) {
	ctx := newTestContext()
	s := NewStringExotic(ctx.ObjectPrototype(), NewString("abc"))
	if s.Delete(ctx, IndexKey(0)) {
		t.Fatalf("deleting an in-range string index must fail")
	}
}

func TestStringExoticLength(t *testing.T) {
	ctx := newTestContext()
	s := NewStringExotic(ctx.ObjectPrototype(), NewString("hello"))
	got := s.Get(ctx, StringKey("length"), s)
	if !SameValue(got, NumberValue(5)) {
		t.Fatalf("length = %v, want 5", got)
	}
}

func TestStringExoticRedefineExactMatchOnly(t *testing.T) {
	ctx := newTestContext()
	s := NewStringExotic(ctx.ObjectPrototype(), NewString("abc"))

	exact := CompleteDataDescriptor()
	exact.Value = StringValue("a")
	exact.Enumerable = true
	if !s.DefineOwnProperty(ctx, IndexKey(0), exact) {
		t.Fatalf("redefining with the identical descriptor must succeed")
	}

	loosened := CompleteDataDescriptor()
	loosened.Value = StringValue("a")
	loosened.Configurable = true
	if s.DefineOwnProperty(ctx, IndexKey(0), loosened) {
		t.Fatalf("loosening configurability on a string index must fail")
	}
}
