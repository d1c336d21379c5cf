package runtime

import (
	"math"
	"testing"
)

func newTestContext() *Context {
	return NewContext(DefaultConfig(), nil, nil, nil)
}

func TestToNumber(t *testing.T) {
	ctx := newTestContext()
	cases := []struct {
		name string
		in   Value
		want float64
	}{
		{"undefined", Undefined, math.NaN()},
		{"null", Null, 0},
		{"true", BoolValue(true), 1},
		{"false", BoolValue(false), 0},
		{"empty string", StringValue(""), 0},
		{"whitespace string", StringValue("   "), 0},
		{"decimal string", StringValue("42.5"), 42.5},
		{"hex string", StringValue("0x1F"), 31},
		{"octal string", StringValue("0o17"), 15},
		{"binary string", StringValue("0b101"), 5},
		{"infinity string", StringValue("Infinity"), math.Inf(1)},
		{"negative infinity string", StringValue("-Infinity"), math.Inf(-1)},
		{"garbage string", StringValue("not a number"), math.NaN()},
		{"number passthrough", NumberValue(7), 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ToNumber(ctx, c.in)
			if math.IsNaN(c.want) {
				if !math.IsNaN(got) {
					t.Fatalf("ToNumber(%v) = %v, want NaN", c.in, got)
				}
				return
			}
			if got != c.want {
				t.Fatalf("ToNumber(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestToStringRoundTrip(t *testing.T) {
	ctx := newTestContext()
	for _, n := range []float64{0, -0, 1, -1, 100, 0.1, 1e21, 1e-7, math.Inf(1), math.Inf(-1)} {
		s := ToString(ctx, NumberValue(n))
		back := ToNumber(ctx, StringValue(s))
		if n == 0 {
			if back != 0 {
				t.Fatalf("round-trip zero failed: %q -> %v", s, back)
			}
			continue
		}
		if back != n {
			t.Fatalf("round-trip failed for %v: formatted %q, parsed back %v", n, s, back)
		}
	}
}

func TestToStringNaNAndInfinity(t *testing.T) {
	ctx := newTestContext()
	if got := ToString(ctx, NumberValue(math.NaN())); got != "NaN" {
		t.Fatalf("ToString(NaN) = %q, want NaN", got)
	}
	if got := ToString(ctx, NumberValue(math.Inf(1))); got != "Infinity" {
		t.Fatalf("ToString(+Inf) = %q, want Infinity", got)
	}
	if got := ToString(ctx, NumberValue(math.Inf(-1))); got != "-Infinity" {
		t.Fatalf("ToString(-Inf) = %q, want -Infinity", got)
	}
}

func TestToBoolean(t *testing.T) {
	ctx := newTestContext()
	cases := []struct {
		in   Value
		want bool
	}{
		{Undefined, false},
		{Null, false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{NumberValue(0), false},
		{NumberValue(math.NaN()), false},
		{NumberValue(1), true},
		{StringValue(""), false},
		{StringValue("0"), true},
		{NewOrdinaryObject(ctx.ObjectPrototype()), true},
	}
	for _, c := range cases {
		if got := ToBoolean(c.in); got != c.want {
			t.Fatalf("ToBoolean(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToBooleanHTMLDDA(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	obj.MarkHTMLDDA()
	if ToBoolean(obj) {
		t.Fatalf("an HTMLDDA object must coerce to false")
	}
}

func TestToInt32AndToUint32(t *testing.T) {
	ctx := newTestContext()
	cases := []struct {
		in       float64
		wantI32  int32
		wantU32  uint32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{-1, -1, 4294967295},
		{4294967296, 0, 0},
		{4294967297, 1, 1},
		{math.NaN(), 0, 0},
	}
	for _, c := range cases {
		if got := ToInt32(ctx, NumberValue(c.in)); got != c.wantI32 {
			t.Fatalf("ToInt32(%v) = %v, want %v", c.in, got, c.wantI32)
		}
		if got := ToUint32(ctx, NumberValue(c.in)); got != c.wantU32 {
			t.Fatalf("ToUint32(%v) = %v, want %v", c.in, got, c.wantU32)
		}
	}
}

func TestSameValueNaNAndZero(t *testing.T) {
	nan := NumberValue(math.NaN())
	if !SameValue(nan, nan) {
		t.Fatalf("SameValue(NaN, NaN) must be true")
	}
	posZero := NumberValue(0)
	negZero := NumberValue(math.Copysign(0, -1))
	if SameValue(posZero, negZero) {
		t.Fatalf("SameValue(+0, -0) must be false")
	}
	if !SameValueZero(posZero, negZero) {
		t.Fatalf("SameValueZero(+0, -0) must be true")
	}
}

func TestStrictEquals(t *testing.T) {
	if StrictEquals(NumberValue(math.NaN()), NumberValue(math.NaN())) {
		t.Fatalf("NaN === NaN must be false")
	}
	if !StrictEquals(StringValue("a"), StringValue("a")) {
		t.Fatalf(`"a" === "a" must be true`)
	}
	if StrictEquals(NumberValue(1), StringValue("1")) {
		t.Fatalf("1 === '1' must be false (no coercion)")
	}
}

func TestAbstractEqualsCoercion(t *testing.T) {
	ctx := newTestContext()
	if ok, _ := abstractEqualsChecked(ctx, NumberValue(1), StringValue("1")); !ok {
		t.Fatalf("1 == '1' must be true")
	}
	if ok, _ := abstractEqualsChecked(ctx, BoolValue(true), NumberValue(1)); !ok {
		t.Fatalf("true == 1 must be true")
	}
	if ok, _ := abstractEqualsChecked(ctx, Null, Undefined); !ok {
		t.Fatalf("null == undefined must be true")
	}
}

func abstractEqualsChecked(ctx *Context, a, b Value) (bool, error) {
	return AbstractEquals(ctx, a, b), nil
}

func TestAbstractEqualsHTMLDDA(t *testing.T) {
	ctx := newTestContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	obj.MarkHTMLDDA()
	if !AbstractEquals(ctx, obj, Null) {
		t.Fatalf("an HTMLDDA object must compare loosely equal to null")
	}
	if !AbstractEquals(ctx, obj, Undefined) {
		t.Fatalf("an HTMLDDA object must compare loosely equal to undefined")
	}
}

func TestLessThan(t *testing.T) {
	ctx := newTestContext()
	if result, defined := LessThan(ctx, NumberValue(1), NumberValue(2)); !defined || !result {
		t.Fatalf("1 < 2 must be true")
	}
	if _, defined := LessThan(ctx, NumberValue(math.NaN()), NumberValue(1)); defined {
		t.Fatalf("NaN < 1 must be undefined")
	}
	if result, defined := LessThan(ctx, StringValue("a"), StringValue("b")); !defined || !result {
		t.Fatalf(`"a" < "b" must be true`)
	}
}

func TestToLengthClamps(t *testing.T) {
	ctx := newTestContext()
	if got := ToLength(ctx, NumberValue(-5)); got != 0 {
		t.Fatalf("ToLength(-5) = %v, want 0", got)
	}
	if got := ToLength(ctx, NumberValue(math.Inf(1))); got != maxSafeInteger {
		t.Fatalf("ToLength(Infinity) = %v, want maxSafeInteger", got)
	}
}

// TestToPrimitiveSymbolToPrimitivePrecedence is scenario 5: an object whose
// @@toPrimitive returns "x" must win over valueOf/toString regardless of hint.
func TestToPrimitiveSymbolToPrimitivePrecedence(t *testing.T) {
	ctx := newExecutingContext()
	obj := NewOrdinaryObject(ctx.ObjectPrototype())

	valueOf := newNativeFunction(ctx, func(this any, args []any) any {
		t.Fatalf("valueOf must not be called when @@toPrimitive is present")
		return nil
	})
	desc := CompleteDataDescriptor()
	desc.Value = valueOf
	obj.DefineOwnProperty(ctx, StringKey("valueOf"), desc)

	toPrim := newNativeFunction(ctx, func(this any, args []any) any {
		return StringValue("x")
	})
	primDesc := CompleteDataDescriptor()
	primDesc.Value = toPrim
	obj.DefineOwnProperty(ctx, SymbolKey(ctx.WellKnownSymbol("toPrimitive")), primDesc)

	got := ToPrimitive(ctx, obj, HintString)
	if ctx.HasPendingException() {
		t.Fatalf("unexpected pending exception: %v", ctx.PendingException())
	}
	if !SameValue(got, StringValue("x")) {
		t.Fatalf("ToPrimitive(obj, HintString) = %v, want \"x\"", got)
	}

	got = ToPrimitive(ctx, obj, HintNumber)
	if !SameValue(got, StringValue("x")) {
		t.Fatalf("ToPrimitive(obj, HintNumber) = %v, want \"x\" regardless of hint", got)
	}
}
