package runtime

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ToPrimitiveHint selects which conversion order ToPrimitive tries.
type ToPrimitiveHint int

const (
	HintDefault ToPrimitiveHint = iota
	HintNumber
	HintString
)

func (h ToPrimitiveHint) String() string {
	switch h {
	case HintNumber:
		return "number"
	case HintString:
		return "string"
	default:
		return "default"
	}
}

// ToPrimitive converts v to a primitive value (spec.md §4.1). If v is
// already primitive it is returned unchanged. For Objects: @@toPrimitive is
// tried first if present and not null; its result must be primitive or a
// TypeError is thrown. Otherwise OrdinaryToPrimitive runs.
func ToPrimitive(ctx *Context, v Value, hint ToPrimitiveHint) Value {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}
	if obj.hasPrimitiveValue {
		return obj.primitiveValue
	}

	exoticToPrim := obj.Get(ctx, SymbolKey(ctx.WellKnownSymbol("toPrimitive")), obj)
	if ctx.HasPendingException() {
		return Undefined
	}
	if !IsNullOrUndefined(exoticToPrim) {
		if !ctx.IsCallable(exoticToPrim) {
			ctx.ThrowTypeError("Symbol.toPrimitive is not a function")
			return Undefined
		}
		result := ctx.CallFunction(exoticToPrim, obj, []Value{StringValue(hint.String())})
		if ctx.HasPendingException() {
			return Undefined
		}
		if IsObject(result) {
			ctx.ThrowTypeError("Cannot convert object to primitive value")
			return Undefined
		}
		return result
	}
	return OrdinaryToPrimitive(ctx, obj, hint)
}

// OrdinaryToPrimitive tries toString/valueOf (hint String) or valueOf/
// toString (hints Number and Default), per spec.md §4.1.
func OrdinaryToPrimitive(ctx *Context, obj *Object, hint ToPrimitiveHint) Value {
	methodNames := []string{"valueOf", "toString"}
	if hint == HintString {
		methodNames = []string{"toString", "valueOf"}
	}
	for _, name := range methodNames {
		method := obj.Get(ctx, StringKey(name), obj)
		if ctx.HasPendingException() {
			return Undefined
		}
		if ctx.IsCallable(method) {
			result := ctx.CallFunction(method, obj, nil)
			if ctx.HasPendingException() {
				return Undefined
			}
			if !IsObject(result) {
				return result
			}
		}
	}
	ctx.ThrowTypeError("Cannot convert object to primitive value")
	return Undefined
}

// ---------------------------------------------------------------------------
// ToNumber
// ---------------------------------------------------------------------------

// ToNumber implements the ToNumber abstract operation (spec.md §4.1). On
// Symbol/BigInt it sets a TypeError pending exception and returns NaN.
func ToNumber(ctx *Context, v Value) float64 {
	switch val := v.(type) {
	case undefinedValue:
		return math.NaN()
	case nullValue:
		return 0
	case Boolean:
		if val {
			return 1
		}
		return 0
	case Number:
		return float64(val)
	case String:
		return stringToNumber(val.String())
	case *Symbol:
		ctx.ThrowTypeError("Cannot convert a Symbol value to a number")
		return math.NaN()
	case BigInt:
		ctx.ThrowTypeError("Cannot convert a BigInt value to a number")
		return math.NaN()
	case *Object:
		if val.hasPrimitiveValue {
			return ToNumber(ctx, val.primitiveValue)
		}
		prim := ToPrimitive(ctx, val, HintNumber)
		if ctx.HasPendingException() {
			return math.NaN()
		}
		return ToNumber(ctx, prim)
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isJSWhitespace)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	if strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O") {
		n, err := strconv.ParseUint(s[2:], 8, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	if strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") {
		n, err := strconv.ParseUint(s[2:], 2, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isJSWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00A0, 0xFEFF, 0x2028, 0x2029:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// ToString
// ---------------------------------------------------------------------------

// ToString implements the ToString abstract operation (spec.md §4.1). On
// Symbol it sets a TypeError pending exception and returns "".
func ToString(ctx *Context, v Value) string {
	switch val := v.(type) {
	case undefinedValue:
		return "undefined"
	case nullValue:
		return "null"
	case Boolean:
		if val {
			return "true"
		}
		return "false"
	case Number:
		return formatECMANumber(float64(val))
	case String:
		return val.String()
	case *Symbol:
		ctx.ThrowTypeError("Cannot convert a Symbol value to a string")
		return ""
	case BigInt:
		return val.String()
	case *Object:
		if val.hasPrimitiveValue {
			return ToString(ctx, val.primitiveValue)
		}
		prim := ToPrimitive(ctx, val, HintString)
		if ctx.HasPendingException() {
			return ""
		}
		return ToString(ctx, prim)
	default:
		return ""
	}
}

// formatECMANumber renders f using ECMAScript's Number::toString algorithm:
// "NaN", "Infinity", "-Infinity", shortest round-trip decimal digits,
// integer style with no trailing ".0", and exponent notation only when it
// is shorter (|exponent| >= 21 or <= -7), matching the thresholds in the
// spec's Number::toString.
func formatECMANumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "0" // ToString(-0) is "0", unlike SameValue which distinguishes it
		}
		return "0"
	}

	neg := f < 0
	abs := math.Abs(f)

	mantissa, exp := shortestDigits(abs)
	n := len(mantissa)
	// exp is the power-of-ten position of the decimal point relative to
	// the start of mantissa, i.e. value == 0.mantissa * 10**exp.
	var out string
	switch {
	case exp >= 1 && exp <= 21:
		if exp >= n {
			out = mantissa + strings.Repeat("0", exp-n)
		} else {
			out = mantissa[:exp] + "." + mantissa[exp:]
		}
	case exp <= 0 && exp > -6:
		out = "0." + strings.Repeat("0", -exp) + mantissa
	default:
		digits := mantissa
		fracPart := ""
		if n > 1 {
			fracPart = "." + digits[1:]
		}
		e := exp - 1
		sign := "+"
		if e < 0 {
			sign = "-"
			e = -e
		}
		out = digits[:1] + fracPart + "e" + sign + strconv.Itoa(e)
	}

	if neg {
		return "-" + out
	}
	return out
}

// shortestDigits returns the shortest round-trip decimal digit string for
// abs (> 0) and the power-of-ten exponent such that abs == 0.<digits> *
// 10**exponent, using Go's shortest-round-trip formatter as the digit
// source (strconv's 'e' format already computes the shortest mantissa).
func shortestDigits(abs float64) (digits string, exp int) {
	formatted := strconv.FormatFloat(abs, 'e', -1, 64)
	parts := strings.SplitN(formatted, "e", 2)
	mantissaPart := parts[0]
	e, _ := strconv.Atoi(parts[1])
	mantissaPart = strings.Replace(mantissaPart, ".", "", 1)
	mantissaPart = strings.TrimRight(mantissaPart, "0")
	if mantissaPart == "" {
		mantissaPart = "0"
	}
	return mantissaPart, e + 1
}

// ---------------------------------------------------------------------------
// ToBoolean
// ---------------------------------------------------------------------------

// ToBoolean implements the ToBoolean abstract operation; it never fails
// (spec.md §4.1). An Object's HTMLDDA marker (Annex B `document.all`
// emulation) forces false even though every other object is truthy.
func ToBoolean(v Value) bool {
	switch val := v.(type) {
	case undefinedValue:
		return false
	case nullValue:
		return false
	case Boolean:
		return bool(val)
	case Number:
		f := float64(val)
		return f != 0 && !math.IsNaN(f)
	case String:
		return val.Length() != 0
	case BigInt:
		return !val.IsZero()
	case *Symbol:
		return true
	case *Object:
		return !val.isHTMLDDA
	default:
		return true
	}
}

// ---------------------------------------------------------------------------
// ToInteger / ToIntegerOrInfinity
// ---------------------------------------------------------------------------

// ToIntegerOrInfinity implements ToIntegerOrInfinity: NaN -> 0, preserves
// signed infinities, else truncates toward zero (spec.md §4.1).
func ToIntegerOrInfinity(ctx *Context, v Value) float64 {
	n := ToNumber(ctx, v)
	if ctx.HasPendingException() || math.IsNaN(n) {
		return 0
	}
	if math.IsInf(n, 0) {
		return n
	}
	return math.Trunc(n)
}

// ---------------------------------------------------------------------------
// ToInt32 / ToUint32 / ToInt16 / ToUint16 / ToInt8 / ToUint8 / ToUint8Clamp
// ---------------------------------------------------------------------------

func toUint32Bits(ctx *Context, v Value) uint32 {
	n := ToNumber(ctx, v)
	if ctx.HasPendingException() || math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

func ToInt32(ctx *Context, v Value) int32   { return int32(toUint32Bits(ctx, v)) }
func ToUint32(ctx *Context, v Value) uint32 { return toUint32Bits(ctx, v) }
func ToInt16(ctx *Context, v Value) int16   { return int16(toUint32Bits(ctx, v)) }
func ToUint16(ctx *Context, v Value) uint16 { return uint16(toUint32Bits(ctx, v)) }
func ToInt8(ctx *Context, v Value) int8     { return int8(toUint32Bits(ctx, v)) }
func ToUint8(ctx *Context, v Value) uint8   { return uint8(toUint32Bits(ctx, v)) }

// ToUint8Clamp clamps to [0,255] with ties-to-even rounding (spec.md §4.1).
func ToUint8Clamp(ctx *Context, v Value) uint8 {
	n := ToNumber(ctx, v)
	if ctx.HasPendingException() || math.IsNaN(n) {
		return 0
	}
	if n <= 0 {
		return 0
	}
	if n >= 255 {
		return 255
	}
	floor := math.Floor(n)
	diff := n - floor
	switch {
	case diff < 0.5:
		return uint8(floor)
	case diff > 0.5:
		return uint8(floor + 1)
	default:
		if math.Mod(floor, 2) == 0 {
			return uint8(floor)
		}
		return uint8(floor + 1)
	}
}

// ---------------------------------------------------------------------------
// ToLength / ToIndex
// ---------------------------------------------------------------------------

const maxSafeInteger = 1<<53 - 1

// ToLength implements ToLength: ToIntegerOrInfinity clamped to
// [0, 2**53-1] (spec.md §4.1).
func ToLength(ctx *Context, v Value) int64 {
	n := ToIntegerOrInfinity(ctx, v)
	if ctx.HasPendingException() {
		return 0
	}
	if n <= 0 {
		return 0
	}
	if n > maxSafeInteger {
		return maxSafeInteger
	}
	return int64(n)
}

// ToIndex implements ToIndex: Undefined -> 0, else ToIntegerOrInfinity,
// which must be a non-negative safe integer or RangeError is thrown
// (spec.md §4.1).
func ToIndex(ctx *Context, v Value) (int64, bool) {
	if IsUndefined(v) {
		return 0, true
	}
	n := ToIntegerOrInfinity(ctx, v)
	if ctx.HasPendingException() {
		return 0, false
	}
	if n < 0 || n > maxSafeInteger {
		ctx.ThrowRangeError("index out of range")
		return 0, false
	}
	return int64(n), true
}

// ---------------------------------------------------------------------------
// ToBigInt
// ---------------------------------------------------------------------------

// ToBigInt implements ToBigInt (spec.md §4.1): Number and Symbol throw
// TypeError; Boolean, String, and Object (via ToPrimitive(Number) then
// recurse) convert.
func ToBigInt(ctx *Context, v Value) (BigInt, bool) {
	switch val := v.(type) {
	case Boolean:
		if val {
			return NewBigIntFromInt64(1), true
		}
		return NewBigIntFromInt64(0), true
	case BigInt:
		return val, true
	case String:
		return stringToBigInt(ctx, val.String())
	case Number:
		ctx.ThrowTypeError("Cannot convert a Number value to a BigInt")
		return BigInt{}, false
	case *Symbol:
		ctx.ThrowTypeError("Cannot convert a Symbol value to a BigInt")
		return BigInt{}, false
	case *Object:
		prim := ToPrimitive(ctx, val, HintNumber)
		if ctx.HasPendingException() {
			return BigInt{}, false
		}
		return ToBigInt(ctx, prim)
	default:
		ctx.ThrowTypeError("Cannot convert value to a BigInt")
		return BigInt{}, false
	}
}

func stringToBigInt(ctx *Context, s string) (BigInt, bool) {
	trimmed := strings.TrimFunc(s, isJSWhitespace)
	if trimmed == "" {
		return NewBigIntFromInt64(0), true
	}
	base := 10
	body := trimmed
	allowSign := true
	switch {
	case strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X"):
		base, body, allowSign = 16, trimmed[2:], false
	case strings.HasPrefix(trimmed, "0o") || strings.HasPrefix(trimmed, "0O"):
		base, body, allowSign = 8, trimmed[2:], false
	case strings.HasPrefix(trimmed, "0b") || strings.HasPrefix(trimmed, "0B"):
		base, body, allowSign = 2, trimmed[2:], false
	}
	if !allowSign && (strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-")) {
		ctx.ThrowSyntaxError("Cannot convert %s to a BigInt", s)
		return BigInt{}, false
	}
	n := new(big.Int)
	_, ok := n.SetString(body, base)
	if !ok {
		ctx.ThrowSyntaxError("Cannot convert %s to a BigInt", s)
		return BigInt{}, false
	}
	return NewBigInt(n), true
}

// ---------------------------------------------------------------------------
// SameValue / SameValueZero (spec.md §4.1, §8).
// ---------------------------------------------------------------------------

// SameValue implements the SameValue algorithm: NaN equals NaN, but +0 and
// -0 are distinguished.
func SameValue(a, b Value) bool {
	return sameValueImpl(a, b, false)
}

// SameValueZero is SameValue except +0 and -0 are not distinguished.
func SameValueZero(a, b Value) bool {
	return sameValueImpl(a, b, true)
}

func sameValueImpl(a, b Value, zero bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case undefinedValue, nullValue:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Number:
		bv := b.(Number)
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		if zero && av == 0 && bv == 0 {
			return true
		}
		if av == 0 && bv == 0 {
			return math.Signbit(float64(av)) == math.Signbit(float64(bv))
		}
		return av == bv
	case String:
		bv := b.(String)
		return utf16Equal(av.units, bv.units)
	case *Symbol:
		return av == b.(*Symbol)
	case BigInt:
		bv := b.(BigInt)
		return av.Int().Cmp(bv.Int()) == 0
	case *Object:
		return av == b.(*Object)
	default:
		return false
	}
}

func utf16Equal(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Equality operators (spec.md §4.1, ES 7.2.13/7.2.14).
// ---------------------------------------------------------------------------

// StrictEquals implements the === algorithm (ES IsStrictlyEqual): like
// SameValue but NaN !== NaN and +0 === -0.
func StrictEquals(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if n, ok := a.(Number); ok {
		return float64(n) == float64(b.(Number))
	}
	return sameValueImpl(a, b, true)
}

// AbstractEquals implements the == algorithm (ES IsLooselyEqual / 7.2.14),
// including String<->Number, Boolean coercion, BigInt<->Number/String exact
// comparison, Object->primitive coercion, and the HTMLDDA special rule.
func AbstractEquals(ctx *Context, a, b Value) bool {
	if a == nil {
		a = Undefined
	}
	if b == nil {
		b = Undefined
	}
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b)
	}

	if IsNullOrUndefined(a) && IsNullOrUndefined(b) {
		return true
	}
	if IsNullOrUndefined(a) || IsNullOrUndefined(b) {
		// HTMLDDA marker objects compare loosely equal to null/undefined.
		if obj, ok := a.(*Object); ok && obj.isHTMLDDA {
			return true
		}
		if obj, ok := b.(*Object); ok && obj.isHTMLDDA {
			return true
		}
		return false
	}

	if a.Kind() == TypeNumber && b.Kind() == TypeString {
		return AbstractEquals(ctx, a, NumberValue(stringToNumber(b.(String).String())))
	}
	if a.Kind() == TypeString && b.Kind() == TypeNumber {
		return AbstractEquals(ctx, NumberValue(stringToNumber(a.(String).String())), b)
	}
	if a.Kind() == TypeBigInt && b.Kind() == TypeString {
		bi, ok := stringToBigInt(ctx, b.(String).String())
		if !ok {
			ctx.ClearPendingException()
			return false
		}
		return a.(BigInt).Int().Cmp(bi.Int()) == 0
	}
	if a.Kind() == TypeString && b.Kind() == TypeBigInt {
		return AbstractEquals(ctx, b, a)
	}
	if a.Kind() == TypeBoolean {
		return AbstractEquals(ctx, NumberValue(boolToFloat(a.(Boolean))), b)
	}
	if b.Kind() == TypeBoolean {
		return AbstractEquals(ctx, a, NumberValue(boolToFloat(b.(Boolean))))
	}
	if (a.Kind() == TypeNumber || a.Kind() == TypeString || a.Kind() == TypeBigInt || a.Kind() == TypeSymbol) && b.Kind() == TypeObject {
		prim := ToPrimitive(ctx, b, HintDefault)
		if ctx.HasPendingException() {
			return false
		}
		return AbstractEquals(ctx, a, prim)
	}
	if a.Kind() == TypeObject && (b.Kind() == TypeNumber || b.Kind() == TypeString || b.Kind() == TypeBigInt || b.Kind() == TypeSymbol) {
		prim := ToPrimitive(ctx, a, HintDefault)
		if ctx.HasPendingException() {
			return false
		}
		return AbstractEquals(ctx, prim, b)
	}
	if (a.Kind() == TypeBigInt && b.Kind() == TypeNumber) || (a.Kind() == TypeNumber && b.Kind() == TypeBigInt) {
		return numberBigIntEqual(a, b)
	}
	return false
}

func boolToFloat(b Boolean) float64 {
	if b {
		return 1
	}
	return 0
}

func numberBigIntEqual(a, b Value) bool {
	var num float64
	var bi BigInt
	if n, ok := a.(Number); ok {
		num, bi = float64(n), b.(BigInt)
	} else {
		num, bi = float64(b.(Number)), a.(BigInt)
	}
	if math.IsNaN(num) || math.IsInf(num, 0) || num != math.Trunc(num) {
		return false
	}
	asBig := new(big.Int)
	bigFloat := new(big.Float).SetFloat64(num)
	bigFloat.Int(asBig)
	return asBig.Cmp(bi.Int()) == 0
}

// ---------------------------------------------------------------------------
// LessThan (abstract relational comparison, spec.md §4.1).
// ---------------------------------------------------------------------------

// LessThan implements the abstract relational comparison x < y. It returns
// (result, true) for a definite boolean outcome, or (false, false) when
// the comparison is undefined (one operand is NaN), which callers should
// treat as false for `<` per spec.md §4.1.
func LessThan(ctx *Context, x, y Value) (result bool, defined bool) {
	px := ToPrimitive(ctx, x, HintNumber)
	if ctx.HasPendingException() {
		return false, false
	}
	py := ToPrimitive(ctx, y, HintNumber)
	if ctx.HasPendingException() {
		return false, false
	}

	if sx, ok := px.(String); ok {
		if sy, ok := py.(String); ok {
			return utf16Less(sx.units, sy.units), true
		}
	}

	if bx, ok := px.(BigInt); ok {
		if by, ok := py.(BigInt); ok {
			return bx.Int().Cmp(by.Int()) < 0, true
		}
	}

	nx := ToNumber(ctx, px)
	if ctx.HasPendingException() {
		return false, false
	}
	ny := ToNumber(ctx, py)
	if ctx.HasPendingException() {
		return false, false
	}
	if math.IsNaN(nx) || math.IsNaN(ny) {
		return false, false
	}
	return nx < ny, true
}

func utf16Less(a, b []uint16) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
