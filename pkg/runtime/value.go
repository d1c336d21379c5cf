package runtime

import (
	"math/big"
)

// ValueType names the kind of a Value (spec.md §3 "Value").
type ValueType string

const (
	TypeUndefined ValueType = "undefined"
	TypeNull      ValueType = "null"
	TypeBoolean   ValueType = "boolean"
	TypeNumber    ValueType = "number"
	TypeString    ValueType = "string"
	TypeSymbol    ValueType = "symbol"
	TypeBigInt    ValueType = "bigint"
	TypeObject    ValueType = "object"
)

// Value is the discriminated union of every ECMAScript value: the seven
// primitive kinds plus Object (Function is a subkind of Object, not a
// separate Value kind). All values are first-class and may be stored
// anywhere a Value is expected.
type Value interface {
	// Kind reports which branch of the union this value occupies.
	Kind() ValueType
	// String returns a debug representation; it is NOT the ToString
	// abstract operation (see conversions.go for that).
	String() string
}

// ---------------------------------------------------------------------------
// Undefined / Null singletons
// ---------------------------------------------------------------------------

type undefinedValue struct{}

func (undefinedValue) Kind() ValueType { return TypeUndefined }
func (undefinedValue) String() string  { return "undefined" }

// Undefined is the sole Undefined value.
var Undefined Value = undefinedValue{}

type nullValue struct{}

func (nullValue) Kind() ValueType { return TypeNull }
func (nullValue) String() string  { return "null" }

// Null is the sole Null value.
var Null Value = nullValue{}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// Boolean is a JS boolean primitive. There are exactly two Boolean values;
// True and False below are the canonical instances but any Boolean(x) value
// compares equal in SameValue terms to them.
type Boolean bool

func (b Boolean) Kind() ValueType { return TypeBoolean }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

var (
	True  Value = Boolean(true)
	False Value = Boolean(false)
)

// BoolValue returns the canonical Boolean singleton for b.
func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}

// ---------------------------------------------------------------------------
// Number
// ---------------------------------------------------------------------------

// Number is an IEEE-754 double, including NaN and signed zero.
type Number float64

func (n Number) Kind() ValueType { return TypeNumber }
func (n Number) String() string  { return fmtNumber(float64(n)) }

// NumberValue wraps a float64 as a Value.
func NumberValue(f float64) Value { return Number(f) }

// ---------------------------------------------------------------------------
// String — an immutable UTF-16-semantics code-unit sequence (spec.md §3).
// ---------------------------------------------------------------------------

// String holds a JS string as a slice of UTF-16 code units, NOT a Go UTF-8
// string. Surrogate pairs and lone surrogates are both representable, which
// Go's native string/rune types cannot express. See stringexotic.go for the
// StringExotic indexed-property wrapper and utf16.go for host-boundary
// conversion.
type String struct {
	units []uint16
}

func (s String) Kind() ValueType { return TypeString }
func (s String) String() string  { return Utf16ToUTF8(s.units) }

// NewString builds a JS String from a Go string, encoding it to UTF-16.
func NewString(s string) String {
	return String{units: Utf8ToUTF16(s)}
}

// NewStringFromUnits builds a JS String directly from UTF-16 code units,
// preserving lone surrogates exactly as given.
func NewStringFromUnits(units []uint16) String {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return String{units: cp}
}

// StringValue wraps a Go string as a Value.
func StringValue(s string) Value { return NewString(s) }

// Length returns the number of UTF-16 code units.
func (s String) Length() int { return len(s.units) }

// CodeUnitAt returns the code unit at i, and whether i was in range.
func (s String) CodeUnitAt(i int) (uint16, bool) {
	if i < 0 || i >= len(s.units) {
		return 0, false
	}
	return s.units[i], true
}

// Units returns the underlying UTF-16 code units (read-only view; callers
// must not mutate, as String is immutable per spec.md §3).
func (s String) Units() []uint16 { return s.units }

// Slice returns the substring [from, to) as a new immutable String.
func (s String) Slice(from, to int) String {
	if from < 0 {
		from = 0
	}
	if to > len(s.units) {
		to = len(s.units)
	}
	if from >= to {
		return String{}
	}
	return NewStringFromUnits(s.units[from:to])
}

// Concat returns a new String that is the concatenation of s and other.
func (s String) Concat(other String) String {
	out := make([]uint16, 0, len(s.units)+len(other.units))
	out = append(out, s.units...)
	out = append(out, other.units...)
	return String{units: out}
}

// ---------------------------------------------------------------------------
// Symbol — identity-only, optional description, optionally well-known.
// ---------------------------------------------------------------------------

// Symbol has identity distinct from every other Symbol, even ones sharing a
// description; equality is always Go pointer identity on *Symbol.
type Symbol struct {
	Description string
	hasDesc     bool
	WellKnown   string // e.g. "toPrimitive", "iterator"; "" if not well-known
}

func (s *Symbol) Kind() ValueType { return TypeSymbol }
func (s *Symbol) String() string {
	if s.WellKnown != "" {
		return "Symbol(Symbol." + s.WellKnown + ")"
	}
	if s.hasDesc {
		return "Symbol(" + s.Description + ")"
	}
	return "Symbol()"
}

// NewSymbol allocates a fresh Symbol with the given description.
func NewSymbol(description string) *Symbol {
	return &Symbol{Description: description, hasDesc: true}
}

// NewSymbolNoDescription allocates a Symbol with no description.
func NewSymbolNoDescription() *Symbol {
	return &Symbol{}
}

// ---------------------------------------------------------------------------
// BigInt — arbitrary-precision signed integer.
// ---------------------------------------------------------------------------

// BigInt wraps *big.Int. The zero value is not valid; use NewBigInt.
type BigInt struct {
	v *big.Int
}

func (b BigInt) Kind() ValueType { return TypeBigInt }
func (b BigInt) String() string {
	if b.v == nil {
		return "0"
	}
	return b.v.String()
}

// NewBigInt wraps i (which is NOT copied further by the caller) as a Value.
func NewBigInt(i *big.Int) BigInt {
	if i == nil {
		i = big.NewInt(0)
	}
	return BigInt{v: new(big.Int).Set(i)}
}

// NewBigIntFromInt64 builds a BigInt from an int64.
func NewBigIntFromInt64(i int64) BigInt { return NewBigInt(big.NewInt(i)) }

// Int returns the underlying *big.Int (a defensive copy).
func (b BigInt) Int() *big.Int {
	if b.v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(b.v)
}

func (b BigInt) IsZero() bool { return b.v == nil || b.v.Sign() == 0 }

// ---------------------------------------------------------------------------
// Type predicates
// ---------------------------------------------------------------------------

func IsUndefined(v Value) bool { return v == nil || v.Kind() == TypeUndefined }
func IsNull(v Value) bool      { return v != nil && v.Kind() == TypeNull }
func IsNullOrUndefined(v Value) bool {
	return IsUndefined(v) || IsNull(v)
}
func IsBoolean(v Value) bool { return v != nil && v.Kind() == TypeBoolean }
func IsNumber(v Value) bool  { return v != nil && v.Kind() == TypeNumber }
func IsString(v Value) bool  { return v != nil && v.Kind() == TypeString }
func IsSymbol(v Value) bool  { return v != nil && v.Kind() == TypeSymbol }
func IsBigInt(v Value) bool  { return v != nil && v.Kind() == TypeBigInt }
func IsObject(v Value) bool  { return v != nil && v.Kind() == TypeObject }

// IsPrimitive reports whether v is any non-Object value.
func IsPrimitive(v Value) bool { return !IsObject(v) }

func fmtNumber(f float64) string { return formatECMANumber(f) }
