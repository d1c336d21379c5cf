package runtime

import (
	"strconv"
)

// PropertyKeyKind distinguishes the three kinds of property key.
type PropertyKeyKind int

const (
	KeyString PropertyKeyKind = iota
	KeyIndex                 // canonical numeric index, spec.md §3 / GLOSSARY
	KeySymbol
)

// MaxArrayIndex is 2**32 - 2, the largest canonical numeric index; length
// itself can be 2**32 - 1 but that value is never itself a valid index.
const MaxArrayIndex = 1<<32 - 2

// PropertyKey is either a String, a canonical numeric index, or a Symbol.
// Canonical numeric index: a non-negative integer < 2**32-1 whose decimal
// text has no leading zero (except "0" itself) — this governs Array/String/
// TypedArray exotic dispatch (spec.md §3, GLOSSARY).
type PropertyKey struct {
	kind  PropertyKeyKind
	str   string // used when kind == KeyString
	index uint32 // used when kind == KeyIndex
	sym   *Symbol
}

func StringKey(s string) PropertyKey {
	if idx, ok := CanonicalNumericIndex(s); ok {
		return PropertyKey{kind: KeyIndex, index: idx}
	}
	return PropertyKey{kind: KeyString, str: s}
}

func IndexKey(i uint32) PropertyKey {
	return PropertyKey{kind: KeyIndex, index: i}
}

func SymbolKey(s *Symbol) PropertyKey {
	return PropertyKey{kind: KeySymbol, sym: s}
}

// ToPropertyKey converts a Value per the ES ToPropertyKey operation: a
// Symbol becomes a Symbol key, everything else is coerced to String (using
// ctx-aware ToString so @@toPrimitive/toString side effects are observed).
func ToPropertyKey(ctx *Context, v Value) PropertyKey {
	if sym, ok := v.(*Symbol); ok {
		return SymbolKey(sym)
	}
	s := ToString(ctx, v)
	if ctx.HasPendingException() {
		return StringKey("")
	}
	return StringKey(s)
}

func (k PropertyKey) Kind() PropertyKeyKind { return k.kind }

func (k PropertyKey) IsIndex() bool  { return k.kind == KeyIndex }
func (k PropertyKey) IsSymbol() bool { return k.kind == KeySymbol }
func (k PropertyKey) IsString() bool { return k.kind == KeyString }

// Index returns the numeric index and true, if this key is a KeyIndex.
func (k PropertyKey) Index() (uint32, bool) {
	if k.kind != KeyIndex {
		return 0, false
	}
	return k.index, true
}

// Symbol returns the underlying symbol and true, if this key is a KeySymbol.
func (k PropertyKey) Symbol() (*Symbol, bool) {
	if k.kind != KeySymbol {
		return nil, false
	}
	return k.sym, true
}

// String renders the key as ECMAScript would for display / map storage:
// numeric indices render as decimal text, symbols render via Symbol.String.
func (k PropertyKey) String() string {
	switch k.kind {
	case KeyIndex:
		return strconv.FormatUint(uint64(k.index), 10)
	case KeySymbol:
		return k.sym.String()
	default:
		return k.str
	}
}

// CanonicalNumericIndex reports whether s is the canonical decimal text of
// a non-negative integer strictly less than 2**32-1, with no leading zero
// except "0" itself (spec.md GLOSSARY "Canonical numeric index").
func CanonicalNumericIndex(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false // leading zero, e.g. "01"
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if n > MaxArrayIndex {
		return 0, false
	}
	return uint32(n), true
}
