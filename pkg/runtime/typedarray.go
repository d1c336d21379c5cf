package runtime

import (
	"math"
	"math/big"
)

// NewTypedArrayExotic creates a TypedArrayExotic view over buffer starting
// at byteOffset, either length-tracking (consumes the rest of the buffer)
// or with an explicit element length (spec.md §4.5, §3).
func NewTypedArrayExotic(proto *Object, buffer []byte, byteOffset int, kind TypedArrayKind, length int, lengthTracking bool) *Object {
	o := NewOrdinaryObject(proto)
	o.SetClass("TypedArray")
	o.exotic = KindTypedArray
	o.typedBuffer = buffer
	o.typedByteOffset = byteOffset
	o.typedKind = kind
	o.typedLengthTracking = lengthTracking
	o.typedLength = length
	return o
}

// TypedArrayLength recomputes length from the backing buffer for
// length-tracking views (spec.md §4.5 "recompute length ... each time"),
// else returns the fixed element count.
func (o *Object) TypedArrayLength() int {
	if o.typedLengthTracking {
		avail := len(o.typedBuffer) - o.typedByteOffset
		if avail < 0 {
			return 0
		}
		return avail / o.typedKind.BytesPerElement()
	}
	return o.typedLength
}

func (o *Object) typedArrayIndexInRange(key PropertyKey) (int, bool) {
	idx, ok := key.Index()
	if !ok {
		return 0, false
	}
	if int(idx) >= o.TypedArrayLength() {
		return 0, false
	}
	return int(idx), true
}

func (o *Object) typedElementOffset(idx int) int {
	return o.typedByteOffset + idx*o.typedKind.BytesPerElement()
}

// typedArrayGetOwnProperty synthesizes a writable, enumerable,
// configurable data descriptor for an in-range canonical index (ES
// IntegerIndexedExoticObjectGetOwnProperty).
func (o *Object) typedArrayGetOwnProperty(key PropertyKey) (Descriptor, bool) {
	idx, ok := o.typedArrayIndexInRange(key)
	if !ok {
		return Descriptor{}, false
	}
	return CompleteDataDescriptor().withValue(o.typedArrayReadElement(idx), true, true, true), true
}

// typedArrayGet reads and decodes the element at an in-range canonical
// index; out-of-range canonical indices read as undefined. Keys that are
// not canonical indices (including numeric strings such as "1.5" or "-0")
// are not handled here and take the ordinary lookup path.
func (o *Object) typedArrayGet(ctx *Context, key PropertyKey) (Value, bool) {
	idx, isIndex := key.Index()
	if !isIndex {
		return nil, false
	}
	if int(idx) >= o.TypedArrayLength() {
		return Undefined, true
	}
	return o.typedArrayReadElement(int(idx)), true
}

func (o *Object) typedArrayReadElement(idx int) Value {
	off := o.typedElementOffset(idx)
	buf := o.typedBuffer
	switch o.typedKind {
	case TAInt8:
		return NumberValue(float64(int8(buf[off])))
	case TAUint8, TAUint8Clamped:
		return NumberValue(float64(buf[off]))
	case TAInt16:
		return NumberValue(float64(int16(le16(buf, off))))
	case TAUint16:
		return NumberValue(float64(le16(buf, off)))
	case TAInt32:
		return NumberValue(float64(int32(le32(buf, off))))
	case TAUint32:
		return NumberValue(float64(le32(buf, off)))
	case TAFloat32:
		return NumberValue(float64(decodeFloat32(le32(buf, off))))
	case TAFloat64:
		return NumberValue(decodeFloat64(le64(buf, off)))
	case TABigInt64:
		return NewBigIntFromInt64(int64(le64(buf, off)))
	case TABigUint64:
		v := le64(buf, off)
		bi := new(big.Int).SetUint64(v)
		return NewBigInt(bi)
	default:
		return Undefined
	}
}

// typedArrayDefineOwnProperty applies kind-specific coercion and writes the
// element in place, honoring the Set semantics for in-range writes; it
// rejects accessor descriptors (typed elements are always data properties).
func (o *Object) typedArrayDefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) (handled bool, result bool) {
	idx, isIndex := key.Index()
	if !isIndex {
		return false, false
	}
	if desc.IsAccessorDescriptor() {
		return true, false
	}
	if int(idx) >= o.TypedArrayLength() {
		return true, false
	}
	if !desc.HasValue {
		return true, true
	}
	ok := o.typedArrayWriteElement(ctx, int(idx), desc.Value)
	return true, ok
}

// typedArraySet implements out-of-band-safe indexed [[Set]]: out-of-range
// canonical indices silently no-op and report success. Keys that are not
// canonical indices (including numeric strings such as "1.5" or "-0") are
// not handled here and take the ordinary [[Set]] path.
func (o *Object) typedArraySet(ctx *Context, key PropertyKey, v Value) (handled bool, result bool) {
	idx, isIndex := key.Index()
	if !isIndex {
		return false, false
	}
	if int(idx) >= o.TypedArrayLength() {
		// Coerce for side effects (ToNumber/ToBigInt may throw or run
		// valueOf), then report success per the "silently no-op" rule.
		o.coerceForKind(ctx, v)
		return true, !ctx.HasPendingException()
	}
	return true, o.typedArrayWriteElement(ctx, int(idx), v)
}

func (o *Object) coerceForKind(ctx *Context, v Value) {
	if o.typedKind == TABigInt64 || o.typedKind == TABigUint64 {
		ToBigInt(ctx, v)
		return
	}
	ToNumber(ctx, v)
}

func (o *Object) typedArrayWriteElement(ctx *Context, idx int, v Value) bool {
	off := o.typedElementOffset(idx)
	buf := o.typedBuffer
	switch o.typedKind {
	case TAInt8:
		n := ToInt8(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		buf[off] = byte(n)
	case TAUint8:
		n := ToUint8(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		buf[off] = n
	case TAUint8Clamped:
		n := ToUint8Clamp(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		buf[off] = n
	case TAInt16:
		n := ToInt16(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE16(buf, off, uint16(n))
	case TAUint16:
		n := ToUint16(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE16(buf, off, n)
	case TAInt32:
		n := ToInt32(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE32(buf, off, uint32(n))
	case TAUint32:
		n := ToUint32(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE32(buf, off, n)
	case TAFloat32:
		n := ToNumber(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE32(buf, off, encodeFloat32(float32(n)))
	case TAFloat64:
		n := ToNumber(ctx, v)
		if ctx.HasPendingException() {
			return false
		}
		putLE64(buf, off, encodeFloat64(n))
	case TABigInt64:
		bi, ok := ToBigInt(ctx, v)
		if !ok {
			return false
		}
		putLE64(buf, off, uint64(bi.Int().Int64()))
	case TABigUint64:
		bi, ok := ToBigInt(ctx, v)
		if !ok {
			return false
		}
		putLE64(buf, off, bi.Int().Uint64())
	}
	return true
}

// typedArrayDelete: delete returns true for out-of-range canonical indices
// and false for in-range ones (spec.md §4.5); non-index keys fall through.
func (o *Object) typedArrayDelete(key PropertyKey) (handled bool, result bool) {
	idx, isIndex := key.Index()
	if !isIndex {
		return false, false
	}
	if int(idx) >= o.TypedArrayLength() {
		return true, true
	}
	return true, false
}

func (o *Object) typedArrayIndexKeys() []PropertyKey {
	n := o.TypedArrayLength()
	out := make([]PropertyKey, n)
	for i := 0; i < n; i++ {
		out[i] = IndexKey(uint32(i))
	}
	return out
}

// ---------------------------------------------------------------------------
// Little-endian byte<->integer helpers and IEEE-754 bit reinterpretation.
// ---------------------------------------------------------------------------

func le16(buf []byte, off int) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}
func le32(buf []byte, off int) uint32 {
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}
func le64(buf []byte, off int) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(buf[off+i]) << (8 * i)
	}
	return v
}
func putLE16(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}
func putLE32(buf []byte, off int, v uint32) {
	for i := 0; i < 4; i++ {
		buf[off+i] = byte(v >> (8 * i))
	}
}
func putLE64(buf []byte, off int, v uint64) {
	for i := 0; i < 8; i++ {
		buf[off+i] = byte(v >> (8 * i))
	}
}

func decodeFloat32(bits uint32) float32 { return math.Float32frombits(bits) }
func decodeFloat64(bits uint64) float64 { return math.Float64frombits(bits) }
func encodeFloat32(f float32) uint32    { return math.Float32bits(f) }
func encodeFloat64(f float64) uint64    { return math.Float64bits(f) }
