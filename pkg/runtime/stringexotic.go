package runtime

// NewStringExotic creates a StringExotic wrapper object over s (spec.md
// §4.5): indexed keys in [0, len(s)) are own, non-writable, enumerable,
// non-configurable data properties holding the one-code-unit substring at
// that index, plus an own non-writable non-enumerable non-configurable
// "length".
func NewStringExotic(proto *Object, s String) *Object {
	o := NewOrdinaryObject(proto)
	o.SetClass("String")
	o.exotic = KindString
	o.stringBacking = s
	o.hasPrimitiveValue = true
	o.primitiveValue = s
	o.installStringLength(s.Length())
	return o
}

func (o *Object) installStringLength(n int) {
	slot := len(o.slots)
	o.slots = append(o.slots, NumberValue(float64(n)))
	o.shape.Add(StringKey("length"), Descriptor{
		Value: NumberValue(float64(n)), HasValue: true,
		Writable: false, HasWritable: true,
		Enumerable: false, HasEnum: true,
		Configurable: false, HasConfig: true,
	}, slot)
}

// stringIndexInRange reports whether key is a canonical index within the
// backing string's bounds.
func (o *Object) stringIndexInRange(key PropertyKey) (int, bool) {
	idx, ok := key.Index()
	if !ok {
		return 0, false
	}
	if int(idx) >= o.stringBacking.Length() {
		return 0, false
	}
	return int(idx), true
}

// stringGetOwnProperty synthesizes the exotic per-index descriptor
// (spec.md §4.5): non-writable, enumerable, non-configurable.
func (o *Object) stringGetOwnProperty(key PropertyKey) (Descriptor, bool) {
	idx, ok := o.stringIndexInRange(key)
	if !ok {
		return Descriptor{}, false
	}
	ch := o.stringBacking.Slice(idx, idx+1)
	return CompleteDataDescriptor().withValue(StringValue(ch.String()), false, true, false), true
}

// stringGet returns the one-code-unit substring at an in-range canonical
// index; out-of-range or non-index keys are not handled here (the ordinary
// shape/prototype path in object.go takes over).
func (o *Object) stringGet(key PropertyKey) (Value, bool) {
	idx, ok := o.stringIndexInRange(key)
	if !ok {
		return nil, false
	}
	return StringValue(o.stringBacking.Slice(idx, idx+1).String()), true
}

// stringDefineOwnProperty implements the exotic [[DefineOwnProperty]]
// override: a redefinition of an in-range index must exactly match the
// existing non-writable/enumerable/non-configurable data descriptor to
// succeed (IsCompatiblePropertyDescriptor against the synthesized
// descriptor), any other shape change at that index fails; out-of-range
// and non-index keys fall through to the ordinary path.
func (o *Object) stringDefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) (handled bool, result bool) {
	current, inRange := o.stringGetOwnProperty(key)
	if !inRange {
		return false, false
	}
	if desc.IsAccessorDescriptor() {
		return true, false
	}
	if desc.HasConfig && desc.Configurable {
		return true, false
	}
	if desc.HasEnum && !desc.Enumerable {
		return true, false
	}
	if desc.HasWritable && desc.Writable {
		return true, false
	}
	if desc.HasValue && !SameValue(desc.Value, current.Value) {
		return true, false
	}
	return true, true
}

// stringSet implements the exotic [[Set]] override: writes to any in-range
// index fail (the property is non-writable); out-of-range keys and
// non-index keys fall through to the ordinary path.
func (o *Object) stringSet(key PropertyKey) (handled bool, result bool) {
	if _, ok := o.stringIndexInRange(key); ok {
		return true, false
	}
	return false, false
}

// stringDelete: in-range indices are non-configurable, so delete fails;
// out-of-range/non-index keys fall through to the ordinary path.
func (o *Object) stringDelete(key PropertyKey) (handled bool, result bool) {
	if _, ok := o.stringIndexInRange(key); ok {
		return true, false
	}
	return false, false
}

// stringIndexKeys returns every in-range canonical index as a key, in
// ascending order (the backing string's length never exceeds 2**32-2).
func (o *Object) stringIndexKeys() []PropertyKey {
	n := o.stringBacking.Length()
	out := make([]PropertyKey, n)
	for i := 0; i < n; i++ {
		out[i] = IndexKey(uint32(i))
	}
	return out
}
