package runtime

// NewArrayExotic creates an ArrayExotic object (spec.md §4.4): an ordinary
// object whose shape carries only non-indexed own properties, plus a
// dense/sparse indexed store and a length-coupled invariant maintained by
// arrayDefineOwnProperty/arraySet/length writes.
func NewArrayExotic(ctx *Context, proto *Object) *Object {
	o := NewOrdinaryObject(proto)
	o.SetClass("Array")
	o.exotic = KindArray
	o.arraySparse = make(map[uint32]Value)
	o.denseCap = ctx.Config.MaxDenseArrayCapacity
	if o.denseCap <= 0 {
		o.denseCap = MaxDense
	}
	o.installArrayLength()
	return o
}

// installArrayLength installs the own "length" data descriptor: writable,
// non-enumerable, non-configurable (ES Array exotic object invariant).
func (o *Object) installArrayLength() {
	slot := len(o.slots)
	o.slots = append(o.slots, NumberValue(0))
	o.shape.Add(StringKey("length"), Descriptor{
		Value: NumberValue(0), HasValue: true,
		Writable: true, HasWritable: true,
		Enumerable: false, HasEnum: true,
		Configurable: false, HasConfig: true,
	}, slot)
}

func (o *Object) arrayLengthSlot() int { return o.shape.GetOffset(StringKey("length")) }

// ArrayLength returns the current logical length.
func (o *Object) ArrayLength() uint32 { return o.arrayLength }

func (o *Object) setArrayLengthValue(n uint32) {
	o.arrayLength = n
	slot := o.arrayLengthSlot()
	if slot >= 0 && slot < len(o.slots) {
		o.slots[slot] = NumberValue(float64(n))
	}
}

func (o *Object) arrayLengthWritable() bool {
	desc, ok := o.shape.GetDescriptor(StringKey("length"))
	return ok && desc.Writable
}

// arrayGetOwnProperty returns the own descriptor for a canonical index key,
// synthesized from dense/sparse storage (spec.md §4.4): enumerable,
// writable, configurable data descriptors, as for ordinary numeric array
// indices.
func (o *Object) arrayGetOwnProperty(key PropertyKey) (Descriptor, bool) {
	idx, ok := key.Index()
	if !ok {
		return Descriptor{}, false
	}
	v, found := o.arrayReadIndex(idx)
	if !found {
		return Descriptor{}, false
	}
	return CompleteDataDescriptor().withValue(v, true, true, true), true
}

func (o *Object) arrayReadIndex(idx uint32) (Value, bool) {
	if idx < uint32(len(o.arrayDense)) {
		v := o.arrayDense[idx]
		if v == nil {
			return nil, false
		}
		return v, true
	}
	if v, ok := o.arraySparse[idx]; ok {
		return v, true
	}
	return nil, false
}

// arrayGet implements indexed [[Get]] (spec.md §4.4): a shape-installed
// index (once a defineProperty narrows its attributes or installs an
// accessor there) always wins over dense/sparse storage, per the spec.md
// §9 design note that such indices go through the shape path from then on;
// otherwise dense, then sparse, then undefined for own lookup — but the
// prototype chain must still be consulted by the caller (object.go's Get)
// when this returns !handled.
func (o *Object) arrayGet(ctx *Context, key PropertyKey, receiver Value) (Value, bool) {
	idx, ok := key.Index()
	if !ok {
		return nil, false
	}
	if desc, ok := o.shape.GetDescriptor(key); ok {
		if desc.IsAccessorDescriptor() {
			if desc.Get == nil || IsUndefined(desc.Get) {
				return Undefined, true
			}
			return ctx.CallFunction(desc.Get, receiver, nil), true
		}
		return desc.Value, true
	}
	if v, found := o.arrayReadIndex(idx); found {
		return v, true
	}
	proto := o.GetPrototypeOf(ctx)
	if proto == nil {
		return Undefined, true
	}
	if !ctx.enterChain() {
		return Undefined, true
	}
	defer ctx.exitChain()
	return proto.Get(ctx, key, receiver), true
}

// arrayDefineOwnProperty implements Array's [[DefineOwnProperty]] override
// (spec.md §4.4): "length" writes go through arraySetLength; a plain value
// write at a canonical index (no attribute narrowing) stays on the fast
// dense/sparse path and extends length when needed. A descriptor that
// changes an index's attributes — or an index that already has a
// shape-installed descriptor, e.g. from a prior accessor install — is
// migrated into (or kept on) the shape path, preserving whatever value is
// currently stored there (spec.md §9 design note: once an indexed key has
// a shape descriptor, all future accesses on that index go through the
// shape path).
func (o *Object) arrayDefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) (handled bool, result bool) {
	if key.IsString() && key.String() == "length" {
		return true, o.arraySetLength(ctx, desc)
	}
	idx, ok := key.Index()
	if !ok {
		return false, false
	}
	if idx >= o.arrayLength && !o.arrayLengthWritable() {
		return true, false
	}
	if !desc.IsDataDescriptor() && !desc.IsGenericDescriptor() {
		// Accessor descriptors at numeric indices are not supported by the
		// dense/sparse fast path; migrate (or route) through the shape.
		return true, o.arrayDefineOwnPropertyViaShape(ctx, key, idx, desc)
	}

	_, hasShapeDesc := o.shape.GetDescriptor(key)
	narrowsAttributes := (desc.HasWritable && !desc.Writable) ||
		(desc.HasEnum && !desc.Enumerable) ||
		(desc.HasConfig && !desc.Configurable)
	if hasShapeDesc || narrowsAttributes {
		return true, o.arrayDefineOwnPropertyViaShape(ctx, key, idx, desc)
	}

	if !o.extensible {
		if _, found := o.arrayReadIndex(idx); !found {
			return true, false
		}
	}
	v := descriptorInitialValue(completeFromPartial(desc))
	if !desc.HasValue {
		if cur, found := o.arrayReadIndex(idx); found {
			v = cur
		}
	}
	o.arrayWriteIndex(idx, v)
	if idx >= o.arrayLength {
		o.setArrayLengthValue(idx + 1)
	}
	return true, true
}

// arrayDefineOwnPropertyViaShape applies desc to idx through the ordinary
// ValidateAndApplyPropertyDescriptor algorithm, first seeding the shape
// with the index's current dense/sparse value (if any) so that value
// survives the migration instead of being clobbered by a partial,
// value-less descriptor.
func (o *Object) arrayDefineOwnPropertyViaShape(ctx *Context, key PropertyKey, idx uint32, desc Descriptor) bool {
	if _, hasShapeDesc := o.shape.GetDescriptor(key); !hasShapeDesc {
		if cur, found := o.arrayReadIndex(idx); found {
			slot := len(o.slots)
			o.slots = append(o.slots, cur)
			o.shape.Add(key, CompleteDataDescriptor().withValue(cur, true, true, true), slot)
			o.removeIndexFromDenseSparse(idx)
		}
	}
	ok := o.ordinaryDefineOwnProperty(ctx, key, desc)
	if ok && idx >= o.arrayLength {
		o.setArrayLengthValue(idx + 1)
	}
	return ok
}

func (o *Object) removeIndexFromDenseSparse(idx uint32) {
	if idx < uint32(len(o.arrayDense)) {
		o.arrayDense[idx] = nil
	} else {
		delete(o.arraySparse, idx)
	}
}

func (o *Object) arrayWriteIndex(idx uint32, v Value) {
	if idx < uint32(o.denseCap) {
		if int(idx) >= len(o.arrayDense) {
			o.growDense(int(idx) + 1)
		}
		o.arrayDense[idx] = v
		delete(o.arraySparse, idx)
		return
	}
	o.arraySparse[idx] = v
}

func (o *Object) growDense(minLen int) {
	if minLen <= len(o.arrayDense) {
		return
	}
	newCap := len(o.arrayDense)
	if newCap == 0 {
		newCap = 8
	}
	for newCap < minLen {
		newCap *= 2
	}
	if newCap > o.denseCap {
		newCap = o.denseCap
	}
	grown := make([]Value, newCap)
	copy(grown, o.arrayDense)
	o.arrayDense = grown
}

// arraySet implements indexed [[Set]] per spec.md §4.4's numbered steps.
func (o *Object) arraySet(ctx *Context, key PropertyKey, v Value, receiver Value) (handled bool, result bool) {
	idx, ok := key.Index()
	if !ok {
		return false, false
	}
	// Step 1: an own shape descriptor (e.g. installed by defineProperty)
	// takes the ordinary accessor/writable-respecting path.
	if desc, ok := o.shape.GetDescriptor(key); ok {
		return true, o.ordinarySetWithDescriptor(ctx, key, desc, v, receiver)
	}
	if o.frozen {
		return true, false
	}
	if idx >= o.arrayLength {
		if !o.arrayLengthWritable() {
			return true, false
		}
	}
	if !o.extensible {
		if _, found := o.arrayReadIndex(idx); !found {
			return true, false
		}
	}
	o.arrayWriteIndex(idx, v)
	if idx >= o.arrayLength {
		o.setArrayLengthValue(idx + 1)
	}
	return true, true
}

// ordinarySetWithDescriptor applies [[Set]] semantics for an own descriptor
// already known to exist at key (used when an accessor/non-writable data
// descriptor has been installed at a numeric index via defineProperty).
func (o *Object) ordinarySetWithDescriptor(ctx *Context, key PropertyKey, desc Descriptor, v Value, receiver Value) bool {
	if desc.IsAccessorDescriptor() {
		if desc.Set == nil || IsUndefined(desc.Set) {
			return false
		}
		ctx.CallFunction(desc.Set, receiver, []Value{v})
		return true
	}
	if desc.HasWritable && !desc.Writable {
		return false
	}
	desc.Value, desc.HasValue = v, true
	o.shape.SetDescriptor(key, desc)
	slot := o.shape.GetOffset(key)
	if slot >= 0 && slot < len(o.slots) {
		o.slots[slot] = v
	}
	return true
}

// arrayDelete implements [[Delete]] for a canonical index: removing an own
// indexed element always succeeds (array indices have no individual
// configurability unless shape-installed), and never touches length.
func (o *Object) arrayDelete(key PropertyKey) (handled bool, result bool) {
	idx, ok := key.Index()
	if !ok {
		return false, false
	}
	if _, ok := o.shape.GetDescriptor(key); ok {
		return false, false
	}
	if idx < uint32(len(o.arrayDense)) {
		o.arrayDense[idx] = nil
	} else {
		delete(o.arraySparse, idx)
	}
	return true, true
}

// arrayIndexKeys returns the live canonical-index keys from dense+sparse
// storage, in arbitrary order (the caller, OwnPropertyKeys, sorts them).
func (o *Object) arrayIndexKeys() []PropertyKey {
	var out []PropertyKey
	for i, v := range o.arrayDense {
		if v != nil {
			out = append(out, IndexKey(uint32(i)))
		}
	}
	for idx := range o.arraySparse {
		out = append(out, IndexKey(idx))
	}
	return out
}

// arraySetLength implements the "writing length" algorithm (spec.md §4.4):
// coerce to canonical Uint32 (must exactly match ToNumber, else RangeError),
// honor the writable flag, and on shrink delete every own index >= newLength,
// stopping (and failing) at the first non-configurable shape-installed index
// encountered.
func (o *Object) arraySetLength(ctx *Context, desc Descriptor) bool {
	if !desc.HasValue {
		// A length descriptor touching only writable/enumerable/configurable
		// flags: writable may be narrowed, but enumerable/configurable are
		// fixed by the exotic invariant.
		if desc.HasEnum && desc.Enumerable {
			return false
		}
		if desc.HasConfig && desc.Configurable {
			return false
		}
		if desc.HasWritable {
			cur, _ := o.shape.GetDescriptor(StringKey("length"))
			cur.Writable = desc.Writable
			o.shape.SetDescriptor(StringKey("length"), cur)
		}
		return true
	}

	newLenF := ToNumber(ctx, desc.Value)
	if ctx.HasPendingException() {
		return false
	}
	// Exact ToUint32 modular reduction, then require it round-trips to the
	// same mathematical value (else RangeError, per ES ArraySetLength).
	newLenU32 := computeToUint32(newLenF)
	if float64(newLenU32) != newLenF {
		ctx.ThrowRangeError("Invalid array length")
		return false
	}

	if !o.arrayLengthWritable() {
		if newLenU32 != o.arrayLength {
			return false
		}
		return true
	}

	oldLen := o.arrayLength
	if newLenU32 >= oldLen {
		o.setArrayLengthValue(newLenU32)
		return true
	}

	// Shrinking: delete every own index >= newLenU32, highest first, honoring
	// non-configurable shape-installed indices (which stop the shrink).
	for idx := oldLen; idx > newLenU32; idx-- {
		i := idx - 1
		if shapeDesc, ok := o.shape.GetDescriptor(IndexKey(i)); ok {
			if shapeDesc.HasConfig && !shapeDesc.Configurable {
				o.setArrayLengthValue(i + 1)
				return false
			}
			o.shape.Remove(IndexKey(i))
			continue
		}
		if i < uint32(len(o.arrayDense)) {
			o.arrayDense[i] = nil
		} else {
			delete(o.arraySparse, i)
		}
	}
	o.setArrayLengthValue(newLenU32)
	return true
}

func computeToUint32(f float64) uint32 {
	if f != f { // NaN
		return 0
	}
	if f == 0 {
		return 0
	}
	m := mod4294967296(f)
	return uint32(m)
}

func mod4294967296(f float64) float64 {
	const modulus = 4294967296
	trunc := float64(int64(f))
	m := trunc - modulus*float64(int64(trunc/modulus))
	if m < 0 {
		m += modulus
	}
	return m
}

// ---------------------------------------------------------------------------
// push/pop/shift/unshift (spec.md §4.4), expressed in terms of indexed
// [[Get]]/[[Set]] and length adjustment, as ordinary Array.prototype methods
// would be grounded by an embedder's builtins layer.
// ---------------------------------------------------------------------------

// ArrayPush appends values, failing (TypeError via ctx) if the array is
// non-extensible or its length is non-writable.
func ArrayPush(ctx *Context, o *Object, values []Value) (newLength uint32, ok bool) {
	if !o.extensible {
		ctx.ThrowTypeError("Cannot add property, object is not extensible")
		return o.arrayLength, false
	}
	if !o.arrayLengthWritable() {
		ctx.ThrowTypeError("Cannot assign to read only property 'length'")
		return o.arrayLength, false
	}
	for _, v := range values {
		idx := o.arrayLength
		if !o.Set(ctx, IndexKey(idx), v, o) {
			return o.arrayLength, false
		}
	}
	return o.arrayLength, true
}

// ArrayPop removes and returns the last element, or Undefined if length==0.
func ArrayPop(ctx *Context, o *Object) Value {
	if o.arrayLength == 0 {
		return Undefined
	}
	last := o.arrayLength - 1
	v := o.Get(ctx, IndexKey(last), o)
	o.Delete(ctx, IndexKey(last))
	o.setArrayLengthValue(last)
	return v
}

// ArrayShift removes and returns the first element, re-keying every
// remaining index down by one (dense and sparse alike).
func ArrayShift(ctx *Context, o *Object) Value {
	if o.arrayLength == 0 {
		return Undefined
	}
	first := o.Get(ctx, IndexKey(0), o)
	for i := uint32(1); i < o.arrayLength; i++ {
		if v, found := o.arrayReadIndex(i); found {
			o.arrayWriteIndex(i-1, v)
		} else {
			if i-1 < uint32(len(o.arrayDense)) {
				o.arrayDense[i-1] = nil
			} else {
				delete(o.arraySparse, i-1)
			}
		}
	}
	last := o.arrayLength - 1
	if last < uint32(len(o.arrayDense)) {
		o.arrayDense[last] = nil
	} else {
		delete(o.arraySparse, last)
	}
	o.setArrayLengthValue(last)
	return first
}

// ArrayUnshift inserts values at the front, re-keying every existing index
// up by len(values).
func ArrayUnshift(ctx *Context, o *Object, values []Value) (newLength uint32, ok bool) {
	n := uint32(len(values))
	if n == 0 {
		return o.arrayLength, true
	}
	for i := o.arrayLength; i > 0; i-- {
		idx := i - 1
		if v, found := o.arrayReadIndex(idx); found {
			o.arrayWriteIndex(idx+n, v)
		} else {
			o.removeIndexFromDenseSparse(idx + n)
		}
	}
	for i, v := range values {
		o.arrayWriteIndex(uint32(i), v)
	}
	o.setArrayLengthValue(o.arrayLength + n)
	return o.arrayLength, true
}
