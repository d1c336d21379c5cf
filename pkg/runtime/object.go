package runtime

// ExoticKind tags which closed-set exotic behaviour an Object carries.
// Per spec.md §9's design note, the object model is a fixed record plus a
// tagged-variant exotic-data field rather than an open inheritance
// hierarchy: the set of exotic kinds is closed, so a kind switch in each of
// the seven internal methods is the whole dispatch mechanism.
type ExoticKind int

const (
	KindOrdinary ExoticKind = iota
	KindArray
	KindString
	KindTypedArray
	KindProxy
	KindWrapper
)

// TypedArrayKind names an element kind for TypedArrayExotic.
type TypedArrayKind int

const (
	TAInt8 TypedArrayKind = iota
	TAUint8
	TAUint8Clamped
	TAInt16
	TAUint16
	TAInt32
	TAUint32
	TAFloat32
	TAFloat64
	TABigInt64
	TABigUint64
)

// BytesPerElement returns the element size in bytes for k.
func (k TypedArrayKind) BytesPerElement() int {
	switch k {
	case TAInt8, TAUint8, TAUint8Clamped:
		return 1
	case TAInt16, TAUint16:
		return 2
	case TAInt32, TAUint32, TAFloat32:
		return 4
	case TAFloat64, TABigInt64, TABigUint64:
		return 8
	default:
		return 1
	}
}

// MaxDense is the dense-vector capacity for ArrayExotic storage before
// indices spill into the sparse map (spec.md §3 "ArrayExotic state").
const MaxDense = 10000

// Object is the ordinary-object record plus every exotic kind's state,
// per the closed tagged-variant design above. Every field outside `shape`/
// `slots`/`proto`/the three integrity flags belongs to exactly one exotic
// kind and is ignored for the others.
type Object struct {
	shape *Shape
	slots []Value

	proto      *Object
	extensible bool
	sealed     bool
	frozen     bool

	// Wrappers (Boolean/Number/String/BigInt/Symbol objects).
	primitiveValue    Value
	hasPrimitiveValue bool

	// [[Construct]] dispatch tag, consulted by the Executor.
	constructorKind string

	class string // debug/diagnostic class tag, e.g. "Array", "Object", "Proxy"

	exotic ExoticKind

	// ArrayExotic state (spec.md §4.4).
	arrayDense  []Value
	arraySparse map[uint32]Value
	arrayLength uint32
	denseCap    int // Config.MaxDenseArrayCapacity at construction time

	// StringExotic state (spec.md §4.5).
	stringBacking String

	// TypedArrayExotic state (spec.md §3, §4.5).
	typedBuffer         []byte
	typedByteOffset     int
	typedLength         int
	typedKind           TypedArrayKind
	typedLengthTracking bool

	// ProxyExotic state (spec.md §3, §4.6).
	proxyTarget  *Object
	proxyHandler *Object
	proxyRevoked bool

	// isHTMLDDA marks the Annex B `document.all` emulation object: ToBoolean
	// and the == algorithm special-case it to behave as falsy/loosely-equal-
	// to-null despite being an Object (spec.md §4.1).
	isHTMLDDA bool

	// Callable/constructable objects are represented as ordinary (or
	// exotic) objects carrying an opaque handle the host.Executor
	// understands; pkg/runtime never calls into fnHandle itself.
	fnHandle      any
	callable      bool
	constructable bool
}

// NewOrdinaryObject creates an ordinary object with the given prototype
// (may be nil) and an empty shape.
func NewOrdinaryObject(proto *Object) *Object {
	return &Object{
		shape:      NewShape(),
		proto:      proto,
		extensible: true,
		class:      "Object",
	}
}

// Class returns the diagnostic class tag (e.g. for Object.prototype.toString
// emulation); not itself part of the spec's internal methods.
func (o *Object) Class() string { return o.class }
func (o *Object) SetClass(c string) { o.class = c }

// ExoticKind reports which exotic behaviour this object carries.
func (o *Object) ExoticKind() ExoticKind { return o.exotic }

func (o *Object) Kind() ValueType { return TypeObject }
func (o *Object) String() string  { return "[object " + o.class + "]" }

// IsCallable/IsConstructable/SetCallable let an embedder mark function
// objects; pkg/runtime's own logic only ever reads these flags.
func (o *Object) IsCallable() bool      { return o.callable }
func (o *Object) IsConstructable() bool { return o.constructable }
func (o *Object) SetCallable(handle any, constructable bool) {
	o.callable = true
	o.constructable = constructable
	o.fnHandle = handle
}
func (o *Object) FnHandle() any { return o.fnHandle }

func (o *Object) ConstructorKind() string        { return o.constructorKind }
func (o *Object) SetConstructorKind(kind string)  { o.constructorKind = kind }

// MarkHTMLDDA flags o as the Annex B `document.all` emulation marker.
func (o *Object) MarkHTMLDDA() { o.isHTMLDDA = true }
func (o *Object) IsHTMLDDA() bool { return o.isHTMLDDA }

// ---------------------------------------------------------------------------
// [[GetPrototypeOf]] / [[SetPrototypeOf]] / [[IsExtensible]] / [[PreventExtensions]]
// ---------------------------------------------------------------------------

func (o *Object) GetPrototypeOf(ctx *Context) *Object {
	if o.exotic == KindProxy {
		return o.proxyGetPrototypeOf(ctx)
	}
	return o.proto
}

// SetPrototypeOf implements [[SetPrototypeOf]]: rejects if non-extensible
// and p != current, and rejects cycles by walking p's chain for self.
func (o *Object) SetPrototypeOf(ctx *Context, p *Object) bool {
	if o.exotic == KindProxy {
		return o.proxySetPrototypeOf(ctx, p)
	}
	if p == o.proto {
		return true
	}
	if !o.extensible {
		return false
	}
	// Cycle check: walk p's chain looking for o.
	current := p
	depth := 0
	for current != nil {
		depth++
		if depth > ctx.Config.MaxCallStackDepth {
			ctx.ThrowRangeError("prototype chain too deep")
			return false
		}
		if current == o {
			return false
		}
		if current.exotic == KindProxy {
			// Proxies opt out of the static cycle walk; their own
			// getPrototypeOf trap is consulted lazily during lookup.
			break
		}
		current = current.proto
	}
	o.proto = p
	return true
}

func (o *Object) IsExtensible(ctx *Context) bool {
	if o.exotic == KindProxy {
		return o.proxyIsExtensible(ctx)
	}
	return o.extensible
}

func (o *Object) PreventExtensions(ctx *Context) bool {
	if o.exotic == KindProxy {
		return o.proxyPreventExtensions(ctx)
	}
	o.extensible = false
	return true
}

// ---------------------------------------------------------------------------
// [[GetOwnProperty]]
// ---------------------------------------------------------------------------

func (o *Object) GetOwnProperty(ctx *Context, key PropertyKey) (Descriptor, bool) {
	switch o.exotic {
	case KindProxy:
		return o.proxyGetOwnProperty(ctx, key)
	case KindArray:
		if d, ok := o.arrayGetOwnProperty(key); ok {
			return d, true
		}
	case KindString:
		if d, ok := o.stringGetOwnProperty(key); ok {
			return d, true
		}
	case KindTypedArray:
		if d, ok := o.typedArrayGetOwnProperty(key); ok {
			return d, true
		}
	}
	return o.shape.GetDescriptor(key)
}

// hasOwnNamed/GetOwnNamed/defineNamedBool/defineNamedValue are small string-
// keyed conveniences used by descriptor.go's ToPropertyDescriptor/
// FromPropertyDescriptor bridge; they always target ordinary shape storage.
func (o *Object) hasOwnNamed(name string) bool {
	_, ok := o.shape.GetDescriptor(StringKey(name))
	return ok
}

func (o *Object) GetOwnNamed(ctx *Context, name string) Value {
	return o.Get(ctx, StringKey(name), o)
}

func (o *Object) defineNamedBool(name string, b bool) {
	o.DefineOwnProperty(nil, StringKey(name), CompleteDataDescriptor().withValue(BoolValue(b), true, true, true))
}

func (o *Object) defineNamedValue(name string, v Value) {
	o.DefineOwnProperty(nil, StringKey(name), CompleteDataDescriptor().withValue(v, true, true, true))
}

// ---------------------------------------------------------------------------
// [[DefineOwnProperty]] — ValidateAndApplyPropertyDescriptor (spec.md §4.3).
// ---------------------------------------------------------------------------

func (o *Object) DefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) bool {
	switch o.exotic {
	case KindProxy:
		return o.proxyDefineOwnProperty(ctx, key, desc)
	case KindArray:
		if handled, result := o.arrayDefineOwnProperty(ctx, key, desc); handled {
			return result
		}
	case KindString:
		if handled, result := o.stringDefineOwnProperty(ctx, key, desc); handled {
			return result
		}
	case KindTypedArray:
		if handled, result := o.typedArrayDefineOwnProperty(ctx, key, desc); handled {
			return result
		}
	}
	return o.ordinaryDefineOwnProperty(ctx, key, desc)
}

// ordinaryDefineOwnProperty implements ValidateAndApplyPropertyDescriptor
// for a plain shape-backed property, shared by the ordinary path and by
// exotic kinds' fallthrough for non-indexed keys.
func (o *Object) ordinaryDefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) bool {
	current, exists := o.shape.GetDescriptor(key)

	if !exists {
		if !o.extensible {
			return false
		}
		slot := len(o.slots)
		o.slots = append(o.slots, descriptorInitialValue(desc))
		o.shape.Add(key, completeFromPartial(desc), slot)
		return true
	}

	// No change requested: trivially succeeds (also covers "generic
	// descriptor with no fields", spec.md §4.3 DefineOwnProperty note).
	if isNoOpDescriptor(desc) {
		return true
	}

	if !current.Configurable {
		if desc.HasConfig && desc.Configurable {
			return false
		}
		if desc.HasEnum && desc.Enumerable != current.Enumerable {
			return false
		}
		if desc.IsAccessorDescriptor() != current.IsAccessorDescriptor() && !desc.IsGenericDescriptor() {
			return false
		}
		if current.IsDataDescriptor() && desc.IsDataDescriptor() {
			if !current.Writable {
				if desc.HasWritable && desc.Writable {
					return false
				}
				if desc.HasValue && !SameValue(desc.Value, current.Value) {
					return false
				}
			}
		} else if current.IsAccessorDescriptor() && desc.IsAccessorDescriptor() {
			if desc.HasGet && !sameFunctionOrBoth(desc.Get, current.Get) {
				return false
			}
			if desc.HasSet && !sameFunctionOrBoth(desc.Set, current.Set) {
				return false
			}
		}
	}

	merged := Merge(current, desc)
	o.shape.SetDescriptor(key, merged)
	if merged.IsDataDescriptor() && merged.HasValue {
		slot := o.shape.GetOffset(key)
		if slot >= 0 && slot < len(o.slots) {
			o.slots[slot] = merged.Value
		}
	}
	return true
}

func sameFunctionOrBoth(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return SameValue(a, b)
}

func descriptorInitialValue(desc Descriptor) Value {
	if desc.IsDataDescriptor() && desc.HasValue {
		return desc.Value
	}
	return Undefined
}

func completeFromPartial(desc Descriptor) Descriptor {
	var base Descriptor
	if desc.IsAccessorDescriptor() {
		base = CompleteAccessorDescriptor()
	} else {
		base = CompleteDataDescriptor()
	}
	return Merge(base, desc)
}

func isNoOpDescriptor(desc Descriptor) bool {
	return !desc.HasValue && !desc.HasWritable && !desc.HasGet && !desc.HasSet &&
		!desc.HasEnum && !desc.HasConfig
}

// ---------------------------------------------------------------------------
// [[HasProperty]]
// ---------------------------------------------------------------------------

func (o *Object) HasProperty(ctx *Context, key PropertyKey) bool {
	if o.exotic == KindProxy {
		return o.proxyHasProperty(ctx, key)
	}
	if _, ok := o.GetOwnProperty(ctx, key); ok {
		return true
	}
	proto := o.GetPrototypeOf(ctx)
	if proto == nil {
		return false
	}
	if !ctx.enterChain() {
		return false
	}
	defer ctx.exitChain()
	return proto.HasProperty(ctx, key)
}

// ---------------------------------------------------------------------------
// [[Get]] — own data/accessor, else delegate to prototype with same receiver.
// ---------------------------------------------------------------------------

func (o *Object) Get(ctx *Context, key PropertyKey, receiver Value) Value {
	if o.exotic == KindProxy {
		return o.proxyGet(ctx, key, receiver)
	}
	if o.exotic == KindArray {
		if v, handled := o.arrayGet(ctx, key, receiver); handled {
			return v
		}
	}
	if o.exotic == KindString {
		if v, handled := o.stringGet(key); handled {
			return v
		}
	}
	if o.exotic == KindTypedArray {
		if v, handled := o.typedArrayGet(ctx, key); handled {
			return v
		}
	}

	desc, ok := o.GetOwnProperty(ctx, key)
	if !ok {
		proto := o.GetPrototypeOf(ctx)
		if proto == nil {
			return Undefined
		}
		if !ctx.enterChain() {
			return Undefined
		}
		defer ctx.exitChain()
		return proto.Get(ctx, key, receiver)
	}

	if desc.IsAccessorDescriptor() {
		if desc.Get == nil || IsUndefined(desc.Get) {
			return Undefined
		}
		return ctx.CallFunction(desc.Get, receiver, nil)
	}
	return desc.Value
}

// ---------------------------------------------------------------------------
// [[Set]] — find own-or-inherited descriptor, thread receiver (spec.md §4.3).
// ---------------------------------------------------------------------------

func (o *Object) Set(ctx *Context, key PropertyKey, v Value, receiver Value) bool {
	if o.exotic == KindProxy {
		return o.proxySet(ctx, key, v, receiver)
	}
	if o.exotic == KindArray {
		if handled, result := o.arraySet(ctx, key, v, receiver); handled {
			return result
		}
	}
	if o.exotic == KindString {
		if handled, result := o.stringSet(key); handled {
			return result
		}
	}
	if o.exotic == KindTypedArray {
		if handled, result := o.typedArraySet(ctx, key, v); handled {
			return result
		}
	}

	ownDesc, ok := o.GetOwnProperty(ctx, key)
	if !ok {
		proto := o.GetPrototypeOf(ctx)
		if proto != nil {
			if !ctx.enterChain() {
				return false
			}
			inherited := proto.setInherited(ctx, key, v, receiver)
			ctx.exitChain()
			return inherited
		}
		return createDataOnReceiver(ctx, receiver, key, v)
	}

	if ownDesc.IsAccessorDescriptor() {
		if ownDesc.Set == nil || IsUndefined(ownDesc.Set) {
			return false
		}
		ctx.CallFunction(ownDesc.Set, receiver, []Value{v})
		return !ctx.HasPendingException()
	}

	if ownDesc.HasWritable && !ownDesc.Writable {
		return false
	}

	receiverObj, isObj := receiver.(*Object)
	if !isObj {
		return false
	}
	if receiverObj == o {
		return o.DefineOwnProperty(ctx, key, Descriptor{Value: v, HasValue: true})
	}

	existingOnReceiver, hasOnReceiver := receiverObj.GetOwnProperty(ctx, key)
	if hasOnReceiver {
		if existingOnReceiver.IsAccessorDescriptor() {
			return false
		}
		if existingOnReceiver.HasWritable && !existingOnReceiver.Writable {
			return false
		}
		return receiverObj.DefineOwnProperty(ctx, key, Descriptor{Value: v, HasValue: true})
	}
	return receiverObj.DefineOwnProperty(ctx, key, CompleteDataDescriptor().withValue(v, true, true, true))
}

// setInherited implements the prototype-chain walk portion of [[Set]]:
// find an own-or-inherited descriptor for key starting at o (already a
// prototype of the original receiver) and thread the original receiver
// through, per spec.md §4.3 / §8 scenario 4.
func (o *Object) setInherited(ctx *Context, key PropertyKey, v Value, receiver Value) bool {
	ownDesc, ok := o.GetOwnProperty(ctx, key)
	if !ok {
		proto := o.GetPrototypeOf(ctx)
		if proto == nil {
			return createDataOnReceiver(ctx, receiver, key, v)
		}
		if !ctx.enterChain() {
			return false
		}
		defer ctx.exitChain()
		return proto.setInherited(ctx, key, v, receiver)
	}

	if ownDesc.IsAccessorDescriptor() {
		if ownDesc.Set == nil || IsUndefined(ownDesc.Set) {
			return false
		}
		ctx.CallFunction(ownDesc.Set, receiver, []Value{v})
		return !ctx.HasPendingException()
	}

	if ownDesc.HasWritable && !ownDesc.Writable {
		return false
	}
	return createDataOnReceiver(ctx, receiver, key, v)
}

func createDataOnReceiver(ctx *Context, receiver Value, key PropertyKey, v Value) bool {
	receiverObj, isObj := receiver.(*Object)
	if !isObj {
		return false
	}
	existing, has := receiverObj.GetOwnProperty(ctx, key)
	if has {
		if existing.IsAccessorDescriptor() || (existing.HasWritable && !existing.Writable) {
			return false
		}
		return receiverObj.DefineOwnProperty(ctx, key, Descriptor{Value: v, HasValue: true})
	}
	return receiverObj.DefineOwnProperty(ctx, key, CompleteDataDescriptor().withValue(v, true, true, true))
}

// ---------------------------------------------------------------------------
// [[Delete]]
// ---------------------------------------------------------------------------

func (o *Object) Delete(ctx *Context, key PropertyKey) bool {
	if o.exotic == KindProxy {
		return o.proxyDelete(ctx, key)
	}
	if o.exotic == KindArray {
		if handled, result := o.arrayDelete(key); handled {
			return result
		}
	}
	if o.exotic == KindString {
		if handled, result := o.stringDelete(key); handled {
			return result
		}
	}
	if o.exotic == KindTypedArray {
		if handled, result := o.typedArrayDelete(key); handled {
			return result
		}
	}

	desc, ok := o.shape.GetDescriptor(key)
	if !ok {
		return true
	}
	if desc.HasConfig && !desc.Configurable {
		return false
	}
	if !desc.HasConfig {
		return false
	}
	o.shape.Remove(key)
	if o.shape.ShouldCompact() {
		o.compactSlots()
	}
	return true
}

func (o *Object) compactSlots() {
	permutation := o.shape.Compact()
	newSlots := make([]Value, len(permutation))
	for i, oldIdx := range permutation {
		if oldIdx >= 0 && oldIdx < len(o.slots) {
			newSlots[i] = o.slots[oldIdx]
		}
	}
	o.slots = newSlots
}

// ---------------------------------------------------------------------------
// [[OwnPropertyKeys]] — integer-indexed ascending, then Strings in
// insertion order, then Symbols in insertion order (spec.md §4.3).
// ---------------------------------------------------------------------------

func (o *Object) OwnPropertyKeys(ctx *Context) []PropertyKey {
	if o.exotic == KindProxy {
		return o.proxyOwnKeys(ctx)
	}

	var indices []PropertyKey
	var strings []PropertyKey
	var symbols []PropertyKey

	switch o.exotic {
	case KindArray:
		indices = append(indices, o.arrayIndexKeys()...)
	case KindString:
		indices = append(indices, o.stringIndexKeys()...)
	case KindTypedArray:
		indices = append(indices, o.typedArrayIndexKeys()...)
	}

	for _, k := range o.shape.Keys() {
		switch k.Kind() {
		case KeyIndex:
			indices = append(indices, k)
		case KeySymbol:
			symbols = append(symbols, k)
		default:
			strings = append(strings, k)
		}
	}

	sortIndexKeys(indices)

	out := make([]PropertyKey, 0, len(indices)+len(strings)+len(symbols))
	out = append(out, indices...)
	out = append(out, strings...)
	out = append(out, symbols...)
	return out
}

func sortIndexKeys(keys []PropertyKey) {
	// Small insertion sort: own-property-key lists are typically short,
	// and this avoids importing sort for a handful of uint32 compares.
	for i := 1; i < len(keys); i++ {
		j := i
		for j > 0 {
			a, _ := keys[j-1].Index()
			b, _ := keys[j].Index()
			if a <= b {
				break
			}
			keys[j-1], keys[j] = keys[j], keys[j-1]
			j--
		}
	}
}

// ---------------------------------------------------------------------------
// Integrity levels (spec.md §4.3 "Integrity levels interact with...").
// ---------------------------------------------------------------------------

// Seal sets every own property non-configurable and clears extensible.
func (o *Object) Seal(ctx *Context) {
	for _, k := range o.OwnPropertyKeys(ctx) {
		desc, ok := o.GetOwnProperty(ctx, k)
		if !ok || !desc.Configurable {
			continue
		}
		desc.Configurable, desc.HasConfig = false, true
		o.DefineOwnProperty(ctx, k, desc)
	}
	o.extensible = false
	o.sealed = true
}

// Freeze additionally sets every own data property non-writable.
func (o *Object) Freeze(ctx *Context) {
	for _, k := range o.OwnPropertyKeys(ctx) {
		desc, ok := o.GetOwnProperty(ctx, k)
		if !ok {
			continue
		}
		changed := false
		if desc.Configurable {
			desc.Configurable, desc.HasConfig = false, true
			changed = true
		}
		if desc.IsDataDescriptor() && desc.Writable {
			desc.Writable, desc.HasWritable = false, true
			changed = true
		}
		if changed {
			o.DefineOwnProperty(ctx, k, desc)
		}
	}
	o.extensible = false
	o.sealed = true
	o.frozen = true
}

func (o *Object) IsSealed() bool { return o.sealed }
func (o *Object) IsFrozen() bool { return o.frozen }

// Prototype returns the raw prototype field (ordinary objects only; use
// GetPrototypeOf for the spec-correct, Proxy-aware accessor).
func (o *Object) Prototype() *Object { return o.proto }
