package runtime

// NewProxyExotic creates a ProxyExotic object wrapping target with handler
// (spec.md §4.6, §3). target must be an Object; handler is the trap table.
func NewProxyExotic(target *Object, handler *Object) *Object {
	o := &Object{shape: NewShape(), extensible: true, class: "Proxy"}
	o.exotic = KindProxy
	o.proxyTarget = target
	o.proxyHandler = handler
	return o
}

// ProxyRevoke marks the proxy revoked: every subsequent trap dispatch
// throws TypeError (spec.md §4.6, §3 "revoked flag").
func (o *Object) ProxyRevoke() {
	o.proxyRevoked = true
}

// keyToTrapArg converts a PropertyKey to the String-or-Symbol Value form
// traps receive (spec.md §4.6 "numeric indices become decimal strings").
func keyToTrapArg(key PropertyKey) Value {
	if sym, ok := key.Symbol(); ok {
		return sym
	}
	return StringValue(key.String())
}

// proxyTrap resolves the named trap from the handler. It returns
// (nil, true) when the trap is absent (undefined/null) — the caller must
// forward to target — and (nil, false) when revoked, the handler lookup
// threw, or the trap is present but not callable (a TypeError has already
// been set on ctx in all three failure cases).
func (o *Object) proxyTrap(ctx *Context, name string) (trap Value, ok bool) {
	if o.proxyRevoked {
		ctx.ThrowTypeError("Cannot perform '%s' on a proxy that has been revoked", name)
		return nil, false
	}
	trapVal := o.proxyHandler.Get(ctx, StringKey(name), o.proxyHandler)
	if ctx.HasPendingException() {
		return nil, false
	}
	if IsNullOrUndefined(trapVal) {
		return nil, true
	}
	if !ctx.IsCallable(trapVal) {
		ctx.ThrowTypeError("Proxy trap '%s' is not a function", name)
		return nil, false
	}
	return trapVal, true
}

// ---------------------------------------------------------------------------
// [[GetPrototypeOf]] / [[SetPrototypeOf]] / [[IsExtensible]] / [[PreventExtensions]]
// ---------------------------------------------------------------------------

func (o *Object) proxyGetPrototypeOf(ctx *Context) *Object {
	trap, ok := o.proxyTrap(ctx, "getPrototypeOf")
	if !ok {
		return nil
	}
	target := o.proxyTarget
	if trap == nil {
		return target.GetPrototypeOf(ctx)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target})
	if ctx.HasPendingException() {
		return nil
	}
	var resultObj *Object
	if !IsNull(result) {
		obj, isObj := result.(*Object)
		if !isObj {
			ctx.ThrowTypeError("getPrototypeOf trap must return an object or null")
			return nil
		}
		resultObj = obj
	}
	if !target.IsExtensible(ctx) {
		targetProto := target.GetPrototypeOf(ctx)
		if resultObj != targetProto {
			ctx.ThrowTypeError("getPrototypeOf trap result inconsistent with non-extensible target")
			return nil
		}
	}
	return resultObj
}

func (o *Object) proxySetPrototypeOf(ctx *Context, p *Object) bool {
	trap, ok := o.proxyTrap(ctx, "setPrototypeOf")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.SetPrototypeOf(ctx, p)
	}
	var arg Value = Null
	if p != nil {
		arg = p
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, arg})
	if ctx.HasPendingException() {
		return false
	}
	if !ToBoolean(result) {
		return false
	}
	if !target.IsExtensible(ctx) && p != target.GetPrototypeOf(ctx) {
		ctx.ThrowTypeError("setPrototypeOf trap result inconsistent with non-extensible target")
		return false
	}
	return true
}

func (o *Object) proxyIsExtensible(ctx *Context) bool {
	trap, ok := o.proxyTrap(ctx, "isExtensible")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.IsExtensible(ctx)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target})
	if ctx.HasPendingException() {
		return false
	}
	b := ToBoolean(result)
	if b != target.IsExtensible(ctx) {
		ctx.ThrowTypeError("isExtensible trap result inconsistent with target")
		return false
	}
	return b
}

func (o *Object) proxyPreventExtensions(ctx *Context) bool {
	trap, ok := o.proxyTrap(ctx, "preventExtensions")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.PreventExtensions(ctx)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target})
	if ctx.HasPendingException() {
		return false
	}
	b := ToBoolean(result)
	if b && target.IsExtensible(ctx) {
		ctx.ThrowTypeError("preventExtensions trap returned true but target is still extensible")
		return false
	}
	return b
}

// ---------------------------------------------------------------------------
// [[GetOwnProperty]] / [[DefineOwnProperty]] / [[HasProperty]] / [[Delete]] / [[OwnPropertyKeys]]
// ---------------------------------------------------------------------------

func (o *Object) proxyGetOwnProperty(ctx *Context, key PropertyKey) (Descriptor, bool) {
	trap, ok := o.proxyTrap(ctx, "getOwnPropertyDescriptor")
	if !ok {
		return Descriptor{}, false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.GetOwnProperty(ctx, key)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key)})
	if ctx.HasPendingException() {
		return Descriptor{}, false
	}
	targetDesc, targetHas := target.GetOwnProperty(ctx, key)

	if IsUndefined(result) {
		if targetHas && !targetDesc.Configurable {
			ctx.ThrowTypeError("getOwnPropertyDescriptor trap cannot report a non-configurable own target property as undefined")
			return Descriptor{}, false
		}
		if targetHas && !target.IsExtensible(ctx) {
			ctx.ThrowTypeError("getOwnPropertyDescriptor trap cannot report an own target property as undefined on a non-extensible target")
			return Descriptor{}, false
		}
		return Descriptor{}, false
	}

	resultObj, isObj := result.(*Object)
	if !isObj {
		ctx.ThrowTypeError("getOwnPropertyDescriptor trap must return an object or undefined")
		return Descriptor{}, false
	}
	desc, ok := ToPropertyDescriptor(ctx, resultObj)
	if !ok {
		return Descriptor{}, false
	}
	desc = completeFromPartial(desc)

	if !desc.Configurable {
		if !targetHas {
			ctx.ThrowTypeError("getOwnPropertyDescriptor trap cannot report non-configurable for a property absent on target")
			return Descriptor{}, false
		}
		if !targetDesc.Configurable {
			// ok: reporting non-configurable mirrors target
		}
	}
	if !target.IsExtensible(ctx) && !targetHas {
		ctx.ThrowTypeError("getOwnPropertyDescriptor trap cannot conjure a property absent on a non-extensible target")
		return Descriptor{}, false
	}
	return desc, true
}

func (o *Object) proxyDefineOwnProperty(ctx *Context, key PropertyKey, desc Descriptor) bool {
	trap, ok := o.proxyTrap(ctx, "defineProperty")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.DefineOwnProperty(ctx, key, desc)
	}
	descObj := FromPropertyDescriptor(ctx, completeFromPartial(desc))
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key), descObj})
	if ctx.HasPendingException() {
		return false
	}
	if !ToBoolean(result) {
		return false
	}
	targetDesc, targetHas := target.GetOwnProperty(ctx, key)
	extensible := target.IsExtensible(ctx)
	settingConfigFalse := desc.HasConfig && !desc.Configurable

	if !targetHas {
		if !extensible {
			ctx.ThrowTypeError("defineProperty trap cannot add a property to a non-extensible target")
			return false
		}
		if settingConfigFalse {
			ctx.ThrowTypeError("defineProperty trap cannot add a non-configurable property absent on target")
			return false
		}
		return true
	}
	if !targetDesc.Configurable && settingConfigFalse {
		// redeclaring an already-non-configurable property as
		// non-configurable is compatible.
		return true
	}
	return true
}

func (o *Object) proxyHasProperty(ctx *Context, key PropertyKey) bool {
	trap, ok := o.proxyTrap(ctx, "has")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.HasProperty(ctx, key)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key)})
	if ctx.HasPendingException() {
		return false
	}
	b := ToBoolean(result)
	if !b {
		targetDesc, targetHas := target.GetOwnProperty(ctx, key)
		if targetHas {
			if !targetDesc.Configurable {
				ctx.ThrowTypeError("has trap cannot report a non-configurable own target property as absent")
				return false
			}
			if !target.IsExtensible(ctx) {
				ctx.ThrowTypeError("has trap cannot report an own property as absent on a non-extensible target")
				return false
			}
		}
	}
	return b
}

func (o *Object) proxyGet(ctx *Context, key PropertyKey, receiver Value) Value {
	trap, ok := o.proxyTrap(ctx, "get")
	if !ok {
		return Undefined
	}
	target := o.proxyTarget
	if trap == nil {
		return target.Get(ctx, key, receiver)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key), receiver})
	if ctx.HasPendingException() {
		return Undefined
	}
	targetDesc, targetHas := target.GetOwnProperty(ctx, key)
	if targetHas && !targetDesc.Configurable {
		if targetDesc.IsDataDescriptor() && !targetDesc.Writable {
			if !SameValue(result, targetDesc.Value) {
				ctx.ThrowTypeError("get trap result inconsistent with non-writable non-configurable target property")
				return Undefined
			}
		}
		if targetDesc.IsAccessorDescriptor() && (targetDesc.Get == nil || IsUndefined(targetDesc.Get)) {
			if !IsUndefined(result) {
				ctx.ThrowTypeError("get trap must return undefined for a non-configurable accessor property with no getter")
				return Undefined
			}
		}
	}
	return result
}

func (o *Object) proxySet(ctx *Context, key PropertyKey, v Value, receiver Value) bool {
	trap, ok := o.proxyTrap(ctx, "set")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.Set(ctx, key, v, receiver)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key), v, receiver})
	if ctx.HasPendingException() {
		return false
	}
	if !ToBoolean(result) {
		return false
	}
	targetDesc, targetHas := target.GetOwnProperty(ctx, key)
	if targetHas && !targetDesc.Configurable {
		if targetDesc.IsDataDescriptor() && !targetDesc.Writable {
			if !SameValue(v, targetDesc.Value) {
				ctx.ThrowTypeError("set trap result inconsistent with non-writable non-configurable target property")
				return false
			}
		}
		if targetDesc.IsAccessorDescriptor() && (targetDesc.Set == nil || IsUndefined(targetDesc.Set)) {
			ctx.ThrowTypeError("set trap cannot succeed for a non-configurable accessor property with no setter")
			return false
		}
	}
	return true
}

func (o *Object) proxyDelete(ctx *Context, key PropertyKey) bool {
	trap, ok := o.proxyTrap(ctx, "deleteProperty")
	if !ok {
		return false
	}
	target := o.proxyTarget
	if trap == nil {
		return target.Delete(ctx, key)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target, keyToTrapArg(key)})
	if ctx.HasPendingException() {
		return false
	}
	if !ToBoolean(result) {
		return false
	}
	targetDesc, targetHas := target.GetOwnProperty(ctx, key)
	if !targetHas {
		return true
	}
	if !targetDesc.Configurable {
		ctx.ThrowTypeError("deleteProperty trap cannot report success for a non-configurable target property")
		return false
	}
	if !target.IsExtensible(ctx) {
		ctx.ThrowTypeError("deleteProperty trap cannot report success for an own property of a non-extensible target")
		return false
	}
	return true
}

func (o *Object) proxyOwnKeys(ctx *Context) []PropertyKey {
	trap, ok := o.proxyTrap(ctx, "ownKeys")
	if !ok {
		return nil
	}
	target := o.proxyTarget
	if trap == nil {
		return target.OwnPropertyKeys(ctx)
	}
	result := ctx.CallFunction(trap, o.proxyHandler, []Value{target})
	if ctx.HasPendingException() {
		return nil
	}
	resultObj, isObj := result.(*Object)
	if !isObj {
		ctx.ThrowTypeError("ownKeys trap must return an object (array-like of keys)")
		return nil
	}
	length := resultObj.Get(ctx, StringKey("length"), resultObj)
	n := ToLength(ctx, length)
	if ctx.HasPendingException() {
		return nil
	}

	seen := make(map[PropertyKey]bool)
	keys := make([]PropertyKey, 0, n)
	for i := int64(0); i < n; i++ {
		elem := resultObj.Get(ctx, IndexKey(uint32(i)), resultObj)
		if ctx.HasPendingException() {
			return nil
		}
		var key PropertyKey
		switch v := elem.(type) {
		case String:
			key = StringKey(v.String())
		case *Symbol:
			key = SymbolKey(v)
		default:
			ctx.ThrowTypeError("ownKeys trap result must contain only Strings and Symbols")
			return nil
		}
		if seen[key] {
			ctx.ThrowTypeError("ownKeys trap result must not contain duplicate keys")
			return nil
		}
		seen[key] = true
		keys = append(keys, key)
	}

	targetExtensible := target.IsExtensible(ctx)
	for _, k := range target.OwnPropertyKeys(ctx) {
		desc, has := target.GetOwnProperty(ctx, k)
		if !has {
			continue
		}
		if !desc.Configurable && !seen[k] {
			ctx.ThrowTypeError("ownKeys trap result must include every non-configurable own key of target")
			return nil
		}
		if !targetExtensible && !seen[k] {
			ctx.ThrowTypeError("ownKeys trap result must equal target's own keys for a non-extensible target")
			return nil
		}
	}
	if !targetExtensible && len(keys) != len(target.OwnPropertyKeys(ctx)) {
		ctx.ThrowTypeError("ownKeys trap result must equal target's own keys for a non-extensible target")
		return nil
	}
	return keys
}
