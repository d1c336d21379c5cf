package runtime

// This file exposes the internal methods through a Reflect-shaped pure
// functional surface (spec.md §4.7): "name-for-name expose the internal
// methods above ... coerce each argument exactly as ES specifies".
// Every function here takes an explicit target Value instead of dispatching
// on a dynamic "this", mirroring how Reflect.* methods reject non-Object
// targets with a TypeError rather than treating them as `this`.

func requireObject(ctx *Context, v Value, who string) (*Object, bool) {
	obj, ok := v.(*Object)
	if !ok {
		ctx.ThrowTypeError("Reflect.%s called on non-object", who)
		return nil, false
	}
	return obj, true
}

// ReflectGet implements Reflect.get(target, key[, receiver]).
func ReflectGet(ctx *Context, target Value, keyValue Value, receiver Value) Value {
	obj, ok := requireObject(ctx, target, "get")
	if !ok {
		return Undefined
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return Undefined
	}
	if receiver == nil {
		receiver = obj
	}
	return obj.Get(ctx, key, receiver)
}

// ReflectSet implements Reflect.set(target, key, value[, receiver]).
func ReflectSet(ctx *Context, target Value, keyValue Value, v Value, receiver Value) bool {
	obj, ok := requireObject(ctx, target, "set")
	if !ok {
		return false
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return false
	}
	if receiver == nil {
		receiver = obj
	}
	return obj.Set(ctx, key, v, receiver)
}

// ReflectHas implements Reflect.has(target, key).
func ReflectHas(ctx *Context, target Value, keyValue Value) bool {
	obj, ok := requireObject(ctx, target, "has")
	if !ok {
		return false
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return false
	}
	return obj.HasProperty(ctx, key)
}

// ReflectDeleteProperty implements Reflect.deleteProperty(target, key).
func ReflectDeleteProperty(ctx *Context, target Value, keyValue Value) bool {
	obj, ok := requireObject(ctx, target, "deleteProperty")
	if !ok {
		return false
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return false
	}
	return obj.Delete(ctx, key)
}

// ReflectDefineProperty implements Reflect.defineProperty(target, key, attrs).
func ReflectDefineProperty(ctx *Context, target Value, keyValue Value, attrs Value) bool {
	obj, ok := requireObject(ctx, target, "defineProperty")
	if !ok {
		return false
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return false
	}
	attrsObj, ok := requireObject(ctx, attrs, "defineProperty")
	if !ok {
		return false
	}
	desc, ok := ToPropertyDescriptor(ctx, attrsObj)
	if !ok {
		return false
	}
	return obj.DefineOwnProperty(ctx, key, desc)
}

// ReflectGetOwnPropertyDescriptor implements
// Reflect.getOwnPropertyDescriptor(target, key), returning Undefined if
// absent.
func ReflectGetOwnPropertyDescriptor(ctx *Context, target Value, keyValue Value) Value {
	obj, ok := requireObject(ctx, target, "getOwnPropertyDescriptor")
	if !ok {
		return Undefined
	}
	key := ToPropertyKey(ctx, keyValue)
	if ctx.HasPendingException() {
		return Undefined
	}
	desc, has := obj.GetOwnProperty(ctx, key)
	if !has {
		return Undefined
	}
	return FromPropertyDescriptor(ctx, desc)
}

// ReflectGetPrototypeOf implements Reflect.getPrototypeOf(target).
func ReflectGetPrototypeOf(ctx *Context, target Value) Value {
	obj, ok := requireObject(ctx, target, "getPrototypeOf")
	if !ok {
		return Undefined
	}
	proto := obj.GetPrototypeOf(ctx)
	if proto == nil {
		return Null
	}
	return proto
}

// ReflectSetPrototypeOf implements Reflect.setPrototypeOf(target, proto).
func ReflectSetPrototypeOf(ctx *Context, target Value, proto Value) bool {
	obj, ok := requireObject(ctx, target, "setPrototypeOf")
	if !ok {
		return false
	}
	if IsNull(proto) {
		return obj.SetPrototypeOf(ctx, nil)
	}
	protoObj, ok := requireObject(ctx, proto, "setPrototypeOf")
	if !ok {
		return false
	}
	return obj.SetPrototypeOf(ctx, protoObj)
}

// ReflectIsExtensible implements Reflect.isExtensible(target).
func ReflectIsExtensible(ctx *Context, target Value) bool {
	obj, ok := requireObject(ctx, target, "isExtensible")
	if !ok {
		return false
	}
	return obj.IsExtensible(ctx)
}

// ReflectPreventExtensions implements Reflect.preventExtensions(target).
func ReflectPreventExtensions(ctx *Context, target Value) bool {
	obj, ok := requireObject(ctx, target, "preventExtensions")
	if !ok {
		return false
	}
	return obj.PreventExtensions(ctx)
}

// ReflectOwnKeys implements Reflect.ownKeys(target), returning every own
// key (String and Symbol alike) as Values.
func ReflectOwnKeys(ctx *Context, target Value) []Value {
	obj, ok := requireObject(ctx, target, "ownKeys")
	if !ok {
		return nil
	}
	keys := obj.OwnPropertyKeys(ctx)
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = keyToTrapArg(k)
	}
	return out
}

// ReflectApply implements Reflect.apply(target, thisArg, argumentsList).
func ReflectApply(ctx *Context, target Value, thisArg Value, args []Value) Value {
	if !ctx.IsCallable(target) {
		ctx.ThrowTypeError("Reflect.apply target is not a function")
		return Undefined
	}
	return ctx.CallFunction(target, thisArg, args)
}

// ReflectConstruct implements Reflect.construct(target, argumentsList[,
// newTarget]): resolves newTarget.prototype before allocation ordering is
// the caller's (Executor's) responsibility per spec.md §4.7 — this function
// validates newTarget is a constructor and forwards through Context.
func ReflectConstruct(ctx *Context, target Value, args []Value, newTarget Value) Value {
	if !ctx.IsConstructor(target) {
		ctx.ThrowTypeError("Reflect.construct target is not a constructor")
		return Undefined
	}
	if newTarget == nil {
		newTarget = target
	}
	if !ctx.IsConstructor(newTarget) {
		ctx.ThrowTypeError("Reflect.construct newTarget is not a constructor")
		return Undefined
	}
	result, ok := ctx.ConstructFunction(target, args, newTarget)
	if !ok {
		return Undefined
	}
	if !IsObject(result) {
		ctx.ThrowTypeError("construct result is not an object")
		return Undefined
	}
	return result
}
