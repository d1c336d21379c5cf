package runtime

// This file is the Executor-facing entry-point surface named in spec.md §6.
// It is a thin naming layer: every function here forwards directly to the
// Object/Context/Conversions methods that do the actual work, so the
// Executor has a single flat set of verbs to call instead of needing to
// know which receiver method implements which ECMAScript semantics.

// ValueGet implements value_get(ctx, obj, key, receiver).
func ValueGet(ctx *Context, obj *Object, key PropertyKey, receiver Value) Value {
	if receiver == nil {
		receiver = obj
	}
	return obj.Get(ctx, key, receiver)
}

// ValueSet implements value_set(ctx, obj, key, v, receiver). On rejection
// in strict mode, converts the false result into a pending TypeError, per
// spec.md §6.
func ValueSet(ctx *Context, obj *Object, key PropertyKey, v Value, receiver Value) bool {
	if receiver == nil {
		receiver = obj
	}
	ok := obj.Set(ctx, key, v, receiver)
	if !ok && ctx.StrictMode() && !ctx.HasPendingException() {
		ctx.ThrowTypeError("Cannot assign to read only property '%s'", key.String())
	}
	return ok
}

// ValueHas implements value_has(ctx, obj, key).
func ValueHas(ctx *Context, obj *Object, key PropertyKey) bool {
	return obj.HasProperty(ctx, key)
}

// ValueDelete implements value_delete(ctx, obj, key).
func ValueDelete(ctx *Context, obj *Object, key PropertyKey) bool {
	return obj.Delete(ctx, key)
}

// ValueDefineOwn implements value_define_own(ctx, obj, key, desc).
func ValueDefineOwn(ctx *Context, obj *Object, key PropertyKey, desc Descriptor) bool {
	return obj.DefineOwnProperty(ctx, key, desc)
}

// ValueGetOwnDescriptor implements value_get_own_descriptor(ctx, obj, key).
func ValueGetOwnDescriptor(ctx *Context, obj *Object, key PropertyKey) (Descriptor, bool) {
	return obj.GetOwnProperty(ctx, key)
}

// ValueOwnKeys implements value_own_keys(ctx, obj).
func ValueOwnKeys(ctx *Context, obj *Object) []PropertyKey {
	return obj.OwnPropertyKeys(ctx)
}

// ValueGetPrototype implements value_get_prototype(ctx, obj).
func ValueGetPrototype(ctx *Context, obj *Object) *Object {
	return obj.GetPrototypeOf(ctx)
}

// ValueSetPrototype implements value_set_prototype(ctx, obj, p).
func ValueSetPrototype(ctx *Context, obj *Object, p *Object) bool {
	return obj.SetPrototypeOf(ctx, p)
}

// ValueIsExtensible implements value_is_extensible(obj).
func ValueIsExtensible(ctx *Context, obj *Object) bool {
	return obj.IsExtensible(ctx)
}

// ValuePreventExtensions implements value_prevent_extensions(ctx, obj).
func ValuePreventExtensions(ctx *Context, obj *Object) bool {
	return obj.PreventExtensions(ctx)
}

// ProxyNew implements proxy_new(ctx, target, handler): both target and
// handler must be Objects (ES Proxy constructor requirement).
func ProxyNew(ctx *Context, target Value, handler Value) (*Object, bool) {
	targetObj, ok := target.(*Object)
	if !ok {
		ctx.ThrowTypeError("Cannot create proxy with a non-object as target")
		return nil, false
	}
	handlerObj, ok := handler.(*Object)
	if !ok {
		ctx.ThrowTypeError("Cannot create proxy with a non-object as handler")
		return nil, false
	}
	return NewProxyExotic(targetObj, handlerObj), true
}

// ProxyRevocable implements the proxy-creating half of Proxy.revocable(target,
// handler): it returns the proxy and ok, but no revoke function handle.
// pkg/runtime has no function-allocation authority of its own (spec.md §9
// "Function is a subkind of Object" created by the Executor), so this
// returns the proxy and leaves wiring its revoke closure to the Executor;
// ProxyRevoke below is what that closure must call.
func ProxyRevocable(ctx *Context, target Value, handler Value) (proxy *Object, ok bool) {
	return ProxyNew(ctx, target, handler)
}

// ProxyRevoke implements proxy_revoke(proxy).
func ProxyRevoke(proxy *Object) {
	proxy.ProxyRevoke()
}

// ArrayNew implements array_new(ctx, length): a fresh ArrayExotic with the
// given initial length (0 is the common case; a non-zero length only sets
// the length, without populating any index or allocating dense/sparse
// storage, matching `new Array(length)`).
func ArrayNew(ctx *Context, length uint32) *Object {
	o := NewArrayExotic(ctx, ctx.Prototype("Array"))
	o.setArrayLengthValue(length)
	return o
}
