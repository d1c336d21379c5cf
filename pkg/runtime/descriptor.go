package runtime

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Descriptor is a property-descriptor record (spec.md §3 "PropertyDescriptor").
// Each field is optional; Has* reports whether it was specified at all,
// distinguishing "not given" from "given as zero value" per the merge rules.
type Descriptor struct {
	Value        Value
	HasValue     bool
	Writable     bool
	HasWritable  bool
	Get          Value // callable or Undefined
	HasGet       bool
	Set          Value
	HasSet       bool
	Enumerable   bool
	HasEnum      bool
	Configurable bool
	HasConfig    bool
}

// IsDataDescriptor reports whether d has a value or writable field.
func (d Descriptor) IsDataDescriptor() bool { return d.HasValue || d.HasWritable }

// IsAccessorDescriptor reports whether d has a get or set field.
func (d Descriptor) IsAccessorDescriptor() bool { return d.HasGet || d.HasSet }

// IsGenericDescriptor reports whether d is neither data nor accessor.
func (d Descriptor) IsGenericDescriptor() bool {
	return !d.IsDataDescriptor() && !d.IsAccessorDescriptor()
}

// CompleteDataDescriptor fills in the ECMAScript defaults for an otherwise
// partial data descriptor (value=undefined, writable/enumerable/
// configurable=false).
func CompleteDataDescriptor() Descriptor {
	return Descriptor{
		Value: Undefined, HasValue: true,
		Writable: false, HasWritable: true,
		Enumerable: false, HasEnum: true,
		Configurable: false, HasConfig: true,
	}
}

// CompleteAccessorDescriptor fills in the ECMAScript defaults for an
// otherwise partial accessor descriptor (get/set=undefined, enumerable/
// configurable=false).
func CompleteAccessorDescriptor() Descriptor {
	return Descriptor{
		Get: Undefined, HasGet: true,
		Set: Undefined, HasSet: true,
		Enumerable: false, HasEnum: true,
		Configurable: false, HasConfig: true,
	}
}

// Merge applies the fields present in patch onto base, per spec.md §3's
// merge semantics: only specified fields change, and switching kind
// (data<->accessor) clears the fields of the opposite kind.
func Merge(base Descriptor, patch Descriptor) Descriptor {
	result := base
	switchingToAccessor := patch.IsAccessorDescriptor() && base.IsDataDescriptor()
	switchingToData := patch.IsDataDescriptor() && base.IsAccessorDescriptor()

	if switchingToAccessor {
		result.HasValue, result.Value = false, nil
		result.HasWritable, result.Writable = false, false
	}
	if switchingToData {
		result.HasGet, result.Get = false, nil
		result.HasSet, result.Set = false, nil
	}

	if patch.HasValue {
		result.Value, result.HasValue = patch.Value, true
	}
	if patch.HasWritable {
		result.Writable, result.HasWritable = patch.Writable, true
	}
	if patch.HasGet {
		result.Get, result.HasGet = patch.Get, true
	}
	if patch.HasSet {
		result.Set, result.HasSet = patch.Set, true
	}
	if patch.HasEnum {
		result.Enumerable, result.HasEnum = patch.Enumerable, true
	}
	if patch.HasConfig {
		result.Configurable, result.HasConfig = patch.Configurable, true
	}
	return result
}

// ToPropertyDescriptor converts a host-supplied descriptor object (as ES
// ToPropertyDescriptor) into a Descriptor, rejecting a descriptor that
// specifies both a data field and an accessor field (spec.md §6).
//
// obj is any PropertyAccessor-like source of the six well-known fields;
// callers typically pass an *Object whose own properties are value,
// writable, get, set, enumerable, configurable.
func ToPropertyDescriptor(ctx *Context, obj *Object) (Descriptor, bool) {
	var d Descriptor
	hasValue := obj.hasOwnNamed("value")
	hasWritable := obj.hasOwnNamed("writable")
	hasGet := obj.hasOwnNamed("get")
	hasSet := obj.hasOwnNamed("set")

	if (hasValue || hasWritable) && (hasGet || hasSet) {
		ctx.ThrowTypeError("property descriptor may not specify both accessor and data properties")
		return Descriptor{}, false
	}

	if hasValue {
		d.Value, d.HasValue = obj.GetOwnNamed(ctx, "value"), true
	}
	if hasWritable {
		d.Writable, d.HasWritable = ToBoolean(obj.GetOwnNamed(ctx, "writable")), true
	}
	if hasGet {
		getVal := obj.GetOwnNamed(ctx, "get")
		if !IsUndefined(getVal) && !ctx.IsCallable(getVal) {
			ctx.ThrowTypeError("getter must be a function")
			return Descriptor{}, false
		}
		d.Get, d.HasGet = getVal, true
	}
	if hasSet {
		setVal := obj.GetOwnNamed(ctx, "set")
		if !IsUndefined(setVal) && !ctx.IsCallable(setVal) {
			ctx.ThrowTypeError("setter must be a function")
			return Descriptor{}, false
		}
		d.Set, d.HasSet = setVal, true
	}
	if obj.hasOwnNamed("enumerable") {
		d.Enumerable, d.HasEnum = ToBoolean(obj.GetOwnNamed(ctx, "enumerable")), true
	}
	if obj.hasOwnNamed("configurable") {
		d.Configurable, d.HasConfig = ToBoolean(obj.GetOwnNamed(ctx, "configurable")), true
	}
	return d, true
}

// FromPropertyDescriptor builds a fresh ordinary Object exposing exactly the
// fields present in d, as ES FromPropertyDescriptor does.
func FromPropertyDescriptor(ctx *Context, d Descriptor) *Object {
	obj := NewOrdinaryObject(ctx.ObjectPrototype())
	if d.HasValue {
		obj.DefineOwnProperty(ctx, StringKey("value"), CompleteDataDescriptor().withValue(d.Value, true, true, true))
	}
	if d.HasWritable {
		obj.defineNamedBool("writable", d.Writable)
	}
	if d.HasGet {
		obj.defineNamedValue("get", d.Get)
	}
	if d.HasSet {
		obj.defineNamedValue("set", d.Set)
	}
	if d.HasEnum {
		obj.defineNamedBool("enumerable", d.Enumerable)
	}
	if d.HasConfig {
		obj.defineNamedBool("configurable", d.Configurable)
	}
	return obj
}

func (d Descriptor) withValue(v Value, writable, enumerable, configurable bool) Descriptor {
	d.Value, d.HasValue = v, true
	d.Writable, d.HasWritable = writable, true
	d.Enumerable, d.HasEnum = enumerable, true
	d.Configurable, d.HasConfig = configurable, true
	return d
}

// ---------------------------------------------------------------------------
// JSON bridge — used by cmd/ecmacore's "inspect" subcommand and by
// descriptor snapshot tests. This is debug/diagnostic plumbing, not part of
// the ECMAScript semantics above; the JSON shape is
// {value?, writable?, get?, set?, enumerable?, configurable?} as spec.md §6
// names it.
// ---------------------------------------------------------------------------

// DescriptorToJSON renders a Descriptor's present fields as a JSON object.
// Accessor fields render as the string "[Function]" rather than attempting
// to serialize a callable.
func DescriptorToJSON(d Descriptor) (string, error) {
	json := "{}"
	var err error
	if d.HasValue {
		json, err = sjson.Set(json, "value", jsonableDebug(d.Value))
		if err != nil {
			return "", err
		}
	}
	if d.HasWritable {
		json, err = sjson.Set(json, "writable", d.Writable)
		if err != nil {
			return "", err
		}
	}
	if d.HasGet {
		json, err = sjson.Set(json, "get", accessorJSON(d.Get))
		if err != nil {
			return "", err
		}
	}
	if d.HasSet {
		json, err = sjson.Set(json, "set", accessorJSON(d.Set))
		if err != nil {
			return "", err
		}
	}
	if d.HasEnum {
		json, err = sjson.Set(json, "enumerable", d.Enumerable)
		if err != nil {
			return "", err
		}
	}
	if d.HasConfig {
		json, err = sjson.Set(json, "configurable", d.Configurable)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

func accessorJSON(v Value) string {
	if IsUndefined(v) {
		return "undefined"
	}
	return "[Function]"
}

func jsonableDebug(v Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return nil
	case TypeBoolean:
		return bool(v.(Boolean))
	case TypeNumber:
		return float64(v.(Number))
	case TypeString:
		return v.String()
	default:
		return v.String()
	}
}

// DescriptorFromJSON parses a JSON descriptor fragment (as produced by
// DescriptorToJSON, or supplied by a host embedder) into a Descriptor of
// primitive fields only; get/set accessors cannot be reconstructed from
// JSON and are left unset.
func DescriptorFromJSON(ctx *Context, json string) Descriptor {
	var d Descriptor
	if v := gjson.Get(json, "value"); v.Exists() {
		d.Value, d.HasValue = jsonValueToValue(v), true
	}
	if v := gjson.Get(json, "writable"); v.Exists() {
		d.Writable, d.HasWritable = v.Bool(), true
	}
	if v := gjson.Get(json, "enumerable"); v.Exists() {
		d.Enumerable, d.HasEnum = v.Bool(), true
	}
	if v := gjson.Get(json, "configurable"); v.Exists() {
		d.Configurable, d.HasConfig = v.Bool(), true
	}
	return d
}

func jsonValueToValue(v gjson.Result) Value {
	switch v.Type {
	case gjson.Null:
		return Null
	case gjson.True:
		return True
	case gjson.False:
		return False
	case gjson.Number:
		return NumberValue(v.Num)
	default:
		return StringValue(v.String())
	}
}
