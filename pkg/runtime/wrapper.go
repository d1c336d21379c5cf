package runtime

// NewWrapperObject creates a Boolean/Number/Symbol/BigInt wrapper object
// carrying primitiveValue (spec.md §4.5): "used by ToPrimitive/ToNumber/
// ToString fast paths". String wrappers use NewStringExotic instead, since
// they additionally expose StringExotic's indexed properties (spec.md §4.5
// "String wrappers also expose the StringExotic indexed properties").
func NewWrapperObject(proto *Object, class string, primitive Value) *Object {
	o := NewOrdinaryObject(proto)
	o.SetClass(class)
	o.exotic = KindWrapper
	o.hasPrimitiveValue = true
	o.primitiveValue = primitive
	return o
}

// PrimitiveValue returns the wrapped primitive and whether o carries one
// (true for both KindWrapper objects and String-wrapper KindString
// objects, per NewStringExotic's hasPrimitiveValue set-up).
func (o *Object) PrimitiveValue() (Value, bool) {
	if !o.hasPrimitiveValue {
		return nil, false
	}
	return o.primitiveValue, true
}
