package runtime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDescriptorJSONSnapshots pins the Descriptor<->JSON bridge's rendering
// of a handful of representative descriptors, the same bridge cmd/ecmacore's
// inspect command uses to print fixture object graphs.
func TestDescriptorJSONSnapshots(t *testing.T) {
	ctx := newTestContext()

	dataDesc := CompleteDataDescriptor()
	dataDesc.Value = NumberValue(42)
	dataDesc.Writable, dataDesc.Enumerable, dataDesc.Configurable = true, true, false

	getter := NewOrdinaryObject(ctx.ObjectPrototype())
	getter.SetCallable(nil, false)
	accessorDesc := CompleteAccessorDescriptor()
	accessorDesc.Get = getter
	accessorDesc.Enumerable = true

	cases := map[string]Descriptor{
		"data":     dataDesc,
		"accessor": accessorDesc,
	}

	for name, d := range cases {
		json, err := DescriptorToJSON(d)
		if err != nil {
			t.Fatalf("DescriptorToJSON(%s) error: %v", name, err)
		}
		snaps.MatchSnapshot(t, name, json)
	}
}

func TestOwnPropertyKeysSnapshot(t *testing.T) {
	ctx := newTestContext()
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))
	ArrayPush(ctx, arr, []Value{NumberValue(1), NumberValue(2), NumberValue(3)})

	var rendered []string
	for _, k := range arr.OwnPropertyKeys(ctx) {
		rendered = append(rendered, k.String())
	}
	snaps.MatchSnapshot(t, "array-own-keys", rendered)
}
