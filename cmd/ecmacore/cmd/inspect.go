package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/ecma-go/ecmacore/pkg/runtime"
)

var inspectScenario string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build a small fixture object graph and print its own-property descriptors as JSON",
	Long: `inspect builds one of a handful of named fixture scenarios directly
against pkg/runtime (no parser is involved) and renders every own property
key of the resulting object as a JSON descriptor, using the same
Descriptor<->JSON bridge (gjson/sjson) the package's snapshot tests use.

Scenarios:
  object   - a plain object with one data property ("name")
  array    - a three-element array whose elements sit in dense storage
  proxy    - a proxy with an empty handler (no traps) over an object with
             a non-writable, non-configurable "x"`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectScenario, "scenario", "object", "fixture scenario to build (object|array|proxy)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := runtime.DefaultConfig()
	if configFile != "" {
		loaded, err := runtime.LoadConfigFile(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	ctx := runtime.NewContext(cfg, nil, nil, nil)

	var target *runtime.Object
	switch inspectScenario {
	case "object":
		target = buildObjectFixture(ctx)
	case "array":
		target = buildArrayFixture(ctx)
	case "proxy":
		target = buildProxyFixture(ctx)
	default:
		return fmt.Errorf("unknown scenario %q", inspectScenario)
	}

	out, err := renderOwnProperties(ctx, target)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func buildObjectFixture(ctx *runtime.Context) *runtime.Object {
	obj := runtime.NewOrdinaryObject(ctx.ObjectPrototype())
	nameDesc := runtime.CompleteDataDescriptor()
	nameDesc.Writable, nameDesc.Enumerable = true, true
	obj.DefineOwnProperty(ctx, runtime.StringKey("name"), nameDesc)
	obj.Set(ctx, runtime.StringKey("name"), runtime.StringValue("ecmacore"), obj)
	return obj
}

func buildArrayFixture(ctx *runtime.Context) *runtime.Object {
	arr := runtime.NewArrayExotic(ctx, ctx.Prototype("Array"))
	runtime.ArrayPush(ctx, arr, []runtime.Value{
		runtime.NumberValue(10), runtime.NumberValue(20), runtime.NumberValue(30),
	})
	return arr
}

func buildProxyFixture(ctx *runtime.Context) *runtime.Object {
	target := runtime.NewOrdinaryObject(ctx.ObjectPrototype())
	xDesc := runtime.CompleteDataDescriptor()
	xDesc.Value = runtime.NumberValue(1)
	xDesc.Configurable, xDesc.Writable = false, false
	target.DefineOwnProperty(ctx, runtime.StringKey("x"), xDesc)
	handler := runtime.NewOrdinaryObject(ctx.ObjectPrototype())
	proxy, _ := runtime.ProxyNew(ctx, target, handler)
	return proxy
}

func renderOwnProperties(ctx *runtime.Context, obj *runtime.Object) (string, error) {
	json := "{}"
	for _, key := range obj.OwnPropertyKeys(ctx) {
		desc, ok := obj.GetOwnProperty(ctx, key)
		if !ok {
			continue
		}
		descJSON, err := runtime.DescriptorToJSON(desc)
		if err != nil {
			return "", err
		}
		json, err = sjson.SetRaw(json, sjsonKey(key.String()), descJSON)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

// sjsonKey escapes a property key for use as an sjson path segment (sjson
// treats "." and "*"/"?" specially in paths).
func sjsonKey(k string) string {
	escaped := make([]byte, 0, len(k))
	for _, c := range []byte(k) {
		switch c {
		case '.', '*', '?':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped)
}
