package runtime

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.MaxCallStackDepth != 1000 {
		t.Fatalf("MaxCallStackDepth = %d, want 1000", c.MaxCallStackDepth)
	}
	if c.MaxDenseArrayCapacity != MaxDense {
		t.Fatalf("MaxDenseArrayCapacity = %d, want %d", c.MaxDenseArrayCapacity, MaxDense)
	}
	if c.StrictMode {
		t.Fatalf("StrictMode default should be false")
	}
}

func TestConfigWithDefaultsFillsZeroValues(t *testing.T) {
	c := Config{}.withDefaults()
	if c.MaxCallStackDepth != 1000 || c.MaxDenseArrayCapacity != MaxDense {
		t.Fatalf("withDefaults() = %+v, want filled-in defaults", c)
	}
}

func TestLoadConfigFileAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("strictMode: true\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile error: %v", err)
	}
	if !cfg.StrictMode {
		t.Fatalf("StrictMode should be true from the fixture file")
	}
	if cfg.MaxCallStackDepth != 1000 {
		t.Fatalf("MaxCallStackDepth should fall back to the default, got %d", cfg.MaxCallStackDepth)
	}
}

func TestLoadConfigFileMissingPath(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadConfigFile should error on a missing file")
	}
}

func TestArrayRespectsConfiguredDenseCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDenseArrayCapacity = 4
	ctx := NewContext(cfg, nil, nil, nil)
	arr := NewArrayExotic(ctx, ctx.Prototype("Array"))

	arr.Set(ctx, IndexKey(10), NumberValue(1), arr)
	if got := arr.Get(ctx, IndexKey(10), arr); !SameValue(got, NumberValue(1)) {
		t.Fatalf("index past the configured dense cap should still round-trip via the sparse map, got %v", got)
	}
}
