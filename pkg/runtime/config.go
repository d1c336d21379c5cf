package runtime

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config tunes the numeric limits a Context enforces. Zero values are
// replaced with the defaults below by NewContext, mirroring the teacher's
// CallStack.New / SetMaxDepth pattern of "non-positive means default".
type Config struct {
	// MaxCallStackDepth bounds prototype-chain walks and re-entrant
	// getter/setter/trap invocation (spec.md §4.8, default 1000).
	MaxCallStackDepth int `yaml:"maxCallStackDepth"`

	// MaxDenseArrayCapacity is the ArrayExotic dense-vector cap before
	// indices spill to the sparse map (spec.md §3, default MaxDense).
	MaxDenseArrayCapacity int `yaml:"maxDenseArrayCapacity"`

	// StrictMode is the default Context.strictMode value consulted by
	// [[Set]]/[[Delete]]/array writes (spec.md §4.8).
	StrictMode bool `yaml:"strictMode"`
}

// DefaultConfig returns the spec-mandated defaults.
func DefaultConfig() Config {
	return Config{
		MaxCallStackDepth:     1000,
		MaxDenseArrayCapacity: MaxDense,
		StrictMode:            false,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxCallStackDepth <= 0 {
		c.MaxCallStackDepth = 1000
	}
	if c.MaxDenseArrayCapacity <= 0 {
		c.MaxDenseArrayCapacity = MaxDense
	}
	return c
}

// LoadConfigFile reads a YAML config file (as used by cmd/ecmacore) into a
// Config, applying defaults for any field it omits.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}
