// Package config loads dutree settings from an optional TOML file.
//
// A complete file looks like:
//
//	[query]
//	threshold = 100000
//	capacity = 70000000
//	target = 30000000
//
//	[build]
//	strict = false
//
//	[log]
//	level = "warn"
//	format = "console"
//
// Keys that are missing keep their defaults. Command-line flags that are set
// explicitly take precedence over the file.
package config

import (
	"errors"
	"fmt"

	"github.com/dendrascience/dutree/fstree"
	"github.com/dendrascience/dutree/internal/logging"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Defaults used when neither the file nor a flag sets a value.
const (
	DefaultThreshold = 100_000
	DefaultCapacity  = 70_000_000
	DefaultTarget    = 30_000_000
)

var ErrNegativeSize = errors.New("sizes in the configuration must be non-negative")

type (
	Config struct {
		Query Query          `koanf:"query"`
		Build Build          `koanf:"build"`
		Log   logging.Config `koanf:"log"`
	}
	// Query holds the arguments of the size queries.
	Query struct {
		Threshold int64 `koanf:"threshold"` // directories below this are summed
		Capacity  int64 `koanf:"capacity"`  // total disk size
		Target    int64 `koanf:"target"`    // free space wanted
	}
	Build struct {
		Strict bool `koanf:"strict"`
	}
)

var tomlParser = toml.Parser()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Query: Query{
			Threshold: DefaultThreshold,
			Capacity:  DefaultCapacity,
			Target:    DefaultTarget,
		},
		Log: logging.Config{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), tomlParser); err != nil {
		return Config{}, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	return unmarshal(k)
}

// Parse is Load for TOML held in memory.
func Parse(data []byte) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), tomlParser); err != nil {
		return Config{}, fmt.Errorf("unable to parse config: %w", err)
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (Config, error) {
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes the queries cannot use.
func (c Config) Validate() error {
	q := c.Query
	if q.Threshold < 0 || q.Capacity < 0 || q.Target < 0 {
		return fmt.Errorf("%w: threshold=%d capacity=%d target=%d", ErrNegativeSize, q.Threshold, q.Capacity, q.Target)
	}
	return nil
}

// Policy maps the build section onto a builder policy.
func (c Config) Policy() fstree.Policy {
	if c.Build.Strict {
		return fstree.Strict
	}
	return fstree.Permissive
}
