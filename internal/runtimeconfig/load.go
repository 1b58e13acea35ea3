package runtimeconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML document from r on top of DefaultConfig and validates the
// result. Unknown keys are rejected. An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if r == nil {
		return cfg, nil
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("admin config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load for the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("admin config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
