package dataset

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ErrMalformed marks data that parsed but is not a non-empty map. Callers
// treat it as "no configuration" and decide whether that is fatal.
var ErrMalformed = errors.New("malformed currency data")

// Parse decodes YAML currency data into a Config. Syntax errors are
// returned as is; a document that is not a non-empty map yields
// ErrMalformed.
func Parse(data []byte) (Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	cfg, ok := FromAny(raw)
	if !ok {
		return nil, ErrMalformed
	}
	return cfg, nil
}

// ParseFile reads and parses a currency data file from disk.
func ParseFile(path string) (Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing currency data %s: %w", path, err)
	}
	return cfg, nil
}

// FromAny accepts an already decoded value. It reports false when v is not
// a map or is empty.
func FromAny(v any) (Config, bool) {
	var cfg Config
	switch m := v.(type) {
	case Config:
		cfg = m
	case map[string]any:
		cfg = Config(m)
	case map[any]any:
		es, _ := entries(m)
		cfg = make(Config, len(es))
		for _, e := range es {
			cfg[sortKey(e.key)] = e.val
		}
	default:
		return nil, false
	}
	if len(cfg) == 0 {
		return nil, false
	}
	return cfg, true
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
