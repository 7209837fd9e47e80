package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML rule schema from path, validates it against the
// meta-schema, checks structural invariants, and compiles every rule.
// The schema is loaded once per process; there is no hot reload.
func Load(path string) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a compiled schema from raw YAML bytes.
func Parse(data []byte) (*Compiled, error) {
	// First decode generically so the document shape can be checked against
	// the meta-schema before field-by-field decoding.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, fmt.Errorf("schema document invalid: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return s.Compile()
}
