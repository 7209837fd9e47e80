package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildMetaSchema returns the JSON-Schema (draft 2020-12 subset) describing a
// valid rule-schema document, as a generic map.
func buildMetaSchema() map[string]any {
	ruleProps := map[string]any{
		"pattern": map[string]any{"type": "string", "minLength": 1},
		"overfit": map[string]any{"type": "boolean"},
	}
	rule := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           ruleProps,
		"required":             []string{"pattern"},
	}
	field := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "minLength": 1},
			"label": map[string]any{"type": "string"},
			"rules": map[string]any{"type": "array", "minItems": 1, "items": rule},
		},
		"required": []string{"name", "rules"},
	}
	section := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":   map[string]any{"type": "string", "minLength": 1},
			"fields": map[string]any{"type": "array", "minItems": 1, "items": field},
		},
		"required": []string{"name", "fields"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"version":  map[string]any{"type": "string"},
			"sections": map[string]any{"type": "array", "minItems": 1, "items": section},
		},
		"required": []string{"sections"},
	}
}

// validateDocument validates a generically-decoded schema document against
// the meta-schema.
func validateDocument(doc any) error {
	b, err := json.Marshal(buildMetaSchema())
	if err != nil {
		return fmt.Errorf("marshal meta-schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add meta-schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile meta-schema: %w", err)
	}
	// Round-trip through JSON so YAML-decoded values use the types the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("document does not match meta-schema: %w", err)
	}
	return nil
}
