package verify

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// verdictSchema constrains the model's adjudication output. Status synonyms
// are folded later, so the schema only pins the shape, not the value domain.
func verdictSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"required":             []string{"status", "explanation"},
		"properties": map[string]any{
			"status":        map[string]any{"type": "string", "minLength": 1},
			"explanation":   map[string]any{"type": "string"},
			"correct_value": map[string]any{"type": []string{"string", "null"}},
			"confidence":    map[string]any{"type": "string"},
			"is_myth":       map[string]any{"type": "boolean"},
			"is_outdated":   map[string]any{"type": "boolean"},
			"sources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":     map[string]any{"type": "string"},
						"url":       map[string]any{"type": "string"},
						"relevance": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

// validateAgainstSchema validates data against a schema expressed as a generic map
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
