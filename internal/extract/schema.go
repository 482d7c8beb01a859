package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildPartialResultSchema returns the JSON-Schema (draft 2020-12 subset)
// every partial provider result must satisfy after repair.
func buildPartialResultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"products"},
		"properties": map[string]any{
			"document_type": map[string]any{
				"type": "string",
				"enum": []string{"price_list", "invoice", "catalog", "order", "unknown"},
			},
			"supplier_name":    map[string]any{"type": "string"},
			"supplier_contact": map[string]any{"type": "string"},
			"currency":         map[string]any{"type": "string"},
			"language":         map[string]any{"type": "string"},
			"products": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name"},
					"properties": map[string]any{
						"name":       map[string]any{"type": "string", "minLength": 1},
						"price":      map[string]any{"type": []string{"string", "number", "null"}},
						"unit":       map[string]any{"type": []string{"string", "null"}},
						"category":   map[string]any{"type": []string{"string", "null"}},
						"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
					},
				},
			},
		},
	}
}

var partialSchema = mustCompileSchema(buildPartialResultSchema())

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal partial result schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("partial.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add partial result schema: %v", err))
	}
	schema, err := compiler.Compile("partial.json")
	if err != nil {
		panic(fmt.Sprintf("compile partial result schema: %v", err))
	}
	return schema
}

// validatePartial checks a repaired partial result document against the
// schema.
func validatePartial(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal partial result: %w", err)
	}
	if err := partialSchema.Validate(v); err != nil {
		return fmt.Errorf("partial result does not match schema: %w", err)
	}
	return nil
}
