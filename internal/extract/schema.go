package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildSliceSchema returns the slicer output contract as a JSON-Schema
// (draft 2020-12 subset) generic map. page_count must be a non-negative
// integer and every file entry must at minimum carry a name and a path.
func buildSliceSchema() map[string]any {
	entry := map[string]any{
		"type":     "object",
		"required": []string{"name", "path"},
		"properties": map[string]any{
			"name":              map[string]any{"type": "string"},
			"path":              map[string]any{"type": "string"},
			"start_page":        map[string]any{"type": "integer"},
			"end_page":          map[string]any{"type": "integer"},
			"position":          map[string]any{"type": "integer"},
			"full_text":         map[string]any{"type": "string"},
			"short_description": map[string]any{"type": "string"},
			"description":       map[string]any{"type": "string"},
			"institutions":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"tag":               map[string]any{"type": "string"},
			"issuer":            map[string]any{"type": "string"},
			"materia":           map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"page_count", "files"},
		"properties": map[string]any{
			"page_count": map[string]any{"type": "integer", "minimum": 0},
			"files":      map[string]any{"type": "array", "items": entry},
			"errors":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
}

// buildMetadataSchema returns the metadata extractor contract: gazette.number
// and gazette.date present and non-empty.
func buildMetadataSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"gazette"},
		"properties": map[string]any{
			"gazette": map[string]any{
				"type":     "object",
				"required": []string{"number", "date"},
				"properties": map[string]any{
					"number": map[string]any{"type": "string", "minLength": 1},
					"date":   map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	}
}

// validateAgainstSchema validates raw JSON against schemaMap.
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
