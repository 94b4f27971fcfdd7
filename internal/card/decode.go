package card

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// decodeDocument decodes a JSON or YAML card into a generic tree. JSON input
// goes through encoding/json so tab-indented documents are accepted.
func decodeDocument(data []byte) (map[string]any, error) {
	var raw any
	trimmed := bytes.TrimSpace(data)
	isJSON := len(trimmed) > 0 && trimmed[0] == '{'
	if isJSON {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("unmarshaling JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unmarshaling YAML: %w", err)
		}
	}

	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root must be an object", ErrNotACard)
	}
	switch root["version"].(type) {
	case float64, int, int64, uint64:
		if lit, ok := versionLiteral(trimmed, isJSON); ok {
			root["version"] = lit
		}
	}
	return root, nil
}

// versionLiteral returns the source text of a numeric version field, so
// 1.10 keeps its minor of 10 instead of collapsing to the float 1.1.
func versionLiteral(data []byte, isJSON bool) (string, bool) {
	if isJSON {
		var doc struct {
			Version json.Number `json:"version"`
		}
		if err := json.Unmarshal(data, &doc); err != nil || doc.Version == "" {
			return "", false
		}
		return doc.Version.String(), true
	}
	var doc struct {
		Version yaml.Node `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil || doc.Version.Kind != yaml.ScalarNode {
		return "", false
	}
	return doc.Version.Value, true
}

// decodeProperties populates target from a node by round-tripping it
// through YAML. Fields tagged yaml:"-" are left for parseChildren.
func decodeProperties(node map[string]any, target any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("marshaling node: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding node: %w", err)
	}
	return nil
}

// normalize converts YAML-decoded maps with non-string keys into
// map[string]any so the tree has a single map shape.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalize(child)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range val {
			val[i] = normalize(child)
		}
		return val
	default:
		return val
	}
}
