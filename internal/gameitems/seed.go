package gameitems

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a catalog from a YAML or JSON list. Files ending in
// .json are decoded as JSON so number literals survive untouched.
func LoadSeedFile(path string) ([]GameItem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %q: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		items := make([]GameItem, 0)
		if err := json.Unmarshal(content, &items); err != nil {
			return nil, fmt.Errorf("parse seed file %q: %w", path, err)
		}
		return items, nil
	}

	return ParseSeedYAML(content)
}

func ParseSeedYAML(content []byte) ([]GameItem, error) {
	var records []interface{}
	if err := yaml.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}

	items := make([]GameItem, 0, len(records))
	for idx, record := range records {
		raw, err := json.Marshal(normalizeYAML(record))
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", idx, err)
		}
		item, err := NewGameItem(raw)
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", idx, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// normalizeYAML rewrites maps with non-string keys so the value can be
// encoded as JSON.
func normalizeYAML(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, child := range typed {
			out[key] = normalizeYAML(child)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, child := range typed {
			out[fmt.Sprint(key)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for idx, child := range typed {
			out[idx] = normalizeYAML(child)
		}
		return out
	default:
		return value
	}
}
