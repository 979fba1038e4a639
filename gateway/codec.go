package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// encodeRecord turns a typed record into a JSON object without its id field
func encodeRecord(record interface{}) (json.RawMessage, error) {
	fields, err := toFields(record)
	if err != nil {
		return nil, err
	}
	delete(fields, "id")
	return json.Marshal(fields)
}

// mergeFields overlays fields onto an existing document body
func mergeFields(data json.RawMessage, fields map[string]interface{}) (json.RawMessage, error) {
	current := map[string]interface{}{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &current); err != nil {
			return nil, fmt.Errorf("decode stored document: %w", err)
		}
	}
	patch, err := toFields(fields)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		current[k] = v
	}
	return json.Marshal(current)
}

// toFields normalizes v through JSON so that times become RFC3339 strings
// and numbers become float64, the same shapes a stored document decodes to.
func toFields(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, errors.New("record must encode to a JSON object")
	}
	return fields, nil
}

func normalizeValue(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
