package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compileSchema compiles a descriptor's parameter schema into a validator
func compileSchema(d ToolDescriptor) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(d.InputSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", d.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema for %s: %w", d.Name, err)
	}

	loc := d.Name + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("add schema for %s: %w", d.Name, err)
	}
	schema, err := compiler.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", d.Name, err)
	}
	return schema, nil
}

// normalizeArguments drops null values and re-decodes the arguments as plain JSON,
// returning the raw encoding for typed decoding and the generic value for validation.
func normalizeArguments(args map[string]interface{}) (json.RawMessage, interface{}, error) {
	clean := make(map[string]interface{}, len(args))
	for k, v := range args {
		if v != nil {
			clean[k] = v
		}
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, nil, fmt.Errorf("arguments are not JSON-serializable: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	return raw, inst, nil
}

// toResult converts a typed handler output into a Result map
func toResult(v interface{}) (Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
