// Package schema generates JSON schemas for host configuration.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// ConfigSchema returns the JSON schema of entities.Config.
func ConfigSchema() ([]byte, error) {
	data, err := GenerateSchema(entities.Config{})
	if err != nil {
		return nil, &errors.SchemaError{Type: "Config", Err: err}
	}
	return data, nil
}

// HandleSchema returns the JSON schema of the handle term guests pass to
// host functions.
func HandleSchema() ([]byte, error) {
	data, err := GenerateSchema(entities.Handle{})
	if err != nil {
		return nil, &errors.SchemaError{Type: "Handle", Err: err}
	}
	return data, nil
}
