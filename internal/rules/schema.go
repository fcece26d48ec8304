package rules

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/rules.schema.json
var schemaFS embed.FS

// SchemaError represents a single profile schema validation error.
type SchemaError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e SchemaError) String() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// compileSchema loads and compiles the embedded rule-profile schema.
func compileSchema() (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schema/rules.schema.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(data, &schemaDoc); err != nil {
		return nil, fmt.Errorf("parse embedded schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("rules.schema.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := c.Compile("rules.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile rule schema: %w", err)
	}
	return schema, nil
}

// validateProfile validates raw profile JSON against the embedded schema.
func validateProfile(data []byte) []SchemaError {
	schema, err := compileSchema()
	if err != nil {
		return []SchemaError{{Message: err.Error()}}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []SchemaError{{Message: fmt.Sprintf("failed to parse profile JSON: %v", err)}}
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []SchemaError{{Message: err.Error()}}
	}
	return collectErrors(validationErr)
}

// collectErrors recursively collects all leaf validation errors.
func collectErrors(ve *jsonschema.ValidationError) []SchemaError {
	var errors []SchemaError

	instancePath := "/" + strings.Join(ve.InstanceLocation, "/")
	if len(ve.InstanceLocation) == 0 {
		instancePath = ""
	}

	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if msg != "" {
			errors = append(errors, SchemaError{Path: instancePath, Message: msg})
		}
	} else {
		for _, cause := range ve.Causes {
			errors = append(errors, collectErrors(cause)...)
		}
	}

	return errors
}
