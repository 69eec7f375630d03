// Package validation compiles embedded JSON schemas and reports every
// violation with its instance location.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue is one leaf violation. Location is a JSON pointer into the payload.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	location := "#" + strings.TrimPrefix(strings.TrimSpace(i.Location), "#")
	if i.Message == "" {
		return location
	}
	return location + ": " + i.Message
}

// SchemaError lists the issues found in a payload. It matches
// ErrSchemaValidation with errors.Is.
type SchemaError struct {
	Schema string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Issues returns the issues carried by err, or nil when err is not a schema
// error.
func Issues(err error) []Issue {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Issues
	}
	return nil
}

// Schema is a compiled JSON schema.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile compiles a draft 2020-12 JSON schema document.
func Compile(name string, document []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(document)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompile is Compile for schemas embedded in the binary.
func MustCompile(name string, document []byte) *Schema {
	schema, err := Compile(name, document)
	if err != nil {
		panic(err)
	}
	return schema
}

// Validate checks payload against the schema. The payload goes through a JSON
// round trip first, so values decoded from YAML validate like JSON values.
func (s *Schema) Validate(payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return &SchemaError{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}
	var value any
	if err := json.Unmarshal(encoded, &value); err != nil {
		return &SchemaError{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}

	err = s.compiled.Validate(value)
	var verr *jsonschema.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return &SchemaError{Schema: s.name, Issues: leaves(verr, nil)}
	default:
		return &SchemaError{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}
}

func leaves(node *jsonschema.ValidationError, out []Issue) []Issue {
	if len(node.Causes) == 0 {
		return append(out, Issue{
			Location: strings.TrimSpace(node.InstanceLocation),
			Message:  strings.TrimSpace(node.Message),
		})
	}
	for _, cause := range node.Causes {
		out = leaves(cause, out)
	}
	return out
}
