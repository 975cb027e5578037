// Package schema derives JSON Schemas from Go result types and renders
// the output-format instructions appended to judge prompts.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with project defaults.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator wired with the defaults we need for
// inlined, self-contained result schemas.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a schema.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// MarshalIndent renders a schema as indented JSON suitable for embedding
// in a prompt.
func MarshalIndent(s *jsonschema.Schema) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// OutputInstructions builds the instruction block appended to a judge's
// system prompt telling the model to answer with a single JSON object
// matching the schema of T.
func OutputInstructions[T any]() (string, error) {
	rendered, err := MarshalIndent(ReflectType[T]())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"\n\nWhen you have finished your analysis, respond with a single JSON object (no surrounding prose) that conforms to this JSON Schema:\n\n```json\n%s\n```",
		rendered,
	), nil
}
