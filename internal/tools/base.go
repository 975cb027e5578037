// Package tools implements the repository inspection tools exposed to the
// judge agents. Tools never fail the agent loop: operational problems are
// returned as "Error: ..." strings so the model can react to them.
package tools

import (
	"context"
	"fmt"

	"github.com/user/rankbot/internal/llmtypes"
)

// ModelRetryError is raised when a tool encounters a recoverable error
// This error type triggers a retry at the agent level
type ModelRetryError struct {
	Message string
}

func (e *ModelRetryError) Error() string {
	return e.Message
}

// Tool is the interface that all tools must implement
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns a description of what the tool does
	Description() string

	// Parameters returns the JSON schema for the tool's parameters
	Parameters() map[string]interface{}

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// Definitions converts tools into the wire format sent to LLM providers.
func Definitions(toolList []Tool) []llmtypes.ToolDefinition {
	defs := make([]llmtypes.ToolDefinition, 0, len(toolList))
	for _, t := range toolList {
		defs = append(defs, llmtypes.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// errorResult formats an operational failure as a tool result value.
func errorResult(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// stringParam extracts a string parameter, tolerating absent keys.
func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// requireStringParam extracts a required string parameter.
func requireStringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", &ModelRetryError{Message: fmt.Sprintf("missing required parameter: %s", key)}
	}
	return v, nil
}

// stringProperty builds a JSON schema entry for a string parameter.
func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// objectSchema builds the JSON schema for a tool's parameter object.
func objectSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
