package llmtypes

// Message represents a chat message
type Message struct {
	Role      string // "system", "user", "assistant", "tool"
	Content   string
	ToolID    string     // ID of the tool call being answered (for role="tool")
	ToolCalls []ToolCall // Tool calls made by assistant (for role="assistant")
}

// ToolCall represents a tool/function call from the LLM
type ToolCall struct {
	ID        string                 // Provider-assigned call ID, echoed back in tool results
	Name      string                 // Name of the tool to call
	Arguments map[string]interface{} // Arguments for the tool
}

// ResponseFormat constrains the shape of the final model output.
// OpenRouter accepts "json_object" for all major models; "json_schema"
// is OpenAI-only and is deliberately not modeled here.
type ResponseFormat struct {
	Type string // "json_object" or "" for free text
}

// CompletionRequest is a request for LLM completion
type CompletionRequest struct {
	SystemPrompt   string
	Messages       []Message
	Tools          []ToolDefinition
	ResponseFormat ResponseFormat
	MaxTokens      int
	Temperature    float64
}

// CompletionResponse is the response from LLM
type CompletionResponse struct {
	Content   string
	ToolCalls []ToolCall
	Usage     TokenUsage
}

// TokenUsage tracks token usage
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ToolDefinition defines a tool for the LLM
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}
