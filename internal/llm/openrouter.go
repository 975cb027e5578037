package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/user/rankbot/internal/config"
)

// OpenRouterClient implements LLMClient for OpenRouter and other
// OpenAI-compatible chat-completions APIs
type OpenRouterClient struct {
	*BaseLLMClient
	apiKey  string
	baseURL string
	model   string
}

// chatRequest represents the request body for the chat completions endpoint
type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	MaxTokens      int                 `json:"max_tokens"`
	Temperature    float64             `json:"temperature"`
	Tools          []chatTool          `json:"tools,omitempty"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

// chatMessage represents a message in OpenAI chat format
type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// chatTool represents a tool definition in OpenAI format
type chatTool struct {
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

// chatToolFunction represents tool function parameters
type chatToolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// chatToolCall represents a tool call in OpenAI format
type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatToolCallFunc `json:"function"`
}

// chatToolCallFunc represents function call details
type chatToolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// chatResponseFormat constrains output shape. OpenRouter supports
// "json_object" for all major models.
type chatResponseFormat struct {
	Type string `json:"type"`
}

// chatResponse represents the response from the chat completions endpoint
type chatResponse struct {
	ID      string           `json:"id"`
	Model   string           `json:"model"`
	Choices []chatChoice     `json:"choices"`
	Usage   chatUsage        `json:"usage"`
	Error   *chatErrorDetail `json:"error,omitempty"`
}

// chatChoice represents a choice in the response
type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// chatUsage represents token usage
type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatErrorDetail represents a provider error
type chatErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// NewOpenRouterClient creates a new OpenRouter client
func NewOpenRouterClient(cfg config.LLMConfig, retryClient *RetryClient) *OpenRouterClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	return &OpenRouterClient{
		BaseLLMClient: NewBaseLLMClient(retryClient),
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		model:         cfg.Model,
	}
}

// GenerateCompletion generates a completion via the chat completions endpoint
func (c *OpenRouterClient) GenerateCompletion(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	orReq := c.convertRequest(req)

	url := c.baseURL + "/chat/completions"
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	resp, err := c.doHTTPRequest(ctx, "POST", url, headers, orReq)
	if err != nil {
		return CompletionResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return CompletionResponse{}, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var orResp chatResponse
	if err := json.Unmarshal(body, &orResp); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if orResp.Error != nil {
		return CompletionResponse{}, fmt.Errorf("API error: %s", orResp.Error.Message)
	}

	return c.convertResponse(orResp), nil
}

// SupportsTools returns true
func (c *OpenRouterClient) SupportsTools() bool {
	return true
}

// GetProvider returns the provider name
func (c *OpenRouterClient) GetProvider() string {
	return "openrouter"
}

// convertRequest converts internal request to OpenAI chat format
func (c *OpenRouterClient) convertRequest(req CompletionRequest) chatRequest {
	messages := []chatMessage{}

	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		cm := chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
		if msg.Role == "tool" {
			cm.ToolCallID = msg.ToolID
		}
		for _, tc := range msg.ToolCalls {
			args, err := json.Marshal(tc.Arguments)
			if err != nil {
				args = []byte("{}")
			}
			cm.ToolCalls = append(cm.ToolCalls, chatToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: chatToolCallFunc{
					Name:      tc.Name,
					Arguments: string(args),
				},
			})
		}
		messages = append(messages, cm)
	}

	orReq := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	if len(req.Tools) > 0 {
		orReq.Tools = make([]chatTool, len(req.Tools))
		for i, tool := range req.Tools {
			orReq.Tools[i] = chatTool{
				Type: "function",
				Function: chatToolFunction{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters,
				},
			}
		}
	}

	if req.ResponseFormat.Type != "" {
		orReq.ResponseFormat = &chatResponseFormat{Type: req.ResponseFormat.Type}
	}

	return orReq
}

// convertResponse converts the chat response to internal format
func (c *OpenRouterClient) convertResponse(resp chatResponse) CompletionResponse {
	usage := TokenUsage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{Usage: usage}
	}

	choice := resp.Choices[0]
	result := CompletionResponse{
		Content: choice.Message.Content,
		Usage:   usage,
	}

	if len(choice.Message.ToolCalls) > 0 {
		result.ToolCalls = make([]ToolCall, len(choice.Message.ToolCalls))
		for i, tc := range choice.Message.ToolCalls {
			var args map[string]interface{}
			if tc.Function.Arguments != "" {
				_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
			}

			result.ToolCalls[i] = ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: args,
			}
		}
	}

	return result
}
