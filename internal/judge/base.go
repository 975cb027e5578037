package judge

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/llm"
	"github.com/user/rankbot/internal/llmtypes"
	"github.com/user/rankbot/internal/logging"
	"github.com/user/rankbot/internal/tools"
)

// Context management constants
const (
	// MaxConversationTokens is the maximum estimated tokens allowed in conversation history
	MaxConversationTokens = 100000

	// MaxToolResponseTokens is the maximum tokens for a single tool response
	MaxToolResponseTokens = 15000

	// TokenEstimateRatio is the approximate characters per token (for estimation)
	TokenEstimateRatio = 4

	// DefaultMaxTurns bounds the tool-calling loop
	DefaultMaxTurns = 20
)

// runner drives the multi-turn tool-calling conversation shared by all
// judges. A turn is one LLM call; tool calls and their results extend the
// conversation until the model answers with plain content.
type runner struct {
	name           string
	llmClient      llm.LLMClient
	tools          []tools.Tool
	logger         *logging.Logger
	systemPrompt   string
	maxTurns       int
	maxTokens      int
	temperature    float64
	responseFormat llmtypes.ResponseFormat
}

func newRunner(name string, llmClient llm.LLMClient, toolSet []tools.Tool, logger *logging.Logger, systemPrompt string, maxTurns int) *runner {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &runner{
		name:         name,
		llmClient:    llmClient,
		tools:        toolSet,
		logger:       logger.Named(name),
		systemPrompt: systemPrompt,
		maxTurns:     maxTurns,
		maxTokens:    4096,
		temperature:  0.0,
	}
}

// run executes the conversation loop with the given user prompt and
// returns the model's final text output.
func (r *runner) run(ctx context.Context, userPrompt string) (string, error) {
	history := []llmtypes.Message{
		{Role: "user", Content: userPrompt},
	}

	for turn := 1; ; turn++ {
		if turn > r.maxTurns {
			r.logger.Warn("Turn budget exhausted",
				logging.Int("max_turns", r.maxTurns))
			return "", apperrors.NewJudgeTimeoutError(r.name, r.maxTurns)
		}

		history = trimHistory(history, MaxConversationTokens)

		r.logger.Debug("Calling LLM",
			logging.Int("turn", turn),
			logging.Int("history_messages", len(history)),
			logging.Int("estimated_tokens", estimateHistoryTokens(history)))

		req := llmtypes.CompletionRequest{
			SystemPrompt:   r.systemPrompt,
			Messages:       history,
			Tools:          tools.Definitions(r.tools),
			ResponseFormat: r.responseFormat,
			MaxTokens:      r.maxTokens,
			Temperature:    r.temperature,
		}

		resp, err := r.llmClient.GenerateCompletion(ctx, req)
		if err != nil {
			return "", apperrors.NewLLMConnectionError(r.llmClient.GetProvider(), err)
		}

		r.logger.Debug("LLM response received",
			logging.Int("input_tokens", resp.Usage.InputTokens),
			logging.Int("output_tokens", resp.Usage.OutputTokens),
			logging.Int("tool_calls", len(resp.ToolCalls)))

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		history = append(history, llmtypes.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, toolCall := range resp.ToolCalls {
			history = append(history, r.executeToolCall(ctx, toolCall))
		}
	}
}

// executeToolCall runs one tool call and packages the outcome as a tool
// message. Failures become message content so the model can adapt.
func (r *runner) executeToolCall(ctx context.Context, toolCall llmtypes.ToolCall) llmtypes.Message {
	tool := r.findTool(toolCall.Name)
	if tool == nil {
		r.logger.Warn("Tool not found", logging.String("tool", toolCall.Name))
		return llmtypes.Message{
			Role:    "tool",
			Content: fmt.Sprintf("Error: Tool '%s' not found", toolCall.Name),
			ToolID:  toolCall.ID,
		}
	}

	r.logger.Info("Executing tool", logging.String("tool", tool.Name()))

	result, err := tool.Execute(ctx, toolCall.Arguments)
	if err != nil {
		r.logger.Error("Tool execution failed",
			logging.String("tool", tool.Name()),
			logging.Error(err))
		return llmtypes.Message{
			Role:    "tool",
			Content: fmt.Sprintf("Error: %v", err),
			ToolID:  toolCall.ID,
		}
	}

	return llmtypes.Message{
		Role:    "tool",
		Content: truncateToolResponse(formatToolResult(result), MaxToolResponseTokens),
		ToolID:  toolCall.ID,
	}
}

func (r *runner) findTool(name string) tools.Tool {
	for _, tool := range r.tools {
		if tool.Name() == name {
			return tool
		}
	}
	return nil
}

// estimateTokens estimates the number of tokens in a string
func estimateTokens(text string) int {
	return len(text) / TokenEstimateRatio
}

// estimateHistoryTokens estimates total tokens in conversation history
func estimateHistoryTokens(history []llmtypes.Message) int {
	total := 0
	for _, msg := range history {
		total += estimateTokens(msg.Content)
	}
	return total
}

// trimHistory keeps conversation history within token limits by dropping
// the oldest messages first, keeping at least the most recent exchange.
func trimHistory(history []llmtypes.Message, maxTokens int) []llmtypes.Message {
	if len(history) == 0 || estimateHistoryTokens(history) <= maxTokens {
		return history
	}

	minKeep := 4
	if len(history) < minKeep {
		minKeep = len(history)
	}

	trimmed := history
	for len(trimmed) > minKeep && estimateHistoryTokens(trimmed) > maxTokens {
		trimmed = trimmed[1:]
	}

	// Still too large: cut oversized tool responses in place
	if estimateHistoryTokens(trimmed) > maxTokens {
		maxChars := MaxToolResponseTokens * TokenEstimateRatio
		for i := range trimmed {
			if trimmed[i].Role == "tool" && len(trimmed[i].Content) > maxChars {
				trimmed[i].Content = trimmed[i].Content[:maxChars] + "\n[TRUNCATED - response exceeded token limit]"
			}
		}
	}

	return trimmed
}

// truncateToolResponse truncates a tool response if it exceeds the limit
func truncateToolResponse(response string, maxTokens int) string {
	maxChars := maxTokens * TokenEstimateRatio
	if len(response) <= maxChars {
		return response
	}
	return response[:maxChars] + fmt.Sprintf("\n\n[TRUNCATED - Tool response exceeded %d token limit]", maxTokens)
}

// formatToolResult formats a tool result for inclusion in conversation history
func formatToolResult(result interface{}) string {
	if s, ok := result.(string); ok {
		return s
	}
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(jsonBytes)
}
