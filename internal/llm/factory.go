package llm

import (
	"fmt"

	"github.com/user/rankbot/internal/config"
)

// Factory creates LLM clients
type Factory struct {
	retryClient *RetryClient
}

// NewFactory creates a new LLM factory
func NewFactory(retryClient *RetryClient) *Factory {
	return &Factory{
		retryClient: retryClient,
	}
}

// CreateClient creates an LLM client based on the provider configuration
func (f *Factory) CreateClient(cfg config.LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case "openrouter", "openai":
		// Any OpenAI-compatible chat-completions endpoint
		return NewOpenRouterClient(cfg, f.retryClient), nil
	case "anthropic":
		return NewAnthropicClient(cfg, f.retryClient), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openrouter, anthropic)", cfg.Provider)
	}
}
