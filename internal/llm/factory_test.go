package llm

import (
	"strings"
	"testing"

	"github.com/user/rankbot/internal/config"
)

func TestFactory_CreateClient(t *testing.T) {
	factory := NewFactory(NewRetryClient(nil))

	tests := []struct {
		provider string
		want     string
	}{
		{"openrouter", "openrouter"},
		{"openai", "openrouter"},
		{"anthropic", "anthropic"},
	}

	for _, tt := range tests {
		client, err := factory.CreateClient(config.LLMConfig{
			Provider: tt.provider,
			Model:    "test-model",
			APIKey:   "test-key",
		})
		if err != nil {
			t.Fatalf("Expected no error for provider %s, got %v", tt.provider, err)
		}
		if client.GetProvider() != tt.want {
			t.Errorf("Expected provider '%s', got '%s'", tt.want, client.GetProvider())
		}
		if !client.SupportsTools() {
			t.Errorf("Expected tool support for provider %s", tt.provider)
		}
	}
}

func TestFactory_UnsupportedProvider(t *testing.T) {
	factory := NewFactory(NewRetryClient(nil))

	_, err := factory.CreateClient(config.LLMConfig{Provider: "gemini"})
	if err == nil {
		t.Fatal("Expected error for unsupported provider, got nil")
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("Expected provider name in error, got %v", err)
	}
}
