// Package testing holds shared test helpers: a scripted LLM client,
// provider mock servers, and fixture builders for git repos and CSVs.
package testing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/user/rankbot/internal/llmtypes"
)

// MockLLMClient implements llm.LLMClient with scripted responses
type MockLLMClient struct {
	Responses      []llmtypes.CompletionResponse
	CallCount      int
	LastRequest    llmtypes.CompletionRequest
	ShouldError    bool
	ErrorToReturn  error
	RequestHistory []llmtypes.CompletionRequest
}

// NewMockLLMClient creates a new mock LLM client with predefined responses
func NewMockLLMClient(responses ...llmtypes.CompletionResponse) *MockLLMClient {
	return &MockLLMClient{
		Responses:      responses,
		RequestHistory: make([]llmtypes.CompletionRequest, 0),
	}
}

// GenerateCompletion implements llm.LLMClient
func (m *MockLLMClient) GenerateCompletion(ctx context.Context, req llmtypes.CompletionRequest) (llmtypes.CompletionResponse, error) {
	m.LastRequest = req
	m.RequestHistory = append(m.RequestHistory, req)

	if m.ShouldError {
		m.CallCount++
		return llmtypes.CompletionResponse{}, m.ErrorToReturn
	}

	m.CallCount++
	if len(m.Responses) == 0 {
		return llmtypes.CompletionResponse{}, nil
	}
	if m.CallCount > len(m.Responses) {
		// Repeat the last response once the script is exhausted
		return m.Responses[len(m.Responses)-1], nil
	}
	return m.Responses[m.CallCount-1], nil
}

// SupportsTools implements llm.LLMClient
func (m *MockLLMClient) SupportsTools() bool {
	return true
}

// GetProvider implements llm.LLMClient
func (m *MockLLMClient) GetProvider() string {
	return "mock"
}

// SetError configures the mock to return an error
func (m *MockLLMClient) SetError(err error) {
	m.ShouldError = true
	m.ErrorToReturn = err
}

// TextResponse builds a plain completion response.
func TextResponse(content string) llmtypes.CompletionResponse {
	return llmtypes.CompletionResponse{
		Content: content,
		Usage:   llmtypes.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
}

// ToolCallResponse builds a response asking for one tool call.
func ToolCallResponse(id, name string, args map[string]interface{}) llmtypes.CompletionResponse {
	return llmtypes.CompletionResponse{
		ToolCalls: []llmtypes.ToolCall{
			{ID: id, Name: name, Arguments: args},
		},
		Usage: llmtypes.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
}

// CreateFixtureRepo initializes a git repository with the given files
// committed on the default branch and returns its directory.
func CreateFixtureRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init fixture repo: %v", err)
	}

	WriteFiles(t, dir, files)
	commitAll(t, repo, "Initial commit")
	return dir
}

// AddFixtureBranch creates a branch in the fixture repo with extra files
// committed on it, then returns to the previous HEAD.
func AddFixtureBranch(t *testing.T, dir, branch string, files map[string]string) {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("Failed to open fixture repo: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to read HEAD: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}); err != nil {
		t.Fatalf("Failed to create branch %s: %v", branch, err)
	}

	WriteFiles(t, dir, files)
	commitAll(t, repo, "Add "+branch)

	if err := wt.Checkout(&git.CheckoutOptions{Branch: head.Name()}); err != nil {
		t.Fatalf("Failed to restore HEAD: %v", err)
	}
}

// WriteFiles writes the given relative-path keyed contents under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for relPath, content := range files {
		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", relPath, err)
		}
	}
}

func commitAll(t *testing.T, repo *git.Repository, msg string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("Failed to stage files: %v", err)
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

// HeadHash returns the repository's current HEAD commit hash.
func HeadHash(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("Failed to open fixture repo: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to read HEAD: %v", err)
	}
	return head.Hash().String()
}

// AssertContains fails the test when haystack lacks needle.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected content to contain %q.\nActual:\n%s", needle, haystack)
	}
}

// AssertFileContains checks that a file contains the expected substring.
func AssertFileContains(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if !strings.Contains(string(content), expected) {
		t.Errorf("File %s does not contain %q.\nActual content:\n%s", path, expected, string(content))
	}
}
