package judge

import (
	"context"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/logging"
	"github.com/user/rankbot/internal/prompts"
	"github.com/user/rankbot/internal/scorecard"
	testHelpers "github.com/user/rankbot/internal/testing"
)

func testOptions(client *testHelpers.MockLLMClient) Options {
	pm := prompts.NewManagerFromMap(map[string]string{
		"concept_judge_system":      "Judge concepts. Syllabus: {{.Syllabus}} Reference: {{.Reference}}",
		"code_quality_judge_system": "Judge quality.",
		"difficulty_judge_system":   "Judge difficulty.",
		"summarizer_system":         "Summarize the project.",
	})
	return Options{
		Client:    client,
		Prompts:   pm,
		Logger:    logging.NewNopLogger(),
		MaxTurns:  5,
		Syllabus:  "## Sprint 1",
		Reference: "# Reference Scores",
	}
}

func branchGroup(n int) scorecard.Group {
	return scorecard.Group{
		Number: n,
		Ref:    fmt.Sprintf("Group_%d", n),
		Path:   "project",
		Kind:   scorecard.SubmissionBranch,
	}
}

func TestConceptJudge_Evaluate(t *testing.T) {
	client := testHelpers.NewMockLLMClient(testHelpers.TextResponse(
		`{"score": 8, "concepts_found": ["RAG", "agents"], "concepts_missing": ["multimodal"], "justification": "broad coverage"}`))

	j, err := NewConceptJudge(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building judge, got %v", err)
	}

	verdict, err := j.Evaluate(context.Background(), branchGroup(2), "c4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if verdict.Score != 8 {
		t.Errorf("Expected score 8, got %d", verdict.Score)
	}
	if len(verdict.ConceptsFound) != 2 {
		t.Errorf("Expected 2 concepts found, got %v", verdict.ConceptsFound)
	}

	// The syllabus and reference material are rendered into the system
	// prompt, with the output schema appended.
	system := client.LastRequest.SystemPrompt
	if !strings.Contains(system, "## Sprint 1") {
		t.Error("Expected syllabus rendered into system prompt")
	}
	if !strings.Contains(system, "# Reference Scores") {
		t.Error("Expected reference scores rendered into system prompt")
	}
	if !strings.Contains(system, "concepts_found") {
		t.Error("Expected output schema appended to system prompt")
	}
	if client.LastRequest.ResponseFormat.Type != "json_object" {
		t.Errorf("Expected json_object response format, got %q", client.LastRequest.ResponseFormat.Type)
	}
}

func TestConceptJudge_InvalidVerdict(t *testing.T) {
	client := testHelpers.NewMockLLMClient(testHelpers.TextResponse("I refuse to answer in JSON."))

	j, err := NewConceptJudge(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building judge, got %v", err)
	}

	_, err = j.Evaluate(context.Background(), branchGroup(2), "c4")
	if err == nil {
		t.Fatal("Expected invalid verdict error, got nil")
	}
	if _, ok := err.(*apperrors.InvalidVerdictError); !ok {
		t.Errorf("Expected InvalidVerdictError, got %T: %v", err, err)
	}
}

func TestCodeQualityJudge_Evaluate(t *testing.T) {
	client := testHelpers.NewMockLLMClient(testHelpers.TextResponse(
		`{"score": 6, "has_proper_folders": true, "has_readme": true, "readme_quality": "good",
		  "has_requirements_txt": true, "has_env_handling": false,
		  "code_organization": "modular", "justification": "solid layout"}`))

	j, err := NewCodeQualityJudge(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building judge, got %v", err)
	}

	verdict, err := j.Evaluate(context.Background(), branchGroup(3), "c4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if verdict.Score != 6 {
		t.Errorf("Expected score 6, got %d", verdict.Score)
	}
	if !verdict.HasReadme || verdict.HasEnvHandling {
		t.Errorf("Unexpected booleans: %+v", verdict)
	}
}

func TestDifficultyJudge_Score(t *testing.T) {
	client := testHelpers.NewMockLLMClient(testHelpers.TextResponse(
		`{"scores": [
			{"group": 1, "score": 4, "justification": "linear pipeline"},
			{"group": 2, "score": 9, "justification": "multi-agent with loops"}
		]}`))

	j, err := NewDifficultyJudge(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building judge, got %v", err)
	}

	slate, err := j.Score(context.Background(), JoinSummaries([]string{"## Group 1\nsimple", "## Group 2\ncomplex"}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	byGroup := slate.ByGroup()
	if byGroup[2].Score != 9 {
		t.Errorf("Expected group 2 score 9, got %d", byGroup[2].Score)
	}

	// The difficulty judge sees all summaries in one call and has no tools.
	if client.CallCount != 1 {
		t.Errorf("Expected a single LLM call, got %d", client.CallCount)
	}
	if len(client.LastRequest.Tools) != 0 {
		t.Errorf("Expected no tools, got %d", len(client.LastRequest.Tools))
	}
	if !strings.Contains(client.LastRequest.Messages[0].Content, "## Group 2") {
		t.Error("Expected summaries document in the user prompt")
	}
}

func TestSummarizer_NoSubmissionSkipsLLM(t *testing.T) {
	client := testHelpers.NewMockLLMClient()

	s, err := NewSummarizer(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building summarizer, got %v", err)
	}

	out, err := s.Summarize(context.Background(), scorecard.Group{Number: 4, Kind: scorecard.SubmissionNone}, "c4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != "Group 4: No submission - no code available." {
		t.Errorf("Unexpected placeholder: %q", out)
	}
	if client.CallCount != 0 {
		t.Errorf("Expected no LLM calls, got %d", client.CallCount)
	}
}

func TestSummarizer_TitlesOutput(t *testing.T) {
	client := testHelpers.NewMockLLMClient(testHelpers.TextResponse("A LangGraph research crew."))

	s, err := NewSummarizer(testOptions(client))
	if err != nil {
		t.Fatalf("Expected no error building summarizer, got %v", err)
	}

	out, err := s.Summarize(context.Background(), branchGroup(5), "c4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "## Group 5") {
		t.Errorf("Expected titled summary block, got %q", out)
	}
	if !strings.Contains(out, "A LangGraph research crew.") {
		t.Errorf("Expected model output included, got %q", out)
	}
}
