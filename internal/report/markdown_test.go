package report

import (
	"strings"
	"testing"

	"github.com/user/rankbot/internal/judge"
	"github.com/user/rankbot/internal/scorecard"
)

func sampleResults() []GroupResult {
	return []GroupResult{
		{
			Group:   scorecard.Group{Number: 2, Kind: scorecard.SubmissionBranch, Ref: "Group_2"},
			Concept: &judge.ConceptScore{Score: 9, ConceptsFound: []string{"RAG", "agents"}, ConceptsMissing: []string{"multimodal"}, Justification: "broad"},
			Quality: &judge.CodeQualityScore{
				Score: 8, HasProperFolders: true, HasReadme: true, ReadmeQuality: "thorough",
				HasRequirementsTxt: true, HasEnvHandling: false,
				CodeOrganization: "modular", Justification: "clean",
			},
			Difficulty: &judge.DifficultyEntry{Group: 2, Score: 9, Justification: "complex"},
		},
		{
			Group: scorecard.Group{Number: 3, Kind: scorecard.SubmissionNone},
		},
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown("c4", sampleResults())

	if !strings.Contains(out, "# C4 Hackathon Evaluation Report") {
		t.Errorf("Expected upper-cased cohort title, got:\n%s", out)
	}
	if !strings.Contains(out, "| 1 | 2 | 9 | 9 | 8 | 26 |") {
		t.Errorf("Expected summary row for group 2, got:\n%s", out)
	}
	if !strings.Contains(out, "### Group 2 (Total: 26/30)") {
		t.Errorf("Expected detail section for group 2, got:\n%s", out)
	}
	if !strings.Contains(out, "Concepts found: RAG, agents") {
		t.Errorf("Expected concepts list, got:\n%s", out)
	}
	if !strings.Contains(out, "README: ✓ (thorough)") {
		t.Errorf("Expected README checkmark, got:\n%s", out)
	}
	if !strings.Contains(out, "Env handling: ✗") {
		t.Errorf("Expected env handling cross, got:\n%s", out)
	}
	if !strings.Contains(out, "**Concept Score: 0/10** - No submission") {
		t.Errorf("Expected no-submission fallback for group 3, got:\n%s", out)
	}
}

func TestMarkdownFromDocument(t *testing.T) {
	doc := NewDocument("run-1", "c3", "test-model", sampleResults())
	out := MarkdownFromDocument(doc)

	if !strings.Contains(out, "# C3 Hackathon Evaluation Report") {
		t.Errorf("Expected cohort title, got:\n%s", out)
	}
	if !strings.Contains(out, "| 1 | 2 | 9 | 9 | 8 | 26 |") {
		t.Errorf("Expected summary row preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "Concepts found: RAG, agents") {
		t.Errorf("Expected concepts carried through the document, got:\n%s", out)
	}
	if !strings.Contains(out, "Justification: clean") {
		t.Errorf("Expected quality justification, got:\n%s", out)
	}
}
