package judge

import (
	"strings"
	"testing"

	"github.com/user/rankbot/internal/scorecard"
)

func TestBuildEvaluationPrompt_NoSubmission(t *testing.T) {
	prompt := BuildEvaluationPrompt(scorecard.Group{Number: 4, Kind: scorecard.SubmissionNone}, "c4")
	if !strings.Contains(prompt, "Score 0/10") {
		t.Errorf("Expected zero-score instruction, got:\n%s", prompt)
	}
}

func TestBuildEvaluationPrompt_Zip(t *testing.T) {
	g := scorecard.Group{Number: 3, Kind: scorecard.SubmissionZip, Ref: "Group_3", Path: "final.zip"}
	prompt := BuildEvaluationPrompt(g, "c4")

	for _, expected := range []string{"zip_list_files", "zip_read_file", "final.zip", "poor code quality"} {
		if !strings.Contains(prompt, expected) {
			t.Errorf("Expected zip prompt to mention %q, got:\n%s", expected, prompt)
		}
	}
}

func TestBuildEvaluationPrompt_MainBranch(t *testing.T) {
	g := scorecard.Group{Number: 2, Kind: scorecard.SubmissionBranch, Ref: "main", Path: "group2"}
	prompt := BuildEvaluationPrompt(g, "c4")

	if !strings.Contains(prompt, "list_local_directory") || !strings.Contains(prompt, "read_local_file") {
		t.Errorf("Expected local tool hints for main branch, got:\n%s", prompt)
	}
}

func TestBuildEvaluationPrompt_FeatureBranch(t *testing.T) {
	g := scorecard.Group{Number: 1, Kind: scorecard.SubmissionBranch, Ref: "Group_1", Path: "project"}
	prompt := BuildEvaluationPrompt(g, "c4")

	if !strings.Contains(prompt, "git_list_files") || !strings.Contains(prompt, "git_read_file") {
		t.Errorf("Expected git tool hints for feature branch, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "branch='Group_1'") {
		t.Errorf("Expected branch name in hint, got:\n%s", prompt)
	}
}

func TestBuildEvaluationPrompt_Commit(t *testing.T) {
	g := scorecard.Group{Number: 6, Kind: scorecard.SubmissionCommit, Ref: "deadbeef1234567"}
	prompt := BuildEvaluationPrompt(g, "c4")

	if !strings.Contains(prompt, "specific commit") || !strings.Contains(prompt, "deadbeef1234567") {
		t.Errorf("Expected commit prompt, got:\n%s", prompt)
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	g := scorecard.Group{Number: 1, Kind: scorecard.SubmissionBranch, Ref: "Group_1"}
	prompt := BuildSummaryPrompt(g, "c4")

	if !strings.Contains(prompt, "DO NOT SCORE") {
		t.Errorf("Expected summary instruction, got:\n%s", prompt)
	}
}

func TestJoinSummaries(t *testing.T) {
	doc := JoinSummaries([]string{"one", "two"})
	if doc != "one\n\n---\n\ntwo" {
		t.Errorf("Unexpected joined document: %q", doc)
	}
}
