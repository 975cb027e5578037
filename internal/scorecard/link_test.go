package scorecard

import "testing"

func TestParseProjectLink_Tree(t *testing.T) {
	ref, path, kind := ParseProjectLink("https://github.com/org/subs/tree/Group_7/project")
	if kind != SubmissionBranch {
		t.Errorf("Expected branch submission, got %s", kind)
	}
	if ref != "Group_7" {
		t.Errorf("Expected ref 'Group_7', got '%s'", ref)
	}
	if path != "project" {
		t.Errorf("Expected path 'project', got '%s'", path)
	}
}

func TestParseProjectLink_TreeWithoutPath(t *testing.T) {
	ref, path, kind := ParseProjectLink("https://github.com/org/subs/tree/Group_12")
	if kind != SubmissionBranch {
		t.Errorf("Expected branch submission, got %s", kind)
	}
	if ref != "Group_12" {
		t.Errorf("Expected ref 'Group_12', got '%s'", ref)
	}
	if path != "" {
		t.Errorf("Expected empty path, got '%s'", path)
	}
}

func TestParseProjectLink_Commit(t *testing.T) {
	ref, path, kind := ParseProjectLink("https://github.com/org/subs/commit/a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2")
	if kind != SubmissionCommit {
		t.Errorf("Expected commit submission, got %s", kind)
	}
	if ref != "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2" {
		t.Errorf("Unexpected ref '%s'", ref)
	}
	if path != "" {
		t.Errorf("Expected empty path, got '%s'", path)
	}
}

func TestParseProjectLink_TreeWithCommitHash(t *testing.T) {
	ref, _, kind := ParseProjectLink("https://github.com/org/subs/tree/deadbeef1234567")
	if kind != SubmissionCommit {
		t.Errorf("Expected commit submission for hash-like ref, got %s", kind)
	}
	if ref != "deadbeef1234567" {
		t.Errorf("Unexpected ref '%s'", ref)
	}
}

func TestParseProjectLink_Zip(t *testing.T) {
	ref, path, kind := ParseProjectLink("https://github.com/org/subs/blob/Group_3/final%20project.zip")
	if kind != SubmissionZip {
		t.Errorf("Expected zip submission, got %s", kind)
	}
	if ref != "Group_3" {
		t.Errorf("Expected ref 'Group_3', got '%s'", ref)
	}
	if path != "final project.zip" {
		t.Errorf("Expected unescaped zip path, got '%s'", path)
	}
}

func TestParseProjectLink_Blob(t *testing.T) {
	ref, path, kind := ParseProjectLink("https://github.com/org/subs/blob/Group_5/app.py")
	if kind != SubmissionBranch {
		t.Errorf("Expected branch submission for blob link, got %s", kind)
	}
	if ref != "Group_5" {
		t.Errorf("Expected ref 'Group_5', got '%s'", ref)
	}
	if path != "app.py" {
		t.Errorf("Expected path 'app.py', got '%s'", path)
	}
}

func TestParseProjectLink_None(t *testing.T) {
	for _, link := range []string{"", "   ", "https://github.com/org/subs", "not a link"} {
		_, _, kind := ParseProjectLink(link)
		if kind != SubmissionNone {
			t.Errorf("Expected no submission for %q, got %s", link, kind)
		}
	}
}

func TestGroup_HasSubmission(t *testing.T) {
	if (Group{Kind: SubmissionNone}).HasSubmission() {
		t.Error("Expected no submission")
	}
	if !(Group{Kind: SubmissionZip}).HasSubmission() {
		t.Error("Expected zip to count as a submission")
	}
}

func TestGroup_OnDefaultBranch(t *testing.T) {
	g := Group{Kind: SubmissionBranch, Ref: "main"}
	if !g.OnDefaultBranch() {
		t.Error("Expected main branch submission to be on default branch")
	}

	g = Group{Kind: SubmissionBranch, Ref: "Group_2"}
	if g.OnDefaultBranch() {
		t.Error("Expected feature branch submission not to be on default branch")
	}
}
