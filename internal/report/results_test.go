package report

import (
	"testing"

	"github.com/user/rankbot/internal/judge"
	"github.com/user/rankbot/internal/scorecard"
)

func sampleGroups() []scorecard.Group {
	return []scorecard.Group{
		{Number: 1, Kind: scorecard.SubmissionBranch, Ref: "Group_1"},
		{Number: 2, Kind: scorecard.SubmissionBranch, Ref: "Group_2"},
		{Number: 3, Kind: scorecard.SubmissionNone},
	}
}

func TestMerge_RanksByTotal(t *testing.T) {
	concepts := map[int]*judge.ConceptScore{
		1: {Score: 5},
		2: {Score: 9},
	}
	qualities := map[int]*judge.CodeQualityScore{
		1: {Score: 5},
		2: {Score: 8},
	}
	difficulties := map[int]judge.DifficultyEntry{
		1: {Group: 1, Score: 4},
		2: {Group: 2, Score: 9},
	}

	results := Merge(sampleGroups(), concepts, qualities, difficulties)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if results[0].Group.Number != 2 || results[0].Total() != 26 {
		t.Errorf("Expected group 2 first with 26, got group %d with %d",
			results[0].Group.Number, results[0].Total())
	}
	if results[1].Group.Number != 1 || results[1].Total() != 14 {
		t.Errorf("Expected group 1 second with 14, got group %d with %d",
			results[1].Group.Number, results[1].Total())
	}
	if results[2].Group.Number != 3 || results[2].Total() != 0 {
		t.Errorf("Expected group 3 last with 0, got group %d with %d",
			results[2].Group.Number, results[2].Total())
	}
}

func TestMerge_TiesBreakByGroupNumber(t *testing.T) {
	concepts := map[int]*judge.ConceptScore{
		1: {Score: 5},
		2: {Score: 5},
	}

	results := Merge(sampleGroups(), concepts, nil, nil)
	if results[0].Group.Number != 1 {
		t.Errorf("Expected group 1 to win the tie, got group %d", results[0].Group.Number)
	}
}

func TestGroupResult_NilScoresCountZero(t *testing.T) {
	r := GroupResult{Group: scorecard.Group{Number: 3}}
	if r.ConceptPoints() != 0 || r.QualityPoints() != 0 || r.DifficultyPoints() != 0 {
		t.Error("Expected nil verdicts to score zero")
	}
	if r.Total() != 0 {
		t.Errorf("Expected total 0, got %d", r.Total())
	}
}

func TestToScores_SkipsUnjudgedGroups(t *testing.T) {
	concepts := map[int]*judge.ConceptScore{
		1: {Score: 7},
	}
	difficulties := map[int]judge.DifficultyEntry{
		1: {Group: 1, Score: 6},
	}

	results := Merge(sampleGroups(), concepts, nil, difficulties)
	scores := ToScores(results)

	if len(scores) != 1 {
		t.Fatalf("Expected 1 scored group, got %d", len(scores))
	}
	s, ok := scores[1]
	if !ok {
		t.Fatal("Expected group 1 in scores")
	}
	if s.Concept == nil || *s.Concept != 7 {
		t.Errorf("Expected concept 7, got %v", s.Concept)
	}
	if s.Difficulty == nil || *s.Difficulty != 6 {
		t.Errorf("Expected difficulty 6, got %v", s.Difficulty)
	}
	// No quality verdict means the cell is left for the writeback to keep.
	if s.Quality != nil {
		t.Errorf("Expected nil quality, got %d", *s.Quality)
	}
	if s.Total() != 13 {
		t.Errorf("Expected total 13, got %d", s.Total())
	}
}
