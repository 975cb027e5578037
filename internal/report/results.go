// Package report assembles judge verdicts into the evaluation outputs:
// the markdown report, the scores JSON document, and the console summary.
package report

import (
	"sort"

	"github.com/user/rankbot/internal/judge"
	"github.com/user/rankbot/internal/scorecard"
)

// GroupResult holds everything known about one group after judging.
// Nil verdicts mean the judge failed or the group had no submission;
// they score as zero.
type GroupResult struct {
	Group      scorecard.Group
	Concept    *judge.ConceptScore
	Quality    *judge.CodeQualityScore
	Difficulty *judge.DifficultyEntry
}

// ConceptPoints returns the concept score, zero when absent.
func (r GroupResult) ConceptPoints() int {
	if r.Concept == nil {
		return 0
	}
	return r.Concept.Score
}

// QualityPoints returns the code quality score, zero when absent.
func (r GroupResult) QualityPoints() int {
	if r.Quality == nil {
		return 0
	}
	return r.Quality.Score
}

// DifficultyPoints returns the difficulty score, zero when absent.
func (r GroupResult) DifficultyPoints() int {
	if r.Difficulty == nil {
		return 0
	}
	return r.Difficulty.Score
}

// Total returns the combined score out of 30.
func (r GroupResult) Total() int {
	return r.ConceptPoints() + r.QualityPoints() + r.DifficultyPoints()
}

// Merge combines per-judge verdicts into ranked results, ordered by total
// descending with group number breaking ties.
func Merge(
	groups []scorecard.Group,
	concepts map[int]*judge.ConceptScore,
	qualities map[int]*judge.CodeQualityScore,
	difficulties map[int]judge.DifficultyEntry,
) []GroupResult {
	results := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		result := GroupResult{
			Group:   g,
			Concept: concepts[g.Number],
			Quality: qualities[g.Number],
		}
		if entry, ok := difficulties[g.Number]; ok {
			result.Difficulty = &entry
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Total() != results[j].Total() {
			return results[i].Total() > results[j].Total()
		}
		return results[i].Group.Number < results[j].Group.Number
	})

	return results
}

// ToScores converts results into the scorecard writeback format, skipping
// groups with nothing to record. Missing verdicts stay nil so the
// writeback leaves their cells alone.
func ToScores(results []GroupResult) map[int]scorecard.Scores {
	scores := make(map[int]scorecard.Scores)
	for _, r := range results {
		if r.Concept == nil && r.Quality == nil && r.Difficulty == nil {
			continue
		}
		s := scorecard.Scores{}
		if r.Concept != nil {
			v := r.Concept.Score
			s.Concept = &v
		}
		if r.Difficulty != nil {
			v := r.Difficulty.Score
			s.Difficulty = &v
		}
		if r.Quality != nil {
			v := r.Quality.Score
			s.Quality = &v
		}
		scores[r.Group.Number] = s
	}
	return scores
}
