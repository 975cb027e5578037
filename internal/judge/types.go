// Package judge implements the LLM judges that score hackathon
// submissions: concept coverage, code quality, and relative difficulty.
package judge

import "fmt"

// ConceptScore is the concept judge's verdict for one group.
type ConceptScore struct {
	Score           int      `json:"score" jsonschema:"required,minimum=1,maximum=10"`
	ConceptsFound   []string `json:"concepts_found" jsonschema:"required"`
	ConceptsMissing []string `json:"concepts_missing" jsonschema:"required"`
	Justification   string   `json:"justification" jsonschema:"required"`
}

// Validate checks the verdict's score bounds.
func (c *ConceptScore) Validate() error {
	return validateScore(c.Score)
}

// CodeQualityScore is the code quality judge's verdict for one group.
type CodeQualityScore struct {
	Score              int    `json:"score" jsonschema:"required,minimum=1,maximum=10"`
	HasProperFolders   bool   `json:"has_proper_folders" jsonschema:"required"`
	HasReadme          bool   `json:"has_readme" jsonschema:"required"`
	ReadmeQuality      string `json:"readme_quality" jsonschema:"required"`
	HasRequirementsTxt bool   `json:"has_requirements_txt" jsonschema:"required"`
	HasEnvHandling     bool   `json:"has_env_handling" jsonschema:"required"`
	CodeOrganization   string `json:"code_organization" jsonschema:"required"`
	Justification      string `json:"justification" jsonschema:"required"`
}

// Validate checks the verdict's score bounds.
func (q *CodeQualityScore) Validate() error {
	return validateScore(q.Score)
}

// DifficultyEntry is one group's difficulty score within the relative slate.
type DifficultyEntry struct {
	Group         int    `json:"group" jsonschema:"required,minimum=1"`
	Score         int    `json:"score" jsonschema:"required,minimum=1,maximum=10"`
	Justification string `json:"justification" jsonschema:"required"`
}

// DifficultySlate is the difficulty judge's verdict: scores for all
// groups assigned in a single relative pass.
type DifficultySlate struct {
	Scores []DifficultyEntry `json:"scores" jsonschema:"required"`
}

// Validate checks every entry and rejects duplicate group numbers.
func (s *DifficultySlate) Validate() error {
	if len(s.Scores) == 0 {
		return fmt.Errorf("difficulty slate is empty")
	}
	seen := make(map[int]bool, len(s.Scores))
	for _, entry := range s.Scores {
		if entry.Group <= 0 {
			return fmt.Errorf("invalid group number: %d", entry.Group)
		}
		if seen[entry.Group] {
			return fmt.Errorf("duplicate difficulty entry for group %d", entry.Group)
		}
		seen[entry.Group] = true
		if err := validateScore(entry.Score); err != nil {
			return fmt.Errorf("group %d: %w", entry.Group, err)
		}
	}
	return nil
}

// ByGroup indexes the slate's entries by group number.
func (s *DifficultySlate) ByGroup() map[int]DifficultyEntry {
	out := make(map[int]DifficultyEntry, len(s.Scores))
	for _, entry := range s.Scores {
		out[entry.Group] = entry
	}
	return out
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("score %d out of range [1, 10]", score)
	}
	return nil
}
