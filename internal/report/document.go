package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ScoreEntry is one group's row in the scores document.
type ScoreEntry struct {
	Group                    int      `json:"group"`
	ConceptScore             int      `json:"concept_score"`
	ConceptJustification     string   `json:"concept_justification"`
	ConceptConceptsFound     []string `json:"concept_concepts_found"`
	DifficultyScore          int      `json:"difficulty_score"`
	DifficultyJustification  string   `json:"difficulty_justification"`
	CodeQualityScore         int      `json:"code_quality_score"`
	CodeQualityJustification string   `json:"code_quality_justification"`
	Total                    int      `json:"total"`
}

// Document is the machine-readable record of one evaluation run.
type Document struct {
	RunID       string       `json:"run_id"`
	Cohort      string       `json:"cohort"`
	Model       string       `json:"model"`
	GeneratedAt time.Time    `json:"generated_at"`
	Scores      []ScoreEntry `json:"scores"`
}

// NewDocument builds the scores document from ranked results.
func NewDocument(runID, cohort, model string, results []GroupResult) *Document {
	doc := &Document{
		RunID:       runID,
		Cohort:      cohort,
		Model:       model,
		GeneratedAt: time.Now().UTC(),
		Scores:      make([]ScoreEntry, 0, len(results)),
	}

	for _, r := range results {
		entry := ScoreEntry{
			Group:                    r.Group.Number,
			ConceptScore:             r.ConceptPoints(),
			ConceptJustification:     "No submission",
			ConceptConceptsFound:     []string{},
			DifficultyScore:          r.DifficultyPoints(),
			DifficultyJustification:  "No submission",
			CodeQualityScore:         r.QualityPoints(),
			CodeQualityJustification: "No submission",
			Total:                    r.Total(),
		}
		if r.Concept != nil {
			entry.ConceptJustification = r.Concept.Justification
			entry.ConceptConceptsFound = r.Concept.ConceptsFound
		}
		if r.Difficulty != nil {
			entry.DifficultyJustification = r.Difficulty.Justification
		}
		if r.Quality != nil {
			entry.CodeQualityJustification = r.Quality.Justification
		}
		doc.Scores = append(doc.Scores, entry)
	}

	return doc
}

// Write serializes the document as indented JSON.
func (d *Document) Write(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scores document: %w", err)
	}
	return nil
}

// ReadDocument loads a previously written scores document.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scores document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scores document %s: %w", path, err)
	}
	return &doc, nil
}
