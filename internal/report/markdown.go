package report

import (
	"fmt"
	"strings"
)

// Markdown renders the full evaluation report: a ranked summary table
// followed by per-group detail sections.
func Markdown(cohort string, results []GroupResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Hackathon Evaluation Report\n\n", strings.ToUpper(cohort))
	b.WriteString("## Summary\n\n")
	b.WriteString("| Rank | Group | Concept | Difficulty | Code Quality | Total |\n")
	b.WriteString("|------|-------|---------|------------|--------------|-------|\n")
	for rank, r := range results {
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n",
			rank+1, r.Group.Number,
			r.ConceptPoints(), r.DifficultyPoints(), r.QualityPoints(), r.Total())
	}

	b.WriteString("\n---\n\n## Detailed Evaluations\n\n")

	for _, r := range results {
		fmt.Fprintf(&b, "### Group %d (Total: %d/30)\n\n", r.Group.Number, r.Total())

		if c := r.Concept; c != nil {
			fmt.Fprintf(&b, "**Concept Score: %d/10**\n", c.Score)
			fmt.Fprintf(&b, "- Concepts found: %s\n", strings.Join(c.ConceptsFound, ", "))
			fmt.Fprintf(&b, "- Concepts missing: %s\n", strings.Join(c.ConceptsMissing, ", "))
			fmt.Fprintf(&b, "- Justification: %s\n", c.Justification)
		} else {
			b.WriteString("**Concept Score: 0/10** - No submission\n")
		}
		b.WriteString("\n")

		if d := r.Difficulty; d != nil {
			fmt.Fprintf(&b, "**Difficulty Score: %d/10**\n", d.Score)
			fmt.Fprintf(&b, "- Justification: %s\n", d.Justification)
		} else {
			b.WriteString("**Difficulty Score: 0/10** - No submission\n")
		}
		b.WriteString("\n")

		if q := r.Quality; q != nil {
			fmt.Fprintf(&b, "**Code Quality Score: %d/10**\n", q.Score)
			fmt.Fprintf(&b, "- Folder structure: %s\n", checkmark(q.HasProperFolders))
			fmt.Fprintf(&b, "- README: %s (%s)\n", checkmark(q.HasReadme), q.ReadmeQuality)
			fmt.Fprintf(&b, "- Requirements: %s\n", checkmark(q.HasRequirementsTxt))
			fmt.Fprintf(&b, "- Env handling: %s\n", checkmark(q.HasEnvHandling))
			fmt.Fprintf(&b, "- Organization: %s\n", q.CodeOrganization)
			fmt.Fprintf(&b, "- Justification: %s\n", q.Justification)
		} else {
			b.WriteString("**Code Quality Score: 0/10** - No submission\n")
		}

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

// MarkdownFromDocument re-renders the report from a saved scores document.
// The document records scores and justifications, not the full judge
// breakdown, so the detail sections are shorter than a fresh report.
func MarkdownFromDocument(d *Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Hackathon Evaluation Report\n\n", strings.ToUpper(d.Cohort))
	b.WriteString("## Summary\n\n")
	b.WriteString("| Rank | Group | Concept | Difficulty | Code Quality | Total |\n")
	b.WriteString("|------|-------|---------|------------|--------------|-------|\n")
	for rank, e := range d.Scores {
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n",
			rank+1, e.Group,
			e.ConceptScore, e.DifficultyScore, e.CodeQualityScore, e.Total)
	}

	b.WriteString("\n---\n\n## Detailed Evaluations\n\n")

	for _, e := range d.Scores {
		fmt.Fprintf(&b, "### Group %d (Total: %d/30)\n\n", e.Group, e.Total)

		fmt.Fprintf(&b, "**Concept Score: %d/10**\n", e.ConceptScore)
		if len(e.ConceptConceptsFound) > 0 {
			fmt.Fprintf(&b, "- Concepts found: %s\n", strings.Join(e.ConceptConceptsFound, ", "))
		}
		fmt.Fprintf(&b, "- Justification: %s\n\n", e.ConceptJustification)

		fmt.Fprintf(&b, "**Difficulty Score: %d/10**\n", e.DifficultyScore)
		fmt.Fprintf(&b, "- Justification: %s\n\n", e.DifficultyJustification)

		fmt.Fprintf(&b, "**Code Quality Score: %d/10**\n", e.CodeQualityScore)
		fmt.Fprintf(&b, "- Justification: %s\n", e.CodeQualityJustification)

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
