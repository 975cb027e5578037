package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryTable prints the ranked summary as a console table.
func WriteSummaryTable(w io.Writer, cohort string, results []GroupResult) error {
	fmt.Fprintf(w, "\n%s Hackathon Evaluation Results\n\n", strings.ToUpper(cohort))

	table := newSummaryTable(w)
	for rank, r := range results {
		if err := table.Append([]string{
			strconv.Itoa(rank + 1),
			strconv.Itoa(r.Group.Number),
			strconv.Itoa(r.ConceptPoints()),
			strconv.Itoa(r.DifficultyPoints()),
			strconv.Itoa(r.QualityPoints()),
			strconv.Itoa(r.Total()),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// WriteDocumentSummary prints the summary table for a saved scores
// document, in the order the entries were ranked when it was written.
func WriteDocumentSummary(w io.Writer, d *Document) error {
	fmt.Fprintf(w, "\n%s Hackathon Evaluation Results\n\n", strings.ToUpper(d.Cohort))

	table := newSummaryTable(w)
	for rank, e := range d.Scores {
		if err := table.Append([]string{
			strconv.Itoa(rank + 1),
			strconv.Itoa(e.Group),
			strconv.Itoa(e.ConceptScore),
			strconv.Itoa(e.DifficultyScore),
			strconv.Itoa(e.CodeQualityScore),
			strconv.Itoa(e.Total),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// newSummaryTable creates a table writer with the standard formatting
// used for console output.
func newSummaryTable(w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		MaxWidth: 80,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader([]string{"Rank", "Group", "Concept", "Difficulty", "Quality", "Total"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
