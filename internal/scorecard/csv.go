package scorecard

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Scorecard column names as they appear in the spreadsheet exports.
const (
	ColGroup       = "Group"
	ColProjectLink = "Project Link"
	ColVideoLink   = "Video Link"
	ColConcept     = "Concept Score (10)"
	ColDifficulty  = "Difficulty Level (10)"
	ColQuality     = "Code Quality (10)"
	ColTotal       = "Total (30)"
	ColPosition    = "Position"
	ColComments    = "Comments"
)

// Scores holds the judge scores for one group, used when writing results
// back into the scorecard CSV. A nil field means the judge produced no
// verdict; the existing cell keeps its value.
type Scores struct {
	Concept    *int
	Difficulty *int
	Quality    *int
}

// Total returns the combined score of the present values, out of 30.
func (s Scores) Total() int {
	total := 0
	for _, v := range []*int{s.Concept, s.Difficulty, s.Quality} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// LoadGroups parses the scorecard CSV into Group records. Rows without a
// numeric group number (section headers, blank rows) are skipped.
func LoadGroups(csvPath string) ([]Group, error) {
	header, rows, err := readTable(csvPath)
	if err != nil {
		return nil, err
	}

	cols := columnIndex(header)
	groups := make([]Group, 0, len(rows))
	for _, row := range rows {
		rawGroup := strings.TrimSpace(cell(row, cols, ColGroup))
		number, ok := parseGroupNumber(rawGroup)
		if !ok {
			continue
		}

		projectLink := strings.TrimSpace(cell(row, cols, ColProjectLink))
		ref, path, kind := ParseProjectLink(projectLink)
		groups = append(groups, Group{
			Number:      number,
			ProjectLink: projectLink,
			VideoLink:   strings.TrimSpace(cell(row, cols, ColVideoLink)),
			Ref:         ref,
			Path:        path,
			Kind:        kind,
		})
	}

	return groups, nil
}

// LoadSyllabus reads the syllabus CSV and formats it as a markdown block
// for inclusion in judge prompts.
func LoadSyllabus(csvPath string) (string, error) {
	header, rows, err := readTable(csvPath)
	if err != nil {
		return "", err
	}

	cols := columnIndex(header)
	var b strings.Builder
	for _, row := range rows {
		title := strings.TrimSpace(cell(row, cols, "Sprint Title"))
		topics := strings.TrimSpace(cell(row, cols, "Topics"))
		if title == "" && topics == "" {
			continue
		}

		if title != "" {
			fmt.Fprintf(&b, "## %s\n", title)
		}
		if topics != "" {
			fmt.Fprintf(&b, "**Topics:** %s\n", topics)
		}
		if v := strings.TrimSpace(cell(row, cols, "Description")); v != "" {
			fmt.Fprintf(&b, "**Description:** %s\n", v)
		}
		if v := strings.TrimSpace(cell(row, cols, "Outcomes")); v != "" {
			fmt.Fprintf(&b, "**Outcomes:** %s\n", v)
		}
		if v := strings.TrimSpace(cell(row, cols, "Tools - Sprint Wise")); v != "" {
			fmt.Fprintf(&b, "**Tools:** %s\n", v)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// LoadReference reads a previously scored cohort's CSV and formats it as a
// calibration table for judge prompts.
func LoadReference(csvPath string) (string, error) {
	header, rows, err := readTable(csvPath)
	if err != nil {
		return "", err
	}

	cols := columnIndex(header)
	var b strings.Builder
	b.WriteString("# Reference Scores (for calibration)\n\n")
	b.WriteString("| Group | Concept | Difficulty | Code Quality | Total | Comments |\n")
	b.WriteString("|-------|---------|------------|--------------|-------|----------|\n")
	for _, row := range rows {
		rawGroup := strings.TrimSpace(cell(row, cols, ColGroup))
		if _, ok := parseGroupNumber(rawGroup); !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			rawGroup,
			cellOrDash(row, cols, ColConcept),
			cellOrDash(row, cols, ColDifficulty),
			cellOrDash(row, cols, ColQuality),
			cellOrDash(row, cols, ColTotal),
			strings.TrimSpace(cell(row, cols, ColComments)),
		)
	}

	return b.String(), nil
}

// WriteScores updates the scorecard CSV in place with the given scores,
// recomputes totals, and assigns ranking positions. Columns the tool does
// not know about are preserved untouched, and existing scores are kept for
// groups absent from the scores map.
//
// Positions follow standard competition ranking: equal totals share a
// position and the next distinct total skips ahead by the number of tied
// rows above it.
func WriteScores(csvPath string, scores map[int]Scores) error {
	header, rows, err := readTable(csvPath)
	if err != nil {
		return err
	}

	cols := columnIndex(header)
	for _, col := range []string{ColConcept, ColDifficulty, ColQuality, ColTotal, ColPosition} {
		if _, ok := cols[col]; !ok {
			return fmt.Errorf("scorecard %s is missing required column %q", csvPath, col)
		}
	}

	type scoredRow struct {
		row   []string
		total int
	}
	var scored []scoredRow

	for _, row := range rows {
		rawGroup := strings.TrimSpace(cell(row, cols, ColGroup))
		number, ok := parseGroupNumber(rawGroup)
		if !ok {
			continue
		}

		// Only overwrite cells a judge produced a value for, so a
		// failed or skipped judge never zeroes an existing score.
		if s, ok := scores[number]; ok {
			if s.Concept != nil {
				setCell(row, cols, ColConcept, strconv.Itoa(*s.Concept))
			}
			if s.Difficulty != nil {
				setCell(row, cols, ColDifficulty, strconv.Itoa(*s.Difficulty))
			}
			if s.Quality != nil {
				setCell(row, cols, ColQuality, strconv.Itoa(*s.Quality))
			}
		}

		// Recompute the total from whatever is in the row now, so a
		// partial run still produces consistent totals.
		total := cellInt(row, cols, ColConcept) +
			cellInt(row, cols, ColDifficulty) +
			cellInt(row, cols, ColQuality)
		if total > 0 {
			setCell(row, cols, ColTotal, strconv.Itoa(total))
			scored = append(scored, scoredRow{row: row, total: total})
		} else {
			setCell(row, cols, ColTotal, "")
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].total > scored[j].total
	})

	position := 0
	prevTotal := -1
	for i, sr := range scored {
		if sr.total != prevTotal {
			position = i + 1
		}
		setCell(sr.row, cols, ColPosition, strconv.Itoa(position))
		prevTotal = sr.total
	}

	return writeTable(csvPath, header, rows)
}

// readTable reads a CSV file into a header row and data rows. Rows are
// padded to the header width so column lookups never go out of range.
func readTable(csvPath string) (header []string, rows [][]string, err error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV %s: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV %s: %w", csvPath, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV %s has no header row", csvPath)
	}

	header = records[0]
	rows = records[1:]
	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return header, rows, nil
}

func writeTable(csvPath string, header []string, rows [][]string) error {
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", csvPath, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func cellOrDash(row []string, cols map[string]int, name string) string {
	v := strings.TrimSpace(cell(row, cols, name))
	if v == "" {
		return "-"
	}
	return v
}

func cellInt(row []string, cols map[string]int, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell(row, cols, name)))
	if err != nil {
		return 0
	}
	return n
}

func setCell(row []string, cols map[string]int, name, value string) {
	if i, ok := cols[name]; ok && i < len(row) {
		row[i] = value
	}
}

func parseGroupNumber(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
