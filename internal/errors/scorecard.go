package errors

import (
	"fmt"
)

// ScorecardError is raised for unreadable or malformed scorecard CSVs
type ScorecardError struct {
	*RankBotError
}

// NewScorecardError creates a new scorecard error
func NewScorecardError(path string, cause error) *ScorecardError {
	return &ScorecardError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Failed to process scorecard: %s", path),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Scorecard I/O",
				Component: "Scorecard",
				Details: map[string]interface{}{
					"path": path,
				},
				Suggestions: []string{
					"Check that the CSV exists and has a header row",
					"Verify the sheet was exported with the expected columns",
				},
			},
			ExitCode: ExitScorecardError,
		},
	}
}

// NewReportError creates an error for report writing failures
func NewReportError(path string, cause error) *RankBotError {
	return &RankBotError{
		Message:  fmt.Sprintf("Failed to write report: %s", path),
		Cause:    cause,
		ExitCode: ExitIOError,
	}
}
