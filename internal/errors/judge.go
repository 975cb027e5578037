package errors

import (
	"fmt"
)

// LLMConnectionError is raised when connection to the LLM provider fails
type LLMConnectionError struct {
	*RankBotError
}

// NewLLMConnectionError creates a new LLM connection error
func NewLLMConnectionError(provider string, cause error) *LLMConnectionError {
	return &LLMConnectionError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Failed to connect to LLM provider: %s", provider),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "LLM API Call",
				Component: "LLM Client",
				Details: map[string]interface{}{
					"provider": provider,
				},
				Suggestions: []string{
					"Check your internet connection",
					"Verify the API endpoint is accessible",
					"Check if the API key is valid",
					"Try again later (service may be unavailable)",
				},
				Recoverable: true,
			},
			ExitCode: ExitLLMError,
		},
	}
}

// InvalidVerdictError is raised when a judge's final output cannot be parsed
// into the expected structured result
type InvalidVerdictError struct {
	*RankBotError
}

// NewInvalidVerdictError creates a new invalid verdict error
func NewInvalidVerdictError(judge string, cause error) *InvalidVerdictError {
	return &InvalidVerdictError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Judge '%s' returned an unparseable verdict", judge),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Parsing Judge Verdict",
				Component: judge,
				Suggestions: []string{
					"Check if the model supports JSON output",
					"Try a different model",
					"Re-run the affected groups with --groups",
				},
				Recoverable: true,
			},
			ExitCode: ExitJudgeError,
		},
	}
}

// JudgeTimeoutError is raised when a judge exceeds its turn budget
type JudgeTimeoutError struct {
	*RankBotError
}

// NewJudgeTimeoutError creates a new judge timeout error
func NewJudgeTimeoutError(judge string, maxTurns int) *JudgeTimeoutError {
	return &JudgeTimeoutError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Judge '%s' exceeded %d turns without a verdict", judge, maxTurns),
			Context: &ErrorContext{
				Operation: "Judge Execution",
				Component: judge,
				Details: map[string]interface{}{
					"max_turns": maxTurns,
				},
				Suggestions: []string{
					"Increase the turn budget in configuration",
					"Check that the submission is readable by the tools",
					"Try a model that is better at tool use",
				},
				Recoverable: true,
			},
			ExitCode: ExitJudgeError,
		},
	}
}
