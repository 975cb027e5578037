package config

import (
	"path/filepath"
	"time"
)

// Cohort labels for the two accelerator runs being judged.
const (
	CohortC3 = "c3"
	CohortC4 = "c4"
)

// BaseConfig holds common configuration for all commands
type BaseConfig struct {
	BasePath string `mapstructure:"base_path"` // Directory holding sheets/ and the submission repos
	Debug    bool   `mapstructure:"debug"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"` // openrouter, anthropic
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"` // Optional, for OpenAI-compatible APIs
	Retries     int     `mapstructure:"retries"`
	Timeout     int     `mapstructure:"timeout"` // Timeout in seconds
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// RetryConfig holds HTTP retry configuration
type RetryConfig struct {
	MaxAttempts       int `mapstructure:"max_attempts"`         // Default: 5
	Multiplier        int `mapstructure:"multiplier"`           // Default: 1
	MaxWaitPerAttempt int `mapstructure:"max_wait_per_attempt"` // Default: 60 seconds
	MaxTotalWait      int `mapstructure:"max_total_wait"`       // Default: 300 seconds
}

// ScorecardConfig holds the sheet and repository locations per cohort
type ScorecardConfig struct {
	C3CSV       string `mapstructure:"c3_csv"`
	C4CSV       string `mapstructure:"c4_csv"`
	SyllabusCSV string `mapstructure:"syllabus_csv"`
	C3Repo      string `mapstructure:"c3_repo"`
	C4Repo      string `mapstructure:"c4_repo"`
	// Reference is the cohort whose human scores calibrate the judges.
	Reference string `mapstructure:"reference"`
}

// EvaluateConfig holds configuration for the evaluate command
type EvaluateConfig struct {
	BaseConfig     `mapstructure:",squash"`
	LLM            LLMConfig       `mapstructure:"llm"`
	Scorecard      ScorecardConfig `mapstructure:"scorecard"`
	Retry          RetryConfig     `mapstructure:"retry"`
	Cohort         string          `mapstructure:"cohort"`
	Groups         []int           `mapstructure:"groups"` // Empty = all groups
	MaxWorkers     int             `mapstructure:"max_workers"`
	MaxTurns       int             `mapstructure:"max_turns"`
	MaxFileLines   int             `mapstructure:"max_file_lines"`
	SkipDifficulty bool            `mapstructure:"skip_difficulty"`
	DryRun         bool            `mapstructure:"dry_run"`
}

// CheckConfig holds configuration for the check command
type CheckConfig struct {
	BaseConfig   `mapstructure:",squash"`
	LLM          LLMConfig       `mapstructure:"llm"`
	Scorecard    ScorecardConfig `mapstructure:"scorecard"`
	Cohort       string          `mapstructure:"cohort"`
	OutputFormat string          `mapstructure:"output_format"` // text, json
	Verbose      bool            `mapstructure:"verbose"`
}

// ReportConfig holds configuration for the report command
type ReportConfig struct {
	BaseConfig `mapstructure:",squash"`
	Cohort     string `mapstructure:"cohort"`
	ScoresJSON string `mapstructure:"scores_json"` // Input scores document
}

// CohortCSV returns the scorecard CSV path for a cohort, resolved
// against the base path when relative.
func (s *ScorecardConfig) CohortCSV(base, cohort string) string {
	p := s.C4CSV
	if cohort == CohortC3 {
		p = s.C3CSV
	}
	return resolve(base, p)
}

// CohortRepo returns the submissions repository path for a cohort.
func (s *ScorecardConfig) CohortRepo(base, cohort string) string {
	p := s.C4Repo
	if cohort == CohortC3 {
		p = s.C3Repo
	}
	return resolve(base, p)
}

// SyllabusPath returns the syllabus CSV path.
func (s *ScorecardConfig) SyllabusPath(base string) string {
	return resolve(base, s.SyllabusCSV)
}

// ReferenceCSV returns the calibration cohort's scorecard CSV path.
func (s *ScorecardConfig) ReferenceCSV(base string) string {
	return s.CohortCSV(base, s.Reference)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// GetTimeout returns the timeout as a time.Duration
func (c *LLMConfig) GetTimeout() time.Duration {
	if c.Timeout == 0 {
		return 180 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetMaxTokens returns the max tokens with a default
func (c *LLMConfig) GetMaxTokens() int {
	if c.MaxTokens == 0 {
		return 4096
	}
	return c.MaxTokens
}

// GetRetries returns the retry count with a default
func (c *LLMConfig) GetRetries() int {
	if c.Retries == 0 {
		return 2
	}
	return c.Retries
}
