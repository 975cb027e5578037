package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/user/rankbot/internal/errors"
)

func TestLoadEvaluateConfig_DefaultValues(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Cohort != CohortC4 {
		t.Errorf("Expected default cohort 'c4', got '%s'", cfg.Cohort)
	}
	if cfg.MaxWorkers != 3 {
		t.Errorf("Expected max_workers 3, got %d", cfg.MaxWorkers)
	}
	if cfg.MaxTurns != 20 {
		t.Errorf("Expected max_turns 20, got %d", cfg.MaxTurns)
	}
	if cfg.MaxFileLines != 300 {
		t.Errorf("Expected max_file_lines 300, got %d", cfg.MaxFileLines)
	}
	if cfg.LLM.Provider != "openrouter" {
		t.Errorf("Expected provider 'openrouter', got '%s'", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "anthropic/claude-sonnet-4" {
		t.Errorf("Expected default model, got '%s'", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("Expected API key from environment, got '%s'", cfg.LLM.APIKey)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Expected retry max_attempts 5, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Scorecard.C4CSV != filepath.Join("sheets", "scorecard_c4.csv") {
		t.Errorf("Expected default c4 scorecard path, got '%s'", cfg.Scorecard.C4CSV)
	}
	if cfg.Scorecard.Reference != CohortC3 {
		t.Errorf("Expected reference cohort 'c3', got '%s'", cfg.Scorecard.Reference)
	}
}

func TestLoadEvaluateConfig_ProjectConfigAndCLIOverrides(t *testing.T) {
	tmpDir := t.TempDir()

	projectConfig := filepath.Join(tmpDir, ".rankbot", "config.yaml")
	_ = os.MkdirAll(filepath.Dir(projectConfig), 0755)
	content := `
evaluate:
  cohort: c3
  max_workers: 4
  llm:
    model: file-model
`
	_ = os.WriteFile(projectConfig, []byte(content), 0644)

	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "test-key")

	cliOverrides := map[string]interface{}{
		"max_workers": 8,
		"llm.model":   "cli-model",
	}

	cfg, err := LoadEvaluateConfig(tmpDir, cliOverrides)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// CLI beats the config file
	if cfg.MaxWorkers != 8 {
		t.Errorf("Expected max_workers 8 (CLI), got %d", cfg.MaxWorkers)
	}
	if cfg.LLM.Model != "cli-model" {
		t.Errorf("Expected model 'cli-model' (CLI), got '%s'", cfg.LLM.Model)
	}
	// File value survives where no CLI override was given
	if cfg.Cohort != CohortC3 {
		t.Errorf("Expected cohort 'c3' (file), got '%s'", cfg.Cohort)
	}
}

func TestLoadEvaluateConfig_ProviderSelectsAPIKeyVariable(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "router-key")
	_ = os.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	cfg, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{
		"llm.provider": "anthropic",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LLM.APIKey != "anthropic-key" {
		t.Errorf("Expected Anthropic key for provider 'anthropic', got '%s'", cfg.LLM.APIKey)
	}

	cfg, err = LoadEvaluateConfig(t.TempDir(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LLM.APIKey != "router-key" {
		t.Errorf("Expected OpenRouter key for default provider, got '%s'", cfg.LLM.APIKey)
	}
}

func TestLoadEvaluateConfig_APIKeyFallsBackAcrossVariables(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "router-key")

	// Only the other provider's variable is set; it still unblocks the run.
	cfg, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{
		"llm.provider": "anthropic",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LLM.APIKey != "router-key" {
		t.Errorf("Expected fallback to OpenRouter key, got '%s'", cfg.LLM.APIKey)
	}
}

func TestLoadEvaluateConfig_NilOverridesIgnored(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{
		"cohort": nil,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Cohort != CohortC4 {
		t.Errorf("Expected default cohort 'c4', got '%s'", cfg.Cohort)
	}
}

func TestLoadEvaluateConfig_InvalidCohort(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("OPENROUTER_API_KEY", "test-key")

	_, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{
		"cohort": "c5",
	})
	if err == nil {
		t.Fatal("Expected error for invalid cohort, got nil")
	}

	var cfgErr *apperrors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError, got %T", err)
	}
}

func TestLoadEvaluateConfig_MissingAPIKey(t *testing.T) {
	os.Clearenv()

	_, err := LoadEvaluateConfig(t.TempDir(), map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected error for missing API key, got nil")
	}
}

func TestLoadCheckConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadCheckConfig(t.TempDir(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Cohort != CohortC4 {
		t.Errorf("Expected default cohort 'c4', got '%s'", cfg.Cohort)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("Expected output format 'text', got '%s'", cfg.OutputFormat)
	}
	// Check never requires an API key; it only reports on it
	if cfg.LLM.APIKey != "" {
		t.Errorf("Expected empty API key, got '%s'", cfg.LLM.APIKey)
	}
}

func TestLoadReportConfig_DefaultScoresPath(t *testing.T) {
	os.Clearenv()
	tmpDir := t.TempDir()

	cfg, err := LoadReportConfig(tmpDir, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ScoresJSON != filepath.Join(tmpDir, "c4_scores.json") {
		t.Errorf("Expected default scores path, got '%s'", cfg.ScoresJSON)
	}

	cfg, err = LoadReportConfig(tmpDir, map[string]interface{}{"cohort": CohortC3})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ScoresJSON != filepath.Join(tmpDir, "c3_scores.json") {
		t.Errorf("Expected cohort-specific scores path, got '%s'", cfg.ScoresJSON)
	}
}

func TestScorecardConfig_CohortPaths(t *testing.T) {
	s := ScorecardConfig{}
	applyScorecardDefaults(&s)

	if got := s.CohortCSV("/base", CohortC3); got != filepath.Join("/base", "sheets", "scorecard_c3.csv") {
		t.Errorf("Unexpected c3 CSV path: %s", got)
	}
	if got := s.CohortRepo("/base", CohortC4); got != filepath.Join("/base", "submissions-c4") {
		t.Errorf("Unexpected c4 repo path: %s", got)
	}
	if got := s.ReferenceCSV("/base"); got != filepath.Join("/base", "sheets", "scorecard_c3.csv") {
		t.Errorf("Unexpected reference CSV path: %s", got)
	}

	// Absolute paths pass through untouched
	s.C4CSV = "/abs/scorecard.csv"
	if got := s.CohortCSV("/base", CohortC4); got != "/abs/scorecard.csv" {
		t.Errorf("Expected absolute path untouched, got %s", got)
	}
}
