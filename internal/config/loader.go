package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/user/rankbot/internal/errors"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("RANKBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Loader{v: v}
}

// Load merges all configuration sources for a section.
// Precedence: CLI > .rankbot/config.yaml > ~/.rankbot.yaml > Environment > Defaults
func (l *Loader) Load(basePath, section string, cliOverrides map[string]interface{}) (map[string]interface{}, error) {
	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}
	if err := l.loadProjectConfig(basePath); err != nil {
		return nil, err
	}

	var sectionConfig map[string]interface{}
	if section != "" {
		sectionConfig = l.v.GetStringMap(section)
	} else {
		sectionConfig = l.v.AllSettings()
	}
	if sectionConfig == nil {
		sectionConfig = map[string]interface{}{}
	}

	for key, value := range cliOverrides {
		if value != nil {
			setNested(sectionConfig, key, value)
		}
	}

	return sectionConfig, nil
}

// loadGlobalConfig loads configuration from ~/.rankbot.yaml
func (l *Loader) loadGlobalConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil // Not a fatal error
	}

	globalConfig := filepath.Join(homeDir, ".rankbot.yaml")
	if _, err := os.Stat(globalConfig); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(globalConfig)
	if err := l.v.ReadInConfig(); err != nil {
		return errors.NewConfigFileError(globalConfig, err)
	}

	return nil
}

// loadProjectConfig loads configuration from <base>/.rankbot/config.yaml
func (l *Loader) loadProjectConfig(basePath string) error {
	if basePath == "" {
		basePath = "."
	}

	configPath := filepath.Join(basePath, ".rankbot", "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(configPath)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(configPath, err)
	}

	return nil
}

// setNested sets a dotted key ("llm.model") into a nested map
func setNested(m map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, ".")
	for i := 0; i < len(parts)-1; i++ {
		next, ok := m[parts[i]].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			m[parts[i]] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func decodeSection(configMap map[string]interface{}, out interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
		Squash:           true,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}

	if err := decoder.Decode(configMap); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// LoadEvaluateConfig loads and validates the evaluate command configuration
func LoadEvaluateConfig(basePath string, cliOverrides map[string]interface{}) (*EvaluateConfig, error) {
	configMap, err := NewLoader().Load(basePath, "evaluate", cliOverrides)
	if err != nil {
		return nil, err
	}

	cfg := &EvaluateConfig{}
	if err := decodeSection(configMap, cfg); err != nil {
		return nil, err
	}

	applyEvaluateDefaults(cfg)
	applyLLMEnvOverrides(&cfg.LLM)

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}
	if cfg.Cohort != CohortC3 && cfg.Cohort != CohortC4 {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("invalid cohort %q (expected %q or %q)", cfg.Cohort, CohortC3, CohortC4))
	}

	return cfg, nil
}

// LoadCheckConfig loads the check command configuration
func LoadCheckConfig(basePath string, cliOverrides map[string]interface{}) (*CheckConfig, error) {
	configMap, err := NewLoader().Load(basePath, "check", cliOverrides)
	if err != nil {
		return nil, err
	}

	cfg := &CheckConfig{}
	if err := decodeSection(configMap, cfg); err != nil {
		return nil, err
	}

	if cfg.BasePath == "" {
		cfg.BasePath = "."
	}
	if cfg.Cohort == "" {
		cfg.Cohort = CohortC4
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	applyScorecardDefaults(&cfg.Scorecard)
	applyLLMEnvOverrides(&cfg.LLM)
	applyLLMDefaults(&cfg.LLM)

	return cfg, nil
}

// LoadReportConfig loads the report command configuration
func LoadReportConfig(basePath string, cliOverrides map[string]interface{}) (*ReportConfig, error) {
	configMap, err := NewLoader().Load(basePath, "report", cliOverrides)
	if err != nil {
		return nil, err
	}

	cfg := &ReportConfig{}
	if err := decodeSection(configMap, cfg); err != nil {
		return nil, err
	}

	if cfg.BasePath == "" {
		cfg.BasePath = "."
	}
	if cfg.Cohort == "" {
		cfg.Cohort = CohortC4
	}
	if cfg.ScoresJSON == "" {
		cfg.ScoresJSON = filepath.Join(cfg.BasePath, cfg.Cohort+"_scores.json")
	}

	return cfg, nil
}

func applyEvaluateDefaults(cfg *EvaluateConfig) {
	if cfg.BasePath == "" {
		cfg.BasePath = "."
	}
	if cfg.Cohort == "" {
		cfg.Cohort = CohortC4
	}
	if cfg.MaxWorkers == 0 {
		// Sized for provider rate limits, not CPU count.
		cfg.MaxWorkers = 3
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 20
	}
	if cfg.MaxFileLines == 0 {
		cfg.MaxFileLines = 300
	}
	applyScorecardDefaults(&cfg.Scorecard)
	applyLLMDefaults(&cfg.LLM)
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 5
	}
	if cfg.Retry.Multiplier == 0 {
		cfg.Retry.Multiplier = 1
	}
	if cfg.Retry.MaxWaitPerAttempt == 0 {
		cfg.Retry.MaxWaitPerAttempt = 60
	}
	if cfg.Retry.MaxTotalWait == 0 {
		cfg.Retry.MaxTotalWait = 300
	}
}

func applyScorecardDefaults(s *ScorecardConfig) {
	if s.C3CSV == "" {
		s.C3CSV = filepath.Join("sheets", "scorecard_c3.csv")
	}
	if s.C4CSV == "" {
		s.C4CSV = filepath.Join("sheets", "scorecard_c4.csv")
	}
	if s.SyllabusCSV == "" {
		s.SyllabusCSV = filepath.Join("sheets", "syllabus.csv")
	}
	if s.C3Repo == "" {
		s.C3Repo = "submissions-c3"
	}
	if s.C4Repo == "" {
		s.C4Repo = "submissions-c4"
	}
	if s.Reference == "" {
		s.Reference = CohortC3
	}
}

func applyLLMDefaults(llm *LLMConfig) {
	if llm.Provider == "" {
		llm.Provider = "openrouter"
	}
	if llm.Model == "" {
		llm.Model = "anthropic/claude-sonnet-4"
	}
	if llm.Retries == 0 {
		llm.Retries = 2
	}
	if llm.Timeout == 0 {
		llm.Timeout = 180
	}
	if llm.MaxTokens == 0 {
		llm.MaxTokens = 4096
	}
}

// applyLLMEnvOverrides honors the conventional provider key variables in
// addition to the RANKBOT_-prefixed ones. The variable matching the
// configured provider wins when both are set.
func applyLLMEnvOverrides(llm *LLMConfig) {
	if llm.APIKey == "" {
		primary, fallback := "OPENROUTER_API_KEY", "ANTHROPIC_API_KEY"
		if llm.Provider == "anthropic" {
			primary, fallback = fallback, primary
		}
		if llm.APIKey = os.Getenv(primary); llm.APIKey == "" {
			llm.APIKey = os.Getenv(fallback)
		}
	}
	if env := os.Getenv("RANKBOT_MODEL"); env != "" && llm.Model == "" {
		llm.Model = env
	}
}

func validateLLMConfig(llm *LLMConfig) error {
	applyLLMDefaults(llm)
	if llm.APIKey == "" {
		name := "OPENROUTER_API_KEY"
		if llm.Provider == "anthropic" {
			name = "ANTHROPIC_API_KEY"
		}
		return errors.NewMissingEnvVarError(name,
			"API key for the LLM provider backing the judges")
	}
	return nil
}

// GetEnvVarOrDefault gets an environment variable with a default value
func GetEnvVarOrDefault(name, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}
