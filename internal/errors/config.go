package errors

import (
	"fmt"
)

// ConfigurationError is raised for invalid or incomplete configuration
type ConfigurationError struct {
	*RankBotError
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		RankBotError: &RankBotError{
			Message:  message,
			ExitCode: ExitConfigError,
		},
	}
}

// NewConfigFileError creates an error for an unreadable config file
func NewConfigFileError(path string, cause error) *ConfigurationError {
	return &ConfigurationError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Failed to read configuration file: %s", path),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Loading Configuration",
				Component: "Config Loader",
				Details: map[string]interface{}{
					"path": path,
				},
				Suggestions: []string{
					"Check that the file exists and is valid YAML",
					"Remove the file to fall back to defaults",
				},
			},
			ExitCode: ExitConfigError,
		},
	}
}

// NewMissingEnvVarError creates an error for a missing environment variable
func NewMissingEnvVarError(name, description string) *ConfigurationError {
	return &ConfigurationError{
		RankBotError: &RankBotError{
			Message: fmt.Sprintf("Required environment variable %s is not set", name),
			Context: &ErrorContext{
				Operation: "Loading Configuration",
				Component: "Environment",
				Details: map[string]interface{}{
					"variable":    name,
					"description": description,
				},
				Suggestions: []string{
					fmt.Sprintf("Export %s or add it to your .env file", name),
				},
			},
			ExitCode: ExitConfigError,
		},
	}
}
