package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/user/rankbot/internal/logging"
)

// InitLogger creates a configured logger for CLI commands. Logs always go
// to <basePath>/.rankbot/logs; console output is enabled with --verbose.
func InitLogger(basePath string, debug bool, verbose bool) (*logging.Logger, error) {
	if basePath == "" {
		basePath = "."
	}

	fileLevel := "info"
	if debug {
		fileLevel = "debug"
	}

	logCfg := &logging.Config{
		LogDir:         filepath.Join(basePath, ".rankbot", "logs"),
		FileLevel:      logging.LevelFromString(fileLevel),
		ConsoleLevel:   logging.LevelFromString("debug"),
		EnableCaller:   debug,
		ConsoleEnabled: verbose,
	}

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
