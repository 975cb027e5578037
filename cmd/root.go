package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/user/rankbot/internal/errors"
)

var (
	debugFlag   bool
	verboseFlag bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rankbot",
	Short: "LLM-judged hackathon submission evaluator",
	Long: `Evaluate hackathon code submissions with LLM judge agents.

Rankbot reads a cohort scorecard CSV, lets judge agents explore each
group's submission through git and filesystem tools, scores concept
coverage, relative difficulty, and code quality, and writes the ranked
results back as a Markdown report, a scores JSON document, and updated
scorecard columns.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// userFacingError is satisfied by all application error types, which
// carry an exit code and a formatted message with context.
type userFacingError interface {
	error
	GetUserMessage() string
	Code() apperrors.ExitCode
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var appErr userFacingError
		if errors.As(err, &appErr) {
			fmt.Fprintf(os.Stderr, "%s\n", appErr.GetUserMessage())
			os.Exit(appErr.Code().Int())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Mirror log output to the console")
}
