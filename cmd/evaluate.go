package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/rankbot/internal/config"
	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/pipeline"
	"github.com/user/rankbot/internal/report"
)

var (
	evalBasePath       string
	evalCohort         string
	evalGroups         []int
	evalMaxWorkers     int
	evalMaxTurns       int
	evalSkipDifficulty bool
	evalDryRun         bool
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the full evaluation pipeline for a cohort",
	Long: `Run all evaluation phases for one cohort: load the scorecard,
collect per-group project summaries, score concept coverage and code
quality per group, score relative difficulty across all groups, then
write the Markdown report, the scores JSON document, and the updated
scorecard CSV.

Individual judge failures do not abort the run; affected groups score
zero for the failed judge and the command exits with code 10.`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evalBasePath, "base-path", ".", "Directory holding sheets/ and the submission repos")
	evaluateCmd.Flags().StringVar(&evalCohort, "cohort", "", "Cohort to evaluate (c3, c4)")
	evaluateCmd.Flags().IntSliceVar(&evalGroups, "groups", nil, "Only evaluate these group numbers (default: all)")
	evaluateCmd.Flags().IntVar(&evalMaxWorkers, "max-workers", 0, "Concurrent judge workers")
	evaluateCmd.Flags().IntVar(&evalMaxTurns, "max-turns", 0, "Maximum tool-calling turns per judge")
	evaluateCmd.Flags().BoolVar(&evalSkipDifficulty, "skip-difficulty", false, "Skip the comparative difficulty phase")
	evaluateCmd.Flags().BoolVar(&evalDryRun, "dry-run", false, "Parse and validate the scorecard without any LLM calls")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cliOverrides := map[string]interface{}{
		"debug": debugFlag,
	}
	flags := cmd.Flags()
	if flags.Changed("base-path") {
		cliOverrides["base_path"] = evalBasePath
	}
	if flags.Changed("cohort") {
		cliOverrides["cohort"] = evalCohort
	}
	if flags.Changed("groups") {
		cliOverrides["groups"] = evalGroups
	}
	if flags.Changed("max-workers") {
		cliOverrides["max_workers"] = evalMaxWorkers
	}
	if flags.Changed("max-turns") {
		cliOverrides["max_turns"] = evalMaxTurns
	}
	if evalSkipDifficulty {
		cliOverrides["skip_difficulty"] = true
	}
	if evalDryRun {
		cliOverrides["dry_run"] = true
	}

	cfg, err := config.LoadEvaluateConfig(evalBasePath, cliOverrides)
	if err != nil {
		return err
	}

	// A dry run's whole output is its log lines, so force them onto
	// the console.
	logger, err := InitLogger(cfg.BasePath, debugFlag, verboseFlag || cfg.DryRun)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	outcome, err := pipeline.New(cfg, logger).Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Println("Dry run complete, no scores written.")
		return nil
	}

	if err := report.WriteSummaryTable(os.Stdout, outcome.Cohort, outcome.Results); err != nil {
		return err
	}
	fmt.Printf("Report:    %s\n", outcome.ReportPath)
	fmt.Printf("Scores:    %s\n", outcome.ScoresPath)
	fmt.Printf("Scorecard: %s\n", outcome.CSVPath)

	if outcome.JudgeFailures > 0 {
		return apperrors.NewError(
			fmt.Sprintf("evaluation finished with %d failed judge call(s); affected scores default to zero", outcome.JudgeFailures),
			apperrors.ExitPartialSuccess)
	}

	return nil
}
