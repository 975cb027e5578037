package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/rankbot/internal/config"
	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/report"
)

var (
	reportBasePath   string
	reportCohort     string
	reportScoresJSON string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render the report from a saved scores document",
	Long: `Regenerate the Markdown evaluation report and console summary table
from a previously written scores JSON document, without any LLM calls.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportBasePath, "base-path", ".", "Directory the report is written into")
	reportCmd.Flags().StringVar(&reportCohort, "cohort", "", "Cohort whose scores document to use (c3, c4)")
	reportCmd.Flags().StringVar(&reportScoresJSON, "scores", "", "Path to the scores JSON document")
}

func runReport(cmd *cobra.Command, args []string) error {
	cliOverrides := map[string]interface{}{
		"debug": debugFlag,
	}
	flags := cmd.Flags()
	if flags.Changed("base-path") {
		cliOverrides["base_path"] = reportBasePath
	}
	if flags.Changed("cohort") {
		cliOverrides["cohort"] = reportCohort
	}
	if flags.Changed("scores") {
		cliOverrides["scores_json"] = reportScoresJSON
	}

	cfg, err := config.LoadReportConfig(reportBasePath, cliOverrides)
	if err != nil {
		return err
	}

	doc, err := report.ReadDocument(cfg.ScoresJSON)
	if err != nil {
		return apperrors.WrapError(err, "failed to load scores document", apperrors.ExitIOError)
	}

	reportPath := filepath.Join(cfg.BasePath, fmt.Sprintf("%s_evaluation_report.md", doc.Cohort))
	if err := os.WriteFile(reportPath, []byte(report.MarkdownFromDocument(doc)), 0644); err != nil {
		return apperrors.NewReportError(reportPath, err)
	}

	if err := report.WriteDocumentSummary(os.Stdout, doc); err != nil {
		return err
	}
	fmt.Printf("Report: %s\n", reportPath)

	return nil
}
