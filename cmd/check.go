package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/user/rankbot/internal/config"
	"github.com/user/rankbot/internal/pipeline"
	"github.com/user/rankbot/internal/prompts"
	"github.com/user/rankbot/internal/scorecard"
)

type checkOptions struct {
	basePath     string
	cohort       string
	outputFormat string
	exitCode     bool
}

// checkItem is one validated aspect of the environment.
type checkItem struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the environment before an evaluation run",
		Long: `Verify everything an evaluation run needs: the LLM API key, the
cohort scorecard CSV, the syllabus and reference sheets, the submission
repository, and the judge prompt set.

No LLM calls are made. With --exit-code the command exits non-zero when
any check fails, for use in scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.basePath, "base-path", ".", "Directory holding sheets/ and the submission repos")
	cmd.Flags().StringVar(&opts.cohort, "cohort", "", "Cohort to check (c3, c4)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&opts.exitCode, "exit-code", false, "Exit non-zero when any check fails")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	cliOverrides := map[string]interface{}{
		"debug": debugFlag,
	}
	flags := cmd.Flags()
	if flags.Changed("base-path") {
		cliOverrides["base_path"] = opts.basePath
	}
	if flags.Changed("cohort") {
		cliOverrides["cohort"] = opts.cohort
	}
	if flags.Changed("output") {
		cliOverrides["output_format"] = opts.outputFormat
	}

	cfg, err := config.LoadCheckConfig(opts.basePath, cliOverrides)
	if err != nil {
		return err
	}

	items := runChecks(cfg)

	failed := 0
	for _, item := range items {
		if !item.OK {
			failed++
		}
	}

	switch cfg.OutputFormat {
	case "json":
		output, err := json.MarshalIndent(map[string]interface{}{
			"cohort": cfg.Cohort,
			"checks": items,
			"failed": failed,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
	default:
		fmt.Printf("Checking environment for cohort %s\n\n", cfg.Cohort)
		for _, item := range items {
			mark := "✓"
			if !item.OK {
				mark = "✗"
			}
			fmt.Printf("  %s %-20s %s\n", mark, item.Name, item.Detail)
		}
		fmt.Println()
		if failed == 0 {
			fmt.Println("All checks passed.")
		} else {
			fmt.Printf("%d check(s) failed.\n", failed)
		}
	}

	if opts.exitCode && failed > 0 {
		os.Exit(1)
	}

	return nil
}

func runChecks(cfg *config.CheckConfig) []checkItem {
	var items []checkItem

	if cfg.LLM.APIKey != "" {
		items = append(items, checkItem{"API key", true,
			fmt.Sprintf("present (provider: %s)", cfg.LLM.Provider)})
	} else {
		items = append(items, checkItem{"API key", false,
			"not set; export OPENROUTER_API_KEY or ANTHROPIC_API_KEY"})
	}

	csvPath := cfg.Scorecard.CohortCSV(cfg.BasePath, cfg.Cohort)
	groups, err := scorecard.LoadGroups(csvPath)
	if err != nil {
		items = append(items, checkItem{"Scorecard CSV", false, err.Error()})
	} else {
		evaluable := 0
		for _, g := range groups {
			if g.HasSubmission() {
				evaluable++
			}
		}
		items = append(items, checkItem{"Scorecard CSV", true,
			fmt.Sprintf("%s: %d groups, %d with submissions", csvPath, len(groups), evaluable)})
	}

	syllabusPath := cfg.Scorecard.SyllabusPath(cfg.BasePath)
	if _, err := scorecard.LoadSyllabus(syllabusPath); err != nil {
		items = append(items, checkItem{"Syllabus CSV", false, err.Error()})
	} else {
		items = append(items, checkItem{"Syllabus CSV", true, syllabusPath})
	}

	referencePath := cfg.Scorecard.ReferenceCSV(cfg.BasePath)
	if _, err := scorecard.LoadReference(referencePath); err != nil {
		items = append(items, checkItem{"Reference scores", false, err.Error()})
	} else {
		items = append(items, checkItem{"Reference scores", true, referencePath})
	}

	repoPath := cfg.Scorecard.CohortRepo(cfg.BasePath, cfg.Cohort)
	if _, err := git.PlainOpen(repoPath); err != nil {
		items = append(items, checkItem{"Submissions repo", false,
			fmt.Sprintf("%s: %v", repoPath, err)})
	} else {
		items = append(items, checkItem{"Submissions repo", true, repoPath})
	}

	if pm, err := prompts.NewManager(pipeline.PromptOverrideDir); err != nil {
		items = append(items, checkItem{"Prompts", false, err.Error()})
	} else {
		items = append(items, checkItem{"Prompts", true,
			fmt.Sprintf("%d prompts loaded", pm.CountPrompts())})
	}

	return items
}
