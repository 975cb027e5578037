// Package pipeline orchestrates a full evaluation run: loading the
// scorecard data, probing submissions for summaries, running the judges,
// and writing the report, scores document, and CSV back.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/user/rankbot/internal/config"
	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/judge"
	"github.com/user/rankbot/internal/llm"
	"github.com/user/rankbot/internal/logging"
	"github.com/user/rankbot/internal/prompts"
	"github.com/user/rankbot/internal/report"
	"github.com/user/rankbot/internal/scorecard"
	"github.com/user/rankbot/internal/tools"
	"github.com/user/rankbot/internal/worker_pool"
)

// PromptOverrideDir is where project-local prompt overrides live.
const PromptOverrideDir = ".rankbot/prompts"

// Outcome summarizes a completed evaluation run.
type Outcome struct {
	RunID      string
	Cohort     string
	Results    []report.GroupResult
	ReportPath string
	ScoresPath string
	CSVPath    string

	// JudgeFailures counts groups where at least one judge failed.
	// The run still completes; failed verdicts score as zero.
	JudgeFailures int
}

// Pipeline runs the evaluation phases for one cohort.
type Pipeline struct {
	cfg    *config.EvaluateConfig
	logger *logging.Logger
	runID  string
}

// New creates a pipeline for the given configuration.
func New(cfg *config.EvaluateConfig, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logger.Named("pipeline"),
		runID:  uuid.NewString(),
	}
}

// Run executes all phases and returns the outcome. Individual judge
// failures are isolated per group; only setup and output errors abort
// the run.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	cfg := p.cfg
	cohort := cfg.Cohort
	csvPath := cfg.Scorecard.CohortCSV(cfg.BasePath, cohort)

	p.logger.Info("Starting evaluation run",
		logging.String("run_id", p.runID),
		logging.String("cohort", cohort),
		logging.String("model", cfg.LLM.Model))

	// Phase 0: load scorecard data
	syllabusPath := cfg.Scorecard.SyllabusPath(cfg.BasePath)
	syllabus, err := scorecard.LoadSyllabus(syllabusPath)
	if err != nil {
		return nil, apperrors.NewScorecardError(syllabusPath, err)
	}
	referencePath := cfg.Scorecard.ReferenceCSV(cfg.BasePath)
	reference, err := scorecard.LoadReference(referencePath)
	if err != nil {
		return nil, apperrors.NewScorecardError(referencePath, err)
	}
	allGroups, err := scorecard.LoadGroups(csvPath)
	if err != nil {
		return nil, apperrors.NewScorecardError(csvPath, err)
	}

	groups := filterGroups(allGroups, cfg.Groups)
	for _, n := range unknownGroups(allGroups, cfg.Groups) {
		p.logger.Warn("Selected group not in scorecard, skipping", logging.Int("group", n))
	}
	evaluable := 0
	for _, g := range groups {
		if g.HasSubmission() {
			evaluable++
		}
	}
	p.logger.Info("Loaded groups",
		logging.Int("total", len(groups)),
		logging.Int("evaluable", evaluable))

	if len(groups) == 0 {
		return nil, apperrors.NewError("no groups matched the selection", apperrors.ExitScorecardError)
	}

	if cfg.DryRun {
		p.logDryRun(groups)
		return &Outcome{RunID: p.runID, Cohort: cohort, CSVPath: csvPath}, nil
	}

	// Phase 0.5: build the judges
	judges, err := p.buildJudges(syllabus, reference)
	if err != nil {
		return nil, err
	}

	pool := worker_pool.NewWorkerPool(cfg.MaxWorkers)

	// Phase 1: collect summaries for the difficulty judge. That judge is
	// their only consumer, so skipping it skips the summary calls too.
	var summaries map[int]string
	if !cfg.SkipDifficulty {
		summaries = p.collectSummaries(ctx, pool, judges.summarizer, groups)
	}

	// Phase 2: per-group concept and code quality scoring
	concepts, qualities, failures := p.scoreProjects(ctx, pool, judges, groups)

	// Phase 3: relative difficulty, one call over all summaries
	difficulties := map[int]judge.DifficultyEntry{}
	if cfg.SkipDifficulty {
		p.logger.Info("Skipping difficulty scoring")
	} else {
		slate, err := judges.difficulty.Score(ctx, judge.JoinSummaries(orderedSummaries(groups, summaries)))
		if err != nil {
			p.logger.Error("Difficulty scoring failed", logging.Error(err))
			failures++
		} else {
			difficulties = slate.ByGroup()
			for _, g := range groups {
				if entry, ok := difficulties[g.Number]; ok {
					p.logger.Info("Difficulty scored",
						logging.Int("group", g.Number),
						logging.Int("score", entry.Score))
				}
			}
		}
	}

	// Phase 4: report and scores document
	results := report.Merge(groups, concepts, qualities, difficulties)

	reportPath := filepath.Join(cfg.BasePath, fmt.Sprintf("%s_evaluation_report.md", cohort))
	if err := os.WriteFile(reportPath, []byte(report.Markdown(cohort, results)), 0644); err != nil {
		return nil, apperrors.NewReportError(reportPath, err)
	}
	p.logger.Info("Report written", logging.String("path", reportPath))

	scoresPath := filepath.Join(cfg.BasePath, fmt.Sprintf("%s_scores.json", cohort))
	doc := report.NewDocument(p.runID, cohort, cfg.LLM.Model, results)
	if err := doc.Write(scoresPath); err != nil {
		return nil, apperrors.NewReportError(scoresPath, err)
	}
	p.logger.Info("Scores written", logging.String("path", scoresPath))

	// Phase 5: write scores back into the scorecard CSV
	if err := scorecard.WriteScores(csvPath, report.ToScores(results)); err != nil {
		return nil, apperrors.NewScorecardError(csvPath, err)
	}
	p.logger.Info("Scorecard updated", logging.String("path", csvPath))

	return &Outcome{
		RunID:         p.runID,
		Cohort:        cohort,
		Results:       results,
		ReportPath:    reportPath,
		ScoresPath:    scoresPath,
		CSVPath:       csvPath,
		JudgeFailures: failures,
	}, nil
}

// judgeSet bundles the four agents built for one run.
type judgeSet struct {
	concept    *judge.ConceptJudge
	quality    *judge.CodeQualityJudge
	difficulty *judge.DifficultyJudge
	summarizer *judge.Summarizer
}

func (p *Pipeline) buildJudges(syllabus, reference string) (*judgeSet, error) {
	cfg := p.cfg

	retryClient := llm.NewRetryClientWithTimeout(cfg.LLM.GetTimeout(), llm.RetryConfigFrom(cfg.Retry))
	client, err := llm.NewFactory(retryClient).CreateClient(cfg.LLM)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create LLM client", apperrors.ExitConfigError)
	}

	promptManager, err := prompts.NewManager(PromptOverrideDir)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to load prompts", apperrors.ExitConfigError)
	}

	workspace := tools.NewWorkspace(cfg.BasePath, cfg.Scorecard, cfg.MaxFileLines, p.logger)
	toolSet := tools.All(workspace)

	opts := judge.Options{
		Client:    client,
		Tools:     toolSet,
		Prompts:   promptManager,
		Logger:    p.logger,
		MaxTurns:  cfg.MaxTurns,
		MaxTokens: cfg.LLM.GetMaxTokens(),
		Syllabus:  syllabus,
		Reference: reference,
	}

	concept, err := judge.NewConceptJudge(opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to build concept judge", apperrors.ExitConfigError)
	}
	quality, err := judge.NewCodeQualityJudge(opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to build code quality judge", apperrors.ExitConfigError)
	}
	difficulty, err := judge.NewDifficultyJudge(opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to build difficulty judge", apperrors.ExitConfigError)
	}
	summarizer, err := judge.NewSummarizer(opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to build summarizer", apperrors.ExitConfigError)
	}

	return &judgeSet{
		concept:    concept,
		quality:    quality,
		difficulty: difficulty,
		summarizer: summarizer,
	}, nil
}

// collectSummaries probes every group concurrently. A failed probe turns
// into a placeholder so the difficulty judge still sees every group.
func (p *Pipeline) collectSummaries(ctx context.Context, pool *worker_pool.WorkerPool, summarizer *judge.Summarizer, groups []scorecard.Group) map[int]string {
	p.logger.Info("Collecting project summaries", logging.Int("groups", len(groups)))

	tasks := make([]worker_pool.Task, len(groups))
	for i, g := range groups {
		group := g
		tasks[i] = func(ctx context.Context) (interface{}, error) {
			return summarizer.Summarize(ctx, group, p.cfg.Cohort)
		}
	}

	results := pool.Run(ctx, tasks)
	summaries := make(map[int]string, len(groups))
	for i, res := range results {
		group := groups[i]
		if res.Error != nil {
			p.logger.Error("Summary collection failed",
				logging.Int("group", group.Number),
				logging.Error(res.Error))
			summaries[group.Number] = fmt.Sprintf("Group %d: Summary collection failed.", group.Number)
			continue
		}
		summaries[group.Number] = res.Value.(string)
		p.logger.Info("Summary collected", logging.Int("group", group.Number))
	}
	return summaries
}

// projectVerdicts holds one group's per-project judge outcomes.
type projectVerdicts struct {
	concept *judge.ConceptScore
	quality *judge.CodeQualityScore
	failed  bool
}

// scoreProjects runs the concept and code quality judges for every group
// with a submission. Groups are scored concurrently; the two judges for
// one group run back to back.
func (p *Pipeline) scoreProjects(ctx context.Context, pool *worker_pool.WorkerPool, judges *judgeSet, groups []scorecard.Group) (map[int]*judge.ConceptScore, map[int]*judge.CodeQualityScore, int) {
	p.logger.Info("Scoring concept and code quality")

	var evaluable []scorecard.Group
	for _, g := range groups {
		if g.HasSubmission() {
			evaluable = append(evaluable, g)
		}
	}

	tasks := make([]worker_pool.Task, len(evaluable))
	for i, g := range evaluable {
		group := g
		tasks[i] = func(ctx context.Context) (interface{}, error) {
			v := projectVerdicts{}

			concept, err := judges.concept.Evaluate(ctx, group, p.cfg.Cohort)
			if err != nil {
				p.logger.Error("Concept scoring failed",
					logging.Int("group", group.Number),
					logging.Error(err))
				v.failed = true
			} else {
				v.concept = concept
				p.logger.Info("Concept scored",
					logging.Int("group", group.Number),
					logging.Int("score", concept.Score))
			}

			quality, err := judges.quality.Evaluate(ctx, group, p.cfg.Cohort)
			if err != nil {
				p.logger.Error("Code quality scoring failed",
					logging.Int("group", group.Number),
					logging.Error(err))
				v.failed = true
			} else {
				v.quality = quality
				p.logger.Info("Code quality scored",
					logging.Int("group", group.Number),
					logging.Int("score", quality.Score))
			}

			return v, nil
		}
	}

	results := pool.Run(ctx, tasks)
	concepts := make(map[int]*judge.ConceptScore)
	qualities := make(map[int]*judge.CodeQualityScore)
	failures := 0
	for i, res := range results {
		group := evaluable[i]
		if res.Error != nil {
			p.logger.Error("Scoring aborted",
				logging.Int("group", group.Number),
				logging.Error(res.Error))
			failures++
			continue
		}
		v := res.Value.(projectVerdicts)
		if v.concept != nil {
			concepts[group.Number] = v.concept
		}
		if v.quality != nil {
			qualities[group.Number] = v.quality
		}
		if v.failed {
			failures++
		}
	}
	return concepts, qualities, failures
}

func (p *Pipeline) logDryRun(groups []scorecard.Group) {
	for _, g := range groups {
		p.logger.Info("Group parsed",
			logging.Int("group", g.Number),
			logging.String("kind", g.Kind.String()),
			logging.String("ref", g.Ref),
			logging.String("path", g.Path),
			logging.String("link", g.ProjectLink))
	}
	p.logger.Info("Dry run complete, no LLM calls made")
}

// unknownGroups reports selected group numbers that do not exist in the
// scorecard.
func unknownGroups(groups []scorecard.Group, selection []int) []int {
	known := make(map[int]bool, len(groups))
	for _, g := range groups {
		known[g.Number] = true
	}
	var out []int
	for _, n := range selection {
		if !known[n] {
			out = append(out, n)
		}
	}
	return out
}

// filterGroups applies the --groups selection. An empty selection keeps
// every group.
func filterGroups(groups []scorecard.Group, selection []int) []scorecard.Group {
	if len(selection) == 0 {
		return groups
	}
	wanted := make(map[int]bool, len(selection))
	for _, n := range selection {
		wanted[n] = true
	}
	var out []scorecard.Group
	for _, g := range groups {
		if wanted[g.Number] {
			out = append(out, g)
		}
	}
	return out
}

// orderedSummaries returns summaries in scorecard order.
func orderedSummaries(groups []scorecard.Group, summaries map[int]string) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if s, ok := summaries[g.Number]; ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
