package judge

import (
	"context"
	"fmt"

	apperrors "github.com/user/rankbot/internal/errors"
	"github.com/user/rankbot/internal/llm"
	"github.com/user/rankbot/internal/llmtypes"
	"github.com/user/rankbot/internal/logging"
	"github.com/user/rankbot/internal/prompts"
	"github.com/user/rankbot/internal/schema"
	"github.com/user/rankbot/internal/scorecard"
	"github.com/user/rankbot/internal/tools"
)

// SummarizerMaxTurns bounds the summary probe, which needs fewer tool
// calls than a full evaluation.
const SummarizerMaxTurns = 15

// DifficultyMaxTurns bounds the difficulty judge, which has no tools and
// should answer in one turn.
const DifficultyMaxTurns = 5

// Options carries the shared dependencies for building judges.
type Options struct {
	Client    llm.LLMClient
	Tools     []tools.Tool
	Prompts   *prompts.Manager
	Logger    *logging.Logger
	MaxTurns  int
	MaxTokens int

	// Syllabus and Reference are rendered into the judge instructions.
	Syllabus  string
	Reference string
}

func (o Options) maxTokens() int {
	if o.MaxTokens <= 0 {
		return 4096
	}
	return o.MaxTokens
}

// structuredRunner builds a runner whose final output must be JSON
// matching the schema of the verdict type.
func structuredRunner[T any](o Options, name, promptKey string, toolSet []tools.Tool, maxTurns int) (*runner, error) {
	system, err := o.Prompts.Render(promptKey, map[string]interface{}{
		"Syllabus":  o.Syllabus,
		"Reference": o.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", promptKey, err)
	}

	suffix, err := schema.OutputInstructions[T]()
	if err != nil {
		return nil, fmt.Errorf("failed to build output schema for %s: %w", name, err)
	}

	r := newRunner(name, o.Client, toolSet, o.Logger, system+suffix, maxTurns)
	r.maxTokens = o.maxTokens()
	r.responseFormat = llmtypes.ResponseFormat{Type: "json_object"}
	return r, nil
}

// ConceptJudge scores how many syllabus concepts a project uses.
type ConceptJudge struct {
	runner *runner
}

// NewConceptJudge builds the concept judge from the shared options.
func NewConceptJudge(o Options) (*ConceptJudge, error) {
	r, err := structuredRunner[ConceptScore](o, "concept_judge", "concept_judge_system", o.Tools, o.MaxTurns)
	if err != nil {
		return nil, err
	}
	return &ConceptJudge{runner: r}, nil
}

// Evaluate scores one group's submission.
func (j *ConceptJudge) Evaluate(ctx context.Context, group scorecard.Group, repo string) (*ConceptScore, error) {
	raw, err := j.runner.run(ctx, BuildEvaluationPrompt(group, repo))
	if err != nil {
		return nil, err
	}
	var verdict ConceptScore
	if err := decodeVerdict(raw, &verdict); err != nil {
		return nil, apperrors.NewInvalidVerdictError(j.runner.name, err)
	}
	return &verdict, nil
}

// CodeQualityJudge scores project organization and hygiene.
type CodeQualityJudge struct {
	runner *runner
}

// NewCodeQualityJudge builds the code quality judge from the shared options.
func NewCodeQualityJudge(o Options) (*CodeQualityJudge, error) {
	r, err := structuredRunner[CodeQualityScore](o, "code_quality_judge", "code_quality_judge_system", o.Tools, o.MaxTurns)
	if err != nil {
		return nil, err
	}
	return &CodeQualityJudge{runner: r}, nil
}

// Evaluate scores one group's submission.
func (j *CodeQualityJudge) Evaluate(ctx context.Context, group scorecard.Group, repo string) (*CodeQualityScore, error) {
	raw, err := j.runner.run(ctx, BuildEvaluationPrompt(group, repo))
	if err != nil {
		return nil, err
	}
	var verdict CodeQualityScore
	if err := decodeVerdict(raw, &verdict); err != nil {
		return nil, apperrors.NewInvalidVerdictError(j.runner.name, err)
	}
	return &verdict, nil
}

// DifficultyJudge assigns relative difficulty scores to all groups in a
// single pass over their summaries. It has no tools.
type DifficultyJudge struct {
	runner *runner
}

// NewDifficultyJudge builds the difficulty judge from the shared options.
func NewDifficultyJudge(o Options) (*DifficultyJudge, error) {
	r, err := structuredRunner[DifficultySlate](o, "difficulty_judge", "difficulty_judge_system", nil, DifficultyMaxTurns)
	if err != nil {
		return nil, err
	}
	return &DifficultyJudge{runner: r}, nil
}

// Score takes the joined project summaries and returns a slate of
// relative difficulty scores.
func (j *DifficultyJudge) Score(ctx context.Context, summariesDoc string) (*DifficultySlate, error) {
	raw, err := j.runner.run(ctx, summariesDoc)
	if err != nil {
		return nil, err
	}
	var slate DifficultySlate
	if err := decodeVerdict(raw, &slate); err != nil {
		return nil, apperrors.NewInvalidVerdictError(j.runner.name, err)
	}
	return &slate, nil
}

// Summarizer produces the free-text project summaries consumed by the
// difficulty judge.
type Summarizer struct {
	runner *runner
}

// NewSummarizer builds the summarizer from the shared options.
func NewSummarizer(o Options) (*Summarizer, error) {
	system, err := o.Prompts.Get("summarizer_system")
	if err != nil {
		return nil, err
	}
	r := newRunner("summarizer", o.Client, o.Tools, o.Logger, system, SummarizerMaxTurns)
	r.maxTokens = o.maxTokens()
	return &Summarizer{runner: r}, nil
}

// Summarize probes one group's submission and returns a titled summary
// block. Groups without a submission get a placeholder without an LLM call.
func (s *Summarizer) Summarize(ctx context.Context, group scorecard.Group, repo string) (string, error) {
	if !group.HasSubmission() {
		return fmt.Sprintf("Group %d: No submission - no code available.", group.Number), nil
	}

	out, err := s.runner.run(ctx, BuildSummaryPrompt(group, repo))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("## Group %d\n%s", group.Number, out), nil
}
