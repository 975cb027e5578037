package judge

import (
	"fmt"
	"strings"

	"github.com/user/rankbot/internal/scorecard"
)

// BuildEvaluationPrompt builds the per-group user prompt, with tool-use
// hints matched to how the group's submission link points at code.
func BuildEvaluationPrompt(group scorecard.Group, repo string) string {
	header := fmt.Sprintf("# Evaluate Group %d\n\n", group.Number)

	switch {
	case !group.HasSubmission():
		return header +
			"This group has no submission link. " +
			"Score 0/10 and explain that no code was available for review."

	case group.Kind == scorecard.SubmissionZip:
		return header + fmt.Sprintf(
			"This group submitted a .zip file.\n"+
				"- Repo: '%s'\n"+
				"- Branch: '%s'\n"+
				"- Zip path: '%s'\n\n"+
				"Use the `zip_list_files` tool to list files in the zip, "+
				"then use `zip_read_file` to read key files like README, "+
				"main app files, and agent/graph definitions.\n\n"+
				"Note: .zip submissions indicate poor code quality practices "+
				"(should have been committed properly to git).",
			repo, group.Ref, group.Path)

	case group.Kind == scorecard.SubmissionCommit:
		pathHint := ""
		if group.Path != "" {
			pathHint = fmt.Sprintf("  Path hint: '%s'\n", group.Path)
		}
		return header + fmt.Sprintf(
			"This group's link points to a specific commit.\n"+
				"- Repo: '%s'\n"+
				"- Commit/Branch ref: '%s'\n"+
				"%s\n"+
				"Use `git_list_files` with branch='%s' to list files, "+
				"then `git_read_file` to read key files.\n"+
				"Look for README, app entry points, agent definitions, and graph files.",
			repo, group.Ref, pathHint, group.Ref)

	case group.OnDefaultBranch():
		return header + fmt.Sprintf(
			"This project is on the main branch.\n"+
				"- Repo: '%s'\n"+
				"- Directory: '%s'\n\n"+
				"Use `list_local_directory` with repo='%s' and "+
				"dirpath='%s' to see the file structure, "+
				"then use `read_local_file` to read key files.\n"+
				"Look for README, app entry points, agent definitions, and graph files.",
			repo, group.Path, repo, group.Path)

	default:
		return header + fmt.Sprintf(
			"This project is on a feature branch.\n"+
				"- Repo: '%s'\n"+
				"- Branch: '%s'\n"+
				"- Path: '%s'\n\n"+
				"Use `git_list_files` with repo='%s', branch='%s' "+
				"and path='%s' to see the file structure, "+
				"then use `git_read_file` to read key files.\n"+
				"Look for README, app entry points, agent definitions, and graph files.",
			repo, group.Ref, group.Path, repo, group.Ref, group.Path)
	}
}

// BuildSummaryPrompt builds the user prompt for the summary probe that
// feeds the difficulty judge.
func BuildSummaryPrompt(group scorecard.Group, repo string) string {
	return BuildEvaluationPrompt(group, repo) + "\n\n" +
		"DO NOT SCORE. Instead, provide a brief technical summary of this project:\n" +
		"1. What does the project do? (1-2 sentences)\n" +
		"2. What key technologies/frameworks are used? (list them)\n" +
		"3. How is the agent/graph structured? (linear, conditional, loops?)\n" +
		"4. How many agents/nodes are there?\n" +
		"5. What external integrations exist?\n" +
		"6. Any notable patterns (RAG, multimodal, debate, reflection)?\n\n" +
		"Keep it concise - 10-15 lines max."
}

// JoinSummaries concatenates per-group summaries into the single document
// handed to the difficulty judge.
func JoinSummaries(summaries []string) string {
	return strings.Join(summaries, "\n\n---\n\n")
}
