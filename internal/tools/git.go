package tools

import (
	"context"
	"strings"

	"github.com/user/rankbot/internal/logging"
)

// GitListFilesTool lists the files reachable from a branch or commit
// without checking anything out.
type GitListFilesTool struct {
	workspace *Workspace
}

// NewGitListFilesTool creates a git listing tool bound to a workspace.
func NewGitListFilesTool(workspace *Workspace) *GitListFilesTool {
	return &GitListFilesTool{workspace: workspace}
}

func (t *GitListFilesTool) Name() string {
	return "git_list_files"
}

func (t *GitListFilesTool) Description() string {
	return "List all files on a git branch or commit, optionally scoped to a subdirectory. " +
		"Use this to explore a group's submission before reading individual files."
}

func (t *GitListFilesTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":   stringProperty("Which repository to query: 'c3' or 'c4'"),
		"branch": stringProperty("Branch name or commit hash (e.g. 'Group_1', 'main')"),
		"path":   stringProperty("Optional subdirectory to scope the listing"),
	}, []string{"repo", "branch"})
}

func (t *GitListFilesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	branch, err := requireStringParam(params, "branch")
	if err != nil {
		return nil, err
	}
	path := stringParam(params, "path")

	t.workspace.logger.Debug("git_list_files",
		logging.String("repo", repo),
		logging.String("branch", branch),
		logging.String("path", path))

	commit, err := t.workspace.resolveCommit(repo, branch)
	if err != nil {
		return errorResult("%v", err), nil
	}

	tree, err := commit.Tree()
	if err != nil {
		return errorResult("failed to read tree for %s: %v", branch, err), nil
	}

	prefix := strings.Trim(path, "/")
	var paths []string
	iter := tree.Files()
	defer iter.Close()
	for {
		f, err := iter.Next()
		if err != nil {
			break
		}
		if prefix != "" && f.Name != prefix && !strings.HasPrefix(f.Name, prefix+"/") {
			continue
		}
		paths = append(paths, f.Name)
	}

	filtered := filterPaths(paths)
	if len(filtered) == 0 {
		return errorResult("no files found on %s under %q", branch, path), nil
	}
	return strings.Join(filtered, "\n"), nil
}

// GitReadFileTool reads one file from a branch or commit.
type GitReadFileTool struct {
	workspace *Workspace
}

// NewGitReadFileTool creates a git file reader bound to a workspace.
func NewGitReadFileTool(workspace *Workspace) *GitReadFileTool {
	return &GitReadFileTool{workspace: workspace}
}

func (t *GitReadFileTool) Name() string {
	return "git_read_file"
}

func (t *GitReadFileTool) Description() string {
	return "Read the contents of a single file from a git branch or commit without checkout. " +
		"Long files are truncated."
}

func (t *GitReadFileTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":     stringProperty("Which repository: 'c3' or 'c4'"),
		"branch":   stringProperty("Branch name or commit hash"),
		"filepath": stringProperty("Path to the file within the branch"),
	}, []string{"repo", "branch", "filepath"})
}

func (t *GitReadFileTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	branch, err := requireStringParam(params, "branch")
	if err != nil {
		return nil, err
	}
	filepath, err := requireStringParam(params, "filepath")
	if err != nil {
		return nil, err
	}

	t.workspace.logger.Debug("git_read_file",
		logging.String("repo", repo),
		logging.String("branch", branch),
		logging.String("filepath", filepath))

	commit, err := t.workspace.resolveCommit(repo, branch)
	if err != nil {
		return errorResult("%v", err), nil
	}

	f, err := commit.File(filepath)
	if err != nil {
		return errorResult("file not found on %s: %s", branch, filepath), nil
	}

	content, err := f.Contents()
	if err != nil {
		return errorResult("failed to read %s: %v", filepath, err), nil
	}

	return truncateLines(content, t.workspace.maxFileLines), nil
}
