package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/rankbot/internal/logging"
)

// resolveWithinRepo joins a relative path against a repo directory and
// rejects anything that escapes it.
func resolveWithinRepo(repoDir, relPath string) (string, error) {
	full := filepath.Join(repoDir, filepath.Clean("/"+relPath))
	rel, err := filepath.Rel(repoDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path traversal blocked: %s", relPath)
	}
	return full, nil
}

// ReadLocalFileTool reads a file from the local checkout, used for
// submissions that live on the main branch.
type ReadLocalFileTool struct {
	workspace *Workspace
}

// NewReadLocalFileTool creates a local file reader bound to a workspace.
func NewReadLocalFileTool(workspace *Workspace) *ReadLocalFileTool {
	return &ReadLocalFileTool{workspace: workspace}
}

func (t *ReadLocalFileTool) Name() string {
	return "read_local_file"
}

func (t *ReadLocalFileTool) Description() string {
	return "Read a file from the local checkout. Use for projects that live on the main branch. " +
		"Long files are truncated."
}

func (t *ReadLocalFileTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":     stringProperty("Which repository: 'c3' or 'c4'"),
		"filepath": stringProperty("Relative path within the repository directory"),
	}, []string{"repo", "filepath"})
}

func (t *ReadLocalFileTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	relPath, err := requireStringParam(params, "filepath")
	if err != nil {
		return nil, err
	}

	repoDir, err := t.workspace.RepoDir(repo)
	if err != nil {
		return errorResult("%v", err), nil
	}

	full, err := resolveWithinRepo(repoDir, relPath)
	if err != nil {
		return errorResult("%v", err), nil
	}

	t.workspace.logger.Debug("read_local_file", logging.String("path", full))

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return errorResult("file not found: %s", relPath), nil
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return errorResult("failed to read %s: %v", relPath, err), nil
	}

	return truncateLines(string(content), t.workspace.maxFileLines), nil
}

// ListLocalDirectoryTool recursively lists files under a directory in the
// local checkout, with sizes.
type ListLocalDirectoryTool struct {
	workspace *Workspace
}

// NewListLocalDirectoryTool creates a local directory lister bound to a workspace.
func NewListLocalDirectoryTool(workspace *Workspace) *ListLocalDirectoryTool {
	return &ListLocalDirectoryTool{workspace: workspace}
}

func (t *ListLocalDirectoryTool) Name() string {
	return "list_local_directory"
}

func (t *ListLocalDirectoryTool) Description() string {
	return "Recursively list files in a local directory with their sizes. " +
		"Use for projects that live on the main branch."
}

func (t *ListLocalDirectoryTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":    stringProperty("Which repository: 'c3' or 'c4'"),
		"dirpath": stringProperty("Relative directory path within the repository"),
	}, []string{"repo", "dirpath"})
}

func (t *ListLocalDirectoryTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	relPath := stringParam(params, "dirpath")

	repoDir, err := t.workspace.RepoDir(repo)
	if err != nil {
		return errorResult("%v", err), nil
	}

	full, err := resolveWithinRepo(repoDir, relPath)
	if err != nil {
		return errorResult("%v", err), nil
	}

	t.workspace.logger.Debug("list_local_directory", logging.String("path", full))

	info, err := os.Stat(full)
	if err != nil || !info.IsDir() {
		return errorResult("directory not found: %s", relPath), nil
	}

	var entries []string
	truncated := false
	err = filepath.WalkDir(full, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if shouldIgnore(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(entries) >= MaxListEntries {
			truncated = true
			return filepath.SkipAll
		}
		rel, relErr := filepath.Rel(repoDir, path)
		if relErr != nil {
			return nil
		}
		size := int64(0)
		if fi, statErr := d.Info(); statErr == nil {
			size = fi.Size()
		}
		entries = append(entries, fmt.Sprintf("%s  (%d bytes)", filepath.ToSlash(rel), size))
		return nil
	})
	if err != nil {
		return errorResult("failed to list %s: %v", relPath, err), nil
	}
	if truncated {
		entries = append(entries, fmt.Sprintf("... (truncated at %d files)", MaxListEntries))
	}
	if len(entries) == 0 {
		return errorResult("directory is empty: %s", relPath), nil
	}

	return strings.Join(entries, "\n"), nil
}
