package tools

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/user/rankbot/internal/logging"
)

// readZipFromGit reads the raw bytes of a zip blob committed to a branch.
func (w *Workspace) readZipFromGit(repo, branch, zipPath string) (*zip.Reader, error) {
	commit, err := w.resolveCommit(repo, branch)
	if err != nil {
		return nil, err
	}

	f, err := commit.File(zipPath)
	if err != nil {
		return nil, fmt.Errorf("zip not found on %s: %s", branch, zipPath)
	}

	rc, err := f.Blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read zip blob: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip blob: %w", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid zip archive %s: %w", zipPath, err)
	}
	return reader, nil
}

// ZipListFilesTool lists the contents of a zip archive committed to a branch.
type ZipListFilesTool struct {
	workspace *Workspace
}

// NewZipListFilesTool creates a zip listing tool bound to a workspace.
func NewZipListFilesTool(workspace *Workspace) *ZipListFilesTool {
	return &ZipListFilesTool{workspace: workspace}
}

func (t *ZipListFilesTool) Name() string {
	return "zip_list_files"
}

func (t *ZipListFilesTool) Description() string {
	return "List the files inside a .zip archive committed to a git branch, with sizes. " +
		"Use this first for zip submissions, then read individual files with zip_read_file."
}

func (t *ZipListFilesTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":     stringProperty("Which repository: 'c3' or 'c4'"),
		"branch":   stringProperty("Git branch containing the zip file"),
		"zip_path": stringProperty("Path to the .zip file within the branch"),
	}, []string{"repo", "branch", "zip_path"})
}

func (t *ZipListFilesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	branch, err := requireStringParam(params, "branch")
	if err != nil {
		return nil, err
	}
	zipPath, err := requireStringParam(params, "zip_path")
	if err != nil {
		return nil, err
	}

	t.workspace.logger.Debug("zip_list_files",
		logging.String("repo", repo),
		logging.String("branch", branch),
		logging.String("zip_path", zipPath))

	reader, err := t.workspace.readZipFromGit(repo, branch, zipPath)
	if err != nil {
		return errorResult("%v", err), nil
	}

	var entries []string
	for _, f := range reader.File {
		if f.FileInfo().IsDir() || shouldIgnore(f.Name) {
			continue
		}
		if len(entries) >= MaxListEntries {
			entries = append(entries, fmt.Sprintf("... (truncated at %d files)", MaxListEntries))
			break
		}
		entries = append(entries, fmt.Sprintf("%s  (%d bytes)", f.Name, f.UncompressedSize64))
	}
	if len(entries) == 0 {
		return errorResult("zip is empty: %s", zipPath), nil
	}

	return strings.Join(entries, "\n"), nil
}

// ZipReadFileTool reads one file from inside a zip archive on a branch.
type ZipReadFileTool struct {
	workspace *Workspace
}

// NewZipReadFileTool creates a zip file reader bound to a workspace.
func NewZipReadFileTool(workspace *Workspace) *ZipReadFileTool {
	return &ZipReadFileTool{workspace: workspace}
}

func (t *ZipReadFileTool) Name() string {
	return "zip_read_file"
}

func (t *ZipReadFileTool) Description() string {
	return "Read a specific file from inside a .zip archive committed to a git branch. " +
		"Long files are truncated."
}

func (t *ZipReadFileTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"repo":            stringProperty("Which repository: 'c3' or 'c4'"),
		"branch":          stringProperty("Git branch containing the zip file"),
		"zip_path":        stringProperty("Path to the .zip file within the branch"),
		"file_inside_zip": stringProperty("Path of the file inside the zip to read"),
	}, []string{"repo", "branch", "zip_path", "file_inside_zip"})
}

func (t *ZipReadFileTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	repo, err := requireStringParam(params, "repo")
	if err != nil {
		return nil, err
	}
	branch, err := requireStringParam(params, "branch")
	if err != nil {
		return nil, err
	}
	zipPath, err := requireStringParam(params, "zip_path")
	if err != nil {
		return nil, err
	}
	inner, err := requireStringParam(params, "file_inside_zip")
	if err != nil {
		return nil, err
	}

	t.workspace.logger.Debug("zip_read_file",
		logging.String("repo", repo),
		logging.String("zip_path", zipPath),
		logging.String("file", inner))

	reader, err := t.workspace.readZipFromGit(repo, branch, zipPath)
	if err != nil {
		return errorResult("%v", err), nil
	}

	var target *zip.File
	var available []string
	for _, f := range reader.File {
		if f.Name == inner {
			target = f
			break
		}
		if !f.FileInfo().IsDir() && len(available) < 20 {
			available = append(available, f.Name)
		}
	}
	if target == nil {
		return errorResult("%s not found in zip. Available: %s", inner, strings.Join(available, ", ")), nil
	}

	rc, err := target.Open()
	if err != nil {
		return errorResult("failed to open %s: %v", inner, err), nil
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return errorResult("failed to read %s: %v", inner, err), nil
	}

	return truncateLines(string(content), t.workspace.maxFileLines), nil
}
