package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/user/rankbot/internal/config"
	"github.com/user/rankbot/internal/logging"
)

// MaxListEntries caps file listings returned to the model.
const MaxListEntries = 200

// DefaultMaxFileLines caps file contents returned to the model.
const DefaultMaxFileLines = 300

// IgnorePatterns are path fragments removed from listings. Matching is by
// substring, the same way the submission repos are actually polluted.
var IgnorePatterns = []string{
	"__pycache__",
	".pyc",
	"node_modules",
	".git",
	".DS_Store",
	".venv",
}

// Workspace resolves cohort labels to local submission repositories and
// provides shared limits for the tools.
type Workspace struct {
	basePath     string
	repoDirs     map[string]string
	maxFileLines int
	logger       *logging.Logger

	mu    sync.Mutex
	repos map[string]*git.Repository
}

// NewWorkspace builds a workspace from the scorecard configuration.
func NewWorkspace(basePath string, cfg config.ScorecardConfig, maxFileLines int, logger *logging.Logger) *Workspace {
	if maxFileLines <= 0 {
		maxFileLines = DefaultMaxFileLines
	}
	return &Workspace{
		basePath: basePath,
		repoDirs: map[string]string{
			config.CohortC3: cfg.CohortRepo(basePath, config.CohortC3),
			config.CohortC4: cfg.CohortRepo(basePath, config.CohortC4),
		},
		maxFileLines: maxFileLines,
		logger:       logger,
		repos:        make(map[string]*git.Repository),
	}
}

// RepoDir returns the local directory for a cohort's submissions repo.
func (w *Workspace) RepoDir(repo string) (string, error) {
	dir, ok := w.repoDirs[repo]
	if !ok || dir == "" {
		return "", fmt.Errorf("unknown repo %q, expected one of: c3, c4", repo)
	}
	return dir, nil
}

// openRepo opens and caches the git repository for a cohort.
func (w *Workspace) openRepo(repo string) (*git.Repository, error) {
	dir, err := w.RepoDir(repo)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if r, ok := w.repos[repo]; ok {
		return r, nil
	}

	r, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}
	w.repos[repo] = r
	return r, nil
}

// resolveCommit resolves a branch name or commit hash to a commit object.
// Branch names are tried as remote-tracking refs first since the
// submission repos are fetched, not checked out per branch.
func (w *Workspace) resolveCommit(repo, ref string) (*object.Commit, error) {
	r, err := w.openRepo(repo)
	if err != nil {
		return nil, err
	}

	candidates := []string{ref}
	if !strings.HasPrefix(ref, "origin/") {
		candidates = []string{"origin/" + ref, ref}
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := r.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		commit, err := r.CommitObject(*hash)
		if err != nil {
			lastErr = err
			continue
		}
		return commit, nil
	}
	return nil, fmt.Errorf("failed to resolve ref %q: %w", ref, lastErr)
}

// shouldIgnore reports whether a path contains a noise fragment.
func shouldIgnore(path string) bool {
	for _, pattern := range IgnorePatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// filterPaths removes noisy paths and caps the listing length.
func filterPaths(paths []string) []string {
	filtered := paths[:0]
	for _, p := range paths {
		if !shouldIgnore(p) {
			filtered = append(filtered, p)
		}
	}
	sort.Strings(filtered)
	if len(filtered) > MaxListEntries {
		filtered = filtered[:MaxListEntries]
		filtered = append(filtered, fmt.Sprintf("... (truncated at %d files)", MaxListEntries))
	}
	return filtered
}

// truncateLines caps file contents at maxLines with a notice.
func truncateLines(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}
	lines = lines[:maxLines]
	lines = append(lines, fmt.Sprintf("\n... (truncated at %d lines)", maxLines))
	return strings.Join(lines, "\n")
}
