package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

var errNotInRepo = errors.New("not inside a git repository")

// GitFileStatus is the working-tree state of one rewritten file.
type GitFileStatus struct {
	Path     string // Relative to the repository top level, slash-separated
	Staging  git.StatusCode
	Worktree git.StatusCode
}

// gitStatusFor opens the repository containing root (searching parent
// directories) and looks up the status of each path.
func gitStatusFor(root string, paths []string) ([]GitFileStatus, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", errNotInRepo, root)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", root, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	top := resolveLinks(wt.Filesystem.Root())
	statuses := make([]GitFileStatus, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(top, resolveLinks(p))
		if err != nil {
			return nil, fmt.Errorf("path %s is outside the repository: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		entry := GitFileStatus{Path: rel, Staging: git.Unmodified, Worktree: git.Unmodified}
		// Clean files are absent from the status map.
		if fs, ok := status[rel]; ok {
			entry.Staging = fs.Staging
			entry.Worktree = fs.Worktree
		}
		statuses = append(statuses, entry)
	}
	return statuses, nil
}

// printGitStatus writes porcelain-style "XY path" lines.
func printGitStatus(w io.Writer, statuses []GitFileStatus) {
	if len(statuses) == 0 {
		return
	}
	fmt.Fprintln(w, "Git status of modified files:")
	for _, s := range statuses {
		fmt.Fprintf(w, "  %c%c %s\n", s.Staging, s.Worktree, s.Path)
	}
}

func resolveLinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
