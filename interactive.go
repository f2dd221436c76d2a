package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// candidateDirs lists directories below root that could serve as the rewrite
// root, pruning hidden and excluded directories the same way a run would.
func candidateDirs(root string, excludeDirs []string) ([]string, error) {
	cfg := Config{ExcludeDirs: excludeDirs}
	candidates := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable entries are simply not offered
		}
		if !d.IsDir() {
			return nil
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) || cfg.excluded(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick the root directory. It returns ""
// with a nil error when the user aborts.
func runInteractiveFinder(excludeDirs []string) (string, error) {
	candidates, err := candidateDirs(".", excludeDirs)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no directories found to select from")
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPromptString("root> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory whose files will be rewritten. Enter to confirm, Esc to abort."
			}
			entries, readErr := os.ReadDir(candidates[i])
			if readErr != nil {
				return fmt.Sprintf("Path: %s\nError listing directory: %v", candidates[i], readErr)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(entries))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
