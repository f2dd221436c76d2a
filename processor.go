package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultFilePerm os.FileMode = 0o644

var (
	ErrRootNotFound = errors.New("root directory not found")
	ErrRootNotDir   = errors.New("root path is not a directory")
)

// Rewriter walks a tree and replaces the configured search strings in every
// accepted file. It is single-use per run and not safe for concurrent use.
type Rewriter struct {
	cfg    Config
	fs     afero.Fs
	out    io.Writer // Progress and summary lines
	log    *zap.Logger
	ignore gitignore.IgnoreMatcher
}

// NewRewriter returns a Rewriter over fsys. Progress goes to out, warnings and errors to log.
func NewRewriter(cfg Config, fsys afero.Fs, out io.Writer, log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{cfg: cfg, fs: fsys, out: out, log: log}
}

// Run checks the root, walks it and returns the totals. The only error it
// returns is the root guard; per-file failures are recorded in the Summary.
func (r *Rewriter) Run() (Summary, error) {
	root, err := r.resolveRoot()
	if err != nil {
		return Summary{}, err
	}

	if r.cfg.RespectGitignore {
		r.ignore = loadIgnoreMatcher(r.fs, root, r.log)
	}

	summary := Summary{Root: root}
	printHeader(r.out, root, r.cfg)
	r.walkDir(root, &summary)
	printTotals(r.out, summary)
	return summary, nil
}

// resolveRoot makes the configured root absolute and checks that it is a directory.
func (r *Rewriter) resolveRoot() (string, error) {
	root, err := filepath.Abs(r.cfg.Root)
	if err != nil {
		return "", fmt.Errorf("error resolving root %s: %w", r.cfg.Root, err)
	}

	info, err := r.fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s (run from your project root)", ErrRootNotFound, root)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}
	return root, nil
}

// walkDir visits the accepted files directly in dir, then recurses into the
// admissible subdirectories. Pruned directories are never listed.
func (r *Rewriter) walkDir(dir string, summary *Summary) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		r.log.Warn("could not list directory, skipping", zap.String("path", dir), zap.Error(err))
		return
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch r.classify(path, entry) {
		case entryDir:
			subdirs = append(subdirs, entry.Name())
			continue
		case entryLinkedDir:
			r.log.Debug("not following directory symlink", zap.String("path", path))
			continue
		}

		if !r.shouldProcessFile(path, entry.Name()) {
			continue
		}

		summary.Processed++
		result := r.rewriteFile(path)
		summary.Results = append(summary.Results, result)
		r.log.Debug("visited", zap.String("path", path), zap.Stringer("outcome", result.Outcome))
		if result.Outcome == OutcomeModified {
			summary.Changed++
			printModified(r.out, path)
		}
	}

	for _, name := range r.admissibleDirs(dir, subdirs) {
		r.walkDir(filepath.Join(dir, name), summary)
	}
}

type entryKind int

const (
	entryFile entryKind = iota
	entryDir
	entryLinkedDir
)

func (r *Rewriter) classify(path string, entry os.FileInfo) entryKind {
	if entry.IsDir() {
		return entryDir
	}
	if entry.Mode()&os.ModeSymlink != 0 {
		if target, err := r.fs.Stat(path); err == nil && target.IsDir() {
			return entryLinkedDir
		}
	}
	return entryFile
}

// admissibleDirs filters the child directories of dir before any of them is entered.
func (r *Rewriter) admissibleDirs(dir string, names []string) []string {
	admissible := names[:0]
	for _, name := range names {
		if r.cfg.excluded(name) {
			r.log.Debug("pruned excluded directory", zap.String("path", filepath.Join(dir, name)))
			continue
		}
		if r.ignore != nil && r.ignore.Match(filepath.Join(dir, name), true) {
			r.log.Debug("pruned gitignored directory", zap.String("path", filepath.Join(dir, name)))
			continue
		}
		admissible = append(admissible, name)
	}
	return admissible
}

// shouldProcessFile checks the suffix filter and, when enabled, .gitignore.
func (r *Rewriter) shouldProcessFile(path, name string) bool {
	if !hasAcceptedSuffix(name, r.cfg.Suffixes) {
		return false
	}
	if r.ignore != nil && r.ignore.Match(path, false) {
		return false
	}
	return true
}

// hasAcceptedSuffix is a case-sensitive suffix match against each accepted ending.
func hasAcceptedSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// isHidden checks if a file name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	baseName := filepath.Base(name)
	return len(baseName) > 0 && baseName[0] == '.'
}
