package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInvalidUTF8 is the cause of a ReadError for content that does not decode as UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadError reports a file that could not be read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a file whose rewritten content could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// replaceAll applies each search string in order, every pass working on the
// previous pass's output. It returns the result and the number of occurrences replaced.
func replaceAll(content string, search []string, replacement string) (string, int) {
	total := 0
	for _, s := range search {
		n := strings.Count(content, s)
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, s, replacement)
		total += n
	}
	return content, total
}

// rewriteFile runs one substitution pass over path. Failures are returned as
// outcomes, never as errors to the caller.
func (r *Rewriter) rewriteFile(path string) FileResult {
	result := FileResult{Path: path, Outcome: OutcomeUnchanged}

	data, err := afero.ReadFile(r.fs, path)
	if err == nil && !utf8.Valid(data) {
		err = ErrInvalidUTF8
	}
	if err != nil {
		result.Outcome = OutcomeUnreadable
		result.Err = &ReadError{Path: path, Err: err}
		r.log.Warn("could not read file, skipping", zap.String("path", path), zap.Error(err))
		return result
	}

	original := string(data)
	updated, n := replaceAll(original, r.cfg.Search, r.cfg.Replacement)
	if updated == original {
		return result
	}
	result.Replacements = n

	perm := defaultFilePerm
	if info, statErr := r.fs.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := afero.WriteFile(r.fs, path, []byte(updated), perm); err != nil {
		result.Outcome = OutcomeWriteFailed
		result.Err = &WriteError{Path: path, Err: err}
		r.log.Error("could not write file", zap.String("path", path), zap.Error(err))
		return result
	}

	result.Outcome = OutcomeModified
	return result
}
