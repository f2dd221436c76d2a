package main

import (
	"errors"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// loadIgnoreMatcher parses the .gitignore at root, if any. Only the root
// file is read; nested .gitignore files are not consulted.
func loadIgnoreMatcher(fsys afero.Fs, root string, log *zap.Logger) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	f, err := fsys.Open(gitIgnorePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("could not open .gitignore", zap.String("path", gitIgnorePath), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	log.Debug("using .gitignore", zap.String("path", gitIgnorePath))
	return gitignore.NewGitIgnoreFromReader(root, f)
}
