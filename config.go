package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Built-in defaults. With no flags, env or config file the tool switches the
// FrontEnd tree from the local dev server to the production host.
const defaultRoot = "FrontEnd"

const defaultReplacement = "https://yup.notiffly.com.br"

var (
	defaultSearch = []string{"http://localhost:3000", "localhost:3000"}

	defaultSuffixes = []string{
		".js", ".ts", ".tsx", ".jsx", ".json", ".css", ".html", ".svg",
	}

	defaultExcludeDirs = []string{"node_modules"}
)

var (
	ErrNoSearchStrings   = errors.New("at least one search string is required")
	ErrEmptySearchString = errors.New("search strings must not be empty")
	ErrNoSuffixes        = errors.New("at least one file suffix is required")
)

// Config is the full set of rewrite parameters. It is built once at start and
// passed by value; nothing mutates it afterwards.
type Config struct {
	Root             string
	Search           []string // Applied in order, each pass on the previous pass's output
	Replacement      string
	Suffixes         []string
	ExcludeDirs      []string // Directory names pruned at any depth
	RespectGitignore bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Root:        defaultRoot,
		Search:      append([]string(nil), defaultSearch...),
		Replacement: defaultReplacement,
		Suffixes:    append([]string(nil), defaultSuffixes...),
		ExcludeDirs: append([]string(nil), defaultExcludeDirs...),
	}
}

// Validate reports configuration that would make a run meaningless or destructive.
func (c Config) Validate() error {
	if len(c.Search) == 0 {
		return ErrNoSearchStrings
	}
	for i, s := range c.Search {
		if s == "" {
			return fmt.Errorf("search string #%d: %w", i+1, ErrEmptySearchString)
		}
	}
	if len(c.Suffixes) == 0 {
		return ErrNoSuffixes
	}
	return nil
}

// excluded reports whether a directory name is in the exclusion set.
func (c Config) excluded(name string) bool {
	for _, d := range c.ExcludeDirs {
		if d == name {
			return true
		}
	}
	return false
}

// configFromViper builds the immutable Config from the layered viper values
// (defaults < config file < URLSWAP_* env < flags). Suffix groups named under
// "languages" are expanded through langData.
func configFromViper(v *viper.Viper, langData *LoadedLanguageData) (Config, error) {
	cfg := Config{
		Root:             v.GetString("root"),
		Search:           v.GetStringSlice("search"),
		Replacement:      v.GetString("replacement"),
		Suffixes:         v.GetStringSlice("suffixes"),
		ExcludeDirs:      v.GetStringSlice("exclude_dirs"),
		RespectGitignore: v.GetBool("gitignore"),
	}
	if cfg.Root == "" {
		cfg.Root = defaultRoot
	}

	if groups := v.GetStringSlice("languages"); len(groups) > 0 {
		extra, err := langData.SuffixesFor(groups)
		if err != nil {
			return Config{}, err
		}
		cfg.Suffixes = mergeSuffixes(cfg.Suffixes, extra)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setConfigDefaults registers the built-in defaults on v.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("root", defaultRoot)
	v.SetDefault("search", defaultSearch)
	v.SetDefault("replacement", defaultReplacement)
	v.SetDefault("suffixes", defaultSuffixes)
	v.SetDefault("exclude_dirs", defaultExcludeDirs)
	v.SetDefault("languages", []string{})
	v.SetDefault("gitignore", false)
	v.SetDefault("git_status", false)
	v.SetDefault("tree", false)
	v.SetDefault("pdf", "")
	v.SetDefault("clipboard", false)
	v.SetDefault("interactive", false)
	v.SetDefault("verbose", false)
}

// mergeSuffixes appends extra to base, dropping duplicates and keeping first-seen order.
func mergeSuffixes(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}
