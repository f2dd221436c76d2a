package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var embeddedLanguages []byte

// LanguageInfo describes one named group of file extensions.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
}

// LanguageMap maps group names (e.g., "typescript") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed groups and where they came from.
type LoadedLanguageData struct {
	Langs  LanguageMap
	Source string // File path, or "embedded"
}

// loadLanguageData loads languages.yml from the user config directory or the
// working directory, falling back to the copy built into the binary.
func loadLanguageData() (*LoadedLanguageData, error) {
	configPaths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "urlswap"))
	}
	configPaths = append(configPaths, ".")

	for _, p := range configPaths {
		langFilePath := filepath.Join(p, "languages.yml")
		if _, err := os.Stat(langFilePath); err != nil {
			continue
		}
		yamlFile, err := os.ReadFile(langFilePath)
		if err != nil {
			return nil, fmt.Errorf("error reading language file %s: %w", langFilePath, err)
		}
		return parseLanguageData(yamlFile, langFilePath)
	}

	return parseLanguageData(embeddedLanguages, "embedded")
}

// parseLanguageData decodes a languages document. Group names are matched case-insensitively.
func parseLanguageData(data []byte, source string) (*LoadedLanguageData, error) {
	var raw LanguageMap
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", source, err)
	}

	langs := make(LanguageMap, len(raw))
	for name, info := range raw {
		langs[strings.ToLower(name)] = info
	}
	return &LoadedLanguageData{Langs: langs, Source: source}, nil
}

// SuffixesFor returns the extensions of the named groups, in group order.
func (ld *LoadedLanguageData) SuffixesFor(groups []string) ([]string, error) {
	var suffixes []string
	for _, g := range groups {
		name := strings.ToLower(strings.TrimSpace(g))
		if name == "" {
			continue
		}
		if ld == nil {
			return nil, fmt.Errorf("unknown language group %q: no language definitions loaded", g)
		}
		info, ok := ld.Langs[name]
		if !ok {
			return nil, fmt.Errorf("unknown language group %q (known: %s)", g, strings.Join(ld.Names(), ", "))
		}
		suffixes = append(suffixes, info.Extensions...)
	}
	return suffixes, nil
}

// Names returns the known group names, sorted.
func (ld *LoadedLanguageData) Names() []string {
	if ld == nil {
		return nil
	}
	names := make([]string, 0, len(ld.Langs))
	for name := range ld.Langs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
