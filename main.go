package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Substitution
	searchStrings []string
	replacement   string

	// Filtering
	suffixes         []string
	excludeDirs      []string
	languageGroups   []string
	respectGitignore bool

	// Reporting
	showTree        bool
	showGitStatus   bool
	pdfOutputFile   string
	copyToClipboard bool
	verbose         bool

	// Interactive Mode
	interactiveMode bool

	cfgFile string

	configLoadErr error // Outcome of initConfig, reported once the logger exists
	logger        *zap.Logger
	langData      *LoadedLanguageData
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "urlswap [ROOT]",
	Short: "urlswap replaces development URLs with the production URL across a source tree.",
	Long: `urlswap walks a front-end source tree and rewrites, in place, every
occurrence of the configured search strings with the replacement string in
files whose names end with an accepted suffix. Excluded directories such as
node_modules are never entered.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd.OutOrStdout(), viper.GetViper(), logger, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogger, initLanguages)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/urlswap/urlswap.toml or ./urlswap.toml)")

	// Substitution
	rootCmd.Flags().StringArrayVarP(&searchStrings, "search", "s", defaultSearch, "Literal string to replace (repeatable, applied in order)")
	viper.BindPFlag("search", rootCmd.Flags().Lookup("search"))
	rootCmd.Flags().StringVarP(&replacement, "replace", "r", defaultReplacement, "Replacement string")
	viper.BindPFlag("replacement", rootCmd.Flags().Lookup("replace"))

	// Filtering
	rootCmd.Flags().StringSliceVarP(&suffixes, "suffix", "x", defaultSuffixes, "Accepted file name suffixes (comma-separated or repeatable)")
	viper.BindPFlag("suffixes", rootCmd.Flags().Lookup("suffix"))
	rootCmd.Flags().StringSliceVarP(&excludeDirs, "exclude", "e", defaultExcludeDirs, "Directory names to skip at any depth")
	viper.BindPFlag("exclude_dirs", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().StringSliceVar(&languageGroups, "lang", nil, "Add the suffixes of named groups from languages.yml (e.g. vue,markdown)")
	viper.BindPFlag("languages", rootCmd.Flags().Lookup("lang"))
	rootCmd.Flags().BoolVar(&respectGitignore, "gitignore", false, "Also skip paths matched by the root .gitignore")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))

	// Reporting
	rootCmd.Flags().BoolVar(&showTree, "tree", false, "Print a tree of the modified files after the run")
	viper.BindPFlag("tree", rootCmd.Flags().Lookup("tree"))
	rootCmd.Flags().BoolVar(&showGitStatus, "git-status", false, "Print the git status of the modified files after the run")
	viper.BindPFlag("git_status", rootCmd.Flags().Lookup("git-status"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save a PDF report of the run")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the run totals to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every visited and pruned path")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the root directory with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	setConfigDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "urlswap"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("urlswap")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("URLSWAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match URLSWAP_*

	configLoadErr = viper.ReadInConfig()
}

// initLogger builds the logger once the verbosity is known and reports how configuration was loaded.
func initLogger() {
	var err error
	logger, err = newLogger(viper.GetBool("verbose"))
	cobra.CheckErr(err)

	var notFound viper.ConfigFileNotFoundError
	switch {
	case configLoadErr == nil:
		logger.Info("using config file", zap.String("path", viper.ConfigFileUsed()))
	case errors.As(configLoadErr, &notFound):
		logger.Debug("no config file found, using defaults and flags")
	default:
		logger.Warn("error reading config file", zap.Error(configLoadErr))
	}
}

// initLanguages loads the suffix group definitions.
func initLanguages() {
	var err error
	langData, err = loadLanguageData()
	if err != nil {
		// Only --lang needs the groups; configFromViper reports it if used.
		logger.Warn("could not load language definitions", zap.Error(err))
		langData = nil
		return
	}
	logger.Debug("loaded language definitions", zap.String("source", langData.Source), zap.Int("groups", len(langData.Langs)))
}

// runRewrite resolves the configuration, performs the rewrite and emits the optional reports.
func runRewrite(out io.Writer, v *viper.Viper, log *zap.Logger, args []string) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(args) == 1 {
		v.Set("root", args[0])
	}

	if v.GetBool("interactive") {
		picked, err := runInteractiveFinder(v.GetStringSlice("exclude_dirs"))
		if err != nil {
			return fmt.Errorf("interactive mode error: %w", err)
		}
		if picked == "" {
			fmt.Fprintln(out, "Interactive selection aborted.")
			return nil
		}
		v.Set("root", picked)
	}

	cfg, err := configFromViper(v, langData)
	if err != nil {
		return err
	}

	summary, err := NewRewriter(cfg, afero.NewOsFs(), out, log).Run()
	if err != nil {
		return err
	}

	if v.GetBool("tree") && summary.Changed > 0 {
		fmt.Fprintln(out, "\nModified files:")
		fmt.Fprint(out, printTree(buildTree(summary.Modified(), summary.Root)))
	}

	if v.GetBool("git_status") && summary.Changed > 0 {
		statuses, err := gitStatusFor(summary.Root, summary.Modified())
		if err != nil {
			log.Warn("could not read git status", zap.Error(err))
		} else {
			fmt.Fprintln(out)
			printGitStatus(out, statuses)
		}
	}

	if pdfPath := v.GetString("pdf"); pdfPath != "" {
		if err := generatePDF(summary, cfg, pdfPath); err != nil {
			log.Error("error generating PDF", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Report saved to %s\n", pdfPath)
		}
	}

	if v.GetBool("clipboard") {
		if err := copySummary(summary); err != nil {
			log.Warn("error writing to clipboard", zap.Error(err))
		} else {
			fmt.Fprintln(out, "Totals copied to clipboard.")
		}
	}

	return nil
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
