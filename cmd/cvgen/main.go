// Package main provides the cvgen command line tool for generating, scoring
// and managing CVs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/config"
	"github.com/jonathan/cvgen/internal/logging"
)

var (
	configFile string
	verbose    bool
	logLevel   string

	// cfg and logger are set by the root command before any subcommand runs
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cvgen",
	Short: "CV generation toolkit",
	Long: "cvgen turns markdown or JSON profiles into sector-specific CVs in Markdown, HTML or PDF, " +
		"analyzes job postings and scores CVs for applicant tracking system compatibility.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: ./cvgen.yaml or ./configs/cvgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// setup loads configuration and builds the logger
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	merged := loaded.MergeWithDefaults(config.Defaults())
	cfg = &merged
	if verbose {
		cfg.Verbose = true
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", category(err), err)
		os.Exit(1)
	}
}
