package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/export"
	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/observability"
)

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job <url>...",
	Short: "Analyze job postings",
	Long: `Fetches one or more job postings and extracts the title, company, skills
and key terms. A posting that cannot be fetched is reported and the rest
continue; the command fails only when every posting failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyzeJob,
}

var (
	analyzeTimeout time.Duration
	analyzeBrowser bool
	analyzeExport  string
	analyzeJSON    bool
	analyzeCache   bool
	analyzeTerms   []string
)

func init() {
	analyzeJobCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Per-posting fetch timeout (default from config)")
	analyzeJobCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Fetch with a headless browser for JavaScript-rendered pages")
	analyzeJobCmd.Flags().StringVar(&analyzeExport, "export", "", "Write results to an Excel workbook")
	analyzeJobCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print results as JSON")
	analyzeJobCmd.Flags().BoolVar(&analyzeCache, "cache", false, "Reuse pages fetched recently from storage")
	analyzeJobCmd.Flags().StringSliceVar(&analyzeTerms, "term", nil, "Additional key terms to match (repeatable)")

	rootCmd.AddCommand(analyzeJobCmd)
}

func runAnalyzeJob(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cache *fetch.PageCache
	if analyzeCache {
		store, closeFn, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		cache = fetch.NewPageCache(store, 0)
	}

	analyzer := jobs.NewAnalyzer(newFetcher(analyzeBrowser, cache), logger)
	batch := analyzer.AnalyzeBatch(ctx, args, &jobs.BatchOptions{
		Options: jobs.Options{
			Timeout:         analyzeTimeout,
			AdditionalTerms: analyzeTerms,
		},
		Concurrency: currentConfig().Fetch.Concurrency,
	})

	if analyzeJSON {
		if err := printJSON(batch); err != nil {
			return err
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		for _, r := range batch.Results {
			printer.PrintJobAnalysis(r)
		}
		if len(batch.Results) > 1 {
			printer.PrintBatchSummary(batch.Results)
		}
	}

	if analyzeExport != "" {
		path, err := export.JobsToExcel(batch.Results, analyzeExport)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Exported %d postings to %s\n", len(batch.Results), path)
	}

	if batch.AllFailed() {
		return &batchFailedError{Count: len(batch.Results)}
	}
	return nil
}
