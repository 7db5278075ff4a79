package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/ats"
	"github.com/jonathan/cvgen/internal/export"
	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/observability"
)

var atsCmd = &cobra.Command{
	Use:   "ats <file>...",
	Short: "Score CVs for ATS compatibility",
	Long: `Extracts text from .md, .txt, .pdf or .docx CVs and scores how well an
applicant tracking system would parse them. With --job, the CV is also checked
for the posting's key terms.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runATS,
}

var (
	atsJob    string
	atsJSON   bool
	atsExport string
)

func init() {
	atsCmd.Flags().StringVar(&atsJob, "job", "", "Job posting URL whose key terms are checked")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print results as JSON")
	atsCmd.Flags().StringVar(&atsExport, "export", "", "Write results to an Excel workbook")

	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	terms, err := jobTerms(ctx, atsJob)
	if err != nil {
		return err
	}

	reports := make([]export.ATSReport, 0, len(args))
	for _, path := range args {
		analysis, err := ats.AnalyzeFile(path, terms)
		if err != nil {
			return err
		}
		reports = append(reports, export.ATSReport{Source: path, Analysis: analysis})
	}

	if atsJSON {
		if len(reports) == 1 {
			if err := printJSON(reports[0].Analysis); err != nil {
				return err
			}
		} else if err := printJSON(reports); err != nil {
			return err
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		for _, r := range reports {
			if len(reports) > 1 {
				_, _ = fmt.Fprintf(os.Stdout, "\n%s\n", r.Source)
			}
			printer.PrintATSAnalysis(r.Analysis)
		}
	}

	if atsExport != "" {
		path, err := export.ATSToExcel(reports, atsExport)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Exported %d reports to %s\n", len(reports), path)
	}
	return nil
}

// jobTerms fetches a posting and returns its key terms. An empty url
// yields no terms.
func jobTerms(ctx context.Context, url string) ([]string, error) {
	if url == "" {
		return nil, nil
	}
	analysis := jobs.NewAnalyzer(newFetcher(false, nil), logger).Analyze(ctx, url, nil)
	if fe := analysis.FetchError; fe != nil {
		return nil, &fetch.Error{URL: url, Kind: fe.Kind, StatusCode: fe.StatusCode, Message: fe.Message}
	}
	return analysis.KeyTerms, nil
}
