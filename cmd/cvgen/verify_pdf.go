package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/observability"
	"github.com/jonathan/cvgen/internal/validation"
)

var verifyPDFCmd = &cobra.Command{
	Use:   "verify-pdf <file>...",
	Short: "Check generated PDFs",
	Long: `Checks that each PDF is readable, has text content, stays within the page
limit and contains the candidate's name and contact details.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerifyPDF,
}

var (
	verifyName     string
	verifyEmail    string
	verifyPhone    string
	verifyMaxPages int
	verifyJSON     bool
)

func init() {
	verifyPDFCmd.Flags().StringVar(&verifyName, "name", "", "Name the PDF must contain (default from config)")
	verifyPDFCmd.Flags().StringVar(&verifyEmail, "email", "", "Email the PDF must contain (default from config)")
	verifyPDFCmd.Flags().StringVar(&verifyPhone, "phone", "", "Phone number the PDF must contain")
	verifyPDFCmd.Flags().IntVar(&verifyMaxPages, "max-pages", 0, "Maximum page count (0 for no limit)")
	verifyPDFCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(verifyPDFCmd)
}

func runVerifyPDF(_ *cobra.Command, args []string) error {
	c := currentConfig()
	results, err := validation.VerifyFiles(args, validation.Options{
		Name:     firstNonEmpty(verifyName, c.Name),
		Email:    firstNonEmpty(verifyEmail, c.Email),
		Phone:    firstNonEmpty(verifyPhone, c.Phone),
		MaxPages: verifyMaxPages,
	})
	if err != nil {
		return err
	}

	if verifyJSON {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		for _, r := range results {
			printer.PrintVerification(r)
		}
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d PDFs failed verification", failed, len(results))
	}
	return nil
}
