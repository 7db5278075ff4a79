package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/paths"
	"github.com/jonathan/cvgen/internal/pipeline"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/templates"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a CV for a sector",
	Long: "Renders a profile through the template for a sector (or an explicit template) and writes " +
		"Markdown, HTML or PDF to <output>/<sector>/<filename>.",
	RunE: runCreate,
}

var (
	createSector   string
	createOutput   string
	createFormat   string
	createTemplate string
	createInput    string
	createProfile  string
	createFilename string
	createEngine   string
	createPaper    string
	createFont     string
	createVerify   bool
)

func init() {
	createCmd.Flags().StringVarP(&createSector, "sector", "s", "", "Target sector: federal, state, private, academic, modern, minimal or basic")
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "Output directory (default: <root>/output)")
	createCmd.Flags().StringVarP(&createFormat, "format", "f", pipeline.FormatPDF, "Output format: markdown, html or pdf")
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template name (overrides the sector's template)")
	createCmd.Flags().StringVarP(&createInput, "input", "i", "", "Profile file (.md or .json)")
	createCmd.Flags().StringVar(&createProfile, "profile", "", "Stored profile id")
	createCmd.Flags().StringVar(&createFilename, "filename", "", "Base filename without extension (default: cv)")
	createCmd.Flags().StringVar(&createEngine, "engine", "", "PDF engine: auto, chrome or basic")
	createCmd.Flags().StringVar(&createPaper, "paper", "", "Paper size: Letter, A4 or Legal")
	createCmd.Flags().StringVar(&createFont, "font", "", "CSS font family")
	createCmd.Flags().BoolVar(&createVerify, "verify", false, "Check the written PDF for the candidate's name and contact details")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	c := currentConfig()
	sector := firstNonEmpty(createSector, c.Sector)
	if sector != "" && !slices.Contains(templates.Sectors(), sector) {
		return &usageError{Message: fmt.Sprintf("invalid sector %q; choose one of %v", sector, templates.Sectors())}
	}
	if !slices.Contains(pipeline.Formats, createFormat) {
		return &usageError{Message: fmt.Sprintf("invalid format %q; choose one of %v", createFormat, pipeline.Formats)}
	}
	if createInput == "" && createProfile == "" {
		return &usageError{Message: "either --input or --profile must be provided"}
	}
	if createInput != "" && createProfile != "" {
		return &usageError{Message: "--input and --profile are mutually exclusive; provide only one"}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputPath, err := createOutputPath(createOutput, sector, createFilename, createFormat)
	if err != nil {
		return err
	}

	var profileSvc *profiles.Service
	if createProfile != "" {
		svc, closeFn, err := openProfiles(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		profileSvc = svc
	}

	opts := pipeline.RunOptions{
		InputPath:  createInput,
		ProfileID:  createProfile,
		Template:   firstNonEmpty(createTemplate, c.Template),
		Sector:     sector,
		Format:     createFormat,
		OutputPath: outputPath,
		PDF:        pdfOptions(createPaper, createFont, false),
		Verify:     createVerify,
		OnProgress: progressPrinter(),
	}
	if err := opts.PDF.Validate(); err != nil {
		return &usageError{Message: fmt.Sprintf("invalid rendering options: %v", err)}
	}
	if createFormat == pipeline.FormatPDF {
		backend, err := rendering.NewBackend(firstNonEmpty(createEngine, c.Engine))
		if err != nil {
			return err
		}
		opts.Backend = backend
	}

	res, err := pipeline.NewRunner(nil, profileSvc, logger).Run(ctx, opts)
	if err != nil {
		return err
	}

	for _, w := range res.ParseWarnings {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Generated %s CV with template %s\n", firstNonEmpty(sector, "basic"), res.Template)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", res.OutputPath)
	if res.Verification != nil && !res.Verification.OK() {
		return fmt.Errorf("PDF verification failed: %v", res.Verification.Issues)
	}
	return nil
}

// createOutputPath resolves <output>/<sector>/<filename><ext>, creating the
// directory. A relative output directory is resolved against the workspace
// root rather than the output directory.
func createOutputPath(output, sector, filename, format string) (string, error) {
	r, err := resolver()
	if err != nil {
		return "", err
	}
	dir := r.Output("")
	if output != "" {
		dir = output
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.Root, dir)
		}
	}
	if sector != "" {
		dir = filepath.Join(dir, sector)
	}
	if err := paths.EnsureDir(dir); err != nil {
		return "", err
	}
	if filename == "" {
		filename = "cv"
	}
	return filepath.Join(dir, filename+pipeline.Extension(format)), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
