package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/llm"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/paths"
	"github.com/jonathan/cvgen/internal/pipeline"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
)

var aiGenerateCmd = &cobra.Command{
	Use:   "ai-generate",
	Short: "Generate a CV optimized by the AI provider",
	Long: `Renders a profile, asks the AI provider to tailor it for a style and
optionally a job posting, and writes the result as a PDF.

When no API key is configured or the provider fails, the unoptimized CV is
written and a warning is printed.`,
	RunE: runAIGenerate,
}

var (
	aiName       string
	aiEmail      string
	aiPhone      string
	aiOutput     string
	aiStyle      string
	aiSinglePage bool
	aiInput      string
	aiJob        string
	aiPaper      string
	aiEngine     string
)

func init() {
	aiGenerateCmd.Flags().StringVar(&aiName, "name", "", "Candidate name (overrides the profile)")
	aiGenerateCmd.Flags().StringVar(&aiEmail, "email", "", "Candidate email (overrides the profile)")
	aiGenerateCmd.Flags().StringVar(&aiPhone, "phone", "", "Candidate phone (overrides the profile)")
	aiGenerateCmd.Flags().StringVarP(&aiOutput, "output", "o", "", "Output file (default: <root>/output/<name>-cv.pdf)")
	aiGenerateCmd.Flags().StringVar(&aiStyle, "style", "professional", "Style: professional, academic, technical or executive")
	aiGenerateCmd.Flags().BoolVar(&aiSinglePage, "single-page", false, "Fit the CV on one page")
	aiGenerateCmd.Flags().StringVarP(&aiInput, "input", "i", "", "Profile file (.md or .json)")
	aiGenerateCmd.Flags().StringVar(&aiJob, "job", "", "Job posting file or URL to tailor the CV for")
	aiGenerateCmd.Flags().StringVar(&aiPaper, "paper", "", "Paper size: Letter, A4 or Legal")
	aiGenerateCmd.Flags().StringVar(&aiEngine, "engine", "", "PDF engine: auto, chrome or basic")

	rootCmd.AddCommand(aiGenerateCmd)
}

func runAIGenerate(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(llm.Styles, aiStyle) {
		return &usageError{Message: fmt.Sprintf("invalid style %q; choose one of %v", aiStyle, llm.Styles)}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, warnings, err := aiProfile()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	jobDescription, err := readJobDescription(ctx, aiJob)
	if err != nil {
		return err
	}

	outputPath, err := aiOutputPath(aiOutput, data.PersonalInfo.Name.Full)
	if err != nil {
		return err
	}

	c := currentConfig()
	paper := firstNonEmpty(aiPaper, c.Paper)
	backend, err := rendering.NewBackend(firstNonEmpty(aiEngine, c.Engine))
	if err != nil {
		return err
	}

	optimizer, closeFn := newOptimizer(ctx)
	defer closeFn()

	res, err := pipeline.NewRunner(nil, nil, logger).Run(ctx, pipeline.RunOptions{
		Data:       data,
		Template:   templates.StyleTemplate(aiStyle),
		Format:     pipeline.FormatPDF,
		OutputPath: outputPath,
		PDF:        pdfOptions(paper, "", aiSinglePage),
		Backend:    backend,
		Optimize:   true,
		Optimizer:  optimizer,
		OptimizeOptions: llm.OptimizeOptions{
			Style:      aiStyle,
			SinglePage: aiSinglePage,
			Paper:      paper,
		},
		JobDescription: jobDescription,
		OnProgress:     progressPrinter(),
	})
	if err != nil {
		return err
	}

	if opt := res.Optimization; opt != nil && !opt.Optimized {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s; wrote the unoptimized CV\n", opt.Warning)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Generated %s CV with template %s\n", aiStyle, res.Template)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", res.OutputPath)
	return nil
}

// aiProfile loads --input when given and applies the identity flags, then
// falls back to the configured name and contact details
func aiProfile() (*types.CVData, []parsing.Warning, error) {
	data := &types.CVData{}
	var warnings []parsing.Warning
	if aiInput != "" {
		res, err := parsing.LoadFile(aiInput)
		if err != nil {
			return nil, nil, err
		}
		data, warnings = res.Data, res.Warnings
	}

	c := currentConfig()
	info := &data.PersonalInfo
	if name := firstNonEmpty(aiName, c.Name); name != "" && (aiName != "" || info.Name.Full == "" || info.Name.Full == types.PlaceholderName) {
		info.Name = types.Name{Full: name}
	}
	if email := firstNonEmpty(aiEmail, c.Email); email != "" && (aiEmail != "" || info.Contact.Email == "") {
		info.Contact.Email = email
	}
	if phone := firstNonEmpty(aiPhone, c.Phone); phone != "" && (aiPhone != "" || info.Contact.Phone == "") {
		info.Contact.Phone = phone
	}
	data.Normalize()

	if data.PersonalInfo.Name.Full == types.PlaceholderName {
		return nil, nil, &usageError{Message: "a candidate name is required; pass --name or --input"}
	}
	return data, warnings, nil
}

// aiOutputPath returns output, or <root>/output/<name>-cv.pdf when empty.
// The parent directory is created.
func aiOutputPath(output, name string) (string, error) {
	if output == "" {
		r, err := resolver()
		if err != nil {
			return "", err
		}
		output = r.Output(slug(name) + "-cv.pdf")
	}
	if err := paths.EnsureDir(filepath.Dir(output)); err != nil {
		return "", err
	}
	return output, nil
}
