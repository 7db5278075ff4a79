// Package pipeline provides the high-level orchestration for CV generation:
// load a profile, select a template, render, optionally optimize, write and
// verify the output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/llm"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/pipeline/steps"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
	"github.com/jonathan/cvgen/internal/validation"
)

// Output formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// Formats lists the accepted output formats
var Formats = []string{FormatMarkdown, FormatHTML, FormatPDF}

// Extension returns the file extension for an output format
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".pdf"
	}
}

// ErrNoInput is returned when RunOptions names no profile source
var ErrNoInput = errors.New("no profile input: provide data, a profile id or an input file")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for one generation. Exactly one profile
// source is used, in order of precedence: Data, ProfileID, InputPath.
type RunOptions struct {
	Data      *types.CVData
	ProfileID string
	InputPath string

	// Template wins over Sector; with neither the basic template is used
	Template        string
	Sector          string
	TemplateOptions templates.Options

	Format     string
	OutputPath string
	PDF        *types.PDFOptions
	Backend    rendering.Backend

	Optimize        bool
	Optimizer       *llm.Optimizer
	OptimizeOptions llm.OptimizeOptions
	JobDescription  string

	// Verify checks a written PDF for the candidate's name and contact details
	Verify     bool
	MaxPages   int
	OnProgress ProgressCallback
}

// Result is the outcome of a successful run
type Result struct {
	OutputPath    string             `json:"output_path"`
	Format        string             `json:"format"`
	Template      string             `json:"template"`
	Data          *types.CVData      `json:"-"`
	Markdown      string             `json:"-"`
	ParseWarnings []parsing.Warning  `json:"parse_warnings,omitempty"`
	Optimization  *llm.OptimizedCV   `json:"optimization,omitempty"`
	Verification  *validation.Result `json:"verification,omitempty"`
	Steps         []steps.StepResult `json:"steps"`
}

// Runner executes generation plans. It is safe for concurrent use when its
// collaborators are.
type Runner struct {
	templates *templates.Provider
	profiles  *profiles.Service
	logger    *zap.Logger
}

// NewRunner creates a Runner. A nil provider uses the built-in templates;
// profileSvc is only needed for runs that load by profile id.
func NewRunner(provider *templates.Provider, profileSvc *profiles.Service, logger *zap.Logger) *Runner {
	if provider == nil {
		provider = templates.NewProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{templates: provider, profiles: profileSvc, logger: logger}
}

// run carries state between steps
type run struct {
	opts   *RunOptions
	tmpl   templates.Template
	result *Result
}

// Run executes the steps needed for opts and stops at the first failure.
// The failing step's name prefixes the returned error, which wraps the
// underlying cause.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	switch opts.Format {
	case FormatMarkdown, FormatHTML, FormatPDF:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s)", opts.Format, strings.Join(Formats, ", "))
	}
	if opts.OutputPath == "" {
		return nil, errors.New("output path is required")
	}

	requested := []string{steps.WriteOutput}
	if opts.Optimize {
		requested = append(requested, steps.Optimize)
	}
	if opts.Verify && opts.Format == FormatPDF {
		requested = append(requested, steps.VerifyPDF)
	}
	plan, err := steps.Plan(requested...)
	if err != nil {
		return nil, err
	}

	state := &run{
		opts:   &opts,
		result: &Result{OutputPath: opts.OutputPath, Format: opts.Format},
	}
	completed := make(map[string]bool, len(plan))
	for _, name := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := steps.ValidateDependencies(completed, name); err != nil {
			return nil, err
		}

		start := time.Now()
		msg, err := r.execute(ctx, name, state)
		sr := steps.StepResult{Step: name, Status: steps.StatusCompleted, Duration: time.Since(start).Milliseconds(), Message: msg}
		if err != nil {
			sr.Status = steps.StatusFailed
			sr.Message = err.Error()
		}
		state.result.Steps = append(state.result.Steps, sr)
		r.logger.Debug("pipeline step finished",
			zap.String("step", name),
			zap.String("status", sr.Status),
			zap.Int64("duration_ms", sr.Duration))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		completed[name] = true
		emitProgress(&opts, name, msg, stepContent(name, state.result))
	}
	return state.result, nil
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			Content:  content,
		})
	}
}

func stepContent(step string, res *Result) any {
	switch step {
	case steps.Optimize:
		return res.Optimization
	case steps.VerifyPDF:
		return res.Verification
	default:
		return nil
	}
}

func (r *Runner) execute(ctx context.Context, step string, s *run) (string, error) {
	switch step {
	case steps.LoadProfile:
		return r.loadProfile(ctx, s)
	case steps.SelectTemplate:
		return r.selectTemplate(s)
	case steps.RenderMarkdown:
		md, err := rendering.RenderMarkdown(s.tmpl, s.result.Data, s.opts.TemplateOptions)
		if err != nil {
			return "", err
		}
		s.result.Markdown = md
		return fmt.Sprintf("Rendered %d lines with template %s", strings.Count(md, "\n"), s.tmpl.Name()), nil
	case steps.Optimize:
		opt := llm.OptimizeOrOriginal(ctx, s.opts.Optimizer, s.result.Markdown, s.opts.JobDescription, s.opts.OptimizeOptions)
		s.result.Optimization = opt
		s.result.Markdown = opt.Content
		if !opt.Optimized {
			return "Using original content: " + opt.Warning, nil
		}
		return fmt.Sprintf("Optimized with %s (%d changes)", opt.Model, len(opt.Optimizations)), nil
	case steps.WriteOutput:
		return r.writeOutput(ctx, s)
	case steps.VerifyPDF:
		contact := s.result.Data.PersonalInfo.Contact
		v, err := validation.VerifyFile(s.result.OutputPath, validation.Options{
			Name:     s.result.Data.PersonalInfo.Name.Full,
			Email:    contact.Email,
			Phone:    contact.Phone,
			MaxPages: s.opts.MaxPages,
		})
		if err != nil {
			return "", err
		}
		s.result.Verification = v
		if !v.OK() {
			return fmt.Sprintf("Verification found %d issue(s)", len(v.Issues)), nil
		}
		return fmt.Sprintf("Verified %d page(s)", v.PageCount), nil
	default:
		return "", fmt.Errorf("unknown step: %s", step)
	}
}

func (r *Runner) loadProfile(ctx context.Context, s *run) (string, error) {
	switch {
	case s.opts.Data != nil:
		cv := *s.opts.Data
		cv.Normalize()
		s.result.Data = &cv
	case s.opts.ProfileID != "":
		if r.profiles == nil {
			return "", errors.New("profile storage is not configured")
		}
		p, err := r.profiles.Get(ctx, s.opts.ProfileID)
		if err != nil {
			return "", err
		}
		s.result.Data = p.Data
	case s.opts.InputPath != "":
		res, err := parsing.LoadFile(s.opts.InputPath)
		if err != nil {
			return "", err
		}
		for _, w := range res.Warnings {
			r.logger.Warn("profile parse warning", zap.String("section", w.Section), zap.String("warning", w.String()))
		}
		s.result.Data = res.Data
		s.result.ParseWarnings = res.Warnings
	default:
		return "", ErrNoInput
	}
	return "Loaded profile for " + s.result.Data.PersonalInfo.Name.Full, nil
}

func (r *Runner) selectTemplate(s *run) (string, error) {
	name := s.opts.Template
	if name == "" && s.opts.Sector != "" {
		name = templates.SectorTemplate(s.opts.Sector)
	}
	tmpl, err := r.templates.Get(name)
	if err != nil {
		return "", err
	}
	s.tmpl = tmpl
	s.result.Template = tmpl.Name()
	return "Selected template " + tmpl.Name(), nil
}

func (r *Runner) writeOutput(ctx context.Context, s *run) (string, error) {
	path := s.result.OutputPath
	if s.result.Format == FormatMarkdown {
		if err := writeFile(path, []byte(s.result.Markdown)); err != nil {
			return "", err
		}
		return "Wrote " + path, nil
	}

	body, err := rendering.ConvertMarkdownToHTML(s.result.Markdown)
	if err != nil {
		return "", err
	}
	pdfOpts := s.opts.PDF.WithDefaults()
	if pdfOpts.Title == "" {
		pdfOpts.Title = s.result.Data.PersonalInfo.Name.Full
	}
	if pdfOpts.Author == "" {
		pdfOpts.Author = s.result.Data.PersonalInfo.Name.Full
	}
	doc := rendering.ApplyHTMLStyling(body, &pdfOpts, s.tmpl.Styles())

	if s.result.Format == FormatHTML {
		if err := writeFile(path, []byte(doc)); err != nil {
			return "", err
		}
		return "Wrote " + path, nil
	}

	if _, err := rendering.WriteHTMLToPDF(ctx, doc, path, &pdfOpts, s.opts.Backend); err != nil {
		return "", err
	}
	return "Wrote " + path, nil
}

// writeFile writes data to path without creating parent directories
func writeFile(path string, data []byte) error {
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		if err == nil {
			err = os.ErrNotExist
		}
		return &rendering.IOError{Path: path, Message: "output directory does not exist", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &rendering.IOError{Path: path, Message: "failed to write output", Cause: err}
	}
	return nil
}
