package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/prompts"
	"github.com/jonathan/cvgen/internal/schemas"
)

// Single page layout budget used in prompts and line estimates
const (
	SinglePageLines = 45
	LineWidth       = 80
)

// Styles accepted by Optimize
var Styles = []string{"professional", "academic", "technical", "executive"}

// OptimizeOptions tunes one optimization
type OptimizeOptions struct {
	Style      string
	SinglePage bool
	Paper      string
	Tier       ModelTier
}

// OptimizedCV is the optimizer's output. When Optimized is false, Content
// is the caller's original text and Warning says why.
type OptimizedCV struct {
	Content       string   `json:"optimized_content"`
	Summary       string   `json:"summary,omitempty"`
	KeySkills     []string `json:"key_skills,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
	Optimizations []string `json:"optimizations,omitempty"`
	Model         string   `json:"model,omitempty"`
	Optimized     bool     `json:"optimized"`
	Warning       string   `json:"warning,omitempty"`
}

// Optimizer rewrites CV markdown with an LLM
type Optimizer struct {
	client Client
	logger *zap.Logger
}

// NewOptimizer wraps client. A nil logger discards log output.
func NewOptimizer(client Client, logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{client: client, logger: logger}
}

// Optimize rewrites content, tailoring it to jobDescription when one is given
func (o *Optimizer) Optimize(ctx context.Context, content, jobDescription string, opts OptimizeOptions) (*OptimizedCV, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &Error{Message: "no CV content to optimize"}
	}
	if o == nil || o.client == nil {
		return nil, &Error{Message: "AI provider is not configured"}
	}
	tier := opts.Tier
	if tier == "" {
		tier = TierStandard
		if jobDescription != "" {
			tier = TierAdvanced
		}
	}

	prompt, err := BuildOptimizePrompt(content, jobDescription, opts)
	if err != nil {
		return nil, err
	}

	model := o.client.GetModel(tier)
	o.logger.Debug("optimizing CV",
		zap.String("model", model),
		zap.String("style", opts.Style),
		zap.Bool("single_page", opts.SinglePage),
		zap.Bool("tailored", jobDescription != ""))

	raw, err := o.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}
	result, err := parseOptimized(raw)
	if err != nil {
		return nil, err
	}
	result.Model = model
	result.Optimized = true

	if opts.SinglePage {
		if lines := EstimateLines(result.Content, LineWidth); lines > SinglePageLines {
			result.Warning = fmt.Sprintf("optimized content is about %d lines and may not fit on one page", lines)
		}
	}
	o.logger.Info("CV optimized", zap.String("model", model), zap.Int("changes", len(result.Optimizations)))
	return result, nil
}

// OptimizeOrOriginal runs Optimize and falls back to the unmodified content
// on any failure, including a nil optimizer. It never returns nil.
func OptimizeOrOriginal(ctx context.Context, o *Optimizer, content, jobDescription string, opts OptimizeOptions) *OptimizedCV {
	result, err := o.Optimize(ctx, content, jobDescription, opts)
	if err == nil {
		return result
	}
	if o != nil {
		o.logger.Warn("AI optimization failed, using original content", zap.Error(err))
	}
	warning := err.Error()
	if errors.Is(err, ErrNoAPIKey) {
		warning = "no API key configured; using original content"
	}
	return &OptimizedCV{Content: content, Warning: warning}
}

// BuildOptimizePrompt assembles the optimization prompt
func BuildOptimizePrompt(content, jobDescription string, opts OptimizeOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "professional"
	}
	styleText, err := prompts.Get(prompts.Optimize, "style-"+style)
	if err != nil {
		return "", &Error{Message: fmt.Sprintf("unknown style %q", style), Cause: err}
	}

	data := map[string]string{"Style": styleText, "Content": strings.TrimSpace(content)}
	if opts.SinglePage {
		paper := opts.Paper
		if paper == "" {
			paper = "Letter"
		}
		layout, err := prompts.Render(prompts.Optimize, "single-page", map[string]string{
			"Paper":     paper,
			"MaxLines":  strconv.Itoa(SinglePageLines),
			"LineWidth": strconv.Itoa(LineWidth),
		})
		if err != nil {
			return "", &Error{Message: "failed to load layout prompt", Cause: err}
		}
		data["Layout"] = layout
	}
	if jd := strings.TrimSpace(jobDescription); jd != "" {
		job, err := prompts.Render(prompts.Optimize, "tailor-to-job", map[string]string{"JobDescription": jd})
		if err != nil {
			return "", &Error{Message: "failed to load job prompt", Cause: err}
		}
		data["Job"] = job
	}

	prompt, err := prompts.Render(prompts.Optimize, "optimize-cv", data)
	if err != nil {
		return "", &Error{Message: "failed to load optimize prompt", Cause: err}
	}
	return prompt, nil
}

func parseOptimized(raw string) (*OptimizedCV, error) {
	doc := []byte(CleanJSONBlock(raw))
	if err := schemas.Validate(schemas.OptimizedCV, doc); err != nil {
		return nil, &Error{Message: "provider returned an invalid response", Cause: err}
	}
	var result OptimizedCV
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, &Error{Message: "failed to decode provider response", Cause: err}
	}
	return &result, nil
}

// EstimateLines approximates how many printed lines text occupies at width
// characters per line
func EstimateLines(text string, width int) int {
	if width <= 0 {
		width = LineWidth
	}
	lines := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		n := len([]rune(strings.TrimSpace(line)))
		if n == 0 {
			lines++
			continue
		}
		lines += (n + width - 1) / width
	}
	return lines
}
