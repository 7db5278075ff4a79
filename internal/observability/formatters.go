// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cvgen/internal/llm"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/types"
	"github.com/jonathan/cvgen/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for i, item := range items {
		if i == limit {
			fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
			break
		}
		fmt.Fprintf(sb, "  • %s\n", item)
	}
}

// PrintJobAnalysis outputs a summary of one analyzed posting
func (p *Printer) PrintJobAnalysis(a *types.JobPostingAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "URL:      %s\n", a.Source.URL)
	if a.FetchError != nil {
		fmt.Fprintf(&sb, "Status:   failed (%s)\n", a.FetchError.Kind)
		fmt.Fprintf(&sb, "Reason:   %s", a.FetchError.Message)
		p.printBox("JOB POSTING", sb.String())
		return
	}
	fmt.Fprintf(&sb, "Title:    %s\n", a.Title)
	fmt.Fprintf(&sb, "Company:  %s\n", a.Company)
	if a.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", a.Location)
	}
	if a.JobType != "" || a.ExperienceLevel != "" {
		fmt.Fprintf(&sb, "Type:     %s %s\n", a.JobType, a.ExperienceLevel)
	}
	if a.SalaryRange != "" {
		fmt.Fprintf(&sb, "Salary:   %s\n", a.SalaryRange)
	}
	sb.WriteString("\n")
	writeList(&sb, "Required skills", a.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Desired skills", a.DesiredSkills, 3)
	if len(a.KeyTerms) > 0 {
		fmt.Fprintf(&sb, "Key terms: %s\n", strings.Join(a.KeyTerms[:min(len(a.KeyTerms), 8)], ", "))
	}
	for _, w := range a.Warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w)
	}
	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs counts for a batch of analyses
func (p *Printer) PrintBatchSummary(results []*types.JobPostingAnalysis) {
	failed := 0
	kinds := map[types.FetchErrorKind]int{}
	for _, r := range results {
		if r != nil && r.FetchError != nil {
			failed++
			kinds[r.FetchError.Kind]++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Postings analyzed: %d\n", len(results))
	fmt.Fprintf(&sb, "Succeeded:         %d\n", len(results)-failed)
	fmt.Fprintf(&sb, "Failed:            %d", failed)
	for _, k := range []types.FetchErrorKind{types.FetchInvalidURL, types.FetchTimeout, types.FetchHTTPStatus, types.FetchNetwork, types.FetchParse} {
		if kinds[k] > 0 {
			fmt.Fprintf(&sb, "\n  %-12s %d", k, kinds[k])
		}
	}
	p.printBox("BATCH SUMMARY", sb.String())
}

// PrintATSAnalysis outputs the score, issues and improvements
func (p *Printer) PrintATSAnalysis(a *types.ATSAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100\n", a.Score)
	sb.WriteString(a.Recommendation + "\n")
	if len(a.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range a.Issues {
			fmt.Fprintf(&sb, "⚠ %s (%d)\n", issue.Type, issue.Score)
			fmt.Fprintf(&sb, "  %s\n", issue.Message)
			if issue.Detected != "" {
				fmt.Fprintf(&sb, "  found: %s\n", issue.Detected)
			}
		}
	}
	if len(a.Improvements) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Improvements", a.Improvements, len(a.Improvements))
	}
	if a.Keywords != nil {
		fmt.Fprintf(&sb, "\nKeyword match: %.1f%% (%d of %d)\n", a.Keywords.MatchPercentage,
			len(a.Keywords.Matched), len(a.Keywords.Matched)+len(a.Keywords.Missing))
		writeList(&sb, "Missing", a.Keywords.Missing, maxItemsToShow)
	}
	for _, w := range a.Warnings {
		fmt.Fprintf(&sb, "Note: %s\n", w)
	}
	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerification outputs the result of verifying one PDF
func (p *Printer) PrintVerification(r *validation.Result) {
	if r == nil {
		return
	}
	mark := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "no"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:        %s\n", r.Path)
	fmt.Fprintf(&sb, "Valid:       %s\n", mark(r.Valid))
	fmt.Fprintf(&sb, "Has content: %s\n", mark(r.HasContent))
	fmt.Fprintf(&sb, "Pages:       %d\n", r.PageCount)
	fmt.Fprintf(&sb, "Characters:  %d\n", r.ContentLength)
	for _, issue := range r.Issues {
		fmt.Fprintf(&sb, "✗ %s\n", issue)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w)
	}
	if preview := r.Preview(); preview != "" {
		fmt.Fprintf(&sb, "\n%s\n", preview)
	}
	p.printBox("PDF VERIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParseResult outputs what the markdown parser recovered
func (p *Printer) PrintParseResult(res *parsing.ParseResult) {
	if res == nil || res.Data == nil {
		return
	}
	d := res.Data

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:           %s\n", d.PersonalInfo.Name.Full)
	fmt.Fprintf(&sb, "Experience:     %d entries\n", len(d.Experience))
	fmt.Fprintf(&sb, "Education:      %d entries\n", len(d.Education))
	fmt.Fprintf(&sb, "Skills:         %d\n", len(d.Skills))
	fmt.Fprintf(&sb, "Certifications: %d\n", len(d.Certifications))
	fmt.Fprintf(&sb, "Confidence:     %.0f%%\n", res.Confidence*100)
	if len(res.Warnings) > 0 {
		sb.WriteString("\n")
		for i, w := range res.Warnings {
			if i == maxItemsToShow {
				fmt.Fprintf(&sb, "... and %d more warnings\n", len(res.Warnings)-maxItemsToShow)
				break
			}
			fmt.Fprintf(&sb, "⚠ %s\n", w.String())
		}
	}
	p.printBox("PARSED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs what the AI optimizer changed
func (p *Printer) PrintOptimization(o *llm.OptimizedCV) {
	if o == nil {
		return
	}

	var sb strings.Builder
	if !o.Optimized {
		sb.WriteString("Using original content\n")
	} else {
		fmt.Fprintf(&sb, "Model: %s\n", o.Model)
	}
	if o.Warning != "" {
		fmt.Fprintf(&sb, "⚠ %s\n", o.Warning)
	}
	if o.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n\n", o.Summary)
	}
	writeList(&sb, "Key skills", o.KeySkills, 8)
	writeList(&sb, "Highlights", o.Highlights, maxItemsToShow)
	writeList(&sb, "Changes", o.Optimizations, maxItemsToShow)
	p.printBox("AI OPTIMIZATION", strings.TrimSuffix(sb.String(), "\n"))
}
