// Package ats scores résumé content for applicant tracking system compatibility
// with a fixed, ordered rule table.
package ats

import (
	"fmt"
	"strings"

	"github.com/jonathan/cvgen/internal/ingestion"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/types"
)

// keywordThreshold is the match percentage below which missing keywords are
// listed as an improvement
const keywordThreshold = 50.0

// maxListedKeywords caps the missing keywords named in an improvement
const maxListedKeywords = 10

// minWords is the length below which content is flagged as thin
const minWords = 150

// Analyze scores content against the rule table. The score starts at
// Baseline, drops by each triggered rule's delta and never goes below 0.
func Analyze(content string) *types.ATSAnalysis {
	d := newDocument(content)
	analysis := &types.ATSAnalysis{
		Score:        Baseline,
		Issues:       []types.ATSIssue{},
		Improvements: []string{},
	}

	for _, r := range rules {
		triggered, detected := r.detect(d)
		if !triggered {
			continue
		}
		analysis.Issues = append(analysis.Issues, types.ATSIssue{
			Type:     r.Type,
			Score:    r.Delta,
			Message:  r.Message,
			Fix:      r.Fix,
			Detected: detected,
		})
		analysis.Improvements = append(analysis.Improvements, r.Fix)
		analysis.Score += r.Delta
	}
	if analysis.Score < 0 {
		analysis.Score = 0
	}

	words := len(strings.Fields(content))
	switch {
	case words == 0:
		analysis.Warnings = append(analysis.Warnings, "content is empty")
	case words < minWords:
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("content is short (%d words); most résumés run 300 words or more", words))
	}

	analysis.Recommendation = Recommendation(analysis.Score)
	return analysis
}

// AnalyzeWithTerms scores content and also checks it for the given job
// keywords. Keyword coverage is reported but does not change the score.
func AnalyzeWithTerms(content string, terms []string) *types.ATSAnalysis {
	analysis := Analyze(content)
	if len(terms) == 0 {
		return analysis
	}

	match := jobs.MatchText(content, terms)
	analysis.Keywords = &match
	if match.MatchPercentage < keywordThreshold && len(match.Missing) > 0 {
		missing := match.Missing
		if len(missing) > maxListedKeywords {
			missing = missing[:maxListedKeywords]
		}
		analysis.Improvements = append(analysis.Improvements,
			fmt.Sprintf("Work these job keywords into your experience and skills: %s.", strings.Join(missing, ", ")))
	}
	return analysis
}

// AnalyzeFile extracts text from a .txt, .md, .pdf or .docx file and
// scores it. terms may be nil.
func AnalyzeFile(path string, terms []string) (*types.ATSAnalysis, error) {
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return AnalyzeWithTerms(text, terms), nil
}

// Recommendation returns the summary advice for a score
func Recommendation(score int) string {
	switch {
	case score >= 90:
		return "Your résumé is highly ATS-compatible. Minor improvements possible."
	case score >= 70:
		return "Good ATS compatibility. Address the highlighted issues to improve parsing."
	case score >= 50:
		return "Moderate ATS compatibility. Several important issues need attention."
	default:
		return "Low ATS compatibility. Major revisions are recommended."
	}
}
