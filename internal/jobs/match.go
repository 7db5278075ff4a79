package jobs

import (
	"math"
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// Match reports which of the posting's key terms appear in the CV
func Match(cv *types.CVData, analysis *types.JobPostingAnalysis) types.JobMatch {
	if analysis == nil {
		return MatchText("", nil)
	}
	return MatchText(CVText(cv), analysis.KeyTerms)
}

// MatchText reports which terms appear in text as whole words or phrases.
// The percentage is rounded to one decimal place and is 0 when there are no terms.
func MatchText(text string, terms []string) types.JobMatch {
	lower := strings.ToLower(text)
	match := types.JobMatch{Matched: []string{}, Missing: []string{}}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		if termPattern(term).MatchString(lower) {
			match.Matched = append(match.Matched, term)
		} else {
			match.Missing = append(match.Missing, term)
		}
	}
	if total := len(match.Matched) + len(match.Missing); total > 0 {
		match.MatchPercentage = math.Round(float64(len(match.Matched))/float64(total)*1000) / 10
	}
	return match
}

// CVText flattens the searchable content of a CV into one string
func CVText(cv *types.CVData) string {
	if cv == nil {
		return ""
	}
	parts := []string{cv.PersonalInfo.Title, cv.PersonalInfo.Summary, cv.ProfessionalSummary}
	for _, e := range cv.Experience {
		parts = append(parts, e.Title, e.Employer)
		parts = append(parts, e.Responsibilities...)
		parts = append(parts, e.Achievements...)
	}
	for _, e := range cv.Education {
		parts = append(parts, e.Degree, e.Field, e.Institution)
	}
	for _, s := range cv.Skills {
		parts = append(parts, s.Name, s.Category)
	}
	for _, c := range cv.Certifications {
		parts = append(parts, c.Name, c.Issuer)
	}
	for _, p := range cv.Projects {
		parts = append(parts, p.Name, p.Description)
		parts = append(parts, p.Technologies...)
	}
	return strings.Join(parts, "\n")
}
