// Package types provides type definitions for structured data used throughout the cvgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ATSIssueType names a tracked formatting issue
type ATSIssueType string

// Tracked issue types, in evaluation order
const (
	IssueComplexFormatting ATSIssueType = "COMPLEX_FORMATTING"
	IssueUnusualHeadings   ATSIssueType = "UNUSUAL_HEADINGS"
	IssueMissingDates      ATSIssueType = "MISSING_DATES"
	IssueGraphics          ATSIssueType = "GRAPHICS"
	IssueContactInfo       ATSIssueType = "CONTACT_INFO"
)

// ATSIssue is a triggered rule with its fixed score delta
type ATSIssue struct {
	Type     ATSIssueType `json:"type"`
	Score    int          `json:"score"` // negative delta applied to the baseline
	Message  string       `json:"message"`
	Fix      string       `json:"fix"`
	Detected string       `json:"detected,omitempty"`
}

// ATSAnalysis is the result of an ATS compatibility check
type ATSAnalysis struct {
	Score          int        `json:"score"`
	Issues         []ATSIssue `json:"issues"`
	Improvements   []string   `json:"improvements"`
	Warnings       []string   `json:"warnings,omitempty"`
	Recommendation string     `json:"recommendation"`
	Keywords       *JobMatch  `json:"keywords,omitempty"`
}

// HasIssue reports whether an issue of the given type was triggered
func (a *ATSAnalysis) HasIssue(t ATSIssueType) bool {
	for _, issue := range a.Issues {
		if issue.Type == t {
			return true
		}
	}
	return false
}
