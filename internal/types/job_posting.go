// Package types provides type definitions for structured data used throughout the cvgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// FetchErrorKind classifies why a job posting could not be analyzed
type FetchErrorKind string

const (
	// FetchInvalidURL means the URL could not be parsed or has no host
	FetchInvalidURL FetchErrorKind = "invalid_url"
	// FetchTimeout means the request exceeded its deadline
	FetchTimeout FetchErrorKind = "timeout"
	// FetchHTTPStatus means the server answered with a non-200 status
	FetchHTTPStatus FetchErrorKind = "http_status"
	// FetchNetwork covers connection-level failures
	FetchNetwork FetchErrorKind = "network"
	// FetchParse means the body could not be parsed as HTML
	FetchParse FetchErrorKind = "parse"
)

// FetchError tags an analysis whose fetch failed
type FetchError struct {
	Kind       FetchErrorKind `json:"kind"`
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code,omitempty"`
}

// JobSource describes where a posting came from
type JobSource struct {
	URL       string    `json:"url"`
	Site      string    `json:"site"`
	Domain    string    `json:"domain"`
	FetchedAt time.Time `json:"fetched_at"`
}

// JobPostingAnalysis holds the fields extracted from a job posting.
// The scraper is not guaranteed to populate any given field.
type JobPostingAnalysis struct {
	ID               string      `json:"id"`
	Title            string      `json:"title,omitempty"`
	Company          string      `json:"company,omitempty"`
	Location         string      `json:"location,omitempty"`
	Description      string      `json:"description,omitempty"`
	Responsibilities []string    `json:"responsibilities,omitempty"`
	Qualifications   []string    `json:"qualifications,omitempty"`
	RequiredSkills   []string    `json:"required_skills,omitempty"`
	DesiredSkills    []string    `json:"desired_skills,omitempty"`
	KeyTerms         []string    `json:"key_terms,omitempty"`
	JobType          string      `json:"job_type,omitempty"`
	ExperienceLevel  string      `json:"experience_level,omitempty"`
	PostedDate       string      `json:"posted_date,omitempty"`
	SalaryRange      string      `json:"salary_range,omitempty"`
	Source           JobSource   `json:"source"`
	FetchError       *FetchError `json:"fetch_error,omitempty"`
	Warnings         []string    `json:"warnings,omitempty"`
}

// Failed reports whether the analysis carries a fetch error
func (a *JobPostingAnalysis) Failed() bool {
	return a.FetchError != nil
}

// JobMatch summarizes how well a CV covers a posting's key terms
type JobMatch struct {
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	MatchPercentage float64  `json:"match_percentage"`
}
