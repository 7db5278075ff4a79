// Package types provides type definitions for structured data used throughout the cvgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// PlaceholderName is used when no name could be found for a profile.
const PlaceholderName = "Unnamed Candidate"

// CVData is the canonical structured representation of a résumé's content.
// Experience, Education and Skills keep presentation order.
type CVData struct {
	PersonalInfo        PersonalInfo    `json:"personal_info"`
	ProfessionalSummary string          `json:"professional_summary,omitempty"`
	Experience          []Experience    `json:"experience"`
	Education           []Education     `json:"education"`
	Skills              []Skill         `json:"skills"`
	Certifications      []Certification `json:"certifications,omitempty"`
	Projects            []Project       `json:"projects,omitempty"`
	Languages           []Language      `json:"languages,omitempty"`
}

// PersonalInfo holds the candidate's identity and contact block
type PersonalInfo struct {
	Name        Name        `json:"name"`
	Title       string      `json:"title,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Contact     ContactInfo `json:"contact"`
	Citizenship string      `json:"citizenship,omitempty"`
}

// Name holds the name parts of a candidate
type Name struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Full  string `json:"full"`
}

// ContactInfo holds contact details
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience is a single position held
type Experience struct {
	Employer         string   `json:"employer"`
	Title            string   `json:"title"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Current          bool     `json:"current,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"` // full-time, part-time, contract, academic, government
	GradeLevel       string   `json:"grade_level,omitempty"`     // e.g. GS-13, for government positions
	Supervisor       string   `json:"supervisor,omitempty"`
	HoursPerWeek     int      `json:"hours_per_week,omitempty"`
}

// Education is a single degree or program
type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Year        string   `json:"year,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Honors      []string `json:"honors,omitempty"`
}

// Skill is a named skill with an optional level
type Skill struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Project is a side or portfolio project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Language is a spoken language with proficiency
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Normalize fills derived fields so the CVData invariants hold:
// Name.Full is always populated and nil slices become empty.
func (d *CVData) Normalize() {
	n := &d.PersonalInfo.Name
	n.Full = strings.TrimSpace(n.Full)
	if n.Full == "" {
		n.Full = strings.TrimSpace(strings.Join([]string{n.First, n.Last}, " "))
	}
	if n.Full == "" {
		n.Full = PlaceholderName
	}
	if n.First == "" && n.Last == "" && n.Full != PlaceholderName {
		n.First, n.Last = SplitName(n.Full)
	}

	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
}

// SplitName splits a full name into first and last parts.
// Everything after the first word is the last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// Period returns the display date range for an experience entry
func (e Experience) Period() string {
	end := e.EndDate
	if end == "" || e.Current {
		end = "Present"
	}
	if e.StartDate == "" {
		return end
	}
	return e.StartDate + " - " + end
}

// SkillNames returns the skill names in order
func (d *CVData) SkillNames() []string {
	names := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		names = append(names, s.Name)
	}
	return names
}

// IsGovernment reports whether the experience entry is a government position
func (e Experience) IsGovernment() bool {
	return e.EmploymentType == "government" || e.GradeLevel != ""
}

// IsAcademic reports whether the experience entry is an academic position
func (e Experience) IsAcademic() bool {
	switch e.EmploymentType {
	case "academic", "research", "teaching":
		return true
	}
	return false
}
