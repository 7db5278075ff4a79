package profiles

import (
	"fmt"
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// Change describes one difference between two versions of a profile
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old,omitempty"`
	New   string `json:"new,omitempty"`
	Note  string `json:"note"`
}

// Diff lists the changes from prev to next. Entries are matched by
// employer+title, institution+degree and name rather than by position.
func Diff(prev, next *types.CVData) []Change {
	if prev == nil {
		prev = &types.CVData{}
	}
	if next == nil {
		next = &types.CVData{}
	}
	var changes []Change
	field := func(name, a, b string) {
		if a != b {
			changes = append(changes, Change{Field: name, Old: a, New: b, Note: "Updated " + name})
		}
	}

	pa, pb := prev.PersonalInfo, next.PersonalInfo
	field("personal_info.name.full", pa.Name.Full, pb.Name.Full)
	field("personal_info.title", pa.Title, pb.Title)
	field("personal_info.citizenship", pa.Citizenship, pb.Citizenship)
	field("personal_info.contact.email", pa.Contact.Email, pb.Contact.Email)
	field("personal_info.contact.phone", pa.Contact.Phone, pb.Contact.Phone)
	field("personal_info.contact.address", pa.Contact.Address, pb.Contact.Address)
	field("personal_info.contact.linkedin", pa.Contact.LinkedIn, pb.Contact.LinkedIn)
	field("personal_info.contact.github", pa.Contact.GitHub, pb.Contact.GitHub)
	field("personal_info.contact.website", pa.Contact.Website, pb.Contact.Website)
	field("professional_summary", prev.ProfessionalSummary, next.ProfessionalSummary)

	changes = append(changes, diffExperience(prev.Experience, next.Experience)...)
	changes = append(changes, diffEducation(prev.Education, next.Education)...)
	changes = append(changes, diffNames("skills", skillNames(prev.Skills), skillNames(next.Skills))...)
	changes = append(changes, diffNames("certifications", certNames(prev.Certifications), certNames(next.Certifications))...)
	return changes
}

func experienceKey(e types.Experience) string {
	return strings.ToLower(e.Employer + "|" + e.Title)
}

func diffExperience(prev, next []types.Experience) []Change {
	var changes []Change
	old := make(map[string]types.Experience, len(prev))
	for _, e := range prev {
		old[experienceKey(e)] = e
	}
	seen := make(map[string]bool, len(next))

	for _, e := range next {
		k := experienceKey(e)
		seen[k] = true
		o, ok := old[k]
		if !ok {
			changes = append(changes, Change{
				Field: "experience.add",
				New:   e.Title + " at " + e.Employer,
				Note:  fmt.Sprintf("Added new experience: %s at %s", e.Title, e.Employer),
			})
			continue
		}
		label := e.Title + " at " + e.Employer
		for _, f := range []struct{ name, a, b string }{
			{"start_date", o.StartDate, e.StartDate},
			{"end_date", o.EndDate, e.EndDate},
			{"location", o.Location, e.Location},
			{"grade_level", o.GradeLevel, e.GradeLevel},
			{"responsibilities", strings.Join(o.Responsibilities, "; "), strings.Join(e.Responsibilities, "; ")},
			{"achievements", strings.Join(o.Achievements, "; "), strings.Join(e.Achievements, "; ")},
		} {
			if f.a != f.b {
				changes = append(changes, Change{
					Field: "experience." + f.name,
					Old:   f.a,
					New:   f.b,
					Note:  fmt.Sprintf("Updated %s for %s", f.name, label),
				})
			}
		}
	}
	for _, e := range prev {
		if !seen[experienceKey(e)] {
			changes = append(changes, Change{
				Field: "experience.remove",
				Old:   e.Title + " at " + e.Employer,
				Note:  fmt.Sprintf("Removed experience: %s at %s", e.Title, e.Employer),
			})
		}
	}
	return changes
}

func educationLabel(e types.Education) string {
	if e.Degree == "" {
		return e.Institution
	}
	return e.Degree + ", " + e.Institution
}

func diffEducation(prev, next []types.Education) []Change {
	a := make([]string, 0, len(prev))
	for _, e := range prev {
		a = append(a, educationLabel(e))
	}
	b := make([]string, 0, len(next))
	for _, e := range next {
		b = append(b, educationLabel(e))
	}
	return diffNames("education", a, b)
}

func skillNames(skills []types.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

func certNames(certs []types.Certification) []string {
	out := make([]string, 0, len(certs))
	for _, c := range certs {
		out = append(out, c.Name)
	}
	return out
}

// diffNames reports additions then removals, case-insensitively
func diffNames(section string, prev, next []string) []Change {
	has := func(list []string) map[string]bool {
		m := make(map[string]bool, len(list))
		for _, s := range list {
			m[strings.ToLower(s)] = true
		}
		return m
	}
	old, cur := has(prev), has(next)

	var changes []Change
	for _, s := range next {
		if !old[strings.ToLower(s)] {
			changes = append(changes, Change{Field: section + ".add", New: s, Note: "Added " + s})
		}
	}
	for _, s := range prev {
		if !cur[strings.ToLower(s)] {
			changes = append(changes, Change{Field: section + ".remove", Old: s, Note: "Removed " + s})
		}
	}
	return changes
}
