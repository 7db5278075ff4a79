// Package templates provides the CV template registry and the built-in sector templates.
package templates

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/jonathan/cvgen/internal/types"
)

//go:embed files/*.tmpl files/*.css
var files embed.FS

// Section names a part of the CV that can be left out of a render
type Section string

// Sections that Options can exclude
const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
	SectionLanguages      Section = "languages"
)

// Options tunes a single render
type Options struct {
	// Exclude lists sections to leave out. The name header is always rendered.
	Exclude []Section `json:"exclude,omitempty"`
	// EmployerOrder lists employers to show first, in this order. Other
	// entries follow in their original order.
	EmployerOrder []string `json:"employer_order,omitempty"`
}

// Template renders CVData into markdown with inline HTML blocks.
// Implementations must be stateless and safe for concurrent use.
type Template interface {
	Name() string
	Render(data *types.CVData, opts Options) (string, error)
	Styles() string
}

// Metadata describes a template for listings and suggestions
type Metadata struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	SuitableFor []string `json:"suitable_for"`
}

// builtin is a template backed by an embedded text/template file
type builtin struct {
	meta Metadata
	tmpl *template.Template
	css  string
}

var funcs = template.FuncMap{
	"md":      EscapeMarkdown,
	"html":    EscapeHTML,
	"period":  func(e types.Experience) string { return e.Period() },
	"contact": contactLine,
	"hours":   hoursPerWeek,
	"skills":  skillList,
	"join":    strings.Join,
}

// newBuiltin parses files/<id>.md.tmpl on top of the shared partials and
// loads files/<id>.css
func newBuiltin(meta Metadata) (*builtin, error) {
	partials, err := files.ReadFile("files/partials.tmpl")
	if err != nil {
		return nil, &TemplateError{Template: meta.ID, Message: "failed to read partials", Cause: err}
	}
	src, err := files.ReadFile("files/" + meta.ID + ".md.tmpl")
	if err != nil {
		return nil, &TemplateError{Template: meta.ID, Message: "failed to read template file", Cause: err}
	}
	css, err := files.ReadFile("files/" + meta.ID + ".css")
	if err != nil {
		return nil, &TemplateError{Template: meta.ID, Message: "failed to read stylesheet", Cause: err}
	}

	tmpl, err := template.New(meta.ID).Funcs(funcs).Parse(string(partials))
	if err == nil {
		tmpl, err = tmpl.Parse(string(src))
	}
	if err != nil {
		return nil, &TemplateError{Template: meta.ID, Message: "failed to parse template", Cause: err}
	}
	return &builtin{meta: meta, tmpl: tmpl, css: string(css)}, nil
}

func (b *builtin) Name() string { return b.meta.ID }

func (b *builtin) Styles() string { return b.css }

// Metadata returns the template's listing information
func (b *builtin) Metadata() Metadata { return b.meta }

func (b *builtin) Render(data *types.CVData, opts Options) (string, error) {
	if data == nil {
		return "", &TemplateError{Template: b.meta.ID, Message: "no CV data"}
	}
	v := newView(data, opts)

	var result strings.Builder
	if err := b.tmpl.Execute(&result, v); err != nil {
		return "", &TemplateError{Template: b.meta.ID, Message: "failed to execute template", Cause: err}
	}
	return strings.TrimSpace(result.String()) + "\n", nil
}

// view is the value passed to the embedded templates
type view struct {
	CV         *types.CVData
	Name       string
	Experience []types.Experience
	excluded   map[Section]bool
}

func newView(data *types.CVData, opts Options) *view {
	// Copy so normalization never touches the caller's data
	cv := *data
	cv.Normalize()

	excluded := make(map[Section]bool, len(opts.Exclude))
	for _, s := range opts.Exclude {
		excluded[s] = true
	}
	return &view{
		CV:         &cv,
		Name:       cv.PersonalInfo.Name.Full,
		Experience: orderExperience(cv.Experience, opts.EmployerOrder),
		excluded:   excluded,
	}
}

// Show reports whether a section should be rendered
func (v *view) Show(section string) bool {
	return !v.excluded[Section(section)]
}

// orderExperience moves employers named in order to the front, keeping the
// relative order of everything else
func orderExperience(exp []types.Experience, order []string) []types.Experience {
	out := make([]types.Experience, len(exp))
	copy(out, exp)
	if len(order) == 0 {
		return out
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[strings.ToLower(name)] = i
	}
	indexOf := func(e types.Experience) int {
		if i, ok := rank[strings.ToLower(e.Employer)]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return indexOf(out[i]) < indexOf(out[j])
	})
	return out
}

// contactLine joins the non-empty contact fields with " | ", escaped for markdown
func contactLine(cv *types.CVData) string {
	c := cv.PersonalInfo.Contact
	var parts []string
	for _, s := range []string{c.Email, c.Phone, c.Address, c.LinkedIn, c.GitHub, c.Website} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, EscapeMarkdown(s))
		}
	}
	return strings.Join(parts, " | ")
}

// hoursPerWeek reports declared hours, or the usual figure for the employment type
func hoursPerWeek(e types.Experience) string {
	switch {
	case e.HoursPerWeek > 0:
		return strconv.Itoa(e.HoursPerWeek)
	case e.EmploymentType == "part-time":
		return "20"
	default:
		return "40"
	}
}

// skillList renders skills as "Name (level)" joined by sep, escaped for markdown
func skillList(sep string, skills []types.Skill) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		entry := EscapeMarkdown(s.Name)
		if s.Level != "" {
			entry += fmt.Sprintf(" (%s)", EscapeMarkdown(s.Level))
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, sep)
}
