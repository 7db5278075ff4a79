package parsing

import (
	"regexp"
	"strings"
)

// sectionKind identifies a recognized profile section
type sectionKind int

const (
	sectionUnknown sectionKind = iota
	sectionContact
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
	sectionCertifications
	sectionProjects
	sectionLanguages
)

func (k sectionKind) String() string {
	switch k {
	case sectionContact:
		return "contact"
	case sectionSummary:
		return "summary"
	case sectionExperience:
		return "experience"
	case sectionEducation:
		return "education"
	case sectionSkills:
		return "skills"
	case sectionCertifications:
		return "certifications"
	case sectionProjects:
		return "projects"
	case sectionLanguages:
		return "languages"
	default:
		return "unknown"
	}
}

// sectionNames maps normalized heading text to a section kind
var sectionNames = map[string]sectionKind{
	"contact":                                sectionContact,
	"contact information":                    sectionContact,
	"contact info":                           sectionContact,
	"personal information":                   sectionContact,
	"personal info":                          sectionContact,
	"summary":                                sectionSummary,
	"profile":                                sectionSummary,
	"professional summary":                   sectionSummary,
	"professional profile":                   sectionSummary,
	"about":                                  sectionSummary,
	"about me":                               sectionSummary,
	"objective":                              sectionSummary,
	"career objective":                       sectionSummary,
	"experience":                             sectionExperience,
	"work experience":                        sectionExperience,
	"professional experience":                sectionExperience,
	"employment":                             sectionExperience,
	"employment history":                     sectionExperience,
	"work history":                           sectionExperience,
	"career history":                         sectionExperience,
	"education":                              sectionEducation,
	"education and training":                 sectionEducation,
	"academic background":                    sectionEducation,
	"skills":                                 sectionSkills,
	"technical skills":                       sectionSkills,
	"core competencies":                      sectionSkills,
	"summary of skills":                      sectionSkills,
	"key skills":                             sectionSkills,
	"certifications":                         sectionCertifications,
	"certificates":                           sectionCertifications,
	"certifications and licenses":            sectionCertifications,
	"licenses and certifications":            sectionCertifications,
	"projects":                               sectionProjects,
	"personal projects":                      sectionProjects,
	"selected projects":                      sectionProjects,
	"volunteer experience":                   sectionProjects,
	"volunteer community service experience": sectionProjects,
	"languages":                              sectionLanguages,
}

var nonWordRe = regexp.MustCompile(`[^a-z]+`)

// classifySection maps a heading to a section kind.
// Case, punctuation and "&" vs "and" are ignored.
func classifySection(title string) sectionKind {
	key := strings.ToLower(title)
	key = strings.ReplaceAll(key, "&", " and ")
	key = strings.TrimSpace(nonWordRe.ReplaceAllString(key, " "))
	if kind, ok := sectionNames[key]; ok {
		return kind
	}
	return sectionUnknown
}

var (
	atxHeadingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	boldHeadingRe = regexp.MustCompile(`^\*\*([^*]+?)\*\*:?$`)
)

// heading reports whether a line is a heading and returns its level and text.
// A line that is entirely bold and names a known section counts as a level 2
// heading, which is how many exported word-processor CVs mark sections.
func heading(line string) (level int, text string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if m := atxHeadingRe.FindStringSubmatch(trimmed); m != nil {
		return len(m[1]), stripEmphasis(m[2]), true
	}
	if m := boldHeadingRe.FindStringSubmatch(trimmed); m != nil {
		if classifySection(m[1]) != sectionUnknown {
			return 2, strings.TrimSpace(m[1]), true
		}
	}
	return 0, "", false
}

// line is a single source line with its 1-based position
type line struct {
	text string
	no   int
}

// section is a run of lines under one heading
type section struct {
	kind  sectionKind
	title string
	level int
	start int
	lines []line
}

// splitSections groups lines by heading. Lines before the first heading and
// lines under the name heading go to a leading contact section. Headings
// deeper than the enclosing section that name no section stay in its lines
// so entry parsers can use them.
func splitSections(lines []string) (name string, nameLine int, sections []*section, warnings []Warning) {
	current := &section{kind: sectionContact, title: "header"}
	sections = append(sections, current)

	for i, raw := range lines {
		no := i + 1
		level, text, isHeading := heading(raw)
		if !isHeading {
			current.lines = append(current.lines, line{text: raw, no: no})
			continue
		}

		kind := classifySection(text)
		switch {
		case kind != sectionUnknown:
			current = &section{kind: kind, title: text, level: level, start: no}
			sections = append(sections, current)
		case name == "" && (level == 1 || len(sections) == 1):
			name, nameLine = text, no
			current = sections[0]
		case current.kind != sectionUnknown && current.kind != sectionContact && level > current.level:
			current.lines = append(current.lines, line{text: raw, no: no})
		case current.kind == sectionUnknown && level > current.level:
			// nested under an ignored section
		default:
			warnings = append(warnings, Warning{
				Kind:    WarnUnknownSection,
				Section: text,
				Line:    no,
				Message: "ignoring unrecognized section \"" + text + "\"",
			})
			current = &section{kind: sectionUnknown, title: text, level: level, start: no}
		}
	}
	return name, nameLine, sections, warnings
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	italicRe = regexp.MustCompile(`(^|[^*])\*([^*]+)\*`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bulletRe = regexp.MustCompile(`^(\s*)(?:[-*+•]|\d+[.)])\s+(.*)$`)
)

// stripEmphasis removes bold and italic markers
func stripEmphasis(s string) string {
	s = boldRe.ReplaceAllString(s, "$1$2")
	s = italicRe.ReplaceAllString(s, "$1$2")
	return strings.TrimSpace(s)
}

// bullet reports whether a line is a list item; indent is the leading width
func bullet(s string) (indent int, text string, ok bool) {
	m := bulletRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	return len(strings.ReplaceAll(m[1], "\t", "    ")), strings.TrimSpace(m[2]), true
}
