package ats

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/cvgen/internal/types"
)

// Baseline is the score of content that triggers no rule
const Baseline = 100

// contactWindow is how many non-empty lines are searched for contact details
const contactWindow = 10

// Rule is one entry of the scoring table
type Rule struct {
	Type    types.ATSIssueType
	Delta   int
	Message string
	Fix     string
	detect  func(d *document) (bool, string)
}

// rules is evaluated in order; every triggered rule contributes its delta
var rules = []Rule{
	{
		Type:    types.IssueComplexFormatting,
		Delta:   -3,
		Message: "Complex formatting such as tables, HTML markup or multiple columns may not parse correctly.",
		Fix:     "Use a single-column layout with plain headings, paragraphs and bullet lists.",
		detect:  detectComplexFormatting,
	},
	{
		Type:    types.IssueUnusualHeadings,
		Delta:   -2,
		Message: "Non-standard section headings may not be recognized by applicant tracking systems.",
		Fix:     "Use conventional headings such as Experience, Education and Skills.",
		detect:  detectUnusualHeadings,
	},
	{
		Type:    types.IssueMissingDates,
		Delta:   -8,
		Message: "No employment or education dates were found.",
		Fix:     "Add dates to each position and degree using MM/YYYY or Month YYYY, and Present for current roles.",
		detect:  detectMissingDates,
	},
	{
		Type:    types.IssueGraphics,
		Delta:   -3,
		Message: "Images, icons or decorative symbols were found and are usually dropped or garbled by parsers.",
		Fix:     "Remove images and replace icons or symbols with plain text.",
		detect:  detectGraphics,
	},
	{
		Type:    types.IssueContactInfo,
		Delta:   -3,
		Message: "No email address or phone number appears near the top of the document.",
		Fix:     "Put your email address and phone number directly below your name.",
		detect:  detectMissingContact,
	},
}

// Rules returns the scoring table in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// StandardHeadings lists the section names applicant tracking systems
// recognize, normalized to lower case
var StandardHeadings = toSet(
	"summary", "professional summary", "profile", "professional profile", "objective",
	"career objective", "about", "about me", "overview",
	"experience", "work experience", "professional experience", "employment",
	"employment history", "work history", "career history", "relevant experience",
	"education", "education and training", "academic background", "training",
	"skills", "technical skills", "core competencies", "competencies", "key skills",
	"skills summary", "summary of skills", "qualifications", "summary of qualifications",
	"certifications", "certificates", "licenses", "licenses and certifications",
	"projects", "key projects", "languages", "publications", "presentations",
	"awards", "honors", "honors and awards", "achievements", "accomplishments",
	"volunteer experience", "volunteer", "community involvement", "leadership",
	"activities", "interests", "references", "affiliations", "memberships",
	"professional affiliations", "contact", "contact information", "personal information",
	"research", "research experience", "research projects", "research expertise",
	"research interests", "teaching", "teaching experience", "academic appointments",
	"grants", "grants and funding", "service", "professional development",
	"additional information", "military service", "security clearance",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var (
	headingRe       = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	tableRowRe      = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	tableSepRe      = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?\s*$`)
	htmlTagRe       = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*(\s[^<>]*)?/?>`)
	multiColumnRe   = regexp.MustCompile(`(?i)column-count|columns\s*:|display\s*:\s*(grid|flex)|:::\s*columns`)
	columnGapRe     = regexp.MustCompile(`\S(\t+| {8,})\S`)
	dateRe          = regexp.MustCompile(`(?i)\b(19|20)\d{2}\b|\b(0?[1-9]|1[0-2])/\d{2,4}\b|\bpresent\b`)
	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	htmlImageRe     = regexp.MustCompile(`(?i)<(img|svg|picture)\b`)
	emailRe         = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe         = regexp.MustCompile(`(\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
)

// allowedSymbols are non-ASCII symbols that are safe in plain text
var allowedSymbols = map[rune]bool{'©': true, '®': true, '™': true, '°': true, '±': true, '×': true}

// document is the preprocessed input shared by the rules
type document struct {
	raw      string
	lines    []string
	nonEmpty []string
}

func newDocument(content string) *document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	d := &document{raw: content, lines: strings.Split(content, "\n")}
	for _, line := range d.lines {
		if strings.TrimSpace(line) != "" {
			d.nonEmpty = append(d.nonEmpty, line)
		}
	}
	return d
}

func detectComplexFormatting(d *document) (bool, string) {
	tableRows := 0
	for _, line := range d.lines {
		if tableSepRe.MatchString(line) && strings.Contains(line, "|") {
			return true, "markdown table"
		}
		if tableRowRe.MatchString(line) {
			tableRows++
		}
	}
	if tableRows >= 2 {
		return true, "markdown table"
	}
	if m := htmlTagRe.FindString(d.raw); m != "" {
		return true, m
	}
	if m := multiColumnRe.FindString(d.raw); m != "" {
		return true, m
	}
	for _, line := range d.nonEmpty {
		if columnGapRe.MatchString(strings.TrimSpace(line)) {
			return true, "multi-column text"
		}
	}
	return false, ""
}

// NormalizeHeading lower-cases a heading and strips emphasis, trailing
// colons and ampersands so it can be compared against StandardHeadings
func NormalizeHeading(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Trim(h, "*_:` ")
	h = strings.ReplaceAll(h, "&", " and ")
	return strings.Join(strings.Fields(h), " ")
}

// detectUnusualHeadings checks level 1 and 2 headings. The first level 1
// heading is the candidate's name and deeper headings are entries, so
// neither is checked.
func detectUnusualHeadings(d *document) (bool, string) {
	seenTitle := false
	for _, line := range d.lines {
		m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		level := len(m[1])
		if level == 1 && !seenTitle {
			seenTitle = true
			continue
		}
		if level > 2 {
			continue
		}
		if !StandardHeadings[NormalizeHeading(m[2])] {
			return true, strings.TrimSpace(m[2])
		}
	}
	return false, ""
}

func detectMissingDates(d *document) (bool, string) {
	return !dateRe.MatchString(d.raw), ""
}

func detectGraphics(d *document) (bool, string) {
	if m := markdownImageRe.FindString(d.raw); m != "" {
		return true, m
	}
	if m := htmlImageRe.FindString(d.raw); m != "" {
		return true, m
	}
	for _, r := range d.raw {
		if isDecorative(r) {
			return true, string(r)
		}
	}
	return false, ""
}

// isDecorative reports whether r is a non-ASCII symbol outside letters,
// digits and common punctuation
func isDecorative(r rune) bool {
	if r <= unicode.MaxASCII || allowedSymbols[r] {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.IsPunct(r) {
		return false
	}
	// Currency signs are fine; other symbol classes and private use are not
	return !unicode.Is(unicode.Sc, r)
}

func detectMissingContact(d *document) (bool, string) {
	window := d.nonEmpty
	if len(window) > contactWindow {
		window = window[:contactWindow]
	}
	for _, line := range window {
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			return false, ""
		}
	}
	return true, ""
}
