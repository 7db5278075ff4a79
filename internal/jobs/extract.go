package jobs

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/types"
)

// maxListItemLength drops list items that are really paragraphs of markup
const maxListItemLength = 400

var (
	responsibilityHeading = regexp.MustCompile(`responsib|duties|functions|what you('ll| will)? do|day to day|the role`)
	qualificationHeading  = regexp.MustCompile(`qualif|requir|skills|what you('ll| will)? (need|bring)|experience|background|who you are`)
	jobTypeRe             = regexp.MustCompile(`(?i)\b(full[- ]time|part[- ]time|contract|internship|temporary|seasonal)\b`)
	experienceLevelRe     = regexp.MustCompile(`(?i)(\d+)\+?\s+years?(?:\s+of)?\s+(?:\w+\s+)?experience`)
	salaryRe              = regexp.MustCompile(`(?i)\$\s?[0-9][0-9,.]*\s?k?\s*(?:-|to|–)\s*\$?\s?[0-9][0-9,.]*\s?k?(?:\s*(?:per|/|an?)\s*(?:hour|hr|year|yr|annum))?`)
)

var captchaSelectors = []string{
	".g-recaptcha",
	"iframe[src*='recaptcha']",
	".h-captcha",
	"iframe[src*='hcaptcha']",
	"#challenge-form",
	"#captcha",
	"[id*='captcha']",
	"[class*='captcha']",
}

var botPhrases = []string{
	"bot detected",
	"automated access",
	"are you a robot",
	"unusual traffic",
	"verify you are human",
	"access denied",
}

var loginSelectors = []string{
	"input[name='session_key']",
	"form.login-form",
	"#login",
	"input[type='password']",
}

// extractFields fills the analysis from a parsed posting. doc is modified.
func extractFields(doc *goquery.Document, platform fetch.Platform, analysis *types.JobPostingAnalysis) {
	fields := fetch.PlatformFieldSelectors(platform)
	generic := fetch.PlatformFieldSelectors(fetch.PlatformUnknown)

	analysis.Title = firstText(doc, fields.Title, generic.Title)
	analysis.Company = firstText(doc, fields.Company, generic.Company)
	analysis.Location = firstText(doc, fields.Location, generic.Location)
	analysis.PostedDate = firstText(doc, []string{"[itemprop='datePosted']", "meta[property='article:published_time']", "time[datetime]"})

	responsibilities, qualifications := detectSections(doc)
	analysis.Responsibilities = responsibilities
	analysis.Qualifications = qualifications

	description := fetch.MainText(doc, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	analysis.Description = description

	if m := jobTypeRe.FindString(description); m != "" {
		analysis.JobType = strings.ReplaceAll(strings.ToLower(m), " ", "-")
	}
	if m := experienceLevelRe.FindStringSubmatch(description); m != nil {
		analysis.ExperienceLevel = m[1] + "+ years"
	}
	if m := salaryRe.FindString(description); m != "" {
		analysis.SalaryRange = strings.TrimSpace(m)
	}
}

// firstText returns the text of the first selector that matches with a
// non-empty value. Meta tags yield their content attribute and images their
// alt text.
func firstText(doc *goquery.Document, selectorSets ...[]string) string {
	for _, selectors := range selectorSets {
		for _, sel := range selectors {
			found := doc.Find(sel).First()
			if found.Length() == 0 {
				continue
			}
			var value string
			switch goquery.NodeName(found) {
			case "meta":
				value = found.AttrOr("content", "")
			case "img":
				value = found.AttrOr("alt", "")
			case "time":
				value = found.AttrOr("datetime", found.Text())
			default:
				value = found.AttrOr("content", found.Text())
			}
			if value = fetch.CleanWhitespace(strings.ReplaceAll(value, "\n", " ")); value != "" {
				return value
			}
		}
	}
	return ""
}

// detectSections finds list items that follow responsibility or
// qualification headings. When no heading matches, the first two lists in
// the page stand in for responsibilities and qualifications.
func detectSections(doc *goquery.Document) (responsibilities, qualifications []string) {
	seenResp := make(map[string]bool)
	seenQual := make(map[string]bool)

	doc.Find("h1, h2, h3, h4, h5, h6, strong, b").Each(func(_ int, heading *goquery.Selection) {
		headingText := strings.ToLower(strings.TrimSpace(heading.Text()))
		if headingText == "" {
			return
		}

		anchor, stop := heading, "h1, h2, h3, h4, h5, h6"
		if name := goquery.NodeName(heading); name == "strong" || name == "b" {
			parent := heading.Parent()
			if strings.EqualFold(strings.TrimSpace(parent.Text()), strings.TrimSpace(heading.Text())) {
				anchor = parent
			}
			stop += ", strong, b, p:has(strong), p:has(b)"
		}

		items := listItems(anchor.NextUntil(stop))
		if len(items) == 0 {
			return
		}
		switch {
		case responsibilityHeading.MatchString(headingText):
			responsibilities = appendUnique(responsibilities, seenResp, items)
		case qualificationHeading.MatchString(headingText):
			qualifications = appendUnique(qualifications, seenQual, items)
		}
	})

	if len(responsibilities) == 0 && len(qualifications) == 0 {
		lists := doc.Find("ul, ol")
		if lists.Length() >= 2 {
			responsibilities = listItems(lists.Eq(0))
			qualifications = listItems(lists.Eq(1))
		}
	}
	return responsibilities, qualifications
}

func listItems(s *goquery.Selection) []string {
	var items []string
	s.Find("li").AddSelection(s.Filter("li")).Each(func(_ int, li *goquery.Selection) {
		text := fetch.CleanWhitespace(strings.ReplaceAll(li.Text(), "\n", " "))
		if text != "" && len(text) <= maxListItemLength {
			items = append(items, text)
		}
	})
	return items
}

func appendUnique(dst []string, seen map[string]bool, items []string) []string {
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			dst = append(dst, item)
		}
	}
	return dst
}

// blockers records signs that the page is not the posting itself
type blockers struct {
	captcha bool
	login   bool
}

// detectBlockers must run before extraction removes forms and scripts
func detectBlockers(doc *goquery.Document) blockers {
	var b blockers
	for _, sel := range captchaSelectors {
		if doc.Find(sel).Length() > 0 {
			b.captcha = true
			break
		}
	}
	if !b.captcha {
		bodyText := strings.ToLower(doc.Find("body").Text())
		for _, phrase := range botPhrases {
			if strings.Contains(bodyText, phrase) {
				b.captcha = true
				break
			}
		}
	}
	for _, sel := range loginSelectors {
		if doc.Find(sel).Length() > 0 {
			b.login = true
			break
		}
	}
	return b
}

// warnings turns blockers into analysis warnings. A login form only counts
// on pages with little posting text, since most job boards carry a sign-in
// form somewhere.
func (b blockers) warnings(description string) []string {
	var out []string
	if b.captcha {
		out = append(out, "page is protected by a captcha or bot check")
	}
	if b.login && fetch.ShouldUseBrowser(description) {
		out = append(out, "posting requires authentication to view")
	}
	return out
}
