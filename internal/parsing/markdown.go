// Package parsing provides functionality for turning markdown profiles into structured CVData.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// ParseResult is the outcome of parsing a markdown profile
type ParseResult struct {
	Data       *types.CVData `json:"data"`
	Warnings   []Warning     `json:"warnings"`
	Confidence float64       `json:"confidence"`
}

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/[^\s|)>,]+`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[^\s|)>,]+`)
	urlRe      = regexp.MustCompile(`https?://[^\s|)>,]+`)
	keyValueRe = regexp.MustCompile(`^([A-Za-z][A-Za-z /]{0,30}):\s*(.+)$`)
)

// contactSepRe splits contact lines that pack several fields together
var contactSepRe = regexp.MustCompile(`\s+[|•·]\s+`)

// Parse converts a markdown profile into CVData. It never fails on content;
// anything it cannot interpret is reported as a warning on the result.
func Parse(markdown string) *ParseResult {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	name, nameLine, sections, warnings := splitSections(strings.Split(text, "\n"))
	p := &parser{data: &types.CVData{}, warnings: warnings}
	if name != "" {
		p.data.PersonalInfo.Name.Full = name
	}

	for _, s := range sections {
		switch s.kind {
		case sectionContact:
			p.parseContact(s, nameLine)
		case sectionSummary:
			p.parseSummary(s)
		case sectionExperience:
			p.parseExperience(s)
		case sectionEducation:
			p.parseEducation(s)
		case sectionSkills:
			p.parseSkills(s)
		case sectionCertifications:
			p.parseCertifications(s)
		case sectionProjects:
			p.parseProjects(s)
		case sectionLanguages:
			p.parseLanguages(s)
		}
	}

	d := p.data
	if strings.TrimSpace(d.PersonalInfo.Name.Full) == "" {
		p.warn(Warning{Kind: WarnMissingName, Message: "no candidate name found"})
	}
	if d.PersonalInfo.Contact.Email == "" && d.PersonalInfo.Contact.Phone == "" {
		p.warn(Warning{Kind: WarnMissingContact, Message: "no email or phone found"})
	}
	d.Skills = NormalizeSkills(d.Skills)
	d.Normalize()

	return &ParseResult{
		Data:       d,
		Warnings:   p.warnings,
		Confidence: confidence(d),
	}
}

// confidence is the fraction of the five main areas that produced data
func confidence(d *types.CVData) float64 {
	score := 0
	if d.PersonalInfo.Name.Full != types.PlaceholderName && d.PersonalInfo.Contact.Email != "" {
		score++
	}
	if len(d.Experience) > 0 {
		score++
	}
	if len(d.Education) > 0 {
		score++
	}
	if len(d.Skills) > 0 {
		score++
	}
	if len(d.Certifications) > 0 {
		score++
	}
	return float64(score) / 5
}

type parser struct {
	data     *types.CVData
	warnings []Warning
}

func (p *parser) warn(w Warning) {
	p.warnings = append(p.warnings, w)
}

func (p *parser) emptySection(s *section) {
	p.warn(Warning{
		Kind:    WarnEmptySection,
		Section: s.title,
		Line:    s.start,
		Message: "section \"" + s.title + "\" produced no entries",
	})
}

func (p *parser) parseContact(s *section, nameLine int) {
	info := &p.data.PersonalInfo
	for _, l := range s.lines {
		raw := strings.TrimSpace(l.text)
		if raw == "" || strings.HasPrefix(raw, "---") {
			continue
		}
		if _, t, ok := bullet(raw); ok {
			raw = t
		}

		// A fully bold first line is the name in word-processor exports
		if info.Name.Full == "" && boldHeadingRe.MatchString(raw) {
			info.Name.Full = stripEmphasis(raw)
			continue
		}

		clean := linkRe.ReplaceAllString(stripEmphasis(raw), "$1 $2")
		matched := false
		for _, seg := range contactSepRe.Split(clean, -1) {
			if p.contactSegment(strings.TrimSpace(seg)) {
				matched = true
			}
		}
		if matched {
			continue
		}

		// The first plain line under the name is the headline
		if info.Title == "" && nameLine > 0 && l.no > nameLine && len(clean) <= 80 {
			info.Title = clean
		}
	}
}

// contactSegment extracts contact details from one separated part of a line
func (p *parser) contactSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if m := keyValueRe.FindStringSubmatch(seg); m != nil && p.contactField(m[1], strings.TrimSpace(m[2])) {
		return true
	}

	c := &p.data.PersonalInfo.Contact
	matched := false
	if c.Email == "" {
		if m := emailRe.FindString(seg); m != "" {
			c.Email, matched = m, true
		}
	}
	if c.LinkedIn == "" {
		if m := linkedInRe.FindString(seg); m != "" {
			c.LinkedIn, matched = m, true
		}
	}
	if c.GitHub == "" {
		if m := gitHubRe.FindString(seg); m != "" {
			c.GitHub, matched = m, true
		}
	}
	if c.Website == "" {
		for _, u := range urlRe.FindAllString(seg, -1) {
			if !linkedInRe.MatchString(u) && !gitHubRe.MatchString(u) {
				c.Website, matched = u, true
				break
			}
		}
	}
	if c.Phone == "" {
		if m := phoneRe.FindString(emailRe.ReplaceAllString(seg, "")); m != "" {
			c.Phone, matched = strings.TrimSpace(m), true
		}
	}
	return matched
}

// contactField applies a "Key: value" line and reports whether the key was known
func (p *parser) contactField(key, value string) bool {
	info := &p.data.PersonalInfo
	c := &info.Contact
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name", "full name":
		if info.Name.Full == "" {
			info.Name.Full = value
		}
	case "title", "headline", "position":
		info.Title = value
	case "email", "e-mail", "mail":
		if m := emailRe.FindString(value); m != "" {
			c.Email = m
		} else {
			c.Email = value
		}
	case "phone", "tel", "telephone", "mobile", "cell", "home":
		c.Phone = value
	case "address", "location", "city":
		c.Address = value
	case "linkedin":
		c.LinkedIn = value
	case "github":
		c.GitHub = value
	case "website", "web", "portfolio", "url", "site":
		c.Website = value
	case "citizenship":
		info.Citizenship = value
	case "summary":
		info.Summary = value
	default:
		return false
	}
	return true
}

func (p *parser) parseSummary(s *section) {
	var parts []string
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if _, b, ok := bullet(t); ok {
			t = b
		}
		if t = stripEmphasis(t); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		p.emptySection(s)
		return
	}
	p.data.ProfessionalSummary = strings.Join(parts, " ")
}

var (
	atRe          = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@)\s+(.+)$`)
	dashSepRe     = regexp.MustCompile(`\s+[—–|-]\s+|\s*[—–|]\s*`)
	trailParensRe = regexp.MustCompile(`\s*\(([^()]*)\)\s*$`)
	trailDatesRe  = regexp.MustCompile(`(?i)[,|]?\s*((?:(?:[a-z]{3,9}\.?\s+)?(?:\d{1,2}/)?(?:19|20)\d{2})\s*(?:[-–—]|to)\s*(?:(?:[a-z]{3,9}\.?\s+)?(?:\d{1,2}/)?(?:19|20)\d{2}|present|current|now))\s*$`)
	dateTokenRe   = regexp.MustCompile(`(?i)(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(?:\d{1,2}/)?(?:19|20)\d{2}|\bpresent\b|\bcurrent\b|\bnow\b`)
	yearRe        = regexp.MustCompile(`(?:19|20)\d{2}`)
	rangeSepRe    = regexp.MustCompile(`(?i)\S\s+(?:[-–—]|to|until)\s+\S`)
	hoursRe       = regexp.MustCompile(`(\d{1,3})\s*hours?`)
	digitsRe      = regexp.MustCompile(`\d+`)
)

// parseDateRange extracts start and end dates. Text with no recognizable
// date is returned raw as the start.
func parseDateRange(s string) (start, end string, current bool) {
	s = strings.TrimSpace(s)
	tokens := dateTokenRe.FindAllString(s, 2)
	if len(tokens) == 0 {
		return s, "", false
	}
	start = tokens[0]
	if isPresent(start) {
		return "", "", true
	}
	if len(tokens) > 1 {
		if isPresent(tokens[1]) {
			return start, "", true
		}
		end = tokens[1]
	}
	return start, end, false
}

func isPresent(s string) bool {
	switch strings.ToLower(s) {
	case "present", "current", "now":
		return true
	}
	return false
}

// splitDates detaches a trailing "(dates)" or ", Start - End" from a line
func splitDates(s string) (rest, dates string) {
	if m := trailParensRe.FindStringSubmatchIndex(s); m != nil {
		inner := s[m[2]:m[3]]
		if dateTokenRe.MatchString(inner) {
			return strings.TrimSpace(s[:m[0]]), inner
		}
	}
	if m := trailDatesRe.FindStringSubmatchIndex(s); m != nil {
		return strings.TrimSpace(s[:m[0]]), s[m[2]:m[3]]
	}
	return s, ""
}

// splitRawRange detaches a trailing "(X - Y)" that reads as a period but
// holds no recognizable date. The period stays raw.
func splitRawRange(s string) (rest, dates string) {
	m := trailParensRe.FindStringSubmatchIndex(s)
	if m == nil {
		return s, ""
	}
	inner := strings.TrimSpace(s[m[2]:m[3]])
	if !rangeSepRe.MatchString(inner) {
		return s, ""
	}
	return strings.TrimSpace(s[:m[0]]), inner
}

// parseRole reads "Title at Employer" or "Employer — Title", with optional
// trailing dates
func parseRole(s string) (exp types.Experience, ok bool) {
	rest, dates := splitDates(stripEmphasis(s))
	if dates == "" {
		rest, dates = splitRawRange(rest)
	}
	if dates != "" {
		exp.StartDate, exp.EndDate, exp.Current = parseDateRange(dates)
	}
	if m := atRe.FindStringSubmatch(rest); m != nil {
		exp.Title, exp.Employer = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		return exp, true
	}
	if parts := dashSepRe.Split(rest, 2); len(parts) == 2 {
		exp.Employer, exp.Title = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		return exp, true
	}
	if parts := strings.SplitN(rest, ", ", 2); len(parts) == 2 && dates != "" {
		exp.Title, exp.Employer = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		return exp, true
	}
	return exp, false
}

func (p *parser) parseExperience(s *section) {
	var (
		entries []types.Experience
		cur     *types.Experience
		// fromHeading marks entries whose bullets are all responsibilities
		fromHeading bool
	)
	add := func(e types.Experience, heading bool) {
		entries = append(entries, e)
		cur = &entries[len(entries)-1]
		fromHeading = heading
	}

	for _, l := range s.lines {
		raw := strings.TrimRight(l.text, " \t")
		t := strings.TrimSpace(raw)
		if t == "" || strings.HasPrefix(t, "---") {
			continue
		}

		if _, text, ok := heading(t); ok {
			e, parsed := parseRole(text)
			if !parsed {
				e = types.Experience{Title: text}
			}
			add(e, true)
			continue
		}

		// Bold-only line names the employer, italic-only line the title
		if boldHeadingRe.MatchString(t) || (strings.HasPrefix(t, "**") && strings.HasSuffix(t, "**")) {
			e, parsed := parseRole(t)
			if !parsed {
				e = types.Experience{Employer: stripEmphasis(t)}
			}
			add(e, true)
			continue
		}
		if cur != nil && isItalicLine(t) {
			if cur.Title == "" {
				cur.Title = stripEmphasis(t)
			} else {
				e := types.Experience{Employer: cur.Employer, Location: cur.Location, Title: stripEmphasis(t)}
				add(e, true)
			}
			continue
		}

		if indent, text, ok := bullet(raw); ok {
			if indent == 0 && !fromHeading {
				if e, parsed := parseRole(text); parsed && (e.StartDate != "" || cur == nil) {
					add(e, false)
					continue
				}
			}
			if cur == nil {
				p.warn(Warning{Kind: WarnOrphanLine, Section: s.title, Line: l.no, Message: "bullet outside any position: " + text})
				continue
			}
			cur.Responsibilities = append(cur.Responsibilities, stripEmphasis(text))
			continue
		}

		if cur == nil {
			if e, parsed := parseRole(t); parsed {
				add(e, false)
				continue
			}
			p.warn(Warning{Kind: WarnOrphanLine, Section: s.title, Line: l.no, Message: "line outside any position: " + t})
			continue
		}
		p.experienceDetail(cur, stripEmphasis(t))
	}

	if len(entries) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Experience = append(p.data.Experience, entries...)
}

func isItalicLine(t string) bool {
	return strings.HasPrefix(t, "*") && strings.HasSuffix(t, "*") && !strings.HasPrefix(t, "**") &&
		!strings.HasPrefix(t, "* ") && len(t) > 2
}

// experienceDetail applies a non-bullet line under a position
func (p *parser) experienceDetail(e *types.Experience, t string) {
	if m := keyValueRe.FindStringSubmatch(t); m != nil {
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(strings.TrimSpace(m[1])) {
		case "location":
			e.Location = value
			return
		case "grade", "grade level", "series/grade", "pay plan":
			e.GradeLevel = value
			e.EmploymentType = "government"
			return
		case "supervisor":
			e.Supervisor = value
			return
		case "hours", "hours per week":
			if m := digitsRe.FindString(value); m != "" {
				e.HoursPerWeek, _ = strconv.Atoi(m)
			}
			return
		case "type", "employment type":
			e.EmploymentType = strings.ToLower(value)
			return
		case "dates", "period":
			e.StartDate, e.EndDate, e.Current = parseDateRange(value)
			return
		case "achievement", "achievements":
			e.Achievements = append(e.Achievements, value)
			return
		}
	}
	if m := hoursRe.FindStringSubmatch(strings.ToLower(t)); m != nil && strings.Contains(strings.ToLower(t), "week") {
		if n, err := strconv.Atoi(m[1]); err == nil {
			e.HoursPerWeek = n
		}
		return
	}
	if e.StartDate == "" && dateTokenRe.MatchString(t) {
		rest, dates := splitDates(t)
		if dates == "" {
			dates, rest = t, ""
		}
		e.StartDate, e.EndDate, e.Current = parseDateRange(dates)
		if rest != "" && e.Location == "" {
			e.Location = strings.Trim(rest, " ,|")
		}
		return
	}
	if e.Location == "" && len(e.Responsibilities) == 0 && len(t) <= 60 {
		e.Location = t
		return
	}
	e.Responsibilities = append(e.Responsibilities, t)
}

var degreeRe = regexp.MustCompile(`(?i)\b(?:b\.?s\.?c?|b\.?a|m\.?s\.?c?|m\.?a|mba|ph\.?d|bachelor|master|doctor|doctorate|associate|diploma|certificate|degree|b\.?eng|m\.?eng|j\.?d|m\.?d)\b`)

// parseEducationLine reads "Degree in Field, Institution (Year)" and its
// dash-separated or reversed variants
func parseEducationLine(s string) (edu types.Education, ok bool) {
	rest, dates := splitDates(stripEmphasis(s))
	if dates == "" {
		if y := yearRe.FindAllString(rest, -1); len(y) > 0 && strings.HasSuffix(strings.TrimSpace(rest), y[len(y)-1]) {
			dates = y[len(y)-1]
			rest = strings.TrimRight(strings.TrimSuffix(strings.TrimSpace(rest), dates), " ,|-–—")
		}
	}
	if dates != "" {
		start, end, _ := parseDateRange(dates)
		if end != "" {
			edu.StartDate, edu.EndDate = start, end
			edu.Year = yearRe.FindString(end)
		} else {
			edu.Year = start
		}
	}

	var parts []string
	for _, part := range dashSepRe.Split(rest, -1) {
		for _, sub := range strings.Split(part, ", ") {
			if sub = strings.TrimSpace(sub); sub != "" {
				parts = append(parts, sub)
			}
		}
	}
	if len(parts) == 0 {
		return edu, false
	}
	if m := atRe.FindStringSubmatch(parts[0]); m != nil && len(parts) == 1 {
		parts = []string{m[1], m[2]}
	}

	degreeIdx := -1
	for i, part := range parts {
		if degreeRe.MatchString(part) {
			degreeIdx = i
			break
		}
	}
	switch {
	case degreeIdx >= 0:
		edu.Degree = parts[degreeIdx]
		for i, part := range parts {
			if i != degreeIdx && edu.Institution == "" {
				edu.Institution = part
			} else if i != degreeIdx && edu.Location == "" {
				edu.Location = part
			}
		}
	case len(parts) >= 2:
		edu.Degree, edu.Institution = parts[0], parts[1]
	default:
		edu.Institution = parts[0]
	}
	if i := strings.Index(strings.ToLower(edu.Degree), " in "); i > 0 {
		edu.Field = strings.TrimSpace(edu.Degree[i+4:])
		edu.Degree = strings.TrimSpace(edu.Degree[:i])
	}
	return edu, edu.Institution != "" || edu.Degree != ""
}

func (p *parser) parseEducation(s *section) {
	var (
		entries []types.Education
		cur     *types.Education
	)
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if t == "" {
			continue
		}
		if _, text, ok := heading(t); ok {
			t = text
		} else if indent, text, ok := bullet(l.text); ok {
			if indent > 0 && cur != nil {
				cur.Honors = append(cur.Honors, stripEmphasis(text))
				continue
			}
			t = text
		} else if cur != nil {
			clean := stripEmphasis(t)
			if m := keyValueRe.FindStringSubmatch(clean); m != nil {
				switch strings.ToLower(m[1]) {
				case "gpa":
					cur.GPA = strings.TrimSpace(m[2])
					continue
				case "honors", "awards":
					cur.Honors = append(cur.Honors, strings.TrimSpace(m[2]))
					continue
				case "completed", "graduated", "year":
					cur.Year = yearRe.FindString(m[2])
					continue
				}
			}
			if cur.Year == "" && yearRe.MatchString(clean) {
				start, end, _ := parseDateRange(clean)
				cur.StartDate, cur.EndDate = start, end
				cur.Year = yearRe.FindString(end)
				if cur.Year == "" {
					cur.Year = yearRe.FindString(start)
				}
				continue
			}
			if cur.Institution == "" {
				cur.Institution = clean
				continue
			}
		}

		if edu, ok := parseEducationLine(t); ok {
			entries = append(entries, edu)
			cur = &entries[len(entries)-1]
			continue
		}
		p.warn(Warning{Kind: WarnOrphanLine, Section: s.title, Line: l.no, Message: "unrecognized education line: " + t})
	}
	if len(entries) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Education = append(p.data.Education, entries...)
}

var skillLevelRe = regexp.MustCompile(`^(.+?)\s*[(:-]\s*(beginner|intermediate|advanced|expert|proficient|basic|familiar|native|fluent)\)?$`)

func (p *parser) parseSkills(s *section) {
	var (
		skills   []types.Skill
		category string
	)
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if t == "" {
			continue
		}
		if _, text, ok := heading(t); ok {
			category = text
			continue
		}
		if _, text, ok := bullet(t); ok {
			t = text
		}
		t = stripEmphasis(t)
		list := t
		lineCategory := category
		if m := keyValueRe.FindStringSubmatch(t); m != nil {
			lineCategory, list = strings.TrimSpace(m[1]), m[2]
		}
		for _, item := range splitList(list) {
			sk := types.Skill{Name: item, Category: lineCategory}
			if m := skillLevelRe.FindStringSubmatch(item); m != nil {
				sk.Name, sk.Level = strings.TrimSpace(m[1]), strings.ToLower(m[2])
			}
			skills = append(skills, sk)
		}
	}
	if len(skills) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Skills = append(p.data.Skills, skills...)
}

// splitList splits a comma, semicolon or bullet separated list
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '•' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(f), ".")); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (p *parser) parseCertifications(s *section) {
	var certs []types.Certification
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if t == "" {
			continue
		}
		if _, text, ok := heading(t); ok {
			t = text
		} else if indent, text, ok := bullet(l.text); ok {
			if indent > 0 && len(certs) > 0 {
				if d := dateTokenRe.FindString(text); d != "" && certs[len(certs)-1].Date == "" {
					certs[len(certs)-1].Date = d
				}
				continue
			}
			t = text
		}
		t = stripEmphasis(t)
		rest, dates := splitDates(t)
		c := types.Certification{Name: rest}
		if dates != "" {
			if dateTokenRe.MatchString(dates) {
				c.Date = dates
			} else {
				c.Issuer = dates
			}
		}
		if parts := dashSepRe.Split(c.Name, 2); len(parts) == 2 {
			c.Name, c.Issuer = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
		if rest2, issuer := splitParens(c.Name); issuer != "" {
			c.Name, c.Issuer = rest2, issuer
		}
		if c.Date == "" {
			if y := yearRe.FindString(c.Name); y != "" && strings.HasSuffix(c.Name, y) {
				c.Date = y
				c.Name = strings.TrimRight(strings.TrimSuffix(c.Name, y), " ,-")
			}
		}
		if c.Name != "" {
			certs = append(certs, c)
		}
	}
	if len(certs) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Certifications = append(p.data.Certifications, certs...)
}

// splitParens detaches a trailing "(text)" that is not a date
func splitParens(s string) (rest, inner string) {
	if m := trailParensRe.FindStringSubmatchIndex(s); m != nil {
		return strings.TrimSpace(s[:m[0]]), s[m[2]:m[3]]
	}
	return s, ""
}

var (
	techRe       = regexp.MustCompile(`(?i)^(?:tech(?:nologies)?|stack|built with)\s*:\s*(.+)$`)
	projectSepRe = regexp.MustCompile(`\s*[:—–]\s+|\s+-\s+`)
)

func (p *parser) parseProjects(s *section) {
	var (
		projects []types.Project
		cur      *types.Project
	)
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if t == "" {
			continue
		}
		if _, text, ok := heading(t); ok {
			projects = append(projects, types.Project{Name: text})
			cur = &projects[len(projects)-1]
			continue
		}
		indent, text, isBullet := bullet(l.text)
		if isBullet {
			t = text
		}
		t = strings.TrimSpace(t)
		if m := techRe.FindStringSubmatch(stripEmphasis(t)); m != nil && cur != nil {
			cur.Technologies = append(cur.Technologies, splitList(m[1])...)
			continue
		}
		if cur == nil || (isBullet && indent == 0 && strings.HasPrefix(t, "**")) || (!isBullet && strings.HasPrefix(t, "**")) {
			proj := types.Project{}
			name := t
			if m := boldRe.FindStringSubmatchIndex(t); m != nil && m[0] == 0 {
				name = stripEmphasis(t[:m[1]])
				proj.Description = strings.TrimSpace(strings.TrimLeft(t[m[1]:], " :-–—"))
			} else if parts := projectSepRe.Split(t, 2); len(parts) == 2 {
				name, proj.Description = parts[0], parts[1]
			}
			if lm := linkRe.FindStringSubmatch(name); lm != nil {
				name, proj.URL = lm[1], lm[2]
			}
			proj.Name = stripEmphasis(name)
			proj.Description = stripEmphasis(proj.Description)
			projects = append(projects, proj)
			cur = &projects[len(projects)-1]
			continue
		}
		if u := urlRe.FindString(t); u != "" && cur.URL == "" {
			cur.URL = u
			continue
		}
		d := stripEmphasis(t)
		if cur.Description == "" {
			cur.Description = d
		} else {
			cur.Description += " " + d
		}
	}
	if len(projects) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Projects = append(p.data.Projects, projects...)
}

func (p *parser) parseLanguages(s *section) {
	var langs []types.Language
	for _, l := range s.lines {
		t := strings.TrimSpace(l.text)
		if _, text, ok := bullet(t); ok {
			t = text
		}
		for _, item := range splitList(stripEmphasis(t)) {
			lang := types.Language{Name: item}
			if rest, inner := splitParens(item); inner != "" {
				lang.Name, lang.Proficiency = rest, inner
			} else if parts := dashSepRe.Split(item, 2); len(parts) == 2 {
				lang.Name, lang.Proficiency = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			} else if i := strings.Index(item, ":"); i > 0 {
				lang.Name, lang.Proficiency = strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:])
			}
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		p.emptySection(s)
		return
	}
	p.data.Languages = append(p.data.Languages, langs...)
}
