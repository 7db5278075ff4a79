package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformLinkedIn is linkedin.com job views
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is indeed.com job views
	PlatformIndeed Platform = "indeed"
	// PlatformUSAJobs is the US federal job board
	PlatformUSAJobs Platform = "usajobs"
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformGlassdoor is glassdoor.com job listings
	PlatformGlassdoor Platform = "glassdoor"
	// PlatformMonster is monster.com job listings
	PlatformMonster Platform = "monster"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// hostPatterns maps host substrings to platforms, checked in order
var hostPatterns = []struct {
	pattern  string
	platform Platform
}{
	{"linkedin.com", PlatformLinkedIn},
	{"indeed.", PlatformIndeed},
	{"usajobs.gov", PlatformUSAJobs},
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"glassdoor.", PlatformGlassdoor},
	{"monster.", PlatformMonster},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range hostPatterns {
		if strings.Contains(host, p.pattern) {
			return p.platform
		}
	}
	return PlatformUnknown
}

// FieldSelectors lists CSS selectors for the header fields of a posting.
// Selectors are tried in order and the first non-empty match wins.
type FieldSelectors struct {
	Title    []string
	Company  []string
	Location []string
}

// PlatformFieldSelectors returns header selectors for a platform. Unknown
// platforms get the generic set.
func PlatformFieldSelectors(platform Platform) FieldSelectors {
	switch platform {
	case PlatformLinkedIn:
		return FieldSelectors{
			Title:    []string{".top-card-layout__title", ".topcard__title", "h1"},
			Company:  []string{".topcard__org-name-link", ".topcard__flavor a"},
			Location: []string{".topcard__flavor--bullet"},
		}
	case PlatformIndeed:
		return FieldSelectors{
			Title:    []string{".jobsearch-JobInfoHeader-title", "h1.jobsearch-JobTitle", "h1"},
			Company:  []string{".jobsearch-InlineCompanyRating-companyName", "a[data-tn-element='companyName']", "[data-company-name='true']"},
			Location: []string{".jobsearch-JobInfoHeader-subtitle .jobsearch-JobInfoHeader-locationText", "[data-testid='inlineHeader-companyLocation']"},
		}
	case PlatformUSAJobs:
		return FieldSelectors{
			Title:    []string{"h1.usajobs-joa-banner__title", "#job-title", "h1"},
			Company:  []string{".usajobs-joa-banner__agency", ".usajobs-joa-banner__dept"},
			Location: []string{".usajobs-joa-locations__city", ".usajobs-joa-location"},
		}
	case PlatformGreenhouse:
		return FieldSelectors{
			Title:    []string{".app-title", ".job__title h1", "h1"},
			Company:  []string{".company-name", "meta[property='og:site_name']"},
			Location: []string{".location", ".job__location"},
		}
	case PlatformLever:
		return FieldSelectors{
			Title:    []string{".posting-headline h2", "h2"},
			Company:  []string{".main-header-logo img[alt]", "meta[property='og:site_name']"},
			Location: []string{".posting-categories .location", ".sort-by-location"},
		}
	case PlatformGlassdoor:
		return FieldSelectors{
			Title:    []string{"[data-test='job-title']", "h1"},
			Company:  []string{"[data-test='employer-name']", ".employerName"},
			Location: []string{"[data-test='location']", ".location"},
		}
	case PlatformMonster:
		return FieldSelectors{
			Title:    []string{"[data-testid='jobTitle']", ".job-header-title", "h1"},
			Company:  []string{"[data-testid='company']", ".job-header-company"},
			Location: []string{"[data-testid='jobDetailLocation']", ".job-header-location"},
		}
	default:
		return FieldSelectors{
			Title:    []string{"meta[property='og:title']", "meta[name='twitter:title']", ".job-title", ".jobtitle", ".position-title", ".posting-title", "h1"},
			Company:  []string{"meta[property='og:site_name']", ".company-name", ".employer", ".org", "[itemprop='hiringOrganization']"},
			Location: []string{".location", ".job-location", "[itemprop='jobLocation']"},
		}
	}
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{".description__text", ".show-more-less-html__markup", ".jobs-description__content"}
	case PlatformIndeed:
		return []string{"#jobDescriptionText", ".jobsearch-jobDescriptionText"}
	case PlatformUSAJobs:
		return []string{"#duties", ".usajobs-joa-section", "#summary", "main"}
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformGlassdoor:
		return []string{"[class*='JobDetails_jobDescription']", ".jobDescriptionContent", "#JobDescriptionContainer"}
	case PlatformMonster:
		return []string{"[data-testid='svx-description-container-inner']", ".job-description", "#JobDescription"}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='jobDescription']",
			".job-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Application forms
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		"[data-testid='application-form']",

		// EEO and legal
		".voluntary-disclosure",
		".eeo-statement",
		"[data-testid='eeo']",
		".legal-disclosure",

		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common, ".show-more-less-html__button", ".sign-up-modal", ".contextual-sign-in-modal")
	case PlatformIndeed:
		return append(common, "#jobsearch-ViewJobButtons-container", ".jobsearch-JobMetadataFooter")
	case PlatformUSAJobs:
		return append(common, ".usajobs-joa-actions", "#how-to-apply")
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
