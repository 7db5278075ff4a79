package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.linkedin.com/jobs/view/123456", PlatformLinkedIn},
		{"https://www.indeed.com/viewjob?jk=abc", PlatformIndeed},
		{"https://uk.indeed.co.uk/viewjob?jk=abc", PlatformIndeed},
		{"https://www.usajobs.gov/job/765432100", PlatformUSAJobs},
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://www.glassdoor.com/job-listing/x", PlatformGlassdoor},
		{"https://www.monster.com/job-openings/x", PlatformMonster},
		{"https://company.wd5.myworkdayjobs.com/en-US/jobs/job/123", PlatformWorkday},
		{"https://careers.example.com/jobs/1", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors_NonEmpty(t *testing.T) {
	platforms := []Platform{
		PlatformLinkedIn, PlatformIndeed, PlatformUSAJobs, PlatformGreenhouse,
		PlatformLever, PlatformGlassdoor, PlatformMonster, PlatformWorkday, PlatformUnknown,
	}
	for _, p := range platforms {
		t.Run(string(p), func(t *testing.T) {
			assert.NotEmpty(t, PlatformContentSelectors(p))
			assert.Contains(t, PlatformNoiseSelectors(p), "form")
			fs := PlatformFieldSelectors(p)
			assert.NotEmpty(t, fs.Title)
			assert.NotEmpty(t, fs.Company)
			assert.NotEmpty(t, fs.Location)
		})
	}
}

func TestPlatformContentSelectors_UnknownUsesJobPosting(t *testing.T) {
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
	assert.Equal(t, "#jobDescriptionText", PlatformContentSelectors(PlatformIndeed)[0])
	assert.Equal(t, ".description__text", PlatformContentSelectors(PlatformLinkedIn)[0])
}
