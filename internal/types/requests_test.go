//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRequest_Validate(t *testing.T) {
	assert.Error(t, (&RenderRequest{}).Validate())
	assert.NoError(t, (&RenderRequest{Markdown: "# Jane"}).Validate())
	assert.NoError(t, (&RenderRequest{Data: &CVData{}}).Validate())
	assert.Error(t, (&RenderRequest{Markdown: "# Jane", Options: &PDFOptions{PaperSize: "B5"}}).Validate())
}

func TestJobAnalyzeRequest_Validate(t *testing.T) {
	assert.Error(t, (&JobAnalyzeRequest{}).Validate())
	assert.Error(t, (&JobAnalyzeRequest{URLs: []string{""}}).Validate())
	assert.NoError(t, (&JobAnalyzeRequest{URLs: []string{"https://example.com/job"}}).Validate())
	assert.Error(t, (&JobAnalyzeRequest{URLs: []string{"https://example.com"}, TimeoutSeconds: 120}).Validate())
}

func TestATSRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ATSRequest{}).Validate())
	assert.Error(t, (&ATSRequest{JobURL: "not a url"}).Validate())
}

func TestJobPostingAnalysis_Failed(t *testing.T) {
	a := &JobPostingAnalysis{}
	assert.False(t, a.Failed())
	a.FetchError = &FetchError{Kind: FetchTimeout}
	assert.True(t, a.Failed())
}

func TestATSAnalysis_HasIssue(t *testing.T) {
	a := &ATSAnalysis{Issues: []ATSIssue{{Type: IssueGraphics}}}
	assert.True(t, a.HasIssue(IssueGraphics))
	assert.False(t, a.HasIssue(IssueMissingDates))
}
