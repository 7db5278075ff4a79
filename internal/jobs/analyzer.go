// Package jobs fetches job postings and extracts structured fields and key terms.
package jobs

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/types"
)

// Options tunes a single analysis
type Options struct {
	// Timeout bounds the static fetch. Zero uses the fetcher's timeout.
	Timeout time.Duration
	// AdditionalTerms are matched as key terms alongside the built-in skill list
	AdditionalTerms []string
}

// Analyzer turns job posting URLs into JobPostingAnalysis values.
// It is safe for concurrent use.
type Analyzer struct {
	fetcher *fetch.Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyzer creates an Analyzer. A nil fetcher uses default fetch options.
func NewAnalyzer(fetcher *fetch.Fetcher, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = fetch.NewFetcher(fetch.FetcherOptions{}, logger)
	}
	return &Analyzer{fetcher: fetcher, logger: logger, now: time.Now}
}

// Analyze fetches and analyzes one posting. Network and parse failures are
// reported through the FetchError field rather than returned, so the result
// always carries the source URL and domain.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string, opts *Options) *types.JobPostingAnalysis {
	if opts == nil {
		opts = &Options{}
	}
	rawURL = strings.TrimSpace(rawURL)
	platform := fetch.DetectPlatform(rawURL)
	analysis := &types.JobPostingAnalysis{
		ID: uuid.NewString(),
		Source: types.JobSource{
			URL:       rawURL,
			Site:      string(platform),
			Domain:    Domain(rawURL),
			FetchedAt: a.now().UTC(),
		},
	}

	// The timeout bounds the static request; the fetcher gives a browser
	// fallback its own budget
	result, err := a.fetcher.FetchWithin(ctx, rawURL, opts.Timeout)
	if err != nil {
		analysis.FetchError = toFetchError(err)
		a.logger.Info("job posting fetch failed",
			zap.String("url", rawURL),
			zap.String("kind", string(analysis.FetchError.Kind)),
			zap.Error(err),
		)
		return analysis
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		analysis.FetchError = &types.FetchError{Kind: types.FetchParse, Message: "failed to parse HTML: " + err.Error()}
		return analysis
	}

	found := detectBlockers(doc)
	extractFields(doc, platform, analysis)
	analysis.Warnings = found.warnings(analysis.Description)

	analysis.KeyTerms = KeyTerms(analysis.Description+"\n"+strings.Join(analysis.Qualifications, "\n"), opts.AdditionalTerms...)
	analysis.RequiredSkills, analysis.DesiredSkills = SplitSkills(analysis.Description, analysis.KeyTerms)

	a.logger.Debug("analyzed job posting",
		zap.String("url", rawURL),
		zap.String("site", analysis.Source.Site),
		zap.String("title", analysis.Title),
		zap.Int("key_terms", len(analysis.KeyTerms)),
	)
	return analysis
}

// toFetchError maps a fetch failure to the analysis tag
func toFetchError(err error) *types.FetchError {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return fetchErr.FetchError()
	}
	kind := types.FetchNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = types.FetchTimeout
	}
	return &types.FetchError{Kind: kind, Message: err.Error()}
}

// Domain returns the lowercased host of a URL without a leading "www.".
// Input that does not parse as a URL yields its best-effort host or "".
func Domain(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Bare host such as "example.com/jobs/1"
		parsed, err = url.Parse("//" + rawURL)
		if err != nil || !strings.Contains(parsed.Hostname(), ".") {
			return ""
		}
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
