package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// IngestFromURL fetches a page, extracts its main text with platform-specific
// selectors and cleans it. The fetcher decides whether to fall back to a
// headless browser.
func IngestFromURL(ctx context.Context, fetcher *fetch.Fetcher, urlStr string, logger *zap.Logger) (string, *Metadata, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = fetch.NewFetcher(fetch.FetcherOptions{}, logger)
	}

	platform := fetch.DetectPlatform(urlStr)
	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	textContent, err := fetch.ExtractMainText(result.HTML, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleanedText := CleanText(textContent)
	logger.Debug("ingested url",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
		zap.Int("html_bytes", len(result.HTML)),
		zap.Int("text_chars", len(cleanedText)),
		zap.Bool("rendered", result.Rendered),
	)

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	metadata.Format = "html"
	return cleanedText, metadata, nil
}
