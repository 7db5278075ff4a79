package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/config"
	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/ingestion"
	"github.com/jonathan/cvgen/internal/llm"
	"github.com/jonathan/cvgen/internal/observability"
	"github.com/jonathan/cvgen/internal/paths"
	"github.com/jonathan/cvgen/internal/pipeline"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/types"
	"github.com/jonathan/cvgen/internal/validation"
)

// currentConfig returns the loaded config, or the defaults when a command
// runs without the root pre-run (as in tests)
func currentConfig() *config.Config {
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	return cfg
}

// resolver returns the workspace path resolver
func resolver() (*paths.Resolver, error) {
	return paths.New(currentConfig().Root)
}

// openStore opens the configured storage backend. The returned func
// releases its connections.
func openStore(ctx context.Context) (storage.Provider, func(), error) {
	c := currentConfig().Storage
	if c.Backend == "" || c.Backend == storage.BackendFS {
		r, err := resolver()
		if err != nil {
			return nil, nil, err
		}
		if !filepath.IsAbs(c.Dir) {
			c.Dir = filepath.Join(r.Root, c.Dir)
		}
	}
	store, err := storage.Open(ctx, c)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", c.Backend, err)
	}
	return store, func() {
		if err := storage.Close(store); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}, nil
}

// openProfiles returns the profile service over the configured storage
func openProfiles(ctx context.Context) (*profiles.Service, func(), error) {
	store, closeFn, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return profiles.NewService(store, logger), closeFn, nil
}

// newFetcher builds a fetcher from the fetch config. cache may be nil.
func newFetcher(useBrowser bool, cache *fetch.PageCache) *fetch.Fetcher {
	fc := currentConfig().Fetch
	return fetch.NewFetcher(fetch.FetcherOptions{
		Options: fetch.Options{
			Timeout:   fc.Timeout,
			UserAgent: fc.UserAgent,
		},
		RatePerHost: fc.RatePerHost,
		UseBrowser:  useBrowser || fc.UseBrowser,
		Cache:       cache,
	}, logger)
}

// newOptimizer returns an optimizer for the configured provider, or nil
// when no client can be created. A nil optimizer makes the pipeline fall
// back to the original content.
func newOptimizer(ctx context.Context) (*llm.Optimizer, func()) {
	c := currentConfig()
	client, err := llm.NewClient(ctx, llm.NewConfig(c.Model), c.APIKey)
	if err != nil {
		logger.Warn("AI provider unavailable", zap.Error(err))
		return nil, func() {}
	}
	return llm.NewOptimizer(client, logger), func() { _ = client.Close() }
}

// readJobDescription returns job posting text from a file or URL. An
// empty source yields "".
func readJobDescription(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		text, _, err := ingestion.IngestFromURL(ctx, newFetcher(false, nil), source, logger)
		return text, err
	}
	text, _, err := ingestion.IngestFromFile(source)
	return text, err
}

// pdfOptions builds rendering options from the config and flag overrides
func pdfOptions(paper, font string, singlePage bool) *types.PDFOptions {
	c := currentConfig()
	if paper == "" {
		paper = c.Paper
	}
	if font == "" {
		font = c.FontFamily
	}
	return &types.PDFOptions{
		PaperSize:  types.PaperSize(paper),
		FontFamily: font,
		SinglePage: singlePage,
	}
}

// progressPrinter prints pipeline progress in verbose mode
func progressPrinter() pipeline.ProgressCallback {
	if !currentConfig().Verbose {
		return nil
	}
	printer := observability.NewPrinter(os.Stdout)
	return func(e pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(os.Stdout, "[%s] %s\n", e.Step, e.Message)
		switch content := e.Content.(type) {
		case *llm.OptimizedCV:
			printer.PrintOptimization(content)
		case *validation.Result:
			printer.PrintVerification(content)
		}
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slug lowercases s and joins its words with dashes
func slug(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
