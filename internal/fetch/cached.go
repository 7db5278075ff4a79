package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/cvgen/internal/storage"
)

// DefaultCacheTTL is how long a cached page stays fresh
const DefaultCacheTTL = 24 * time.Hour

// cachePrefix namespaces page entries inside a shared storage provider
const cachePrefix = "cache/pages/"

// PageCache stores fetched pages in a storage provider keyed by URL hash.
type PageCache struct {
	store storage.Provider
	ttl   time.Duration
	now   func() time.Time
}

// cachedPage is the stored form of a Result
type cachedPage struct {
	URL         string    `json:"url"`
	HTML        string    `json:"html"`
	ContentType string    `json:"content_type,omitempty"`
	StatusCode  int       `json:"status_code"`
	Rendered    bool      `json:"rendered,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// NewPageCache creates a cache over store. A zero ttl uses DefaultCacheTTL.
func NewPageCache(store storage.Provider, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &PageCache{store: store, ttl: ttl, now: time.Now}
}

// CacheKey returns the storage key for a URL
func CacheKey(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return cachePrefix + hex.EncodeToString(sum[:]) + ".json"
}

// Get returns the cached page for a URL if present and fresh.
// Stale or unreadable entries count as a miss.
func (c *PageCache) Get(ctx context.Context, urlStr string) (*Result, bool, error) {
	data, err := c.store.Read(ctx, CacheKey(urlStr))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached page: %w", err)
	}

	var page cachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false, nil
	}
	if c.now().Sub(page.FetchedAt) > c.ttl {
		return nil, false, nil
	}
	return &Result{
		URL:         page.URL,
		HTML:        page.HTML,
		ContentType: page.ContentType,
		StatusCode:  page.StatusCode,
		Rendered:    page.Rendered,
	}, true, nil
}

// Put stores a successful fetch result
func (c *PageCache) Put(ctx context.Context, result *Result) error {
	data, err := json.Marshal(cachedPage{
		URL:         result.URL,
		HTML:        result.HTML,
		ContentType: result.ContentType,
		StatusCode:  result.StatusCode,
		Rendered:    result.Rendered,
		FetchedAt:   c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cached page: %w", err)
	}
	if err := c.store.Write(ctx, CacheKey(result.URL), data); err != nil {
		return fmt.Errorf("failed to write cached page: %w", err)
	}
	return nil
}

// Invalidate drops a cached page. A missing entry is not an error.
func (c *PageCache) Invalidate(ctx context.Context, urlStr string) error {
	err := c.store.Delete(ctx, CacheKey(urlStr))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to invalidate cached page: %w", err)
	}
	return nil
}
