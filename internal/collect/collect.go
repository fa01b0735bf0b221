// Package collect gathers raw posts about the tracked keywords from
// video, microblog, and web search platforms. Each platform has a
// Collector; the Agent fans searches out across them and buckets the
// results into a Corpus. Collectors degrade gracefully: a source that is
// unconfigured or failing is replaced by deterministic sample data when
// mock fallback is enabled.
package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sovlens/sovlens/pkg/models"
)

// Collector fetches posts for one platform.
type Collector interface {
	// Platform identifies which corpus bucket the results belong to.
	Platform() models.Platform

	// Available reports whether the collector is configured to reach
	// its live source.
	Available() bool

	// Search returns up to maxResults posts for the keyword.
	Search(ctx context.Context, keyword string, maxResults int) ([]models.Post, error)
}

// --- Sentinel errors ---

// ErrUnavailable is returned when a collector has no way to reach its
// live source (missing credentials, disabled endpoint).
var ErrUnavailable = fmt.Errorf("collector source unavailable")

// ErrBlocked is returned when a source refuses automated access.
var ErrBlocked = fmt.Errorf("blocked by source")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP client helpers ---

// browserUserAgent is sent on scraping requests; both video and search
// sources serve a stripped-down page to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// httpClient is the shared pre-configured HTTP client.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// fetch performs a GET request and returns the response body. The
// caller must close the returned ReadCloser.
func fetch(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json,*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, nil
}

// --- Result cache ---

// cacheEntry holds a cached search result with expiration.
type cacheEntry struct {
	posts     []models.Post
	expiresAt time.Time
}

// resultCache is a thread-safe TTL cache of search results, keyed by
// platform and keyword. It keeps repeated runs from hammering sources
// that rate-limit aggressively.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *resultCache) get(key string) ([]models.Post, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.posts, true
}

func (c *resultCache) set(key string, posts []models.Post) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		posts:     posts,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// --- Rate limiter ---

// rateLimiter is a token bucket; collectors take a token per outbound
// request so scraped sources see a polite request rate.
type rateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

func newRateLimiter(maxTokens int, refillRate time.Duration) *rateLimiter {
	return &rateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// wait blocks until a token is available or the context is cancelled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// refill adds tokens based on elapsed time. Must be called with mu held.
func (rl *rateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	if elapsed < rl.refillRate {
		return
	}
	periods := int(elapsed / rl.refillRate)
	rl.tokens += periods
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.refillRate)
}
