package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// REST adapter defaults
const (
	DefaultRestTimeout = 30 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
)

// Status is the lifecycle state of a fetch
type Status string

const (
	// StatusIdle means no request has run or the last one was canceled
	StatusIdle Status = "idle"

	// StatusLoading means a request is in flight
	StatusLoading Status = "loading"

	// StatusSuccess means the last request completed
	StatusSuccess Status = "success"

	// StatusError means the last request failed
	StatusError Status = "error"
)

// RestConfig describes one logical fetch. Requests with equal cache keys
// supersede each other.
type RestConfig struct {
	URL      string
	Method   string // GET when empty
	Headers  map[string]string
	Body     []byte
	CacheTTL time.Duration // DefaultCacheTTL when zero
	Timeout  time.Duration // DefaultRestTimeout when zero
}

// CacheKey identifies the logical fetch this config targets
func (c RestConfig) CacheKey() string {
	method := c.Method
	if method == "" {
		method = http.MethodGet
	}
	return fmt.Sprintf("rest:%s:%s:%s", method, c.URL, c.Body)
}

// RestResult is the outcome of a fetch
type RestResult struct {
	Data      []byte
	Status    Status
	Err       error
	FromCache bool
}

// restCacheEntry pairs cached data with its expiry window
type restCacheEntry struct {
	data     []byte
	cachedAt time.Time
	ttl      time.Duration
}

// RestClient fetches data from REST endpoints with an in-memory TTL cache.
// A new request for a configuration supersedes any in-flight request for
// the same configuration; there are never two overlapping requests against
// one logical fetch.
type RestClient struct {
	client *http.Client

	mu        sync.Mutex
	cache     map[string]restCacheEntry
	inflight  map[string]inflightRequest
	nextToken uint64
	now       func() time.Time
}

// inflightRequest tracks the cancel handle of the request currently owning
// a cache key, tagged so a finished request only unregisters itself.
type inflightRequest struct {
	cancel context.CancelFunc
	token  uint64
}

// NewRestClient creates a REST adapter with its own cache
func NewRestClient() *RestClient {
	return &RestClient{
		client:   &http.Client{},
		cache:    make(map[string]restCacheEntry),
		inflight: make(map[string]inflightRequest),
		now:      time.Now,
	}
}

// cached returns live cache data for key. Expiry is checked lazily on
// read with an inclusive boundary; a stale entry is removed as a side
// effect.
func (c *RestClient) cached(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.cachedAt.Add(entry.ttl)) {
		delete(c.cache, key)
		return nil, false
	}
	return entry.data, true
}

// Invalidate drops the cache entry for a configuration
func (c *RestClient) Invalidate(cfg RestConfig) {
	c.mu.Lock()
	delete(c.cache, cfg.CacheKey())
	c.mu.Unlock()
}

// Fetch performs the request described by cfg, serving from cache when a
// live entry exists. Pass skipCache to force a network round trip.
// Cancellation of ctx (component teardown, superseding request) yields a
// silent idle result, never an error.
func (c *RestClient) Fetch(ctx context.Context, cfg RestConfig, skipCache bool) RestResult {
	key := cfg.CacheKey()

	if !skipCache {
		if data, ok := c.cached(key); ok {
			return RestResult{Data: data, Status: StatusSuccess, FromCache: true}
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRestTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Supersede any in-flight request for the same logical fetch
	c.mu.Lock()
	if prev, ok := c.inflight[key]; ok {
		prev.cancel()
	}
	c.nextToken++
	token := c.nextToken
	c.inflight[key] = inflightRequest{cancel: cancel, token: token}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if current, ok := c.inflight[key]; ok && current.token == token {
			delete(c.inflight, key)
		}
		c.mu.Unlock()
	}()

	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(cfg.Body) > 0 {
		body = bytes.NewReader(cfg.Body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, cfg.URL, body)
	if err != nil {
		return RestResult{Status: StatusError, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// User-triggered cancellation is a silent no-op, not an error
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(reqCtx.Err(), context.Canceled) {
			return RestResult{Status: StatusIdle}
		}
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return RestResult{Status: StatusError, Err: fmt.Errorf("request timed out after %s: %w", timeout, err)}
		}
		return RestResult{Status: StatusError, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(reqCtx.Err(), context.Canceled) {
			return RestResult{Status: StatusIdle}
		}
		return RestResult{Status: StatusError, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RestResult{
			Status: StatusError,
			Err:    fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.mu.Lock()
	c.cache[key] = restCacheEntry{data: payload, cachedAt: c.now(), ttl: ttl}
	c.mu.Unlock()

	return RestResult{Data: payload, Status: StatusSuccess}
}
