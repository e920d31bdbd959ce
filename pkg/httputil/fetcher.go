package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pquerna/cachecontrol"

	"github.com/matzehuels/prettymarkup/pkg/buildinfo"
	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultAccept prefers JSON-LD but accepts HTML pages.
	DefaultAccept = "application/ld+json, application/json;q=0.9, text/html;q=0.8, */*;q=0.1"
)

// Fetcher retrieves URLs through a cache.
//
// A Fetcher is safe for concurrent use if its cache is.
type Fetcher struct {
	client      *http.Client
	cache       cache.Cache
	keyer       cache.Keyer
	namespace   string
	fallbackTTL time.Duration
	attempts    int
	delay       time.Duration
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithClient replaces the default http.Client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithKeyer replaces the default keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(f *Fetcher) { f.keyer = k }
}

// WithNamespace sets the key namespace ("page" by default).
func WithNamespace(ns string) Option {
	return func(f *Fetcher) { f.namespace = ns }
}

// WithFallbackTTL sets the TTL for responses without freshness headers.
func WithFallbackTTL(ttl time.Duration) Option {
	return func(f *Fetcher) { f.fallbackTTL = ttl }
}

// WithRetry sets the attempt count and initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(f *Fetcher) {
		f.attempts = attempts
		f.delay = delay
	}
}

// NewFetcher creates a fetcher. A nil cache disables caching.
func NewFetcher(c cache.Cache, opts ...Option) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		cache:       c,
		keyer:       cache.NewDefaultKeyer(),
		namespace:   "page",
		fallbackTTL: cache.TTLDocument,
		attempts:    3,
		delay:       time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of rawURL, from cache when fresh.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := f.keyer.HTTPKey(f.namespace, rawURL)
	if data, ok, err := f.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, f.namespace)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, f.namespace)

	var (
		body []byte
		ttl  time.Duration
	)
	err := cache.Retry(ctx, f.attempts, f.delay, func() error {
		var err error
		body, ttl, err = f.do(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		if err := f.cache.Set(ctx, key, body, ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, f.namespace, len(body))
		}
	}
	return body, nil
}

// do performs one request. The returned TTL is zero when the response must
// not be cached.
func (f *Fetcher) do(ctx context.Context, rawURL string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}
	req.Header.Set("Accept", DefaultAccept)
	req.Header.Set("User-Agent", "prettymarkup/"+buildinfo.Version)

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", rawURL)
		}
		return nil, 0, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, 0, errors.New(errors.ErrCodeNotFound, "%s: not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, 0, cache.Retryable(errors.New(errors.ErrCodeNetwork, "%s: %s", rawURL, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, 0, errors.New(errors.ErrCodeNetwork, "%s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, errors.MaxInputBytes+1))
	if err != nil {
		return nil, 0, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL))
	}
	if len(body) > errors.MaxInputBytes {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput,
			"%s: response exceeds %d bytes", rawURL, errors.MaxInputBytes)
	}
	return body, f.ttl(req, resp), nil
}

func (f *Fetcher) ttl(req *http.Request, resp *http.Response) time.Duration {
	reasons, expires, err := cachecontrol.CachableResponse(req, resp, cachecontrol.Options{PrivateCache: true})
	if err != nil || len(reasons) > 0 {
		return 0
	}
	if expires.IsZero() {
		return f.fallbackTTL
	}
	return max(time.Until(expires), 0)
}

// IsURL reports whether s looks like an http(s) URL rather than a file path
// or inline document.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// String describes the fetcher for debug logs.
func (f *Fetcher) String() string {
	return fmt.Sprintf("Fetcher(namespace=%s, fallbackTTL=%s)", f.namespace, f.fallbackTTL)
}
