// Package httputil fetches remote documents: HTML pages that embed JSON-LD,
// raw JSON-LD files and remote @context documents.
//
// # Fetcher
//
// [Fetcher] wraps an http.Client with three behaviours:
//
//   - Responses are stored in a [cache.Cache] under a [cache.Keyer] key.
//   - The entry TTL follows the origin's Cache-Control and Expires headers
//     (RFC 7234, via github.com/pquerna/cachecontrol). Responses the origin
//     marks uncacheable are returned but not stored; responses without any
//     freshness information get the fallback TTL.
//   - Network failures, 429 and 5xx responses are retried with exponential
//     backoff ([cache.Retry]).
//
// Usage:
//
//	f := httputil.NewFetcher(fileCache, httputil.WithNamespace("page"))
//	body, err := f.Fetch(ctx, "https://example.org/event.html")
//
// Every request reports to [observability.HTTP] and every cache lookup to
// [observability.Cache].
package httputil
