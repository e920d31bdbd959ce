// Package cache provides the byte-level caching layer used for fetched
// documents, remote JSON-LD contexts and rendered output.
//
// # Backends
//
//   - [FileCache]: one JSON envelope per key under a directory, for the CLI
//   - [RedisCache]: shared cache for `prettymarkup serve` deployments
//   - [NullCache]: never stores anything, for tests and --no-cache
//
// # Keys
//
// Keys are built by a [Keyer] so that every component derives them the same
// way. [ScopedKeyer] prefixes keys, which lets several servers share a redis
// instance without colliding.
//
// Caches never hold traversal state: a render is recomputed from its input
// on every miss.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLDocument applies to fetched pages when the origin sends no
	// freshness information.
	TTLDocument = time.Hour

	// TTLContext applies to remote JSON-LD contexts.
	TTLContext = 7 * 24 * time.Hour

	// TTLRender applies to rendered output.
	TTLRender = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// RenderKeyOpts holds the options that change rendered output.
type RenderKeyOpts struct {
	Format     string `json:"format"`
	BaseURL    string `json:"base_url,omitempty"`
	TargetKind string `json:"target_kind,omitempty"`
	TargetURI  string `json:"target_uri,omitempty"`
	Seed       uint64 `json:"seed"`
	Palette    bool   `json:"palette,omitempty"`
	IDRows     bool   `json:"id_rows,omitempty"`
	FullIRIs   bool   `json:"full_iris,omitempty"`
	Standalone bool   `json:"standalone,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey is the key for a fetched URL within a namespace
	// ("page:", "context:").
	HTTPKey(namespace, url string) string

	// RenderKey is the key for one rendered format of an input.
	RenderKey(inputHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<url>".
func (DefaultKeyer) HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + url
}

// RenderKey hashes the input hash together with every option.
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return hashKey("render", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
