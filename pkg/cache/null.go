package cache

import (
	"context"
	"time"
)

var _ Cache = NullCache{}

// NullCache satisfies [Cache] without storing anything. With it every
// render converts its input again and every remote context is refetched,
// which is what --no-cache and cache.disabled ask for.
type NullCache struct{}

// NewNullCache returns the disabled backend.
func NewNullCache() NullCache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set drops data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
