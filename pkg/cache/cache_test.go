package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	keyer := NewDefaultKeyer()
	keys := []string{
		keyer.HTTPKey("context", "https://w3id.org/security/v1"),
		keyer.RenderKey(Hash([]byte(`{"@id":"#a"}`)), RenderKeyOpts{Format: "html"}),
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if err := c.Set(ctx, key, []byte("value"), TTLRender); err != nil {
				t.Errorf("Set error: %v", err)
			}
			data, hit, err := c.Get(ctx, key)
			if err != nil || hit || data != nil {
				t.Errorf("Get after Set = %q, %v, %v; want a miss", data, hit, err)
			}
			if err := c.Delete(ctx, key); err != nil {
				t.Errorf("Delete error: %v", err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	httpKey := k.HTTPKey("context", "https://schema.org/")
	if httpKey != "http:context:https://schema.org/" {
		t.Errorf("HTTPKey unexpected: %s", httpKey)
	}

	// RenderKey should include options in hash
	rk1 := k.RenderKey("hash123", RenderKeyOpts{Format: "html", Seed: 1})
	rk2 := k.RenderKey("hash123", RenderKeyOpts{Format: "text", Seed: 1})
	rk3 := k.RenderKey("hash123", RenderKeyOpts{Format: "html", Seed: 2})
	if rk1 == rk2 || rk1 == rk3 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
	if rk1 != k.RenderKey("hash123", RenderKeyOpts{Format: "html", Seed: 1}) {
		t.Error("RenderKey should be deterministic")
	}
	if !strings.HasPrefix(rk1, "render:") {
		t.Errorf("RenderKey should be prefixed: %s", rk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	// All keys should be prefixed
	httpKey := scoped.HTTPKey("page", "https://example.org/")
	if httpKey != "staging:http:page:https://example.org/" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", httpKey)
	}

	renderKey := scoped.RenderKey("abc", RenderKeyOpts{})
	if !strings.HasPrefix(renderKey, "staging:render:") {
		t.Errorf("ScopedKeyer RenderKey should be prefixed: %s", renderKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.HTTPKey("test", "key")
	if key != "prefix:http:test:key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get(key) = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("PRETTYMARKUP_REDIS_ADDR")
	if addr == "" {
		t.Skip("PRETTYMARKUP_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "prettymarkup-test:" + t.Name()
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
}

var (
	errNotFound = errors.New("not found")
	errNetwork  = errors.New("network error")
)

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errNetwork) {
		t.Error("wrapped error should unwrap to the original")
	}
	if IsRetryable(errNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   error
	}{
		{"success on first try", 0, true, 1, nil},
		{"non-retryable stops immediately", 5, false, 1, errNotFound},
		{"retryable succeeds after retry", 1, true, 2, nil},
		{"attempts exhausted", 5, true, 3, errNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(errNetwork)
				}
				return errNotFound
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Retry error = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
