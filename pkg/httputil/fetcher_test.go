package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/errors"
)

func newTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return c
}

func TestFetcherCachesFreshResponses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "max-age=300")
		w.Write([]byte(`{"@id":"#x"}`))
	}))
	defer srv.Close()

	f := NewFetcher(newTestCache(t))
	ctx := context.Background()

	for range 2 {
		body, err := f.Fetch(ctx, srv.URL)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if string(body) != `{"@id":"#x"}` {
			t.Errorf("body = %q", body)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestFetcherSkipsUncacheable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Cache-Control", "no-store")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(newTestCache(t))
	for range 2 {
		if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestFetcherStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, 1},
		{"server error is retried", http.StatusBadGateway, errors.ErrCodeNetwork, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			f := NewFetcher(nil, WithRetry(2, time.Millisecond))
			_, err := f.Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tt.want) {
				t.Errorf("Fetch error = %v, want %s", err, tt.want)
			}
			if n := hits.Load(); n != tt.calls {
				t.Errorf("server hit %d times, want %d", n, tt.calls)
			}
		})
	}
}

func TestFetcherRejectsBadURL(t *testing.T) {
	f := NewFetcher(nil)
	if _, err := f.Fetch(context.Background(), "file:///etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fetch(file://) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestFetcherSendsAcceptHeader(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	if _, err := NewFetcher(nil).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if accept != DefaultAccept {
		t.Errorf("Accept = %q, want %q", accept, DefaultAccept)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org/page.html", true},
		{"http://localhost:8080", true},
		{"page.html", false},
		{"-", false},
		{`{"@id":"#x"}`, false},
		{"ftp://example.org/x", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
