package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/prettymarkup/pkg/buildinfo"
	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
)

const bookInput = `{"@context":"https://schema.org","@id":"#book","@type":"Book","name":"Dune","author":"#a"}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	srv := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postRender(t *testing.T, srv *httptest.Server, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/v1/render", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	resp := postRender(t, srv, RenderRequest{
		Input:   bookInput,
		Formats: []string{"text", "html"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}

	if _, err := uuid.Parse(out.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", out.ID, err)
	}
	if h := resp.Header.Get(RenderIDHeader); h != out.ID {
		t.Errorf("%s = %q, want %q", RenderIDHeader, h, out.ID)
	}
	if want := "author: #a\nname: Dune\ntype: http://schema.org/Book\n"; out.Artifacts["text"] != want {
		t.Errorf("text = %q, want %q", out.Artifacts["text"], want)
	}
	if !strings.Contains(out.Artifacts["html"], `class="data-item"`) {
		t.Errorf("html = %q", out.Artifacts["html"])
	}
	if len(out.Rows) != 3 || len(out.Shapes) != 1 {
		t.Errorf("rows = %d, shapes = %v", len(out.Rows), out.Shapes)
	}
	if out.Base != "https://example.org/#book" {
		t.Errorf("Base = %q", out.Base)
	}
}

func TestRenderErrors(t *testing.T) {
	twoBlocks := `<script type="application/ld+json">{}</script><script type="application/ld+json">{}</script>`

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed body", `{"input":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"empty input", `{"input":""}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", `{"input":"{}","formats":["pdf"]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad target", `{"input":"{}","target":{"type":"class","uri":"x"}}`, http.StatusBadRequest, "INVALID_TARGET"},
		{"ambiguous html", mustJSON(t, RenderRequest{Input: twoBlocks}), http.StatusBadRequest, "AMBIGUOUS_INPUT"},
		{"conversion failure", `{"input":"plain words"}`, http.StatusUnprocessableEntity, "CONVERSION_FAILED"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var out ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if out.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", out.Error.Code, tt.code)
			}
			if out.ID == "" || out.Error.Message == "" {
				t.Errorf("incomplete error response: %+v", out)
			}
		})
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRenderAppliesDefaults(t *testing.T) {
	srv := newTestServer(t, WithDefaults(func(o *pipeline.Options) {
		if len(o.Formats) == 0 {
			o.Formats = []string{"json"}
		}
	}))
	resp := postRender(t, srv, RenderRequest{Input: bookInput})

	var out RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out.Artifacts["json"]; !ok || len(out.Artifacts) != 1 {
		t.Errorf("artifacts = %v, want only json", out.Artifacts)
	}
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var info buildinfo.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info != buildinfo.Get() {
		t.Errorf("version = %+v, want %+v", info, buildinfo.Get())
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/render status = %d, want 405", resp.StatusCode)
	}
}

func decodeRender(t *testing.T, resp *http.Response) RenderResponse {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestRenderCacheHitKeepsRows(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, log.New(io.Discard))
	srv := httptest.NewServer(New(runner).Handler())
	t.Cleanup(srv.Close)

	req := RenderRequest{Input: bookInput, Formats: []string{"text"}}
	first := decodeRender(t, postRender(t, srv, req))
	second := decodeRender(t, postRender(t, srv, req))

	if first.CacheHit || !second.CacheHit {
		t.Fatalf("cache_hit = %v then %v, want false then true", first.CacheHit, second.CacheHit)
	}
	if len(second.Rows) != 3 || !slices.Equal(second.Rows, first.Rows) {
		t.Errorf("cached rows = %v, want %v", second.Rows, first.Rows)
	}
	if !slices.Equal(second.Shapes, first.Shapes) || len(second.Shapes) != 1 {
		t.Errorf("cached shapes = %v, want %v", second.Shapes, first.Shapes)
	}
	if second.Base != first.Base || second.Base == "" {
		t.Errorf("cached base = %q, want %q", second.Base, first.Base)
	}
	if second.Artifacts["text"] != first.Artifacts["text"] {
		t.Errorf("cached text = %q, want %q", second.Artifacts["text"], first.Artifacts["text"])
	}
}

func TestRenderRemoteContexts(t *testing.T) {
	var hits atomic.Int32
	contexts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/ld+json")
		io.WriteString(w, `{"@context":{"@vocab":"http://vocab.example/"}}`)
	}))
	t.Cleanup(contexts.Close)
	u, err := url.Parse(contexts.URL)
	if err != nil {
		t.Fatal(err)
	}
	input := `{"@context":"` + contexts.URL + `/ctx.jsonld","@id":"http://ex.org/1","name":"x"}`

	tests := []struct {
		name   string
		opts   []Option
		status  int
		fetched bool
	}{
		{"embedded only by default", nil, http.StatusUnprocessableEntity, false},
		{"unlisted host", []Option{WithContextHosts("vocab.example")}, http.StatusUnprocessableEntity, false},
		{"listed host", []Option{WithContextHosts(u.Host)}, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits.Store(0)
			srv := newTestServer(t, tt.opts...)
			resp := postRender(t, srv, RenderRequest{Input: input, Formats: []string{"text"}})
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := hits.Load() > 0; got != tt.fetched {
				t.Errorf("context fetched = %v, want %v", got, tt.fetched)
			}
		})
	}

	t.Run("schema.org still resolves", func(t *testing.T) {
		srv := newTestServer(t)
		out := decodeRender(t, postRender(t, srv, RenderRequest{Input: bookInput, Formats: []string{"text"}}))
		if len(out.Rows) != 3 {
			t.Errorf("rows = %v", out.Rows)
		}
	})
}
