package pipeline

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/observability"
	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

const bookInput = `{"@context":"https://schema.org","@id":"#book","@type":"Book","name":"Dune","author":"#a"}`

const eventInput = `{
  "@context": "https://schema.org",
  "@type": "Event",
  "name": "Game 3",
  "location": {
    "@type": "Place",
    "address": {"@type": "PostalAddress", "addressLocality": "Philadelphia"}
  },
  "offers": {"@type": "AggregateOffer", "lowPrice": "$35"}
}`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"text", false},
		{"json", false},
		{"term", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"HTML", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"html", "text"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"html", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"empty input", Options{}, errors.ErrCodeInvalidInput},
		{"blank input", Options{Input: "  \n"}, errors.ErrCodeInvalidInput},
		{"relative base", Options{Input: bookInput, BaseURL: "/books/"}, errors.ErrCodeInvalidBase},
		{"unknown target kind", Options{Input: bookInput, Target: tree.Target{Kind: "class", URI: "x"}}, errors.ErrCodeInvalidTarget},
		{"target without uri", Options{Input: bookInput, Target: tree.Target{Kind: tree.TargetEntity}}, errors.ErrCodeInvalidTarget},
		{"bad format", Options{Input: bookInput, Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"valid", Options{Input: bookInput, BaseURL: "https://books.example/"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	opts := Options{Input: bookInput, Formats: []string{"text", "html", "text"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", opts.Title, DefaultTitle)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "text" || opts.Formats[1] != "html" {
		t.Errorf("Formats = %v, want [text html]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bare := Options{Input: bookInput}
	if err := bare.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(bare.Formats) != 1 || bare.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", bare.Formats, DefaultFormat)
	}
}

func TestExecuteBookExample(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   bookInput,
		Formats: []string{render.FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := "author: #a\nname: Dune\ntype: http://schema.org/Book\n"
	if got := string(result.Artifacts[render.FormatText]); got != want {
		t.Errorf("text =\n%s\nwant\n%s", got, want)
	}

	if len(result.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row.Indent != 0 {
			t.Errorf("row %s indent = %d, want 0", row.Predicate, row.Indent)
		}
		if row.Hue != result.Rows[0].Hue {
			t.Errorf("row %s hue = %v, want %v", row.Predicate, row.Hue, result.Rows[0].Hue)
		}
		if row.Branch {
			t.Errorf("row %s should be a leaf", row.Predicate)
		}
	}

	if result.Stats.TripleCount != 3 || result.Stats.ShapeCount != 1 || result.Stats.RowCount != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.CacheHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteAmbiguousHTML(t *testing.T) {
	input := `<html><head>
<script type="application/ld+json">{"@id":"#a"}</script>
<script type="application/ld+json">{"@id":"#b"}</script>
</head></html>`

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Input: input})
	if !errors.Is(err, errors.ErrCodeAmbiguousInput) {
		t.Errorf("Execute error = %v, want %s", err, errors.ErrCodeAmbiguousInput)
	}
}

func TestExecuteConversionError(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Input: "not json, not html"})
	if !errors.Is(err, errors.ErrCodeConversion) {
		t.Errorf("Execute error = %v, want %s", err, errors.ErrCodeConversion)
	}
}

func TestExecuteAllFormats(t *testing.T) {
	formats := []string{render.FormatHTML, render.FormatText, render.FormatJSON, render.FormatTerminal, render.FormatDOT}
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Input:      eventInput,
		Formats:    formats,
		Standalone: true,
		Target:     tree.Target{Kind: tree.TargetEntity, URI: "http://schema.org/Place"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, f := range formats {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("format %s is empty", f)
		}
	}
	if html := string(result.Artifacts[render.FormatHTML]); !strings.HasPrefix(html, "<!DOCTYPE html>") || !strings.Contains(html, "data-item target") {
		t.Errorf("html output missing page wrapper or target row:\n%s", html)
	}
	if js := string(result.Artifacts[render.FormatJSON]); !strings.Contains(js, `"uri": "http://schema.org/Place"`) {
		t.Errorf("json output missing target:\n%s", js)
	}
	if !strings.HasPrefix(string(result.Artifacts[render.FormatDOT]), "digraph") {
		t.Errorf("dot output = %q", result.Artifacts[render.FormatDOT])
	}
}

func TestExecuteRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Input: bookInput, Formats: []string{render.FormatHTML, render.FormatText}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the render cache")
	}
	if second.Document != nil {
		t.Error("cache hit should not convert")
	}
	if !slices.Equal(second.Rows, first.Rows) {
		t.Errorf("cached rows = %v, want %v", second.Rows, first.Rows)
	}
	if second.Base != first.Base || !slices.Equal(second.Shapes, first.Shapes) {
		t.Errorf("cached base/shapes = %q %v, want %q %v", second.Base, second.Shapes, first.Base, first.Shapes)
	}
	if second.Stats.RowCount != first.Stats.RowCount || second.Stats.TripleCount != first.Stats.TripleCount {
		t.Errorf("cached stats = %+v, want %+v", second.Stats, first.Stats)
	}
	for _, f := range opts.Formats {
		if string(first.Artifacts[f]) != string(second.Artifacts[f]) {
			t.Errorf("cached %s differs", f)
		}
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the render cache")
	}

	other := Options{Input: bookInput, Formats: []string{render.FormatHTML}, Seed: 7}
	fourth, err := runner.Execute(ctx, other)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheHit {
		t.Error("a different seed should miss the render cache")
	}
}

func TestRowsIdempotent(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := Options{Input: eventInput, Palette: true, Seed: 3}

	a, _, err := runner.Rows(context.Background(), opts)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	b, doc, err := runner.Rows(context.Background(), opts)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if len(doc.Shapes) != 1 {
		t.Errorf("Shapes = %v, want one root", doc.Shapes)
	}

	var branches int
	for _, row := range a {
		if row.Branch {
			branches++
		}
	}
	if branches != 3 {
		t.Errorf("got %d branch rows, want 3 (location, address, offers)", branches)
	}
}

func TestRowsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewRunner(nil, nil, nil).Rows(ctx, Options{Input: bookInput}); err == nil {
		t.Error("Rows with a cancelled context should fail")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnConvertStart(context.Context, int) { h.record("convert") }
func (h *recordingHooks) OnVisitComplete(_ context.Context, rows int, _ time.Duration, err error) {
	if err == nil && rows > 0 {
		h.record("visit")
	}
}
func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	if err == nil {
		h.record("render:" + strings.Join(formats, ","))
	}
}

func TestExecuteFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Input: bookInput}); err != nil {
		t.Fatal(err)
	}

	want := []string{"convert", "visit", "render:html"}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
