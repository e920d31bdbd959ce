package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/prettymarkup/pkg/rdf"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

func rows() []tree.Row {
	return []tree.Row{
		{Subject: "https://example.org/#book", Predicate: tree.IDPredicate, Object: "https://example.org/#book", Hue: 10},
		{Subject: "https://example.org/#book", Predicate: "http://schema.org/author", Branch: true, Hue: 10},
		{Subject: "https://example.org/#a", Predicate: "http://schema.org/name", Object: "Frank Herbert", ObjectKind: rdf.KindLiteral, Indent: 1, Hue: 200, Target: true},
		{Subject: "https://example.org/#book", Predicate: "http://schema.org/offers", Object: "_:b0", ObjectKind: rdf.KindBlank, Hue: 10},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(rows(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"https://example.org/#book" [label="book"`,
		`"https://example.org/#a" [label="a"`,
		`"https://example.org/#book" -> "https://example.org/#a" [label="author"]`,
		`label="Frank Herbert"`,
		`shape=point`,
		"penwidth=3",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "@id") {
		t.Error("@id rows should not become edges")
	}
	if n := strings.Count(dot, `"https://example.org/#book" [`); n != 1 {
		t.Errorf("entity declared %d times, want 1", n)
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(rows(), Options{Detailed: true, HideValues: true})
	if strings.Contains(dot, "Frank Herbert") || strings.Contains(dot, "shape=point") {
		t.Errorf("HideValues should drop leaf values:\n%s", dot)
	}
	if !strings.Contains(dot, `label="http://schema.org/author"`) {
		t.Errorf("Detailed should keep full IRIs:\n%s", dot)
	}
}

func TestDOTQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café Ölbaum", `"Café Ölbaum"`},
		{"a\tb", "\"a\tb\""},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\dir`, `"C:\\dir"`},
		{"line one\nline two", `"line one\nline two"`},
		{"日本語", `"日本語"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := dotQuote(tt.in); got != tt.want {
				t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOTKeepsUnicodeValues(t *testing.T) {
	rows := []tree.Row{
		{Subject: "https://example.org/#café", Predicate: "http://schema.org/name", Object: "Crème \"brûlée\"\tdessert", ObjectKind: rdf.KindLiteral, Hue: 30},
	}
	dot := ToDOT(rows, Options{})
	for _, want := range []string{
		`"https://example.org/#café" [label="café"`,
		"label=\"Crème \\\"brûlée\\\"\tdessert\"]",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `\u00`) || strings.Contains(dot, `\t`) {
		t.Errorf("DOT contains Go escapes:\n%s", dot)
	}
	if _, err := RenderSVG(dot); err != nil {
		t.Errorf("RenderSVG: %v", err)
	}
}

func TestFitViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(fitViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("fitViewBox() = %s", out)
	}
	if got := fitViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("fitViewBox without viewBox changed input: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(rows(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
