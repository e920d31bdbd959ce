package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed keeps full IRIs in labels.
	Detailed bool
	// HideValues drops leaf values, leaving only entities.
	HideValues bool
}

// ToDOT converts rows to Graphviz DOT.
func ToDOT(rows []tree.Row, opts Options) string {
	var nodes, edges bytes.Buffer
	declared := make(map[string]bool)

	entity := func(id string, hue float64, target bool) {
		if declared[id] {
			return
		}
		declared[id] = true
		attrs := []string{
			"label="+dotQuote(label(id, opts.Detailed)),
			"fillcolor="+dotQuote(fillColor(hue)),
		}
		if target {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&nodes, "  %s [%s];\n", dotQuote(id), strings.Join(attrs, ", "))
	}

	for i, row := range rows {
		if row.Predicate == tree.IDPredicate {
			continue
		}
		entity(row.Subject, row.Hue, row.Target && !row.Branch)
		edgeLabel := label(row.Predicate, opts.Detailed)

		switch {
		case row.Branch:
			if i+1 >= len(rows) {
				continue
			}
			child := rows[i+1]
			entity(child.Subject, child.Hue, child.Target)
			fmt.Fprintf(&edges, "  %s -> %s [label=%s];\n", dotQuote(row.Subject), dotQuote(child.Subject), dotQuote(edgeLabel))
		case opts.HideValues:
			continue
		case row.Hidden():
			id := fmt.Sprintf("value:%d", i)
			fmt.Fprintf(&nodes, "  %s [shape=point, label=\"\"];\n", dotQuote(id))
			fmt.Fprintf(&edges, "  %s -> %s [label=%s];\n", dotQuote(row.Subject), dotQuote(id), dotQuote(edgeLabel))
		default:
			id := fmt.Sprintf("value:%d", i)
			fmt.Fprintf(&nodes, "  %s [shape=note, style=filled, fillcolor=white, label=%s];\n", dotQuote(id), dotQuote(row.Object))
			fmt.Fprintf(&edges, "  %s -> %s [label=%s];\n", dotQuote(row.Subject), dotQuote(id), dotQuote(edgeLabel))
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`)

// dotQuote writes s as a DOT quoted string. Only quotes and backslashes are
// escaped; newlines become label line breaks.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func label(iri string, detailed bool) string {
	if detailed {
		return iri
	}
	if short := render.ShortenIRI(iri); short != "" {
		return short
	}
	return iri
}

// fillColor returns a light Graphviz HSV color for a hue.
func fillColor(hue float64) string {
	return fmt.Sprintf("%.3f 0.25 1.000", hue/360)
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitViewBox replaces Graphviz's pt-sized root element with one sized in
// user units, so the SVG scales when embedded.
func fitViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
