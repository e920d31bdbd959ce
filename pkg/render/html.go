package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// IndentStep is the spacer width per indent level, in pixels.
const IndentStep = 30

// Stylesheet is embedded in standalone HTML output.
const Stylesheet = `
    body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; font-size: 14px; }
    .data-item .info { display: flex; gap: 12px; padding: 2px 0; }
    .data-item .predicate { display: flex; min-width: 240px; font-weight: 600; }
    .data-item .divider { margin-right: 8px; }
    .data-item .object { word-break: break-all; }
    .data-item.target { background: #fff3bf; }`

// Row renders one row as an HTML fragment. It depends only on its arguments.
func Row(predicate, object string, indent int, hue float64, target, hidden bool) string {
	class := "data-item"
	if target {
		class += " target"
	}
	objectAttr := ""
	if hidden {
		objectAttr = ` style="display: none"`
	}
	return fmt.Sprintf(`<div class="%s">
    <div class="info">
        <div class="predicate"><div style="width: %dpx"></div><div class="divider" style="border-left: 3px solid %s"></div><div>%s</div></div>
        <div class="object"%s>%s</div>
    </div>
</div>
`, class, indent*IndentStep, CSSColor(hue), html.EscapeString(predicate), objectAttr, html.EscapeString(object))
}

// CSSColor returns the CSS color for a hue.
func CSSColor(hue float64) string {
	return fmt.Sprintf("hsl(%.0f, 60%%, 50%%)", hue)
}

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	standalone bool
	fullIRIs   bool
	title      string
}

// WithStandalone wraps the rows in a complete HTML page.
func WithStandalone(title string) HTMLOption {
	return func(r *htmlRenderer) { r.standalone = true; r.title = title }
}

// WithHTMLFullIRIs keeps predicate namespaces.
func WithHTMLFullIRIs() HTMLOption { return func(r *htmlRenderer) { r.fullIRIs = true } }

// RenderHTML renders rows as HTML fragments in order.
func RenderHTML(rows []tree.Row, opts ...HTMLOption) []byte {
	var r htmlRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.standalone {
		fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s\n</style>\n</head>\n<body>\n<div id=\"pretty-markup\">\n",
			html.EscapeString(r.title), Stylesheet)
	}
	for _, row := range rows {
		buf.WriteString(Row(predicateText(row.Predicate, r.fullIRIs), row.Object, row.Indent, row.Hue, row.Target, row.Hidden()))
	}
	if r.standalone {
		buf.WriteString("</div>\n</body>\n</html>\n")
	}
	return buf.Bytes()
}
