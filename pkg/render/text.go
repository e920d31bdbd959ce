package render

import (
	"bytes"
	"strings"

	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// TextOption configures [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	fullIRIs bool
	indent   string
}

// WithTextFullIRIs keeps predicate namespaces.
func WithTextFullIRIs() TextOption { return func(r *textRenderer) { r.fullIRIs = true } }

// WithTextIndent sets the per-level indent string (two spaces by default).
func WithTextIndent(s string) TextOption { return func(r *textRenderer) { r.indent = s } }

// RenderText renders one "predicate: object" line per row. Branch rows and
// rows with a hidden object end after the colon.
func RenderText(rows []tree.Row, opts ...TextOption) []byte {
	r := textRenderer{indent: "  "}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(strings.Repeat(r.indent, row.Indent))
		buf.WriteString(predicateText(row.Predicate, r.fullIRIs))
		buf.WriteByte(':')
		if !row.Branch && !row.Hidden() {
			buf.WriteByte(' ')
			buf.WriteString(row.Object)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
