// Package render turns the row sequence produced by [tree.Visitor] into
// output.
//
// # Row Renderer
//
// [Row] is the single-row primitive: a pure function of the predicate text,
// object text, indent, hue and highlight flag that returns one HTML row. The
// indent becomes a spacer of indent×[IndentStep] pixels followed by a
// divider in the entity's color. Rows whose object is a blank node keep
// their element but hide the object text, so row counts always match the
// traversal.
//
// # Sinks
//
//   - [RenderHTML]: rows as <div class="data-item"> elements, optionally a
//     standalone page with a stylesheet
//   - [RenderText]: plain indented text, one "predicate: object" per line
//   - [RenderJSON]: the row list plus document metadata
//   - [RenderTerminal]: lipgloss-styled lines with colored dividers
//
// Node-link diagrams of the same rows live in the [nodelink] subpackage.
//
// # IRI shortening
//
// Predicates are displayed without their namespace by default
// ("http://schema.org/name" shows as "name"); see [ShortenIRI].
//
// [nodelink]: github.com/matzehuels/prettymarkup/pkg/render/nodelink
package render
