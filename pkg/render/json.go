package render

import (
	"encoding/json"

	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONBase records the base IRI used for conversion.
func WithJSONBase(base string) JSONOption { return func(o *jsonOutput) { o.Base = base } }

// WithJSONShapes records the shape roots.
func WithJSONShapes(shapes []string) JSONOption { return func(o *jsonOutput) { o.Shapes = shapes } }

// WithJSONTarget records the highlight target.
func WithJSONTarget(t tree.Target) JSONOption {
	return func(o *jsonOutput) {
		if !t.IsZero() {
			o.Target = &t
		}
	}
}

// WithJSONSeed records the color seed, so a render can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(o *jsonOutput) { o.Seed = seed } }

type jsonOutput struct {
	Base   string       `json:"base,omitempty"`
	Shapes []string     `json:"shapes,omitempty"`
	Target *tree.Target `json:"target,omitempty"`
	Seed   uint64       `json:"seed,omitempty"`
	Rows   []tree.Row   `json:"rows"`
}

// RenderJSON serializes rows with metadata as indented JSON.
func RenderJSON(rows []tree.Row, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Rows: rows}
	if out.Rows == nil {
		out.Rows = []tree.Row{}
	}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
