package pipeline

import (
	"fmt"

	"github.com/matzehuels/prettymarkup/pkg/jsonld"
	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/render/nodelink"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// Render generates output artifacts in the requested formats.
// doc supplies metadata for the JSON format and may be nil.
func Render(rows []tree.Row, doc *jsonld.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatHTML:
			data = render.RenderHTML(rows, htmlOptions(opts)...)
		case render.FormatText:
			data = render.RenderText(rows, textOptions(opts)...)
		case render.FormatJSON:
			data, err = render.RenderJSON(rows, jsonOptions(doc, opts)...)
		case render.FormatTerminal:
			data = []byte(render.RenderTerminal(rows, terminalOptions(opts)...))
		case render.FormatDOT, render.FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(rows, nodelink.Options{Detailed: opts.FullIRIs})
			}
			if format == render.FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(dot)
			}
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func htmlOptions(opts Options) []render.HTMLOption {
	var out []render.HTMLOption
	if opts.FullIRIs {
		out = append(out, render.WithHTMLFullIRIs())
	}
	if opts.Standalone {
		out = append(out, render.WithStandalone(opts.Title))
	}
	return out
}

func textOptions(opts Options) []render.TextOption {
	if opts.FullIRIs {
		return []render.TextOption{render.WithTextFullIRIs()}
	}
	return nil
}

func terminalOptions(opts Options) []render.TerminalOption {
	if opts.FullIRIs {
		return []render.TerminalOption{render.WithTerminalFullIRIs()}
	}
	return nil
}

func jsonOptions(doc *jsonld.Document, opts Options) []render.JSONOption {
	out := []render.JSONOption{
		render.WithJSONTarget(opts.Target),
		render.WithJSONSeed(opts.Seed),
	}
	if doc != nil {
		shapes := make([]string, len(doc.Shapes))
		for i, s := range doc.Shapes {
			shapes[i] = s.Value
		}
		out = append(out, render.WithJSONBase(doc.Base), render.WithJSONShapes(shapes))
	}
	return out
}
