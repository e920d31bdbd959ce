// Package pipeline provides the render pipeline for prettymarkup.
//
// This package implements the complete convert → visit → render pipeline
// used by the CLI, the HTTP API and the MCP tool. By centralizing this
// logic, every entry point resolves input, derives base IRIs, colors
// entities and caches output the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Convert: Resolve raw JSON-LD or an HTML script block and run the
//     JSON-LD to RDF algorithm into an in-memory triple store
//  2. Visit: Walk every shape root depth-first, producing indented rows
//  3. Render: Generate output in various formats (HTML, text, JSON,
//     terminal, DOT, SVG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   `{"@id":"#book","@type":"Book","name":"Dune"}`,
//	    Target:  tree.Target{Kind: tree.TargetEntity, URI: "http://schema.org/Book"},
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Callers that want the rows themselves:
//
//	rows, doc, err := runner.Rows(ctx, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/jsonld"
	"github.com/matzehuels/prettymarkup/pkg/rdf"
	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and MCP
// =============================================================================

const (
	// DefaultSeed seeds the color source when no seed is given, so the same
	// input renders with the same colors.
	DefaultSeed = uint64(42)

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = render.FormatHTML

	// DefaultTitle is the page title of standalone HTML output.
	DefaultTitle = "prettymarkup"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	render.FormatHTML:     true,
	render.FormatText:     true,
	render.FormatJSON:     true,
	render.FormatTerminal: true,
	render.FormatDOT:      true,
	render.FormatSVG:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Input   string `json:"input"`
	BaseURL string `json:"base_url,omitempty"`

	// Visit options
	Target  tree.Target `json:"target,omitempty"`
	Seed    uint64      `json:"seed,omitempty"`
	Palette bool        `json:"palette,omitempty"` // Shuffled evenly spaced hues instead of random ones
	IDRows  bool        `json:"id_rows,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	FullIRIs   bool     `json:"full_iris,omitempty"`
	Standalone bool     `json:"standalone,omitempty"` // Wrap HTML output in a complete page
	Title      string   `json:"title,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // Bypass the render cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// ContextPolicy restricts remote JSON-LD contexts. Nil allows all.
	ContextPolicy jsonld.ContextPolicy `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the converted input. Nil when every artifact came from
	// the cache.
	Document *jsonld.Document

	// Rows is the visited row sequence, also on a cache hit.
	Rows []tree.Row

	// Base is the IRI relative identifiers were resolved against.
	Base string

	// Shapes are the rendered roots in document order.
	Shapes []rdf.Term

	// InputHash is the content hash of the input text.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the render cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TripleCount int
	ShapeCount  int
	RowCount    int
	ConvertTime time.Duration
	VisitTime   time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, text, json, term, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForVisit(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForVisit checks the fields needed to produce rows.
func (o *Options) ValidateForVisit() error {
	if err := errors.ValidateInput(o.Input); err != nil {
		return err
	}
	if err := errors.ValidateBaseURL(o.BaseURL); err != nil {
		return err
	}
	if err := errors.ValidateTarget(string(o.Target.Kind), o.Target.URI); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Colors returns the color source for a document with subjects distinct
// subjects.
func (o *Options) Colors(subjects int) tree.ColorSource {
	if o.Palette {
		return tree.NewPalette(subjects, o.Seed)
	}
	return tree.RandomHues(o.Seed)
}

// RenderKeyOpts returns cache key options for one rendered format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:     format,
		BaseURL:    o.BaseURL,
		TargetKind: string(o.Target.Kind),
		TargetURI:  o.Target.URI,
		Seed:       o.Seed,
		Palette:    o.Palette,
		IDRows:     o.IDRows,
		FullIRIs:   o.FullIRIs,
		Standalone: o.Standalone,
		Title:      o.Title,
	}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
