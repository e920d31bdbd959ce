package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/httputil"
	"github.com/matzehuels/prettymarkup/pkg/jsonld"
	"github.com/matzehuels/prettymarkup/pkg/observability"
	"github.com/matzehuels/prettymarkup/pkg/rdf"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// ContextNamespace is the HTTP cache namespace for remote JSON-LD contexts.
const ContextNamespace = "context"

// rowsKey is the render cache slot holding the rows and document metadata
// next to the artifacts.
const rowsKey = "rows"

// cachedRows is what a cache hit needs besides the artifacts.
type cachedRows struct {
	Base    string     `json:"base"`
	Shapes  []rdf.Term `json:"shapes"`
	Triples int        `json:"triples"`
	Rows    []tree.Row `json:"rows"`
}

// Runner encapsulates pipeline execution with caching.
// The CLI, the HTTP API and the MCP tool all use it.
//
// The Runner is stateless except for the cache, the fetcher and the
// logger - it doesn't store render state between calls. Multiple goroutines
// can safely use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher jsonld.Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Remote JSON-LD contexts are fetched through the same cache.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Fetcher: httputil.NewFetcher(c,
			httputil.WithKeyer(keyer),
			httputil.WithNamespace(ContextNamespace),
			httputil.WithFallbackTTL(cache.TTLContext)),
	}
}

// Execute runs the complete convert → visit → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		InputHash: cache.Hash([]byte(opts.Input)),
	}

	if !opts.Refresh {
		if artifacts, meta, ok := r.cachedArtifacts(ctx, result.InputHash, opts); ok {
			result.Artifacts = artifacts
			result.Rows = meta.Rows
			result.Base = meta.Base
			result.Shapes = meta.Shapes
			result.Stats.TripleCount = meta.Triples
			result.Stats.ShapeCount = len(meta.Shapes)
			result.Stats.RowCount = len(meta.Rows)
			result.CacheHit = true
			opts.Logger.Debug("render cache hit", "hash", result.InputHash, "formats", opts.Formats)
			return result, nil
		}
	}

	rows, doc, err := r.rows(ctx, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Rows = rows
	result.Base = doc.Base
	result.Shapes = doc.Shapes

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(rows, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	meta, err := json.Marshal(cachedRows{
		Base:    doc.Base,
		Shapes:  doc.Shapes,
		Triples: result.Stats.TripleCount,
		Rows:    rows,
	})
	if err == nil {
		_ = r.Cache.Set(ctx, r.Keyer.RenderKey(result.InputHash, opts.RenderKeyOpts(rowsKey)), meta, cache.TTLRender)
	}
	for format, data := range artifacts {
		key := r.Keyer.RenderKey(result.InputHash, opts.RenderKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLRender)
	}

	return result, nil
}

// Rows converts and visits the input, returning the row sequence and the
// converted document. The render cache is not consulted.
func (r *Runner) Rows(ctx context.Context, opts Options) ([]tree.Row, *jsonld.Document, error) {
	if err := opts.ValidateForVisit(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	return r.rows(ctx, opts, &Stats{})
}

func (r *Runner) rows(ctx context.Context, opts Options, stats *Stats) ([]tree.Row, *jsonld.Document, error) {
	hooks := observability.Pipeline()

	convertStart := time.Now()
	hooks.OnConvertStart(ctx, len(opts.Input))
	doc, err := jsonld.NewConverter(r.Fetcher, jsonld.WithContextPolicy(opts.ContextPolicy)).
		Convert(ctx, opts.Input, opts.BaseURL)
	stats.ConvertTime = time.Since(convertStart)
	if err != nil {
		hooks.OnConvertComplete(ctx, 0, 0, stats.ConvertTime, err)
		return nil, nil, fmt.Errorf("convert: %w", err)
	}
	stats.TripleCount = doc.Store.Len()
	stats.ShapeCount = len(doc.Shapes)
	hooks.OnConvertComplete(ctx, stats.TripleCount, stats.ShapeCount, stats.ConvertTime, nil)

	opts.Logger.Info("converted document",
		"base", doc.Base,
		"triples", stats.TripleCount,
		"shapes", stats.ShapeCount,
		"duration", stats.ConvertTime)

	visitStart := time.Now()
	hooks.OnVisitStart(ctx, stats.ShapeCount)
	visitor := tree.NewVisitor(doc.Store, opts.Colors(doc.Store.SubjectCount()), tree.Options{
		Target: opts.Target,
		IDRows: opts.IDRows,
	})
	rows, err := visitor.VisitShapes(doc.Shapes)
	stats.VisitTime = time.Since(visitStart)
	hooks.OnVisitComplete(ctx, len(rows), stats.VisitTime, err)
	if err != nil {
		return nil, nil, fmt.Errorf("visit: %w", err)
	}
	stats.RowCount = len(rows)

	opts.Logger.Debug("visited shapes",
		"rows", stats.RowCount,
		"duration", stats.VisitTime)

	return rows, doc, nil
}

// cachedArtifacts returns every requested format and the rows from the
// render cache, or false if any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, inputHash string, opts Options) (map[string][]byte, *cachedRows, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.RenderKey(inputHash, opts.RenderKeyOpts(rowsKey)))
	if err != nil || !hit {
		return nil, nil, false
	}
	var meta cachedRows
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, nil, false
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(inputHash, opts.RenderKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, nil, false
		}
		artifacts[format] = data
	}
	return artifacts, &meta, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
