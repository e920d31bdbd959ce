// Package pkg provides the core libraries for prettymarkup, a pretty-printer
// for JSON-LD structured data.
//
// # Overview
//
// prettymarkup converts a JSON-LD document, or the single JSON-LD block
// embedded in an HTML page, to RDF triples and prints them as an indented
// tree: one row per property, one color per entity, nested entities expanded
// in place. The pkg directory is organized into three areas:
//
//  1. Domain logic ([rdf], [jsonld], [tree], [render])
//  2. Orchestration ([pipeline]) shared by the CLI, the HTTP API and the MCP
//     server
//  3. Infrastructure ([cache], [httputil], [config], [errors],
//     [observability], [server], [buildinfo])
//
// # Architecture
//
// The data flow through prettymarkup:
//
//	JSON-LD text or HTML page
//	         ↓
//	    [jsonld] package (pick the script block, derive the base, ToRDF)
//	         ↓
//	    [rdf] package (triple store, one root term per shape)
//	         ↓
//	    [tree] package (entity visitor: rows with indent, hue, highlight)
//	         ↓
//	    [render] package (HTML, text, JSON, terminal, DOT/SVG)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   `{"@context":"https://schema.org","@type":"Book","name":"Dune"}`,
//	    Formats: []string{render.FormatText},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifacts[render.FormatText])
//
// Or step by step:
//
//	doc, _ := jsonld.NewConverter(nil).Convert(ctx, text, "")
//	v := tree.NewVisitor(doc.Store, tree.RandomHues(42), tree.Options{})
//	rows, _ := v.VisitShapes(doc.Shapes)
//	html := render.RenderHTML(rows, render.WithStandalone("Dune"))
//
// # Caching
//
// [cache] holds remote JSON-LD contexts, fetched pages and rendered
// artifacts. Visit state is never cached: every call builds its own visited
// set and color source. Three backends: FileCache (CLI), RedisCache (shared
// deployments of the HTTP API), NullCache (tests, --no-cache).
//
// [rdf]: github.com/matzehuels/prettymarkup/pkg/rdf
// [jsonld]: github.com/matzehuels/prettymarkup/pkg/jsonld
// [tree]: github.com/matzehuels/prettymarkup/pkg/tree
// [render]: github.com/matzehuels/prettymarkup/pkg/render
// [pipeline]: github.com/matzehuels/prettymarkup/pkg/pipeline
// [cache]: github.com/matzehuels/prettymarkup/pkg/cache
// [httputil]: github.com/matzehuels/prettymarkup/pkg/httputil
// [config]: github.com/matzehuels/prettymarkup/pkg/config
// [errors]: github.com/matzehuels/prettymarkup/pkg/errors
// [observability]: github.com/matzehuels/prettymarkup/pkg/observability
// [server]: github.com/matzehuels/prettymarkup/pkg/server
// [buildinfo]: github.com/matzehuels/prettymarkup/pkg/buildinfo
package pkg
