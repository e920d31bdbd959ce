// Package jsonld turns JSON-LD text into an [rdf.Store] and the list of
// shape roots to render.
//
// # Input resolution
//
// [ResolveInput] accepts raw JSON-LD or an HTML page. Text that is valid
// JSON passes through. Otherwise the text is parsed as HTML and scanned for
// <script type="application/ld+json"> elements: none leaves the text
// unchanged (conversion will then report the problem), one yields its body,
// more than one fails with [errors.ErrCodeAmbiguousInput].
//
// # Base IRI
//
// Relative identifiers resolve against the base chosen by [ResolveBase]:
// the explicit base when given, else the document's own @id when absolute,
// else [DefaultBasePrefix] joined with the @id, else [FallbackBase].
//
// # Conversion
//
// [Converter] runs the JSON-LD to RDF algorithm from
// github.com/piprate/json-gold. Before conversion every top-level entity
// (the root object, each element of a root array, or each @graph member)
// receives a [ShapePredicate] property holding its position, so that its
// subject can be recognised among the generated triples however its @id
// was expanded. The marker triples are removed from the resulting store.
//
// Remote contexts are loaded through [Loader], which answers schema.org
// context requests from an embedded copy and sends anything else through
// an optional cached [Fetcher].
package jsonld
