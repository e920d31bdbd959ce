// Package rdf provides the term model and the in-memory triple store that the
// rest of prettymarkup reads from.
//
// # Overview
//
// A JSON-LD document becomes a flat, unordered multiset of triples once it is
// converted to RDF. This package holds that multiset and answers the only
// question the tree builder ever asks: "which triples have this subject?".
//
// # Terms
//
// [Term] is a tagged variant with three kinds:
//
//   - [KindIRI]: a named resource such as http://schema.org/Book
//   - [KindBlank]: an anonymous resource such as _:b0
//   - [KindLiteral]: a string value, optionally typed or language-tagged
//
// Consumers switch on [Term.Kind] explicitly rather than inspecting strings.
//
// # Store
//
// [Store] keeps triples in insertion order ("store order") and maintains a
// subject index for [Store.BySubject]. General lookups go through
// [Store.Match] with a [Pattern] whose empty components act as wildcards:
//
//	s := rdf.NewStore()
//	s.Add(rdf.NewTriple(rdf.IRI("#book"), rdf.IRI(rdf.SchemaName), rdf.Literal("Dune")))
//	names := s.Match(rdf.Pattern{Predicate: rdf.SchemaName})
//
// A Store is built once per render call and read-only afterwards. Unknown
// subjects yield empty results, never errors.
package rdf
