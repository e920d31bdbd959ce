// Package tree materializes a flat triple store into an ordered sequence of
// indented rows.
//
// # Overview
//
// RDF triples carry no order and no hierarchy. [Visitor] walks from a root
// subject and decides, triple by triple, whether the object is itself an
// entity to expand (it has outgoing triples) or a leaf value to print. The
// result is a depth-first, pre-order sequence of [Row] values:
//
//	author    ─ #a
//	name      ─ Dune
//	type      ─ http://schema.org/Book
//
// # Ordering
//
// Within one entity's row group, properties keep their store order except
// for schema:name and rdf:type, which are moved to the end of the group:
// other properties first, then name, then type. See [Order].
//
// # Cycles and shared nodes
//
// Each traversal from a root threads a [Visited] set through the recursion.
// A subject is expanded at most once per root; a second reference renders as
// a leaf row carrying the reference text. Shapes (independent roots) each
// get a fresh set from [Visitor.VisitShapes].
//
// # Colors
//
// Every expanded subject gets one hue (0–360) for its whole row group. Hues
// come from a [ColorSource]: [RandomHues] for seeded pseudo-random colors,
// [NewPalette] for a pre-shuffled palette sized to the number of subjects,
// or [FixedHues] for deterministic tests. The visitor remembers the hue it
// gave each subject, so an entity keeps its color across shapes.
//
// # Highlighting
//
// A [Target] flags rows for highlighting: an entity target flags every row
// of an entity whose rdf:type matches, a property target flags rows whose
// predicate matches. Highlighting never changes traversal.
package tree
