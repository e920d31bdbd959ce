// Package nodelink renders a row sequence as a node-link diagram.
//
// # Overview
//
// Rows already encode the graph the visitor walked: every branch row is an
// edge from its subject to the nested entity, and every leaf row is an edge
// to a value. [ToDOT] rebuilds that graph as Graphviz DOT, with entity nodes
// filled in their row-group hue and the target entity outlined in bold.
//
//	dot := nodelink.ToDOT(rows, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: entity labels carry the full IRI instead of the shortened
//     form, and edges keep full predicate IRIs.
//   - HideValues: leaf values are left out so only entities and the links
//     between them remain.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
