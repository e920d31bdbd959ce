package tree

import "github.com/matzehuels/prettymarkup/pkg/rdf"

// IDPredicate is the pseudo-property used for the optional self-identifier row.
const IDPredicate = "@id"

// Row is one line of output.
//
// Branch rows introduce a nested entity: their Object is empty and the rows
// of the nested entity follow at Indent+1. Leaf rows carry the object text.
type Row struct {
	Subject    string   `json:"subject"`
	Predicate  string   `json:"predicate"`
	Object     string   `json:"object"`
	ObjectKind rdf.Kind `json:"object_kind"`
	Indent     int      `json:"indent"`
	Hue        float64  `json:"hue"`
	Target     bool     `json:"target,omitempty"`
	Branch     bool     `json:"branch,omitempty"`
}

// Hidden reports whether the object of a leaf row is an anonymous resource.
// Renderers keep such rows but hide the object text, since a blank node label
// means nothing to a reader.
func (r Row) Hidden() bool {
	return !r.Branch && r.ObjectKind == rdf.KindBlank
}
