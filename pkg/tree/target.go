package tree

import "github.com/matzehuels/prettymarkup/pkg/rdf"

// TargetKind selects what a [Target] matches against.
type TargetKind string

const (
	// TargetEntity matches entities whose rdf:type equals the target URI.
	TargetEntity TargetKind = "entity"
	// TargetProperty matches rows whose predicate equals the target URI.
	TargetProperty TargetKind = "property"
)

// Target describes what to highlight. The zero value highlights nothing.
type Target struct {
	Kind TargetKind `json:"type"`
	URI  string     `json:"uri"`
}

// IsZero reports whether no target is set.
func (t Target) IsZero() bool { return t.Kind == "" || t.URI == "" }

// matchesEntity reports whether any rdf:type triple among triples has the
// target URI as its object.
func (t Target) matchesEntity(triples []rdf.Triple) bool {
	if t.IsZero() || t.Kind != TargetEntity {
		return false
	}
	for _, tr := range triples {
		if rdf.IsTypePredicate(tr.Predicate.Value) && tr.Object.IsIRI() && tr.Object.Value == t.URI {
			return true
		}
	}
	return false
}

func (t Target) matchesProperty(predicate string) bool {
	return !t.IsZero() && t.Kind == TargetProperty && predicate == t.URI
}
