package rdf

import "fmt"

// Triple is a subject–predicate–object statement.
// The predicate is always an IRI term.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple creates a triple from its three components.
func NewTriple(subject, predicate, object Term) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// String returns the triple in N-Triples form.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// IsValid reports whether the triple can be stored: a resource subject, an
// IRI predicate, and a non-empty object.
func (t Triple) IsValid() bool {
	return t.Subject.IsResource() && t.Subject.Value != "" &&
		t.Predicate.IsIRI() && t.Predicate.Value != "" &&
		(t.Object.Value != "" || t.Object.IsLiteral())
}

// Pattern selects triples by term key (see [Term.Key]).
// Empty components are wildcards that match any value.
type Pattern struct {
	Subject   string
	Predicate string
	Object    string
}

// Matches reports whether t satisfies the pattern.
func (p Pattern) Matches(t Triple) bool {
	if p.Subject != "" && p.Subject != t.Subject.Key() {
		return false
	}
	if p.Predicate != "" && p.Predicate != t.Predicate.Key() {
		return false
	}
	if p.Object != "" && p.Object != t.Object.Key() {
		return false
	}
	return true
}

// WildcardCount returns the number of wildcard components.
func (p Pattern) WildcardCount() int {
	n := 0
	for _, c := range []string{p.Subject, p.Predicate, p.Object} {
		if c == "" {
			n++
		}
	}
	return n
}
