package rdf

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a [Term] holds.
type Kind uint8

const (
	// KindIRI is a named resource identifier.
	KindIRI Kind = iota
	// KindBlank is an anonymous resource identifier, scoped to one document.
	KindBlank
	// KindLiteral is a literal value.
	KindLiteral
)

// String returns the lowercase name of the kind ("iri", "blank", "literal").
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind as its name so rows serialize readably.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by [Kind.MarshalText].
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "iri":
		*k = KindIRI
	case "blank":
		*k = KindBlank
	case "literal":
		*k = KindLiteral
	default:
		return fmt.Errorf("unknown term kind %q", b)
	}
	return nil
}

// Term is a node in an RDF triple.
//
// Value holds the IRI for [KindIRI], the label including the "_:" prefix for
// [KindBlank], and the lexical form for [KindLiteral]. Datatype and Language
// are only meaningful for literals.
//
// The zero value is an IRI term with an empty value and is not usable.
type Term struct {
	Kind     Kind
	Value    string
	Datatype string
	Language string
}

// IRI returns a named resource term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank returns a blank node term. The "_:" prefix is added when missing.
func Blank(label string) Term {
	if !strings.HasPrefix(label, "_:") {
		label = "_:" + label
	}
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Language: lang, Datatype: RDFLangString}
}

// IsIRI reports whether t is a named resource.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether t is an anonymous resource.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsResource reports whether t can be the subject of a triple.
func (t Term) IsResource() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// Key returns the identity used for store lookups and pattern matching.
// Resources use their identifier; literals are quoted so that a literal
// "#a" never collides with the resource #a.
func (t Term) Key() string {
	if t.Kind == KindLiteral {
		return fmt.Sprintf("%q", t.Value)
	}
	return t.Value
}

// Text returns the display form: the identifier for resources and the
// lexical form for literals.
func (t Term) Text() string {
	return t.Value
}

// String returns an N-Triples-like rendering, useful in logs and test output.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return t.Value
	default:
		switch {
		case t.Language != "":
			return fmt.Sprintf("%q@%s", t.Value, t.Language)
		case t.Datatype != "" && t.Datatype != XSDString:
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		default:
			return fmt.Sprintf("%q", t.Value)
		}
	}
}
