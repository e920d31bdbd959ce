package jsonld

import (
	"net/url"
	"strings"
)

const (
	// DefaultBasePrefix is joined with a relative document @id.
	DefaultBasePrefix = "https://example.org/"

	// FallbackBase is used when nothing else determines a base.
	FallbackBase = "https://example.org/"
)

// ResolveBase picks the base IRI for a parsed document. explicit wins when
// non-empty.
func ResolveBase(doc any, explicit string) string {
	if explicit != "" {
		return explicit
	}
	id := documentID(doc)
	switch {
	case id == "" || strings.HasPrefix(id, "_:"):
		return FallbackBase
	case isAbsolute(id):
		return id
	default:
		return DefaultBasePrefix + strings.TrimPrefix(id, "/")
	}
}

// documentID returns the @id of the root object, if any.
func documentID(doc any) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := m["@id"].(string)
	return id
}

func isAbsolute(iri string) bool {
	u, err := url.Parse(iri)
	return err == nil && u.IsAbs()
}
