package rdf

// Well-known vocabulary IRIs.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFType       = RDFNamespace + "type"
	RDFLangString = RDFNamespace + "langString"

	XSDString = "http://www.w3.org/2001/XMLSchema#string"

	// SchemaNamespace is the namespace the schema.org context maps terms into.
	SchemaNamespace = "http://schema.org/"
	SchemaName      = SchemaNamespace + "name"

	// SchemaNamespaceHTTPS is used by documents that declare @vocab explicitly
	// with the https scheme.
	SchemaNamespaceHTTPS = "https://schema.org/"
	SchemaNameHTTPS      = SchemaNamespaceHTTPS + "name"
)

// IsTypePredicate reports whether iri is rdf:type.
func IsTypePredicate(iri string) bool {
	return iri == RDFType
}

// IsNamePredicate reports whether iri is schema:name under either scheme.
func IsNamePredicate(iri string) bool {
	return iri == SchemaName || iri == SchemaNameHTTPS
}
