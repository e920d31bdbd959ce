package jsonld

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/matzehuels/prettymarkup/pkg/errors"
)

// Fetcher retrieves remote documents. *httputil.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// schemaOrgContext is the part of the schema.org context the renderer
// relies on: every term maps into the schema.org vocabulary, and values are
// kept as written (no @id coercion), so a reference like "#author" prints
// as its own text.
var schemaOrgContext = map[string]any{
	"@context": map[string]any{
		"@vocab": "http://schema.org/",
	},
}

// Loader is the json-gold document loader used during conversion.
//
// A Loader carries the context of the conversion call that created it,
// because json-gold's loader interface has no context parameter.
type Loader struct {
	ctx      context.Context
	fetcher  Fetcher
	allow    ContextPolicy
	fallback ld.DocumentLoader
}

// ContextPolicy decides whether a remote context IRI may be loaded. The
// embedded schema.org context is always available.
type ContextPolicy func(iri string) bool

// AllowContextHosts permits remote contexts served from one of hosts, given
// as a bare host name or as host:port. With no hosts only the embedded
// schema.org context can be used.
func AllowContextHosts(hosts ...string) ContextPolicy {
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(h)] = true
	}
	return func(iri string) bool {
		u, err := url.Parse(iri)
		if err != nil {
			return false
		}
		return allowed[strings.ToLower(u.Host)] || allowed[strings.ToLower(u.Hostname())]
	}
}

// NewLoader returns a loader bound to ctx. With a nil fetcher, contexts that
// are not embedded are loaded with json-gold's default loader. A nil allow
// permits every context.
func NewLoader(ctx context.Context, fetcher Fetcher, allow ContextPolicy) *Loader {
	return &Loader{
		ctx:      ctx,
		fetcher:  fetcher,
		allow:    allow,
		fallback: ld.NewDefaultDocumentLoader(nil),
	}
}

// LoadDocument implements ld.DocumentLoader.
func (l *Loader) LoadDocument(iri string) (*ld.RemoteDocument, error) {
	if IsSchemaOrgContext(iri) {
		return &ld.RemoteDocument{DocumentURL: iri, Document: schemaOrgContext}, nil
	}
	if l.allow != nil && !l.allow(iri) {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed,
			errors.New(errors.ErrCodeInvalidInput, "remote context %s is not allowed", iri))
	}
	if l.fetcher == nil {
		return l.fallback.LoadDocument(iri)
	}

	body, err := l.fetcher.Fetch(l.ctx, iri)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	return &ld.RemoteDocument{DocumentURL: iri, Document: doc}, nil
}

// IsSchemaOrgContext reports whether iri names the schema.org context.
func IsSchemaOrgContext(iri string) bool {
	u, err := url.Parse(iri)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "schema.org" {
		return false
	}
	switch strings.TrimSuffix(u.Path, "/") {
	case "", "/docs/jsonldcontext.jsonld", "/docs/jsonldcontext.json":
		return true
	}
	return false
}

var _ ld.DocumentLoader = (*Loader)(nil)
