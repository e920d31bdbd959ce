package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for fetched documents.
func (k *ScopedKeyer) HTTPKey(namespace, url string) string {
	return k.prefix + k.inner.HTTPKey(namespace, url)
}

// RenderKey generates a prefixed key for rendered output.
func (k *ScopedKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(inputHash, opts)
}
