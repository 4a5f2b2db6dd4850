package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without seeing each other's entries.
//
// Example usage:
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

// ResultKey generates a prefixed key for analysis results.
func (k *ScopedKeyer) ResultKey(normalized string) string {
	return k.prefix + k.inner.ResultKey(normalized)
}

// TreeKey generates a prefixed key for rendered trees.
func (k *ScopedKeyer) TreeKey(normalized, format string) string {
	return k.prefix + k.inner.TreeKey(normalized, format)
}
