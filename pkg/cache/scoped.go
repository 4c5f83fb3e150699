package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// environments can share one backend without colliding.
//
// Example usage:
//
//	// Staging and production sharing one Redis instance
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

// SpecKey generates a prefixed key for a resolved product spec.
func (k *ScopedKeyer) SpecKey(brand, model string) string {
	return k.prefix + k.inner.SpecKey(brand, model)
}

// HTTPKey generates a prefixed key for upstream response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
