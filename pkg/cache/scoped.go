package cache

// ScopedKeyer wraps a Keyer with a prefix so that results computed against
// different element tables never collide in a shared backend.
//
// Example usage:
//
//	// Results computed with an external Xsect.dat
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "xsect:"+Hash(data)[:16]+":")
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

// ResultKey generates a prefixed key for result caching.
func (k *ScopedKeyer) ResultKey(opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(opts)
}
