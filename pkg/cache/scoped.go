package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend without colliding, e.g. "pagefit:" on a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key. A nil
// inner keyer means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConversionKey implements Keyer.
func (k *ScopedKeyer) ConversionKey(designHash string, opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(designHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
