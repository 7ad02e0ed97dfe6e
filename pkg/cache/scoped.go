package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// backend without colliding.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:retail:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

func (k *ScopedKeyer) ExportKey(graphHash, format string) string {
	return k.prefix + k.inner.ExportKey(graphHash, format)
}
