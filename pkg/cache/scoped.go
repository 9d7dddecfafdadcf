package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several family
// trees can share one cache without colliding.
//
//	smiths := NewScopedKeyer(NewDefaultKeyer(), "family:smiths:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiagramKey returns the prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(membersHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(membersHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
