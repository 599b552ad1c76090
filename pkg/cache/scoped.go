package cache

// ScopedKeyer wraps a Keyer with a namespace prefix. Deployments that
// share a Redis database use distinct prefixes so their entries never
// collide:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "netplan:staging:")
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

// RoutesKey generates a prefixed routing table key.
func (k *ScopedKeyer) RoutesKey(topologyHash string) string {
	return k.prefix + k.inner.RoutesKey(topologyHash)
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(topologyHash, demandsHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(topologyHash, demandsHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(networkHash, opts)
}
