package cache

import "time"

// Entry lifetimes per result kind.
const (
	TTLRoutes   = 7 * 24 * time.Hour
	TTLPlan     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys for planning results.
type Keyer interface {
	// RoutesKey identifies the routing table of a topology.
	RoutesKey(topologyHash string) string

	// PlanKey identifies a planned network: flows, capacities and costs
	// for one topology and one demand set.
	PlanKey(topologyHash, demandsHash string, opts PlanKeyOpts) string

	// ArtifactKey identifies a rendered image of a network.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts are the planning settings that change a plan.
type PlanKeyOpts struct {
	Catalog   []float64 `json:"catalog"`
	CostsHash string    `json:"costs"`
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Highlight []int   `json:"highlight,omitempty"`
	High      float64 `json:"high"`
	Overload  float64 `json:"overload"`
	Labels    bool    `json:"labels"`
}

// DefaultKeyer derives keys from a kind prefix and a SHA-256 of all inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RoutesKey implements Keyer.
func (k *DefaultKeyer) RoutesKey(topologyHash string) string {
	return hashKey("routes", topologyHash)
}

// PlanKey implements Keyer.
func (k *DefaultKeyer) PlanKey(topologyHash, demandsHash string, opts PlanKeyOpts) string {
	return hashKey("plan", topologyHash, demandsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
