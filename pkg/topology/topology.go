// Package topology builds physical link layouts for a set of sites.
//
// A topology is built in two steps. [BuildSpanning] connects all sites with
// a minimum Euclidean spanning tree, and [AugmentResilience] then gives
// every leaf of that tree a second link so that no site hangs off a single
// point of failure. [Build] runs both.
//
// Randomness is always injected through a [Chooser]. Use [SeededChooser]
// for reproducible random runs and [LowestID] for fully deterministic ones.
package topology

import (
	"context"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Options controls [Build].
type Options struct {
	// Augment adds redundant links to the spanning tree's leaves.
	Augment bool

	// Chooser picks redundant link targets. Nil means [LowestID].
	Chooser Chooser
}

// Build returns a fresh network over nodes with a spanning tree and,
// optionally, leaf augmentation. Any links already present in the input are
// discarded.
//
// Unlike [BuildSpanning], Build rejects an empty node set.
func Build(ctx context.Context, nodes []network.Node, opts Options) (*network.Network, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTopology, "cannot build a topology without nodes")
	}
	edges, err := BuildSpanning(ctx, nodes)
	if err != nil {
		return nil, err
	}
	if opts.Augment {
		edges = AugmentResilience(nodes, edges, opts.Chooser)
	}
	return network.New(nodes, edges), nil
}
