package topology

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/netplan/pkg/network"
)

// Chooser picks the target of a redundant link for a leaf node from a
// non-empty list of eligible candidate ids sorted ascending.
type Chooser func(leaf int, candidates []int) int

// RandomChooser picks uniformly at random from the candidates using rng.
// The same seeded source always yields the same topology.
func RandomChooser(rng *rand.Rand) Chooser {
	return func(_ int, candidates []int) int {
		return candidates[rng.IntN(len(candidates))]
	}
}

// SeededChooser returns a RandomChooser over a PCG source derived from seed.
func SeededChooser(seed uint64) Chooser {
	return RandomChooser(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

// LowestID always picks the smallest eligible id.
func LowestID(_ int, candidates []int) int {
	return candidates[0]
}

// AugmentResilience adds one redundant link per leaf node.
//
// Leaves are the nodes with degree exactly one in the input edge list; they
// are processed in ascending id order. For each leaf the eligible targets
// are every other node that is neither the leaf's original neighbor nor
// already linked to it, taking links added earlier in the pass into
// account. A leaf with no eligible target is left unchanged.
//
// This removes degree-one nodes only. Cut vertices of higher degree are not
// detected.
//
// The input slice is not modified. The returned slice holds the original
// edges followed by the added ones.
func AugmentResilience(nodes []network.Node, edges []network.Edge, choose Chooser) []network.Edge {
	if choose == nil {
		choose = LowestID
	}
	out := slices.Clone(edges)

	byID := make(map[int]network.Node, len(nodes))
	ids := make([]int, 0, len(nodes))
	for _, nd := range nodes {
		byID[nd.ID] = nd
		ids = append(ids, nd.ID)
	}
	slices.Sort(ids)

	degree := make(map[int]int, len(nodes))
	neighbor := make(map[int]int, len(nodes))
	adjacent := make(map[network.EdgeKey]bool, len(edges))
	for _, e := range edges {
		degree[e.From]++
		degree[e.To]++
		neighbor[e.From] = e.To
		neighbor[e.To] = e.From
		adjacent[e.Key()] = true
	}

	for _, leaf := range ids {
		if degree[leaf] != 1 {
			continue
		}
		var candidates []int
		for _, id := range ids {
			if id == leaf || id == neighbor[leaf] || adjacent[network.Key(leaf, id)] {
				continue
			}
			candidates = append(candidates, id)
		}
		if len(candidates) == 0 {
			continue
		}
		target := choose(leaf, candidates)
		out = append(out, network.NewEdge(byID[leaf], byID[target]))
		adjacent[network.Key(leaf, target)] = true
	}
	return out
}

// Leaves returns the ids of nodes with exactly one incident link, ascending.
func Leaves(nodes []network.Node, edges []network.Edge) []int {
	degree := make(map[int]int, len(nodes))
	for _, e := range edges {
		degree[e.From]++
		degree[e.To]++
	}
	var leaves []int
	for _, nd := range nodes {
		if degree[nd.ID] == 1 {
			leaves = append(leaves, nd.ID)
		}
	}
	slices.Sort(leaves)
	return leaves
}
