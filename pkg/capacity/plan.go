package capacity

import (
	"slices"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Plan selects a capacity for every link from its flow and prices it. The
// input slice is not modified.
func Plan(edges []network.Edge, catalog Catalog, costs CostModel) []network.Edge {
	out := slices.Clone(edges)
	for i := range out {
		out[i].Capacity = catalog.Select(out[i].Flow)
		out[i].Cost = costs.EdgeCost(out[i])
	}
	return out
}

// Override sets a link's capacity by hand and reprices it.
//
// The capacity must be a catalog entry. A capacity below the link's current
// flow is rejected unless it is 0, which switches the link off.
func Override(e network.Edge, capacity float64, catalog Catalog, costs CostModel) (network.Edge, error) {
	if !catalog.Contains(capacity) {
		return network.Edge{}, errors.New(errors.ErrCodeInvalidInput,
			"capacity %g is not in the catalog %v", capacity, catalog.values)
	}
	if capacity != 0 && capacity < e.Flow {
		return network.Edge{}, errors.New(errors.ErrCodeCapacityBelowFlow,
			"capacity %g for link %d-%d is below its flow %g", capacity, e.From, e.To, e.Flow)
	}
	e.Capacity = capacity
	e.Cost = costs.EdgeCost(e)
	return e, nil
}

