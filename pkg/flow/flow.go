// Package flow assigns aggregate traffic demand to links.
//
// Every demand's volume is added to each link along its route. Flow is
// purely additive: links are neither clamped at capacity nor rebalanced, so
// oversubscription shows up later as saturated delay.
package flow

import (
	"math"
	"slices"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/routing"
)

// Result holds the links with assigned flow and any demands that could not
// be routed.
type Result struct {
	Edges    []network.Edge
	Warnings []errors.Warning
	Routed   int
	Unrouted int
}

// Assign resets every link's flow to zero and then adds each demand's volume
// along its route. The input slice is not modified.
//
// A demand without a route produces an UNROUTED_DEMAND warning and is
// skipped. A negative or non-finite volume is an input error and nothing is
// assigned. A route that crosses a pair without a link means the table does
// not belong to these edges and is reported as STALE_ROUTES.
func Assign(edges []network.Edge, table routing.Table, demands []network.Demand) (Result, error) {
	for i, d := range demands {
		if math.IsNaN(d.Volume) || math.IsInf(d.Volume, 0) || d.Volume < 0 {
			return Result{}, errors.New(errors.ErrCodeInvalidDemand,
				"demand %d (%d -> %d) has invalid volume %g", i, d.From, d.To, d.Volume)
		}
	}

	out := slices.Clone(edges)
	for i := range out {
		out[i].Flow = 0
	}
	idx := network.IndexEdges(out)

	res := Result{Edges: out}
	for _, d := range demands {
		path, ok := table.Route(d.From, d.To)
		if !ok {
			res.Warnings = append(res.Warnings, errors.UnroutedDemand(d.From, d.To, d.Volume))
			res.Unrouted++
			continue
		}
		for i := 1; i < len(path); i++ {
			j, ok := idx[network.Key(path[i-1], path[i])]
			if !ok {
				return Result{}, errors.New(errors.ErrCodeStaleRoutes,
					"route %d -> %d uses missing link %d-%d", d.From, d.To, path[i-1], path[i])
			}
			out[j].Flow += d.Volume
		}
		res.Routed++
	}
	return res, nil
}

// Apply validates the demands against the network, assigns flow and returns
// a new network carrying the result.
func Apply(net *network.Network, table routing.Table, demands []network.Demand) (*network.Network, Result, error) {
	if err := net.ValidateDemands(demands); err != nil {
		return nil, Result{}, err
	}
	res, err := Assign(net.Edges, table, demands)
	if err != nil {
		return nil, Result{}, err
	}
	return network.New(net.Nodes, res.Edges), res, nil
}

// Total returns the sum of all demand volumes.
func Total(demands []network.Demand) float64 {
	var sum float64
	for _, d := range demands {
		sum += d.Volume
	}
	return sum
}
