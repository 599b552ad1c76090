package network

import (
	"fmt"
	"math"

	"github.com/matzehuels/netplan/pkg/errors"
)

// Validate checks the snapshot for structural consistency:
//   - node ids are unique and names are valid
//   - positions and costs are finite, costs are not negative
//   - every link references two distinct existing nodes
//   - no two links share the same unordered endpoint pair
//   - capacity, length, cost and flow are finite and not negative
//   - delay is not negative and either finite or [Saturated]
//
// The first violation is returned as an input error naming the element.
func (n *Network) Validate() error {
	if err := ValidateNodes(n.Nodes); err != nil {
		return err
	}

	idx := n.NodeIndex()
	seen := make(map[EdgeKey]bool, len(n.Edges))
	for _, e := range n.Edges {
		if _, ok := idx[e.From]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "link %d-%d references unknown node %d", e.From, e.To, e.From)
		}
		if _, ok := idx[e.To]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "link %d-%d references unknown node %d", e.From, e.To, e.To)
		}
		if e.From == e.To {
			return errors.New(errors.ErrCodeInvalidInput, "link %d-%d is a self-loop", e.From, e.To)
		}
		k := e.Key()
		if seen[k] {
			return errors.New(errors.ErrCodeDuplicateEdge, "duplicate link between %d and %d", k.A, k.B)
		}
		seen[k] = true

		if err := validateEdgeValues(e); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNodes checks node ids for uniqueness and node fields for sane values.
func ValidateNodes(nodes []Node) error {
	seen := make(map[int]bool, len(nodes))
	for _, nd := range nodes {
		if seen[nd.ID] {
			return errors.New(errors.ErrCodeDuplicateNode, "duplicate node id %d", nd.ID)
		}
		seen[nd.ID] = true

		if err := errors.ValidateName(fmt.Sprintf("node %d name", nd.ID), nd.Name); err != nil {
			return err
		}
		if err := errors.ValidateFinite(fmt.Sprintf("node %d x", nd.ID), nd.Position.X); err != nil {
			return err
		}
		if err := errors.ValidateFinite(fmt.Sprintf("node %d y", nd.ID), nd.Position.Y); err != nil {
			return err
		}
		if err := errors.ValidateNonNegative(fmt.Sprintf("node %d cost", nd.ID), nd.Cost); err != nil {
			return err
		}
	}
	return nil
}

func validateEdgeValues(e Edge) error {
	label := fmt.Sprintf("link %d-%d", e.From, e.To)
	fields := []struct {
		name string
		v    float64
	}{
		{"capacity", e.Capacity},
		{"length", e.Length},
		{"cost", e.Cost},
		{"flow", e.Flow},
	}
	for _, f := range fields {
		if err := errors.ValidateNonNegative(label+" "+f.name, f.v); err != nil {
			return err
		}
	}

	if IsSaturated(e.Delay) {
		return nil
	}
	if math.IsNaN(e.Delay) || math.IsInf(e.Delay, -1) || e.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s delay must be a non-negative number or saturated, got %g", label, e.Delay)
	}
	return nil
}

// ValidateDemands checks demands against the snapshot's node set. Endpoints
// must exist and differ, and volumes must be finite and not negative.
func (n *Network) ValidateDemands(demands []Demand) error {
	idx := n.NodeIndex()
	for i, d := range demands {
		if _, ok := idx[d.From]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "demand %d references unknown node %d", i, d.From)
		}
		if _, ok := idx[d.To]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "demand %d references unknown node %d", i, d.To)
		}
		if d.From == d.To {
			return errors.New(errors.ErrCodeInvalidDemand, "demand %d starts and ends at node %d", i, d.From)
		}
		if math.IsNaN(d.Volume) || math.IsInf(d.Volume, 0) || d.Volume < 0 {
			return errors.New(errors.ErrCodeInvalidDemand, "demand %d (%d -> %d) has invalid volume %g", i, d.From, d.To, d.Volume)
		}
	}
	return nil
}
