// Package evaluate summarizes the cost and delay of a planned network.
//
// [Evaluate] expects flows to have been assigned already. It recomputes
// every link delay from the current flow and capacity, sums node and link
// costs, and reports the worst-case and average delay. [MaxDelay] is the
// worst-case part on its own.
package evaluate

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/delay"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Options controls [Evaluate]. The zero value uses the default packet
// size, cost model and thresholds.
type Options struct {
	PacketSizeBits float64
	Costs          *capacity.CostModel
	Thresholds     *capacity.Thresholds
}

func (o Options) costs() capacity.CostModel {
	if o.Costs == nil {
		return capacity.DefaultCostModel()
	}
	return *o.Costs
}

func (o Options) thresholds() capacity.Thresholds {
	if o.Thresholds == nil {
		return capacity.DefaultThresholds()
	}
	return *o.Thresholds
}

// Report is the evaluation of a planned network. Delays are in
// milliseconds.
type Report struct {
	TotalCost    float64 `json:"total_cost" yaml:"total_cost" bson:"total_cost"`
	NodeCost     float64 `json:"node_cost" yaml:"node_cost" bson:"node_cost"`
	LengthCost   float64 `json:"length_cost" yaml:"length_cost" bson:"length_cost"`
	CapacityCost float64 `json:"capacity_cost" yaml:"capacity_cost" bson:"capacity_cost"`
	MaxDelay     float64 `json:"max_delay" yaml:"max_delay" bson:"max_delay"`
	AvgDelay     float64 `json:"avg_delay" yaml:"avg_delay" bson:"avg_delay"`

	ActiveLinks    int          `json:"active_links" yaml:"active_links" bson:"active_links"`
	SaturatedLinks int          `json:"saturated_links" yaml:"saturated_links" bson:"saturated_links"`
	AvgUtilization float64      `json:"avg_utilization" yaml:"avg_utilization" bson:"avg_utilization"`
	Links          []LinkReport `json:"links" yaml:"links" bson:"links"`
}

// LinkReport is one row of the per-link breakdown.
type LinkReport struct {
	From        int                `json:"from_id" yaml:"from_id" bson:"from_id"`
	To          int                `json:"to_id" yaml:"to_id" bson:"to_id"`
	FromName    string             `json:"from_name" yaml:"from_name" bson:"from_name"`
	ToName      string             `json:"to_name" yaml:"to_name" bson:"to_name"`
	Length      float64            `json:"length" yaml:"length" bson:"length"`
	Flow        float64            `json:"flow" yaml:"flow" bson:"flow"`
	Capacity    float64            `json:"capacity" yaml:"capacity" bson:"capacity"`
	Utilization float64            `json:"utilization" yaml:"utilization" bson:"utilization"`
	Delay       float64            `json:"delay" yaml:"delay" bson:"delay"`
	Cost        float64            `json:"cost" yaml:"cost" bson:"cost"`
	Level       capacity.LoadLevel `json:"level" yaml:"level" bson:"level"`
}

// Saturated reports whether the link's flow reached its capacity.
func (l LinkReport) Saturated() bool {
	return network.IsSaturated(l.Delay)
}

// MarshalJSON encodes a saturated delay as "inf".
func (l LinkReport) MarshalJSON() ([]byte, error) {
	type plain LinkReport
	return json.Marshal(struct {
		plain
		Delay network.Delay `json:"delay"`
	}{plain(l), network.Delay(l.Delay)})
}

// UnmarshalJSON accepts the encoding produced by MarshalJSON.
func (l *LinkReport) UnmarshalJSON(data []byte) error {
	type plain LinkReport
	var aux struct {
		plain
		Delay network.Delay `json:"delay"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = LinkReport(aux.plain)
	l.Delay = float64(aux.Delay)
	return nil
}

// Evaluate recomputes link delays and returns the cost and delay report
// together with the updated network. The input network is not modified.
//
// At least one link must carry flow; otherwise a PRECONDITION error is
// returned.
func Evaluate(ctx context.Context, net *network.Network, opts Options) (Report, *network.Network, error) {
	if err := net.Validate(); err != nil {
		return Report{}, nil, err
	}
	if !net.HasFlow() {
		return Report{}, nil, errors.New(errors.ErrCodePrecondition,
			"no link carries flow; assign traffic before evaluating")
	}

	costs := opts.costs()
	thresholds := opts.thresholds()

	out := net.Clone()
	out.Edges = delay.Apply(out.Edges, opts.PacketSizeBits)

	var r Report
	for _, n := range out.Nodes {
		r.NodeCost += n.Cost
	}
	for _, e := range out.Edges {
		r.LengthCost += costs.LengthCost(e.Length)
		r.CapacityCost += costs.CapacityCost(e.Capacity)
	}
	r.TotalCost = r.NodeCost + r.LengthCost + r.CapacityCost

	maxD, err := maxDelay(ctx, out)
	if err != nil {
		return Report{}, nil, err
	}
	r.MaxDelay = maxD

	names := out.Names()
	var delaySum, utilSum float64
	var delayCount int
	for _, e := range out.Edges {
		util := capacity.Utilization(e)
		r.Links = append(r.Links, LinkReport{
			From:        e.From,
			To:          e.To,
			FromName:    names[e.From],
			ToName:      names[e.To],
			Length:      e.Length,
			Flow:        e.Flow,
			Capacity:    e.Capacity,
			Utilization: util,
			Delay:       e.Delay,
			Cost:        costs.EdgeCost(e),
			Level:       thresholds.Classify(util),
		})
		if e.Flow <= 0 {
			continue
		}
		r.ActiveLinks++
		utilSum += util
		if network.IsSaturated(e.Delay) {
			r.SaturatedLinks++
			continue
		}
		delaySum += e.Delay
		delayCount++
	}
	if delayCount > 0 {
		r.AvgDelay = delaySum / float64(delayCount)
	}
	if r.ActiveLinks > 0 {
		r.AvgUtilization = utilSum / float64(r.ActiveLinks)
	}

	slices.SortFunc(r.Links, func(a, b LinkReport) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})
	return r, out, nil
}
