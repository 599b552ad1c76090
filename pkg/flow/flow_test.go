package flow

import (
	"context"
	"testing"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/routing"
)

// line builds 0 - 1 - 2 with an isolated node 3.
func line(t *testing.T) (*network.Network, routing.Table) {
	t.Helper()
	net := &network.Network{
		Nodes: []network.Node{
			{ID: 0, Name: "a"}, {ID: 1, Name: "b"}, {ID: 2, Name: "c"}, {ID: 3, Name: "d"},
		},
		Edges: []network.Edge{
			{From: 0, To: 1, Length: 10, Flow: 99},
			{From: 2, To: 1, Length: 10},
		},
	}
	table, err := routing.Compute(context.Background(), net)
	if err != nil {
		t.Fatal(err)
	}
	return net, table
}

func TestAssignAdditive(t *testing.T) {
	net, table := line(t)
	res, err := Assign(net.Edges, table, []network.Demand{
		{From: 0, To: 2, Volume: 5},
		{From: 0, To: 2, Volume: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range res.Edges {
		if e.Flow != 12 {
			t.Errorf("flow on %v = %v, want 12", e.Key(), e.Flow)
		}
	}
	if res.Routed != 2 || res.Unrouted != 0 {
		t.Errorf("Routed/Unrouted = %d/%d, want 2/0", res.Routed, res.Unrouted)
	}
	if net.Edges[0].Flow != 99 {
		t.Error("input edges were modified")
	}
}

func TestAssignResetsFlow(t *testing.T) {
	net, table := line(t)
	res, err := Assign(net.Edges, table, []network.Demand{{From: 1, To: 2, Volume: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Edges[0].Flow != 0 {
		t.Errorf("stale flow kept: %v", res.Edges[0].Flow)
	}
	if res.Edges[1].Flow != 3 {
		t.Errorf("flow on 2-1 = %v, want 3", res.Edges[1].Flow)
	}
}

func TestAssignUnroutedWarning(t *testing.T) {
	net, table := line(t)
	res, err := Assign(net.Edges, table, []network.Demand{
		{From: 0, To: 3, Volume: 4},
		{From: 2, To: 0, Volume: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.Code != errors.WarnCodeUnroutedDemand || w.From != 0 || w.To != 3 || w.Volume != 4 {
		t.Errorf("warning = %+v", w)
	}
	if res.Edges[0].Flow != 1 || res.Edges[1].Flow != 1 {
		t.Errorf("routed demand not applied: %+v", res.Edges)
	}
}

func TestAssignNegativeVolume(t *testing.T) {
	net, table := line(t)
	_, err := Assign(net.Edges, table, []network.Demand{{From: 0, To: 1, Volume: -1}})
	if !errors.Is(err, errors.ErrCodeInvalidDemand) {
		t.Errorf("error = %v, want INVALID_DEMAND", err)
	}
}

func TestAssignStaleRoutes(t *testing.T) {
	net, table := line(t)
	_, err := Assign(net.Edges[:1], table, []network.Demand{{From: 0, To: 2, Volume: 1}})
	if !errors.Is(err, errors.ErrCodeStaleRoutes) {
		t.Errorf("error = %v, want STALE_ROUTES", err)
	}
}

func TestApply(t *testing.T) {
	net, table := line(t)
	if _, _, err := Apply(net, table, []network.Demand{{From: 0, To: 9, Volume: 1}}); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("error = %v, want UNKNOWN_NODE", err)
	}

	out, res, err := Apply(net, table, []network.Demand{{From: 0, To: 1, Volume: 2.5}})
	if err != nil {
		t.Fatal(err)
	}
	if out.Edges[0].Flow != 2.5 || res.Routed != 1 {
		t.Errorf("Apply() flow = %v routed = %d", out.Edges[0].Flow, res.Routed)
	}
	if Total([]network.Demand{{Volume: 1}, {Volume: 2.5}}) != 3.5 {
		t.Error("Total() mismatch")
	}
}
