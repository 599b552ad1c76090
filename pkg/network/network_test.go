package network

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/netplan/pkg/errors"
)

func square() *Network {
	return &Network{
		Nodes: []Node{
			{ID: 0, Name: "A", Position: Point{0, 0}},
			{ID: 1, Name: "B", Position: Point{0, 100}},
			{ID: 2, Name: "C", Position: Point{100, 100}},
			{ID: 3, Name: "D", Position: Point{100, 0}},
		},
	}
}

func TestKeyIsUnordered(t *testing.T) {
	if Key(3, 1) != Key(1, 3) {
		t.Errorf("Key(3,1) = %v, want %v", Key(3, 1), Key(1, 3))
	}
	e := Edge{From: 7, To: 2}
	if got := e.Key(); got != (EdgeKey{A: 2, B: 7}) {
		t.Errorf("Key() = %v, want {2 7}", got)
	}
	if e.Other(7) != 2 || e.Other(2) != 7 {
		t.Errorf("Other() mismatch for %v", e)
	}
}

func TestNewEdgeLength(t *testing.T) {
	a := Node{ID: 0, Position: Point{0, 0}}
	b := Node{ID: 1, Position: Point{3, 4}}
	if got := NewEdge(a, b).Length; got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestMoveNodeKeepsLength(t *testing.T) {
	n := square()
	e, added, err := n.AddEdge(0, 1)
	if err != nil || !added {
		t.Fatalf("AddEdge() = %v, %v, %v", e, added, err)
	}
	if err := n.MoveNode(1, Point{0, 500}); err != nil {
		t.Fatalf("MoveNode() error = %v", err)
	}
	got, _ := n.Edge(1, 0)
	if got.Length != 100 {
		t.Errorf("Length after move = %v, want 100", got.Length)
	}
}

func TestAddEdgeIgnoresDuplicate(t *testing.T) {
	n := square()
	if _, _, err := n.AddEdge(0, 1); err != nil {
		t.Fatal(err)
	}
	_, added, err := n.AddEdge(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("AddEdge(1,0) after AddEdge(0,1) should not add")
	}
	if n.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", n.EdgeCount())
	}
	if _, _, err := n.AddEdge(0, 9); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("AddEdge(0,9) error = %v, want UNKNOWN_NODE", err)
	}
}

func TestAddNodeAndRemoveNode(t *testing.T) {
	n := &Network{}
	first, err := n.AddNode("", Point{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != 0 || first.Name != "Node0" {
		t.Errorf("first node = %+v, want id 0 named Node0", first)
	}

	n = square()
	n.Nodes[2].ID = 10
	nd, _ := n.AddNode("", Point{5, 5}, 3)
	if nd.ID != 11 {
		t.Errorf("AddNode id = %d, want 11", nd.ID)
	}

	n = square()
	n.AddEdge(0, 1)
	n.AddEdge(1, 2)
	n.AddEdge(2, 3)
	if err := n.RemoveNode(1); err != nil {
		t.Fatal(err)
	}
	if n.NodeCount() != 3 || n.EdgeCount() != 1 {
		t.Errorf("after RemoveNode: %d nodes %d edges, want 3 and 1", n.NodeCount(), n.EdgeCount())
	}
	if err := n.RemoveNode(1); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("second RemoveNode error = %v, want UNKNOWN_NODE", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Network)
		code   errors.Code
	}{
		{"valid", func(n *Network) { n.AddEdge(0, 1) }, ""},
		{"duplicate node", func(n *Network) { n.Nodes[1].ID = 0 }, errors.ErrCodeDuplicateNode},
		{"unknown node", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 0, To: 42}) }, errors.ErrCodeUnknownNode},
		{"duplicate edge", func(n *Network) {
			n.Edges = append(n.Edges, Edge{From: 0, To: 1}, Edge{From: 1, To: 0})
		}, errors.ErrCodeDuplicateEdge},
		{"self loop", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 2, To: 2}) }, errors.ErrCodeInvalidInput},
		{"negative flow", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 0, To: 1, Flow: -1}) }, errors.ErrCodeInvalidInput},
		{"nan capacity", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 0, To: 1, Capacity: math.NaN()}) }, errors.ErrCodeInvalidInput},
		{"saturated delay ok", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 0, To: 1, Delay: Saturated}) }, ""},
		{"negative delay", func(n *Network) { n.Edges = append(n.Edges, Edge{From: 0, To: 1, Delay: -2}) }, errors.ErrCodeInvalidInput},
		{"unnamed node ok", func(n *Network) {
			n.Nodes[1].Name = ""
			n.AddEdge(0, 1)
		}, ""},
		{"control character in name", func(n *Network) { n.Nodes[0].Name = "a\nb" }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := square()
			tt.mutate(n)
			err := n.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateNameErrorNamesNode(t *testing.T) {
	n := square()
	n.Nodes[1].Name = "bad\x01name"
	err := n.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Validate() error = %v, want INVALID_INPUT", err)
	}
	msg := err.Error()
	if strings.Count(msg, string(errors.ErrCodeInvalidInput)) != 1 {
		t.Errorf("Validate() error = %q, want the code exactly once", msg)
	}
	if !strings.Contains(msg, "node 1 name") {
		t.Errorf("Validate() error = %q, want it to name node 1", msg)
	}
}

func TestValidateDemands(t *testing.T) {
	n := square()
	tests := []struct {
		name   string
		demand Demand
		code   errors.Code
	}{
		{"valid", Demand{From: 0, To: 2, Volume: 5}, ""},
		{"zero volume", Demand{From: 0, To: 2, Volume: 0}, ""},
		{"negative volume", Demand{From: 0, To: 2, Volume: -1}, errors.ErrCodeInvalidDemand},
		{"nan volume", Demand{From: 0, To: 2, Volume: math.NaN()}, errors.ErrCodeInvalidDemand},
		{"unknown", Demand{From: 0, To: 99, Volume: 1}, errors.ErrCodeUnknownNode},
		{"self", Demand{From: 1, To: 1, Volume: 1}, errors.ErrCodeInvalidDemand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.ValidateDemands([]Demand{tt.demand})
			if tt.code == "" && err != nil {
				t.Errorf("ValidateDemands() error = %v, want nil", err)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("ValidateDemands() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDegreesAndNeighbors(t *testing.T) {
	n := square()
	n.AddEdge(2, 0)
	n.AddEdge(0, 1)

	deg := n.Degrees()
	want := map[int]int{0: 2, 1: 1, 2: 1, 3: 0}
	for id, d := range want {
		if deg[id] != d {
			t.Errorf("Degrees()[%d] = %d, want %d", id, deg[id], d)
		}
	}

	adj := n.Neighbors()
	if len(adj[0]) != 2 || adj[0][0] != 1 || adj[0][1] != 2 {
		t.Errorf("Neighbors()[0] = %v, want [1 2]", adj[0])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	n := square()
	n.AddEdge(0, 1)
	c := n.Clone()
	c.Edges[0].Flow = 10
	c.Nodes[0].Name = "changed"
	if n.Edges[0].Flow != 0 || n.Nodes[0].Name != "A" {
		t.Error("Clone() shares storage with the original")
	}
}

func TestResetAndHasFlow(t *testing.T) {
	n := square()
	n.Edges = []Edge{{From: 0, To: 1, Length: 100, Capacity: 8, Flow: 5, Cost: 150, Delay: 0.4}}
	if !n.HasFlow() {
		t.Error("HasFlow() = false, want true")
	}
	n.Reset()
	e := n.Edges[0]
	if e.Flow != 0 || e.Capacity != 0 || e.Cost != 0 || e.Delay != 0 || e.Length != 100 {
		t.Errorf("Reset() left %+v", e)
	}
	if n.HasFlow() {
		t.Error("HasFlow() after Reset = true, want false")
	}
}

func TestNodeIDsSorted(t *testing.T) {
	n := &Network{Nodes: []Node{{ID: 5, Name: "x"}, {ID: 1, Name: "y"}, {ID: 3, Name: "z"}}}
	got := n.NodeIDs()
	if got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("NodeIDs() = %v, want [1 3 5]", got)
	}
}

func TestDelayJSON(t *testing.T) {
	data, err := json.Marshal([]Delay{1.5, Delay(Saturated)})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[1.5,"inf"]` {
		t.Errorf("Marshal = %s", data)
	}

	var got []Delay
	if err := json.Unmarshal([]byte(`[2, "inf", "Infinity", "+Inf"]`), &got); err != nil {
		t.Fatal(err)
	}
	if got[0] != 2 {
		t.Errorf("got[0] = %v, want 2", got[0])
	}
	for _, d := range got[1:] {
		if !IsSaturated(float64(d)) {
			t.Errorf("%v is not saturated", d)
		}
	}

	var bad Delay
	if err := json.Unmarshal([]byte(`"slow"`), &bad); err == nil {
		t.Error("expected error for unknown delay text")
	}
	if _, err := json.Marshal(Delay(math.NaN())); err == nil {
		t.Error("expected error for NaN delay")
	}
}
