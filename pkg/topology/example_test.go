package topology_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/topology"
)

func ExampleBuildSpanning() {
	nodes := []network.Node{
		{ID: 0, Name: "A", Position: network.Point{X: 0, Y: 0}},
		{ID: 1, Name: "B", Position: network.Point{X: 0, Y: 100}},
		{ID: 2, Name: "C", Position: network.Point{X: 100, Y: 100}},
		{ID: 3, Name: "D", Position: network.Point{X: 100, Y: 0}},
	}

	edges, _ := topology.BuildSpanning(context.Background(), nodes)
	for _, e := range edges {
		fmt.Printf("%d-%d %.0f\n", e.From, e.To, e.Length)
	}
	// Output:
	// 0-1 100
	// 1-2 100
	// 0-3 100
}

func ExampleAugmentResilience() {
	nodes := []network.Node{
		{ID: 0, Name: "A", Position: network.Point{X: 0}},
		{ID: 1, Name: "B", Position: network.Point{X: 10}},
		{ID: 2, Name: "C", Position: network.Point{X: 20}},
	}
	tree, _ := topology.BuildSpanning(context.Background(), nodes)

	edges := topology.AugmentResilience(nodes, tree, topology.LowestID)
	fmt.Println(len(tree), "->", len(edges))
	// Output: 2 -> 3
}
