package evaluate

import (
	"container/heap"
	"context"
	"math"

	"github.com/matzehuels/netplan/pkg/network"
)

// MaxDelay returns the largest finite end-to-end delay between any two
// nodes, where each path's delay is the sum of its link delays and the
// shortest such path is taken for every pair.
//
// Saturated links are dropped from the graph, not weighted. A network whose
// every link is saturated therefore reports 0, the same as an empty one.
func MaxDelay(ctx context.Context, net *network.Network) (float64, error) {
	if err := net.Validate(); err != nil {
		return 0, err
	}
	return maxDelay(ctx, net)
}

type arc struct {
	to     int
	weight float64
}

func maxDelay(ctx context.Context, net *network.Network) (float64, error) {
	adj := make(map[int][]arc, len(net.Nodes))
	for _, e := range net.Edges {
		if network.IsSaturated(e.Delay) {
			continue
		}
		adj[e.From] = append(adj[e.From], arc{to: e.To, weight: e.Delay})
		adj[e.To] = append(adj[e.To], arc{to: e.From, weight: e.Delay})
	}

	worst := 0.0
	for _, src := range net.NodeIDs() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for _, d := range shortestDelays(src, adj) {
			if !math.IsInf(d, 0) && d > worst {
				worst = d
			}
		}
	}
	return worst, nil
}

// shortestDelays runs Dijkstra from src over non-negative delay weights.
func shortestDelays(src int, adj map[int][]arc) map[int]float64 {
	dist := map[int]float64{src: 0}
	done := make(map[int]bool, len(adj))

	pq := &delayQueue{{node: src}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(delayItem)
		if done[it.node] {
			continue
		}
		done[it.node] = true

		for _, a := range adj[it.node] {
			nd := it.dist + a.weight
			if d, seen := dist[a.to]; seen && d <= nd {
				continue
			}
			dist[a.to] = nd
			heap.Push(pq, delayItem{node: a.to, dist: nd})
		}
	}
	return dist
}

type delayItem struct {
	node int
	dist float64
}

type delayQueue []delayItem

func (q delayQueue) Len() int { return len(q) }
func (q delayQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q delayQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *delayQueue) Push(x any)   { *q = append(*q, x.(delayItem)) }
func (q *delayQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
