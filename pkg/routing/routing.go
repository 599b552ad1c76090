// Package routing computes hop-count shortest paths between every pair of
// sites.
//
// Routes are computed per source with Dijkstra's algorithm over unit link
// weights. Neighbors are explored in ascending id order and a node's
// predecessor is only replaced by a strictly shorter path, so among several
// shortest paths the one discovered through the lowest-id neighbor wins.
// Paths are reconstructed by walking predecessors back to the source.
//
// The resulting [Table] is keyed by ordered (from, to) pairs. Self pairs and
// unreachable pairs are absent.
package routing

import (
	"container/heap"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/netplan/pkg/network"
)

// Pair is an ordered (source, destination) node pair.
type Pair struct {
	From, To int
}

// Path is a sequence of node ids including both endpoints.
type Path []int

// Hops returns the number of links on the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Table maps ordered pairs to their hop-shortest path.
type Table map[Pair]Path

// Entry is a single route of a Table.
type Entry struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Path Path `json:"path"`
}

// Compute returns the hop-count routing table for the network.
//
// The network is validated first. Context cancellation is checked once per
// source node.
func Compute(ctx context.Context, net *network.Network) (Table, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}

	adj := net.Neighbors()
	ids := net.NodeIDs()
	table := make(Table, len(ids)*(len(ids)-1))

	for _, src := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prev := shortestHops(src, adj)
		for _, dst := range ids {
			if dst == src {
				continue
			}
			if _, ok := prev[dst]; !ok {
				continue
			}
			table[Pair{From: src, To: dst}] = reconstruct(src, dst, prev)
		}
	}
	return table, nil
}

// shortestHops runs unit-weight Dijkstra from src and returns the
// predecessor of every reached node. The source maps to itself.
func shortestHops(src int, adj map[int][]int) map[int]int {
	dist := map[int]int{src: 0}
	prev := map[int]int{src: src}
	done := make(map[int]bool, len(adj))

	pq := &hopQueue{{node: src, dist: 0}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(hopItem)
		if done[it.node] {
			continue
		}
		done[it.node] = true

		for _, nb := range adj[it.node] {
			nd := it.dist + 1
			if d, seen := dist[nb]; seen && d <= nd {
				continue
			}
			dist[nb] = nd
			prev[nb] = it.node
			heap.Push(pq, hopItem{node: nb, dist: nd})
		}
	}
	return prev
}

func reconstruct(src, dst int, prev map[int]int) Path {
	path := Path{dst}
	for cur := dst; cur != src; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

type hopItem struct {
	node, dist int
}

// hopQueue orders by distance, then node id.
type hopQueue []hopItem

func (q hopQueue) Len() int { return len(q) }
func (q hopQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q hopQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *hopQueue) Push(x any)   { *q = append(*q, x.(hopItem)) }
func (q *hopQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Route returns the path from one node to another.
func (t Table) Route(from, to int) (Path, bool) {
	p, ok := t[Pair{From: from, To: to}]
	return p, ok
}

// Hops returns the hop count from one node to another, or -1 if no route
// exists.
func (t Table) Hops(from, to int) int {
	p, ok := t.Route(from, to)
	if !ok {
		return -1
	}
	return p.Hops()
}

// Entries returns all routes sorted by (from, to).
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for k, p := range t {
		entries = append(entries, Entry{From: k.From, To: k.To, Path: p})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})
	return entries
}

// Filter returns the routes whose endpoint names contain the given
// substrings, case-insensitively. Empty queries match everything.
func (t Table) Filter(names map[int]string, fromQuery, toQuery string) []Entry {
	fromQuery = strings.ToLower(strings.TrimSpace(fromQuery))
	toQuery = strings.ToLower(strings.TrimSpace(toQuery))

	var out []Entry
	for _, e := range t.Entries() {
		if fromQuery != "" && !strings.Contains(strings.ToLower(names[e.From]), fromQuery) {
			continue
		}
		if toQuery != "" && !strings.Contains(strings.ToLower(names[e.To]), toQuery) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Format renders a path as "A -> B -> C" using node names, falling back to
// ids for unnamed nodes.
func Format(names map[int]string, p Path) string {
	parts := make([]string, len(p))
	for i, id := range p {
		if name, ok := names[id]; ok && name != "" {
			parts[i] = name
		} else {
			parts[i] = fmt.Sprint(id)
		}
	}
	return strings.Join(parts, " -> ")
}

// MarshalJSON encodes the table as a list of entries sorted by (from, to).
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Entries())
}

// UnmarshalJSON decodes a list of entries.
func (t *Table) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*t = make(Table, len(entries))
	for _, e := range entries {
		(*t)[Pair{From: e.From, To: e.To}] = e.Path
	}
	return nil
}
