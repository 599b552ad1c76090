package topology

import (
	"container/heap"
	"context"

	"github.com/matzehuels/netplan/pkg/network"
)

// BuildSpanning returns a minimum Euclidean spanning tree over nodes using
// Prim's algorithm.
//
// The search is seeded from the node with the smallest id. The frontier is a
// min-heap of (distance, source, candidate) entries. Popping an entry whose
// candidate is already in the tree is a no-op; otherwise the candidate joins
// the tree and edges from it to every node still outside are pushed. Equal
// distances pop in ascending candidate id, then ascending source id, so the
// result is deterministic.
//
// The result has exactly len(nodes)-1 edges with lengths set, or is empty
// when nodes is empty. Node ids must be unique.
//
// Complexity: O(V² log V) time, O(V²) heap entries in the worst case.
func BuildSpanning(ctx context.Context, nodes []network.Node) ([]network.Edge, error) {
	if err := network.ValidateNodes(nodes); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	root := 0
	for i, nd := range nodes {
		if nd.ID < nodes[root].ID {
			root = i
		}
	}

	inTree := make([]bool, len(nodes))
	edges := make([]network.Edge, 0, len(nodes)-1)
	pq := &frontier{}
	heap.Init(pq)

	visit := func(i int) {
		inTree[i] = true
		for j := range nodes {
			if inTree[j] {
				continue
			}
			heap.Push(pq, candidate{
				dist:  nodes[i].Position.Distance(nodes[j].Position),
				src:   i,
				dst:   j,
				srcID: nodes[i].ID,
				dstID: nodes[j].ID,
			})
		}
	}
	visit(root)

	for pq.Len() > 0 && len(edges) < len(nodes)-1 {
		c := heap.Pop(pq).(candidate)
		if inTree[c.dst] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		edges = append(edges, network.NewEdge(nodes[c.src], nodes[c.dst]))
		visit(c.dst)
	}
	return edges, nil
}

// candidate is a frontier entry: a possible tree edge src → dst.
type candidate struct {
	dist         float64
	src, dst     int // positions in the node slice
	srcID, dstID int
}

// frontier implements heap.Interface ordered by distance, then candidate
// id, then source id.
type frontier []candidate

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	if f[i].dstID != f[j].dstID {
		return f[i].dstID < f[j].dstID
	}
	return f[i].srcID < f[j].srcID
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(candidate)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	c := old[n-1]
	*f = old[:n-1]
	return c
}
