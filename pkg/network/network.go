package network

import (
	"math"
	"slices"
)

// Saturated is the delay of a link whose flow has reached its capacity.
var Saturated = math.Inf(1)

// IsSaturated reports whether d is the saturated delay marker.
func IsSaturated(d float64) bool {
	return math.IsInf(d, 1)
}

// Point is a planar site position.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Node is a network site.
type Node struct {
	ID       int
	Name     string
	Position Point
	Cost     float64 // fixed site cost, contributes to the node cost total
}

// Edge is an undirected link between two sites.
//
// Length is set once by [NewEdge]. Capacity, Cost, Flow and Delay are
// produced by the planning stages.
type Edge struct {
	From, To int
	Capacity float64
	Length   float64
	Cost     float64
	Flow     float64
	Delay    float64 // milliseconds, Saturated when flow ≥ capacity
}

// EdgeKey identifies a link by its unordered endpoint pair, A < B.
type EdgeKey struct {
	A, B int
}

// Key returns the normalized key for the pair (a, b).
func Key(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Key returns the edge's unordered identity.
func (e Edge) Key() EdgeKey {
	return Key(e.From, e.To)
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id int) bool {
	return e.From == id || e.To == id
}

// Other returns the endpoint opposite id. The result is meaningless if the
// edge does not touch id.
func (e Edge) Other(id int) int {
	if e.From == id {
		return e.To
	}
	return e.From
}

// NewEdge creates a link between a and b with its length fixed to the
// distance between their current positions.
func NewEdge(a, b Node) Edge {
	return Edge{
		From:   a.ID,
		To:     b.ID,
		Length: a.Position.Distance(b.Position),
	}
}

// Demand is a traffic requirement between two sites.
type Demand struct {
	From, To int
	Volume   float64
}

// Network is a snapshot of sites and links.
type Network struct {
	Nodes []Node
	Edges []Edge
}

// New returns a network over copies of nodes and edges.
func New(nodes []Node, edges []Edge) *Network {
	return &Network{
		Nodes: slices.Clone(nodes),
		Edges: slices.Clone(edges),
	}
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	return New(n.Nodes, n.Edges)
}

// NodeCount returns the number of sites.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// EdgeCount returns the number of links.
func (n *Network) EdgeCount() int { return len(n.Edges) }

// Node returns the site with the given id.
func (n *Network) Node(id int) (Node, bool) {
	for _, nd := range n.Nodes {
		if nd.ID == id {
			return nd, true
		}
	}
	return Node{}, false
}

// NodeIndex maps node ids to their position in Nodes.
func (n *Network) NodeIndex() map[int]int {
	idx := make(map[int]int, len(n.Nodes))
	for i, nd := range n.Nodes {
		idx[nd.ID] = i
	}
	return idx
}

// NodeIDs returns all node ids in ascending order.
func (n *Network) NodeIDs() []int {
	ids := make([]int, len(n.Nodes))
	for i, nd := range n.Nodes {
		ids[i] = nd.ID
	}
	slices.Sort(ids)
	return ids
}

// Names maps node ids to display names.
func (n *Network) Names() map[int]string {
	names := make(map[int]string, len(n.Nodes))
	for _, nd := range n.Nodes {
		names[nd.ID] = nd.Name
	}
	return names
}

// EdgeIndex maps each link's key to its position in Edges.
func (n *Network) EdgeIndex() map[EdgeKey]int {
	return IndexEdges(n.Edges)
}

// IndexEdges maps each link's key to its position in edges.
func IndexEdges(edges []Edge) map[EdgeKey]int {
	idx := make(map[EdgeKey]int, len(edges))
	for i, e := range edges {
		idx[e.Key()] = i
	}
	return idx
}

// HasEdge reports whether a link between a and b exists, in either direction.
func (n *Network) HasEdge(a, b int) bool {
	_, ok := n.Edge(a, b)
	return ok
}

// Edge returns the link between a and b, in either direction.
func (n *Network) Edge(a, b int) (Edge, bool) {
	k := Key(a, b)
	for _, e := range n.Edges {
		if e.Key() == k {
			return e, true
		}
	}
	return Edge{}, false
}

// Degrees returns the number of incident links per node id. Nodes without
// links are present with degree zero.
func (n *Network) Degrees() map[int]int {
	deg := make(map[int]int, len(n.Nodes))
	for _, nd := range n.Nodes {
		deg[nd.ID] = 0
	}
	for _, e := range n.Edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

// Neighbors returns the ids adjacent to each node, sorted ascending.
func (n *Network) Neighbors() map[int][]int {
	adj := make(map[int][]int, len(n.Nodes))
	for _, nd := range n.Nodes {
		adj[nd.ID] = nil
	}
	for _, e := range n.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for id := range adj {
		slices.Sort(adj[id])
	}
	return adj
}

// Reset clears every planning result on the links, keeping topology and
// lengths.
func (n *Network) Reset() {
	for i := range n.Edges {
		n.Edges[i].Capacity = 0
		n.Edges[i].Cost = 0
		n.Edges[i].Flow = 0
		n.Edges[i].Delay = 0
	}
}

// HasFlow reports whether at least one link carries positive flow.
func (n *Network) HasFlow() bool {
	for _, e := range n.Edges {
		if e.Flow > 0 {
			return true
		}
	}
	return false
}
