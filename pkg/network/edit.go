package network

import (
	"fmt"
	"slices"

	"github.com/matzehuels/netplan/pkg/errors"
)

// NextNodeID returns the id a newly added node receives: one past the
// current maximum, or 0 for an empty network.
func (n *Network) NextNodeID() int {
	if len(n.Nodes) == 0 {
		return 0
	}
	maxID := n.Nodes[0].ID
	for _, nd := range n.Nodes[1:] {
		maxID = max(maxID, nd.ID)
	}
	return maxID + 1
}

// AddNode appends a site with the next free id. An empty name defaults to
// "Node<id>".
func (n *Network) AddNode(name string, pos Point, cost float64) (Node, error) {
	id := n.NextNodeID()
	if name == "" {
		name = fmt.Sprintf("Node%d", id)
	}
	nd := Node{ID: id, Name: name, Position: pos, Cost: cost}
	if err := ValidateNodes([]Node{nd}); err != nil {
		return Node{}, err
	}
	n.Nodes = append(n.Nodes, nd)
	return nd, nil
}

// RemoveNode deletes a site together with every link touching it.
func (n *Network) RemoveNode(id int) error {
	i := slices.IndexFunc(n.Nodes, func(nd Node) bool { return nd.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", id)
	}
	n.Nodes = slices.Delete(n.Nodes, i, i+1)
	n.Edges = slices.DeleteFunc(n.Edges, func(e Edge) bool { return e.Touches(id) })
	return nil
}

// MoveNode updates a site's position. Existing link lengths are unchanged.
func (n *Network) MoveNode(id int, pos Point) error {
	i := slices.IndexFunc(n.Nodes, func(nd Node) bool { return nd.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", id)
	}
	n.Nodes[i].Position = pos
	return nil
}

// AddEdge links a and b with a length computed from their positions. If the
// pair is already linked the existing edge is returned with added == false.
func (n *Network) AddEdge(a, b int) (e Edge, added bool, err error) {
	if a == b {
		return Edge{}, false, errors.New(errors.ErrCodeInvalidInput, "cannot link node %d to itself", a)
	}
	na, ok := n.Node(a)
	if !ok {
		return Edge{}, false, errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", a)
	}
	nb, ok := n.Node(b)
	if !ok {
		return Edge{}, false, errors.New(errors.ErrCodeUnknownNode, "node %d does not exist", b)
	}
	if existing, ok := n.Edge(a, b); ok {
		return existing, false, nil
	}
	e = NewEdge(na, nb)
	n.Edges = append(n.Edges, e)
	return e, true, nil
}

// RemoveEdge deletes the link between a and b.
func (n *Network) RemoveEdge(a, b int) error {
	k := Key(a, b)
	i := slices.IndexFunc(n.Edges, func(e Edge) bool { return e.Key() == k })
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "no link between %d and %d", a, b)
	}
	n.Edges = slices.Delete(n.Edges, i, i+1)
	return nil
}

// SetEdge replaces the link with the same key as e.
func (n *Network) SetEdge(e Edge) error {
	k := e.Key()
	i := slices.IndexFunc(n.Edges, func(x Edge) bool { return x.Key() == k })
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "no link between %d and %d", k.A, k.B)
	}
	n.Edges[i] = e
	return nil
}
