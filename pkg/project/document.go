package project

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Format identifies a project file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported project file %q (want .json, .yaml or .yml)", path)
}

// Document is the serialized form of a network.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes" bson:"nodes" validate:"required,min=1,dive"`
	Edges []Edge `json:"edges" yaml:"edges" bson:"edges" validate:"dive"`
}

// Node is the serialized form of a site. Position is [x, y].
type Node struct {
	ID       int       `json:"id" yaml:"id" bson:"id" validate:"gte=0"`
	Name     string    `json:"name" yaml:"name" bson:"name"`
	Position []float64 `json:"position" yaml:"position,flow" bson:"position" validate:"len=2"`
	Cost     float64   `json:"cost" yaml:"cost" bson:"cost" validate:"gte=0"`
}

// Edge is the serialized form of a link.
type Edge struct {
	From     int           `json:"from_id" yaml:"from_id" bson:"from_id" validate:"gte=0"`
	To       int           `json:"to_id" yaml:"to_id" bson:"to_id" validate:"gte=0,nefield=From"`
	Capacity float64       `json:"capacity" yaml:"capacity" bson:"capacity" validate:"gte=0"`
	Length   float64       `json:"length" yaml:"length" bson:"length" validate:"gte=0"`
	Cost     float64       `json:"cost" yaml:"cost" bson:"cost" validate:"gte=0"`
	Flow     float64       `json:"flow" yaml:"flow" bson:"flow" validate:"gte=0"`
	Delay    network.Delay `json:"delay" yaml:"delay" bson:"delay"`
}

// FromNetwork converts a network into its serialized form.
func FromNetwork(net *network.Network) Document {
	doc := Document{
		Nodes: make([]Node, len(net.Nodes)),
		Edges: make([]Edge, len(net.Edges)),
	}
	for i, n := range net.Nodes {
		doc.Nodes[i] = Node{
			ID:       n.ID,
			Name:     n.Name,
			Position: []float64{n.Position.X, n.Position.Y},
			Cost:     n.Cost,
		}
	}
	for i, e := range net.Edges {
		doc.Edges[i] = Edge{
			From:     e.From,
			To:       e.To,
			Capacity: e.Capacity,
			Length:   e.Length,
			Cost:     e.Cost,
			Flow:     e.Flow,
			Delay:    network.Delay(e.Delay),
		}
	}
	return doc
}

// Network converts the document back into a validated network.
func (d Document) Network() (*network.Network, error) {
	net := &network.Network{
		Nodes: make([]network.Node, len(d.Nodes)),
		Edges: make([]network.Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		if len(n.Position) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"node %d: position must be [x, y], got %d values", n.ID, len(n.Position))
		}
		net.Nodes[i] = network.Node{
			ID:       n.ID,
			Name:     n.Name,
			Position: network.Point{X: n.Position[0], Y: n.Position[1]},
			Cost:     n.Cost,
		}
	}
	for i, e := range d.Edges {
		net.Edges[i] = network.Edge{
			From:     e.From,
			To:       e.To,
			Capacity: e.Capacity,
			Length:   e.Length,
			Cost:     e.Cost,
			Flow:     e.Flow,
			Delay:    float64(e.Delay),
		}
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}
