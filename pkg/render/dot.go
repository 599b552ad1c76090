package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/routing"
)

// DefaultScale converts plane units to Graphviz inches: 100 units per inch.
const DefaultScale = 0.01

// Link colours.
const (
	ColorNormal    = "#000000"
	ColorHigh      = "#FFA500"
	ColorOverload  = "#8B0000"
	ColorHighlight = "#008000"
)

// Options configures the drawing.
type Options struct {
	// Thresholds classify link load. Nil means the default thresholds.
	Thresholds *capacity.Thresholds

	// Highlight is a route whose links are drawn in green.
	Highlight routing.Path

	// Labels annotates each link with "flow/capacity".
	Labels bool

	// Scale converts plane units to inches. Zero means DefaultScale.
	Scale float64
}

func (o Options) thresholds() capacity.Thresholds {
	if o.Thresholds == nil {
		return capacity.DefaultThresholds()
	}
	return *o.Thresholds
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// ToDOT returns the Graphviz source for the network. Node positions are
// pinned; the y axis is flipped so that screen coordinates (y growing down)
// are drawn the right way up.
func ToDOT(net *network.Network, opts Options) string {
	thresholds := opts.thresholds()
	scale := opts.scale()
	highlighted := routeLinks(opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [fontsize=8];\n")
	buf.WriteString("\n")

	for _, n := range net.Nodes {
		x, y := n.Position.X*scale, -n.Position.Y*scale
		if y == 0 {
			y = 0 // no "-0"
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, pos=\"%s,%s!\"];\n", n.ID, nodeLabel(n), fmtFloat(x), fmtFloat(y))
	}

	buf.WriteString("\n")
	for _, e := range net.Edges {
		attrs := edgeAttrs(e, thresholds, highlighted[e.Key()], opts.Labels)
		fmt.Fprintf(&buf, "  n%d -- n%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n network.Node) string {
	if n.Name == "" {
		return fmt.Sprint(n.ID)
	}
	return n.Name
}

func edgeAttrs(e network.Edge, thresholds capacity.Thresholds, highlighted, labels bool) []string {
	var attrs []string
	if highlighted {
		attrs = append(attrs, fmt.Sprintf("color=%q", ColorHighlight), "penwidth=3")
	} else {
		attrs = append(attrs, fmt.Sprintf("color=%q", LevelColor(thresholds.Level(e))))
	}
	if network.IsSaturated(e.Delay) {
		attrs = append(attrs, "style=dashed")
	}
	if labels {
		attrs = append(attrs, fmt.Sprintf("label=\"%s/%s\"", fmtFloat(e.Flow), fmtFloat(e.Capacity)))
	}
	return attrs
}

// LevelColor returns the link colour for a load level.
func LevelColor(level capacity.LoadLevel) string {
	switch level {
	case capacity.LoadOverload:
		return ColorOverload
	case capacity.LoadHigh:
		return ColorHigh
	default:
		return ColorNormal
	}
}

func routeLinks(p routing.Path) map[network.EdgeKey]bool {
	links := make(map[network.EdgeKey]bool, p.Hops())
	for i := 1; i < len(p); i++ {
		links[network.Key(p[i-1], p[i])] = true
	}
	return links
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
