// Package render draws a planned network as a map of sites and links.
//
// # Overview
//
// [ToDOT] turns a network into Graphviz DOT source. Every site is pinned at
// its planar position so the drawing matches the coordinates the plan was
// built from, and Graphviz only routes the link lines and places labels.
//
// Links are coloured by load level:
//
//   - normal: black
//   - high: orange
//   - overload (including saturated links): dark red
//
// Links on a highlighted route are drawn thicker in green, overriding the
// load colour.
//
// # Output formats
//
// [Render] produces DOT, SVG or PNG. SVG and PNG are rendered in-process
// with [github.com/goccy/go-graphviz] using the neato engine.
//
//	dot := render.ToDOT(net, render.Options{Labels: true})
//	svg, err := render.Render(ctx, net, render.FormatSVG, render.Options{})
package render
