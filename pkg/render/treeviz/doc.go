// Package treeviz draws expression trees as Graphviz diagrams.
//
// [ToDOT] turns a parsed expression into DOT source with one box per
// operator and one ellipse per leaf. [RenderSVG] lays the DOT out with the
// WebAssembly build of Graphviz bundled by goccy/go-graphviz, so no system
// Graphviz installation is required.
//
//	node, _ := syntax.Parse("3*n^2 + 2^n")
//	dot := treeviz.ToDOT(node, treeviz.Options{})
//	svg, err := treeviz.RenderSVG(ctx, dot)
package treeviz
