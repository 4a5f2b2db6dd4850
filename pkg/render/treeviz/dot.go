package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bigo/pkg/core/expr"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG:
		return nil
	}
	return errs.New(errs.ErrCodeUnsupported, "invalid format: %q (must be one of: dot, svg)", format)
}

// Options configures expression tree rendering.
type Options struct {
	// Detailed adds the node kind and the rendered subexpression to every
	// label. When false, only the operator or literal is shown.
	Detailed bool
}

// ToDOT converts an expression tree to Graphviz DOT format.
// Nodes are numbered in depth-first order; operands keep their
// left-to-right order.
func ToDOT(root expr.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("\n")

	var edges []string
	var parents []int
	id := 0
	expr.Walk(root, func(n expr.Node, depth int) bool {
		parents = append(parents[:depth], id)
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(attrs, ", "))
		if depth > 0 {
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", parents[depth-1], id))
		}
		id++
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n expr.Node, detailed bool) string {
	var op string
	switch v := n.(type) {
	case expr.Number, expr.Variable:
		op = v.String()
	case expr.Power:
		op = "^"
	case expr.Multiply:
		op = "*"
	case expr.Add:
		op = "+"
	case expr.Log:
		if v.IsNatural() {
			op = "log"
		} else {
			op = "log_" + v.BaseName
		}
	}
	if !detailed {
		return op
	}
	return op + "\n" + n.Kind().String() + "\n" + expr.Render(n)
}

func fmtAttrs(n expr.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.(type) {
	case expr.Variable:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightblue")
	case expr.Number:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightgrey")
	}
	return attrs
}

// Render produces the tree in the given format.
func Render(ctx context.Context, root expr.Node, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(root, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return RenderSVG(ctx, dot)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-based root element Graphviz emits with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
