package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/netintel/netintel/pkg/graph"
	"github.com/netintel/netintel/pkg/style"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes category, relationship types and influence scores
	// in labels. When false, only display labels are shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. Node fill colors follow
// community assignments, node sizes follow influence, and edge colors follow
// relationship types, matching the live visualization palette. The resulting
// DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, cfg style.RenderConfig, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", cfg.BackgroundColor)
	buf.WriteString("  node [shape=circle, style=filled, fontcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontcolor=grey, fontname=\"Helvetica\", fontsize=9];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := nodeAttrs(n, cfg, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e, opts.Detailed)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, cfg style.RenderConfig, detailed bool) []string {
	label := n.DisplayLabel()
	if detailed {
		parts := []string{label}
		if n.Category != "" {
			parts = append(parts, n.Category)
		}
		parts = append(parts, fmt.Sprintf("%.3f", n.InfluenceOr(0)))
		label = strings.Join(parts, "\n")
	}

	// Graphviz wants inches, the live view works in pixels. A flat /10
	// keeps the same relative proportions.
	size := (cfg.NodeSizeMin + n.InfluenceOr(0)*(cfg.NodeSizeMax-cfg.NodeSizeMin)) / 10

	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", style.CommunityColor(n.Community)),
		fmt.Sprintf("width=%.2f", size),
		"fixedsize=true",
		"fontsize=10",
	}
}

func edgeAttrs(e *graph.Edge, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("color=%q", hexColor(style.EdgeColor(e.RelationshipType))),
		fmt.Sprintf("penwidth=%.2f", 0.5+e.Impact*2),
	}
	if detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.RelationshipType))
	}
	return attrs
}

// hexColor converts an rgba() color from the visualization palette to the
// #RRGGBB form Graphviz understands. Alpha is dropped since DOT edge colors
// already read lighter at sub-pixel widths.
func hexColor(c string) string {
	if !strings.HasPrefix(c, "rgba(") {
		return c
	}
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(c, "rgba(%d, %d, %d, %f)", &r, &g, &b, &a); err != nil {
		return "#888888"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
