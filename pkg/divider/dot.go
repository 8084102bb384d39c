package divider

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/panekit/panekit/pkg/geom"
)

// ToDOT returns a Graphviz DOT representation of the divider adjacency:
// region nodes connected through the dividers that touch them.
//
// Node representation:
//   - Regions: rounded boxes labeled with the region name
//   - Dividers: ellipses labeled with axis and position (e.g. "x=125")
//
// Edges run near region -> divider -> far region, so the rendered graph
// reads in cascade direction. The DOT output can be rendered with Graphviz
// tools (dot, neato, etc.) or programmatically with RenderSVG.
func ToDOT(dividers []Divider) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Dividers {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n\n")

	seen := make(map[string]bool)
	region := func(name string) string {
		id := fmt.Sprintf("r_%s", name)
		if !seen[name] {
			seen[name] = true
			fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"filled,rounded\"];\n", id, name)
		}
		return id
	}

	for i, d := range dividers {
		axis := "x"
		if d.Axis != geom.Vertical {
			axis = "y"
		}
		divID := fmt.Sprintf("d%d", i)
		fmt.Fprintf(&buf, "  %s [label=\"%s=%d\", shape=ellipse];\n", divID, axis, d.Position)

		for _, name := range d.Near {
			fmt.Fprintf(&buf, "  %q -> %s;\n", region(name), divID)
		}
		for _, name := range d.Far {
			fmt.Fprintf(&buf, "  %s -> %q;\n", divID, region(name))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the divider adjacency as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG format. The returned bytes are a complete SVG document
// suitable for embedding in HTML or saving to a file.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz)
// and its C dependencies to be installed. Errors are returned if Graphviz
// cannot initialize, the DOT is malformed, or rendering fails.
func RenderSVG(ctx context.Context, dividers []Divider) ([]byte, error) {
	dot := ToDOT(dividers)

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
	return buf.Bytes(), nil
}
