package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	fpio "github.com/matzehuels/corblivar/pkg/io"
)

// points per inch in Graphviz coordinates
const dotPPI = 72.0

// ToDOT converts a layout to Graphviz DOT. Every block becomes a fixed-size
// box pinned at its center, so the neato engine reproduces the floorplan
// instead of laying it out.
func ToDOT(l fpio.Layout, opts Options) string {
	p := newPlacement(l, opts)
	_, canvasH := p.canvas(len(l.Dies))

	var buf bytes.Buffer
	buf.WriteString("graph floorplan {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontsize=10, penwidth=1];\n")
	buf.WriteString("  edge [penwidth=1];\n")
	buf.WriteString("\n")

	for _, d := range l.Dies {
		for _, b := range d.Blocks {
			x, y, w, h := p.rect(d.Layer, b)
			// DOT's y axis points up
			cx, cy := x+w/2, canvasH-(y+h/2)
			fill := kindFill[b.Kind]
			if b.Soft {
				fill = fillSoft
			}
			label := ""
			if opts.ShowLabels {
				label = b.ID
			}
			fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.4f, height=%.4f, fillcolor=%q, label=%q];\n",
				b.ID, cx, cy, w/dotPPI, h/dotPPI, fill, label)
		}
	}

	if opts.ShowAlignments {
		buf.WriteString("\n")
		for _, a := range l.Alignments {
			style := "solid"
			color := strokeAligned
			if !a.Fulfilled {
				style, color = "dashed", strokeFailed
			}
			fmt.Fprintf(&buf, "  %q -- %q [style=%s, color=%q];\n", a.A, a.B, style, color)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT floorplan to SVG using the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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
