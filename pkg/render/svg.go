package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/corblivar/pkg/block"
	fpio "github.com/matzehuels/corblivar/pkg/io"
)

var kindFill = map[string]string{
	"":                                 "#dbe9f6",
	block.KindPin.String():             "#f6e3b4",
	block.KindTSVIsland.String():       "#d9d9d9",
	block.KindReferenceOrigin.String(): "#f5b7b1",
}

const (
	fillSoft      = "#d4efdf"
	strokeBlock   = "#333333"
	strokeFailed  = "#c0392b"
	strokeAligned = "#1e8449"
)

// SVG draws l as a standalone SVG document.
func SVG(l fpio.Layout, opts Options) []byte {
	p := newPlacement(l, opts)
	w, h := p.canvas(len(l.Dies))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString(`  <style>.block-text { font: 10px sans-serif; text-anchor: middle; dominant-baseline: middle; }</style>` + "\n")

	for _, d := range l.Dies {
		x, y, _, _ := p.rect(d.Layer, fpio.Block{Y: l.Height})
		fmt.Fprintf(&buf, `  <rect class="die" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#999999" stroke-dasharray="4 2"/>`+"\n",
			x, y, p.dieW, p.height)
		for _, b := range d.Blocks {
			writeBlock(&buf, p, d.Layer, b, opts.ShowLabels)
		}
	}

	if opts.ShowAlignments {
		blocks := indexBlocks(l)
		for _, a := range l.Alignments {
			from, okA := blocks[a.A]
			to, okB := blocks[a.B]
			if !okA || !okB {
				continue
			}
			x1, y1 := center(p, from)
			x2, y2 := center(p, to)
			stroke, dash := strokeAligned, ""
			if !a.Fulfilled {
				stroke, dash = strokeFailed, ` stroke-dasharray="3 3"`
			}
			fmt.Fprintf(&buf, `  <line class="alignment" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"%s/>`+"\n",
				x1, y1, x2, y2, stroke, dash)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeBlock(buf *bytes.Buffer, p placement, layer int, b fpio.Block, label bool) {
	x, y, w, h := p.rect(layer, b)
	fill := kindFill[b.Kind]
	if b.Soft {
		fill = fillSoft
	}
	stroke := strokeBlock
	if b.Alignment != "" && b.Alignment != block.AlignSuccess.String() {
		stroke = strokeFailed
	}
	fmt.Fprintf(buf, `  <rect class="block" id="block-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
		html.EscapeString(b.ID), x, y, w, h, fill, stroke)
	if label {
		fmt.Fprintf(buf, `  <text class="block-text" x="%.2f" y="%.2f">%s</text>`+"\n", x+w/2, y+h/2, html.EscapeString(b.ID))
	}
}

func center(p placement, loc located) (float64, float64) {
	x, y, w, h := p.rect(loc.layer, loc.block)
	return x + w/2, y + h/2
}
