package render

import (
	fpio "github.com/matzehuels/corblivar/pkg/io"
)

// Options configures floorplan rendering.
type Options struct {
	// Scale converts layout units to SVG pixels (or DOT points). Zero
	// selects a scale that fits the widest die into 600 pixels.
	Scale float64

	// ShowLabels prints block IDs inside the rectangles.
	ShowLabels bool

	// ShowAlignments draws a line between the endpoints of every alignment
	// request, solid when fulfilled and dashed otherwise.
	ShowAlignments bool
}

const (
	fitWidth = 600.0
	dieGap   = 24.0
	margin   = 12.0
)

func (o Options) scale(l fpio.Layout) float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	if l.Width <= 0 {
		return 1
	}
	return fitWidth / l.Width
}

// placement maps layout coordinates of each die to canvas coordinates.
type placement struct {
	scale  float64
	dieW   float64
	height float64
}

func newPlacement(l fpio.Layout, opts Options) placement {
	s := opts.scale(l)
	return placement{scale: s, dieW: l.Width * s, height: l.Height * s}
}

// rect returns the canvas rectangle of b on die layer with y pointing down.
func (p placement) rect(layer int, b fpio.Block) (x, y, w, h float64) {
	x = margin + float64(layer)*(p.dieW+dieGap) + b.X*p.scale
	w, h = b.Width*p.scale, b.Height*p.scale
	y = margin + p.height - b.Y*p.scale - h
	return x, y, w, h
}

func (p placement) canvas(dies int) (w, h float64) {
	dies = max(dies, 1)
	return 2*margin + float64(dies)*p.dieW + float64(dies-1)*dieGap, 2*margin + p.height
}

// index maps block IDs to their die and block.
type located struct {
	layer int
	block fpio.Block
}

func indexBlocks(l fpio.Layout) map[string]located {
	out := make(map[string]located, l.BlockCount())
	for _, d := range l.Dies {
		for _, b := range d.Blocks {
			out[b.ID] = located{layer: d.Layer, block: b}
		}
	}
	return out
}
