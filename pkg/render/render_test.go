package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/corblivar/pkg/errors"
	fpio "github.com/matzehuels/corblivar/pkg/io"
)

func sampleLayout() fpio.Layout {
	return fpio.Layout{
		Name:   "sample",
		Width:  7,
		Height: 3,
		Dies: []fpio.Die{
			{Layer: 0, Blocks: []fpio.Block{
				{ID: "A", X: 0, Y: 0, Width: 4, Height: 2, Dir: "H", Alignment: "FAIL_HOR_TOO_LEFT"},
				{ID: "B", X: 4, Y: 0, Width: 3, Height: 3, Dir: "V", Kind: "pin"},
			}},
			{Layer: 1, Blocks: []fpio.Block{
				{ID: "C", X: 0, Y: 0, Width: 2, Height: 2, Dir: "H", Soft: true},
			}},
		},
		Alignments: []fpio.Alignment{{A: "A", B: "C", Fulfilled: false}},
	}
}

func TestSVG(t *testing.T) {
	out := string(SVG(sampleLayout(), Options{Scale: 10, ShowLabels: true, ShowAlignments: true}))

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `viewBox="0 0 188.0 54.0"`)
	assert.Equal(t, 2, strings.Count(out, `class="die"`))
	assert.Equal(t, 3, strings.Count(out, `class="block"`))

	// y axis flipped: a 2-high block on the floor of a 3-high die
	assert.Contains(t, out, `id="block-A" x="12.00" y="22.00" width="40.00" height="20.00" fill="#dbe9f6" stroke="#c0392b"`)
	assert.Contains(t, out, `id="block-B" x="52.00" y="12.00" width="30.00" height="30.00" fill="#f6e3b4" stroke="#333333"`)
	// second die is offset by one die width plus the gap
	assert.Contains(t, out, `id="block-C" x="106.00" y="22.00" width="20.00" height="20.00" fill="#d4efdf"`)

	assert.Contains(t, out, `<line class="alignment" x1="32.00" y1="32.00" x2="116.00" y2="32.00" stroke="#c0392b" stroke-dasharray="3 3"/>`)
	assert.Contains(t, out, `>A</text>`)
}

func TestSVGWithoutOverlays(t *testing.T) {
	out := string(SVG(sampleLayout(), Options{Scale: 10}))
	assert.NotContains(t, out, "<text")
	assert.NotContains(t, out, "<line")
}

func TestSVGEscapesIDs(t *testing.T) {
	l := fpio.Layout{Width: 1, Height: 1, Dies: []fpio.Die{{Blocks: []fpio.Block{
		{ID: "a<b>", Width: 1, Height: 1},
	}}}}
	out := string(SVG(l, Options{ShowLabels: true}))
	assert.Contains(t, out, "a&lt;b&gt;")
	assert.NotContains(t, out, "a<b>")
}

func TestSVGFitsWidth(t *testing.T) {
	out := string(SVG(sampleLayout(), Options{}))
	// 600px for the widest die: scale 600/7
	assert.Contains(t, out, `id="block-B" x="354.86"`)
}

func TestSVGSkipsUnknownAlignmentEndpoints(t *testing.T) {
	l := sampleLayout()
	l.Alignments = append(l.Alignments, fpio.Alignment{A: "A", B: "missing"})
	out := string(SVG(l, Options{Scale: 10, ShowAlignments: true}))
	assert.Equal(t, 1, strings.Count(out, "<line"))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Scale: 10, ShowLabels: true, ShowAlignments: true})

	assert.True(t, strings.HasPrefix(dot, "graph floorplan {"))
	assert.Contains(t, dot, `"A" [pos="32.00,22.00!", width=0.5556, height=0.2778, fillcolor="#dbe9f6", label="A"];`)
	assert.Contains(t, dot, `"C" [pos="116.00,22.00!"`)
	assert.Contains(t, dot, `"A" -- "C" [style=dashed, color="#c0392b"];`)
}

func TestToDOTHidesLabels(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Scale: 10})
	assert.Contains(t, dot, `label=""`)
	assert.NotContains(t, dot, " -- ")
}

func TestConvertWithoutRsvg(t *testing.T) {
	if ConverterAvailable() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF(context.Background(), SVG(sampleLayout(), Options{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}
