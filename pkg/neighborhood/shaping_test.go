package neighborhood

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/cbl"
	"github.com/matzehuels/corblivar/pkg/floorplan"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// layoutCore puts every block on die 0 at the given rectangle.
func layoutCore(t *testing.T, blocks ...block.Block) (*Set, []*block.Block) {
	t.Helper()
	reg := block.NewRegistry()
	var seq []cbl.Tuple
	for _, b := range blocks {
		h, err := reg.Add(b)
		require.NoError(t, err)
		seq = append(seq, cbl.Tuple{Block: h})
	}
	c := floorplan.New(reg, 1)
	require.NoError(t, c.SetCBLs([][]cbl.Tuple{seq}))
	return New(c, Policy{}, rand.New(rand.NewPCG(1, 1))), reg.All()
}

func TestShapeTo(t *testing.T) {
	soft := block.Block{ID: "s", Soft: true, ARMin: 0.25, ARMax: 4, Bounds: geometry.New(0, 0, 2, 2)}
	above := block.Block{ID: "o", Bounds: geometry.New(0, 2, 4, 1)}
	right := block.Block{ID: "p", Bounds: geometry.New(5, 0, 1, 1)}

	tests := []struct {
		name string
		mode shapeMode
		ok   bool
		want geometry.Rect
	}{
		{"stretch horizontal to nearest front", stretchHorizontal, true, geometry.New(0, 0, 4, 1)},
		{"shrink horizontal without front", shrinkHorizontal, false, geometry.New(0, 0, 2, 2)},
		{"stretch vertical", stretchVertical, true, geometry.New(0, 0, 4.0/3, 3)},
		{"shrink vertical without front", shrinkVertical, false, geometry.New(0, 0, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bs := layoutCore(t, soft, above, right)
			assert.Equal(t, tt.ok, s.shapeTo(0, bs[0], tt.mode))
			assert.True(t, bs[0].Bounds.Equal(tt.want), "got %+v", bs[0].Bounds)
			assert.InDelta(t, 4, bs[0].Bounds.Area(), 1e-9)
		})
	}
}

func TestShapeToShrinkToLowerFront(t *testing.T) {
	tests := []struct {
		name  string
		mode  shapeMode
		soft  geometry.Rect
		other geometry.Rect
		want  geometry.Rect
	}{
		{"horizontal snaps right edge to left front", shrinkHorizontal,
			geometry.New(0, 0, 4, 1), geometry.New(2, 1, 3, 1), geometry.New(0, 0, 2, 2)},
		{"vertical snaps top edge to bottom front", shrinkVertical,
			geometry.New(0, 0, 1, 4), geometry.New(1, 2, 1, 3), geometry.New(0, 0, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bs := layoutCore(t,
				block.Block{ID: "s", Soft: true, ARMin: 0.25, ARMax: 4, Bounds: tt.soft},
				block.Block{ID: "o", Bounds: tt.other})
			require.True(t, s.shapeTo(0, bs[0], tt.mode))
			assert.True(t, bs[0].Bounds.Equal(tt.want), "got %+v", bs[0].Bounds)
		})
	}
}

func TestShapeToRandomAspectRatio(t *testing.T) {
	s, bs := layoutCore(t, block.Block{ID: "s", Soft: true, ARMin: 0.5, ARMax: 2, Bounds: geometry.New(0, 0, 2, 2)})
	require.True(t, s.shapeTo(0, bs[0], randomAspectRatio))

	ar := bs[0].Width() / bs[0].Height()
	assert.GreaterOrEqual(t, ar, 0.5-1e-9)
	assert.LessOrEqual(t, ar, 2+1e-9)
	assert.InDelta(t, 4, bs[0].Bounds.Area(), 1e-9)
}

func TestShapeToRespectsAspectRatio(t *testing.T) {
	soft := block.Block{ID: "s", Soft: true, ARMin: 0.5, ARMax: 2, Bounds: geometry.New(0, 0, 2, 2)}
	above := block.Block{ID: "o", Bounds: geometry.New(0, 2, 4, 1)}
	s, bs := layoutCore(t, soft, above)

	assert.False(t, s.shapeTo(0, bs[0], stretchHorizontal))
	assert.Equal(t, geometry.New(0, 0, 2, 2), bs[0].Bounds)

	assert.False(t, s.shapeTo(0, bs[1], stretchHorizontal), "hard blocks are not reshaped")
}

func TestRotationPays(t *testing.T) {
	wide := block.Block{ID: "b", Rotatable: true, Bounds: geometry.New(0, 0, 6, 2)}
	column := block.Block{ID: "c", Bounds: geometry.New(0, 2, 2, 6)}
	row := block.Block{ID: "d", Bounds: geometry.New(6, 0, 1, 8)}

	s, bs := layoutCore(t, wide, column, row)
	assert.True(t, s.rotationPays(0, bs[0]), "tall row neighbor absorbs the rotated height")

	s, bs = layoutCore(t, wide, column)
	assert.False(t, s.rotationPays(0, bs[0]), "gain equals loss")

	tall := block.Block{ID: "b", Rotatable: true, Bounds: geometry.New(0, 0, 2, 6)}
	wideColumn := block.Block{ID: "e", Bounds: geometry.New(0, 6, 8, 1)}
	s, bs = layoutCore(t, tall, wideColumn)
	assert.True(t, s.rotationPays(0, bs[0]))

	// Only the row counts for a wide block; a wide column peer is ignored.
	flatColumn := block.Block{ID: "f", Bounds: geometry.New(0, 2, 7, 1)}
	s, bs = layoutCore(t, wide, row, flatColumn)
	assert.True(t, s.rotationPays(0, bs[0]))
	s, bs = layoutCore(t, wide, flatColumn)
	assert.False(t, s.rotationPays(0, bs[0]))

	square := block.Block{ID: "q", Rotatable: true, Bounds: geometry.New(0, 0, 3, 3)}
	s, bs = layoutCore(t, square, row)
	assert.False(t, s.rotationPays(0, bs[0]), "square blocks use their column")
	squareColumn := block.Block{ID: "g", Bounds: geometry.New(0, 3, 5, 1)}
	s, bs = layoutCore(t, square, squareColumn)
	assert.True(t, s.rotationPays(0, bs[0]), "a wider column absorbs the rotation")
}

func TestRotateBlockRevertRestoresRect(t *testing.T) {
	soft := block.Block{ID: "s", Soft: true, ARMin: 0.25, ARMax: 4, Bounds: geometry.New(1, 1, 2, 2)}
	s, bs := layoutCore(t, soft)
	before := bs[0].Bounds

	require.True(t, s.rotateBlock())
	require.True(t, s.PerformRandomLayoutOp(false, true))
	assert.Equal(t, before, bs[0].Bounds)
}
