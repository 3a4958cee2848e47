package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

func newPair(t *testing.T, a, b geometry.Rect) (*block.Registry, block.Handle, block.Handle) {
	t.Helper()
	reg := block.NewRegistry()
	ha, err := reg.Add(block.Block{ID: "a", Bounds: a})
	require.NoError(t, err)
	hb, err := reg.Add(block.Block{ID: "b", Bounds: b})
	require.NoError(t, err)
	return reg, ha, hb
}

func TestGeometricEvaluator(t *testing.T) {
	tests := []struct {
		name      string
		a, b      geometry.Rect
		x, y      Axis
		fulfilled bool
		wantA     block.AlignmentStatus
		wantB     block.AlignmentStatus
	}{
		{
			name:      "offset satisfied",
			a:         geometry.New(0, 0, 2, 2),
			b:         geometry.New(5, 0, 2, 2),
			x:         Axis{Type: AxisOffset, Value: 5},
			y:         Axis{Type: AxisOffset, Value: 0},
			fulfilled: true,
			wantA:     block.AlignSuccess,
			wantB:     block.AlignSuccess,
		},
		{
			name:  "b too far left",
			a:     geometry.New(0, 0, 2, 2),
			b:     geometry.New(3, 0, 2, 2),
			x:     Axis{Type: AxisOffset, Value: 5},
			wantA: block.AlignFailHorTooRight,
			wantB: block.AlignFailHorTooLeft,
		},
		{
			name:  "b too high for overlap",
			a:     geometry.New(0, 0, 2, 2),
			b:     geometry.New(0, 4, 2, 2),
			y:     Axis{Type: AxisRange, Value: 1},
			wantA: block.AlignFailVertTooLow,
			wantB: block.AlignFailVertTooHigh,
		},
		{
			name:      "range satisfied",
			a:         geometry.New(0, 0, 4, 2),
			b:         geometry.New(2, 2, 4, 2),
			x:         Axis{Type: AxisRange, Value: 2},
			fulfilled: true,
			wantA:     block.AlignSuccess,
			wantB:     block.AlignSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ha, hb := newPair(t, tt.a, tt.b)
			req := &Request{A: ha, B: hb, X: tt.x, Y: tt.y}

			got := GeometricEvaluator{}.Evaluate(req, reg)
			assert.Equal(t, tt.fulfilled, got)
			assert.Equal(t, tt.fulfilled, req.Fulfilled)
			assert.Equal(t, tt.wantA, reg.Get(ha).Alignment)
			assert.Equal(t, tt.wantB, reg.Get(hb).Alignment)
		})
	}
}

func TestEvaluatorSkipsReferenceOrigin(t *testing.T) {
	reg := block.NewRegistry()
	h, err := reg.Add(block.Block{ID: "a", Bounds: geometry.New(1, 0, 2, 2)})
	require.NoError(t, err)

	req := &Request{A: block.RefOrigin, B: h, X: Axis{Type: AxisOffset, Value: 0}}
	assert.False(t, GeometricEvaluator{}.Evaluate(req, reg))
	assert.Equal(t, block.AlignUndef, reg.RefOrigin().Alignment)
	assert.Equal(t, block.AlignFailHorTooRight, reg.Get(h).Alignment)
}

func TestRequestPredicates(t *testing.T) {
	req := &Request{
		A: 0, B: 1,
		X: Axis{Type: AxisOffset},
		Y: Axis{Type: AxisOffset},
	}
	assert.True(t, req.ZeroOffsetBoth())
	assert.False(t, req.RangeBoth())
	assert.Equal(t, block.Handle(1), req.Partner(0))
	assert.True(t, req.Involves(1))
	assert.False(t, req.Involves(2))

	req.X = Axis{Type: AxisRange, Value: 3}
	req.Y = Axis{Type: AxisOffset, Value: 7}
	req.SwapCoordinates()
	assert.Equal(t, Axis{Type: AxisOffset, Value: 7}, req.X)
	assert.Equal(t, Axis{Type: AxisRange, Value: 3}, req.Y)
	assert.True(t, req.FixedOffsetX())
	assert.True(t, req.RangeY())
	assert.False(t, req.RangeBoth())

	req.X = Axis{Type: AxisRange}
	req.Y = Axis{Type: AxisRange}
	assert.True(t, req.RangeBoth(), "a zero minimum overlap still ranges on both axes")
}

func TestParseAxisType(t *testing.T) {
	for _, typ := range []AxisType{AxisUndef, AxisOffset, AxisRange} {
		got, err := ParseAxisType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseAxisType("diagonal")
	assert.Error(t, err)
}
