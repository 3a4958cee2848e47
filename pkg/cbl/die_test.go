package cbl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

type dims struct {
	id   string
	w, h float64
}

func newRegistry(t *testing.T, ds ...dims) (*block.Registry, map[string]block.Handle) {
	t.Helper()
	reg := block.NewRegistry()
	hs := make(map[string]block.Handle, len(ds))
	for _, d := range ds {
		h, err := reg.Add(block.Block{ID: d.id, Bounds: geometry.New(0, 0, d.w, d.h)})
		require.NoError(t, err)
		hs[d.id] = h
	}
	return reg, hs
}

// fixedCase is A=4x2, B=3x2, C=2x5 decoded as [(A,H,0),(B,H,0),(C,V,1)].
func fixedCase(t *testing.T) (*Die, *block.Registry, map[string]block.Handle) {
	t.Helper()
	reg, hs := newRegistry(t, dims{"A", 4, 2}, dims{"B", 3, 2}, dims{"C", 2, 5})
	d := NewDie(0, reg)
	d.Append(Tuple{Block: hs["A"], Dir: Horizontal})
	d.Append(Tuple{Block: hs["B"], Dir: Horizontal})
	d.Append(Tuple{Block: hs["C"], Dir: Vertical, Juncts: 1})
	return d, reg, hs
}

func TestDecodeFixedCase(t *testing.T) {
	d, reg, hs := fixedCase(t)
	d.Decode()

	require.True(t, d.Done())
	assert.True(t, reg.Get(hs["A"]).Bounds.Equal(geometry.New(0, 0, 4, 2)))
	assert.True(t, reg.Get(hs["B"]).Bounds.Equal(geometry.New(4, 0, 3, 2)))
	// C pops B and A from Vi, empties it, and lands on top of A.
	assert.True(t, reg.Get(hs["C"]).Bounds.Equal(geometry.New(0, 2, 2, 5)), "C = %+v", reg.Get(hs["C"]).Bounds)

	for _, b := range reg.All() {
		assert.True(t, b.Placed, "block %s should be placed", b.ID)
	}
}

func TestDecodeStacks(t *testing.T) {
	d, _, hs := fixedCase(t)
	d.Decode()

	// B still exposes its right edge; C covers A from above but not B. C is
	// pushed below the retained front, so B stays on top of Vi.
	assert.Equal(t, []block.Handle{hs["B"]}, d.hi)
	assert.Equal(t, []block.Handle{hs["C"], hs["B"]}, d.vi)
}

func TestDecodeAfterRetainedFront(t *testing.T) {
	d, reg, hs := fixedCase(t)
	dh, err := reg.Add(block.Block{ID: "D", Bounds: geometry.New(0, 0, 1, 1)})
	require.NoError(t, err)
	d.Append(Tuple{Block: dh, Dir: Vertical})
	d.Decode()

	// D pops the top of Vi, which is B, and lands on B's upper front.
	assert.True(t, reg.Get(dh).Bounds.Equal(geometry.New(4, 2, 1, 1)), "D = %+v", reg.Get(dh).Bounds)
	assert.Equal(t, []block.Handle{hs["C"], dh}, d.vi)
}

func TestDecodeHorizontalJunctions(t *testing.T) {
	reg, hs := newRegistry(t, dims{"A", 4, 2}, dims{"B", 2, 3}, dims{"C", 1, 6})
	d := NewDie(0, reg)
	d.Append(Tuple{Block: hs["A"], Dir: Horizontal})
	d.Append(Tuple{Block: hs["B"], Dir: Vertical})
	d.Append(Tuple{Block: hs["C"], Dir: Horizontal, Juncts: 1})
	d.Decode()

	assert.True(t, reg.Get(hs["B"]).Bounds.Equal(geometry.New(0, 2, 2, 3)))
	// C covers both fronts of Hi, empties it, and spans from y=0.
	assert.True(t, reg.Get(hs["C"]).Bounds.Equal(geometry.New(4, 0, 1, 6)), "C = %+v", reg.Get(hs["C"]).Bounds)
}

func TestDecodeJunctionsExceedStack(t *testing.T) {
	reg, hs := newRegistry(t, dims{"A", 4, 2}, dims{"B", 3, 2})
	d := NewDie(0, reg)
	d.Append(Tuple{Block: hs["A"], Dir: Horizontal, Juncts: 7})
	d.Append(Tuple{Block: hs["B"], Dir: Horizontal, Juncts: 12})
	d.Decode()

	assert.True(t, reg.Get(hs["A"]).Bounds.Equal(geometry.New(0, 0, 4, 2)))
	assert.True(t, reg.Get(hs["B"]).Bounds.Equal(geometry.New(4, 0, 3, 2)))
}

func TestDecodeDeterminism(t *testing.T) {
	reg, hs := newRegistry(t,
		dims{"a", 3, 2}, dims{"b", 2, 4}, dims{"c", 5, 1}, dims{"d", 1, 1}, dims{"e", 2, 2}, dims{"f", 4, 3})
	d := NewDie(0, reg)
	d.Append(Tuple{Block: hs["a"], Dir: Horizontal})
	d.Append(Tuple{Block: hs["b"], Dir: Vertical, Juncts: 1})
	d.Append(Tuple{Block: hs["c"], Dir: Horizontal, Juncts: 2})
	d.Append(Tuple{Block: hs["d"], Dir: Vertical})
	d.Append(Tuple{Block: hs["e"], Dir: Horizontal, Juncts: 1})
	d.Append(Tuple{Block: hs["f"], Dir: Vertical, Juncts: 3})

	d.Decode()
	first := make(map[string]geometry.Rect)
	for _, b := range reg.All() {
		first[b.ID] = b.Bounds
		b.Bounds = b.Bounds.MoveTo(100, 100)
	}

	d.Decode()
	for _, b := range reg.All() {
		assert.True(t, first[b.ID].Equal(b.Bounds), "block %s moved between decodes", b.ID)
	}
}

func TestPlaceCurrentBlockEmptyDie(t *testing.T) {
	reg, _ := newRegistry(t)
	d := NewDie(0, reg)
	d.Reset()
	assert.Nil(t, d.PlaceCurrentBlock())
	assert.True(t, d.Done())
}

func TestPlaceCurrentBlockAlreadyPlaced(t *testing.T) {
	d, reg, hs := fixedCase(t)
	for _, b := range reg.All() {
		b.Placed = false
	}
	d.Reset()

	a := reg.Get(hs["A"])
	a.Placed = true
	a.Bounds = geometry.New(10, 10, 4, 2)

	got := d.PlaceCurrentBlock()
	require.Same(t, a, got)
	assert.True(t, a.Bounds.Equal(geometry.New(10, 10, 4, 2)), "placed block must stay untouched")
	assert.Same(t, reg.Get(hs["B"]), d.CurrentBlock())
}

func TestPackingMovesSlack(t *testing.T) {
	reg, hs := newRegistry(t, dims{"A", 2, 2}, dims{"B", 3, 2}, dims{"C", 1, 4}, dims{"D", 2, 2})
	d := NewDie(0, reg)
	for _, id := range []string{"A", "B", "C", "D"} {
		d.Append(Tuple{Block: hs[id]})
	}
	reg.Get(hs["A"]).Bounds = geometry.New(0, 0, 2, 2)
	reg.Get(hs["B"]).Bounds = geometry.New(5, 0, 3, 2)
	reg.Get(hs["C"]).Bounds = geometry.New(9, 0, 1, 4)
	reg.Get(hs["D"]).Bounds = geometry.New(3, 3, 2, 2)

	before := append([]Tuple(nil), d.Tuples()...)
	d.PerformPacking(Horizontal)

	assert.True(t, reg.Get(hs["A"]).Bounds.Equal(geometry.New(0, 0, 2, 2)))
	assert.True(t, reg.Get(hs["B"]).Bounds.Equal(geometry.New(2, 0, 3, 2)))
	assert.True(t, reg.Get(hs["C"]).Bounds.Equal(geometry.New(5, 0, 1, 4)))
	assert.True(t, reg.Get(hs["D"]).Bounds.Equal(geometry.New(0, 3, 2, 2)))
	assert.Equal(t, before, d.Tuples(), "packing must not reorder the CBL")
}

func TestPackingIdempotent(t *testing.T) {
	for _, dir := range []Direction{Horizontal, Vertical} {
		t.Run(dir.String(), func(t *testing.T) {
			reg, hs := newRegistry(t, dims{"A", 2, 2}, dims{"B", 3, 2}, dims{"C", 1, 4}, dims{"D", 2, 2})
			d := NewDie(0, reg)
			for _, id := range []string{"A", "B", "C", "D"} {
				d.Append(Tuple{Block: hs[id]})
			}
			reg.Get(hs["A"]).Bounds = geometry.New(0, 0, 2, 2)
			reg.Get(hs["B"]).Bounds = geometry.New(5, 1, 3, 2)
			reg.Get(hs["C"]).Bounds = geometry.New(9, 4, 1, 4)
			reg.Get(hs["D"]).Bounds = geometry.New(3, 6, 2, 2)

			d.PerformPacking(dir)
			once := make([]geometry.Rect, 0, reg.Len())
			for _, b := range reg.All() {
				once = append(once, b.Bounds)
			}

			d.PerformPacking(dir)
			for i, b := range reg.All() {
				assert.True(t, once[i].Equal(b.Bounds), "block %s changed on second pass", b.ID)
			}
		})
	}
}

func TestBackupRestore(t *testing.T) {
	d, reg, hs := fixedCase(t)
	d.Decode()
	d.Backup()

	d.Remove(0)
	reg.Get(hs["B"]).Bounds = geometry.New(50, 50, 3, 2)
	d.Restore()

	require.Equal(t, 3, d.Len())
	assert.Equal(t, hs["A"], d.Tuple(0).Block)
	assert.True(t, reg.Get(hs["B"]).Bounds.Equal(geometry.New(4, 0, 3, 2)))
}

func TestBestSnapshot(t *testing.T) {
	d, reg, hs := fixedCase(t)
	assert.False(t, d.HasBest())

	d.Decode()
	d.StoreBest()
	require.True(t, d.HasBest())

	d.SetDirection(2, Horizontal)
	d.Decode()
	d.ApplyBest()

	assert.Equal(t, Vertical, d.Tuple(2).Dir)
	assert.True(t, reg.Get(hs["C"]).Bounds.Equal(geometry.New(0, 2, 2, 5)))
}

func TestSetJunctsClamps(t *testing.T) {
	d, _, _ := fixedCase(t)
	d.SetJuncts(0, -3)
	assert.Equal(t, 0, d.Tuple(0).Juncts)
}

func TestTextRoundTrip(t *testing.T) {
	d, reg, _ := fixedCase(t)
	other := NewDie(1, reg)
	other.Append(d.Remove(1))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []*Die{d, other}, reg))
	assert.Equal(t, "die 0\nA H 0 4 2\nC V 1 2 5\ndie 1\nB H 0 3 2\n", buf.String())

	seqs, err := ReadText(bytes.NewReader(buf.Bytes()), reg)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, d.Tuples(), seqs[0])
	assert.Equal(t, other.Tuples(), seqs[1])

	var again bytes.Buffer
	d.SetTuples(seqs[0])
	other.SetTuples(seqs[1])
	require.NoError(t, WriteText(&again, []*Die{d, other}, reg))
	assert.Equal(t, buf.String(), again.String())
}

func TestReadTextAppliesDimensions(t *testing.T) {
	reg, hs := newRegistry(t, dims{"A", 4, 2})
	_, err := ReadText(bytes.NewBufferString("# checkpoint\ndie 0\nA V 2 2.5 3.2\n"), reg)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, reg.Get(hs["A"]).Width(), geometry.Epsilon)
	assert.InDelta(t, 3.2, reg.Get(hs["A"]).Height(), geometry.Epsilon)
}

func TestReadTextErrors(t *testing.T) {
	reg, _ := newRegistry(t, dims{"A", 4, 2}, dims{"B", 1, 1})
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"no header", "A H 0 4 2\n", errors.ErrCodeInvalidCBL},
		{"unknown block", "die 0\nZ H 0 4 2\n", errors.ErrCodeBlockNotFound},
		{"bad direction", "die 0\nA X 0 4 2\n", errors.ErrCodeInvalidCBL},
		{"negative juncts", "die 0\nA H -1 4 2\n", errors.ErrCodeInvalidCBL},
		{"short line", "die 0\nA H 0\n", errors.ErrCodeInvalidCBL},
		{"duplicate", "die 0\nA H 0 4 2\ndie 1\nA V 0 4 2\n", errors.ErrCodeInvalidCBL},
		{"bad header", "die x\n", errors.ErrCodeInvalidCBL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(bytes.NewBufferString(tt.input), reg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestReadTextErrorLeavesRegistry(t *testing.T) {
	reg, hs := newRegistry(t, dims{"A", 4, 2}, dims{"B", 1, 1})
	_, err := ReadText(bytes.NewBufferString("die 0\nA V 0 2.5 3.2\nB H 0 oops 1\n"), reg)
	require.Error(t, err)
	assert.True(t, reg.Get(hs["A"]).Bounds.Equal(geometry.New(0, 0, 4, 2)), "A resized by a failed read: %+v", reg.Get(hs["A"]).Bounds)
}
