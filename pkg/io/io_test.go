package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/corblivar/pkg/alignment"
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/cbl"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/floorplan"
)

const sample = `
name: tiny
blocks:
  - id: A
    width: 4
    height: 2
    power_density: 1.5
  - id: B
    width: 3
    height: 2
    soft: true
    ar: [0.5, 2]
  - id: C
    width: 2
    height: 5
    rotatable: true
    floorplacement: true
  - id: T
    kind: tsv_island
    tsv: {count: 9, pitch: 2}
alignments:
  - a: RBOD
    b: A
    x: {type: offset, value: 0}
    y: {type: offset, value: 0}
  - a: A
    b: C
    x: {type: range, value: 2}
`

func TestReadBenchmark(t *testing.T) {
	bench, err := ReadBenchmark(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "tiny", bench.Name)
	require.Equal(t, 4, bench.Registry.Len())

	a, ok := bench.Registry.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 4.0, a.Width())
	assert.Equal(t, 1.5, a.PowerDensity)

	b, _ := bench.Registry.Lookup("B")
	assert.True(t, b.Soft)
	assert.Equal(t, [2]float64{0.5, 2}, [2]float64{b.ARMin, b.ARMax})

	c, _ := bench.Registry.Lookup("C")
	assert.True(t, c.Rotatable)
	assert.True(t, c.Floorplacement)

	tsv, _ := bench.Registry.Lookup("T")
	assert.Equal(t, block.KindTSVIsland, tsv.Kind)
	assert.Equal(t, 6.0, tsv.Width(), "3x3 TSVs at pitch 2")

	require.Len(t, bench.Requests, 2)
	assert.Equal(t, block.RefOrigin, bench.Requests[0].A)
	assert.True(t, bench.Requests[0].ZeroOffsetBoth())
	assert.Equal(t, alignment.Axis{Type: alignment.AxisRange, Value: 2}, bench.Requests[1].X)
	assert.Equal(t, 1, bench.Requests[1].ID)
}

func TestReadBenchmarkErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidBenchmark},
		{"no blocks", "name: x\n", errors.ErrCodeInvalidBenchmark},
		{"unknown field", "blocks:\n  - id: a\n    width: 1\n    height: 1\n    colour: red\n", errors.ErrCodeInvalidBenchmark},
		{"bad id", "blocks:\n  - id: 'a b'\n    width: 1\n    height: 1\n", errors.ErrCodeInvalidBenchmark},
		{"reserved id", "blocks:\n  - id: RBOD\n    width: 1\n    height: 1\n", errors.ErrCodeInvalidBenchmark},
		{"duplicate", "blocks:\n  - {id: a, width: 1, height: 1}\n  - {id: a, width: 1, height: 1}\n", errors.ErrCodeInvalidBenchmark},
		{"zero size", "blocks:\n  - {id: a, width: 0, height: 1}\n", errors.ErrCodeInvalidBenchmark},
		{"soft without ar", "blocks:\n  - {id: a, width: 1, height: 1, soft: true}\n", errors.ErrCodeInvalidBenchmark},
		{"inverted ar", "blocks:\n  - {id: a, width: 1, height: 1, soft: true, ar: [2, 1]}\n", errors.ErrCodeInvalidBenchmark},
		{"unknown kind", "blocks:\n  - {id: a, width: 1, height: 1, kind: macro}\n", errors.ErrCodeInvalidBenchmark},
		{"tsv without pitch", "blocks:\n  - {id: a, kind: tsv_island, tsv: {count: 4}}\n", errors.ErrCodeInvalidBenchmark},
		{"unknown alignment block", "blocks:\n  - {id: a, width: 1, height: 1}\nalignments:\n  - {a: a, b: z}\n", errors.ErrCodeInvalidBenchmark},
		{"self alignment", "blocks:\n  - {id: a, width: 1, height: 1}\nalignments:\n  - {a: a, b: a}\n", errors.ErrCodeInvalidBenchmark},
		{"bad axis type", "blocks:\n  - {id: a, width: 1, height: 1}\n  - {id: b, width: 1, height: 1}\nalignments:\n  - {a: a, b: b, x: {type: slack}}\n", errors.ErrCodeInvalidBenchmark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBenchmark(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestImportBenchmarkMissingFile(t *testing.T) {
	_, err := ImportBenchmark(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func decodedCore(t *testing.T) *floorplan.Core {
	t.Helper()
	bench, err := ReadBenchmark(strings.NewReader(sample))
	require.NoError(t, err)

	c := floorplan.New(bench.Registry, 2)
	for _, r := range bench.Requests {
		c.AddRequest(r)
	}
	h := func(id string) block.Handle {
		b, ok := bench.Registry.Lookup(id)
		require.True(t, ok)
		return b.Handle
	}
	require.NoError(t, c.SetCBLs([][]cbl.Tuple{
		{{Block: h("A"), Dir: cbl.Horizontal}, {Block: h("B"), Dir: cbl.Horizontal}, {Block: h("C"), Dir: cbl.Vertical, Juncts: 1}},
		{{Block: h("T"), Dir: cbl.Horizontal}},
	}))
	require.True(t, c.GenerateLayout(true))
	return c
}

func TestLayoutRoundTrip(t *testing.T) {
	l := FromCore("tiny", decodedCore(t))

	require.Len(t, l.Dies, 2)
	assert.Equal(t, 4, l.BlockCount())
	assert.Equal(t, 7.0, l.Width)
	assert.Equal(t, 7.0, l.Height)

	a := l.Dies[0].Blocks[0]
	assert.Equal(t, Block{ID: "A", X: 0, Y: 0, Width: 4, Height: 2, Dir: "H", Alignment: "SUCCESS"}, a)
	assert.Equal(t, "tsv_island", l.Dies[1].Blocks[0].Kind)
	require.Len(t, l.Alignments, 2)
	assert.Equal(t, Alignment{A: "RBOD", B: "A", Fulfilled: true}, l.Alignments[0])

	var buf bytes.Buffer
	require.NoError(t, WriteLayout(l, &buf))
	back, err := ReadLayout(&buf)
	require.NoError(t, err)
	assert.Equal(t, l, back)
}

func TestExportImportLayout(t *testing.T) {
	l := FromCore("tiny", decodedCore(t))
	path := filepath.Join(t.TempDir(), "layout.json")

	require.NoError(t, ExportLayout(l, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "A"`)

	back, err := ImportLayout(path)
	require.NoError(t, err)
	assert.Equal(t, l, back)

	_, err = ReadLayout(strings.NewReader("{"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
