package io

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/corblivar/pkg/alignment"
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// Benchmark is a parsed benchmark: the block registry and the alignment
// requests referring to it.
type Benchmark struct {
	Name     string
	Registry *block.Registry
	Requests []alignment.Request
}

type benchmarkDoc struct {
	Name       string         `yaml:"name"`
	Blocks     []blockDoc     `yaml:"blocks"`
	Alignments []alignmentDoc `yaml:"alignments"`
}

type blockDoc struct {
	ID             string    `yaml:"id"`
	Kind           string    `yaml:"kind"`
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	Soft           bool      `yaml:"soft"`
	AR             []float64 `yaml:"ar"`
	Rotatable      bool      `yaml:"rotatable"`
	Floorplacement bool      `yaml:"floorplacement"`
	PowerDensity   float64   `yaml:"power_density"`
	TSV            *tsvDoc   `yaml:"tsv"`
}

type tsvDoc struct {
	Count int     `yaml:"count"`
	Pitch float64 `yaml:"pitch"`
}

type alignmentDoc struct {
	A string  `yaml:"a"`
	B string  `yaml:"b"`
	X axisDoc `yaml:"x"`
	Y axisDoc `yaml:"y"`
}

type axisDoc struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}

// ReadBenchmark decodes a YAML benchmark from r.
//
// ReadBenchmark returns an error if the YAML is malformed, a block ID is
// invalid or duplicated, a block has no positive outline, a soft block's
// aspect-ratio range is inverted, or an alignment references an unknown
// block.
func ReadBenchmark(r io.Reader) (*Benchmark, error) {
	var doc benchmarkDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidBenchmark, "empty benchmark")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBenchmark, err, "decode benchmark")
	}
	if len(doc.Blocks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidBenchmark, "benchmark has no blocks")
	}

	bench := &Benchmark{Name: doc.Name, Registry: block.NewRegistry()}
	for _, bd := range doc.Blocks {
		b, err := bd.toBlock()
		if err != nil {
			return nil, err
		}
		if _, err := bench.Registry.Add(b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBenchmark, err, "block %s", bd.ID)
		}
	}

	for i, ad := range doc.Alignments {
		req, err := ad.toRequest(bench.Registry)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBenchmark, err, "alignment %d", i)
		}
		req.ID = i
		bench.Requests = append(bench.Requests, req)
	}
	return bench, nil
}

// ImportBenchmark reads a YAML benchmark file at path.
func ImportBenchmark(path string) (*Benchmark, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBenchmark, err, "open %s", path)
	}
	defer f.Close()
	return ReadBenchmark(f)
}

func (bd blockDoc) toBlock() (block.Block, error) {
	if err := errors.ValidateBlockID(bd.ID); err != nil {
		return block.Block{}, err
	}
	kind, ok := block.ParseKind(bd.Kind)
	if !ok || kind == block.KindReferenceOrigin {
		return block.Block{}, errors.New(errors.ErrCodeInvalidBenchmark, "block %s: unknown kind %q", bd.ID, bd.Kind)
	}

	b := block.Block{
		ID:             bd.ID,
		Kind:           kind,
		Soft:           bd.Soft,
		Rotatable:      bd.Rotatable,
		Floorplacement: bd.Floorplacement,
		PowerDensity:   bd.PowerDensity,
		Bounds:         geometry.New(0, 0, bd.Width, bd.Height),
	}

	if kind == block.KindTSVIsland {
		if bd.TSV == nil || bd.TSV.Count <= 0 || bd.TSV.Pitch <= 0 {
			return block.Block{}, errors.New(errors.ErrCodeInvalidBenchmark, "block %s: TSV island needs positive count and pitch", bd.ID)
		}
		b.TSV = block.TSVIsland{Count: bd.TSV.Count, Pitch: bd.TSV.Pitch}
	} else if err := errors.ValidateDimensions(bd.ID, bd.Width, bd.Height); err != nil {
		return block.Block{}, err
	}

	if bd.Soft {
		if len(bd.AR) != 2 {
			return block.Block{}, errors.New(errors.ErrCodeInvalidBenchmark, "block %s: soft blocks need ar: [min, max]", bd.ID)
		}
		if err := errors.ValidateAspectRatio(bd.ID, bd.AR[0], bd.AR[1]); err != nil {
			return block.Block{}, err
		}
		b.ARMin, b.ARMax = bd.AR[0], bd.AR[1]
	}
	return b, nil
}

func (ad alignmentDoc) toRequest(reg *block.Registry) (alignment.Request, error) {
	a, ok := reg.Lookup(ad.A)
	if !ok {
		return alignment.Request{}, errors.New(errors.ErrCodeBlockNotFound, "unknown block %q", ad.A)
	}
	b, ok := reg.Lookup(ad.B)
	if !ok {
		return alignment.Request{}, errors.New(errors.ErrCodeBlockNotFound, "unknown block %q", ad.B)
	}
	if a.Handle == b.Handle {
		return alignment.Request{}, errors.New(errors.ErrCodeInvalidBenchmark, "block %s aligned with itself", ad.A)
	}

	x, err := ad.X.toAxis()
	if err != nil {
		return alignment.Request{}, err
	}
	y, err := ad.Y.toAxis()
	if err != nil {
		return alignment.Request{}, err
	}
	return alignment.Request{A: a.Handle, B: b.Handle, X: x, Y: y}, nil
}

func (d axisDoc) toAxis() (alignment.Axis, error) {
	t, err := alignment.ParseAxisType(d.Type)
	if err != nil {
		return alignment.Axis{}, err
	}
	if t == alignment.AxisRange && d.Value < 0 {
		return alignment.Axis{}, errors.New(errors.ErrCodeInvalidBenchmark, "range must not be negative")
	}
	return alignment.Axis{Type: t, Value: d.Value}, nil
}
