package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/floorplan"
)

// Layout is the serialized form of a decoded floorplan.
type Layout struct {
	Name       string      `json:"name,omitempty"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Dies       []Die       `json:"dies"`
	Alignments []Alignment `json:"alignments,omitempty"`
}

// Die holds the placed blocks of one layer in CBL order.
type Die struct {
	Layer  int     `json:"layer"`
	Blocks []Block `json:"blocks"`
}

// Block is one placed rectangle.
type Block struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Dir       string  `json:"dir"`
	Juncts    int     `json:"juncts,omitempty"`
	Kind      string  `json:"kind,omitempty"`
	Soft      bool    `json:"soft,omitempty"`
	Alignment string  `json:"alignment,omitempty"`
}

// Alignment is the outcome of one request.
type Alignment struct {
	A         string `json:"a"`
	B         string `json:"b"`
	Fulfilled bool   `json:"fulfilled"`
}

// FromCore captures the current geometry of c.
func FromCore(name string, c *floorplan.Core) Layout {
	reg := c.Registry()
	outline := c.Outline()
	l := Layout{
		Name:   name,
		Width:  outline.Right,
		Height: outline.Top,
		Dies:   make([]Die, c.Layers()),
	}
	for i, d := range c.Dies() {
		l.Dies[i] = Die{Layer: d.Layer, Blocks: make([]Block, d.Len())}
		for j, t := range d.Tuples() {
			b := reg.Get(t.Block)
			lb := Block{
				ID:     b.ID,
				X:      b.Bounds.Left,
				Y:      b.Bounds.Bottom,
				Width:  b.Width(),
				Height: b.Height(),
				Dir:    t.Dir.String(),
				Juncts: t.Juncts,
				Soft:   b.Soft,
			}
			if b.Kind != block.KindStandard {
				lb.Kind = b.Kind.String()
			}
			if b.Alignment != block.AlignUndef {
				lb.Alignment = b.Alignment.String()
			}
			l.Dies[i].Blocks[j] = lb
		}
	}
	for _, r := range c.Requests() {
		l.Alignments = append(l.Alignments, Alignment{
			A:         reg.Get(r.A).ID,
			B:         reg.Get(r.B).ID,
			Fulfilled: r.Fulfilled,
		})
	}
	return l
}

// BlockCount returns the number of blocks over all dies.
func (l Layout) BlockCount() int {
	n := 0
	for _, d := range l.Dies {
		n += len(d.Blocks)
	}
	return n
}

// WriteLayout encodes l as indented JSON.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadLayout decodes a layout written by [WriteLayout].
func ReadLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}

// ExportLayout writes l to a JSON file at path.
func ExportLayout(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// ImportLayout reads a JSON layout file at path.
func ImportLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadLayout(f)
}
