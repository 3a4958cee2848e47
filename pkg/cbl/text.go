package cbl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/errors"
)

// WriteText writes the CBLs of all dies, one "die <n>" header per die and
// one "<id> <dir> <juncts> <width> <height>" line per tuple.
func WriteText(w io.Writer, dies []*Die, reg *block.Registry) error {
	bw := bufio.NewWriter(w)
	for _, d := range dies {
		fmt.Fprintf(bw, "die %d\n", d.Layer)
		for _, t := range d.tuples {
			b := reg.Get(t.Block)
			fmt.Fprintf(bw, "%s %s %d %s %s\n", b.ID, t.Dir, t.Juncts,
				strconv.FormatFloat(b.Width(), 'g', -1, 64),
				strconv.FormatFloat(b.Height(), 'g', -1, 64))
		}
	}
	return bw.Flush()
}

// ReadText parses the output of [WriteText]. Block dimensions from the text
// are applied to the registry once the whole input has parsed; on error the
// registry is left untouched. The result has one sequence per die header,
// indexed by layer. Blank lines and lines starting with '#' are ignored.
func ReadText(r io.Reader, reg *block.Registry) ([][]Tuple, error) {
	var (
		out   [][]Tuple
		cur   = -1
		seen  = make(map[string]int)
		sizes = make(map[block.Handle][2]float64)
	)

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if fields[0] == "die" {
			if len(fields) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidCBL, "line %d: malformed die header", line)
			}
			layer, err := strconv.Atoi(fields[1])
			if err != nil || layer < 0 {
				return nil, errors.New(errors.ErrCodeInvalidCBL, "line %d: invalid layer %q", line, fields[1])
			}
			for len(out) <= layer {
				out = append(out, nil)
			}
			cur = layer
			continue
		}

		if cur < 0 {
			return nil, errors.New(errors.ErrCodeInvalidCBL, "line %d: tuple before first die header", line)
		}
		t, size, err := parseTuple(fields, reg, line)
		if err != nil {
			return nil, err
		}
		id := reg.Get(t.Block).ID
		if prev, dup := seen[id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCBL, "line %d: block %s already listed on line %d", line, id, prev)
		}
		seen[id] = line
		sizes[t.Block] = size
		out[cur] = append(out[cur], t)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCBL, err, "read CBL")
	}

	for h, size := range sizes {
		b := reg.Get(h)
		b.Bounds = b.Bounds.Resize(size[0], size[1])
	}
	return out, nil
}

// parseTuple parses one tuple line and returns the block's width and height.
func parseTuple(fields []string, reg *block.Registry, line int) (Tuple, [2]float64, error) {
	var none [2]float64
	if len(fields) != 5 {
		return Tuple{}, none, errors.New(errors.ErrCodeInvalidCBL, "line %d: expected 5 fields, got %d", line, len(fields))
	}
	b, ok := reg.Lookup(fields[0])
	if !ok || b.Handle == block.RefOrigin {
		return Tuple{}, none, errors.New(errors.ErrCodeBlockNotFound, "line %d: unknown block %q", line, fields[0])
	}
	dir, err := ParseDirection(fields[1])
	if err != nil {
		return Tuple{}, none, errors.Wrap(errors.ErrCodeInvalidCBL, err, "line %d", line)
	}
	juncts, err := strconv.Atoi(fields[2])
	if err != nil || juncts < 0 {
		return Tuple{}, none, errors.New(errors.ErrCodeInvalidCBL, "line %d: invalid junction count %q", line, fields[2])
	}
	w, errW := strconv.ParseFloat(fields[3], 64)
	h, errH := strconv.ParseFloat(fields[4], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Tuple{}, none, errors.New(errors.ErrCodeInvalidCBL, "line %d: invalid dimensions %q x %q", line, fields[3], fields[4])
	}

	return Tuple{Block: b.Handle, Dir: dir, Juncts: juncts}, [2]float64{w, h}, nil
}
