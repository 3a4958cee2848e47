package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/corblivar/pkg/cache"
	fpio "github.com/matzehuels/corblivar/pkg/io"
	"github.com/matzehuels/corblivar/pkg/render"
)

// RenderWithCacheInfo produces every requested artifact of a layout. cblText
// is the checkpoint text of the solution the layout was decoded from; its
// hash keys the artifact cache. The bool reports whether all artifacts came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l fpio.Layout, cblText []byte, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	solutionHash := cache.Hash(cblText)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(solutionHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, l, cblText, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(solutionHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render generates the requested artifacts without caching.
func Render(ctx context.Context, l fpio.Layout, cblText []byte, opts Options) (map[string][]byte, error) {
	ropts := render.Options{
		Scale:          opts.Scale,
		ShowLabels:     opts.ShowLabels,
		ShowAlignments: opts.ShowAlignments,
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.SVG(l, ropts)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = fpio.WriteLayout(l, &buf)
			data = buf.Bytes()
		case FormatSVG:
			data = svgOnce()
		case FormatDOT:
			data = []byte(render.ToDOT(l, ropts))
		case FormatCBL:
			if cblText == nil {
				err = fmt.Errorf("no CBL solution available")
			}
			data = cblText
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), DefaultPNGZoom)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
