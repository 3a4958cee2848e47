package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fpio "github.com/matzehuels/corblivar/pkg/io"
	"github.com/matzehuels/corblivar/pkg/pipeline"
	"github.com/matzehuels/corblivar/pkg/render"
)

const (
	engineDirect   = "direct"
	engineGraphviz = "graphviz"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output         string
	formats        []string
	engine         string // SVG writer: "direct" or "graphviz"
	scale          float64
	showLabels     bool
	showAlignments bool
	zoom           float64 // PNG resolution factor
}

// renderCommand creates the render command for exported layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		engine:         engineDirect,
		showLabels:     true,
		showAlignments: true,
		zoom:           pipeline.DefaultPNGZoom,
	}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render an exported layout",
		Long: `Render an exported layout.

The layout JSON (written by 'layout -f json') holds every placed block, so
rendering needs neither the benchmark nor a decode. Dies are drawn side by
side on a shared scale.

With --engine graphviz the SVG is produced by Graphviz from the pinned DOT
graph instead of the built-in writer. PDF and PNG need rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatSVG)
			if err := validateRenderFormats(opts.formats); err != nil {
				return err
			}
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			if opts.engine != engineDirect && opts.engine != engineGraphviz {
				return fmt.Errorf("invalid engine: %s (must be 'direct' or 'graphviz')", opts.engine)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: <layout> without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "SVG engine: direct (default), graphviz")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "pixels per layout unit (0 fits 600px)")
	cmd.Flags().BoolVar(&opts.showLabels, "labels", opts.showLabels, "draw block IDs")
	cmd.Flags().BoolVar(&opts.showAlignments, "alignments", opts.showAlignments, "draw alignment requests")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", opts.zoom, "PNG resolution factor")

	return cmd
}

// validateRenderFormats accepts the drawable formats only.
func validateRenderFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatPDF, pipeline.FormatPNG:
		default:
			return fmt.Errorf("invalid format: %s (must be 'svg', 'dot', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// runRender loads the layout and writes every requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "render")

	l, err := fpio.ImportLayout(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded layout", "name", l.Name, "dies", len(l.Dies), "blocks", l.BlockCount())

	artifacts, err := renderLayout(ctx, l, opts)
	if err != nil {
		return err
	}
	prog.done("rendered layout", "input", input, "formats", len(opts.formats))

	printSuccess("Render complete")
	_, err = writeArtifacts(basePath(opts.output, input), opts.formats, artifacts)
	return err
}

// renderLayout produces the requested formats of l.
func renderLayout(ctx context.Context, l fpio.Layout, opts *renderOpts) (map[string][]byte, error) {
	ropts := render.Options{
		Scale:          opts.scale,
		ShowLabels:     opts.showLabels,
		ShowAlignments: opts.showAlignments,
	}
	dot := render.ToDOT(l, ropts)

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		if opts.engine == engineGraphviz {
			var err error
			svg, err = render.RenderSVG(ctx, dot)
			return svg, err
		}
		svg = render.SVG(l, ropts)
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.formats))
	for _, format := range opts.formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case pipeline.FormatDOT:
			data = []byte(dot)
		case pipeline.FormatSVG:
			data, err = svgOnce()
		case pipeline.FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case pipeline.FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.zoom)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
