// Package render draws decoded floorplans.
//
// # Overview
//
// Renderers consume an [io.Layout], so a layout can be drawn straight from a
// core or from a previously exported JSON file. Dies are drawn side by side,
// layer 0 leftmost, on a shared scale.
//
//   - [SVG] writes a self-contained SVG without external tools
//   - [ToDOT] emits Graphviz DOT with every block pinned at its position,
//     rendered by [RenderSVG] through the neato engine
//   - [ToPDF] and [ToPNG] convert SVG using rsvg-convert
//
// # Example
//
//	l := io.FromCore("n10", core)
//	svg := render.SVG(l, render.Options{ShowAlignments: true})
//
//	dot := render.ToDOT(l, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [io.Layout]: github.com/matzehuels/corblivar/pkg/io.Layout
package render
