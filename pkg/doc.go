// Package pkg provides the core libraries of Corblivar, a 3D floorplanning
// engine built on corner block lists.
//
// # Overview
//
// A floorplan places rectangular blocks on a stack of dies. Every die holds
// a corner block list (CBL): a sequence of tuples naming a block, the
// direction it is inserted in, and how many previously placed blocks it
// covers. A stack-sweep decoder turns each list into block positions;
// reversible neighborhood operators perturb the lists.
//
// # Architecture
//
// The typical data flow through Corblivar:
//
//	Benchmark (YAML)
//	         ↓
//	    [io] package (blocks + alignment requests)
//	         ↓
//	    [floorplan] package (one CBL per die, decode, packing)
//	         ↓
//	    [neighborhood] package (random operators, revert, best solution)
//	         ↓
//	    [render] package (SVG, DOT, PDF, PNG)
//
// # Quick Start
//
// Decode a random initial floorplan and walk the neighborhood:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/corblivar/pkg/config"
//	    "github.com/matzehuels/corblivar/pkg/io"
//	    "github.com/matzehuels/corblivar/pkg/neighborhood"
//	    "github.com/matzehuels/corblivar/pkg/pipeline"
//	)
//
//	// 1. Read the benchmark
//	bench, _ := io.ImportBenchmark("n10.yaml")
//
//	// 2. Build and decode a random solution
//	s := config.Default()
//	core := pipeline.NewCore(bench, s)
//	rng := pipeline.NewRand(s.Seed)
//	core.InitCBLs(rng)
//	pipeline.Decode(core, s)
//
//	// 3. Perturb, keeping the best solution seen
//	set := neighborhood.New(core, s.Policy(), rng)
//	stats, _ := pipeline.Walk(context.Background(), set, s)
//
// [pipeline.Runner] wraps these steps with caching and rendering and is what
// the CLI uses.
//
// # Main Packages
//
// ## Domain Model
//
// [geometry] - Axis-aligned rectangles and the interval tests the decoder
// and the operators share.
//
// [block] - Blocks with hard or soft shapes, rotation, TSV islands, and the
// registry that hands out stable handles.
//
// [cbl] - Corner block list tuples, per-die sequences, the stack-sweep
// decoder, compaction, and the checkpoint text format.
//
// [alignment] - Alignment requests between block pairs and their evaluation
// after decoding.
//
// ## Engine
//
// [floorplan] - The layout core: one CBL per die, initial assignment, layout
// generation, and the low-level primitives the operators build on.
//
// [neighborhood] - Random layout operators with exact revert, the guided
// phase for unfulfilled alignments, and best-solution bookkeeping.
//
// ## Infrastructure
//
// [config] - TOML run settings with defaults and validation.
//
// [io] - Benchmark reader and the JSON layout format.
//
// [render] - SVG and DOT writers, Graphviz rendering, and PDF/PNG
// conversion.
//
// [cache] - Content-addressed file cache for solutions and artifacts.
//
// [pipeline] - Benchmark to artifacts (solve, decode, render) with caching.
//
// [observability] - Hook interfaces for decode, operator, and cache events,
// plus a Prometheus implementation.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/neighborhood/...  # Specific package
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/geometry
// [block]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/block
// [cbl]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/cbl
// [alignment]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/alignment
// [floorplan]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/floorplan
// [neighborhood]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/neighborhood
// [config]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/pipeline#Runner
// [observability]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/corblivar/pkg/errors
package pkg
