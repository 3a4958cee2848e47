// Package io reads floorplanning benchmarks and writes decoded layouts.
//
// # Benchmark Format
//
// Benchmarks are YAML documents listing blocks and alignment requests:
//
//	name: n10
//	blocks:
//	  - id: sb0
//	    width: 4
//	    height: 2
//	    soft: true
//	    ar: [0.5, 2]
//	    power_density: 0.3
//	  - id: m1
//	    width: 20
//	    height: 12
//	    rotatable: true
//	    floorplacement: true
//	  - id: tsv0
//	    kind: tsv_island
//	    tsv: {count: 16, pitch: 2}
//	alignments:
//	  - a: RBOD
//	    b: sb0
//	    x: {type: offset, value: 0}
//	    y: {type: range, value: 2}
//
// # Block Fields
//
// Required:
//   - id: Unique identifier without whitespace ("RBOD" is reserved for the
//     reference origin)
//   - width, height: Positive outline, optional for TSV islands which are
//     sized from count and pitch
//
// Optional:
//   - kind: "standard" (default), "pin", or "tsv_island"
//   - soft: Reshapable within ar
//   - ar: [min, max] aspect-ratio bounds of soft blocks
//   - rotatable: Hard block may be rotated
//   - floorplacement: Large macro protected from early perturbation
//   - power_density: Orders blocks across dies with power-aware assignment
//
// # Layout Format
//
// [WriteLayout] emits the decoded geometry as JSON, grouped per die, with
// the outcome of every alignment request. [ReadLayout] reads it back for
// rendering without re-decoding.
package io
