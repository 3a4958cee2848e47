// Package block models the placeable items of a 3D floorplan.
//
// # Blocks
//
// A [Block] combines immutable identity and configuration (ID, [Kind],
// aspect-ratio bounds, power density) with mutable geometry: the current
// rectangle, a single-step backup, and the best-found snapshot. Geometry is
// overwritten in place by the decoder, the compaction pass and the
// neighborhood operators; blocks themselves live for the whole process.
//
// # Kinds
//
// Block behavior that depends on the kind dispatches on the [Kind] tag
// rather than on a type hierarchy:
//
//   - [KindStandard]: regular soft or hard module
//   - [KindPin]: I/O pin, never rotated or reshaped
//   - [KindTSVIsland]: cluster of through-silicon vias sized from count and pitch
//   - [KindReferenceOrigin]: fixed anchor at the die origin used by alignment requests
//
// # Registry
//
// A [Registry] is the arena owning all blocks. Everything else refers to
// blocks by [Handle], so stacks, tuples and alignment requests never share
// ownership of block values. The reference origin is held separately at
// [RefOrigin]; it is never part of a CBL and is not counted by
// [Registry.Len].
//
// # Concurrency
//
// Blocks and registries are not safe for concurrent use. Independent
// evaluations must each own a [Registry.Clone].
package block
