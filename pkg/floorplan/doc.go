// Package floorplan holds the multi-die core of a 3D floorplan: one CBL
// die per layer, the global alignment requests, and the structural
// primitives the neighborhood operators are built from.
//
// # Primitives
//
// [Core.SwapBlocks], [Core.MoveTuples], [Core.SwitchInsertionDirection] and
// [Core.SwitchTupleJunctions] are pure edits of the tuple sequences; none of
// them decodes. Callers sequence mutate, [Core.GenerateLayout], evaluate and
// then either accept or roll back.
//
// # Snapshots
//
// [Core.BackupCBLs] and [Core.RestoreCBLs] save and roll back tuple order and
// block rectangles of every die at once. [Core.StoreBestCBLs] and
// [Core.ApplyBestCBLs] do the same for the best solution seen so far.
//
// A Core is not safe for concurrent use. Independent candidates can be
// evaluated in parallel when each owns its own registry (see
// [block.Registry.Clone]) and Core.
package floorplan
