// Package cbl implements the Corner Block List (CBL) representation of one
// die and its decoder.
//
// # Representation
//
// A die's CBL is an ordered sequence of [Tuple] values, one per block on
// the die. Each tuple carries an insertion [Direction] and a T-junction
// count. The order of the sequence is the decode order; reordering tuples
// is how the optimizer explores the solution space.
//
// # Decoding
//
// [Die.Decode] sweeps the sequence once and assigns every block a lower-left
// corner. Two stacks of block handles track the currently visible fronts:
// Hi holds blocks exposing their right edge, Vi blocks exposing their top
// edge. A HORIZONTAL tuple with k junctions pops up to k+1 fronts from Hi
// and is placed to their right; VERTICAL is the mirrored dual on Vi. The
// popped set alone determines the coordinates, so decoding is linear in the
// number of tuples plus total pops.
//
// # Compaction
//
// [Die.PerformPacking] removes slack after decoding without touching the
// sequence: every block slides towards the origin along one axis until it
// abuts the blocks covering it.
//
// # Checkpoints
//
// [WriteText] and [ReadText] encode all dies as plain text, one line per
// tuple, so that a run can be resumed:
//
//	die 0
//	a H 0 4 2
//	b H 0 3 2
//	c V 1 2 5
//
// # Concurrency
//
// Dies mutate block geometry through their registry and are not safe for
// concurrent use.
package cbl
