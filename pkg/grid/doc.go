// Package grid provides the integer coordinate model shared by every sheet.
//
// # Coordinates
//
// A [Point] is a cell on an unbounded integer plane. X grows to the right and
// Y grows upward, so [South] (also [Down]) is (0,-1). Points have value
// semantics and no total order: the only ordering is a projection onto a
// direction vector, see [SortByDirection].
//
// # Directions
//
// The eight compass directions are exported as Points. [Neighbors8] lists them
// clockwise starting at north-west, which fixes the traversal order used by
// cluster discovery:
//
//	NW  N  NE
//	 W  .  E
//	SW  S  SE
//
// # Rectangles
//
// [Rect] is an inclusive axis-aligned rectangle. Sheets use one as their grid
// extent (the set of valid cells) and the cluster engine reduces clusters to
// bounding rectangles.
//
// # Layers
//
// A [Layer] partitions a sheet into independent sub-grids. Two layers are the
// same layer when their IDs match; the name is display-only.
package grid
