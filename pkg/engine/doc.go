// Package engine implements the card mutations: cascading shifts, group
// moves, swaps, additions and removals.
//
// # Shifts
//
// [Engine.Shift] pushes the contiguous run of cards that starts at a cell
// (the chain) along a direction. With a distance above one, a chain member
// can land on a card outside the chain; that card's own chain is pulled in
// until no destination is blocked by an outsider. Validation then runs over
// the whole chain before anything moves:
//
//   - every member must be shiftable (not locked, CanShift set)
//   - every destination must lie inside the sheet extent
//
// A single failure rejects the shift and leaves the sheet untouched.
//
// # Moves
//
// [Engine.Move] takes a list of placements that may span sheets. Cards are
// lifted first, then placed upstream-first against the engine's shift
// direction so that room made for a later card never disturbs an earlier
// one. Each card succeeds or fails on its own:
//
//   - locked cards and out-of-bounds targets are reported in Dropped
//   - a card whose target occupant will not shift goes back to its origin
//     and is reported in Reverted
//
// Snapshots are returned only for cards whose final state differs from
// where they started, which is what an undo log needs.
//
// # Logging
//
// Each cell change is logged at debug level as a "card moved" entry with
// the card id and both points.
package engine
