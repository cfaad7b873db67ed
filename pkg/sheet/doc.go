// Package sheet provides the sparse per-layer spatial index that owns the
// position of every card.
//
// # Overview
//
// A [Sheet] maps (layer, point) to at most one item and keeps a key → item
// lookup alongside it. The two indexes are updated together by [Sheet.Add]
// and [Sheet.Remove] so they can never disagree about where an item lives.
//
// The central invariant is that a (point, layer) pair is occupied by at most
// one item. Add refuses occupied cells instead of overwriting them; callers
// that need room must remove or shift the occupant first.
//
// # Basic Usage
//
//	s := sheet.New[*card.Card]("board", grid.NewRect(grid.P(-10, -10), grid.P(10, 10)))
//	s.Add(c, grid.P(0, 0), grid.DefaultLayer)
//	p, layer, ok := s.Locate(c.Key())
//
// # Grid Extent
//
// Each sheet has a finite extent. [Sheet.InBounds] is the validity predicate
// consulted before any mutation, and ray casts without a maximum distance stop
// at the extent boundary.
//
// # Concurrency
//
// Sheets are not safe for concurrent use. All mutating calls must be
// serialized by the caller; reads may run between mutations.
package sheet
