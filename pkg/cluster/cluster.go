// Package cluster discovers groups of cards that touch each other.
//
// Two cells are adjacent when they differ by at most one step on each axis
// (8-connectivity), so diagonal neighbors belong to the same cluster. The
// search is an explicit-stack flood fill and never recurses.
package cluster

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

// Cluster is one 8-connected component on a single layer.
type Cluster[T sheet.Keyed] struct {
	Layer   grid.Layer
	Entries []sheet.Entry[T]
}

// Len returns the number of members.
func (c Cluster[T]) Len() int { return len(c.Entries) }

// Items returns the members in discovery order.
func (c Cluster[T]) Items() []T {
	out := make([]T, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Item
	}
	return out
}

// Points returns the member cells in discovery order.
func (c Cluster[T]) Points() []grid.Point {
	out := make([]grid.Point, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Point
	}
	return out
}

// Bounds returns the smallest rectangle holding every member.
func (c Cluster[T]) Bounds() (grid.Rect, bool) {
	return grid.BoundsOf(c.Points())
}

// Find returns the cluster containing seed on layer. An empty seed cell
// yields an empty cluster. Members are listed in depth-first discovery
// order, visiting neighbors in [grid.Neighbors8] order, so the result is
// deterministic for a given seed.
func Find[T sheet.Keyed](s *sheet.Sheet[T], seed grid.Point, layer grid.Layer) Cluster[T] {
	return find(s, seed, layer, mapset.New[grid.Point]())
}

func find[T sheet.Keyed](s *sheet.Sheet[T], seed grid.Point, layer grid.Layer, visited mapset.Set[grid.Point]) Cluster[T] {
	c := Cluster[T]{Layer: layer}
	if visited.Has(seed) || !s.Exists(seed, layer) {
		return c
	}

	stack := []grid.Point{seed}
	visited.Put(seed)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		item, _ := s.Get(p, layer)
		c.Entries = append(c.Entries, sheet.Entry[T]{Item: item, Point: p, Layer: layer})

		// Push in reverse so the first neighbor is popped first.
		for i := len(grid.Neighbors8) - 1; i >= 0; i-- {
			n, ok := p.AddChecked(grid.Neighbors8[i])
			if !ok || visited.Has(n) || !s.Exists(n, layer) {
				continue
			}
			visited.Put(n)
			stack = append(stack, n)
		}
	}
	return c
}

// FindAll partitions every card on layer into clusters. Singletons are
// left out unless includeSingles is set. Seeds are taken in the sheet's
// entry order, so the output order is stable.
func FindAll[T sheet.Keyed](s *sheet.Sheet[T], layer grid.Layer, includeSingles bool) []Cluster[T] {
	visited := mapset.New[grid.Point]()
	var out []Cluster[T]
	for _, e := range s.Entries(layer) {
		c := find(s, e.Point, layer, visited)
		if c.Len() == 0 || (c.Len() == 1 && !includeSingles) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BoundingBoxes returns the bounds of each cluster, in order.
func BoundingBoxes[T sheet.Keyed](clusters []Cluster[T]) []grid.Rect {
	out := make([]grid.Rect, 0, len(clusters))
	for _, c := range clusters {
		if r, ok := c.Bounds(); ok {
			out = append(out, r)
		}
	}
	return out
}

// Largest returns the cluster with the most members. Ties go to the
// earliest one.
func Largest[T sheet.Keyed](clusters []Cluster[T]) (Cluster[T], bool) {
	if len(clusters) == 0 {
		return Cluster[T]{}, false
	}
	best := clusters[0]
	for _, c := range clusters[1:] {
		if c.Len() > best.Len() {
			best = c
		}
	}
	return best, true
}
