package sheet

import (
	"cmp"
	"slices"

	"github.com/matzehuels/cardsheet/pkg/grid"
)

// Keyed is the constraint for sheet occupants. Key must be stable for the
// lifetime of the item and unique within a sheet.
type Keyed interface {
	comparable
	Key() string
}

// Entry is an occupant together with the cell it occupies.
type Entry[T Keyed] struct {
	Item  T
	Point grid.Point
	Layer grid.Layer
}

// Sheet is a sparse two-level spatial index: layer → point → item, plus a
// key → item lookup. The sheet is the single authority on where an item is;
// callers re-query with [Sheet.Locate] instead of caching positions.
//
// The zero value is not usable - use New to create a Sheet.
// Sheet is not safe for concurrent use without external synchronization.
type Sheet[T Keyed] struct {
	id         string
	extent     grid.Rect
	layers     map[string]grid.Layer
	partitions map[string]map[grid.Point]T // layer ID -> point -> item
	byKey      map[string]Entry[T]
}

// New creates an empty sheet whose valid cells are those inside extent.
func New[T Keyed](id string, extent grid.Rect) *Sheet[T] {
	return &Sheet[T]{
		id:         id,
		extent:     extent,
		layers:     make(map[string]grid.Layer),
		partitions: make(map[string]map[grid.Point]T),
		byKey:      make(map[string]Entry[T]),
	}
}

// ID returns the sheet identifier.
func (s *Sheet[T]) ID() string { return s.id }

// Extent returns the rectangle of valid cells.
func (s *Sheet[T]) Extent() grid.Rect { return s.extent }

// InBounds reports whether p is a valid cell on this sheet. Every mutation
// checks it before touching the index.
func (s *Sheet[T]) InBounds(p grid.Point) bool {
	return s.extent.Contains(p)
}

// Len returns the number of items on the sheet across all layers.
func (s *Sheet[T]) Len() int { return len(s.byKey) }

// Add places item at (p, layer). It returns false without modifying the sheet
// when the cell is occupied, p is out of bounds, or the item's key is already
// placed somewhere on this sheet. Add never overwrites.
func (s *Sheet[T]) Add(item T, p grid.Point, layer grid.Layer) bool {
	if !s.InBounds(p) {
		return false
	}
	if _, placed := s.byKey[item.Key()]; placed {
		return false
	}
	cells := s.partitions[layer.ID]
	if _, occupied := cells[p]; occupied {
		return false
	}
	if cells == nil {
		cells = make(map[grid.Point]T)
		s.partitions[layer.ID] = cells
		s.layers[layer.ID] = layer
	}
	cells[p] = item
	s.byKey[item.Key()] = Entry[T]{Item: item, Point: p, Layer: layer}
	return true
}

// Remove clears (p, layer) and returns the previous occupant.
// Removing an empty cell is a no-op that returns false.
func (s *Sheet[T]) Remove(p grid.Point, layer grid.Layer) (T, bool) {
	cells := s.partitions[layer.ID]
	item, ok := cells[p]
	if !ok {
		var zero T
		return zero, false
	}
	delete(cells, p)
	delete(s.byKey, item.Key())
	if len(cells) == 0 {
		delete(s.partitions, layer.ID)
		delete(s.layers, layer.ID)
	}
	return item, true
}

// RemoveKey removes the item with the given key wherever it is.
func (s *Sheet[T]) RemoveKey(key string) bool {
	e, ok := s.byKey[key]
	if !ok {
		return false
	}
	_, removed := s.Remove(e.Point, e.Layer)
	return removed
}

// Get returns the occupant of (p, layer).
func (s *Sheet[T]) Get(p grid.Point, layer grid.Layer) (T, bool) {
	item, ok := s.partitions[layer.ID][p]
	return item, ok
}

// Exists reports whether (p, layer) is occupied.
func (s *Sheet[T]) Exists(p grid.Point, layer grid.Layer) bool {
	_, ok := s.partitions[layer.ID][p]
	return ok
}

// ByKey returns the item with the given key.
func (s *Sheet[T]) ByKey(key string) (T, bool) {
	e, ok := s.byKey[key]
	return e.Item, ok
}

// Locate returns the authoritative cell and layer of the item with key.
func (s *Sheet[T]) Locate(key string) (grid.Point, grid.Layer, bool) {
	e, ok := s.byKey[key]
	return e.Point, e.Layer, ok
}

// Layers returns the layers that currently hold at least one item, sorted by ID.
func (s *Sheet[T]) Layers() []grid.Layer {
	out := make([]grid.Layer, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b grid.Layer) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Entries returns every occupant on the given layers (all layers when none
// are given). The order is deterministic: layer ID, then rows from top to
// bottom, then left to right.
func (s *Sheet[T]) Entries(layers ...grid.Layer) []Entry[T] {
	var out []Entry[T]
	for _, id := range s.layerIDs(layers) {
		layer := s.layers[id]
		for p, item := range s.partitions[id] {
			out = append(out, Entry[T]{Item: item, Point: p, Layer: layer})
		}
	}
	slices.SortFunc(out, compareEntries[T])
	return out
}

// Items returns the occupants of the given layers in [Sheet.Entries] order.
func (s *Sheet[T]) Items(layers ...grid.Layer) []T {
	entries := s.Entries(layers...)
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.Item
	}
	return out
}

// Bounds returns the smallest rectangle covering every occupied cell on the
// given layers. The second result is false when those layers are empty.
func (s *Sheet[T]) Bounds(layers ...grid.Layer) (grid.Rect, bool) {
	var (
		r     grid.Rect
		found bool
	)
	for _, id := range s.layerIDs(layers) {
		for p := range s.partitions[id] {
			if !found {
				r = grid.Rect{Min: p, Max: p}
				found = true
				continue
			}
			r = r.Expand(p)
		}
	}
	return r, found
}

// layerIDs resolves the requested layers to partition keys, deduplicated and
// sorted. An empty request means every populated layer.
func (s *Sheet[T]) layerIDs(layers []grid.Layer) []string {
	var ids []string
	if len(layers) == 0 {
		for id := range s.partitions {
			ids = append(ids, id)
		}
	} else {
		for _, l := range layers {
			if _, ok := s.partitions[l.ID]; ok {
				ids = append(ids, l.ID)
			}
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func compareEntries[T Keyed](a, b Entry[T]) int {
	if c := cmp.Compare(a.Layer.ID, b.Layer.ID); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Point.Y, a.Point.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Point.X, b.Point.X)
}
