package sheet

import (
	"slices"
	"testing"

	"github.com/matzehuels/cardsheet/pkg/grid"
)

type token struct{ id string }

func (t *token) Key() string { return t.id }

func tok(id string) *token { return &token{id: id} }

var (
	extent = grid.NewRect(grid.P(-5, -5), grid.P(5, 5))
	notes  = grid.Layer{ID: "notes", Name: "Notes"}
	images = grid.Layer{ID: "images", Name: "Images"}
)

func TestAddAndGet(t *testing.T) {
	s := New[*token]("s1", extent)
	a := tok("a")

	if !s.Add(a, grid.P(1, 2), notes) {
		t.Fatal("Add to empty cell failed")
	}
	got, ok := s.Get(grid.P(1, 2), notes)
	if !ok || got != a {
		t.Errorf("Get = %v, %v", got, ok)
	}
	if !s.Exists(grid.P(1, 2), notes) {
		t.Error("Exists = false")
	}
	if s.Exists(grid.P(1, 2), images) {
		t.Error("other layer should be empty")
	}
	p, l, ok := s.Locate("a")
	if !ok || p != grid.P(1, 2) || !l.SameAs(notes) {
		t.Errorf("Locate = %v %v %v", p, l, ok)
	}
	if item, ok := s.ByKey("a"); !ok || item != a {
		t.Errorf("ByKey = %v, %v", item, ok)
	}
}

func TestAddRejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Sheet[*token])
		item  *token
		at    grid.Point
		layer grid.Layer
	}{
		{
			name:  "occupied cell",
			setup: func(s *Sheet[*token]) { s.Add(tok("a"), grid.P(0, 0), notes) },
			item:  tok("b"),
			at:    grid.P(0, 0),
			layer: notes,
		},
		{
			name:  "out of bounds",
			setup: func(s *Sheet[*token]) {},
			item:  tok("a"),
			at:    grid.P(6, 0),
			layer: notes,
		},
		{
			name:  "key already placed",
			setup: func(s *Sheet[*token]) { s.Add(tok("a"), grid.P(0, 0), notes) },
			item:  tok("a"),
			at:    grid.P(1, 1),
			layer: images,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New[*token]("s1", extent)
			tt.setup(s)
			before := s.Entries()
			if s.Add(tt.item, tt.at, tt.layer) {
				t.Fatal("Add should fail")
			}
			if !slices.Equal(before, s.Entries()) {
				t.Error("failed Add modified the sheet")
			}
		})
	}
}

func TestSameCellDifferentLayers(t *testing.T) {
	s := New[*token]("s1", extent)
	if !s.Add(tok("a"), grid.P(0, 0), notes) || !s.Add(tok("b"), grid.P(0, 0), images) {
		t.Fatal("layers should partition the grid")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	layers := s.Layers()
	if len(layers) != 2 || layers[0].ID != "images" || layers[1].ID != "notes" {
		t.Errorf("Layers = %v", layers)
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	s := New[*token]("s1", extent)
	s.Add(tok("keep"), grid.P(-1, -1), notes)
	before := s.Entries()

	c := tok("c")
	s.Add(c, grid.P(3, 3), notes)
	removed, ok := s.Remove(grid.P(3, 3), notes)
	if !ok || removed != c {
		t.Fatalf("Remove = %v, %v", removed, ok)
	}

	if _, ok := s.ByKey("c"); ok {
		t.Error("key index still holds removed item")
	}
	if s.Exists(grid.P(3, 3), notes) {
		t.Error("spatial index still holds removed item")
	}
	if !slices.Equal(before, s.Entries()) {
		t.Errorf("entries = %v, want %v", s.Entries(), before)
	}

	// Idempotent.
	if _, ok := s.Remove(grid.P(3, 3), notes); ok {
		t.Error("second Remove should report false")
	}
}

func TestRemoveKey(t *testing.T) {
	s := New[*token]("s1", extent)
	s.Add(tok("a"), grid.P(2, 2), images)
	if !s.RemoveKey("a") {
		t.Fatal("RemoveKey failed")
	}
	if s.RemoveKey("a") {
		t.Error("RemoveKey should be idempotent")
	}
	if s.Len() != 0 || len(s.Layers()) != 0 {
		t.Errorf("sheet not empty: len=%d layers=%v", s.Len(), s.Layers())
	}
}

func TestEntriesOrder(t *testing.T) {
	s := New[*token]("s1", extent)
	s.Add(tok("low"), grid.P(0, -2), notes)
	s.Add(tok("right"), grid.P(3, 1), notes)
	s.Add(tok("left"), grid.P(-3, 1), notes)
	s.Add(tok("img"), grid.P(0, 0), images)

	var got []string
	for _, it := range s.Items() {
		got = append(got, it.id)
	}
	want := []string{"img", "left", "right", "low"}
	if !slices.Equal(got, want) {
		t.Errorf("Items = %v, want %v", got, want)
	}

	got = got[:0]
	for _, it := range s.Items(notes) {
		got = append(got, it.id)
	}
	if !slices.Equal(got, []string{"left", "right", "low"}) {
		t.Errorf("Items(notes) = %v", got)
	}
}

func TestBounds(t *testing.T) {
	s := New[*token]("s1", extent)
	if _, ok := s.Bounds(); ok {
		t.Error("empty sheet should have no bounds")
	}
	s.Add(tok("a"), grid.P(-2, 1), notes)
	s.Add(tok("b"), grid.P(3, -1), notes)
	s.Add(tok("c"), grid.P(5, 5), images)

	r, ok := s.Bounds(notes)
	if !ok || r != grid.NewRect(grid.P(-2, -1), grid.P(3, 1)) {
		t.Errorf("Bounds(notes) = %v, %v", r, ok)
	}
	r, _ = s.Bounds()
	if r != grid.NewRect(grid.P(-2, -1), grid.P(5, 5)) {
		t.Errorf("Bounds() = %v", r)
	}
}

func TestUniqueOccupancyInvariant(t *testing.T) {
	s := New[*token]("s1", extent)
	ids := []string{"a", "b", "c", "d", "e", "f"}
	points := []grid.Point{grid.P(0, 0), grid.P(0, 0), grid.P(1, 0), grid.P(1, 0), grid.P(0, 0), grid.P(2, 2)}
	for i, id := range ids {
		s.Add(tok(id), points[i], notes)
	}

	seen := map[grid.Point]string{}
	for _, e := range s.Entries(notes) {
		if other, dup := seen[e.Point]; dup {
			t.Fatalf("%s and %s share %v", other, e.Item.id, e.Point)
		}
		seen[e.Point] = e.Item.id
		p, _, ok := s.Locate(e.Item.id)
		if !ok || p != e.Point {
			t.Errorf("key index disagrees for %s: %v vs %v", e.Item.id, p, e.Point)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}
