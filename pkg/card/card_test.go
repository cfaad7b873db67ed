package card

import (
	"slices"
	"testing"

	"github.com/matzehuels/cardsheet/pkg/grid"
)

func TestCardFlags(t *testing.T) {
	tests := []struct {
		name          string
		card          Card
		wantShiftable bool
		wantMovable   bool
		wantRemovable bool
	}{
		{"default", *New("a"), true, true, true},
		{"locked", Card{ID: "a", Locked: true, CanShift: true, CanRemove: true}, false, false, false},
		{"pinned", Card{ID: "a", CanRemove: true}, false, true, true},
		{"permanent", Card{ID: "a", CanShift: true}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.card
			if got := c.Shiftable(); got != tt.wantShiftable {
				t.Errorf("Shiftable = %v, want %v", got, tt.wantShiftable)
			}
			if got := c.Movable(); got != tt.wantMovable {
				t.Errorf("Movable = %v, want %v", got, tt.wantMovable)
			}
			if got := c.Removable(); got != tt.wantRemovable {
				t.Errorf("Removable = %v, want %v", got, tt.wantRemovable)
			}
		})
	}
}

func TestCloneKeepsPayload(t *testing.T) {
	c := New("a")
	c.SheetID = "s1"
	c.Grouped = true
	c.Payload = Payload{DatasetID: "ds", RowID: "42"}

	cp := c.Clone("b")
	if cp.ID != "b" || cp.SheetID != "" || cp.Grouped {
		t.Errorf("Clone = %+v", cp)
	}
	if cp.Payload != c.Payload {
		t.Errorf("payload = %+v, want %+v", cp.Payload, c.Payload)
	}
	if c.ID != "a" {
		t.Error("Clone modified the original")
	}
}

func TestCapture(t *testing.T) {
	c := New("a")
	c.SheetID = "s1"
	c.Payload = Payload{DatasetID: "ds", RowID: "7"}

	snap := Capture(c, grid.P(1, -1), grid.DefaultLayer)
	if snap.CardID != "a" || snap.SheetID != "s1" || snap.Point != grid.P(1, -1) || snap.Payload != c.Payload {
		t.Errorf("Capture = %+v", snap)
	}

	moved := snap
	moved.Point = grid.P(1, -2)
	if snap.SamePlace(moved) {
		t.Error("different points should not be the same place")
	}
	renamed := snap
	renamed.Layer.Name = "Renamed"
	if !snap.SamePlace(renamed) {
		t.Error("layer identity is by ID only")
	}
}

func TestSetAlgebra(t *testing.T) {
	a, b, c, d := New("a"), New("b"), New("c"), New("d")

	tests := []struct {
		name string
		got  []*Card
		want []string
	}{
		{"subtract", Subtract([]*Card{a, b, c}, []*Card{b}), []string{"a", "c"}},
		{"subtract by id", Subtract([]*Card{a, b}, []*Card{New("a")}), []string{"b"}},
		{"subtract skips nil", Subtract([]*Card{a, nil}, nil), []string{"a"}},
		{"difference", Difference([]*Card{a, b, c}, []*Card{c, d}), []string{"a", "b", "d"}},
		{"difference disjoint", Difference([]*Card{a}, []*Card{b}), []string{"a", "b"}},
		{"difference equal", Difference([]*Card{a, b}, []*Card{b, a}), []string{}},
		{"unique", Unique([]*Card{a, a, nil, b, New("b")}), []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDs(tt.got); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	emptied := 0

	g := NewGroup(func(*Group) { emptied++ }, a, b, a)
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	if !a.Grouped || !b.Grouped || c.Grouped {
		t.Error("grouped flags not maintained")
	}

	other := NewGroup(nil, b, c)
	g.Union(other)
	if got := IDs(g.Cards()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("after Union = %v", got)
	}

	g.Subtract(NewGroup(nil, a, c))
	if got := IDs(g.Cards()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("after Subtract = %v", got)
	}
	if a.Grouped {
		t.Error("removed card still flagged grouped")
	}
	if emptied != 0 {
		t.Fatal("OnEmpty fired early")
	}

	g.Remove(b)
	g.Remove(b)
	if emptied != 1 {
		t.Errorf("OnEmpty fired %d times, want 1", emptied)
	}
	if g.Has(b) || g.Len() != 0 {
		t.Error("group should be empty")
	}
}
