// Package card defines the occupants of a sheet and the value types the
// engines exchange with external collaborators.
//
// A [Card] never stores its own position. The sheet it lives on is the only
// authority; [Card.SheetID] is a non-owning identifier used to find that
// sheet again. [Snapshot] captures a card's pre-mutation state for an
// undo/redo collaborator, and [Group] aggregates cards for multi-selection.
package card

import "github.com/matzehuels/cardsheet/pkg/grid"

// Payload references the data a card displays. The engine never interprets
// it; it is preserved across moves and copies.
type Payload struct {
	DatasetID string `toml:"dataset_id"`
	RowID     string `toml:"row_id"`
}

// Card is a uniquely identified occupant of a sheet cell.
type Card struct {
	ID      string
	SheetID string

	Locked    bool // Locked cards are never moved, shifted or removed.
	CanShift  bool // CanShift allows the card to be pushed by a cascade.
	CanRemove bool
	Grouped   bool // Grouped is maintained by Group.

	Payload Payload
}

// New returns an unlocked card that may be shifted and removed.
func New(id string) *Card {
	return &Card{ID: id, CanShift: true, CanRemove: true}
}

// Key returns the identity used to index the card on a sheet.
func (c *Card) Key() string { return c.ID }

// Shiftable reports whether a cascade may displace the card.
func (c *Card) Shiftable() bool { return c.CanShift && !c.Locked }

// Movable reports whether a drag may relocate the card.
func (c *Card) Movable() bool { return !c.Locked }

// Removable reports whether the card may be taken off its sheet.
func (c *Card) Removable() bool { return c.CanRemove && !c.Locked }

// Clone returns a copy of the card under a new id. The copy is not grouped
// and not placed on any sheet.
func (c *Card) Clone(id string) *Card {
	cp := *c
	cp.ID = id
	cp.SheetID = ""
	cp.Grouped = false
	return &cp
}

// Snapshot captures the state of a card before a mutation.
type Snapshot struct {
	CardID  string
	SheetID string
	Layer   grid.Layer
	Point   grid.Point
	Locked  bool
	Payload Payload
}

// Capture records the current state of c at the given location.
func Capture(c *Card, p grid.Point, layer grid.Layer) Snapshot {
	return Snapshot{
		CardID:  c.ID,
		SheetID: c.SheetID,
		Layer:   layer,
		Point:   p,
		Locked:  c.Locked,
		Payload: c.Payload,
	}
}

// SamePlace reports whether two snapshots put the card in the same cell of
// the same sheet and layer.
func (s Snapshot) SamePlace(o Snapshot) bool {
	return s.SheetID == o.SheetID && s.Layer.SameAs(o.Layer) && s.Point == o.Point
}
