package canvas

import (
	"context"

	"github.com/google/uuid"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// TryAddCard places c at p. It reports false, without error, when the cell
// is occupied or outside the sheet. Cards without an id get a random one.
func (c *Canvas) TryAddCard(ctx context.Context, sheetID string, cd *card.Card, p grid.Point, layer grid.Layer) (bool, error) {
	res, err := c.add(ctx, sheetID, cd, p, layer, false)
	if err != nil {
		return false, err
	}
	if res.OK {
		c.notify(ctx, OpAdd, []*card.Card{cd}, nil)
	}
	return res.OK, nil
}

// InsertCard places c at p, shifting an occupant one cell along the
// configured shift direction first.
func (c *Canvas) InsertCard(ctx context.Context, sheetID string, cd *card.Card, p grid.Point, layer grid.Layer) (engine.AddResult, error) {
	res, err := c.add(ctx, sheetID, cd, p, layer, true)
	if err != nil {
		return engine.AddResult{}, err
	}
	if res.OK {
		c.notify(ctx, OpInsert, append([]*card.Card{cd}, res.Changed...), res.Snapshots)
	}
	return res, nil
}

func (c *Canvas) add(ctx context.Context, sheetID string, cd *card.Card, p grid.Point, layer grid.Layer, makeRoom bool) (engine.AddResult, error) {
	if cd == nil {
		return engine.AddResult{}, errors.New(errors.ErrCodeInvalidCard, "card is nil")
	}
	if cd.ID == "" {
		cd.ID = uuid.NewString()
	}
	if other, ok := c.cards[cd.ID]; ok && other != cd {
		return engine.AddResult{}, errors.New(errors.ErrCodeDuplicateCard, "card id %q is already in use", cd.ID)
	}
	res, err := c.engine.Add(ctx, engine.AddRequest{
		SheetID:  sheetID,
		Card:     cd,
		At:       p,
		Layer:    layer,
		MakeRoom: makeRoom,
	})
	if err != nil {
		return engine.AddResult{}, err
	}
	if res.OK {
		c.cards[cd.ID] = cd
	}
	return res, nil
}

// GetCard returns the card at p on layer.
func (c *Canvas) GetCard(sheetID string, p grid.Point, layer grid.Layer) (*card.Card, bool) {
	s, ok := c.sheets[sheetID]
	if !ok {
		return nil, false
	}
	return s.Get(p, layer)
}

// GetCardByID returns a card placed on any sheet.
func (c *Canvas) GetCardByID(id string) (*card.Card, bool) {
	cd, ok := c.cards[id]
	return cd, ok
}

// Cards returns every placed card, sheet by sheet in creation order.
func (c *Canvas) Cards() []*card.Card {
	var out []*card.Card
	for _, s := range c.Sheets() {
		out = append(out, s.Items()...)
	}
	return out
}

// Position returns the sheet, cell and layer holding cd. Positions are
// always read from the sheet; callers should not cache them.
func (c *Canvas) Position(cd *card.Card) (string, grid.Point, grid.Layer, bool) {
	if cd == nil {
		return "", grid.Point{}, grid.Layer{}, false
	}
	s, ok := c.sheets[cd.SheetID]
	if !ok {
		return "", grid.Point{}, grid.Layer{}, false
	}
	p, l, ok := s.Locate(cd.ID)
	if !ok {
		return "", grid.Point{}, grid.Layer{}, false
	}
	return s.ID(), p, l, true
}

func (c *Canvas) position(cd *card.Card) (grid.Point, grid.Layer, error) {
	_, p, l, ok := c.Position(cd)
	if !ok {
		if cd == nil {
			return grid.Point{}, grid.Layer{}, errors.New(errors.ErrCodeInvalidCard, "card is nil")
		}
		return grid.Point{}, grid.Layer{}, errors.New(errors.ErrCodeCardNotFound, "card %q is not on a sheet", cd.ID)
	}
	return p, l, nil
}

// MoveCards moves a group so that its first card lands on anchor. The other
// cards keep their offsets from the first one.
func (c *Canvas) MoveCards(ctx context.Context, sheetID string, layer grid.Layer, anchor grid.Point, cards ...*card.Card) (engine.MoveResult, error) {
	if len(cards) == 0 {
		return engine.MoveResult{}, nil
	}
	lead, _, err := c.position(cards[0])
	if err != nil {
		return engine.MoveResult{}, err
	}
	placements := make([]engine.Placement, 0, len(cards))
	var offGrid []*card.Card
	for _, cd := range cards {
		p, _, err := c.position(cd)
		if err != nil {
			return engine.MoveResult{}, err
		}
		rel, ok := p.SubChecked(lead)
		var to grid.Point
		if ok {
			to, ok = anchor.AddChecked(rel)
		}
		if !ok {
			offGrid = append(offGrid, cd)
			continue
		}
		placements = append(placements, engine.Placement{Card: cd, To: to})
	}
	return c.move(ctx, sheetID, layer, placements, offGrid)
}

// Drop is a card released at a world position.
type Drop struct {
	Card  *card.Card
	World grid.Vec
}

// DropCards moves each card to the cell under its world position, using the
// configured cell size. A position with no grid cell under it, such as NaN
// or one beyond the coordinate range, drops the card as out of bounds.
func (c *Canvas) DropCards(ctx context.Context, sheetID string, layer grid.Layer, drops ...Drop) (engine.MoveResult, error) {
	placements := make([]engine.Placement, 0, len(drops))
	var offGrid []*card.Card
	for _, d := range drops {
		to, ok := d.World.Snap(c.cfg.Grid.CellSize)
		if !ok {
			if _, _, err := c.position(d.Card); err != nil {
				return engine.MoveResult{}, err
			}
			offGrid = append(offGrid, d.Card)
			continue
		}
		placements = append(placements, engine.Placement{Card: d.Card, To: to})
	}
	return c.move(ctx, sheetID, layer, placements, offGrid)
}

// move runs placements through the engine. Cards in offGrid have no
// representable target cell and are reported as dropped without moving.
func (c *Canvas) move(ctx context.Context, sheetID string, layer grid.Layer, placements []engine.Placement, offGrid []*card.Card) (engine.MoveResult, error) {
	res, err := c.engine.Move(ctx, engine.MoveRequest{SheetID: sheetID, Layer: layer, Placements: placements})
	if err != nil {
		return engine.MoveResult{}, err
	}
	for _, cd := range offGrid {
		reason := engine.ReasonOutOfBounds
		if !cd.Movable() {
			reason = engine.ReasonLocked
		}
		res.Dropped = append(res.Dropped, engine.Dropped{Card: cd, Reason: reason})
	}
	for _, d := range res.Dropped {
		c.logger.Warn("card left out of move", "card", d.Card.ID, "reason", d.Reason)
	}
	for _, r := range res.Reverted {
		c.logger.Warn("card reverted", "card", r.ID, "sheet", r.SheetID)
	}
	c.notify(ctx, OpMove, res.Changed, res.Snapshots)
	return res, nil
}

// RemoveCard takes cd off its sheet. Locked and non-removable cards stay and
// false is returned.
func (c *Canvas) RemoveCard(ctx context.Context, cd *card.Card) (bool, error) {
	res, err := c.engine.Remove(ctx, cd)
	if err != nil {
		return false, err
	}
	if !res.OK {
		return false, nil
	}
	delete(c.cards, cd.ID)
	for _, g := range c.groups {
		if g.Has(cd) {
			g.Remove(cd)
		}
	}
	c.notify(ctx, OpRemove, []*card.Card{cd}, []card.Snapshot{res.Snapshot})
	return true, nil
}

// =============================================================================
// Groups
// =============================================================================

// NewGroup bundles cards for group moves. The canvas forgets the group once
// its last card leaves it.
func (c *Canvas) NewGroup(cards ...*card.Card) *card.Group {
	g := card.NewGroup(c.dropGroup, cards...)
	c.groups = append(c.groups, g)
	return g
}

// Groups returns the live groups.
func (c *Canvas) Groups() []*card.Group {
	out := make([]*card.Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// MoveGroup moves every card in g, anchored on its first member.
func (c *Canvas) MoveGroup(ctx context.Context, g *card.Group, sheetID string, layer grid.Layer, anchor grid.Point) (engine.MoveResult, error) {
	return c.MoveCards(ctx, sheetID, layer, anchor, g.Cards()...)
}

func (c *Canvas) dropGroup(g *card.Group) {
	for i, other := range c.groups {
		if other == g {
			c.groups = append(c.groups[:i:i], c.groups[i+1:]...)
			return
		}
	}
}
