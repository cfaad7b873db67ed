package canvas

import (
	"context"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// TryShiftCard shifts the chain starting at cd by dir*distance.
func (c *Canvas) TryShiftCard(ctx context.Context, cd *card.Card, dir grid.Point, distance int) (engine.ShiftResult, error) {
	return c.TryShiftCards(ctx, []*card.Card{cd}, dir, distance)
}

// TryShiftCards shifts the chains starting at every card as one
// all-or-nothing operation. The cards must share a sheet and layer.
func (c *Canvas) TryShiftCards(ctx context.Context, cards []*card.Card, dir grid.Point, distance int) (engine.ShiftResult, error) {
	if len(cards) == 0 {
		return engine.ShiftResult{}, errors.New(errors.ErrCodeInvalidArgument, "no cards to shift")
	}
	var (
		sheetID string
		layer   grid.Layer
		starts  = make([]grid.Point, 0, len(cards))
	)
	for i, cd := range cards {
		p, l, err := c.position(cd)
		if err != nil {
			return engine.ShiftResult{}, err
		}
		if i == 0 {
			sheetID, layer = cd.SheetID, l
		} else if cd.SheetID != sheetID || !l.SameAs(layer) {
			return engine.ShiftResult{}, errors.New(errors.ErrCodeInvalidArgument, "cards to shift span sheets or layers")
		}
		starts = append(starts, p)
	}

	res, err := c.engine.Shift(ctx, engine.ShiftRequest{
		SheetID:      sheetID,
		Starts:       starts,
		Direction:    dir,
		Layer:        layer,
		Distance:     distance,
		IncludeStart: true,
	})
	if err != nil {
		return engine.ShiftResult{}, err
	}
	if res.OK {
		c.notify(ctx, OpShift, res.Cards, res.Snapshots)
	}
	return res, nil
}

// SwapOrShiftCard swaps cd with its neighbor in dir when that neighbor can
// be pushed aside. Otherwise the chain starting at cd shifts one cell in dir.
// It reports whether anything moved.
func (c *Canvas) SwapOrShiftCard(ctx context.Context, cd *card.Card, dir grid.Point) (bool, error) {
	if err := errors.ValidateDirection(dir); err != nil {
		return false, err
	}
	p, l, err := c.position(cd)
	if err != nil {
		return false, err
	}

	if next, ok := p.AddChecked(dir); ok {
		if other, ok := c.GetCard(cd.SheetID, next, l); ok && other.Shiftable() {
			res, err := c.engine.Swap(ctx, cd, other)
			if err != nil {
				return false, err
			}
			if res.OK {
				c.notify(ctx, OpSwap, []*card.Card{cd, other}, res.Snapshots)
				return true, nil
			}
		}
	}

	res, err := c.TryShiftCard(ctx, cd, dir, 1)
	if err != nil {
		return false, err
	}
	return res.OK, nil
}
