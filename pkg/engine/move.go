package engine

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/observability"
)

// Placement asks for a card to end up at a cell.
type Placement struct {
	Card *card.Card
	To   grid.Point
}

// MoveRequest relocates a group of cards onto one sheet and layer. Cards may
// come from any sheet.
type MoveRequest struct {
	SheetID    string
	Layer      grid.Layer
	Placements []Placement
}

// Dropped is a card excluded from a move before anything changed.
type Dropped struct {
	Card   *card.Card
	Reason Reason
}

// MoveResult reports the per-card outcome of a move.
type MoveResult struct {
	// Moved are the placements that landed. To is where the card sits once
	// the move is over, which differs from the requested cell only when a
	// later revert pushed the card along.
	Moved []Transition
	// Displaced are cards outside the request pushed aside to make room.
	Displaced []Transition
	// Dropped cards were locked, targeted cells outside the sheet, or
	// targeted a cell an earlier placement had already claimed.
	Dropped []Dropped
	// Reverted cards could not be placed and went back to, or near, their
	// original cell.
	Reverted []*card.Card
	// Snapshots hold the prior state of every card whose final state
	// differs from it, in the order they were first touched.
	Snapshots []card.Snapshot
	// Changed lists the cards behind Snapshots, in the same order.
	Changed []*card.Card
}

// OK reports whether at least one placement landed.
func (r MoveResult) OK() bool { return len(r.Moved) > 0 }

type mover struct {
	card      *card.Card
	src       *Board
	from      grid.Point
	fromLayer grid.Layer
	to        grid.Point
}

// Move places each card at its requested cell on req.SheetID.
//
// Locked cards, cells outside the sheet and cells already claimed by an
// earlier placement are dropped up front. Remaining cards are lifted from their sheets, then placed upstream-first relative to
// the engine's shift direction. A card landing on an occupied cell shifts
// the occupant one cell along the shift direction; if that shift is refused
// the card is reverted instead. Each card is handled independently, so a
// move may partly succeed.
func (e *Engine) Move(ctx context.Context, req MoveRequest) (MoveResult, error) {
	target, err := e.sheet(req.SheetID)
	if err != nil {
		return MoveResult{}, err
	}
	if err := errors.ValidateLayer(req.Layer); err != nil {
		return MoveResult{}, err
	}

	start := time.Now()
	var res MoveResult
	movers, err := e.prepareMove(target, req, &res)
	if err != nil {
		return MoveResult{}, err
	}

	tr := newTracker()
	for _, m := range movers {
		tr.capture(card.Capture(m.card, m.from, m.fromLayer), m.card)
		m.src.Remove(m.from, m.fromLayer)
	}

	upstream := e.shiftDir.Neg()
	slices.SortStableFunc(movers, func(a, b mover) int {
		return cmp.Compare(b.to.Dot(upstream), a.to.Dot(upstream))
	})

	var landed []mover
	for _, m := range movers {
		displaced, ok, err := e.place(target, m.card, m.to, req.Layer, tr)
		if err != nil {
			return MoveResult{}, err
		}
		res.Displaced = append(res.Displaced, displaced...)
		if ok {
			landed = append(landed, m)
			continue
		}
		displaced, err = e.revert(m, tr)
		if err != nil {
			return MoveResult{}, err
		}
		res.Displaced = append(res.Displaced, displaced...)
		res.Reverted = append(res.Reverted, m.card)
	}

	// A revert can shift a card that already landed, so transitions are
	// read back from the sheet.
	for _, m := range landed {
		to, layer := m.to, req.Layer
		if p, l, ok := target.Locate(m.card.ID); ok {
			to, layer = p, l
		}
		t := Transition{
			CardID:    m.card.ID,
			FromSheet: m.src.ID(),
			ToSheet:   target.ID(),
			FromLayer: m.fromLayer,
			ToLayer:   layer,
			From:      m.from,
			To:        to,
		}
		res.Moved = append(res.Moved, t)
		e.logTransition(t)
	}

	res.Snapshots, res.Changed = tr.changed(e)
	observability.Engine().OnMove(ctx, target.ID(), len(res.Moved), len(res.Dropped), len(res.Reverted), time.Since(start))
	e.logger.Debug("move applied", "sheet", target.ID(), "moved", len(res.Moved), "dropped", len(res.Dropped), "reverted", len(res.Reverted))
	return res, nil
}

// prepareMove resolves every placement and filters out the ones that cannot
// take part. It mutates nothing.
func (e *Engine) prepareMove(target *Board, req MoveRequest, res *MoveResult) ([]mover, error) {
	seen := mapset.New[string]()
	claimed := mapset.New[grid.Point]()
	var movers []mover
	for _, pl := range req.Placements {
		src, from, layer, err := e.locate(pl.Card)
		if err != nil {
			return nil, err
		}
		if seen.Has(pl.Card.ID) {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "card %q placed twice in one move", pl.Card.ID)
		}
		seen.Put(pl.Card.ID)

		switch {
		case !pl.Card.Movable():
			res.Dropped = append(res.Dropped, Dropped{Card: pl.Card, Reason: ReasonLocked})
		case !target.InBounds(pl.To):
			res.Dropped = append(res.Dropped, Dropped{Card: pl.Card, Reason: ReasonOutOfBounds})
		case claimed.Has(pl.To):
			res.Dropped = append(res.Dropped, Dropped{Card: pl.Card, Reason: ReasonDuplicateCell})
		case src == target && layer.SameAs(req.Layer) && from == pl.To:
			// Already there.
			claimed.Put(pl.To)
		default:
			claimed.Put(pl.To)
			movers = append(movers, mover{card: pl.Card, src: src, from: from, fromLayer: layer, to: pl.To})
		}
	}
	return movers, nil
}

// place puts c at p, shifting an occupant one cell along the engine's shift
// direction first. It reports false when the occupant would not budge.
func (e *Engine) place(s *Board, c *card.Card, p grid.Point, layer grid.Layer, tr *tracker) ([]Transition, bool, error) {
	var displaced []Transition
	if s.Exists(p, layer) {
		r, err := e.shift(s, ShiftRequest{
			SheetID:      s.ID(),
			Starts:       []grid.Point{p},
			Direction:    e.shiftDir,
			Layer:        layer,
			Distance:     1,
			IncludeStart: true,
		})
		if err != nil {
			return nil, false, err
		}
		if !r.OK {
			return nil, false, nil
		}
		for i, snap := range r.Snapshots {
			tr.capture(snap, r.Cards[i])
		}
		displaced = r.Transitions
	}
	if !s.Add(c, p, layer) {
		return nil, false, errors.New(errors.ErrCodeInternal, "cell %s on sheet %q still occupied after shift", p, s.ID())
	}
	c.SheetID = s.ID()
	return displaced, true, nil
}

// revert returns a mover to its origin. If the origin has since been taken
// the occupant is shifted away; failing that the card lands on the first
// free cell along the shift direction, then against it.
func (e *Engine) revert(m mover, tr *tracker) ([]Transition, error) {
	if m.src.Add(m.card, m.from, m.fromLayer) {
		m.card.SheetID = m.src.ID()
		return nil, nil
	}
	displaced, ok, err := e.place(m.src, m.card, m.from, m.fromLayer, tr)
	if err != nil || ok {
		return displaced, err
	}
	for _, dir := range []grid.Point{e.shiftDir, e.shiftDir.Neg()} {
		for p, ok := m.from.AddChecked(dir); ok && m.src.InBounds(p); p, ok = p.AddChecked(dir) {
			if m.src.Add(m.card, p, m.fromLayer) {
				m.card.SheetID = m.src.ID()
				e.logger.Warn("card reverted away from its origin", "card", m.card.ID, "origin", m.from, "cell", p)
				return nil, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeGridFull, "no free cell to return card %q to on sheet %q", m.card.ID, m.src.ID())
}

// tracker remembers the first-seen state of every card an operation touches.
type tracker struct {
	order []*card.Card
	snaps map[string]card.Snapshot
}

func newTracker() *tracker {
	return &tracker{snaps: make(map[string]card.Snapshot)}
}

func (t *tracker) capture(s card.Snapshot, c *card.Card) {
	if _, ok := t.snaps[c.ID]; ok {
		return
	}
	t.snaps[c.ID] = s
	t.order = append(t.order, c)
}

// changed returns the snapshots of cards whose current state differs from
// the captured one.
func (t *tracker) changed(e *Engine) ([]card.Snapshot, []*card.Card) {
	var snaps []card.Snapshot
	var cards []*card.Card
	for _, c := range t.order {
		before := t.snaps[c.ID]
		_, p, l, err := e.locate(c)
		if err == nil && card.Capture(c, p, l).SamePlace(before) {
			continue
		}
		snaps = append(snaps, before)
		cards = append(cards, c)
	}
	return snaps, cards
}
