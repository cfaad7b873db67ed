package engine

import (
	"context"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/ray"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

// ShiftRequest describes a cascading displacement.
type ShiftRequest struct {
	SheetID string
	// Starts are the cells where chains begin. Chains that touch are merged.
	Starts    []grid.Point
	Direction grid.Point
	Layer     grid.Layer
	Distance  int
	// IncludeStart moves the card at each start cell too. When false only
	// the chain beyond the start moves.
	IncludeStart bool
}

// ShiftResult is the outcome of a shift. Either every chain member moved
// (OK) or none did.
type ShiftResult struct {
	OK     bool
	Reason Reason
	// Blocker is the card that failed validation, if any.
	Blocker *card.Card
	// Cards are the chain members in traversal order. On failure they are
	// the cards that would have moved.
	Cards       []*card.Card
	Snapshots   []card.Snapshot
	Transitions []Transition
}

// Shift pushes the chain of cards starting at each of req.Starts by
// req.Direction*req.Distance. The operation is all-or-nothing: if any chain
// member is locked, cannot shift, or would leave the grid, nothing moves.
func (e *Engine) Shift(ctx context.Context, req ShiftRequest) (ShiftResult, error) {
	s, err := e.sheet(req.SheetID)
	if err != nil {
		return ShiftResult{}, err
	}
	if err := validateShift(req); err != nil {
		return ShiftResult{}, err
	}

	start := time.Now()
	res, err := e.shift(s, req)
	observability.Engine().OnShift(ctx, s.ID(), len(res.Cards), res.OK, time.Since(start))
	if err != nil {
		return ShiftResult{}, err
	}
	if res.OK {
		e.logger.Debug("shift applied", "sheet", s.ID(), "cards", len(res.Cards), "direction", grid.DirectionName(req.Direction), "distance", req.Distance)
	} else {
		e.logger.Debug("shift rejected", "sheet", s.ID(), "reason", res.Reason)
	}
	return res, nil
}

func validateShift(req ShiftRequest) error {
	if err := errors.ValidateDirection(req.Direction); err != nil {
		return err
	}
	if err := errors.ValidateDistance(req.Distance); err != nil {
		return err
	}
	if err := errors.ValidateLayer(req.Layer); err != nil {
		return err
	}
	if len(req.Starts) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "shift needs at least one start cell")
	}
	return nil
}

// shift runs a validated request against s. The direction is a single-cell
// step and the distance fits an int32, so the offset cannot overflow.
func (e *Engine) shift(s *Board, req ShiftRequest) (ShiftResult, error) {
	offset := req.Direction.Scale(int32(req.Distance))

	chain, err := collectChain(s, req, offset)
	if err != nil {
		return ShiftResult{}, err
	}

	res := ShiftResult{Cards: make([]*card.Card, len(chain))}
	for i, m := range chain {
		res.Cards[i] = m.Item
	}
	if len(chain) == 0 {
		res.Reason = ReasonEmptyChain
		return res, nil
	}

	for _, m := range chain {
		if !m.Item.Shiftable() {
			res.Reason, res.Blocker = ReasonLocked, m.Item
			return res, nil
		}
		if to, ok := m.Point.AddChecked(offset); !ok || !s.InBounds(to) {
			res.Reason, res.Blocker = ReasonOutOfBounds, m.Item
			return res, nil
		}
	}

	// Clear every old cell before filling any new one so that members can
	// land on cells vacated by other members.
	for _, m := range chain {
		res.Snapshots = append(res.Snapshots, card.Capture(m.Item, m.Point, m.Layer))
		s.Remove(m.Point, m.Layer)
	}
	for i, m := range chain {
		to := m.Point.Add(offset)
		if !s.Add(m.Item, to, m.Layer) {
			restore(s, chain[:i], offset, chain)
			return ShiftResult{}, errors.New(errors.ErrCodeInternal, "shift destination %s on sheet %q was not free", to, s.ID())
		}
		t := Transition{
			CardID:    m.Item.ID,
			FromSheet: s.ID(),
			ToSheet:   s.ID(),
			FromLayer: m.Layer,
			ToLayer:   m.Layer,
			From:      m.Point,
			To:        to,
		}
		res.Transitions = append(res.Transitions, t)
		e.logTransition(t)
	}
	res.OK = true
	return res, nil
}

// collectChain gathers the contiguous run of cards from every start cell,
// then pulls in any card sitting on a destination cell that is not already a
// member, until no destination is blocked by an outsider.
func collectChain(s *Board, req ShiftRequest, offset grid.Point) ([]sheet.Entry[*card.Card], error) {
	members := mapset.New[string]()
	var chain []sheet.Entry[*card.Card]

	collect := func(from grid.Point, includeStart bool) error {
		hits, err := ray.Cast(s, ray.Ray{
			Start:        from,
			Direction:    req.Direction,
			Layer:        req.Layer,
			SheetID:      s.ID(),
			Nulls:        ray.StopAtFirstNull,
			IncludeStart: includeStart,
		})
		if err != nil {
			return err
		}
		for _, h := range hits {
			if !members.Has(h.Item.ID) {
				members.Put(h.Item.ID)
				chain = append(chain, h)
			}
		}
		return nil
	}

	for _, p := range req.Starts {
		if err := collect(p, req.IncludeStart); err != nil {
			return nil, err
		}
	}
	for i := 0; i < len(chain); i++ {
		dest, ok := chain[i].Point.AddChecked(offset)
		if !ok {
			continue
		}
		if occupant, ok := s.Get(dest, req.Layer); ok && !members.Has(occupant.ID) {
			if err := collect(dest, true); err != nil {
				return nil, err
			}
		}
	}
	return chain, nil
}

// restore undoes a partially applied shift: placed members are lifted again
// and every member returns to its original cell.
func restore(s *Board, placed []sheet.Entry[*card.Card], offset grid.Point, chain []sheet.Entry[*card.Card]) {
	for _, m := range placed {
		s.Remove(m.Point.Add(offset), m.Layer)
	}
	for _, m := range chain {
		s.Add(m.Item, m.Point, m.Layer)
	}
}
