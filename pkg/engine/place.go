package engine

import (
	"context"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// AddRequest places a card that is not yet on any sheet.
type AddRequest struct {
	SheetID string
	Card    *card.Card
	At      grid.Point
	Layer   grid.Layer
	// MakeRoom shifts an occupant one cell along the engine's shift
	// direction instead of refusing the add.
	MakeRoom bool
}

// AddResult is the outcome of an add.
type AddResult struct {
	OK        bool
	Reason    Reason
	Displaced []Transition
	// Snapshots hold the prior state of displaced cards.
	Snapshots []card.Snapshot
	Changed   []*card.Card
}

// Add places req.Card at req.At. A card already on a sheet is an error; an
// occupied or out-of-bounds cell is a refusal.
func (e *Engine) Add(ctx context.Context, req AddRequest) (AddResult, error) {
	s, err := e.sheet(req.SheetID)
	if err != nil {
		return AddResult{}, err
	}
	if req.Card == nil {
		return AddResult{}, errors.New(errors.ErrCodeInvalidCard, "card is nil")
	}
	if err := errors.ValidateCardID(req.Card.ID); err != nil {
		return AddResult{}, err
	}
	if err := errors.ValidateLayer(req.Layer); err != nil {
		return AddResult{}, err
	}
	if _, ok := s.ByKey(req.Card.ID); ok {
		return AddResult{}, errors.New(errors.ErrCodeDuplicateCard, "card %q is already on sheet %q", req.Card.ID, s.ID())
	}
	if req.Card.SheetID != "" {
		if _, _, _, err := e.locate(req.Card); err == nil {
			return AddResult{}, errors.New(errors.ErrCodeDuplicateCard, "card %q is already on sheet %q", req.Card.ID, req.Card.SheetID)
		}
	}

	var res AddResult
	if !s.InBounds(req.At) {
		res.Reason = ReasonOutOfBounds
		return res, nil
	}
	if s.Exists(req.At, req.Layer) && !req.MakeRoom {
		res.Reason = ReasonOccupied
		return res, nil
	}

	tr := newTracker()
	displaced, ok, err := e.place(s, req.Card, req.At, req.Layer, tr)
	if err != nil {
		return AddResult{}, err
	}
	if !ok {
		res.Reason = ReasonBlocked
		return res, nil
	}
	res.OK = true
	res.Displaced = displaced
	res.Snapshots, res.Changed = tr.changed(e)
	e.logger.Debug("card added", "card", req.Card.ID, "sheet", s.ID(), "at", req.At, "layer", req.Layer.ID)
	return res, nil
}

// RemoveResult is the outcome of a removal.
type RemoveResult struct {
	OK       bool
	Reason   Reason
	Snapshot card.Snapshot
}

// Remove lifts c off its sheet. Cards that are locked or marked
// non-removable stay.
func (e *Engine) Remove(ctx context.Context, c *card.Card) (RemoveResult, error) {
	s, p, l, err := e.locate(c)
	if err != nil {
		return RemoveResult{}, err
	}
	if !c.Removable() {
		return RemoveResult{Reason: ReasonNotRemovable}, nil
	}
	snap := card.Capture(c, p, l)
	s.Remove(p, l)
	c.SheetID = ""
	e.logger.Debug("card removed", "card", c.ID, "sheet", s.ID(), "from", p)
	return RemoveResult{OK: true, Snapshot: snap}, nil
}
