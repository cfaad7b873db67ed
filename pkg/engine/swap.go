package engine

import (
	"context"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/observability"
)

// SwapResult is the outcome of a swap.
type SwapResult struct {
	OK          bool
	Reason      Reason
	Snapshots   []card.Snapshot
	Transitions []Transition
}

// Swap exchanges the cells of a and b. Both must sit on the same sheet and
// layer. a must be movable and b, which is pushed out of its cell, must be
// shiftable.
func (e *Engine) Swap(ctx context.Context, a, b *card.Card) (SwapResult, error) {
	sa, pa, la, err := e.locate(a)
	if err != nil {
		return SwapResult{}, err
	}
	sb, pb, lb, err := e.locate(b)
	if err != nil {
		return SwapResult{}, err
	}
	if sa != sb || !la.SameAs(lb) {
		return SwapResult{}, errors.New(errors.ErrCodeInvalidArgument, "cannot swap %q and %q across sheets or layers", a.ID, b.ID)
	}

	var res SwapResult
	switch {
	case a == b:
		res.Reason = ReasonSameCard
	case !a.Movable(), !b.Shiftable():
		res.Reason = ReasonLocked
	}
	if res.Reason != ReasonNone {
		observability.Engine().OnSwap(ctx, sa.ID(), false)
		return res, nil
	}

	res.Snapshots = []card.Snapshot{card.Capture(a, pa, la), card.Capture(b, pb, lb)}
	sa.Remove(pa, la)
	sa.Remove(pb, lb)
	if !sa.Add(a, pb, lb) || !sa.Add(b, pa, la) {
		return SwapResult{}, errors.New(errors.ErrCodeInternal, "swap of %q and %q left a cell occupied", a.ID, b.ID)
	}

	res.OK = true
	res.Transitions = []Transition{
		{CardID: a.ID, FromSheet: sa.ID(), ToSheet: sa.ID(), FromLayer: la, ToLayer: lb, From: pa, To: pb},
		{CardID: b.ID, FromSheet: sa.ID(), ToSheet: sa.ID(), FromLayer: lb, ToLayer: la, From: pb, To: pa},
	}
	for _, t := range res.Transitions {
		e.logTransition(t)
	}
	observability.Engine().OnSwap(ctx, sa.ID(), true)
	return res, nil
}
