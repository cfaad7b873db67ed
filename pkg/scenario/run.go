package scenario

import (
	"context"
	"fmt"

	"github.com/matzehuels/cardsheet/pkg/canvas"
	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// Outcome reports how one step went. A step that was refused (a blocked
// shift, a move onto a locked card) is not an error; OK is false and Detail
// says why.
type Outcome struct {
	Index  int
	Step   Step
	OK     bool
	Detail string
}

// Build creates the declared sheets and cards on cv.
func (sc *Scenario) Build(ctx context.Context, cv *canvas.Canvas) error {
	for _, s := range sc.Sheets {
		var err error
		if s.Extent != nil {
			extent := grid.NewRect(grid.P(s.Extent[0], s.Extent[1]), grid.P(s.Extent[2], s.Extent[3]))
			_, err = cv.AddSheetWithExtent(s.ID, extent)
		} else {
			_, err = cv.AddSheet(s.ID)
		}
		if err != nil {
			return err
		}
	}
	for _, c := range sc.Cards {
		cd := card.New(c.ID)
		cd.Locked = c.Locked
		if c.CanShift != nil {
			cd.CanShift = *c.CanShift
		}
		if c.CanRemove != nil {
			cd.CanRemove = *c.CanRemove
		}
		cd.Payload = card.Payload{DatasetID: c.Dataset, RowID: c.Row}
		ok, err := cv.TryAddCard(ctx, c.Sheet, cd, point(c.At), layer(c.Layer))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrCodeInvalidScenario, "card %q cannot be placed at %s on %q", cd.ID, point(c.At), c.Sheet)
		}
	}
	return nil
}

// Run applies every step in order and hands each outcome to report. It stops
// at the first error or when ctx is done.
func (sc *Scenario) Run(ctx context.Context, cv *canvas.Canvas, report func(Outcome)) error {
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := Apply(ctx, cv, st)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return errors.Wrap(code, err, "step %d (%s)", i+1, st.Op)
		}
		out.Index = i + 1
		if report != nil {
			report(out)
		}
	}
	return nil
}

// Apply runs a single step.
func Apply(ctx context.Context, cv *canvas.Canvas, st Step) (Outcome, error) {
	out := Outcome{Step: st}
	switch st.Op {
	case OpAdd, OpInsert:
		return applyAdd(ctx, cv, st)

	case OpMove:
		cards, err := lookup(cv, st.refs())
		if err != nil {
			return out, err
		}
		sheetID := st.Sheet
		if sheetID == "" {
			sheetID = cards[0].SheetID
		}
		res, err := cv.MoveCards(ctx, sheetID, layer(st.Layer), point(st.To), cards...)
		if err != nil {
			return out, err
		}
		return moveOutcome(out, res), nil

	case OpDrop:
		cards, err := lookup(cv, []string{st.Card})
		if err != nil {
			return out, err
		}
		sheetID := st.Sheet
		if sheetID == "" {
			sheetID = cards[0].SheetID
		}
		world := grid.Vec{X: st.World[0], Y: st.World[1]}
		res, err := cv.DropCards(ctx, sheetID, layer(st.Layer), canvas.Drop{Card: cards[0], World: world})
		if err != nil {
			return out, err
		}
		return moveOutcome(out, res), nil

	case OpShift:
		cards, err := lookup(cv, st.refs())
		if err != nil {
			return out, err
		}
		dir, _ := grid.ParseDirection(st.Direction)
		distance := st.Distance
		if distance == 0 {
			distance = 1
		}
		res, err := cv.TryShiftCards(ctx, cards, dir, distance)
		if err != nil {
			return out, err
		}
		out.OK = res.OK
		if res.OK {
			out.Detail = fmt.Sprintf("shifted %d %s by %d", len(res.Cards), plural(len(res.Cards), "card"), distance)
		} else {
			out.Detail = shiftRefusal(res)
		}
		return out, nil

	case OpSwap:
		cards, err := lookup(cv, []string{st.Card})
		if err != nil {
			return out, err
		}
		dir, _ := grid.ParseDirection(st.Direction)
		out.OK, err = cv.SwapOrShiftCard(ctx, cards[0], dir)
		if err != nil {
			return out, err
		}
		out.Detail = fmt.Sprintf("%s %s", cards[0].ID, grid.DirectionName(dir))
		if !out.OK {
			out.Detail += ": blocked"
		}
		return out, nil

	case OpRemove:
		cards, err := lookup(cv, []string{st.Card})
		if err != nil {
			return out, err
		}
		out.OK, err = cv.RemoveCard(ctx, cards[0])
		if err != nil {
			return out, err
		}
		out.Detail = "removed " + st.Card
		if !out.OK {
			out.Detail = st.Card + " cannot be removed"
		}
		return out, nil

	case OpLock, OpUnlock:
		cards, err := lookup(cv, []string{st.Card})
		if err != nil {
			return out, err
		}
		cards[0].Locked = st.Op == OpLock
		out.OK = true
		out.Detail = st.Op + "ed " + st.Card
		return out, nil
	}
	return out, errors.New(errors.ErrCodeInvalidScenario, "unknown op %q", st.Op)
}

func applyAdd(ctx context.Context, cv *canvas.Canvas, st Step) (Outcome, error) {
	out := Outcome{Step: st}
	cd := card.New(st.Card)
	if st.Op == OpInsert {
		res, err := cv.InsertCard(ctx, st.Sheet, cd, point(st.To), layer(st.Layer))
		if err != nil {
			return out, err
		}
		out.OK = res.OK
		out.Detail = fmt.Sprintf("inserted %s at %s, displaced %d", cd.ID, point(st.To), len(res.Displaced))
		if !res.OK {
			out.Detail = fmt.Sprintf("%s not inserted: %s", cd.ID, res.Reason)
		}
		return out, nil
	}
	ok, err := cv.TryAddCard(ctx, st.Sheet, cd, point(st.To), layer(st.Layer))
	if err != nil {
		return out, err
	}
	out.OK = ok
	out.Detail = fmt.Sprintf("added %s at %s", cd.ID, point(st.To))
	if !ok {
		out.Detail = fmt.Sprintf("%s not added: %s is taken or outside the sheet", cd.ID, point(st.To))
	}
	return out, nil
}

func lookup(cv *canvas.Canvas, ids []string) ([]*card.Card, error) {
	out := make([]*card.Card, 0, len(ids))
	for _, id := range ids {
		cd, ok := cv.GetCardByID(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeCardNotFound, "card %q not found", id)
		}
		out = append(out, cd)
	}
	return out, nil
}

func moveOutcome(out Outcome, res engine.MoveResult) Outcome {
	out.OK = res.OK()
	out.Detail = fmt.Sprintf("moved %d, displaced %d, dropped %d, reverted %d",
		len(res.Moved), len(res.Displaced), len(res.Dropped), len(res.Reverted))
	return out
}

func shiftRefusal(res engine.ShiftResult) string {
	if res.Blocker != nil {
		return fmt.Sprintf("shift refused: %s is %s", res.Blocker.ID, res.Reason)
	}
	return "shift refused: " + string(res.Reason)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
