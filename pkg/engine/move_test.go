package engine

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

func move(t *testing.T, e *Engine, sheetID string, pls ...Placement) MoveResult {
	t.Helper()
	res, err := e.Move(context.Background(), MoveRequest{SheetID: sheetID, Layer: grid.DefaultLayer, Placements: pls})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	return res
}

func TestMoveToEmptyCell(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))

	res := move(t, e, "board", Placement{Card: a, To: grid.P(3, 3)})
	if !res.OK() || len(res.Moved) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := at(t, s, "a"); got != grid.P(3, 3) {
		t.Errorf("a at %s", got)
	}
	if _, ok := s.Get(grid.P(0, 0), grid.DefaultLayer); ok {
		t.Error("origin still occupied")
	}
	if len(res.Snapshots) != 1 || res.Snapshots[0].Point != grid.P(0, 0) {
		t.Errorf("Snapshots = %+v", res.Snapshots)
	}
}

func TestMoveOntoUnlockedOccupant(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))
	place(t, s, "b", grid.P(2, 2))

	res := move(t, e, "board", Placement{Card: a, To: grid.P(2, 2)})
	if got := at(t, s, "a"); got != grid.P(2, 2) {
		t.Errorf("a at %s, want (2,2)", got)
	}
	if got := at(t, s, "b"); got != grid.P(2, 1) {
		t.Errorf("b at %s, want (2,1)", got)
	}
	if len(res.Displaced) != 1 || res.Displaced[0].CardID != "b" {
		t.Errorf("Displaced = %+v", res.Displaced)
	}
	assertIDs(t, "Changed", res.Changed, "a", "b")
}

func TestMoveOntoLockedOccupantReverts(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))
	b := place(t, s, "b", grid.P(2, 2))
	b.Locked = true

	res := move(t, e, "board", Placement{Card: a, To: grid.P(2, 2)})
	if res.OK() {
		t.Fatal("move onto a locked card should not land")
	}
	assertIDs(t, "Reverted", res.Reverted, "a")
	if got := at(t, s, "a"); got != grid.P(0, 0) {
		t.Errorf("a at %s, want origin", got)
	}
	if len(res.Snapshots) != 0 {
		t.Errorf("unchanged cards should not be snapshotted: %+v", res.Snapshots)
	}
}

func TestMoveDropsIneligibleCards(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	locked := place(t, s, "locked", grid.P(0, 0))
	locked.Locked = true
	far := place(t, s, "far", grid.P(1, 0))
	ok := place(t, s, "ok", grid.P(2, 0))

	res := move(t, e, "board",
		Placement{Card: locked, To: grid.P(0, 3)},
		Placement{Card: far, To: grid.P(10, 0)},
		Placement{Card: ok, To: grid.P(2, 3)},
	)
	if len(res.Dropped) != 2 {
		t.Fatalf("Dropped = %+v", res.Dropped)
	}
	if res.Dropped[0].Reason != ReasonLocked || res.Dropped[1].Reason != ReasonOutOfBounds {
		t.Errorf("reasons = %q, %q", res.Dropped[0].Reason, res.Dropped[1].Reason)
	}
	if len(res.Moved) != 1 || at(t, s, "ok") != grid.P(2, 3) {
		t.Errorf("Moved = %+v", res.Moved)
	}
	if at(t, s, "locked") != grid.P(0, 0) || at(t, s, "far") != grid.P(1, 0) {
		t.Error("dropped cards should stay put")
	}
}

func TestMoveAcrossSheets(t *testing.T) {
	extent := grid.NewRect(grid.P(-5, -5), grid.P(5, 5))
	src := sheet.New[*card.Card]("src", extent)
	dst := sheet.New[*card.Card]("dst", extent)
	e := New(sheets{"src": src, "dst": dst}, WithLogger(log.New(&bytes.Buffer{})))
	a := place(t, src, "a", grid.P(0, 0))

	res := move(t, e, "dst", Placement{Card: a, To: grid.P(1, 1)})
	if !res.OK() {
		t.Fatal("cross-sheet move failed")
	}
	if a.SheetID != "dst" {
		t.Errorf("SheetID = %q, want dst", a.SheetID)
	}
	if src.Len() != 0 || dst.Len() != 1 {
		t.Errorf("src=%d dst=%d cards", src.Len(), dst.Len())
	}
	if res.Snapshots[0].SheetID != "src" {
		t.Errorf("snapshot sheet = %q, want src", res.Snapshots[0].SheetID)
	}
	if tr := res.Moved[0]; tr.FromSheet != "src" || tr.ToSheet != "dst" {
		t.Errorf("transition = %+v", tr)
	}
}

func TestMoveExchangeOrigins(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))
	b := place(t, s, "b", grid.P(0, -1))

	res := move(t, e, "board", Placement{Card: a, To: grid.P(0, -1)}, Placement{Card: b, To: grid.P(0, 0)})
	if len(res.Moved) != 2 || len(res.Displaced) != 0 {
		t.Fatalf("result = %+v", res)
	}
	if at(t, s, "a") != grid.P(0, -1) || at(t, s, "b") != grid.P(0, 0) {
		t.Error("cards did not exchange cells")
	}
}

func TestMovePlacesUpstreamFirst(t *testing.T) {
	// Placing a before b would let b's shift push a off its target.
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(4, 4))
	b := place(t, s, "b", grid.P(3, 4))
	place(t, s, "c", grid.P(0, 1))

	res := move(t, e, "board", Placement{Card: a, To: grid.P(0, 0)}, Placement{Card: b, To: grid.P(0, 1)})
	if len(res.Moved) != 2 {
		t.Fatalf("Moved = %+v", res.Moved)
	}
	for id, want := range map[string]grid.Point{"a": grid.P(0, 0), "b": grid.P(0, 1), "c": grid.P(0, -1)} {
		if got := at(t, s, id); got != want {
			t.Errorf("%s at %s, want %s", id, got, want)
		}
	}
}

func TestMoveRevertedCardDisplacedLater(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))
	b := place(t, s, "b", grid.P(5, 5))
	b.Locked = true
	c := place(t, s, "c", grid.P(3, 3))

	res := move(t, e, "board", Placement{Card: a, To: grid.P(5, 5)}, Placement{Card: c, To: grid.P(0, 0)})
	assertIDs(t, "Reverted", res.Reverted, "a")
	if got := at(t, s, "a"); got != grid.P(0, -1) {
		t.Errorf("a at %s, want (0,-1)", got)
	}
	assertIDs(t, "Changed", res.Changed, "a", "c")
}

func TestMoveDuplicateTargets(t *testing.T) {
	tests := []struct {
		name        string
		pls         func(a, b, c *card.Card) []Placement
		wantAt      map[string]grid.Point
		wantDropped []string
	}{
		{
			name: "second card to the same cell",
			pls: func(a, b, _ *card.Card) []Placement {
				return []Placement{{Card: a, To: grid.P(0, 0)}, {Card: b, To: grid.P(0, 0)}}
			},
			wantAt:      map[string]grid.Point{"a": grid.P(0, 0), "b": grid.P(5, 5), "c": grid.P(-3, -3)},
			wantDropped: []string{"b"},
		},
		{
			name: "cell held by a card that stays",
			pls: func(a, _, c *card.Card) []Placement {
				return []Placement{{Card: c, To: grid.P(-3, -3)}, {Card: a, To: grid.P(-3, -3)}}
			},
			wantAt:      map[string]grid.Point{"a": grid.P(3, 3), "b": grid.P(5, 5), "c": grid.P(-3, -3)},
			wantDropped: []string{"a"},
		},
		{
			name: "three cards, first wins",
			pls: func(a, b, c *card.Card) []Placement {
				return []Placement{{Card: b, To: grid.P(1, 1)}, {Card: a, To: grid.P(1, 1)}, {Card: c, To: grid.P(1, 1)}}
			},
			wantAt:      map[string]grid.Point{"a": grid.P(3, 3), "b": grid.P(1, 1), "c": grid.P(-3, -3)},
			wantDropped: []string{"a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
			a := place(t, s, "a", grid.P(3, 3))
			b := place(t, s, "b", grid.P(5, 5))
			c := place(t, s, "c", grid.P(-3, -3))

			res := move(t, e, "board", tt.pls(a, b, c)...)
			for id, want := range tt.wantAt {
				if got := at(t, s, id); got != want {
					t.Errorf("%s at %s, want %s", id, got, want)
				}
			}
			var dropped []*card.Card
			for _, d := range res.Dropped {
				if d.Reason != ReasonDuplicateCell {
					t.Errorf("%s dropped for %q", d.Card.ID, d.Reason)
				}
				dropped = append(dropped, d.Card)
			}
			assertIDs(t, "Dropped", dropped, tt.wantDropped...)
			if len(res.Displaced) != 0 {
				t.Errorf("Displaced = %+v", res.Displaced)
			}
			for _, tr := range res.Moved {
				if got := at(t, s, tr.CardID); got != tr.To {
					t.Errorf("%s reported at %s, sits at %s", tr.CardID, tr.To, got)
				}
			}
		})
	}
}

func TestMoveReportsCardsPushedByRevert(t *testing.T) {
	// x lands on y's origin, then y reverts there and shifts x down.
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	x := place(t, s, "x", grid.P(4, 4))
	y := place(t, s, "y", grid.P(0, 2))
	pin := place(t, s, "pin", grid.P(0, -3))
	pin.Locked = true

	res := move(t, e, "board", Placement{Card: x, To: grid.P(0, 2)}, Placement{Card: y, To: grid.P(0, -3)})
	assertIDs(t, "Reverted", res.Reverted, "y")
	if got := at(t, s, "y"); got != grid.P(0, 2) {
		t.Errorf("y at %s, want its origin", got)
	}
	if len(res.Moved) != 1 || res.Moved[0].CardID != "x" {
		t.Fatalf("Moved = %+v", res.Moved)
	}
	if got := at(t, s, "x"); got != grid.P(0, 1) || res.Moved[0].To != got {
		t.Errorf("x at %s, reported at %s", got, res.Moved[0].To)
	}
}

func TestMoveErrors(t *testing.T) {
	e, s := fixture(t, grid.NewRect(grid.P(-5, -5), grid.P(5, 5)))
	a := place(t, s, "a", grid.P(0, 0))
	stray := card.New("stray")

	tests := []struct {
		name string
		req  MoveRequest
		code errors.Code
	}{
		{"unknown sheet", MoveRequest{SheetID: "nope", Layer: grid.DefaultLayer}, errors.ErrCodeSheetNotFound},
		{"nil card", MoveRequest{SheetID: "board", Layer: grid.DefaultLayer, Placements: []Placement{{}}}, errors.ErrCodeInvalidCard},
		{"card not on a sheet", MoveRequest{SheetID: "board", Layer: grid.DefaultLayer, Placements: []Placement{{Card: stray}}}, errors.ErrCodeCardNotFound},
		{"placed twice", MoveRequest{SheetID: "board", Layer: grid.DefaultLayer, Placements: []Placement{{Card: a, To: grid.P(1, 1)}, {Card: a, To: grid.P(2, 2)}}}, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Move(context.Background(), tt.req); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if at(t, s, "a") != grid.P(0, 0) {
		t.Error("failed requests must not move cards")
	}
}
