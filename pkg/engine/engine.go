package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

// Board is a sheet of cards.
type Board = sheet.Sheet[*card.Card]

// Resolver finds sheets by id. The canvas arena implements it; the engine
// never holds sheets itself.
type Resolver interface {
	Sheet(id string) (*Board, bool)
}

// Reason explains why an operation, or one card within it, did not happen.
type Reason string

// Failure reasons. These are expected outcomes, not errors.
const (
	ReasonNone          Reason = ""
	ReasonEmptyChain    Reason = "empty chain"
	ReasonLocked        Reason = "locked"
	ReasonOutOfBounds   Reason = "out of bounds"
	ReasonOccupied      Reason = "occupied"
	ReasonBlocked       Reason = "blocked"
	ReasonNotRemovable  Reason = "not removable"
	ReasonSameCard      Reason = "same card"
	ReasonDuplicateCell Reason = "duplicate target cell"
)

// Transition records one card changing cell.
type Transition struct {
	CardID    string
	FromSheet string
	ToSheet   string
	FromLayer grid.Layer
	ToLayer   grid.Layer
	From      grid.Point
	To        grid.Point
}

// String returns the human-readable form handed to loggers.
func (t Transition) String() string {
	if t.FromSheet != t.ToSheet {
		return fmt.Sprintf("%s moved from %s%s to %s%s", t.CardID, t.FromSheet, t.From, t.ToSheet, t.To)
	}
	return fmt.Sprintf("%s moved from %s to %s", t.CardID, t.From, t.To)
}

// Engine applies shifts, moves, swaps, additions and removals to sheets.
// Every sheet mutation in cardsheet goes through an Engine.
//
// An Engine is not safe for concurrent use; callers serialize mutations per
// sheet.
type Engine struct {
	sheets   Resolver
	logger   *log.Logger
	shiftDir grid.Point
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger receiving transition descriptions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithShiftDirection overrides the direction used to make room during moves
// and additions. Anything but a single-cell step is ignored.
func WithShiftDirection(d grid.Point) Option {
	return func(e *Engine) {
		if errors.ValidateDirection(d) == nil {
			e.shiftDir = d
		}
	}
}

// New creates an engine over the sheets r resolves.
func New(r Resolver, opts ...Option) *Engine {
	e := &Engine{
		sheets:   r,
		logger:   log.New(io.Discard),
		shiftDir: grid.DefaultShiftDirection,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShiftDirection returns the direction used to make room.
func (e *Engine) ShiftDirection() grid.Point { return e.shiftDir }

func (e *Engine) sheet(id string) (*Board, error) {
	if err := errors.ValidateSheetID(id); err != nil {
		return nil, err
	}
	s, ok := e.sheets.Sheet(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found", id)
	}
	return s, nil
}

// locate finds the sheet and cell currently holding c.
func (e *Engine) locate(c *card.Card) (*Board, grid.Point, grid.Layer, error) {
	if c == nil {
		return nil, grid.Point{}, grid.Layer{}, errors.New(errors.ErrCodeInvalidCard, "card is nil")
	}
	s, err := e.sheet(c.SheetID)
	if err != nil {
		return nil, grid.Point{}, grid.Layer{}, errors.Wrap(errors.ErrCodeCardNotFound, err, "card %q", c.ID)
	}
	p, l, ok := s.Locate(c.ID)
	if !ok {
		return nil, grid.Point{}, grid.Layer{}, errors.New(errors.ErrCodeCardNotFound, "card %q is not on sheet %q", c.ID, s.ID())
	}
	if placed, _ := s.ByKey(c.ID); placed != c {
		return nil, grid.Point{}, grid.Layer{}, errors.New(errors.ErrCodeDuplicateCard, "card %q on sheet %q is a different instance", c.ID, s.ID())
	}
	return s, p, l, nil
}

func (e *Engine) logTransition(t Transition) {
	e.logger.Debug("card moved", "card", t.CardID, "sheet", t.ToSheet, "from", t.From, "to", t.To)
}
