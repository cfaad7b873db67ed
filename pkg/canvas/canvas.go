package canvas

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

// Operation names passed to listeners and the history recorder.
const (
	OpAdd    = "add"
	OpInsert = "insert"
	OpMove   = "move"
	OpShift  = "shift"
	OpSwap   = "swap"
	OpRemove = "remove"
)

// History receives the prior state of cards changed by a mutation, so that
// the mutation can be undone later.
type History interface {
	Record(ctx context.Context, op string, snaps []card.Snapshot)
}

// Change is delivered to listeners after a successful mutation.
type Change struct {
	Op    string
	Cards []*card.Card
}

type listener struct {
	id int
	fn func(context.Context, Change)
}

// Canvas owns sheets and cards and routes every mutation through an
// [engine.Engine].
type Canvas struct {
	cfg     *config.Config
	logger  *log.Logger
	engine  *engine.Engine
	history History

	sheets map[string]*engine.Board
	order  []string
	cards  map[string]*card.Card
	groups []*card.Group

	listeners  []listener
	listenerID int
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithConfig sets the grid extent, cell size, shift direction and cluster
// defaults.
func WithConfig(cfg *config.Config) Option {
	return func(c *Canvas) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLogger sets the logger shared by the canvas and its engine.
func WithLogger(l *log.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHistory sets the recorder that receives snapshots.
func WithHistory(h History) Option {
	return func(c *Canvas) { c.history = h }
}

// New creates an empty canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		cfg:    config.Default(),
		logger: log.New(io.Discard),
		sheets: make(map[string]*engine.Board),
		cards:  make(map[string]*card.Card),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = engine.New(c,
		engine.WithLogger(c.logger),
		engine.WithShiftDirection(c.cfg.ShiftDirection()),
	)
	return c
}

// Config returns the configuration in effect.
func (c *Canvas) Config() *config.Config { return c.cfg }

// =============================================================================
// Sheets
// =============================================================================

// AddSheet creates a sheet bounded by the configured grid extent.
func (c *Canvas) AddSheet(id string) (*engine.Board, error) {
	return c.AddSheetWithExtent(id, c.cfg.Extent())
}

// AddSheetWithExtent creates a sheet with its own bounds.
func (c *Canvas) AddSheetWithExtent(id string, extent grid.Rect) (*engine.Board, error) {
	if err := errors.ValidateSheetID(id); err != nil {
		return nil, err
	}
	if _, ok := c.sheets[id]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateSheet, "sheet %q already exists", id)
	}
	s := sheet.New[*card.Card](id, extent)
	c.sheets[id] = s
	c.order = append(c.order, id)
	c.logger.Debug("sheet added", "sheet", id, "extent", extent)
	return s, nil
}

// Sheet returns the sheet with the given id.
func (c *Canvas) Sheet(id string) (*engine.Board, bool) {
	s, ok := c.sheets[id]
	return s, ok
}

// Sheets returns every sheet in creation order.
func (c *Canvas) Sheets() []*engine.Board {
	out := make([]*engine.Board, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.sheets[id])
	}
	return out
}

func (c *Canvas) sheet(id string) (*engine.Board, error) {
	if err := errors.ValidateSheetID(id); err != nil {
		return nil, err
	}
	s, ok := c.sheets[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found", id)
	}
	return s, nil
}

// =============================================================================
// Listeners
// =============================================================================

// OnCardsChanged registers fn to run after every successful mutation. The
// returned function unregisters it.
func (c *Canvas) OnCardsChanged(fn func(context.Context, Change)) (cancel func()) {
	c.listenerID++
	id := c.listenerID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Canvas) notify(ctx context.Context, op string, cards []*card.Card, snaps []card.Snapshot) {
	cards = card.Unique(cards)
	if len(cards) == 0 {
		return
	}
	if c.history != nil && len(snaps) > 0 {
		c.history.Record(ctx, op, snaps)
	}
	observability.Canvas().OnCardsChanged(ctx, op, len(cards))
	for _, l := range c.listeners {
		l.fn(ctx, Change{Op: op, Cards: cards})
	}
}
