// Package scenario reads scripted card boards from TOML and replays them on
// a canvas.
//
// A scenario declares sheets, the cards placed on them, and an ordered list
// of steps:
//
//	[[sheets]]
//	id = "board"
//	extent = [-5, -5, 5, 5]
//
//	[[cards]]
//	id = "a"
//	sheet = "board"
//	at = [0, 0]
//
//	[[steps]]
//	op = "shift"
//	card = "a"
//	direction = "down"
//
// Supported operations are add, insert, move, drop, shift, swap, remove,
// lock and unlock.
package scenario

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// Step operations.
const (
	OpAdd    = "add"
	OpInsert = "insert"
	OpMove   = "move"
	OpDrop   = "drop"
	OpShift  = "shift"
	OpSwap   = "swap"
	OpRemove = "remove"
	OpLock   = "lock"
	OpUnlock = "unlock"
)

var knownOps = []string{OpAdd, OpInsert, OpMove, OpDrop, OpShift, OpSwap, OpRemove, OpLock, OpUnlock}

// Scenario is a decoded scenario file.
type Scenario struct {
	Name   string  `toml:"name"`
	Sheets []Sheet `toml:"sheets"`
	Cards  []Card  `toml:"cards"`
	Steps  []Step  `toml:"steps"`
}

// Sheet declares a sheet. Extent is [min_x, min_y, max_x, max_y]; when
// omitted the configured grid extent applies.
type Sheet struct {
	ID     string  `toml:"id"`
	Extent []int32 `toml:"extent"`
}

// Card declares a card placed before the steps run.
type Card struct {
	ID        string  `toml:"id"`
	Sheet     string  `toml:"sheet"`
	Layer     string  `toml:"layer"`
	At        []int32 `toml:"at"`
	Locked    bool    `toml:"locked"`
	CanShift  *bool   `toml:"can_shift"`
	CanRemove *bool   `toml:"can_remove"`
	Dataset   string  `toml:"dataset"`
	Row       string  `toml:"row"`
}

// Step is one scripted operation. Which fields matter depends on Op.
type Step struct {
	Op        string    `toml:"op"`
	Card      string    `toml:"card"`
	Cards     []string  `toml:"cards"`
	Sheet     string    `toml:"sheet"`
	Layer     string    `toml:"layer"`
	To        []int32   `toml:"to"`
	World     []float64 `toml:"world"`
	Direction string    `toml:"direction"`
	Distance  int       `toml:"distance"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "failed to read scenario")
	}
	sc, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "%s", path)
	}
	return sc, nil
}

// Parse decodes and validates a scenario.
func Parse(data string) (*Scenario, error) {
	var sc Scenario
	md, err := toml.Decode(data, &sc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "failed to parse scenario")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown scenario key %q", undecoded[0].String())
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the structure of the scenario. Card references in steps
// are resolved when the steps run, since steps may add cards.
func (sc *Scenario) Validate() error {
	sheets := make(map[string]bool)
	for i, s := range sc.Sheets {
		if err := errors.ValidateSheetID(s.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "sheet %d", i)
		}
		if sheets[s.ID] {
			return errors.New(errors.ErrCodeInvalidScenario, "sheet %q declared twice", s.ID)
		}
		sheets[s.ID] = true
		if s.Extent != nil && len(s.Extent) != 4 {
			return errors.New(errors.ErrCodeInvalidScenario, "sheet %q: extent needs 4 values, got %d", s.ID, len(s.Extent))
		}
	}
	for i, c := range sc.Cards {
		if c.ID != "" {
			if err := errors.ValidateCardID(c.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScenario, err, "card %d", i)
			}
		}
		if !sheets[c.Sheet] {
			return errors.New(errors.ErrCodeInvalidScenario, "card %d: unknown sheet %q", i, c.Sheet)
		}
		if len(c.At) != 2 {
			return errors.New(errors.ErrCodeInvalidScenario, "card %d: at needs 2 values", i)
		}
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "step %d (%s)", i+1, st.Op)
		}
	}
	return nil
}

func (st Step) validate() error {
	if !slices.Contains(knownOps, st.Op) {
		return errors.New(errors.ErrCodeInvalidScenario, "unknown op %q", st.Op)
	}
	if st.To != nil && len(st.To) != 2 {
		return errors.New(errors.ErrCodeInvalidScenario, "to needs 2 values")
	}
	if st.World != nil && len(st.World) != 2 {
		return errors.New(errors.ErrCodeInvalidScenario, "world needs 2 values")
	}
	if st.Direction != "" {
		if _, err := grid.ParseDirection(st.Direction); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDirection, err, "direction")
		}
	}
	if st.Distance < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "distance must not be negative")
	}

	switch st.Op {
	case OpAdd, OpInsert:
		if st.Sheet == "" || st.To == nil {
			return errors.New(errors.ErrCodeInvalidScenario, "needs sheet and to")
		}
	case OpMove:
		if len(st.refs()) == 0 || st.To == nil {
			return errors.New(errors.ErrCodeInvalidScenario, "needs cards and to")
		}
	case OpDrop:
		if st.Card == "" || st.World == nil {
			return errors.New(errors.ErrCodeInvalidScenario, "needs card and world")
		}
	case OpShift:
		if len(st.refs()) == 0 || st.Direction == "" {
			return errors.New(errors.ErrCodeInvalidScenario, "needs cards and direction")
		}
	case OpSwap:
		if st.Card == "" || st.Direction == "" {
			return errors.New(errors.ErrCodeInvalidScenario, "needs card and direction")
		}
	case OpRemove, OpLock, OpUnlock:
		if st.Card == "" {
			return errors.New(errors.ErrCodeInvalidScenario, "needs card")
		}
	}
	return nil
}

// refs returns the card ids a step names, Card first.
func (st Step) refs() []string {
	var out []string
	if st.Card != "" {
		out = append(out, st.Card)
	}
	for _, id := range st.Cards {
		if id != st.Card {
			out = append(out, id)
		}
	}
	return out
}

// layer resolves a layer name; empty means the default layer.
func layer(name string) grid.Layer { return grid.NamedLayer(name) }

func point(v []int32) grid.Point {
	return grid.P(v[0], v[1])
}
