package cli

import (
	"context"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/cardsheet/pkg/canvas"
	"github.com/matzehuels/cardsheet/pkg/card"
)

// journal keeps the history handed out by a canvas during a replay.
type journal struct {
	entries []journalEntry
}

type journalEntry struct {
	op    string
	snaps []card.Snapshot
}

var _ canvas.History = (*journal)(nil)

// Record implements canvas.History.
func (j *journal) Record(ctx context.Context, op string, snaps []card.Snapshot) {
	j.entries = append(j.entries, journalEntry{op: op, snaps: snaps})
	loggerFromContext(ctx).Debug("history recorded", "op", op, "cards", len(snaps))
}

// Len returns the number of recorded mutations.
func (j *journal) Len() int { return len(j.entries) }

// stats counts recorded mutations per operation in a fixed order.
func (j *journal) stats() []stat {
	ops := []string{canvas.OpInsert, canvas.OpMove, canvas.OpShift, canvas.OpSwap, canvas.OpRemove}
	counts := make(map[string]int, len(ops))
	for _, e := range j.entries {
		counts[e.op]++
	}
	out := make([]stat, 0, len(ops))
	for _, op := range ops {
		out = append(out, stat{label: op, n: counts[op]})
	}
	return out
}

// touched returns how many distinct cards the recorded mutations changed.
func (j *journal) touched() int {
	seen := mapset.New[string]()
	for _, e := range j.entries {
		for _, s := range e.snaps {
			seen.Put(s.CardID)
		}
	}
	return seen.Size()
}
