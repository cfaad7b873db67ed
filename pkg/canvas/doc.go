// Package canvas is the public entry point to cardsheet: a set of sheets and
// the cards on them, with the operations a card board UI needs.
//
// # Overview
//
// A [Canvas] owns every sheet and card. It never mutates a sheet itself;
// additions, moves, shifts, swaps and removals are delegated to
// [engine.Engine], and the canvas turns the engine results into change
// notifications and history records.
//
//	cv := canvas.New(canvas.WithConfig(cfg), canvas.WithLogger(logger))
//	cv.AddSheet("board")
//	cv.TryAddCard(ctx, "board", card.New("a"), grid.P(0, 0), grid.DefaultLayer)
//
// # Notifications
//
// [Canvas.OnCardsChanged] registers a listener that runs once per
// successful mutation with the cards whose state changed. A [History]
// recorder receives the snapshots needed to undo shifts, moves, swaps,
// insertions and removals. Refused operations notify nobody.
//
// # Positions
//
// Card positions live in the sheets. [Canvas.Position] reads them; a card
// value does not carry its own coordinates.
//
// # Concurrency
//
// A Canvas is not safe for concurrent use. Callers serialize access, for
// example by confining the canvas to one goroutine.
package canvas
