package cli

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/engine"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

const (
	maxCellWidth   = 6
	maxBoardWidth  = 40
	maxBoardHeight = 40
)

// renderBoard draws the occupied area of one layer, top row first. Locked
// cards are highlighted. Boards larger than maxBoardWidth x maxBoardHeight
// are summarized instead of drawn.
func renderBoard(b *engine.Board, layer grid.Layer) string {
	r, ok := b.Bounds(layer)
	if !ok {
		return "  " + StyleDim.Render("(empty)")
	}
	if r.Width() > maxBoardWidth || r.Height() > maxBoardHeight {
		return "  " + StyleDim.Render(fmt.Sprintf("%d cards in %s, too large to draw", len(b.Items(layer)), r))
	}

	width := 1
	for _, cd := range b.Items(layer) {
		width = max(width, min(len(cd.ID), maxCellWidth))
	}
	cell := func(s string) string {
		return fmt.Sprintf("%-*s", width+1, s)
	}

	rows := make([]string, 0, r.Height())
	for y := r.Max.Y; y >= r.Min.Y; y-- {
		var sb strings.Builder
		sb.WriteString(StyleDim.Render(fmt.Sprintf("%5d ", y)))
		for x := r.Min.X; x <= r.Max.X; x++ {
			cd, ok := b.Get(grid.P(x, y), layer)
			switch {
			case !ok:
				sb.WriteString(styleEmpty.Render(cell(iconEmpty)))
			case cd.Locked:
				sb.WriteString(styleLocked.Render(cell(label(cd.ID))))
			default:
				sb.WriteString(styleCard.Render(cell(label(cd.ID))))
			}
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(rows, "\n")
}

func label(id string) string {
	if len(id) > maxCellWidth {
		return id[:maxCellWidth]
	}
	return id
}

// printBoards draws every layer of every sheet.
func printBoards(boards []*engine.Board) {
	for _, b := range boards {
		for _, l := range b.Layers() {
			printNewline()
			fmt.Println(StyleTitle.Render(b.ID()) + StyleDim.Render(" / "+l.String()))
			fmt.Println(renderBoard(b, l))
		}
	}
}
