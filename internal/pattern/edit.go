package pattern

import (
	"fmt"
	"sort"

	"github.com/ironsheep/pattern-tools/internal/palette"
)

// ColorEdit recolors a single cell to another color from the grid's
// existing color set.
type ColorEdit struct {
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Color palette.ID `json:"color"`
}

// ApplyColorEdits applies localized cell recolorings and returns the
// resulting grid together with the sorted, de-duplicated row indices whose
// Steps must be regenerated.
//
// The input grid is never mutated: the result is a copy, so concurrent
// holders of the original observe no change. Edits are validated before
// anything is applied — either every edit lands or none does. A cell
// reference outside the grid fails with ErrIndex; a color outside the
// grid's color set fails with ErrPaletteMismatch. Edits never introduce new
// colors and never trigger re-quantization.
func ApplyColorEdits(g *Grid, edits []ColorEdit) (*Grid, []int, error) {
	for _, e := range edits {
		if e.Row < 0 || e.Row >= g.Height || e.Col < 0 || e.Col >= g.Width {
			return nil, nil, fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid",
				ErrIndex, e.Row, e.Col, g.Width, g.Height)
		}
		if !g.HasColor(e.Color) {
			return nil, nil, fmt.Errorf("%w: color id %d is not in this pattern's color set",
				ErrPaletteMismatch, e.Color)
		}
	}

	next := g.clone()
	touched := make(map[int]bool, len(edits))
	for _, e := range edits {
		next.Cells[e.Row*next.Width+e.Col] = e.Color
		touched[e.Row] = true
	}

	rows := make([]int, 0, len(touched))
	for row := range touched {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	return next, rows, nil
}
