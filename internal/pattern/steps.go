package pattern

import (
	"fmt"

	"github.com/ironsheep/pattern-tools/internal/palette"
)

// Direction is the reading direction of one pattern row.
type Direction int

const (
	// LeftToRight is used on even rows (row 0 first).
	LeftToRight Direction = iota
	// RightToLeft is used on odd rows.
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "right-to-left"
	}
	return "left-to-right"
}

// MarshalJSON serializes the direction as its name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Run is a maximal stretch of consecutive same-colored cells within one row
// traversal.
type Run struct {
	Color palette.ID `json:"color"`
	Count int        `json:"count"`
}

// Step is the full construction instruction for one row: its runs, read in
// the row's direction. Row-based stitchwork alternates direction every row
// (boustrophedon), so even rows read left to right and odd rows right to
// left.
type Step struct {
	Row       int       `json:"row"`
	Direction Direction `json:"direction"`
	Runs      []Run     `json:"runs"`
}

// rowDirection returns the reading direction for a row index.
func rowDirection(row int) Direction {
	if row%2 == 0 {
		return LeftToRight
	}
	return RightToLeft
}

// RowStep builds the Step for a single row. It is a pure function of the
// grid row's contents: regenerating one row after an edit reproduces every
// other row's Step byte for byte. A row outside the grid fails with
// ErrIndex.
func RowStep(g *Grid, row int) (Step, error) {
	cells, err := g.Row(row)
	if err != nil {
		return Step{}, err
	}

	dir := rowDirection(row)
	step := Step{Row: row, Direction: dir}

	// Traverse in reading order and run-length encode.
	idx := func(i int) int { return i }
	if dir == RightToLeft {
		idx = func(i int) int { return len(cells) - 1 - i }
	}

	current := Run{Color: cells[idx(0)], Count: 1}
	for i := 1; i < len(cells); i++ {
		c := cells[idx(i)]
		if c == current.Color {
			current.Count++
			continue
		}
		step.Runs = append(step.Runs, current)
		current = Run{Color: c, Count: 1}
	}
	step.Runs = append(step.Runs, current)

	return step, nil
}

// GenerateSteps decomposes a grid into one Step per row, top to bottom.
// Runs never merge across rows.
func GenerateSteps(g *Grid) []Step {
	steps := make([]Step, g.Height)
	for row := 0; row < g.Height; row++ {
		step, err := RowStep(g, row)
		if err != nil {
			// Row indices here are generated in range; this cannot happen
			// for a well-formed grid.
			panic(fmt.Sprintf("pattern: internal row error: %v", err))
		}
		steps[row] = step
	}
	return steps
}
