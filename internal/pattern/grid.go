package pattern

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/pattern-tools/internal/palette"
)

const (
	// MaxGridDim is the largest accepted grid dimension, in stitches.
	MaxGridDim = 500

	// minFitDimension keeps aspect-fitted grids from collapsing below a
	// workable stitch count on extreme aspect ratios.
	minFitDimension = 10

	// Radius of the median smoothing pass applied before cell sampling.
	// Smoothing at grid resolution removes single-pixel speckle that would
	// otherwise become isolated one-stitch color changes.
	medianRadius = 3
)

// Grid is a discretized pattern: Width*Height cells in row-major order, each
// holding a yarn color ID drawn from Colors, the grid's own bounded color
// set.
//
// A Grid is immutable once built. ApplyColorEdits returns a modified copy;
// holders of the original never observe a change.
type Grid struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Cells  []palette.ID `json:"cells"`

	// Colors is the set of yarn colors this grid may use, ordered most to
	// least frequent as suggested from the source image. Every cell value
	// appears here, and edits may only recolor within this set.
	Colors []palette.ID `json:"colors"`
}

// At returns the cell color at (row, col).
func (g *Grid) At(row, col int) (palette.ID, error) {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return 0, fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrIndex, row, col, g.Width, g.Height)
	}
	return g.Cells[row*g.Width+col], nil
}

// Row returns one row of cells as a read-only slice of the backing array.
func (g *Grid) Row(row int) ([]palette.ID, error) {
	if row < 0 || row >= g.Height {
		return nil, fmt.Errorf("%w: row %d outside %d rows", ErrIndex, row, g.Height)
	}
	return g.Cells[row*g.Width : (row+1)*g.Width], nil
}

// HasColor reports whether id belongs to the grid's color set.
func (g *Grid) HasColor(id palette.ID) bool {
	for _, c := range g.Colors {
		if c == id {
			return true
		}
	}
	return false
}

// ColorCounts returns the number of cells holding each color in the grid's
// color set. Colors suggested but unused by any cell count as zero.
func (g *Grid) ColorCounts() map[palette.ID]int {
	counts := make(map[palette.ID]int, len(g.Colors))
	for _, id := range g.Colors {
		counts[id] = 0
	}
	for _, id := range g.Cells {
		counts[id]++
	}
	return counts
}

// clone deep-copies the grid.
func (g *Grid) clone() *Grid {
	cells := make([]palette.ID, len(g.Cells))
	copy(cells, g.Cells)
	colors := make([]palette.ID, len(g.Colors))
	copy(colors, g.Colors)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells, Colors: colors}
}

// FitDimensions derives aspect-preserving grid dimensions from a source
// image size and a longest-side stitch count. Neither dimension falls below
// minFitDimension.
func FitDimensions(bounds image.Rectangle, longest int) (width, height int) {
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW <= 0 || srcH <= 0 || longest <= 0 {
		return 0, 0
	}

	if srcW > srcH {
		width = longest
		height = longest * srcH / srcW
	} else {
		height = longest
		width = longest * srcW / srcH
	}
	if width < minFitDimension {
		width = minFitDimension
	}
	if height < minFitDimension {
		height = minFitDimension
	}
	return width, height
}

// BuildGrid downsamples an image into a width x height pattern grid whose
// cells are restricted to the given yarn colors.
//
// Each cell takes the color of its source region after Lanczos downsampling
// and a median smoothing pass, matched to the perceptually nearest entry of
// colors. Passing nil colors runs SuggestColors first with the default
// suggestion size.
//
// Dimensions outside [1, MaxGridDim] fail with ErrSize; an image with no
// pixels fails with ErrImageDecode.
func BuildGrid(img image.Image, width, height int, colors []palette.ID) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d, both dimensions must be at least 1", ErrSize, width, height)
	}
	if width > MaxGridDim || height > MaxGridDim {
		return nil, fmt.Errorf("%w: %dx%d exceeds maximum %d", ErrSize, width, height, MaxGridDim)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}

	if colors == nil {
		suggested, err := SuggestColors(img, DefaultMaxColors)
		if err != nil {
			return nil, err
		}
		colors = suggested
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: empty color set", ErrPaletteMismatch)
	}
	for _, id := range colors {
		if _, ok := palette.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: unknown color id %d", ErrPaletteMismatch, id)
		}
	}

	// One pixel per cell: the resampler averages each source region.
	small := imaging.Resize(img, width, height, imaging.Lanczos)
	smoothed := effect.Median(small, medianRadius)

	cells := make([]palette.ID, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			matched, _ := palette.NearestOf(smoothed.RGBAAt(x, y), colors)
			cells[y*width+x] = matched.ID
		}
	}

	usedColors := make([]palette.ID, len(colors))
	copy(usedColors, colors)

	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
		Colors: usedColors,
	}, nil
}
