package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pattern-tools/internal/pattern"
)

// CompositeSpec parameterizes the step composite. The zero value of any
// field falls back to the corresponding default, so callers commonly pass
// DefaultCompositeSpec() or an adjusted copy of it.
type CompositeSpec struct {
	// CanvasWidth and CanvasHeight fix the output buffer size.
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// CellSize is the magnification of one grid cell in the zoom view.
	CellSize int `json:"cell_size"`

	// WindowRows and WindowCols bound the zoom window around the active row.
	WindowRows int `json:"window_rows"`
	WindowCols int `json:"window_cols"`

	// RefSize bounds the marked-up reference thumbnail of the source photo.
	RefSize int `json:"ref_size"`
}

// DefaultCompositeSpec returns the standard 800x900 layout.
func DefaultCompositeSpec() CompositeSpec {
	return CompositeSpec{
		CanvasWidth:  800,
		CanvasHeight: 900,
		CellSize:     20,
		WindowRows:   50,
		WindowCols:   40,
		RefSize:      150,
	}
}

// normalize fills zero fields from the defaults.
func (s CompositeSpec) normalize() CompositeSpec {
	def := DefaultCompositeSpec()
	if s.CanvasWidth <= 0 {
		s.CanvasWidth = def.CanvasWidth
	}
	if s.CanvasHeight <= 0 {
		s.CanvasHeight = def.CanvasHeight
	}
	if s.CellSize <= 0 {
		s.CellSize = def.CellSize
	}
	if s.WindowRows <= 0 {
		s.WindowRows = def.WindowRows
	}
	if s.WindowCols <= 0 {
		s.WindowCols = def.WindowCols
	}
	if s.RefSize <= 0 {
		s.RefSize = def.RefSize
	}
	return s
}

var (
	compositeBackground = color.RGBA{245, 245, 245, 255}
	highlightColor      = color.RGBA{255, 255, 0, 255}
	refBandColor        = color.RGBA{255, 0, 0, 255}
)

// window clamps a span of length size centered on center into [0, limit).
func window(center, size, limit int) (lo, hi int) {
	if size > limit {
		size = limit
	}
	lo = center - size/2
	if lo < 0 {
		lo = 0
	}
	hi = lo + size
	if hi > limit {
		hi = limit
		lo = hi - size
	}
	return lo, hi
}

// Composite renders the visual guide for one row: the source photo with the
// zoomed region marked, a header naming the row and reading direction, and a
// magnified grid view with the active row highlighted.
//
// Output size is fixed by CompositeSpec regardless of grid or photo dimensions,
// and identical inputs produce identical buffers. A row outside
// [0, grid height) fails with ErrIndex.
func Composite(img image.Image, g *pattern.Grid, row int, spec CompositeSpec) (*image.RGBA, error) {
	if row < 0 || row >= g.Height {
		return nil, fmt.Errorf("%w: row %d outside %d rows", pattern.ErrIndex, row, g.Height)
	}
	spec = spec.normalize()

	canvas := image.NewRGBA(image.Rect(0, 0, spec.CanvasWidth, spec.CanvasHeight))
	fillRect(canvas, 0, 0, spec.CanvasWidth, spec.CanvasHeight, compositeBackground)

	minRow, maxRow := window(row, spec.WindowRows, g.Height)
	minCol, maxCol := window(g.Width/2, spec.WindowCols, g.Width)

	// Reference thumbnail with the zoom window rows banded in red.
	ref := renderReference(img, g, minRow, maxRow, spec.RefSize)
	refX := (spec.CanvasWidth - ref.Bounds().Dx()) / 2
	draw.Draw(canvas, ref.Bounds().Add(image.Pt(refX, 20)), ref, image.Point{}, draw.Src)

	// Header.
	dir := pattern.LeftToRight
	if row%2 == 1 {
		dir = pattern.RightToLeft
	}
	black := color.RGBA{0, 0, 0, 255}
	drawStringCentered(canvas, spec.CanvasWidth/2, 205,
		fmt.Sprintf("Row %d of %d", row+1, g.Height), black)
	drawStringCentered(canvas, spec.CanvasWidth/2, 225,
		fmt.Sprintf("work %s", dir), color.RGBA{50, 50, 50, 255})

	// Magnified grid window with the active row outlined.
	zoom := renderZoom(g, row, minRow, maxRow, minCol, maxCol, spec.CellSize)
	zoomX := (spec.CanvasWidth - zoom.Bounds().Dx()) / 2
	draw.Draw(canvas, zoom.Bounds().Add(image.Pt(zoomX, 260)), zoom, image.Point{}, draw.Src)

	return canvas, nil
}

// renderReference fits the source photo into a refSize square and marks the
// grid rows [minRow, maxRow) with a red band.
func renderReference(img image.Image, g *pattern.Grid, minRow, maxRow, refSize int) *image.RGBA {
	fitted := imaging.Fit(img, refSize, refSize, imaging.Lanczos)
	w := fitted.Bounds().Dx()
	h := fitted.Bounds().Dy()

	ref := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(ref, ref.Bounds(), fitted, image.Point{}, draw.Src)

	bandTop := minRow * h / g.Height
	bandBottom := maxRow * h / g.Height
	outlineRect(ref, 0, bandTop, w, bandBottom, 4, refBandColor)
	outlineRect(ref, 0, 0, w, h, 2, color.RGBA{0, 0, 0, 255})
	return ref
}

// renderZoom magnifies the grid window [minCol,maxCol)x[minRow,maxRow) to
// cellSize pixels per cell, draws cell separators, and outlines the active
// row's visible span in yellow.
func renderZoom(g *pattern.Grid, row, minRow, maxRow, minCol, maxCol, cellSize int) *image.RGBA {
	crop := imaging.Crop(PatternImage(g), image.Rect(minCol, minRow, maxCol, maxRow))
	cols := maxCol - minCol
	rows := maxRow - minRow
	scaled := imaging.Resize(crop, cols*cellSize, rows*cellSize, imaging.NearestNeighbor)

	zoom := image.NewRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))
	draw.Draw(zoom, zoom.Bounds(), scaled, image.Point{}, draw.Src)

	for x := cellSize; x < zoom.Bounds().Dx(); x += cellSize {
		fillRect(zoom, x, 0, x+1, zoom.Bounds().Dy(), gridLineColor)
	}
	for y := cellSize; y < zoom.Bounds().Dy(); y += cellSize {
		fillRect(zoom, 0, y, zoom.Bounds().Dx(), y+1, gridLineColor)
	}

	localRow := row - minRow
	outlineRect(zoom, 0, localRow*cellSize, cols*cellSize, (localRow+1)*cellSize, 6, highlightColor)
	return zoom
}
