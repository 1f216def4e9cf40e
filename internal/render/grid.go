package render

import (
	"image"
	"image/color"

	"github.com/ironsheep/pattern-tools/internal/palette"
	"github.com/ironsheep/pattern-tools/internal/pattern"
)

const (
	// CellSize is the rendered size of one stitch cell, in pixels.
	CellSize = 20

	// maxImageSpan caps width+height of the grid visualization. Oversized
	// rasters are rejected by common photo transports, so the cell size
	// shrinks when a large grid would exceed the cap.
	maxImageSpan = 9900

	borderWidth = 3
)

var (
	gridLineColor = color.RGBA{200, 200, 200, 255}
	borderColor   = color.RGBA{0, 0, 0, 255}
)

// PatternImage renders the grid at one pixel per cell. This is the compact
// form the composite renderer crops and zooms from.
func PatternImage(g *pattern.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c, _ := palette.Lookup(g.Cells[y*g.Width+x])
			img.SetRGBA(x, y, c.RGBA())
		}
	}
	return img
}

// GridImage renders the pattern as flat-colored cell blocks with grey cell
// separators and a black outer border — the printable chart form.
func GridImage(g *pattern.Grid) *image.RGBA {
	cell := CellSize
	if span := (g.Width + g.Height) * cell; span > maxImageSpan {
		cell = maxImageSpan / (g.Width + g.Height)
		if cell < 1 {
			cell = 1
		}
	}

	width := g.Width * cell
	height := g.Height * cell
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c, _ := palette.Lookup(g.Cells[row*g.Width+col])
			fillRect(img, col*cell, row*cell, (col+1)*cell, (row+1)*cell, c.RGBA())
		}
	}

	// Cell separators are unreadable below a few pixels per cell.
	if cell >= 4 {
		for x := cell; x < width; x += cell {
			fillRect(img, x, 0, x+1, height, gridLineColor)
		}
		for y := cell; y < height; y += cell {
			fillRect(img, 0, y, width, y+1, gridLineColor)
		}
	}

	outlineRect(img, 0, 0, width, height, borderWidth, borderColor)
	return img
}

// fillRect fills the half-open rectangle [x1,x2)x[y1,y2), clipped to the
// image bounds.
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// outlineRect draws a frame of the given thickness just inside the
// rectangle [x1,x2)x[y1,y2).
func outlineRect(img *image.RGBA, x1, y1, x2, y2, thickness int, c color.RGBA) {
	fillRect(img, x1, y1, x2, y1+thickness, c)
	fillRect(img, x1, y2-thickness, x2, y2, c)
	fillRect(img, x1, y1, x1+thickness, y2, c)
	fillRect(img, x2-thickness, y1, x2, y2, c)
}
