package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelFace is the fixed bitmap face used for all rendered labels. A bitmap
// face keeps output byte-identical across platforms, which the composite
// determinism guarantee depends on.
var labelFace = basicfont.Face7x13

// drawString draws s with its baseline at (x, y).
func drawString(dst *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawStringCentered draws s horizontally centered around centerX with its
// baseline at y.
func drawStringCentered(dst *image.RGBA, centerX, y int, s string, c color.Color) {
	w := font.MeasureString(labelFace, s).Ceil()
	drawString(dst, centerX-w/2, y, s, c)
}
