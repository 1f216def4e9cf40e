package render

import (
	"image"

	"github.com/ironsheep/pattern-tools/internal/pattern"
)

// BuildPattern runs the full conversion for one image: color suggestion,
// grid construction, and both rendered artifacts. It is the single call
// interactive callers use when a photo and target dimensions are known.
func BuildPattern(img image.Image, width, height int) (g *pattern.Grid, gridImg, paletteImg *image.RGBA, err error) {
	g, err = pattern.BuildGrid(img, width, height, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, GridImage(g), SwatchImage(g), nil
}
