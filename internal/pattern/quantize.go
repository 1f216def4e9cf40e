package pattern

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"

	"github.com/ironsheep/pattern-tools/internal/palette"
)

// Method selects the color reduction strategy. Both methods are
// deterministic: the same image always yields the same suggestion.
type Method int

const (
	// MethodMedianCut reduces the color space with median-cut quantization
	// and ranks representatives by pixel frequency. This is the default.
	MethodMedianCut Method = iota
	// MethodDominant ranks colors with the weighted dominant-color analysis
	// instead. Useful for photos where median cut over-segments gradients.
	MethodDominant
)

func (m Method) String() string {
	switch m {
	case MethodDominant:
		return "dominant"
	default:
		return "median-cut"
	}
}

const (
	// maxQuantColors bounds the intermediate representative set. Large
	// enough that small but visible regions (eyes, highlights) survive.
	maxQuantColors = 32

	// DefaultMaxColors is the suggestion size used when the caller does not
	// ask for a specific count.
	DefaultMaxColors = 10

	// Suggestion runs on a bounded downscale of the source.
	suggestAnalysisSize = 400
)

// SuggestColors reduces an image's color space and matches the result onto
// the yarn catalogue, returning up to k catalogue IDs ordered from most to
// least frequent. Representatives that map to the same yarn color are
// collapsed, keeping the earliest (most frequent) position.
//
// A single-color image yields a single suggestion. An image with no pixels
// fails with ErrImageDecode.
func SuggestColors(img image.Image, k int) ([]palette.ID, error) {
	return SuggestColorsMethod(img, k, MethodMedianCut)
}

// SuggestColorsMethod is SuggestColors with an explicit reduction method.
func SuggestColorsMethod(img image.Image, k int, method Method) ([]palette.ID, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}
	if k <= 0 {
		k = DefaultMaxColors
	}

	small := imaging.Fit(img, suggestAnalysisSize, suggestAnalysisSize, imaging.Lanczos)

	var reps []color.RGBA
	switch method {
	case MethodDominant:
		reps = dominantRepresentatives(small)
	default:
		reps = medianCutRepresentatives(small)
	}

	// Match each representative to its nearest yarn color, dropping
	// duplicates but keeping frequency order.
	seen := make(map[palette.ID]bool, len(reps))
	matched := make([]palette.ID, 0, len(reps))
	for _, rep := range reps {
		id := palette.Nearest(rep).ID
		if !seen[id] {
			seen[id] = true
			matched = append(matched, id)
		}
	}

	if len(matched) > k {
		matched = matched[:k]
	}
	return matched, nil
}

// medianCutRepresentatives reduces the image to at most maxQuantColors
// representative colors and orders them by descending pixel frequency.
// Median cut itself gives no frequency ranking, so pixels are re-counted
// against the reduced palette; ties keep palette index order for stability.
func medianCutRepresentatives(img *image.NRGBA) []color.RGBA {
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	reduced := q.Quantize(make(color.Palette, 0, maxQuantColors), img)
	if len(reduced) == 0 {
		return nil
	}

	counts := make([]int, len(reduced))
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[reduced.Index(img.NRGBAAt(x, y))]++
		}
	}

	order := make([]int, len(reduced))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	reps := make([]color.RGBA, 0, len(reduced))
	for _, i := range order {
		if counts[i] == 0 {
			continue
		}
		r, g, b, _ := reduced[i].RGBA()
		reps = append(reps, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
	}
	return reps
}

// dominantRepresentatives extracts weighted dominant colors and orders them
// by descending weight.
func dominantRepresentatives(img image.Image) []color.RGBA {
	candidates := dominantcolor.FindWeight(img, maxQuantColors)
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Weight > candidates[b].Weight
	})
	reps := make([]color.RGBA, 0, len(candidates))
	for _, c := range candidates {
		reps = append(reps, c.RGBA)
	}
	return reps
}
