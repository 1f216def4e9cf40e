package pattern

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/stat"
)

// SizeTier buckets an image's complexity into a recommended grid resolution.
type SizeTier int

const (
	// TierLow suits flat, simple images; the grid uses ~13% of the source's
	// longest dimension.
	TierLow SizeTier = iota
	// TierMedium uses ~22%.
	TierMedium
	// TierHigh suits detailed images; ~35%.
	TierHigh
)

// String returns the tier name used in reports and the CLI.
func (t SizeTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// dimensionFraction returns the fraction of the source's longest dimension
// recommended for this tier.
func (t SizeTier) dimensionFraction() float64 {
	switch t {
	case TierHigh:
		return 0.35
	case TierMedium:
		return 0.22
	default:
		return 0.13
	}
}

// Complexity scores the structural and chromatic complexity of an image and
// carries the derived grid size recommendation.
type Complexity struct {
	// EdgeDensity is the fraction of pixels on a strong luminance gradient,
	// normalized to [0,1].
	EdgeDensity float64 `json:"edge_density"`

	// ColorVariance measures the spread of distinct colors, normalized to
	// [0,1].
	ColorVariance float64 `json:"color_variance"`

	// Combined is the weighted sum of the two metrics, in [0,1].
	Combined float64 `json:"combined"`

	// ChannelSpread is the mean standard deviation of the R, G and B
	// channels, normalized to [0,1]. Informational only; it does not feed
	// the tier decision.
	ChannelSpread float64 `json:"channel_spread"`

	// Tier is the resolution bucket selected from Combined.
	Tier SizeTier `json:"-"`
	// TierName is the tier in string form for serialized reports.
	TierName string `json:"tier"`

	// RecommendedSize is the suggested longest grid side in stitches,
	// with MinSize and MaxSize bounding a sensible range around it.
	RecommendedSize int `json:"recommended_size"`
	MinSize         int `json:"min_size"`
	MaxSize         int `json:"max_size"`

	// SourceWidth and SourceHeight echo the analyzed image's dimensions.
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
}

// Tunables for the complexity score. Edge density is weighted higher than
// color spread: it is the better predictor of how much grid resolution a
// motif needs.
const (
	colorWeight = 0.4
	edgeWeight  = 0.6

	tierHighThreshold   = 0.65
	tierMediumThreshold = 0.35

	// Gradient magnitudes above this (on 0..1 luminance) count as edges.
	edgeThreshold = 30.0 / 255.0
	// Raw edge fractions saturate the metric at this value.
	edgeDensityCeiling = 0.2

	// Analysis runs on bounded downscales so cost stays independent of the
	// source resolution.
	edgeAnalysisSize  = 400
	colorAnalysisSize = 200

	// Recommendation clamp and rounding.
	minRecommended = 100
	maxRecommended = 400
	sizeRound      = 10
	rangeBelow     = 50
	rangeAbove     = 100
	minSelectable  = 80
	maxSelectable  = 500
)

// Analyze scores an image's complexity and recommends a grid size.
//
// The result is deterministic and side-effect free; a fully uniform image
// scores 0 on every metric and lands in TierLow. An image with no pixels
// fails with ErrImageDecode.
func Analyze(img image.Image) (*Complexity, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}

	edgeDensity := edgeDensityOf(imaging.Fit(img, edgeAnalysisSize, edgeAnalysisSize, imaging.Lanczos))
	colorSmall := imaging.Fit(img, colorAnalysisSize, colorAnalysisSize, imaging.Lanczos)
	colorVariance := colorVarianceOf(colorSmall)
	spread := channelSpreadOf(colorSmall)

	combined := colorWeight*colorVariance + edgeWeight*edgeDensity

	tier := TierLow
	switch {
	case combined > tierHighThreshold:
		tier = TierHigh
	case combined > tierMediumThreshold:
		tier = TierMedium
	}

	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	recommended := int(float64(maxDim) * tier.dimensionFraction())
	recommended = clamp(recommended, minRecommended, maxRecommended)
	recommended = ((recommended + sizeRound/2) / sizeRound) * sizeRound

	return &Complexity{
		EdgeDensity:     edgeDensity,
		ColorVariance:   colorVariance,
		Combined:        combined,
		ChannelSpread:   spread,
		Tier:            tier,
		TierName:        tier.String(),
		RecommendedSize: recommended,
		MinSize:         maxInt(minSelectable, recommended-rangeBelow),
		MaxSize:         minInt(maxSelectable, recommended+rangeAbove),
		SourceWidth:     width,
		SourceHeight:    height,
	}, nil
}

// edgeDensityOf computes the fraction of pixels whose Sobel gradient
// magnitude exceeds edgeThreshold, after a 5x5 Gaussian blur to suppress
// sensor noise. The fraction is normalized against edgeDensityCeiling.
func edgeDensityOf(img image.Image) float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// ITU-R BT.601 luminance on 0..1.
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}

	blurred := gaussianBlur(gray, width, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	edgePixels := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * sobelX[ky+1][kx+1]
					gy += blurred[py][px] * sobelY[ky+1][kx+1]
				}
			}
			if math.Sqrt(gx*gx+gy*gy) > edgeThreshold {
				edgePixels++
			}
		}
	}

	density := float64(edgePixels) / float64(width*height)
	return math.Min(density/edgeDensityCeiling, 1.0)
}

// gaussianBlur applies a 5x5 Gaussian kernel (sigma ~1.4) with replicated
// borders.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// colorVarianceOf counts distinct colors after 4-bit-per-channel
// quantization and maps the count onto [0,1]: under 100 colors is simple,
// 100-500 is medium, beyond that complex.
func colorVarianceOf(img image.Image) float64 {
	bounds := img.Bounds()
	seen := make(map[uint32]struct{})
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := (r >> 12 << 8) | (g >> 12 << 4) | (b >> 12)
			seen[key] = struct{}{}
		}
	}

	count := float64(len(seen))
	switch {
	case count <= 1:
		// A single-color image has zero spread, not "one color's worth".
		return 0
	case count < 100:
		return count / 300
	case count < 500:
		return 0.33 + (count-100)/1000
	default:
		return math.Min(0.73+(count-500)/2000, 1.0)
	}
}

// channelSpreadOf reports the mean per-channel standard deviation,
// normalized so a full-swing channel maps to 1.
func channelSpreadOf(img image.Image) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n < 2 {
		// StdDev needs at least two samples.
		return 0
	}

	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rs = append(rs, float64(r>>8))
			gs = append(gs, float64(g>>8))
			bs = append(bs, float64(b>>8))
		}
	}

	spread := (stat.StdDev(rs, nil) + stat.StdDev(gs, nil) + stat.StdDev(bs, nil)) / 3.0
	return math.Min(spread/128.0, 1.0)
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
