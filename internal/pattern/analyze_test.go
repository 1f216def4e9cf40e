package pattern

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a uniform in-memory test image.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createNoisyImage creates a deterministic high-frequency, many-colored
// image that should score as complex.
func createNoisyImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 53) % 256),
				G: uint8((y * 97) % 256),
				B: uint8(((x + y) * 29) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestAnalyze_UniformImageScoresZero(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{200, 30, 30, 255})

	result, err := Analyze(img)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.EdgeDensity != 0 {
		t.Errorf("EdgeDensity = %f, want 0 for uniform image", result.EdgeDensity)
	}
	if result.ColorVariance != 0 {
		t.Errorf("ColorVariance = %f, want 0 for uniform image", result.ColorVariance)
	}
	if result.Combined != 0 {
		t.Errorf("Combined = %f, want 0 for uniform image", result.Combined)
	}
	if result.Tier != TierLow {
		t.Errorf("Tier = %s, want low", result.Tier)
	}
	if result.ChannelSpread != 0 {
		t.Errorf("ChannelSpread = %f, want 0 for uniform image", result.ChannelSpread)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	img := createNoisyImage(120, 90)

	first, err := Analyze(img)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := Analyze(img)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if *first != *second {
		t.Errorf("Analyze is not deterministic:\n first: %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyze_ComplexImageScoresHigh(t *testing.T) {
	result, err := Analyze(createNoisyImage(200, 200))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Combined <= tierHighThreshold {
		t.Errorf("Combined = %f, want > %f for noisy image", result.Combined, tierHighThreshold)
	}
	if result.Tier != TierHigh {
		t.Errorf("Tier = %s, want high", result.Tier)
	}
	if result.EdgeDensity <= 0 || result.EdgeDensity > 1 {
		t.Errorf("EdgeDensity = %f, want in (0,1]", result.EdgeDensity)
	}
	if result.ColorVariance <= 0 || result.ColorVariance > 1 {
		t.Errorf("ColorVariance = %f, want in (0,1]", result.ColorVariance)
	}
}

func TestAnalyze_Recommendation(t *testing.T) {
	// A small uniform image lands in the low tier; 13% of 100 is well under
	// the floor, so the recommendation clamps to 100.
	result, err := Analyze(createInMemoryImage(100, 80, color.RGBA{10, 10, 200, 255}))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.RecommendedSize != 100 {
		t.Errorf("RecommendedSize = %d, want 100", result.RecommendedSize)
	}
	if result.MinSize != 80 {
		t.Errorf("MinSize = %d, want 80", result.MinSize)
	}
	if result.MaxSize != 200 {
		t.Errorf("MaxSize = %d, want 200", result.MaxSize)
	}
	if result.RecommendedSize%sizeRound != 0 {
		t.Errorf("RecommendedSize = %d, want a multiple of %d", result.RecommendedSize, sizeRound)
	}
	if result.SourceWidth != 100 || result.SourceHeight != 80 {
		t.Errorf("source size %dx%d, want 100x80", result.SourceWidth, result.SourceHeight)
	}
}

func TestAnalyze_EmptyImage(t *testing.T) {
	_, err := Analyze(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err == nil {
		t.Fatal("Analyze of an empty image should fail")
	}
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("error = %v, want ErrImageDecode", err)
	}
}

func TestSizeTier_String(t *testing.T) {
	tests := []struct {
		tier SizeTier
		want string
	}{
		{TierLow, "low"},
		{TierMedium, "medium"},
		{TierHigh, "high"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("%d.String() = %s, want %s", tt.tier, got, tt.want)
		}
	}
}
