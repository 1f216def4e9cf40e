// Package palette defines the fixed catalogue of yarn reference colors and
// the perceptual matching used to map arbitrary image colors onto it.
//
// The catalogue is built once at process start and never mutated, so it is
// safe to share across any number of concurrent pattern builds. Matching is
// done by Euclidean distance in CIE Lab space rather than raw RGB, so that
// "closest" tracks human-perceived similarity: a desaturated orange should
// land on beige, not on grey, even when the RGB distances say otherwise.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ID identifies one catalogue entry. IDs are stable: they are the index of
// the entry in the catalogue and never change between runs.
type ID int

// Color is one yarn reference color.
//
// R, G, B describe the representative swatch value; the Lab coordinate used
// for matching is precomputed when the catalogue is built.
type Color struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`

	lab [3]float64
}

// RGBA returns the swatch value as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the swatch value in "#RRGGBB" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lab returns the precomputed CIE Lab coordinate of the swatch value.
func (c Color) Lab() (l, a, b float64) {
	return c.lab[0], c.lab[1], c.lab[2]
}

// entry is the raw catalogue row before Lab precomputation.
type entry struct {
	name    string
	r, g, b uint8
}

// Curated yarn colors based on common DMC/Bernat/Red Heart lines.
// Ordering matters: it fixes the IDs and the tie-break in Nearest.
var catalogueData = []entry{
	// Neutrals
	{"Black", 0, 0, 0},
	{"White", 255, 255, 255},
	{"Dark Grey", 80, 80, 80},
	{"Grey", 128, 128, 128},
	{"Light Grey", 192, 192, 192},
	{"Cream", 255, 253, 208},
	{"Beige", 245, 222, 179},

	// Skin tones
	{"Skin", 255, 224, 189},
	{"Light Skin", 255, 239, 219},
	{"Dark Skin", 210, 180, 140},

	// Reds and pinks
	{"Dark Red", 128, 0, 0},
	{"Red", 220, 20, 60},
	{"Dark Pink", 199, 21, 133},
	{"Pink", 255, 192, 203},
	{"Light Pink", 255, 228, 225},

	// Oranges and browns
	{"Dark Brown", 101, 67, 33},
	{"Brown", 165, 42, 42},
	{"Rust", 183, 65, 14},
	{"Orange", 255, 140, 0},
	{"Peach", 255, 218, 185},
	{"Camel", 210, 180, 140},

	// Yellows and golds
	{"Dark Gold", 184, 134, 11},
	{"Gold", 255, 215, 0},
	{"Yellow", 255, 255, 0},

	// Greens
	{"Dark Green", 0, 100, 0},
	{"Green", 0, 180, 0},
	{"Olive", 128, 128, 0},
	{"Light Green", 144, 238, 144},
	{"Mint", 152, 255, 152},

	// Blues
	{"Navy", 0, 0, 128},
	{"Dark Blue", 0, 0, 205},
	{"Blue", 0, 0, 255},
	{"Sky Blue", 135, 206, 235},
	{"Turquoise", 64, 224, 208},

	// Purples
	{"Dark Purple", 75, 0, 130},
	{"Purple", 128, 0, 128},
	{"Lilac", 200, 162, 200},
	{"Lavender", 230, 230, 250},
}

// catalogue is the shared, read-only set of yarn colors, built once at init.
var catalogue []Color

func init() {
	catalogue = make([]Color, len(catalogueData))
	for i, e := range catalogueData {
		col, _ := colorful.MakeColor(color.RGBA{R: e.r, G: e.g, B: e.b, A: 255})
		l, a, b := col.Lab()
		catalogue[i] = Color{
			ID:   ID(i),
			Name: e.name,
			R:    e.r,
			G:    e.g,
			B:    e.b,
			lab:  [3]float64{l, a, b},
		}
	}
}

// All returns the full catalogue in ID order.
//
// The returned slice is shared. Callers must treat it as read-only.
func All() []Color {
	return catalogue
}

// Len returns the number of catalogue entries.
func Len() int {
	return len(catalogue)
}

// Lookup returns the catalogue entry for id.
func Lookup(id ID) (Color, bool) {
	if id < 0 || int(id) >= len(catalogue) {
		return Color{}, false
	}
	return catalogue[id], true
}

// labOf converts an arbitrary color to CIE Lab.
func labOf(c color.Color) (l, a, b float64) {
	col, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent input carries no chroma; treat as black.
		return colorful.Color{}.Lab()
	}
	return col.Lab()
}

// Distance returns the perceptual (Lab Euclidean) distance between two
// catalogue entries. It is symmetric and zero for identical entries.
func Distance(a, b ID) float64 {
	ca, okA := Lookup(a)
	cb, okB := Lookup(b)
	if !okA || !okB {
		return 0
	}
	return labDistance(ca.lab, cb.lab)
}

func labDistance(a, b [3]float64) float64 {
	dl := a[0] - b[0]
	da := a[1] - b[1]
	db := a[2] - b[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Nearest returns the catalogue entry perceptually closest to c.
// Equal distances resolve to the lowest ID.
func Nearest(c color.Color) Color {
	l, a, b := labOf(c)
	return nearestLab([3]float64{l, a, b}, nil)
}

// NearestOf returns the entry closest to c among the given IDs only.
// Equal distances resolve to the lowest ID. An empty ID set returns false;
// unknown IDs in the set are skipped.
func NearestOf(c color.Color, ids []ID) (Color, bool) {
	if len(ids) == 0 {
		return Color{}, false
	}
	l, a, b := labOf(c)
	return nearestLab([3]float64{l, a, b}, ids), true
}

// nearestLab scans either the whole catalogue (ids == nil) or a subset.
// Scanning in ascending ID order makes the strict "<" comparison resolve
// ties toward the lowest ID.
func nearestLab(lab [3]float64, ids []ID) Color {
	best := catalogue[0]
	bestDist := -1.0

	consider := func(c Color) {
		d := labDistance(lab, c.lab)
		if bestDist < 0 || d < bestDist {
			best = c
			bestDist = d
		}
	}

	if ids == nil {
		for _, c := range catalogue {
			consider(c)
		}
		return best
	}

	ordered := make([]ID, len(ids))
	copy(ordered, ids)
	sortIDs(ordered)
	for _, id := range ordered {
		if c, ok := Lookup(id); ok {
			consider(c)
		}
	}
	return best
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
