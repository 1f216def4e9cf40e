package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/ironsheep/pattern-tools/internal/palette"
	"github.com/ironsheep/pattern-tools/internal/pattern"
)

const (
	swatchTileWidth  = 300
	swatchTileHeight = 80
	swatchBoxSize    = 40
	swatchBoxInset   = 10
)

// swatchEntry pairs a catalogue color with its stitch count in a grid.
type swatchEntry struct {
	color palette.Color
	count int
}

// swatchEntries lists the grid's color set ordered by descending stitch
// count, then by ID for equal counts. Suggested colors that no cell uses are
// kept with a zero count so the sheet always covers the full editable set.
func swatchEntries(g *pattern.Grid) []swatchEntry {
	counts := g.ColorCounts()
	entries := make([]swatchEntry, 0, len(counts))
	for id, count := range counts {
		c, ok := palette.Lookup(id)
		if !ok {
			continue
		}
		entries = append(entries, swatchEntry{color: c, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].color.ID < entries[j].color.ID
	})
	return entries
}

// SwatchImage renders the palette sheet for a grid: one tile per color with
// its swatch, name and stitch count, laid out near-square. Every color a
// cell may hold appears on the sheet.
func SwatchImage(g *pattern.Grid) *image.RGBA {
	entries := swatchEntries(g)

	rows := int(math.Ceil(math.Sqrt(float64(len(entries)))))
	if rows < 1 {
		rows = 1
	}
	cols := (len(entries) + rows - 1) / rows
	if cols < 1 {
		cols = 1
	}

	width := cols * swatchTileWidth
	height := rows * swatchTileHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, 0, 0, width, height, color.RGBA{255, 255, 255, 255})

	black := color.RGBA{0, 0, 0, 255}
	for i, e := range entries {
		baseX := (i % cols) * swatchTileWidth
		baseY := (i / cols) * swatchTileHeight

		boxX := baseX + swatchBoxInset
		boxY := baseY + swatchBoxInset
		fillRect(img, boxX, boxY, boxX+swatchBoxSize, boxY+swatchBoxSize, e.color.RGBA())
		outlineRect(img, boxX, boxY, boxX+swatchBoxSize, boxY+swatchBoxSize, 2, black)

		textX := baseX + swatchBoxInset + swatchBoxSize + 10
		drawString(img, textX, baseY+28, e.color.Name, black)
		drawString(img, textX, baseY+46, fmt.Sprintf("stitches: %d", e.count), color.RGBA{60, 60, 60, 255})
	}

	return img
}
