package pattern

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/pattern-tools/internal/palette"
)

func TestBuildGrid_SizeErrors(t *testing.T) {
	img := createInMemoryImage(20, 20, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -1, 10},
		{"width too large", MaxGridDim + 1, 10},
		{"height too large", 10, MaxGridDim + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrid(img, tt.width, tt.height, nil)
			if err == nil {
				t.Fatal("BuildGrid should fail")
			}
			if !errors.Is(err, ErrSize) {
				t.Errorf("error = %v, want ErrSize", err)
			}
		})
	}
}

func TestBuildGrid_UniformRedImage(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	img := createInMemoryImage(10, 10, red)

	g, err := BuildGrid(img, 5, 5, nil)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if g.Width != 5 || g.Height != 5 {
		t.Fatalf("grid size %dx%d, want 5x5", g.Width, g.Height)
	}
	if len(g.Cells) != 25 {
		t.Fatalf("got %d cells, want 25", len(g.Cells))
	}

	want := palette.Nearest(red).ID
	for i, id := range g.Cells {
		if id != want {
			t.Errorf("cell %d = %d, want %d (nearest yarn color to red)", i, id, want)
		}
	}
	if len(g.Colors) != 1 || g.Colors[0] != want {
		t.Errorf("color set = %v, want [%d]", g.Colors, want)
	}
}

func TestBuildGrid_CellsWithinColorSet(t *testing.T) {
	img := createNoisyImage(80, 60)

	g, err := BuildGrid(img, 20, 15, nil)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	for i, id := range g.Cells {
		if !g.HasColor(id) {
			t.Errorf("cell %d holds color %d which is outside the grid's color set %v", i, id, g.Colors)
		}
	}
}

func TestBuildGrid_ExplicitColorSet(t *testing.T) {
	blue := palette.Nearest(color.RGBA{0, 0, 255, 255})
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	// Restricting a red image to blue forces every cell to blue.
	g, err := BuildGrid(img, 4, 4, []palette.ID{blue.ID})
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	for i, id := range g.Cells {
		if id != blue.ID {
			t.Errorf("cell %d = %d, want %d", i, id, blue.ID)
		}
	}
}

func TestBuildGrid_BadColorSets(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	t.Run("empty set", func(t *testing.T) {
		_, err := BuildGrid(img, 4, 4, []palette.ID{})
		if !errors.Is(err, ErrPaletteMismatch) {
			t.Errorf("error = %v, want ErrPaletteMismatch", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := BuildGrid(img, 4, 4, []palette.ID{palette.ID(palette.Len())})
		if !errors.Is(err, ErrPaletteMismatch) {
			t.Errorf("error = %v, want ErrPaletteMismatch", err)
		}
	})
}

func TestBuildGrid_EmptyImage(t *testing.T) {
	_, err := BuildGrid(image.NewRGBA(image.Rect(0, 0, 0, 0)), 5, 5, nil)
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("error = %v, want ErrImageDecode", err)
	}
}

func TestGrid_At(t *testing.T) {
	g := testGrid(t, [][]string{
		{"Red", "Blue"},
		{"Blue", "Red"},
	})

	id, err := g.At(1, 0)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if c, _ := palette.Lookup(id); c.Name != "Blue" {
		t.Errorf("At(1,0) = %s, want Blue", c.Name)
	}

	for _, bad := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := g.At(bad[0], bad[1]); !errors.Is(err, ErrIndex) {
			t.Errorf("At(%d,%d) error = %v, want ErrIndex", bad[0], bad[1], err)
		}
	}
}

func TestGrid_ColorCounts(t *testing.T) {
	g := testGrid(t, [][]string{
		{"Red", "Red", "Blue"},
	})

	counts := g.ColorCounts()
	red := mustColorID(t, "Red")
	blue := mustColorID(t, "Blue")
	if counts[red] != 2 {
		t.Errorf("red count = %d, want 2", counts[red])
	}
	if counts[blue] != 1 {
		t.Errorf("blue count = %d, want 1", counts[blue])
	}
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name               string
		srcW, srcH         int
		longest            int
		wantW, wantH       int
	}{
		{"landscape", 200, 100, 50, 50, 25},
		{"portrait", 100, 200, 50, 25, 50},
		{"square", 128, 128, 40, 40, 40},
		{"extreme ratio clamps short side", 1000, 10, 100, 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitDimensions(image.Rect(0, 0, tt.srcW, tt.srcH), tt.longest)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitDimensions = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}

	if w, h := FitDimensions(image.Rect(0, 0, 0, 0), 100); w != 0 || h != 0 {
		t.Errorf("empty source: got %dx%d, want 0x0", w, h)
	}
}

// testGrid builds a grid from yarn color names, one row per inner slice.
func testGrid(t *testing.T, rows [][]string) *Grid {
	t.Helper()
	if len(rows) == 0 || len(rows[0]) == 0 {
		t.Fatal("testGrid requires at least one cell")
	}

	height := len(rows)
	width := len(rows[0])
	cells := make([]palette.ID, 0, width*height)
	colorSet := make(map[palette.ID]bool)
	var colors []palette.ID

	for _, row := range rows {
		if len(row) != width {
			t.Fatal("testGrid rows must have equal length")
		}
		for _, name := range row {
			id := mustColorID(t, name)
			cells = append(cells, id)
			if !colorSet[id] {
				colorSet[id] = true
				colors = append(colors, id)
			}
		}
	}

	return &Grid{Width: width, Height: height, Cells: cells, Colors: colors}
}

func mustColorID(t *testing.T, name string) palette.ID {
	t.Helper()
	for _, c := range palette.All() {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("yarn catalogue is missing %q", name)
	return 0
}
