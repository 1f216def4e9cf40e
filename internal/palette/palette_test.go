package palette

import (
	"image/color"
	"testing"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup(0)
	if !ok {
		t.Fatal("Lookup(0) should succeed")
	}
	if c.Name != "Black" || c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("entry 0: got %s %s, want Black #000000", c.Name, c.Hex())
	}

	if _, ok := Lookup(ID(Len())); ok {
		t.Error("Lookup past the catalogue end should fail")
	}
	if _, ok := Lookup(-1); ok {
		t.Error("Lookup(-1) should fail")
	}
}

func TestAll_StableIDs(t *testing.T) {
	for i, c := range All() {
		if int(c.ID) != i {
			t.Errorf("entry %d has ID %d; IDs must equal catalogue position", i, c.ID)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			dab := Distance(a.ID, b.ID)
			dba := Distance(b.ID, a.ID)
			if dab != dba {
				t.Fatalf("Distance(%d,%d)=%f != Distance(%d,%d)=%f",
					a.ID, b.ID, dab, b.ID, a.ID, dba)
			}
		}
		if d := Distance(a.ID, a.ID); d != 0 {
			t.Errorf("Distance(%d,%d) = %f, want 0", a.ID, a.ID, d)
		}
	}
}

func TestNearest_KnownColors(t *testing.T) {
	tests := []struct {
		name     string
		color    color.RGBA
		wantName string
	}{
		{"pure black", color.RGBA{0, 0, 0, 255}, "Black"},
		{"pure white", color.RGBA{255, 255, 255, 255}, "White"},
		{"crimson", color.RGBA{220, 20, 60, 255}, "Red"},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "Blue"},
		{"mid grey", color.RGBA{128, 128, 128, 255}, "Grey"},
		{"gold", color.RGBA{255, 215, 0, 255}, "Gold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Nearest(tt.color)
			if got.Name != tt.wantName {
				t.Errorf("Nearest(%v) = %s, want %s", tt.color, got.Name, tt.wantName)
			}
		})
	}
}

func TestNearest_ExactSwatchRoundTrips(t *testing.T) {
	// A catalogue swatch value must match itself, except where two entries
	// share an RGB value (Dark Skin and Camel), which must resolve to the
	// lower ID.
	for _, c := range All() {
		got := Nearest(c.RGBA())
		if got.ID == c.ID {
			continue
		}
		if got.RGBA() != c.RGBA() {
			t.Errorf("Nearest(%s %s) = %s, want a swatch with identical RGB", c.Name, c.Hex(), got.Name)
			continue
		}
		if got.ID > c.ID {
			t.Errorf("tie between %s (%d) and %s (%d) resolved to the higher ID",
				got.Name, got.ID, c.Name, c.ID)
		}
	}
}

func TestNearestOf(t *testing.T) {
	red := mustFind(t, "Red")
	navy := mustFind(t, "Navy")

	got, ok := NearestOf(color.RGBA{200, 30, 30, 255}, []ID{navy.ID, red.ID})
	if !ok {
		t.Fatal("NearestOf with a valid subset should succeed")
	}
	if got.ID != red.ID {
		t.Errorf("reddish pixel matched %s, want Red", got.Name)
	}

	// Restricting to a single far-away color still returns it.
	got, ok = NearestOf(color.RGBA{200, 30, 30, 255}, []ID{navy.ID})
	if !ok || got.ID != navy.ID {
		t.Errorf("single-entry subset: got %v ok=%v, want Navy", got.Name, ok)
	}

	if _, ok := NearestOf(color.RGBA{0, 0, 0, 255}, nil); ok {
		t.Error("NearestOf with an empty subset should report !ok")
	}
}

func mustFind(t *testing.T, name string) Color {
	t.Helper()
	for _, c := range All() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("catalogue is missing %q", name)
	return Color{}
}
