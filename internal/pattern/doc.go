// Package pattern converts a raster photo into a stitchable color grid and
// row-by-row construction instructions.
//
// The pipeline is a chain of pure functions over immutable inputs:
//
//	Analyze      image -> complexity score and recommended grid size
//	SuggestColors image -> ranked yarn colors from the fixed catalogue
//	BuildGrid    image + dimensions + colors -> Grid (one yarn color per cell)
//	GenerateSteps Grid -> one Step per row, boustrophedon reading order
//	ApplyColorEdits Grid + edits -> new Grid plus the rows needing new Steps
//
// No function retains references to its inputs across calls; the only shared
// state is the read-only yarn catalogue in the palette package. Every
// operation is deterministic: the same inputs always produce byte-identical
// outputs, which the interactive callers rely on when regenerating artifacts
// after an edit.
//
// # Error Handling
//
// Failures are sentinel error values (ErrImageDecode, ErrSize, ErrIndex,
// ErrPaletteMismatch) wrapped with context; match them with errors.Is.
// A fully uniform image is not an error: it analyzes to a complexity of 0
// and quantizes to a single color.
package pattern
