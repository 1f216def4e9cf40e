// Package render produces the visual artifacts derived from a pattern grid:
// the cell-block grid visualization, the palette swatch sheet, the per-row
// step composite, and the HTML instruction export.
//
// Every renderer is a pure function of its inputs and produces a new buffer;
// identical inputs yield byte-identical output. Persistence is left to the
// caller.
package render
