package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/ironsheep/pattern-tools/internal/palette"
	"github.com/ironsheep/pattern-tools/internal/pattern"
)

// WriteInstructionsHTML writes a self-contained HTML document with the
// colored pattern chart and the ordered row-by-row instructions. The chart
// reads top to bottom; each listed row names its reading direction and
// runs.
func WriteInstructionsHTML(w io.Writer, g *pattern.Grid, steps []pattern.Step) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	bw.WriteString("<title>Stitch Pattern</title>\n")
	bw.WriteString("<style type=\"text/css\">\n")
	bw.WriteString("table.chart { border-spacing: 0; border: 2px solid black }\n")
	bw.WriteString("table.chart td { width: 12px; height: 12px; padding: 0 }\n")
	bw.WriteString("ol.steps li { margin-bottom: 4px }\n")
	bw.WriteString(".swatch { display: inline-block; width: 12px; height: 12px; border: 1px solid black }\n")
	bw.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(bw, "<h1>Pattern %d&times;%d</h1>\n", g.Width, g.Height)

	// Color key.
	bw.WriteString("<h2>Colors</h2>\n<ul>\n")
	counts := g.ColorCounts()
	for _, e := range swatchEntries(g) {
		fmt.Fprintf(bw, "<li><span class=\"swatch\" style=\"background:%s\"></span> %s &mdash; %d stitches</li>\n",
			e.color.Hex(), html.EscapeString(e.color.Name), counts[e.color.ID])
	}
	bw.WriteString("</ul>\n")

	// Chart.
	bw.WriteString("<h2>Chart</h2>\n<table class=\"chart\">\n")
	for row := 0; row < g.Height; row++ {
		bw.WriteString("<tr>")
		for col := 0; col < g.Width; col++ {
			c, _ := palette.Lookup(g.Cells[row*g.Width+col])
			fmt.Fprintf(bw, "<td style=\"background:%s\"></td>", c.Hex())
		}
		bw.WriteString("</tr>\n")
	}
	bw.WriteString("</table>\n")

	// Row instructions.
	bw.WriteString("<h2>Rows</h2>\n<ol class=\"steps\">\n")
	for _, step := range steps {
		fmt.Fprintf(bw, "<li>%s: ", html.EscapeString(step.Direction.String()))
		for i, run := range step.Runs {
			if i > 0 {
				bw.WriteString(", ")
			}
			name := fmt.Sprintf("color %d", run.Color)
			if c, ok := palette.Lookup(run.Color); ok {
				name = c.Name
			}
			fmt.Fprintf(bw, "%d &times; %s", run.Count, html.EscapeString(name))
		}
		bw.WriteString("</li>\n")
	}
	bw.WriteString("</ol>\n</body>\n</html>\n")

	return bw.Flush()
}

// WriteInstructionsFile renders the HTML instructions to a file.
func WriteInstructionsFile(path string, g *pattern.Grid, steps []pattern.Step) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating instruction file: %w", err)
	}
	defer f.Close()

	if err := WriteInstructionsHTML(f, g, steps); err != nil {
		return fmt.Errorf("writing instruction file: %w", err)
	}
	return nil
}
