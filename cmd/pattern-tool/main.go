package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/pattern-tools/internal/imaging"
	"github.com/ironsheep/pattern-tools/internal/pattern"
	"github.com/ironsheep/pattern-tools/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("pattern-tool %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage()
		return
	case "analyze":
		runAnalyze(os.Args[2:])
	case "generate":
		runGenerate(os.Args[2:])
	case "step":
		runStep(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("pattern-tool - convert a photo into a stitchable pattern")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pattern-tool analyze <image>")
	fmt.Println("  pattern-tool generate <image> [-size N] [-colors K] [-out dir]")
	fmt.Println("  pattern-tool step <image> -size N -row R [-out dir]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze    Score image complexity and recommend a grid size")
	fmt.Println("  generate   Build the pattern grid, chart, palette sheet and instructions")
	fmt.Println("  step       Render the composite guide for one pattern row")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PATTERN_TOOL_LOG_LEVEL=debug    Enable debug logging")
}

func debugf(format string, args ...interface{}) {
	if os.Getenv("PATTERN_TOOL_LOG_LEVEL") == "debug" {
		log.Printf(format, args...)
	}
}

// loadImage loads one source photo and logs its metadata.
func loadImage(cache *imaging.ImageCache, path string) image.Image {
	info, err := imaging.LoadImageInfo(cache, path)
	if err != nil {
		log.Fatalf("failed to load %s: %v", path, err)
	}
	debugf("loaded %s: %dx%d, %d bytes", path, info.Width, info.Height, info.FileSizeBytes)

	img, err := cache.Load(path)
	if err != nil {
		log.Fatalf("failed to load %s: %v", path, err)
	}
	return img
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("analyze requires exactly one image path")
	}

	img := loadImage(imaging.NewImageCache(), fs.Arg(0))
	result, err := pattern.Analyze(img)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}

// manifest is the serialized pattern description written next to the
// rendered artifacts.
type manifest struct {
	Source   string         `json:"source"`
	Grid     *pattern.Grid  `json:"grid"`
	Steps    []pattern.Step `json:"steps"`
	Stitches int            `json:"total_stitches"`
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	size := fs.Int("size", 0, "longest grid side in stitches (0 = recommend from complexity)")
	colors := fs.Int("colors", pattern.DefaultMaxColors, "maximum yarn colors")
	outDir := fs.String("out", ".", "output directory")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("generate requires exactly one image path")
	}

	path := fs.Arg(0)
	img := loadImage(imaging.NewImageCache(), path)

	longest := *size
	if longest == 0 {
		analysis, err := pattern.Analyze(img)
		if err != nil {
			log.Fatalf("analysis failed: %v", err)
		}
		longest = analysis.RecommendedSize
		debugf("recommended size %d (%s detail)", longest, analysis.TierName)
	}

	width, height := pattern.FitDimensions(img.Bounds(), longest)
	suggested, err := pattern.SuggestColors(img, *colors)
	if err != nil {
		log.Fatalf("color suggestion failed: %v", err)
	}
	debugf("suggested %d colors", len(suggested))

	g, err := pattern.BuildGrid(img, width, height, suggested)
	if err != nil {
		log.Fatalf("grid build failed: %v", err)
	}
	steps := pattern.GenerateSteps(g)

	writePNG(filepath.Join(*outDir, "grid.png"), render.GridImage(g))
	writePNG(filepath.Join(*outDir, "palette.png"), render.SwatchImage(g))

	if err := render.WriteInstructionsFile(filepath.Join(*outDir, "instructions.html"), g, steps); err != nil {
		log.Fatalf("failed to write instructions: %v", err)
	}

	m := manifest{
		Source:   path,
		Grid:     g,
		Steps:    steps,
		Stitches: g.Width * g.Height,
	}
	f, err := os.Create(filepath.Join(*outDir, "pattern.json"))
	if err != nil {
		log.Fatalf("failed to create manifest: %v", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		log.Fatalf("failed to write manifest: %v", err)
	}

	fmt.Printf("pattern %dx%d, %d colors, %d rows -> %s\n",
		g.Width, g.Height, len(g.Colors), len(steps), *outDir)
}

func runStep(args []string) {
	fs := flag.NewFlagSet("step", flag.ExitOnError)
	size := fs.Int("size", 0, "longest grid side in stitches")
	row := fs.Int("row", 0, "pattern row to render (0-based)")
	outDir := fs.String("out", ".", "output directory")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("step requires exactly one image path")
	}
	if *size <= 0 {
		log.Fatal("step requires -size")
	}

	img := loadImage(imaging.NewImageCache(), fs.Arg(0))
	width, height := pattern.FitDimensions(img.Bounds(), *size)

	g, err := pattern.BuildGrid(img, width, height, nil)
	if err != nil {
		log.Fatalf("grid build failed: %v", err)
	}

	composite, err := render.Composite(img, g, *row, render.DefaultCompositeSpec())
	if err != nil {
		log.Fatalf("composite failed: %v", err)
	}

	out := filepath.Join(*outDir, fmt.Sprintf("step-row-%03d.png", *row))
	writePNG(out, composite)
	fmt.Printf("row %d of %d -> %s\n", *row+1, g.Height, out)
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("failed to encode %s: %v", path, err)
	}
}
