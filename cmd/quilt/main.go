package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fabricweave/quilt"
	"github.com/fabricweave/quilt/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	// Flags
	source      = flag.String("in", "", "Source image (file, directory or http(s) URL)")
	destination = flag.String("out", "", "Destination SVG file (or directory when the source is a directory)")
	preview     = flag.String("preview", "", "Optional PNG preview output")
	shape       = flag.String("shape", "pixel", "Cell shape: pixel, triangle, hexagon or voronoi")
	gridWidth   = flag.Int("grid", 40, "Number of grid columns")
	numColors   = flag.Int("colors", 6, "Palette size")
	cellMm      = flag.Float64("cellmm", 25, "Finished cell size in millimeters")
	seamMm      = flag.Float64("seammm", 6, "Seam allowance in millimeters")
	numSeeds    = flag.Int("seeds", 150, "Voronoi seed count")
	relaxIter   = flag.Int("relax", 2, "Lloyd relaxation iterations")
	edgeBias    = flag.Bool("edges", false, "Bias voronoi seeds toward detected edges")
	borderWidth = flag.Float64("border", 1, "Voronoi cell stroke width")
	randSeed    = flag.Int64("seed", 0, "Random seed (0 uses the current time)")
)

var log = logrus.New()

// baseImageProvider is the boundary to whatever supplies the base image:
// the local filesystem, or an external generative-image service reachable
// over HTTP. The pipeline itself never performs I/O.
type baseImageProvider interface {
	Fetch(src string) (image.Image, error)
}

type fileProvider struct{}

func (fileProvider) Fetch(src string) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open source file: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", src, err)
	}
	return img, nil
}

type httpProvider struct{}

func (httpProvider) Fetch(src string) (image.Image, error) {
	tmp, err := utils.DownloadImage(src)
	if err != nil {
		return nil, err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()
	img, _, err := image.Decode(tmp)
	if err != nil {
		return nil, fmt.Errorf("unable to decode downloaded image: %w", err)
	}
	return img, nil
}

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: quilt -in input.jpg -out pattern.svg")
	}

	settings := quilt.Settings{
		Shape:           quilt.ShapeType(*shape),
		GridWidth:       *gridWidth,
		NumColors:       *numColors,
		CellSizeMm:      *cellMm,
		SeamAllowanceMm: *seamMm,
		NumSeeds:        *numSeeds,
		RelaxIterations: *relaxIter,
		EdgeWeighted:    *edgeBias,
		BorderWidth:     *borderWidth,
		RandSeed:        *randSeed,
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	toProcess, err := collectInputs(*source, *destination)
	if err != nil {
		log.Fatalf("Unable to read source: %v", err)
	}

	for in, out := range toProcess {
		if err := processOne(in, out, settings); err != nil {
			log.Errorf("Error converting image %s: %v", in, err)
		}
	}
}

// collectInputs maps each source image to its output path. A directory
// source pairs every supported image inside it with a same-named .svg
// file in the destination directory.
func collectInputs(src, dst string) (map[string]string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return map[string]string{src: dst}, nil
	}

	fs, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !fs.Mode().IsDir() {
		return map[string]string{src: dst}, nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}
	if ds, err := os.Stat(dst); err != nil || !ds.Mode().IsDir() {
		return nil, fmt.Errorf("destination %s must be a directory when the source is one", dst)
	}

	toProcess := make(map[string]string)
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		toProcess[filepath.Join(src, e.Name())] = filepath.Join(dst, name+".svg")
	}
	return toProcess, nil
}

func processOne(in, out string, settings quilt.Settings) error {
	var provider baseImageProvider = fileProvider{}
	if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
		provider = httpProvider{}
	}

	img, err := provider.Fetch(in)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	s := utils.NewSpinner()
	if interactive {
		s.Start("Generating quilt pattern...")
	}

	start := time.Now()
	p := &quilt.Processor{Settings: settings}
	design, err := p.Process(img)
	if interactive {
		s.Stop()
	}
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()
	if err := quilt.SerializeSVG(design, f); err != nil {
		return err
	}

	if *preview != "" {
		pf, err := os.Create(*preview)
		if err != nil {
			return fmt.Errorf("unable to create preview file: %w", err)
		}
		defer pf.Close()
		if err := png.Encode(pf, quilt.RenderPreview(design, settings.BorderWidth)); err != nil {
			return fmt.Errorf("unable to encode preview: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"pieces":  design.Fabric.PieceCount,
		"palette": len(design.Palette),
		"size":    fmt.Sprintf("%.0fx%.0fmm", design.Fabric.WidthMm, design.Fabric.HeightMm),
		"took":    utils.FormatTime(time.Since(start)),
	}).Infof("Saved %s", filepath.Base(out))

	printFabricList(design)
	return nil
}

// printFabricList writes the per-color piece counts, the shopping list
// for the quilt.
func printFabricList(d *quilt.Design) {
	hexes := make([]string, 0, len(d.Fabric.ColorCounts))
	for hex := range d.Fabric.ColorCounts {
		hexes = append(hexes, hex)
	}
	sort.Strings(hexes)
	for _, hex := range hexes {
		fmt.Printf("  %s × %d pieces\n", hex, d.Fabric.ColorCounts[hex])
	}
}
