package quilt

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"
)

// paletteSampleBudget bounds the number of pixels fed to the quantizer on
// the voronoi path, where no grid downsampling precedes it.
const paletteSampleBudget = 50000

// Processor runs the image-to-tessellation pipeline. One call to Process
// reads one source image and the settings and produces one immutable
// Design; the processor holds no state across calls, so distinct
// Processor values may run concurrently.
type Processor struct {
	Settings
}

// Process converts the source image into a quilt Design, dispatching on
// the configured shape. All randomized stages draw from a single source
// seeded with Settings.RandSeed, so a fixed seed reproduces the design
// byte for byte.
func (p *Processor) Process(src image.Image) (*Design, error) {
	if src == nil {
		return nil, fmt.Errorf("image: source is nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	img := ImgToNRGBA(src)
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return nil, fmt.Errorf("image: empty %dx%d source", img.Bounds().Dx(), img.Bounds().Dy())
	}

	seed := p.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	if p.Shape == ShapeVoronoi {
		return p.processVoronoi(img, rnd)
	}
	return p.processGrid(img, rnd)
}

func (p *Processor) processGrid(img *image.NRGBA, rnd *rand.Rand) (*Design, error) {
	g, err := tessellateGrid(img, p.GridWidth)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	assignment, palette := Quantize(g.colors, p.NumColors, rnd)

	cellPx := float64(g.cellPx)
	cells := make([]Cell, 0, len(g.colors))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cells = append(cells, Cell{
				ID:    gridCellID(row, col),
				Shape: p.Shape,
				Rect: Rect{
					X: float64(col) * cellPx,
					Y: float64(row) * cellPx,
					W: cellPx,
					H: cellPx,
				},
				Color: assignment[g.colors[row*g.cols+col]],
				Stitch: StitchMeta{
					Edges:           shapeEdges(p.Shape),
					SizeMm:          p.CellSizeMm,
					SeamAllowanceMm: p.SeamAllowanceMm,
					Neighbors:       g.neighborIDs(row, col),
					Row:             row,
					Col:             col,
				},
			})
		}
	}

	widthMm := float64(g.cols) * p.CellSizeMm
	heightMm := float64(g.rows) * p.CellSizeMm
	return &Design{
		Shape:       p.Shape,
		PixelWidth:  g.cols * g.cellPx,
		PixelHeight: g.rows * g.cellPx,
		Rows:        g.rows,
		Cols:        g.cols,
		CellSizePx:  g.cellPx,
		Palette:     palette,
		Cells:       cells,
		Fabric:      newFabricSummary(cells, widthMm, heightMm, p.Settings),
	}, nil
}

func (p *Processor) processVoronoi(img *image.NRGBA, rnd *rand.Rand) (*Design, error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	_, palette := Quantize(samplePixels(img), p.NumColors, rnd)

	var edges *EdgeField
	if p.EdgeWeighted {
		edges = DetectEdges(img)
	}
	seeds := GenerateSeeds(width, height, p.NumSeeds, edges, p.EdgeWeighted, rnd)
	seeds = Relax(seeds, width, height, p.RelaxIterations)
	polygons := BuildVoronoi(seeds, float64(width), float64(height))

	scale := voronoiScale(width, height, p.NumSeeds, p.CellSizeMm)
	cells := make([]Cell, 0, len(polygons))
	for i, poly := range polygons {
		if poly == nil {
			// Degenerate seed, skipped by the dual construction.
			continue
		}
		cells = append(cells, Cell{
			ID:      fmt.Sprintf("v%d", i),
			Shape:   ShapeVoronoi,
			Polygon: poly,
			Color:   palette.Nearest(polygonColor(img, poly)),
			Stitch: StitchMeta{
				Edges:           len(poly),
				SizeMm:          math.Sqrt(polygonArea(poly)) * scale,
				SeamAllowanceMm: p.SeamAllowanceMm,
			},
		})
	}

	widthMm := float64(width) * scale
	heightMm := float64(height) * scale
	return &Design{
		Shape:       ShapeVoronoi,
		PixelWidth:  width,
		PixelHeight: height,
		BorderWidth: p.BorderWidth,
		Palette:     palette,
		Cells:       cells,
		Fabric:      newFabricSummary(cells, widthMm, heightMm, p.Settings),
	}, nil
}

// samplePixels grid-samples the image with a stride keeping the total
// sample count near the palette budget.
func samplePixels(img *image.NRGBA) []Color {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	stride := Max(1, int(math.Sqrt(float64(width*height)/paletteSampleBudget)))

	colors := make([]Color, 0, (width/stride+1)*(height/stride+1))
	for y := 0; y < height; y += stride {
		for x := 0; x < width; x += stride {
			i := img.PixOffset(x, y)
			colors = append(colors, Color{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]})
		}
	}
	return colors
}

// shapeEdges returns the stitched edge count of one grid cell primitive.
func shapeEdges(shape ShapeType) int {
	switch shape {
	case ShapeTriangle:
		return 3
	case ShapeHexagon:
		return 6
	default:
		return 4
	}
}
