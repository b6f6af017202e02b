package quilt

import (
	"fmt"
	"math"
)

// ShapeType selects the tessellation strategy and the primitive emitted
// for each cell.
type ShapeType string

const (
	ShapePixel    ShapeType = "pixel"
	ShapeTriangle ShapeType = "triangle"
	ShapeHexagon  ShapeType = "hexagon"
	ShapeVoronoi  ShapeType = "voronoi"
)

// Documented practical bounds for the voronoi path.
const (
	MinSeeds           = 1
	MaxSeeds           = 500
	MaxRelaxIterations = 10
)

// Settings carries every user-facing option of one pipeline run.
type Settings struct {
	Shape           ShapeType `json:"shapeType"`
	GridWidth       int       `json:"gridWidth"`
	NumColors       int       `json:"numColors"`
	CellSizeMm      float64   `json:"cellSizeMm"`
	SeamAllowanceMm float64   `json:"seamAllowanceMm"`

	// Voronoi path only.
	NumSeeds        int     `json:"numSeeds"`
	RelaxIterations int     `json:"relaxationIterations"`
	EdgeWeighted    bool    `json:"edgeWeighted"`
	BorderWidth     float64 `json:"borderWidth"`

	// RandSeed makes randomized stages reproducible; zero selects a
	// time-based seed.
	RandSeed int64 `json:"randSeed,omitempty"`
}

// NewSettings returns a settings value with sensible defaults for a lap
// quilt.
func NewSettings() Settings {
	return Settings{
		Shape:           ShapePixel,
		GridWidth:       40,
		NumColors:       6,
		CellSizeMm:      25,
		SeamAllowanceMm: 6,
		NumSeeds:        150,
		RelaxIterations: 2,
		BorderWidth:     1,
	}
}

// Validate rejects invalid settings before any processing starts; the
// returned error names the offending field.
func (s Settings) Validate() error {
	switch s.Shape {
	case ShapePixel, ShapeTriangle, ShapeHexagon, ShapeVoronoi:
	default:
		return fmt.Errorf("shapeType: unsupported value %q", s.Shape)
	}
	if s.NumColors < 1 {
		return fmt.Errorf("numColors: must be at least 1, got %d", s.NumColors)
	}
	if s.CellSizeMm <= 0 {
		return fmt.Errorf("cellSizeMm: must be positive, got %g", s.CellSizeMm)
	}
	if s.SeamAllowanceMm <= 0 {
		return fmt.Errorf("seamAllowanceMm: must be positive, got %g", s.SeamAllowanceMm)
	}
	if s.Shape == ShapeVoronoi {
		if s.NumSeeds < MinSeeds || s.NumSeeds > MaxSeeds {
			return fmt.Errorf("numSeeds: must be between %d and %d, got %d", MinSeeds, MaxSeeds, s.NumSeeds)
		}
		if s.RelaxIterations < 0 || s.RelaxIterations > MaxRelaxIterations {
			return fmt.Errorf("relaxationIterations: must be between 0 and %d, got %d", MaxRelaxIterations, s.RelaxIterations)
		}
		if s.BorderWidth < 0 {
			return fmt.Errorf("borderWidth: must not be negative, got %g", s.BorderWidth)
		}
		return nil
	}
	if s.GridWidth < 1 {
		return fmt.Errorf("gridWidth: must be at least 1, got %d", s.GridWidth)
	}
	return nil
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// StitchMeta is the per-cell fabrication data.
type StitchMeta struct {
	// Edges counts the sides to be stitched.
	Edges int `json:"edges"`
	// SizeMm is the finished piece size: the side length for square
	// cells, the square root of the area for voronoi cells.
	SizeMm          float64 `json:"sizeMm"`
	SeamAllowanceMm float64 `json:"seamAllowanceMm"`
	// Neighbors lists the edge-sharing cell ids. Grid path only; the
	// voronoi path leaves it nil.
	Neighbors []string `json:"neighbors,omitempty"`
	Row       int      `json:"row"`
	Col       int      `json:"col"`
}

// Cell is one tessellation region with a single fill color. The Shape tag
// selects which geometry payload is set: grid shapes carry Rect, voronoi
// cells carry Polygon. Its color is a palette member by value; cells never
// reference back into the palette.
type Cell struct {
	ID      string     `json:"id"`
	Shape   ShapeType  `json:"shape"`
	Rect    Rect       `json:"rect,omitempty"`
	Polygon []Point    `json:"polygon,omitempty"`
	Color   Color      `json:"color"`
	Stitch  StitchMeta `json:"stitch"`
}

// FabricSummary aggregates the shopping-list numbers for a design.
type FabricSummary struct {
	WidthMm         float64 `json:"widthMm"`
	HeightMm        float64 `json:"heightMm"`
	CellSizeMm      float64 `json:"cellSizeMm"`
	SeamAllowanceMm float64 `json:"seamAllowanceMm"`
	PieceCount      int     `json:"pieceCount"`
	// ColorCounts maps palette hex values to the number of pieces cut
	// from that fabric.
	ColorCounts map[string]int `json:"colorCounts"`
}

// Design is the aggregate result of one pipeline run. It is immutable
// once produced: regenerating with different settings yields a new Design
// and downstream consumers never write back into it.
type Design struct {
	Shape       ShapeType `json:"shapeType"`
	PixelWidth  int       `json:"pixelWidth"`
	PixelHeight int       `json:"pixelHeight"`

	// Grid path dimensions; zero on the voronoi path.
	Rows       int `json:"rows,omitempty"`
	Cols       int `json:"cols,omitempty"`
	CellSizePx int `json:"cellSizePx,omitempty"`

	// BorderWidth is the voronoi cell stroke width; zero draws no stroke.
	BorderWidth float64 `json:"borderWidth,omitempty"`

	Palette Palette       `json:"palette"`
	Cells   []Cell        `json:"cells"`
	Fabric  FabricSummary `json:"fabric"`
}

// newFabricSummary tallies piece counts per palette color and the overall
// physical size.
func newFabricSummary(cells []Cell, widthMm, heightMm float64, s Settings) FabricSummary {
	counts := make(map[string]int, s.NumColors)
	for _, c := range cells {
		counts[c.Color.Hex()]++
	}
	return FabricSummary{
		WidthMm:         widthMm,
		HeightMm:        heightMm,
		CellSizeMm:      s.CellSizeMm,
		SeamAllowanceMm: s.SeamAllowanceMm,
		PieceCount:      len(cells),
		ColorCounts:     counts,
	}
}

// MmPerPixel returns the physical scale of the design canvas.
func (d *Design) MmPerPixel() float64 {
	if d.PixelWidth == 0 {
		return 0
	}
	return d.Fabric.WidthMm / float64(d.PixelWidth)
}

// voronoiScale derives the mm-per-pixel factor for the voronoi path: the
// configured cell size is read as the target mean cell diameter, i.e. the
// side of the square holding one seed's share of the canvas.
func voronoiScale(width, height, numSeeds int, cellSizeMm float64) float64 {
	meanDiameterPx := math.Sqrt(float64(width*height) / float64(numSeeds))
	return cellSizeMm / meanDiameterPx
}
