package quilt

import (
	"image"
	"image/color"
	"reflect"
	"strings"
	"testing"
)

func TestProcessUniformImage(t *testing.T) {
	img := uniformImage(100, 100, color.RGBA{60, 60, 200, 255})
	s := NewSettings()
	s.GridWidth = 10
	s.NumColors = 2
	s.RandSeed = 1
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Cells) != 100 {
		t.Errorf("cell count: got %d, want 100", len(d.Cells))
	}
	// Only one distinct color exists, so the palette collapses below the
	// requested size.
	if len(d.Palette) != 1 {
		t.Errorf("palette size: got %d, want 1", len(d.Palette))
	}
	for _, c := range d.Cells {
		if c.Color != d.Palette[0] {
			t.Fatalf("cell %s color %v differs from the single palette entry", c.ID, c.Color)
		}
	}
	if d.Fabric.PieceCount != 100 {
		t.Errorf("piece count: got %d, want 100", d.Fabric.PieceCount)
	}
	if d.Fabric.WidthMm != 10*s.CellSizeMm {
		t.Errorf("fabric width: got %v, want %v", d.Fabric.WidthMm, 10*s.CellSizeMm)
	}
	if got, want := d.MmPerPixel(), s.CellSizeMm/float64(d.CellSizePx); got != want {
		t.Errorf("mm per pixel: got %v, want %v", got, want)
	}
}

func TestProcessCheckerboard(t *testing.T) {
	img := checkerboardImage(4, 4, 2)
	s := NewSettings()
	s.GridWidth = 2
	s.NumColors = 2
	s.RandSeed = 1
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Cells) != 4 {
		t.Fatalf("cell count: got %d, want 4", len(d.Cells))
	}
	if len(d.Palette) != 2 {
		t.Fatalf("palette size: got %d, want 2", len(d.Palette))
	}
	wantBlack := Color{0, 0, 0}
	wantWhite := Color{255, 255, 255}
	if !d.Palette.Contains(wantBlack) || !d.Palette.Contains(wantWhite) {
		t.Fatalf("palette %v missing the two original colors", d.Palette)
	}

	// Cells quantize to exactly the original colors, alternating.
	wantColors := map[string]Color{
		"r0c0": wantBlack, "r0c1": wantWhite,
		"r1c0": wantWhite, "r1c1": wantBlack,
	}
	wantNeighbors := map[string][]string{
		"r0c0": {"r0c1", "r1c0"},
		"r0c1": {"r1c1", "r0c0"},
		"r1c0": {"r0c0", "r1c1"},
		"r1c1": {"r0c1", "r1c0"},
	}
	for _, c := range d.Cells {
		if c.Color != wantColors[c.ID] {
			t.Errorf("cell %s color: got %v, want %v", c.ID, c.Color, wantColors[c.ID])
		}
		if !reflect.DeepEqual(c.Stitch.Neighbors, wantNeighbors[c.ID]) {
			t.Errorf("cell %s neighbors: got %v, want %v", c.ID, c.Stitch.Neighbors, wantNeighbors[c.ID])
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	img := checkerboardImage(64, 64, 8)
	s := NewSettings()
	s.GridWidth = 8
	s.NumColors = 4
	s.RandSeed = 99

	d1, err := (&Processor{Settings: s}).Process(img)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := (&Processor{Settings: s}).Process(img)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Error("identical settings and seed produced different designs")
	}
	if d1.SVG() != d2.SVG() {
		t.Error("identical designs serialized differently")
	}
}

func TestProcessVoronoiScenario(t *testing.T) {
	img := checkerboardImage(200, 200, 25)
	s := NewSettings()
	s.Shape = ShapeVoronoi
	s.NumSeeds = 50
	s.RelaxIterations = 0
	s.EdgeWeighted = false
	s.RandSeed = 12
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Cells) == 0 || len(d.Cells) > 50 {
		t.Fatalf("cell count: got %d, want between 1 and 50", len(d.Cells))
	}

	sum := 0.0
	for _, c := range d.Cells {
		if c.Shape != ShapeVoronoi {
			t.Fatalf("cell %s shape: got %s", c.ID, c.Shape)
		}
		if len(c.Polygon) < 3 {
			t.Fatalf("cell %s polygon has %d vertices", c.ID, len(c.Polygon))
		}
		for _, v := range c.Polygon {
			if v.X < -1e-6 || v.X > 200+1e-6 || v.Y < -1e-6 || v.Y > 200+1e-6 {
				t.Errorf("cell %s vertex %v outside canvas", c.ID, v)
			}
		}
		if !d.Palette.Contains(c.Color) {
			t.Errorf("cell %s color %v not in palette", c.ID, c.Color)
		}
		if c.Stitch.Neighbors != nil {
			t.Errorf("voronoi cell %s carries neighbor metadata", c.ID)
		}
		sum += polygonArea(c.Polygon)
	}
	canvas := 200.0 * 200.0
	if sum < 0.98*canvas || sum > 1.02*canvas {
		t.Errorf("cell union area %.1f deviates from canvas %.1f by more than 2%%", sum, canvas)
	}
}

func TestProcessVoronoiEdgeWeighted(t *testing.T) {
	img := checkerboardImage(160, 160, 40)
	s := NewSettings()
	s.Shape = ShapeVoronoi
	s.NumSeeds = 60
	s.RelaxIterations = 1
	s.EdgeWeighted = true
	s.RandSeed = 8
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Cells) == 0 || len(d.Cells) > 60 {
		t.Errorf("cell count: got %d, want between 1 and 60", len(d.Cells))
	}
}

func TestProcessHexagonShape(t *testing.T) {
	img := uniformImage(60, 60, color.RGBA{250, 180, 20, 255})
	s := NewSettings()
	s.Shape = ShapeHexagon
	s.GridWidth = 6
	s.RandSeed = 1
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range d.Cells {
		if c.Stitch.Edges != 6 {
			t.Fatalf("hexagon cell %s edge count: got %d, want 6", c.ID, c.Stitch.Edges)
		}
	}
	if !strings.Contains(d.SVG(), "<polygon") {
		t.Error("hexagon design emitted no polygon elements")
	}
}

func TestProcessValidation(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{1, 2, 3, 255})
	cases := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"bad shape", func(s *Settings) { s.Shape = "octagon" }, "shapeType"},
		{"zero colors", func(s *Settings) { s.NumColors = 0 }, "numColors"},
		{"zero grid", func(s *Settings) { s.GridWidth = 0 }, "gridWidth"},
		{"negative cell size", func(s *Settings) { s.CellSizeMm = -1 }, "cellSizeMm"},
		{"zero seam", func(s *Settings) { s.SeamAllowanceMm = 0 }, "seamAllowanceMm"},
		{"seed overflow", func(s *Settings) { s.Shape = ShapeVoronoi; s.NumSeeds = 10000 }, "numSeeds"},
		{"relax overflow", func(s *Settings) { s.Shape = ShapeVoronoi; s.RelaxIterations = 99 }, "relaxationIterations"},
		{"negative border", func(s *Settings) { s.Shape = ShapeVoronoi; s.BorderWidth = -2 }, "borderWidth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSettings()
			tc.mutate(&s)
			_, err := (&Processor{Settings: s}).Process(img)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not name field %s", err, tc.field)
			}
		})
	}
}

func TestProcessNilImage(t *testing.T) {
	if _, err := (&Processor{Settings: NewSettings()}).Process(nil); err == nil {
		t.Error("expected error for nil source image")
	}
}

func TestRenderPreviewSize(t *testing.T) {
	img := uniformImage(50, 50, color.RGBA{0, 128, 255, 255})
	s := NewSettings()
	s.GridWidth = 5
	s.RandSeed = 1
	d, err := (&Processor{Settings: s}).Process(img)
	if err != nil {
		t.Fatal(err)
	}
	preview := RenderPreview(d, 0)
	if preview.Bounds().Dx() != d.PixelWidth || preview.Bounds().Dy() != d.PixelHeight {
		t.Errorf("preview bounds %v do not match design canvas %dx%d",
			preview.Bounds(), d.PixelWidth, d.PixelHeight)
	}
	// The preview carries the quilt color, not the white background.
	rgba := preview.(*image.RGBA)
	r, g, b, _ := rgba.At(25, 25).RGBA()
	want := d.Palette[0]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("preview center pixel (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func BenchmarkProcessVoronoi(b *testing.B) {
	img := checkerboardImage(256, 256, 32)
	s := NewSettings()
	s.Shape = ShapeVoronoi
	s.NumSeeds = 120
	s.RelaxIterations = 1
	s.EdgeWeighted = true
	s.RandSeed = 7
	p := &Processor{Settings: s}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Process(img); err != nil {
			b.Fatalf("pipeline failed: %v", err)
		}
	}
}
