package quilt

import (
	"encoding/xml"
	"image/color"
	"strings"
	"testing"
)

// parseSVG decodes the document just far enough to prove it is
// well-formed XML and to count the emitted elements.
func parseSVG(t *testing.T, doc string) (rects, polygons int) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if tok == nil {
			break
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			switch se.Name.Local {
			case "rect":
				rects++
			case "polygon":
				polygons++
			}
		}
	}
	return rects, polygons
}

func TestSerializeSVGGrid(t *testing.T) {
	img := uniformImage(100, 100, color.RGBA{200, 30, 30, 255})
	p := &Processor{Settings: NewSettings()}
	p.GridWidth = 10
	p.RandSeed = 1

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	doc := d.SVG()

	rects, _ := parseSVG(t, doc)
	// 100 cells plus the background rect.
	if rects != 101 {
		t.Errorf("rect count: got %d, want 101", rects)
	}
	if !strings.Contains(doc, "quilt:design") {
		t.Error("metadata block missing from document")
	}
	if !strings.Contains(doc, `data-size-mm="25.00"`) {
		t.Error("stitch size attribute missing")
	}
	if !strings.Contains(doc, `data-neighbors=`) {
		t.Error("neighbor metadata missing")
	}
}

func TestSerializeSVGTriangleShape(t *testing.T) {
	img := uniformImage(40, 40, color.RGBA{10, 90, 200, 255})
	s := NewSettings()
	s.Shape = ShapeTriangle
	s.GridWidth = 4
	s.RandSeed = 1
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	_, polygons := parseSVG(t, d.SVG())
	// Two triangles per grid cell.
	if polygons != 2*len(d.Cells) {
		t.Errorf("polygon count: got %d, want %d", polygons, 2*len(d.Cells))
	}
}

func TestSerializeSVGVoronoi(t *testing.T) {
	img := uniformImage(120, 120, color.RGBA{90, 140, 60, 255})
	s := NewSettings()
	s.Shape = ShapeVoronoi
	s.NumSeeds = 30
	s.RelaxIterations = 0
	s.RandSeed = 4
	p := &Processor{Settings: s}

	d, err := p.Process(img)
	if err != nil {
		t.Fatal(err)
	}
	doc := d.SVG()
	_, polygons := parseSVG(t, doc)
	if polygons != len(d.Cells) {
		t.Errorf("polygon count: got %d, want %d", polygons, len(d.Cells))
	}
	// The default settings request a 1px cell stroke.
	if !strings.Contains(doc, `stroke-width="1.00"`) {
		t.Error("voronoi cell stroke missing")
	}
}

func TestSerializeSVGEmptyDesign(t *testing.T) {
	d := &Design{Shape: ShapePixel, PixelWidth: 10, PixelHeight: 10}
	doc := d.SVG()
	rects, polygons := parseSVG(t, doc)
	if rects != 1 || polygons != 0 {
		t.Errorf("empty design: got %d rects and %d polygons, want the background rect only", rects, polygons)
	}
	if !strings.HasPrefix(doc, "<?xml") {
		t.Error("document missing XML declaration")
	}
}
