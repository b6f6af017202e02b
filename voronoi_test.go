package quilt

import (
	"math"
	"math/rand"
	"testing"
)

func TestDelaunayTriangulatesSquare(t *testing.T) {
	seeds := []Point{{10, 10}, {90, 10}, {90, 90}, {10, 90}}
	d := new(Delaunay).Init(100, 100)
	tris := d.Insert(seeds).Triangles()
	if len(tris) != 2 {
		t.Fatalf("triangle count: got %d, want 2", len(tris))
	}
	for _, tr := range tris {
		for _, i := range [3]int{tr.A, tr.B, tr.C} {
			if i < 0 || i >= len(seeds) {
				t.Errorf("triangle references seed %d out of range", i)
			}
		}
	}
}

func TestDelaunaySkipsDuplicateSeeds(t *testing.T) {
	seeds := []Point{{50, 50}, {50, 50}, {20, 20}, {80, 20}, {50, 80}}
	d := new(Delaunay).Init(100, 100)
	tris := d.Insert(seeds).Triangles()
	for _, tr := range tris {
		if tr.A == 1 || tr.B == 1 || tr.C == 1 {
			t.Error("duplicate seed appeared in the triangulation")
		}
	}
}

func TestBuildVoronoiFourSeeds(t *testing.T) {
	// Four symmetric seeds split the canvas into four quadrant cells.
	seeds := []Point{{25, 25}, {75, 25}, {25, 75}, {75, 75}}
	cells := BuildVoronoi(seeds, 100, 100)
	if len(cells) != 4 {
		t.Fatalf("cell count: got %d, want 4", len(cells))
	}
	for i, poly := range cells {
		if poly == nil {
			t.Fatalf("cell %d is degenerate", i)
		}
		area := polygonArea(poly)
		if math.Abs(area-2500) > 50 {
			t.Errorf("cell %d area %.1f, want ~2500", i, area)
		}
		if !pointInPolygon(seeds[i], poly) {
			t.Errorf("seed %d lies outside its own cell", i)
		}
	}
}

func TestBuildVoronoiClippedToCanvas(t *testing.T) {
	rnd := rand.New(rand.NewSource(33))
	seeds := GenerateSeeds(200, 200, 50, nil, false, rnd)
	cells := BuildVoronoi(seeds, 200, 200)

	polygons := 0
	for _, poly := range cells {
		if poly == nil {
			continue
		}
		polygons++
		for _, p := range poly {
			if p.X < -1e-6 || p.X > 200+1e-6 || p.Y < -1e-6 || p.Y > 200+1e-6 {
				t.Errorf("vertex %v outside the canvas", p)
			}
		}
	}
	if polygons == 0 || polygons > 50 {
		t.Fatalf("polygon count: got %d, want between 1 and 50", polygons)
	}
}

func TestBuildVoronoiCoversCanvas(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	seeds := GenerateSeeds(200, 200, 50, nil, false, rnd)
	cells := BuildVoronoi(seeds, 200, 200)

	sum := 0.0
	for _, poly := range cells {
		sum += polygonArea(poly)
	}
	canvas := 200.0 * 200.0
	if math.Abs(sum-canvas) > 0.02*canvas {
		t.Errorf("union area %.1f deviates from canvas %.1f by more than 2%%", sum, canvas)
	}
}

func TestBuildVoronoiEmptyInput(t *testing.T) {
	cells := BuildVoronoi(nil, 100, 100)
	if len(cells) != 0 {
		t.Errorf("empty seeds: got %d cells, want 0", len(cells))
	}
}

func TestClipToRect(t *testing.T) {
	poly := []Point{{-10, 50}, {50, -10}, {110, 50}, {50, 110}}
	got := clipToRect(poly, 100, 100)
	if len(got) == 0 {
		t.Fatal("clip dropped a polygon overlapping the canvas")
	}
	for _, p := range got {
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Errorf("clipped vertex %v outside bounds", p)
		}
	}
	outside := []Point{{200, 200}, {220, 200}, {210, 220}}
	if got := clipToRect(outside, 100, 100); got != nil {
		t.Errorf("fully outside polygon survived clipping: %v", got)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if a := polygonArea(square); a != 100 {
		t.Errorf("square area: got %v, want 100", a)
	}
	if a := polygonArea(square[:2]); a != 0 {
		t.Errorf("degenerate polygon area: got %v, want 0", a)
	}
}
