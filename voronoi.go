package quilt

import (
	"image"
	"math"
	"sort"
)

// BuildVoronoi derives one Voronoi cell polygon per seed from the dual of
// the Delaunay triangulation: every triangle incident to a seed
// contributes its circumcenter, and the circumcenters ordered by angle
// around the seed form the cell boundary. The polygons are clipped to the
// [0,width]×[0,height] canvas, so no cell ever extends outside the image.
//
// A seed with fewer than three incident triangles (duplicate seeds,
// collinear degeneracies) yields a nil polygon at its index. Adjacent
// cells share exact edges by construction, so the tessellation is
// gap-free up to clipping error.
func BuildVoronoi(seeds []Point, width, height float64) [][]Point {
	cells := make([][]Point, len(seeds))
	if len(seeds) == 0 {
		return cells
	}

	d := new(Delaunay).Init(width, height)
	triangles := d.Insert(seeds).DualTriangles()

	incident := make(map[int][]Point, len(seeds))
	for _, t := range triangles {
		c := Point{X: t.CX, Y: t.CY}
		for _, idx := range [3]int{t.A, t.B, t.C} {
			if idx >= 0 {
				incident[idx] = append(incident[idx], c)
			}
		}
	}

	for i, centers := range incident {
		if len(centers) < 3 {
			continue
		}
		seed := seeds[i]
		sort.Slice(centers, func(a, b int) bool {
			return math.Atan2(centers[a].Y-seed.Y, centers[a].X-seed.X) <
				math.Atan2(centers[b].Y-seed.Y, centers[b].X-seed.X)
		})
		if poly := clipToRect(centers, width, height); len(poly) >= 3 {
			cells[i] = poly
		}
	}
	return cells
}

// polygonColor averages the source pixels enclosed by the polygon,
// scanning its bounding box with a ray-casting containment test. Slivers
// enclosing no pixel centers fall back to the single pixel nearest the
// center of the bounding box.
func polygonColor(img *image.NRGBA, poly []Point) Color {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	minX, minY, maxX, maxY := boundingBox(poly)

	x0 := clamp(int(math.Floor(minX)), 0, w-1)
	x1 := clamp(int(math.Ceil(maxX)), 0, w-1)
	y0 := clamp(int(math.Floor(minY)), 0, h-1)
	y1 := clamp(int(math.Ceil(maxY)), 0, h-1)

	var rSum, gSum, bSum, n int
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !pointInPolygon(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, poly) {
				continue
			}
			i := img.PixOffset(x, y)
			rSum += int(img.Pix[i])
			gSum += int(img.Pix[i+1])
			bSum += int(img.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		cx := clamp(int((minX+maxX)/2), 0, w-1)
		cy := clamp(int((minY+maxY)/2), 0, h-1)
		i := img.PixOffset(cx, cy)
		return Color{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
	}
	return Color{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
}
