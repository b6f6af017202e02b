package quilt

import "math"

// superMarginFactor scales the synthetic enclosing triangle relative to
// the larger canvas dimension, keeping circumcircles of boundary seeds
// well formed.
const superMarginFactor = 10.0

// nodeEps treats two points closer than this as the same node; inserting
// a duplicate seed would produce zero-area triangles.
const nodeEps = 1e-9

// Triangle is one Delaunay triangle. A, B and C index the seed list the
// triangulation was built from; CX and CY hold the circumcenter, which
// becomes a Voronoi vertex during dual construction.
type Triangle struct {
	A, B, C int
	CX, CY  float64
}

// tri is the internal working triangle with its cached circumcircle, so
// the point-in-circumcircle test during insertion is a single squared
// distance comparison.
type tri struct {
	a, b, c     int
	cx, cy, rsq float64
	validCircle bool
}

// Delaunay incrementally builds a Bowyer–Watson triangulation over seed
// points. Three synthetic super-triangle vertices occupy point indices
// 0-2; every inserted seed is offset by that amount internally.
type Delaunay struct {
	points    []Point
	triangles []tri
}

// Init prepares the triangulation for a width×height canvas by installing
// a super-triangle with a generous margin around it.
func (d *Delaunay) Init(width, height float64) *Delaunay {
	m := superMarginFactor * math.Max(width, height)
	midX, midY := width/2, height/2

	d.points = d.points[:0]
	d.triangles = d.triangles[:0]
	d.points = append(d.points,
		Point{X: midX - 2*m, Y: midY - m},
		Point{X: midX + 2*m, Y: midY - m},
		Point{X: midX, Y: midY + 2*m},
	)
	d.triangles = append(d.triangles, d.newTri(0, 1, 2))
	return d
}

// Insert adds the seed points one at a time: triangles whose circumcircle
// contains the new point are removed and the boundary of the resulting
// cavity is re-triangulated against the point. Seeds coinciding with an
// already inserted point are skipped.
func (d *Delaunay) Insert(seeds []Point) *Delaunay {
	for _, s := range seeds {
		d.insertPoint(s)
	}
	return d
}

func (d *Delaunay) insertPoint(p Point) {
	for _, q := range d.points {
		if p.distSq(q) < nodeEps {
			return
		}
	}
	idx := len(d.points)
	d.points = append(d.points, p)

	var kept []tri
	edgeCount := make(map[[2]int]int)
	var cavity [][2]int
	for _, t := range d.triangles {
		if t.circumcircleContains(p) {
			for _, e := range [][2]int{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}} {
				k := orderEdge(e)
				edgeCount[k]++
				cavity = append(cavity, e)
			}
		} else {
			kept = append(kept, t)
		}
	}

	// Edges shared by two removed triangles are interior to the cavity;
	// only boundary edges get connected to the new point.
	for _, e := range cavity {
		if edgeCount[orderEdge(e)] != 1 {
			continue
		}
		kept = append(kept, d.newTri(e[0], e[1], idx))
	}
	d.triangles = kept
}

// Triangles returns the finished triangulation with every triangle
// touching a super-triangle vertex discarded, and indices rebased onto
// the inserted seed list.
func (d *Delaunay) Triangles() []Triangle {
	var out []Triangle
	for _, t := range d.triangles {
		if t.a < 3 || t.b < 3 || t.c < 3 {
			continue
		}
		out = append(out, Triangle{
			A: t.a - 3, B: t.b - 3, C: t.c - 3,
			CX: t.cx, CY: t.cy,
		})
	}
	return out
}

// DualTriangles returns every triangle usable for Voronoi dual
// construction, including the ones touching a super-triangle vertex:
// their circumcenters supply the far-out vertices of boundary cells,
// which clipping later pulls back to the canvas edge. Super-triangle
// vertices are rebased to -1; degenerate triangles without a circumcircle
// are omitted.
func (d *Delaunay) DualTriangles() []Triangle {
	var out []Triangle
	for _, t := range d.triangles {
		if !t.validCircle {
			continue
		}
		out = append(out, Triangle{
			A: rebase(t.a), B: rebase(t.b), C: rebase(t.c),
			CX: t.cx, CY: t.cy,
		})
	}
	return out
}

func rebase(i int) int {
	if i < 3 {
		return -1
	}
	return i - 3
}

func (d *Delaunay) newTri(a, b, c int) tri {
	t := tri{a: a, b: b, c: c}
	p0, p1, p2 := d.points[a], d.points[b], d.points[c]

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	det := 2 * (ax*by - ay*bx)
	if math.Abs(det) < nodeEps {
		// Degenerate (collinear) triangle; it can never reject a point
		// from its circumcircle.
		return t
	}

	m := ax*ax + ay*ay
	u := bx*bx + by*by
	ox := (by*m - ay*u) / det
	oy := (ax*u - bx*m) / det

	t.cx = p0.X + ox
	t.cy = p0.Y + oy
	t.rsq = ox*ox + oy*oy
	t.validCircle = true
	return t
}

func (t tri) circumcircleContains(p Point) bool {
	if !t.validCircle {
		return true
	}
	dx := t.cx - p.X
	dy := t.cy - p.Y
	return dx*dx+dy*dy < t.rsq
}

func orderEdge(e [2]int) [2]int {
	if e[0] > e[1] {
		return [2]int{e[1], e[0]}
	}
	return e
}
