package quilt

import "math"

// Point is a position in image space. Pixel coordinates are stored as
// floats because Voronoi vertices (triangle circumcenters) fall between
// pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) distSq(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// polygonArea returns the unsigned area of the polygon via the shoelace
// formula.
func polygonArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	area := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		area += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(area) / 2
}

// pointInPolygon reports whether p lies inside poly, using the even-odd
// ray casting rule. Points exactly on an edge may land on either side.
func pointInPolygon(p Point, poly []Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// boundingBox returns the axis-aligned bounds of the polygon.
func boundingBox(poly []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// clipEdge is one half-plane of the canvas rectangle.
type clipEdge struct {
	// inside reports whether a point is on the kept side.
	inside func(Point) bool
	// intersect returns the crossing point of segment a-b with the edge.
	intersect func(a, b Point) Point
}

// clipToRect clips a polygon to the rectangle [0,w]×[0,h] with the
// Sutherland–Hodgman algorithm, clipping sequentially against each of the
// four half-planes. The result may be empty when the polygon lies fully
// outside.
func clipToRect(poly []Point, w, h float64) []Point {
	edges := []clipEdge{
		{
			inside: func(p Point) bool { return p.X >= 0 },
			intersect: func(a, b Point) Point {
				t := (0 - a.X) / (b.X - a.X)
				return Point{X: 0, Y: a.Y + t*(b.Y-a.Y)}
			},
		},
		{
			inside: func(p Point) bool { return p.X <= w },
			intersect: func(a, b Point) Point {
				t := (w - a.X) / (b.X - a.X)
				return Point{X: w, Y: a.Y + t*(b.Y-a.Y)}
			},
		},
		{
			inside: func(p Point) bool { return p.Y >= 0 },
			intersect: func(a, b Point) Point {
				t := (0 - a.Y) / (b.Y - a.Y)
				return Point{X: a.X + t*(b.X-a.X), Y: 0}
			},
		},
		{
			inside: func(p Point) bool { return p.Y <= h },
			intersect: func(a, b Point) Point {
				t := (h - a.Y) / (b.Y - a.Y)
				return Point{X: a.X + t*(b.X-a.X), Y: h}
			},
		},
	}

	out := poly
	for _, e := range edges {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, e.intersect(prev, cur), cur)
			case !curIn && prevIn:
				out = append(out, e.intersect(prev, cur))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}
