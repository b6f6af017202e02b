package quilt

import (
	"math"
	"math/rand"
)

// Split of the seed budget between contour-anchored and fill seeds in
// edge-weighted mode.
const edgeSeedRate = 0.6

// Spacing factors, relative to the base minimum distance derived from the
// average area one seed should cover.
const (
	fillToEdgeSpacing = 0.8
	fillToFillSpacing = 0.6
	fillAttemptFactor = 20
)

// GenerateSeeds places n seed points on a width×height canvas.
//
// With edgeWeighted unset (or no edge data), seeds are drawn uniformly at
// random; no minimum spacing is enforced, so seeds may cluster.
//
// With edgeWeighted set, 60% of the budget is sampled from the detected
// edge pixels so that the resulting cell boundaries track the contours of
// the source image, and the remaining 40% fills the open areas. Edge seeds
// keep a minimum pairwise distance of 0.5·sqrt(area/n), enforced by
// shuffling the edge pixels and greedily accepting spaced ones. Fill seeds
// are rejection-sampled over the whole canvas, rejecting candidates within
// 0.8× that distance of an edge seed or 0.6× of another fill seed; the
// attempt budget is capped at 20 per requested fill seed, so a crowded
// canvas yields fewer fill seeds than requested rather than an error.
func GenerateSeeds(width, height, n int, edges *EdgeField, edgeWeighted bool, rnd *rand.Rand) []Point {
	if n <= 0 {
		return nil
	}
	if !edgeWeighted || edges == nil || len(edges.Points) == 0 {
		seeds := make([]Point, n)
		for i := range seeds {
			seeds[i] = Point{
				X: rnd.Float64() * float64(width),
				Y: rnd.Float64() * float64(height),
			}
		}
		return seeds
	}

	minDist := 0.5 * math.Sqrt(float64(width*height)/float64(n))
	edgeCount := int(float64(n) * edgeSeedRate)
	fillCount := n - edgeCount

	candidates := make([]Point, len(edges.Points))
	copy(candidates, edges.Points)
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	seeds := make([]Point, 0, n)
	for _, c := range candidates {
		if len(seeds) >= edgeCount {
			break
		}
		if minSpacingOK(c, seeds, minDist) {
			seeds = append(seeds, c)
		}
	}
	edgeSeeds := len(seeds)

	edgeDist := fillToEdgeSpacing * minDist
	fillDist := fillToFillSpacing * minDist
	for attempts := 0; attempts < fillAttemptFactor*fillCount && len(seeds)-edgeSeeds < fillCount; attempts++ {
		c := Point{
			X: rnd.Float64() * float64(width),
			Y: rnd.Float64() * float64(height),
		}
		if minSpacingOK(c, seeds[:edgeSeeds], edgeDist) &&
			minSpacingOK(c, seeds[edgeSeeds:], fillDist) {
			seeds = append(seeds, c)
		}
	}
	return seeds
}

// minSpacingOK reports whether p keeps at least dist to every point in ps.
func minSpacingOK(p Point, ps []Point, dist float64) bool {
	dsq := dist * dist
	for _, q := range ps {
		if p.distSq(q) < dsq {
			return false
		}
	}
	return true
}
