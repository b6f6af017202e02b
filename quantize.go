package quilt

import (
	"math"
	"math/rand"
)

const (
	// maxQuantizeIterations caps the Lloyd refinement loop.
	maxQuantizeIterations = 20

	// quantizeConvergence stops the refinement once no centroid moves
	// farther than this distance in RGB space.
	quantizeConvergence = 1.0
)

// centroid is a running position in RGB space with float precision, so
// repeated averaging does not accumulate rounding drift.
type centroid struct {
	r, g, b float64
}

func (c centroid) color() Color {
	return Color{
		R: uint8(clamp(math.Round(c.r), 0, 255)),
		G: uint8(clamp(math.Round(c.g), 0, 255)),
		B: uint8(clamp(math.Round(c.b), 0, 255)),
	}
}

func (c centroid) distSq(o Color) float64 {
	dr := c.r - float64(o.R)
	dg := c.g - float64(o.G)
	db := c.b - float64(o.B)
	return dr*dr + dg*dg + db*db
}

// Quantize reduces an arbitrary color list to at most k representative
// colors using k-means clustering with k-means++ seeding. It returns the
// palette and a per-input-color assignment to its palette entry.
//
// The first centroid is drawn uniformly at random from the input; each
// further centroid is drawn with probability proportional to its squared
// distance from the nearest centroid chosen so far, which spreads the
// initial palette across the occupied region of color space. Refinement
// then runs standard assign/recompute iterations until convergence or the
// iteration cap.
//
// When the input holds fewer than k distinct colors the palette collapses
// to the distinct colors, in order of first appearance. An empty input
// yields an empty palette and an empty assignment.
func Quantize(colors []Color, k int, rnd *rand.Rand) (map[Color]Color, Palette) {
	assignment := make(map[Color]Color)
	if len(colors) == 0 || k < 1 {
		return assignment, nil
	}

	distinct := distinctColors(colors)
	if k >= len(distinct) {
		for _, c := range distinct {
			assignment[c] = c
		}
		return assignment, Palette(distinct)
	}

	centroids := seedCentroids(colors, k, rnd)

	counts := make([]int, k)
	sums := make([]centroid, k)
	for iter := 0; iter < maxQuantizeIterations; iter++ {
		for i := range sums {
			sums[i] = centroid{}
			counts[i] = 0
		}
		for _, c := range colors {
			j := nearestCentroid(centroids, c)
			sums[j].r += float64(c.R)
			sums[j].g += float64(c.G)
			sums[j].b += float64(c.B)
			counts[j]++
		}

		moved := 0.0
		for i := range centroids {
			if counts[i] == 0 {
				// Empty cluster: keep the last known position.
				continue
			}
			next := centroid{
				r: sums[i].r / float64(counts[i]),
				g: sums[i].g / float64(counts[i]),
				b: sums[i].b / float64(counts[i]),
			}
			dr := next.r - centroids[i].r
			dg := next.g - centroids[i].g
			db := next.b - centroids[i].b
			if d := math.Sqrt(dr*dr + dg*dg + db*db); d > moved {
				moved = d
			}
			centroids[i] = next
		}
		if moved <= quantizeConvergence {
			break
		}
	}

	// Rounded centroids can coincide; the palette keeps unique colors only.
	palette := make(Palette, 0, k)
	for _, c := range centroids {
		rc := c.color()
		if !palette.Contains(rc) {
			palette = append(palette, rc)
		}
	}
	for _, c := range distinct {
		assignment[c] = palette.Nearest(c)
	}
	return assignment, palette
}

// seedCentroids runs k-means++ seeding over the input colors.
func seedCentroids(colors []Color, k int, rnd *rand.Rand) []centroid {
	centroids := make([]centroid, 0, k)
	first := colors[rnd.Intn(len(colors))]
	centroids = append(centroids, centroid{
		r: float64(first.R), g: float64(first.G), b: float64(first.B),
	})

	dists := make([]float64, len(colors))
	for len(centroids) < k {
		total := 0.0
		last := centroids[len(centroids)-1]
		for i, c := range colors {
			d := last.distSq(c)
			if len(centroids) == 1 || d < dists[i] {
				dists[i] = d
			}
			total += dists[i]
		}
		if total == 0 {
			// All remaining colors coincide with a centroid already.
			break
		}
		target := rnd.Float64() * total
		pick := len(colors) - 1
		acc := 0.0
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		c := colors[pick]
		centroids = append(centroids, centroid{
			r: float64(c.R), g: float64(c.G), b: float64(c.B),
		})
	}
	return centroids
}

// nearestCentroid returns the index of the closest centroid, resolving
// ties to the lowest index.
func nearestCentroid(centroids []centroid, c Color) int {
	best, bestDist := 0, centroids[0].distSq(c)
	for i := 1; i < len(centroids); i++ {
		if d := centroids[i].distSq(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// distinctColors returns the unique colors in order of first appearance.
func distinctColors(colors []Color) []Color {
	seen := make(map[Color]struct{}, len(colors))
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
