package quilt

import "math"

// relaxSampleBudget bounds the per-iteration pixel sample count so a large
// canvas does not make relaxation quadratic in image size.
const relaxSampleBudget = 50000

// Relax runs Lloyd relaxation over the seed points: each iteration assigns
// a coarse pixel sample to its nearest seed and moves every seed to the
// centroid of its assigned samples. More iterations trade organic, random
// cell shapes for a more uniform, evenly sized tessellation.
//
// Zero (or negative) iterations returns the input slice unchanged. A seed
// that attracts no samples keeps its previous position.
func Relax(seeds []Point, width, height, iterations int) []Point {
	if iterations <= 0 || len(seeds) == 0 {
		return seeds
	}

	stride := Max(1, int(math.Sqrt(float64(width*height)/relaxSampleBudget)))

	current := make([]Point, len(seeds))
	copy(current, seeds)

	sumX := make([]float64, len(seeds))
	sumY := make([]float64, len(seeds))
	count := make([]int, len(seeds))

	for it := 0; it < iterations; it++ {
		for i := range current {
			sumX[i], sumY[i], count[i] = 0, 0, 0
		}
		for y := 0; y < height; y += stride {
			for x := 0; x < width; x += stride {
				p := Point{X: float64(x), Y: float64(y)}
				best, bestDist := 0, p.distSq(current[0])
				for i := 1; i < len(current); i++ {
					if d := p.distSq(current[i]); d < bestDist {
						best, bestDist = i, d
					}
				}
				sumX[best] += p.X
				sumY[best] += p.Y
				count[best]++
			}
		}
		for i := range current {
			if count[i] == 0 {
				continue
			}
			current[i] = Point{
				X: sumX[i] / float64(count[i]),
				Y: sumY[i] / float64(count[i]),
			}
		}
	}
	return current
}
