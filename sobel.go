package quilt

import (
	"image"
	"math"
)

type kernel [3][3]float64

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Hysteresis thresholds, expressed as ratios of the global maximum
// gradient magnitude.
const (
	highThresholdRatio = 0.15
	lowThresholdRatio  = 0.05
)

// EdgeField holds the Sobel gradient of an image after non-maximum
// suppression and hysteresis thresholding. Points lists the surviving
// edge pixels so downstream sampling does not have to rescan the field.
type EdgeField struct {
	Width, Height int
	Magnitude     []float64
	Direction     []float64
	Points        []Point
}

// DetectEdges runs Sobel gradient extraction over the image, thins the
// result to single-pixel ridges with non-maximum suppression and keeps
// only contours confirmed by hysteresis thresholding.
func DetectEdges(img *image.NRGBA) *EdgeField {
	gray := Grayscale(img)
	width, height := gray.Bounds().Dx(), gray.Bounds().Dy()

	f := &EdgeField{
		Width:     width,
		Height:    height,
		Magnitude: make([]float64, width*height),
		Direction: make([]float64, width*height),
	}
	if width < 3 || height < 3 {
		return f
	}

	maxMag := 0.0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var gx, gy float64
			for row := -1; row <= 1; row++ {
				for col := -1; col <= 1; col++ {
					v := float64(gray.Pix[((y+row)*width+(x+col))<<2])
					gx += v * kernelX[row+1][col+1]
					gy += v * kernelY[row+1][col+1]
				}
			}
			i := y*width + x
			f.Magnitude[i] = math.Sqrt(gx*gx + gy*gy)
			f.Direction[i] = math.Atan2(gy, gx)
			if f.Magnitude[i] > maxMag {
				maxMag = f.Magnitude[i]
			}
		}
	}
	if maxMag == 0 {
		return f
	}

	f.Magnitude = f.suppressNonMaxima()
	f.Points = f.hysteresis(maxMag*highThresholdRatio, maxMag*lowThresholdRatio)
	return f
}

// suppressNonMaxima quantizes each gradient direction into one of four
// bins (0°, 45°, 90°, 135°) and zeroes every pixel whose magnitude is not
// at least that of both neighbors across its gradient, thinning edges to
// single-pixel width.
func (f *EdgeField) suppressNonMaxima() []float64 {
	w, h := f.Width, f.Height
	out := make([]float64, len(f.Magnitude))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := f.Magnitude[i]
			if m == 0 {
				continue
			}

			// Map the angle into [0°, 180°) and pick the neighbor offsets
			// perpendicular to the edge, i.e. along the gradient.
			angle := f.Direction[i] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			var dx, dy int
			switch {
			case angle < 22.5 || angle >= 157.5: // 0°: horizontal gradient
				dx, dy = 1, 0
			case angle < 67.5: // 45°
				dx, dy = 1, 1
			case angle < 112.5: // 90°: vertical gradient
				dx, dy = 0, 1
			default: // 135°
				dx, dy = 1, -1
			}

			if m >= f.Magnitude[(y+dy)*w+(x+dx)] && m >= f.Magnitude[(y-dy)*w+(x-dx)] {
				out[i] = m
			}
		}
	}
	return out
}

// hysteresis keeps every pixel at or above the high threshold and grows
// each such pixel through its 8-connected neighborhood, absorbing pixels
// at or above the low threshold. It returns the retained edge pixels and
// zeroes everything else in the magnitude field.
func (f *EdgeField) hysteresis(high, low float64) []Point {
	w, h := f.Width, f.Height
	kept := make([]bool, len(f.Magnitude))
	var stack []int

	for i, m := range f.Magnitude {
		if m >= high && !kept[i] {
			kept[i] = true
			stack = append(stack, i)
			for len(stack) > 0 {
				j := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := j%w, j/w
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						n := ny*w + nx
						if !kept[n] && f.Magnitude[n] >= low {
							kept[n] = true
							stack = append(stack, n)
						}
					}
				}
			}
		}
	}

	var points []Point
	for i := range f.Magnitude {
		if kept[i] {
			points = append(points, Point{X: float64(i % w), Y: float64(i / w)})
		} else {
			f.Magnitude[i] = 0
		}
	}
	return points
}
