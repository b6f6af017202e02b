package quilt

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable 8-bit RGB value. Alpha is not part of the model:
// fabric has no transparency.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// distSq returns the squared Euclidean distance between two colors in raw
// RGB space. Perceptual color spaces are deliberately not used here; the
// quantizer documents this limitation.
func (c Color) distSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Hex returns the color in "#rrggbb" notation.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// RGBA returns the color as an opaque color.RGBA, for drawing.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseHexColor parses a "#rrggbb" string into a Color.
func ParseHexColor(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Palette is an ordered list of unique colors. It is built once per image
// and reused, by value, for every cell.
type Palette []Color

// NearestIndex returns the index of the palette entry closest to c in RGB
// space. Ties resolve to the lowest index. An empty palette returns -1.
func (p Palette) NearestIndex(c Color) int {
	best, bestDist := -1, 0
	for i, pc := range p {
		d := c.distSq(pc)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Nearest returns the palette entry closest to c. The palette must not be
// empty.
func (p Palette) Nearest(c Color) Color {
	return p[p.NearestIndex(c)]
}

// Contains reports whether c is a member of the palette by value.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Hex returns the palette as "#rrggbb" strings, preserving order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
