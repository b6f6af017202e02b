package quilt

import (
	"fmt"
	"image"
)

// grid holds the downsampled cell colors of the grid tessellator in
// row-major order, before palette quantization.
type grid struct {
	cols, rows int
	// cellPx is the square cell size in source pixels.
	cellPx int
	colors []Color
}

// tessellateGrid downsamples the image into a gridWidth-column grid of
// averaged colors. The cell size in source pixels is the floor of
// width/gridWidth, and cells are forced square by reusing that width as
// the cell height, so the row count is derived from the cell size rather
// than from an aspect-correct split. This slightly distorts the aspect
// ratio in favor of square fabric pieces; downstream fabric-size math
// relies on the cells being square, so the behavior is intentional.
// Partial cells at the right and bottom edges are dropped.
func tessellateGrid(img *image.NRGBA, gridWidth int) (*grid, error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	cellPx := width / gridWidth
	if cellPx < 1 {
		return nil, fmt.Errorf("gridWidth: %d exceeds image width %d", gridWidth, width)
	}
	rows := height / cellPx
	if rows < 1 {
		return nil, fmt.Errorf("gridWidth: derived cell size %dpx exceeds image height %d", cellPx, height)
	}

	g := &grid{cols: gridWidth, rows: rows, cellPx: cellPx}
	g.colors = make([]Color, 0, gridWidth*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < gridWidth; col++ {
			g.colors = append(g.colors, cellMean(img, col*cellPx, row*cellPx, cellPx))
		}
	}
	return g, nil
}

// cellMean returns the rounded arithmetic mean color of the size×size
// pixel block at (x0, y0).
func cellMean(img *image.NRGBA, x0, y0, size int) Color {
	var rSum, gSum, bSum int
	for y := y0; y < y0+size; y++ {
		i := img.PixOffset(x0, y)
		for x := 0; x < size; x++ {
			rSum += int(img.Pix[i])
			gSum += int(img.Pix[i+1])
			bSum += int(img.Pix[i+2])
			i += 4
		}
	}
	n := size * size
	return Color{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
}

// gridCellID derives the stable cell identifier from the grid position.
func gridCellID(row, col int) string {
	return fmt.Sprintf("r%dc%d", row, col)
}

// neighborIDs returns the ids of the up-to-four edge-sharing neighbors of
// (row, col), in top/right/bottom/left order, omitting grid boundaries.
func (g *grid) neighborIDs(row, col int) []string {
	var ids []string
	if row > 0 {
		ids = append(ids, gridCellID(row-1, col))
	}
	if col < g.cols-1 {
		ids = append(ids, gridCellID(row, col+1))
	}
	if row < g.rows-1 {
		ids = append(ids, gridCellID(row+1, col))
	}
	if col > 0 {
		ids = append(ids, gridCellID(row, col-1))
	}
	return ids
}
