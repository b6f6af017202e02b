package quilt

import (
	"image"

	"github.com/fogleman/gg"
)

// RenderPreview rasterizes the design into an RGBA preview image, one
// filled primitive per cell, with cell borders stroked at the configured
// width. It draws exactly the geometry the SVG serializer emits.
func RenderPreview(d *Design, borderWidth float64) image.Image {
	ctx := gg.NewContext(Max(1, d.PixelWidth), Max(1, d.PixelHeight))
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Clear()

	for i := range d.Cells {
		c := &d.Cells[i]
		switch c.Shape {
		case ShapeVoronoi:
			tracePolygon(ctx, c.Polygon)
			fillCell(ctx, c, borderWidth)
		case ShapeTriangle:
			x, y := c.Rect.X, c.Rect.Y
			w, h := c.Rect.W, c.Rect.H
			tracePolygon(ctx, []Point{{x, y}, {x + w, y}, {x, y + h}})
			fillCell(ctx, c, borderWidth)
			tracePolygon(ctx, []Point{{x + w, y}, {x + w, y + h}, {x, y + h}})
			fillCell(ctx, c, borderWidth)
		case ShapeHexagon:
			tracePolygon(ctx, hexagonPoints(c))
			fillCell(ctx, c, borderWidth)
		default:
			ctx.DrawRectangle(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
			fillCell(ctx, c, borderWidth)
		}
	}
	return ctx.Image()
}

func tracePolygon(ctx *gg.Context, poly []Point) {
	if len(poly) == 0 {
		return
	}
	ctx.MoveTo(poly[0].X, poly[0].Y)
	for _, p := range poly[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.ClosePath()
}

func fillCell(ctx *gg.Context, c *Cell, borderWidth float64) {
	col := c.Color.RGBA()
	ctx.SetFillStyle(gg.NewSolidPattern(col))
	if borderWidth > 0 {
		ctx.FillPreserve()
		ctx.SetRGBA(0, 0, 0, 0.25)
		ctx.SetLineWidth(borderWidth)
		ctx.Stroke()
	} else {
		ctx.Fill()
	}
}
