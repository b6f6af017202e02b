package quilt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// designMeta is the machine-readable block embedded in the SVG document
// so UI layers can recover counts and fabric sizes without re-parsing the
// drawing elements.
type designMeta struct {
	Shape     ShapeType     `json:"shapeType"`
	Palette   []string      `json:"palette"`
	CellCount int           `json:"cellCount"`
	Rows      int           `json:"rows,omitempty"`
	Cols      int           `json:"cols,omitempty"`
	Fabric    FabricSummary `json:"fabric"`
}

// SerializeSVG renders the design as an SVG document. Grid cells become
// rect, triangle or hexagon primitives according to the design shape;
// voronoi cells become one closed polygon each. Every element carries its
// stitching metadata as data- attributes, and a comment embeds the design
// summary as JSON. A design with zero cells still yields a well-formed
// document.
func SerializeSVG(d *Design, w io.Writer) error {
	meta, err := json.Marshal(designMeta{
		Shape:     d.Shape,
		Palette:   d.Palette.Hex(),
		CellCount: len(d.Cells),
		Rows:      d.Rows,
		Cols:      d.Cols,
		Fabric:    d.Fabric,
	})
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	canvas := svg.New(w)
	canvas.Start(d.PixelWidth, d.PixelHeight)
	fmt.Fprintf(canvas.Writer, "<!-- quilt:design %s -->\n", meta)
	canvas.Rect(0, 0, d.PixelWidth, d.PixelHeight, `fill="#ffffff"`)

	for i := range d.Cells {
		writeCell(canvas, &d.Cells[i], d)
	}

	canvas.End()
	return nil
}

// SVG returns the serialized design document as a string.
func (d *Design) SVG() string {
	var buf bytes.Buffer
	// Marshaling a designMeta cannot fail; the error path is unreachable.
	_ = SerializeSVG(d, &buf)
	return buf.String()
}

func writeCell(canvas *svg.SVG, c *Cell, d *Design) {
	attrs := cellAttrs(c, d.Shape)

	switch c.Shape {
	case ShapeVoronoi:
		if d.BorderWidth > 0 {
			attrs += fmt.Sprintf(` stroke="#000000" stroke-width="%.2f"`, d.BorderWidth)
		}
		writePolygon(canvas.Writer, c.Polygon, attrs)
	case ShapeTriangle:
		// Each grid cell splits into two right triangles along its
		// falling diagonal, both cut from the same fabric.
		x, y := c.Rect.X, c.Rect.Y
		w, h := c.Rect.W, c.Rect.H
		writePolygon(canvas.Writer, []Point{{x, y}, {x + w, y}, {x, y + h}}, attrs)
		writePolygon(canvas.Writer, []Point{{x + w, y}, {x + w, y + h}, {x, y + h}}, attrs)
	case ShapeHexagon:
		writePolygon(canvas.Writer, hexagonPoints(c), attrs)
	default:
		canvas.Rect(int(c.Rect.X), int(c.Rect.Y), int(c.Rect.W), int(c.Rect.H), attrs)
	}
}

// cellAttrs renders the fill and the stitching metadata attributes of one
// cell element.
func cellAttrs(c *Cell, shape ShapeType) string {
	var b strings.Builder
	fmt.Fprintf(&b, `fill="%s" data-id="%s" data-edges="%d" data-size-mm="%.2f" data-seam-mm="%.2f"`,
		c.Color.Hex(), c.ID, c.Stitch.Edges, c.Stitch.SizeMm, c.Stitch.SeamAllowanceMm)
	if shape != ShapeVoronoi {
		fmt.Fprintf(&b, ` data-row="%d" data-col="%d"`, c.Stitch.Row, c.Stitch.Col)
		if len(c.Stitch.Neighbors) > 0 {
			fmt.Fprintf(&b, ` data-neighbors="%s"`, strings.Join(c.Stitch.Neighbors, " "))
		}
	}
	return b.String()
}

// writePolygon emits a polygon element with float coordinates; the svgo
// canvas only offers integer polygons, which would snap voronoi vertices
// to the pixel grid.
func writePolygon(w io.Writer, poly []Point, attrs string) {
	var b strings.Builder
	for i, p := range poly {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(w, "<polygon points=\"%s\" %s />\n", b.String(), attrs)
}

// hexagonPoints returns a flat-top hexagon inscribed in the cell
// rectangle. Odd rows shift right by half a cell for a honeycomb look;
// the offset is presentational only and does not alter cell colors or
// fabric math.
func hexagonPoints(c *Cell) []Point {
	x, y := c.Rect.X, c.Rect.Y
	w, h := c.Rect.W, c.Rect.H
	if c.Stitch.Row%2 == 1 {
		x += w / 2
	}
	return []Point{
		{x + w*0.25, y},
		{x + w*0.75, y},
		{x + w, y + h/2},
		{x + w*0.75, y + h},
		{x + w*0.25, y + h},
		{x, y + h/2},
	}
}
