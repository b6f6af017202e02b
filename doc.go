/*
Package quilt converts raster images into quilt pattern descriptions: a
tessellation of colored fabric cells over a quantized palette, annotated
with real-world stitching measurements and serialized as an SVG document.

Two tiling strategies are supported. The grid path downsamples the image
into square cells (rendered as pixels, triangles or hexagons), while the
voronoi path places seed points (optionally biased toward detected edges),
relaxes them with Lloyd iterations and derives organic cell polygons from
the dual of a Delaunay triangulation.

Example generating a pixel-grid pattern and writing the SVG output:

	package main

	import (
		"image"
		"os"

		"github.com/fabricweave/quilt"
	)

	func main() {
		f, _ := os.Open("source.png")
		defer f.Close()
		src, _, _ := image.Decode(f)

		s := quilt.NewSettings()
		s.Shape = quilt.ShapePixel
		s.GridWidth = 40
		s.NumColors = 6

		p := &quilt.Processor{Settings: s}
		design, err := p.Process(src)
		if err != nil {
			panic(err)
		}

		out, _ := os.Create("pattern.svg")
		defer out.Close()
		quilt.SerializeSVG(design, out)
	}

The voronoi path only differs in the settings:

	s.Shape = quilt.ShapeVoronoi
	s.NumSeeds = 200
	s.RelaxIterations = 2
	s.EdgeWeighted = true

Each pipeline run is a pure function from one image and one settings value
to one immutable Design; concurrent runs with separate Processor values are
safe because nothing is shared between calls.
*/
package quilt
