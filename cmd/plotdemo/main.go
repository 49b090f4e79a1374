// Command plotdemo renders a small plot with the plotgpu canvas and
// saves it as PNG.
package main

import (
	"flag"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/plotgpu"
	"github.com/gogpu/plotgpu/backend/software"
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
	"github.com/gogpu/plotgpu/tess"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "plot.png", "output file")
		scale     = flag.Float64("scale", 1, "display scale factor")
		marker    = flag.String("marker", "circle", "scatter marker: point, circle, square, triangle, diamond, star, plus, cross")
		lineStyle = flag.String("linestyle", "--", "line style: solid, dashed, dotted, dashdot or -, --, :, -.")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		plotgpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	kind, ok := path.ParseMarker(*marker)
	if !ok {
		log.Fatalf("Unknown marker %q", *marker)
	}
	ls, ok := tess.ParseLineStyle(*lineStyle)
	if !ok {
		log.Fatalf("Unknown line style %q", *lineStyle)
	}

	dev := software.New(*width, *height, software.WithBackground(color.White))
	c, err := plotgpu.NewCanvas(*width, *height,
		plotgpu.WithDevice(dev),
		plotgpu.WithScaleFactor(float32(*scale)))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer c.Close()

	area := plotArea(*width, *height)
	clip := geom.ClipTo(area)

	steps := []func() error{
		func() error { return drawHeatmap(c, area) },
		func() error { return drawAxes(c, area) },
		func() error { return drawSine(c, area, ls, clip) },
		func() error { return drawScatter(c, area, kind, clip) },
		func() error { return drawBlob(c, area) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			log.Fatalf("Failed to draw: %v", err)
		}
	}
	if err := c.Flush(); err != nil {
		log.Fatalf("Failed to flush: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := dev.WritePNG(f); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Plot saved to %s (%dx%d)\n", *output, *width, *height)
}

// plotArea leaves a margin of a tenth of the canvas for the axes.
func plotArea(w, h int) geom.Bounds {
	mx, my := float32(w)/10, float32(h)/10
	return geom.NewBounds(mx, my, float32(w)-mx, float32(h)-my)
}

// toArea maps unit data coordinates into the plot area.
func toArea(area geom.Bounds) geom.Affine2D {
	return geom.UnitBounds().AffineTo(area)
}

func drawAxes(c *plotgpu.Canvas, area geom.Bounds) error {
	frame := path.Polyline[path.Data](geom.Pt(0, 1), geom.Pt(0, 0), geom.Pt(1, 0))
	style := new(plotgpu.PathStyle).SetEdge(plotgpu.Black).SetLineWidth(1.5).SetCap(tess.CapProjecting).SetJoin(tess.JoinMiter)
	if err := c.DrawPath(path.Transform(frame, toArea(area)), style, geom.NoClip); err != nil {
		return err
	}

	tick := new(plotgpu.PathStyle).SetEdge(plotgpu.Gray).SetLineWidth(1)
	for i := 0; i <= 10; i++ {
		x := area.XMin() + float32(i)*area.Width()/10
		t := path.Polyline[path.Canvas](geom.Pt(x, area.YMin()), geom.Pt(x, area.YMin()-6))
		if err := c.DrawPath(t, tick, geom.NoClip); err != nil {
			return err
		}
	}
	return nil
}

func drawSine(c *plotgpu.Canvas, area geom.Bounds, ls tess.LineStyle, clip geom.Clip) error {
	const n = 200
	pts := make([]geom.Point, n)
	for i := range pts {
		x := float64(i) / (n - 1)
		pts[i] = geom.Pt(float32(x), float32(0.5+0.4*math.Sin(4*math.Pi*x)))
	}
	line := path.Transform(path.Polyline[path.Data](pts...), toArea(area))
	style := new(plotgpu.PathStyle).SetEdge(plotgpu.Blue).SetLineWidth(2).SetLineStyle(ls).SetJoin(tess.JoinRound)
	return c.DrawPath(line, style, clip)
}

func drawScatter(c *plotgpu.Canvas, area geom.Bounds, kind path.MarkerKind, clip geom.Clip) error {
	const n = 40
	m := toArea(area)
	xy := make([]geom.Point, n)
	sizes := make([]float32, n)
	colors := make([]plotgpu.Color, n)
	for i := range xy {
		x := float64(i) / (n - 1)
		xy[i] = m.Transform(geom.Pt(float32(x), float32(0.5+0.3*math.Cos(3*math.Pi*x))))
		sizes[i] = float32(0.6 + x)
		colors[i] = plotgpu.RGBA8(uint8(255*x), 64, uint8(255*(1-x)), 220)
	}
	style := new(plotgpu.PathStyle).SetEdge(plotgpu.Black).SetLineWidth(0.75)
	return c.DrawMarkers(path.Marker(kind, c.ToPx(4)), xy, sizes, colors, style, clip)
}

// drawHeatmap shades the plot area with a per-vertex colored grid.
func drawHeatmap(c *plotgpu.Canvas, area geom.Bounds) error {
	const cells = 16
	m := toArea(area)
	var verts []geom.Point
	var colors []plotgpu.Color
	for j := 0; j <= cells; j++ {
		for i := 0; i <= cells; i++ {
			u, v := float32(i)/cells, float32(j)/cells
			verts = append(verts, m.Transform(geom.Pt(u, v)))
			d := math.Hypot(float64(u-0.5), float64(v-0.5))
			colors = append(colors, plotgpu.RGBA8(255, uint8(255-200*d), 180, 90))
		}
	}
	var tris [][3]uint32
	for j := uint32(0); j < cells; j++ {
		for i := uint32(0); i < cells; i++ {
			a := j*(cells+1) + i
			tris = append(tris, [3]uint32{a, a + 1, a + cells + 2}, [3]uint32{a, a + cells + 2, a + cells + 1})
		}
	}
	return c.DrawTriangles(verts, colors, tris, geom.NoClip)
}

// drawBlob fills an annotation shape built from cubic curves.
func drawBlob(c *plotgpu.Canvas, area geom.Bounds) error {
	cx := area.XMax() - area.Width()/8
	cy := area.YMax() - area.Height()/6
	r := min(area.Width(), area.Height()) / 12
	blob := path.NewBuilder[path.Canvas]().
		MoveTo(cx-r, cy).
		CubicTo(cx-r, cy+r, cx+r, cy+r, cx+r, cy).
		QuadTo(cx, cy-2*r, cx-r, cy).
		Close().
		Build()
	style := new(plotgpu.PathStyle).SetFace(plotgpu.Hex("#ffa500c0")).SetEdge(plotgpu.Hex("#804000")).SetLineWidth(1)
	return c.DrawPath(blob, style, geom.NoClip)
}
