package plot

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/coilgen/coilgen/internal/coil"
)

const (
	svgGridStyle  = "stroke:#e0e0e0;stroke-width:1"
	svgOuterStyle = "fill:none;stroke:#1f77b4;stroke-width:2;stroke-linejoin:miter"
	svgInnerStyle = "fill:none;stroke:#ff7f0e;stroke-width:1.5;stroke-linejoin:miter"
	svgLabelStyle = "font-family:sans-serif;font-size:12px;fill:#333"
)

// SVG draws the same plot as PNG as a vector image with millimetre axis labels
func SVG(w io.Writer, c *coil.Coil, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	bounds := c.Outer.Bounds()
	v := newViewport(bounds, opts)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(fmt.Sprintf("Coil %g x %g mm, %d turns", c.Spec.OuterWidth, c.Spec.OuterHeight, c.Spec.Turns))
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	if opts.Grid {
		step := opts.gridStep(bounds)
		canvas.Group(svgGridStyle)
		for _, x := range gridTicks(bounds.MinX, bounds.MaxX, step) {
			x0, y0 := v.project(coil.Point{X: x, Y: bounds.MinY})
			x1, y1 := v.project(coil.Point{X: x, Y: bounds.MaxY})
			canvas.Line(px(x0), px(y0), px(x1), px(y1))
		}
		for _, y := range gridTicks(bounds.MinY, bounds.MaxY, step) {
			x0, y0 := v.project(coil.Point{X: bounds.MinX, Y: y})
			x1, y1 := v.project(coil.Point{X: bounds.MaxX, Y: y})
			canvas.Line(px(x0), px(y0), px(x1), px(y1))
		}
		canvas.Gend()
	}

	polyline(canvas, v, c.Outer, svgOuterStyle)
	if len(c.Inner) > 0 {
		polyline(canvas, v, c.Inner, svgInnerStyle)
	}

	canvas.Text(opts.Width/2, opts.Height-opts.Margin/3, "x (mm)", svgLabelStyle+";text-anchor:middle")
	canvas.Text(opts.Margin/3, opts.Height/2, "y (mm)", svgLabelStyle+";text-anchor:middle;writing-mode:tb")
	canvas.Text(opts.Margin, opts.Height-opts.Margin+16, formatMM(bounds.MinX), svgLabelStyle)
	canvas.Text(opts.Width-opts.Margin, opts.Height-opts.Margin+16, formatMM(bounds.MaxX), svgLabelStyle+";text-anchor:end")

	canvas.End()
	return ew.err
}

// errWriter keeps the first write error, svgo drops them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func polyline(canvas *svg.SVG, v viewport, path coil.Path, style string) {
	if len(path) < 2 {
		return
	}
	xs := make([]int, len(path))
	ys := make([]int, len(path))
	for i, p := range path {
		x, y := v.project(p)
		xs[i], ys[i] = px(x), px(y)
	}
	canvas.Polyline(xs, ys, style)
}

func px(v float64) int {
	return int(math.Round(v))
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
