package plot

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/coilgen/coilgen/internal/coil"
)

var (
	gridColor  = gg.RGB(0.88, 0.88, 0.88)
	outerColor = gg.RGB(0.12, 0.47, 0.71)
	innerColor = gg.RGB(1.0, 0.5, 0.05)
)

// PNG draws the outer edge, and the inner edge when present, and encodes the canvas as PNG
func PNG(w io.Writer, c *coil.Coil, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	bounds := c.Outer.Bounds()
	v := newViewport(bounds, opts)

	if opts.Grid {
		if err := drawGrid(dc, v, bounds, opts.gridStep(bounds)); err != nil {
			return err
		}
	}

	if err := strokePath(dc, v, c.Outer, outerColor, 2); err != nil {
		return fmt.Errorf("failed to draw outer path: %w", err)
	}
	if len(c.Inner) > 0 {
		if err := strokePath(dc, v, c.Inner, innerColor, 1.5); err != nil {
			return fmt.Errorf("failed to draw inner path: %w", err)
		}
	}

	return dc.EncodePNG(w)
}

func drawGrid(dc *gg.Context, v viewport, bounds coil.Rect, step float64) error {
	dc.SetColor(gridColor.Color())
	dc.SetLineWidth(1)

	for _, x := range gridTicks(bounds.MinX, bounds.MaxX, step) {
		x0, y0 := v.project(coil.Point{X: x, Y: bounds.MinY})
		x1, y1 := v.project(coil.Point{X: x, Y: bounds.MaxY})
		dc.DrawLine(x0, y0, x1, y1)
	}
	for _, y := range gridTicks(bounds.MinY, bounds.MaxY, step) {
		x0, y0 := v.project(coil.Point{X: bounds.MinX, Y: y})
		x1, y1 := v.project(coil.Point{X: bounds.MaxX, Y: y})
		dc.DrawLine(x0, y0, x1, y1)
	}

	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("failed to draw grid: %w", err)
	}
	return nil
}

func strokePath(dc *gg.Context, v viewport, path coil.Path, col gg.RGBA, width float64) error {
	if len(path) < 2 {
		return nil
	}

	dc.SetColor(col.Color())
	dc.SetLineWidth(width)

	x, y := v.project(path[0])
	dc.MoveTo(x, y)
	for _, p := range path[1:] {
		x, y = v.project(p)
		dc.LineTo(x, y)
	}
	return dc.Stroke()
}
