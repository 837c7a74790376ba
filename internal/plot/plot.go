// Package plot renders a generated coil as connected line segments.
package plot

import (
	"fmt"
	"math"

	"github.com/coilgen/coilgen/internal/coil"
)

// Options controls the plot canvas. Sizes are pixels except GridStep, which is millimetres.
type Options struct {
	Width    int
	Height   int
	Margin   int
	Grid     bool
	GridStep float64 // 0 picks a step automatically
}

// DefaultOptions returns an 800x600 canvas with a grid
func DefaultOptions() Options {
	return Options{
		Width:  800,
		Height: 600,
		Margin: 48,
		Grid:   true,
	}
}

func (o Options) validate() error {
	if o.Margin < 0 {
		return fmt.Errorf("plot margin must not be negative, got %d", o.Margin)
	}
	if o.Width <= 2*o.Margin || o.Height <= 2*o.Margin {
		return fmt.Errorf("plot size %dx%d leaves no room inside a %d px margin", o.Width, o.Height, o.Margin)
	}
	if o.GridStep < 0 {
		return fmt.Errorf("grid step must not be negative, got %g", o.GridStep)
	}
	return nil
}

// viewport maps millimetres to pixels with equal aspect. The y axis is flipped so the
// coil origin ends up bottom-left on screen.
type viewport struct {
	bounds  coil.Rect
	scale   float64
	offsetX float64
	offsetY float64
	height  float64
}

func newViewport(bounds coil.Rect, opts Options) viewport {
	innerW := float64(opts.Width - 2*opts.Margin)
	innerH := float64(opts.Height - 2*opts.Margin)

	bw := math.Max(bounds.Width(), 1e-9)
	bh := math.Max(bounds.Height(), 1e-9)
	scale := math.Min(innerW/bw, innerH/bh)

	return viewport{
		bounds:  bounds,
		scale:   scale,
		offsetX: float64(opts.Margin) + (innerW-bw*scale)/2,
		offsetY: float64(opts.Margin) + (innerH-bh*scale)/2,
		height:  float64(opts.Height),
	}
}

func (v viewport) project(p coil.Point) (float64, float64) {
	x := v.offsetX + (p.X-v.bounds.MinX)*v.scale
	y := v.height - (v.offsetY + (p.Y-v.bounds.MinY)*v.scale)
	return x, y
}

// gridTicks returns tick positions in millimetres along [lo, hi]
func gridTicks(lo, hi, step float64) []float64 {
	if step <= 0 || hi <= lo {
		return nil
	}
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// niceStep picks a 1, 2 or 5 times power-of-ten step giving roughly ten grid lines
func niceStep(span float64) float64 {
	if span <= 0 {
		return 0
	}
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r < 1.5:
		return mag
	case r < 3.5:
		return 2 * mag
	case r < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func (o Options) gridStep(bounds coil.Rect) float64 {
	if o.GridStep > 0 {
		return o.GridStep
	}
	return niceStep(math.Max(bounds.Width(), bounds.Height()))
}
