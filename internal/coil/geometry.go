package coil

import "math"

// Point is a coordinate in millimetres, origin at the bottom-left of the outermost turn
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by o
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect is an axis-aligned rectangle in millimetres
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Inset shrinks r by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX + d, MinY: r.MinY + d, MaxX: r.MaxX - d, MaxY: r.MaxY - d}
}

// Empty reports whether r has a non-positive width or height
func (r Rect) Empty() bool {
	return !(r.Width() > 0 && r.Height() > 0)
}

// StrictlyContains reports whether o lies inside r without touching any edge
func (r Rect) StrictlyContains(o Rect) bool {
	return o.MinX > r.MinX && o.MinY > r.MinY && o.MaxX < r.MaxX && o.MaxY < r.MaxY
}

// Corners returns bottom-left, top-left, top-right and bottom-right, the clockwise order
// the spiral walks a turn in.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MinX, Y: r.MaxY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MaxX, Y: r.MinY},
	}
}

// Path is an ordered polyline; consecutive points are joined by straight segments
type Path []Point

// Bounds returns the smallest rectangle containing every point of the path
func (p Path) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	b := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, pt := range p {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}
