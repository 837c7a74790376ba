package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coilgen/coilgen/internal/coil"
)

// PolygonPoints returns the closed outline used by the text export: the outer edge, the
// inner edge walked back out, and the first outer point again. Without an inner edge it is
// the outer edge closed on its start.
func PolygonPoints(c *coil.Coil) coil.Path {
	points := make(coil.Path, 0, len(c.Outer)+len(c.Inner)+1)
	points = append(points, c.Outer...)
	for i := len(c.Inner) - 1; i >= 0; i-- {
		points = append(points, c.Inner[i])
	}
	if len(c.Outer) > 0 {
		points = append(points, c.Outer[0])
	}
	return points
}

// WriteTXT writes the polygon outline as "x y" lines with two decimals, the layout COMSOL
// imports as an interpolation curve.
func WriteTXT(w io.Writer, c *coil.Coil) error {
	bw := bufio.NewWriter(w)
	for i, p := range PolygonPoints(c) {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%.2f %.2f", p.X, p.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}
