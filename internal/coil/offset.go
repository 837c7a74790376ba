package coil

import (
	"fmt"
	"math"
)

const axisEpsilon = 1e-12

type offsetSegment struct {
	from, to Point
	vertical bool
}

// OffsetInside shifts a clockwise axis-aligned polyline by distance towards the right of
// travel, which is the inside of a clockwise spiral. Vertices are recovered by
// intersecting consecutive shifted segments, so the result has as many points as path.
func OffsetInside(path Path, distance float64) (Path, error) {
	if len(path) < 2 {
		return nil, nil
	}

	segs := make([]offsetSegment, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		p, q := path[i], path[i+1]
		dx, dy := q.X-p.X, q.Y-p.Y

		if math.Abs(dx) > axisEpsilon && math.Abs(dy) > axisEpsilon {
			return nil, fmt.Errorf("segment %d from %v to %v is not axis-aligned", i, p, q)
		}
		if math.Abs(dx) <= axisEpsilon && math.Abs(dy) <= axisEpsilon {
			return nil, fmt.Errorf("segment %d at %v has zero length", i, p)
		}

		var shift Point
		vertical := math.Abs(dx) <= axisEpsilon
		switch {
		case vertical && dy > 0:
			shift.X = distance
		case vertical:
			shift.X = -distance
		case dx > 0:
			shift.Y = -distance
		default:
			shift.Y = distance
		}

		segs = append(segs, offsetSegment{from: p.Add(shift), to: q.Add(shift), vertical: vertical})
	}

	out := make(Path, 0, len(path))
	out = append(out, segs[0].from)
	for i := 1; i < len(segs); i++ {
		prev, next := segs[i-1], segs[i]
		switch {
		case prev.vertical == next.vertical:
			out = append(out, next.from)
		case prev.vertical:
			out = append(out, Point{X: prev.from.X, Y: next.from.Y})
		default:
			out = append(out, Point{X: next.from.X, Y: prev.from.Y})
		}
	}
	out = append(out, segs[len(segs)-1].to)

	return out, nil
}
