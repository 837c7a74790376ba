// Package coil generates the corner coordinates of a rectangular spiral trace.
//
// The spiral starts at the bottom-left corner of the outermost turn and winds clockwise
// inward: up the left edge, across the top, down the right edge, then left along the
// bottom into the next turn. Every segment is axis-aligned. Turn t occupies the outer
// rectangle inset by t*(TraceWidth+Gap); the first corner of every turn after the first
// sits one pitch lower so the previous turn can step into it horizontally.
//
// Generate is a pure function and safe for concurrent use.
package coil

import (
	"fmt"
	"math"
)

// TurnLimit is the largest turn count Validate accepts. It bounds the memory Generate
// allocates, which is proportional to the turn count.
const TurnLimit = 10000

// Spec holds the coil parameters. All lengths are millimetres.
type Spec struct {
	OuterWidth   float64
	OuterHeight  float64
	TraceWidth   float64
	Gap          float64
	Turns        int
	IncludeInner bool
}

// Pitch is the centre-to-centre spacing between adjacent turns
func (s Spec) Pitch() float64 {
	return s.TraceWidth + s.Gap
}

// Validate checks the value range of every parameter
func (s Spec) Validate() error {
	if err := positive("outer_width", s.OuterWidth); err != nil {
		return err
	}
	if err := positive("outer_height", s.OuterHeight); err != nil {
		return err
	}
	if err := positive("trace_width", s.TraceWidth); err != nil {
		return err
	}
	if math.IsNaN(s.Gap) || math.IsInf(s.Gap, 0) || s.Gap < 0 {
		return &InvalidParameterError{Field: "gap", Value: s.Gap, Reason: "must be zero or a positive finite number"}
	}
	if s.Turns < 1 {
		return &InvalidParameterError{Field: "turns", Value: float64(s.Turns), Reason: "must be a positive integer"}
	}
	if s.Turns > TurnLimit {
		return &InvalidParameterError{Field: "turns", Value: float64(s.Turns), Reason: fmt.Sprintf("must be at most %d", TurnLimit)}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidParameterError{Field: field, Value: v, Reason: "must be a positive finite number"}
	}
	return nil
}

// Turn is one loop of the spiral
type Turn struct {
	Index int
	// Bounds is the nominal rectangle of the turn.
	Bounds Rect
	// Corners are the path vertices P1..P4 in traversal order.
	Corners [4]Point
}

// Coil is the generated geometry. Inner and InnerTurns are nil unless Spec.IncludeInner is set.
type Coil struct {
	Spec       Spec
	Turns      []Turn
	Outer      Path
	InnerTurns []Turn
	Inner      Path
}

// Generate computes the outer edge of the spiral and, if requested, its inner edge.
// It returns *InvalidParameterError for out-of-range input and *GeometryError when the
// requested turns do not fit.
func Generate(spec Spec) (*Coil, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	pitch := spec.Pitch()
	if !fits(spec.Turns, spec.OuterWidth, spec.OuterHeight, pitch) {
		return nil, geometryError(spec)
	}

	outer := Rect{MaxX: spec.OuterWidth, MaxY: spec.OuterHeight}
	c := &Coil{
		Spec:  spec,
		Turns: make([]Turn, 0, spec.Turns),
		Outer: make(Path, 0, 4*spec.Turns),
	}

	for t := 0; t < spec.Turns; t++ {
		bounds := outer.Inset(float64(t) * pitch)
		if bounds.Empty() {
			return nil, geometryError(spec)
		}

		corners := bounds.Corners()
		if t > 0 {
			// lead-in from the previous turn's bottom edge
			corners[0].Y = float64(t-1) * pitch
		}

		c.Turns = append(c.Turns, Turn{Index: t, Bounds: bounds, Corners: corners})
		c.Outer = append(c.Outer, corners[:]...)
	}

	if spec.IncludeInner {
		if err := c.addInnerEdge(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Coil) addInnerEdge() error {
	inner, err := OffsetInside(c.Outer, c.Spec.TraceWidth)
	if err != nil {
		return err
	}

	turns := make([]Turn, 0, len(c.Turns))
	for _, t := range c.Turns {
		bounds := t.Bounds.Inset(c.Spec.TraceWidth)
		if bounds.Empty() {
			return geometryError(c.Spec)
		}
		var corners [4]Point
		copy(corners[:], inner[4*t.Index:4*t.Index+4])
		turns = append(turns, Turn{Index: t.Index, Bounds: bounds, Corners: corners})
	}

	c.Inner = inner
	c.InnerTurns = turns
	return nil
}

// fits applies the feasibility rule turns*2*pitch < min(width, height)/2
func fits(turns int, width, height, pitch float64) bool {
	return float64(turns)*2*pitch < math.Min(width, height)/2
}

// MaxTurns returns the largest turn count Generate accepts for the given dimensions,
// capped at TurnLimit, or 0 when none fit or the arguments are out of range.
func MaxTurns(width, height, traceWidth, gap float64) int {
	pitch := traceWidth + gap
	if !(width > 0) || !(height > 0) || !(pitch > 0) || math.IsInf(pitch, 0) {
		return 0
	}

	limit := math.Min(width, height) / 2
	if math.IsInf(limit, 0) || limit/(2*pitch) > TurnLimit+1 {
		return TurnLimit
	}

	n := int(limit / (2 * pitch))
	for n > 0 && !fits(n, width, height, pitch) {
		n--
	}
	for n < TurnLimit && fits(n+1, width, height, pitch) {
		n++
	}
	return min(n, TurnLimit)
}

func geometryError(spec Spec) *GeometryError {
	return &GeometryError{
		Requested:   spec.Turns,
		Achievable:  MaxTurns(spec.OuterWidth, spec.OuterHeight, spec.TraceWidth, spec.Gap),
		OuterWidth:  spec.OuterWidth,
		OuterHeight: spec.OuterHeight,
		Pitch:       spec.Pitch(),
	}
}
