package coil

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertAxisAligned(t *testing.T, path Path) {
	t.Helper()
	for i := 0; i+1 < len(path); i++ {
		dx := math.Abs(path[i+1].X - path[i].X)
		dy := math.Abs(path[i+1].Y - path[i].Y)
		sameX := dx < tolerance
		sameY := dy < tolerance
		assert.True(t, sameX != sameY, "segment %d %v -> %v must move along exactly one axis", i, path[i], path[i+1])
	}
}

func TestGenerate_SingleTurnIsOuterRectangle(t *testing.T) {
	specs := []Spec{
		{OuterWidth: 10, OuterHeight: 6, TraceWidth: 0.15, Gap: 0.15, Turns: 1},
		{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 0, Turns: 1},
		{OuterWidth: 3.5, OuterHeight: 80, TraceWidth: 0.1, Gap: 0.2, Turns: 1},
	}

	for _, spec := range specs {
		c, err := Generate(spec)
		require.NoError(t, err)

		require.Len(t, c.Outer, 4)
		assert.Equal(t, Path{
			{X: 0, Y: 0},
			{X: 0, Y: spec.OuterHeight},
			{X: spec.OuterWidth, Y: spec.OuterHeight},
			{X: spec.OuterWidth, Y: 0},
		}, c.Outer)
		assert.Equal(t, spec.OuterWidth, c.Turns[0].Bounds.Width())
		assert.Equal(t, spec.OuterHeight, c.Turns[0].Bounds.Height())
	}
}

func TestGenerate_ThreeTurnExample(t *testing.T) {
	c, err := Generate(Spec{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: 3})
	require.NoError(t, err)

	require.Len(t, c.Outer, 12)
	require.Len(t, c.Turns, 3)
	assert.Nil(t, c.Inner)
	assert.Nil(t, c.InnerTurns)

	sizes := []float64{50, 44, 38}
	for i, want := range sizes {
		assert.InDelta(t, want, c.Turns[i].Bounds.Width(), tolerance, "turn %d width", i+1)
		assert.InDelta(t, want, c.Turns[i].Bounds.Height(), tolerance, "turn %d height", i+1)
	}

	assert.Equal(t, Path{
		{0, 0}, {0, 50}, {50, 50}, {50, 0},
		{3, 0}, {3, 47}, {47, 47}, {47, 3},
		{6, 3}, {6, 44}, {44, 44}, {44, 6},
	}, c.Outer)
}

func TestGenerate_PathIsAxisAligned(t *testing.T) {
	c, err := Generate(Spec{OuterWidth: 40, OuterHeight: 25, TraceWidth: 0.5, Gap: 0.7, Turns: 5, IncludeInner: true})
	require.NoError(t, err)

	assert.Len(t, c.Outer, 4*5)
	assert.Len(t, c.Inner, len(c.Outer))
	assertAxisAligned(t, c.Outer)
	assertAxisAligned(t, c.Inner)
}

func TestGenerate_TurnsAreStrictlyNested(t *testing.T) {
	spec := Spec{OuterWidth: 30, OuterHeight: 18, TraceWidth: 0.4, Gap: 0.3, Turns: 6}
	c, err := Generate(spec)
	require.NoError(t, err)

	step := 2 * (spec.TraceWidth + spec.Gap)
	for i := 0; i+1 < len(c.Turns); i++ {
		cur, next := c.Turns[i].Bounds, c.Turns[i+1].Bounds
		assert.True(t, cur.StrictlyContains(next), "turn %d must be inside turn %d", i+1, i)
		assert.InDelta(t, cur.Width()-step, next.Width(), tolerance)
		assert.InDelta(t, cur.Height()-step, next.Height(), tolerance)
	}
}

func TestGenerate_InnerEdgeInsetByTraceWidth(t *testing.T) {
	spec := Spec{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: 3, IncludeInner: true}
	c, err := Generate(spec)
	require.NoError(t, err)

	assert.Equal(t, Path{
		{2, 0}, {2, 48}, {48, 48}, {48, 2},
		{5, 2}, {5, 45}, {45, 45}, {45, 5},
		{8, 5}, {8, 42}, {42, 42}, {42, 6},
	}, c.Inner)

	require.Len(t, c.InnerTurns, len(c.Turns))
	for i, inner := range c.InnerTurns {
		outer := c.Turns[i].Bounds
		assert.True(t, outer.StrictlyContains(inner.Bounds))
		assert.InDelta(t, spec.TraceWidth, inner.Bounds.MinX-outer.MinX, tolerance)
		assert.InDelta(t, spec.TraceWidth, inner.Bounds.MinY-outer.MinY, tolerance)
		assert.InDelta(t, spec.TraceWidth, outer.MaxX-inner.Bounds.MaxX, tolerance)
		assert.InDelta(t, spec.TraceWidth, outer.MaxY-inner.Bounds.MaxY, tolerance)

		// Only P2, P3 and the x of P1 sit on the inset rectangle. P1.y and P4 belong to the
		// lead steps between turns: inner P1 of turn 2 is (5,2) while the outer turn 2
		// rectangle starts at y=3, so those corners are pinned by the exact path above.
		want := inner.Bounds.Corners()
		assert.Equal(t, want[1], inner.Corners[1])
		assert.Equal(t, want[2], inner.Corners[2])
		assert.Equal(t, want[0].X, inner.Corners[0].X)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	spec := Spec{OuterWidth: 10, OuterHeight: 6, TraceWidth: 0.15, Gap: 0.15, Turns: 4, IncludeInner: true}

	first, err := Generate(spec)
	require.NoError(t, err)
	second, err := Generate(spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_TurnsDoNotFit(t *testing.T) {
	_, err := Generate(Spec{OuterWidth: 10, OuterHeight: 10, TraceWidth: 1, Gap: 1, Turns: 10})
	require.Error(t, err)

	var geomErr *GeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, 10, geomErr.Requested)
	assert.Equal(t, 1, geomErr.Achievable)
	assert.Equal(t, 2.0, geomErr.Pitch)
	assert.Contains(t, err.Error(), "at most 1 turns fit")
}

func TestGenerate_OneTurnPastLimit(t *testing.T) {
	limit := MaxTurns(50, 50, 2, 1)
	require.Equal(t, 4, limit)

	_, err := Generate(Spec{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: limit})
	assert.NoError(t, err)

	_, err = Generate(Spec{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: limit + 1})
	var geomErr *GeometryError
	assert.ErrorAs(t, err, &geomErr)
}

func TestGenerate_InvalidParameters(t *testing.T) {
	base := Spec{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: 3}

	tests := []struct {
		name   string
		modify func(*Spec)
		field  string
	}{
		{"zero turns", func(s *Spec) { s.Turns = 0 }, "turns"},
		{"negative turns", func(s *Spec) { s.Turns = -2 }, "turns"},
		{"turns above limit", func(s *Spec) { s.Turns = TurnLimit + 1 }, "turns"},
		{"negative outer width", func(s *Spec) { s.OuterWidth = -5 }, "outer_width"},
		{"zero outer height", func(s *Spec) { s.OuterHeight = 0 }, "outer_height"},
		{"zero trace width", func(s *Spec) { s.TraceWidth = 0 }, "trace_width"},
		{"negative gap", func(s *Spec) { s.Gap = -0.1 }, "gap"},
		{"NaN width", func(s *Spec) { s.OuterWidth = math.NaN() }, "outer_width"},
		{"infinite height", func(s *Spec) { s.OuterHeight = math.Inf(1) }, "outer_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.modify(&spec)

			c, err := Generate(spec)
			assert.Nil(t, c)

			var paramErr *InvalidParameterError
			require.ErrorAs(t, err, &paramErr)
			assert.Equal(t, tt.field, paramErr.Field)
		})
	}
}

func TestGenerate_TurnLimit(t *testing.T) {
	// a huge outline must not let the turn count drive the allocation
	_, err := Generate(Spec{OuterWidth: 1e300, OuterHeight: 1e300, TraceWidth: 1, Gap: 1, Turns: 1 << 61})
	var paramErr *InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "turns", paramErr.Field)
	assert.Contains(t, err.Error(), "must be at most 10000")

	c, err := Generate(Spec{OuterWidth: 1e6, OuterHeight: 1e6, TraceWidth: 1, Gap: 1, Turns: TurnLimit})
	require.NoError(t, err)
	assert.Len(t, c.Outer, 4*TurnLimit)
}

func TestGenerate_ZeroGapAllowed(t *testing.T) {
	c, err := Generate(Spec{OuterWidth: 20, OuterHeight: 20, TraceWidth: 1, Gap: 0, Turns: 3, IncludeInner: true})
	require.NoError(t, err)
	assert.InDelta(t, 16.0, c.Turns[2].Bounds.Width(), tolerance)
}

func TestMaxTurns(t *testing.T) {
	tests := []struct {
		name                      string
		width, height, trace, gap float64
		want                      int
	}{
		{"square", 50, 50, 2, 1, 4},
		{"limited by height", 100, 10, 1, 1, 1},
		{"exact boundary excluded", 24, 24, 2, 1, 1},
		{"default web form", 10, 6, 0.15, 0.15, 4},
		{"nothing fits", 1, 1, 1, 1, 0},
		{"invalid width", -1, 10, 1, 1, 0},
		{"zero pitch", 10, 10, 0, 0, 0},
		{"capped at turn limit", 1e300, 1e300, 1, 1, TurnLimit},
		{"infinite outline", math.Inf(1), math.Inf(1), 1, 1, TurnLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxTurns(tt.width, tt.height, tt.trace, tt.gap))
		})
	}
}
