package coil

import "fmt"

// InvalidParameterError reports a coil parameter outside its allowed range
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

// GeometryError reports a turn count that does not fit inside the outer dimensions
type GeometryError struct {
	Requested   int
	Achievable  int
	OuterWidth  float64
	OuterHeight float64
	Pitch       float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%d turns at %g mm pitch do not fit in %g x %g mm (at most %d turns fit)",
		e.Requested, e.Pitch, e.OuterWidth, e.OuterHeight, e.Achievable)
}
