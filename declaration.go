package fade

import (
	"slices"
	"sort"
	"time"
)

// Globals is the evaluation context shared by every feature of a layer.
type Globals struct {
	// Zoom is the current map zoom level.
	Zoom float64

	// Time is the sampling instant. The zero value means "now" according
	// to the transition's clock.
	Time time.Time

	// Duration is the transition duration of the property being
	// evaluated. Transitions set it before evaluating their declaration.
	Duration time.Duration

	// Extra carries evaluator-specific fields.
	Extra map[string]any
}

// WithTime returns a copy of g sampled at t.
func (g Globals) WithTime(t time.Time) Globals {
	g.Time = t
	return g
}

// WithDuration returns a copy of g carrying d.
func (g Globals) WithDuration(d time.Duration) Globals {
	g.Duration = d
	return g
}

// Feature holds per-feature properties. It is forwarded unchanged to
// declarations.
type Feature map[string]any

// Declaration computes a concrete property value from its context.
type Declaration[T any] interface {
	Calculate(globals Globals, feature Feature) T
}

// DeclarationFunc adapts a function to a Declaration.
type DeclarationFunc[T any] func(globals Globals, feature Feature) T

// Calculate calls f.
func (f DeclarationFunc[T]) Calculate(globals Globals, feature Feature) T {
	return f(globals, feature)
}

// Constant is a declaration whose value never varies. Values of reference
// types are returned as-is; use ArrayConstant for numeric arrays handed to
// callers that may modify them.
type Constant[T any] struct {
	Value T
}

// Calculate returns the constant value.
func (c Constant[T]) Calculate(Globals, Feature) T {
	return c.Value
}

// ArrayConstant is a constant numeric array declaration. Every evaluation
// returns a fresh copy.
type ArrayConstant []float64

// Calculate returns a copy of the array.
func (a ArrayConstant) Calculate(Globals, Feature) []float64 {
	return slices.Clone(a)
}

// Stop is a zoom level and the value declared at it.
type Stop struct {
	Zoom  float64 `json:"zoom" yaml:"zoom"`
	Value float64 `json:"value" yaml:"value"`
}

// ZoomStops is a numeric declaration that interpolates linearly between
// zoom stops and holds the outermost values beyond them.
type ZoomStops []Stop

// Calculate evaluates the stops at globals.Zoom.
func (s ZoomStops) Calculate(globals Globals, _ Feature) float64 {
	if len(s) == 0 {
		return 0
	}
	stops := s
	if !sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Zoom < stops[j].Zoom }) {
		stops = append(ZoomStops(nil), s...)
		sort.Slice(stops, func(i, j int) bool { return stops[i].Zoom < stops[j].Zoom })
	}

	z := globals.Zoom
	if z <= stops[0].Zoom {
		return stops[0].Value
	}
	last := stops[len(stops)-1]
	if z >= last.Zoom {
		return last.Value
	}

	i := sort.Search(len(stops), func(i int) bool { return stops[i].Zoom > z })
	lo, hi := stops[i-1], stops[i]
	return InterpolateNumber(lo.Value, hi.Value, (z-lo.Zoom)/(hi.Zoom-lo.Zoom))
}
