package fade

import "slices"

// Kind is the declared value type of a style property.
type Kind int

const (
	// KindNumber is a scalar numeric property (opacity, width, radius).
	KindNumber Kind = iota
	// KindColor is an RGBA color property.
	KindColor
	// KindArray is a fixed-length numeric array (offsets, translations).
	KindArray
	// KindString is a free-form string property (image or pattern names).
	KindString
	// KindEnum is an enumerated keyword property.
	KindEnum
	// KindBoolean is a boolean property.
	KindBoolean
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Function describes how a property's value varies with zoom.
type Function int

const (
	// FunctionInterpolated values vary continuously between stops.
	FunctionInterpolated Function = iota
	// FunctionPiecewiseConstant values hold between stops and jump at them.
	FunctionPiecewiseConstant
)

// Reference describes a style property to the transition engine.
type Reference struct {
	Type       Kind
	Function   Function
	Transition bool
}

// Strategy is the blend strategy resolved from a Reference.
type Strategy int

const (
	// StrategyNone has no blend function; transitions using it are instant.
	StrategyNone Strategy = iota
	// StrategyNumber blends scalars linearly.
	StrategyNumber
	// StrategyColor blends colors channel by channel.
	StrategyColor
	// StrategyArray blends numeric arrays element by element.
	StrategyArray
	// StrategyCrossFade pairs discrete values for a rendered cross-fade.
	StrategyCrossFade
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyNumber:
		return "number"
	case StrategyColor:
		return "color"
	case StrategyArray:
		return "array"
	case StrategyCrossFade:
		return "crossfade"
	default:
		return "unknown"
	}
}

// Strategy resolves the blend strategy for the referenced property.
// Piecewise-constant transitionable properties cross-fade regardless of
// their value type.
func (r Reference) Strategy() Strategy {
	if r.Function == FunctionPiecewiseConstant && r.Transition {
		return StrategyCrossFade
	}
	switch r.Type {
	case KindNumber:
		return StrategyNumber
	case KindColor:
		return StrategyColor
	case KindArray:
		return StrategyArray
	default:
		return StrategyNone
	}
}

// Interpolator blends from and to by the eased progress t.
type Interpolator[T any] func(from, to T, t float64) T

// interpolatorFor returns the blend function of s typed for T, or nil when
// s has none or its value type is not T.
func interpolatorFor[T any](s Strategy) Interpolator[T] {
	var fn any
	switch s {
	case StrategyNumber:
		fn = Interpolator[float64](InterpolateNumber)
	case StrategyColor:
		fn = Interpolator[Color](InterpolateColor)
	case StrategyArray:
		fn = Interpolator[[]float64](InterpolateArray)
	case StrategyCrossFade:
		fn = Interpolator[*CrossFaded](InterpolateCrossFade)
	default:
		return nil
	}
	interp, ok := fn.(Interpolator[T])
	if !ok {
		return nil
	}
	return interp
}

// InterpolateNumber blends two scalars linearly.
func InterpolateNumber(from, to, t float64) float64 {
	return from*(1-t) + to*t
}

// InterpolateArray blends two numeric arrays element by element. Arrays of
// different lengths cannot be blended and resolve to a copy of to.
func InterpolateArray(from, to []float64, t float64) []float64 {
	if len(from) != len(to) {
		return slices.Clone(to)
	}
	out := make([]float64, len(to))
	for i := range to {
		out[i] = InterpolateNumber(from[i], to[i], t)
	}
	return out
}
