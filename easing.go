package fade

import "math"

// Easing maps normalized progress in [0, 1] to eased progress in [0, 1].
type Easing func(float64) float64

// EaseCubicInOut is the cubic ease-in-out curve attached to every
// non-instant transition. Input is clamped to [0, 1] before evaluation.
func EaseCubicInOut(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 4 * p * p * p
	}
	return (p-1)*(2*p-2)*(2*p-2) + 1
}

// EaseLinear returns the clamped progress unchanged.
func EaseLinear(p float64) float64 {
	return clamp01(p)
}

// clamp01 restricts p to [0, 1]. NaN maps to 0.
func clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p <= 0:
		return 0
	case p >= 1:
		return 1
	default:
		return p
	}
}
