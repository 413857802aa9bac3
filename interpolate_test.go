package fade

import "testing"

func TestReference_Strategy(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want Strategy
	}{
		{"number", Reference{Type: KindNumber}, StrategyNumber},
		{"color", Reference{Type: KindColor}, StrategyColor},
		{"array", Reference{Type: KindArray}, StrategyArray},
		{"string", Reference{Type: KindString}, StrategyNone},
		{"enum", Reference{Type: KindEnum}, StrategyNone},
		{"boolean", Reference{Type: KindBoolean}, StrategyNone},
		{"pattern", Reference{Type: KindString, Function: FunctionPiecewiseConstant, Transition: true}, StrategyCrossFade},
		{"dasharray", Reference{Type: KindArray, Function: FunctionPiecewiseConstant, Transition: true}, StrategyCrossFade},
		{"piecewise without transition", Reference{Type: KindArray, Function: FunctionPiecewiseConstant}, StrategyArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInterpolatorFor_TypeMatches(t *testing.T) {
	if interpolatorFor[float64](StrategyNumber) == nil {
		t.Error("expected number interpolator for float64")
	}
	if interpolatorFor[Color](StrategyColor) == nil {
		t.Error("expected color interpolator for Color")
	}
	if interpolatorFor[[]float64](StrategyArray) == nil {
		t.Error("expected array interpolator for []float64")
	}
	if interpolatorFor[*CrossFaded](StrategyCrossFade) == nil {
		t.Error("expected cross-fade interpolator for *CrossFaded")
	}
}

func TestInterpolatorFor_Absent(t *testing.T) {
	if interpolatorFor[float64](StrategyNone) != nil {
		t.Error("expected no interpolator for StrategyNone")
	}
	if interpolatorFor[string](StrategyNumber) != nil {
		t.Error("expected no interpolator when the value type does not match")
	}
	if interpolatorFor[float64](StrategyCrossFade) != nil {
		t.Error("expected no cross-fade interpolator for float64")
	}
}

func TestInterpolateNumber(t *testing.T) {
	if v := InterpolateNumber(0, 10, 0); v != 0 {
		t.Errorf("expected 0, got %v", v)
	}
	if v := InterpolateNumber(0, 10, 1); v != 10 {
		t.Errorf("expected 10, got %v", v)
	}
	if v := InterpolateNumber(2, 4, 0.5); v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestInterpolateArray(t *testing.T) {
	got := InterpolateArray([]float64{0, 10}, []float64{10, 20}, 0.5)
	if len(got) != 2 || got[0] != 5 || got[1] != 15 {
		t.Errorf("expected [5 15], got %v", got)
	}
}

func TestInterpolateArray_LengthMismatch(t *testing.T) {
	to := []float64{1, 2, 3}
	got := InterpolateArray([]float64{0}, to, 0.5)
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("expected to snap to %v, got %v", to, got)
	}

	got[0] = 99
	if to[0] != 1 {
		t.Error("expected result to be a copy of to")
	}
}

func TestKind_String(t *testing.T) {
	if KindColor.String() != "color" {
		t.Errorf("expected 'color', got %q", KindColor.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("expected 'unknown', got %q", Kind(99).String())
	}
}
