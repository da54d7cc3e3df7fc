package math

import "testing"

func TestLinearCurve(t *testing.T) {
	c := LinearCurve()
	for _, x := range []float32{0, 0.25, 0.5, 0.75, 1} {
		if got := c.Evaluate(x); abs(got-x) > 1e-6 {
			t.Errorf("LinearCurve().Evaluate(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestCurveClampsOutsideKeys(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 0.2, Value: 3},
		Keyframe{Time: 0.8, Value: 7},
	)
	if got := c.Evaluate(-1); got != 3 {
		t.Errorf("Evaluate(-1) = %v, want 3", got)
	}
	if got := c.Evaluate(2); got != 7 {
		t.Errorf("Evaluate(2) = %v, want 7", got)
	}
}

func TestCurveHitsKeys(t *testing.T) {
	// keys out of order on purpose
	c := NewCurve(
		Keyframe{Time: 1, Value: 1},
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 0.4, Value: 0.1},
	)
	for _, k := range c.Keys() {
		if got := c.Evaluate(k.Time); abs(got-k.Value) > 1e-6 {
			t.Errorf("Evaluate(%v) = %v, want %v", k.Time, got, k.Value)
		}
	}
}

func TestCurveFlatTangentsEase(t *testing.T) {
	c := NewCurve(Keyframe{Time: 0, Value: 0}, Keyframe{Time: 1, Value: 1})
	if got := c.Evaluate(0.5); abs(got-0.5) > 1e-6 {
		t.Errorf("Evaluate(0.5) = %v, want 0.5", got)
	}
	if got := c.Evaluate(0.1); got >= 0.1 {
		t.Errorf("Evaluate(0.1) = %v, want < 0.1 for an ease-in", got)
	}
}

func TestEmptyCurveIsIdentity(t *testing.T) {
	var c Curve
	if got := c.Evaluate(0.37); got != 0.37 {
		t.Errorf("Curve{}.Evaluate(0.37) = %v, want 0.37", got)
	}
}

func TestNewCurveCopiesKeys(t *testing.T) {
	keys := []Keyframe{{Time: 0, Value: 0}, {Time: 1, Value: 1}}
	c := NewCurve(keys...)
	keys[1].Value = 100
	if got := c.Evaluate(1); got != 1 {
		t.Errorf("Evaluate(1) = %v after mutating input, want 1", got)
	}
}
