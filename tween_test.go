package soundstage

import "testing"

func TestParameterSetWithoutTweenIsInstant(t *testing.T) {
	p := NewParameter(1)
	p.Set(5, nil)
	if p.Value() != 5 {
		t.Errorf("Value() = %v, want 5", p.Value())
	}
	if p.Tweening() {
		t.Error("Tweening() should be false after instant set")
	}
}

func TestParameterLinearTweenHalfway(t *testing.T) {
	p := NewParameter(0)
	p.Set(10, &Tween{DurationSeconds: 2, Easing: Linear})

	p.Update(1)
	if p.Value() != 5 {
		t.Errorf("Value() at halfway = %v, want 5", p.Value())
	}
	if !p.Tweening() {
		t.Error("Tweening() should still be true mid-tween")
	}
}

func TestParameterTweenCompletesAndSnapsToTarget(t *testing.T) {
	p := NewParameter(0)
	p.Set(10, &Tween{DurationSeconds: 2, Easing: Linear})

	p.Update(1)
	done := p.Update(1.5) // overshoot duration
	if !done {
		t.Error("Update should return true on the completing tick")
	}
	if p.Value() != 10 {
		t.Errorf("Value() after completion = %v, want 10", p.Value())
	}
	if p.Tweening() {
		t.Error("Tweening() should be false after completion")
	}
}

func TestParameterZeroDurationTweenIsInstant(t *testing.T) {
	p := NewParameter(0)
	p.Set(7, &Tween{DurationSeconds: 0})
	if p.Value() != 7 || p.Tweening() {
		t.Errorf("zero-duration tween should apply instantly, got value=%v tweening=%v", p.Value(), p.Tweening())
	}
}

func TestEasingCurvesStayWithinRange(t *testing.T) {
	for _, e := range []Easing{Linear, EaseIn, EaseOut, EaseInOut} {
		for _, t0 := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if v := e.apply(t0); v < -0.0001 || v > 1.0001 {
				t.Errorf("%v.apply(%v) = %v, want within [0,1]", e, t0, v)
			}
		}
	}
}

func TestEasingEndpointsAreIdentity(t *testing.T) {
	for _, e := range []Easing{Linear, EaseIn, EaseOut, EaseInOut} {
		if got := e.apply(0); got != 0 {
			t.Errorf("%v.apply(0) = %v, want 0", e, got)
		}
		if got := e.apply(1); got != 1 {
			t.Errorf("%v.apply(1) = %v, want 1", e, got)
		}
	}
}

func TestEasingClampsOutOfRangeInput(t *testing.T) {
	if Linear.apply(-1) != 0 {
		t.Error("apply(-1) should clamp to 0")
	}
	if Linear.apply(2) != 1 {
		t.Error("apply(2) should clamp to 1")
	}
}
