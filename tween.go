package soundstage

// Easing selects the interpolation curve a Tween uses between start and
// end. Linear is the only curve the distilled behavior is tested against;
// the others are provided because the tween design explicitly "leaves
// room for easing curves" and a caller may want them for UI-facing fades.
type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

func (e Easing) apply(t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}

// Tween describes an animation of a scalar toward a target over a
// duration, in the given easing.
type Tween struct {
	DurationSeconds float64
	Easing          Easing
}

// tweenState is the in-flight animation a Parameter is running.
type tweenState struct {
	tween Tween
	start float64
	end   float64
	time  float64
}

// Parameter is a scalar that other values may bind to (CachedValue with a
// Value of kind ParameterValue) and that the control plane can animate
// with a Tween.
type Parameter struct {
	value float64
	tween *tweenState
}

// NewParameter returns a Parameter with the given initial value and no
// active tween.
func NewParameter(initial float64) *Parameter {
	return &Parameter{value: initial}
}

// Value returns the parameter's current scalar value.
func (p *Parameter) Value() float64 {
	return p.value
}

// Set assigns the parameter's value. If tween is nil the value changes
// instantly; otherwise it animates from the current value to target over
// tween.DurationSeconds.
func (p *Parameter) Set(target float64, tween *Tween) {
	if tween == nil || tween.DurationSeconds <= 0 {
		p.value = target
		p.tween = nil
		return
	}
	p.tween = &tweenState{tween: *tween, start: p.value, end: target}
}

// Update advances any active tween by dt seconds. Returns true exactly on
// the tick the tween completes (time reaches duration and value snaps to
// end), so callers driving a dependent state machine (e.g. Instance
// fade-outs) know to act this tick.
func (p *Parameter) Update(dt float64) bool {
	if p.tween == nil {
		return false
	}
	ts := p.tween
	ts.time += dt
	if ts.time >= ts.tween.DurationSeconds {
		p.value = ts.end
		p.tween = nil
		return true
	}
	frac := 1.0
	if ts.tween.DurationSeconds > 0 {
		frac = ts.time / ts.tween.DurationSeconds
	}
	eased := ts.tween.Easing.apply(frac)
	p.value = ts.start + (ts.end-ts.start)*eased
	return false
}

// Tweening reports whether the parameter currently has an active tween.
func (p *Parameter) Tweening() bool {
	return p.tween != nil
}
