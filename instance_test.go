package soundstage

import (
	"math"
	"testing"
)

func sineData(freqHz, duration float64) SoundData {
	return sineSoundData{freq: freqHz, duration: duration}
}

// sineSoundData is a pure analytic sine wave, used to count zero crossings
// as a cheap proxy for "pitch was rendered at roughly the right frequency".
type sineSoundData struct {
	freq     float64
	duration float64
}

func (s sineSoundData) Duration() float64 { return s.duration }

func (s sineSoundData) FrameAt(pos float64) Frame {
	if pos < 0 || pos > s.duration {
		return Silence
	}
	v := float32(math.Sin(2 * math.Pi * s.freq * pos))
	return Frame{Left: v, Right: v}
}

func TestInstancePlaybackProducesExpectedZeroCrossings(t *testing.T) {
	const freq = 100.0
	const duration = 1.0
	snd := newSound(1, sineData(freq, duration), SoundSettings{})
	settings := DefaultInstanceSettings()
	inst := newInstance(1, snd, settings)

	const dt = 1.0 / 48000
	prev := inst.sample(snd.data).Left
	crossings := 0
	for inst.playing() {
		inst.update(dt, nil)
		if !inst.playing() {
			break
		}
		cur := inst.sample(snd.data).Left
		if (prev < 0) != (cur < 0) {
			crossings++
		}
		prev = cur
	}

	want := int(2 * freq * duration)
	if diff := crossings - want; diff < -4 || diff > 4 {
		t.Errorf("zero crossings = %d, want close to %d", crossings, want)
	}
}

func TestInstanceEvictionFIFOOrder(t *testing.T) {
	insts := newInstances(2)
	snd := newSound(1, constantData{duration: 10}, SoundSettings{})
	a := newInstance(1, snd, DefaultInstanceSettings())
	b := newInstance(2, snd, DefaultInstanceSettings())
	c := newInstance(3, snd, DefaultInstanceSettings())

	if evicted := insts.insert(a); evicted != nil {
		t.Fatalf("unexpected eviction inserting first instance: %v", evicted)
	}
	if evicted := insts.insert(b); evicted != nil {
		t.Fatalf("unexpected eviction inserting second instance: %v", evicted)
	}
	evicted := insts.insert(c)
	if evicted == nil || evicted.ID() != a.ID() {
		t.Fatalf("insert at capacity should evict the oldest (id 1), got %v", evicted)
	}
	if insts.len() != 2 {
		t.Errorf("len() = %d, want 2", insts.len())
	}
	if _, ok := insts.get(b.ID()); !ok {
		t.Error("instance b should have survived eviction")
	}
}

func TestInstanceFadeOutHalfVolumeAtHalfDuration(t *testing.T) {
	snd := newSound(1, constantData{duration: 10, frame: Frame{Left: 1, Right: 1}}, SoundSettings{})
	inst := newInstance(1, snd, DefaultInstanceSettings())

	inst.stop(StopSettings{Fade: &Tween{DurationSeconds: 2, Easing: Linear}})
	inst.update(1, nil) // halfway through the fade

	f := inst.sample(snd.data)
	if f.Left < 0.45 || f.Left > 0.55 {
		t.Errorf("sample at half fade duration = %v, want ~0.5", f.Left)
	}
	if inst.PublicState() != StateStopping {
		t.Errorf("PublicState() mid-fade = %v, want Stopping", inst.PublicState())
	}

	inst.update(1.01, nil)
	if inst.PublicState() != StateStopped {
		t.Errorf("PublicState() after fade completes = %v, want Stopped", inst.PublicState())
	}
}

func TestInstanceParameterDrivenVolume(t *testing.T) {
	params := newParameters(4)
	params.add(1, NewParameter(0.25))

	snd := newSound(1, constantData{duration: 10, frame: Frame{Left: 1, Right: 1}}, SoundSettings{})
	settings := DefaultInstanceSettings()
	settings.Volume = ParameterValue(1, IdentityMapping)
	inst := newInstance(1, snd, settings)

	inst.update(0, params)
	f := inst.sample(snd.data)
	if f.Left != 0.25 {
		t.Errorf("sample() = %v, want 0.25 from parameter-bound volume", f.Left)
	}
}

func TestInstanceLoopSweepStaysWithinBounds(t *testing.T) {
	snd := newSound(1, constantData{duration: 1}, SoundSettings{})
	settings := DefaultInstanceSettings()
	settings.LoopStart = 0.25
	settings.HasLoopStart = true
	settings.PlaybackRate = FixedValue(2) // fast-forward through several loops
	inst := newInstance(1, snd, settings)

	const dt = 1.0 / 100
	for i := 0; i < 1000; i++ {
		inst.update(dt, nil)
		if !inst.playing() {
			t.Fatalf("instance stopped unexpectedly at iteration %d", i)
		}
		if inst.PublicPosition() < 0 || inst.PublicPosition() > snd.Duration() {
			t.Fatalf("position %v escaped [0, %v] at iteration %d", inst.PublicPosition(), snd.Duration(), i)
		}
	}
}

func TestInstanceReverseLoopSweepStaysWithinBounds(t *testing.T) {
	snd := newSound(1, constantData{duration: 1}, SoundSettings{})
	settings := DefaultInstanceSettings()
	settings.LoopStart = 0.25
	settings.HasLoopStart = true
	settings.Reverse = true
	settings.StartPosition = 1
	settings.PlaybackRate = FixedValue(2)
	inst := newInstance(1, snd, settings)

	const dt = 1.0 / 100
	for i := 0; i < 1000; i++ {
		inst.update(dt, nil)
		if !inst.playing() {
			t.Fatalf("instance stopped unexpectedly at iteration %d", i)
		}
		if inst.PublicPosition() < settings.LoopStart-0.0001 || inst.PublicPosition() > snd.Duration() {
			t.Fatalf("position %v escaped [%v, %v] at iteration %d", inst.PublicPosition(), settings.LoopStart, snd.Duration(), i)
		}
	}
}

func TestInstanceNoLoopStopsAtEnd(t *testing.T) {
	snd := newSound(1, constantData{duration: 0.1}, SoundSettings{})
	inst := newInstance(1, snd, DefaultInstanceSettings())

	for i := 0; i < 100 && inst.playing(); i++ {
		inst.update(0.01, nil)
	}
	if inst.PublicState() != StateStopped {
		t.Errorf("PublicState() = %v, want Stopped once position exceeds duration with no loop", inst.PublicState())
	}
}

func TestInstanceLoopStartBeyondDurationDisablesLoop(t *testing.T) {
	snd := newSound(1, constantData{duration: 1}, SoundSettings{
		DefaultLoopStart: 5, // beyond duration
		HasDefaultLoop:   true,
	})
	inst := newInstance(1, snd, DefaultInstanceSettings())
	if inst.hasLoopStart {
		t.Error("loop_start beyond duration should disable the loop (open question resolution)")
	}
}
