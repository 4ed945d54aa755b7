package soundstage

import "math"

// Metronome converts a tempo (in beats per minute) into beat-position
// advancement, and emits an interval-crossing signal whenever the beat
// counter passes a multiple of one of its registered intervals (§4.6). It
// does not carry a clock of its own; Backend.Process drives it forward by
// dt every tick, same as Parameters and Instances.
type Metronome struct {
	id      MetronomeID
	Tempo   CachedValue // beats per minute
	running bool
	beats   float64

	intervals []float64
}

func newMetronome(id MetronomeID, tempo Value) *Metronome {
	return &Metronome{id: id, Tempo: NewCachedValue(tempo)}
}

// ID returns the metronome's identifier.
func (m *Metronome) ID() MetronomeID { return m.id }

// Start begins (or resumes) beat advancement without resetting position.
func (m *Metronome) Start() { m.running = true }

// Pause halts beat advancement, preserving the current beat position.
func (m *Metronome) Pause() { m.running = false }

// Stop halts beat advancement and resets the beat counter to zero.
func (m *Metronome) Stop() {
	m.running = false
	m.beats = 0
}

// Running reports whether the metronome is currently advancing.
func (m *Metronome) Running() bool { return m.running }

// Beats returns the current beat position.
func (m *Metronome) Beats() float64 { return m.beats }

// AddInterval registers interval (in beats) as one the metronome should
// signal crossings for. A zero or negative interval is ignored. Adding the
// same interval twice is a no-op.
func (m *Metronome) AddInterval(interval float64) {
	if interval <= 0 {
		return
	}
	for _, existing := range m.intervals {
		if existing == interval {
			return
		}
	}
	m.intervals = append(m.intervals, interval)
}

// RemoveInterval unregisters interval. A no-op if it was never added.
func (m *Metronome) RemoveInterval(interval float64) {
	for i, existing := range m.intervals {
		if existing == interval {
			m.intervals = append(m.intervals[:i], m.intervals[i+1:]...)
			return
		}
	}
}

// advance moves the beat counter forward by dt seconds of tempo-scaled
// time and calls emit once for every registered interval the counter
// crossed this tick. emit is called synchronously and must not retain the
// interval slice; this keeps advance itself allocation-free.
func (m *Metronome) advance(dt float64, params *parameters, emit func(interval float64)) {
	if !m.running {
		return
	}
	m.Tempo.Update(params)
	beatsPerSecond := m.Tempo.Get() / 60
	prev := m.beats
	m.beats += beatsPerSecond * dt
	for _, interval := range m.intervals {
		if math.Floor(m.beats/interval) > math.Floor(prev/interval) {
			emit(interval)
		}
	}
}
