package soundstage

import "testing"

func TestMetronomeNotRunningDoesNotAdvance(t *testing.T) {
	m := newMetronome(1, FixedValue(120))
	m.advance(1, nil, func(interval float64) { t.Error("should not emit while not running") })
	if m.Beats() != 0 {
		t.Errorf("Beats() = %v, want 0", m.Beats())
	}
}

func TestMetronomeAdvancesBeatsWhenRunning(t *testing.T) {
	m := newMetronome(1, FixedValue(120)) // 2 beats/sec
	m.Start()
	m.advance(1, nil, func(float64) {})
	if m.Beats() != 2 {
		t.Errorf("Beats() = %v, want 2", m.Beats())
	}
}

func TestMetronomePauseKeepsPositionStopResets(t *testing.T) {
	m := newMetronome(1, FixedValue(60))
	m.Start()
	m.advance(1, nil, func(float64) {})
	m.Pause()
	if m.Running() {
		t.Error("Running() should be false after Pause")
	}
	if m.Beats() != 1 {
		t.Errorf("Beats() after pause = %v, want 1 preserved", m.Beats())
	}
	m.Stop()
	if m.Beats() != 0 {
		t.Errorf("Beats() after Stop = %v, want reset to 0", m.Beats())
	}
}

func TestMetronomeIntervalCrossingEmitsOnce(t *testing.T) {
	m := newMetronome(1, FixedValue(60)) // 1 beat/sec
	m.Start()
	m.AddInterval(1)

	var crossings int
	m.advance(1.5, nil, func(interval float64) {
		crossings++
		if interval != 1 {
			t.Errorf("emitted interval = %v, want 1", interval)
		}
	})
	if crossings != 1 {
		t.Errorf("crossings = %d, want 1", crossings)
	}
}

func TestMetronomeIntervalCrossingMultipleInOneTick(t *testing.T) {
	m := newMetronome(1, FixedValue(240)) // 4 beats/sec
	m.Start()
	m.AddInterval(1)

	var crossings int
	m.advance(1, nil, func(float64) { crossings++ })
	if crossings != 1 {
		t.Errorf("crossings = %d, want 1 (one emit per interval per tick, though 4 beats passed)", crossings)
	}
}

func TestMetronomeIgnoresNonPositiveAndDuplicateIntervals(t *testing.T) {
	m := newMetronome(1, FixedValue(60))
	m.AddInterval(0)
	m.AddInterval(-1)
	m.AddInterval(2)
	m.AddInterval(2)
	if len(m.intervals) != 1 {
		t.Errorf("len(intervals) = %d, want 1", len(m.intervals))
	}
}

func TestMetronomeRemoveInterval(t *testing.T) {
	m := newMetronome(1, FixedValue(60))
	m.AddInterval(1)
	m.RemoveInterval(1)
	if len(m.intervals) != 0 {
		t.Errorf("len(intervals) after remove = %d, want 0", len(m.intervals))
	}
}
