package soundstage

// metronomes is the audio-thread registry of Metronome values, fixed
// capacity, reject-on-full.
type metronomes struct {
	entries *vecMap[MetronomeID, *Metronome]
}

func newMetronomes(capacity int) *metronomes {
	return &metronomes{entries: newVecMap[MetronomeID, *Metronome](capacity)}
}

func (m *metronomes) add(metro *Metronome) bool {
	return m.entries.Insert(metro.id, metro)
}

func (m *metronomes) get(id MetronomeID) (*Metronome, bool) {
	return m.entries.Get(id)
}

func (m *metronomes) remove(id MetronomeID) bool {
	_, ok := m.entries.Remove(id)
	return ok
}

func (m *metronomes) len() int {
	return m.entries.Len()
}

// advance ticks every metronome forward by dt, forwarding each crossed
// interval to emit along with the metronome's id.
func (m *metronomes) advance(dt float64, params *parameters, emit func(id MetronomeID, interval float64)) {
	m.entries.Each(func(id MetronomeID, metro *Metronome) {
		metro.advance(dt, params, func(interval float64) {
			emit(id, interval)
		})
	})
}
