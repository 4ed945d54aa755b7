package soundstage

// sequences is the audio-thread registry of running SequenceInstance
// values, fixed capacity, reject-on-full.
type sequences struct {
	entries *vecMap[SequenceID, *SequenceInstance]
}

func newSequences(capacity int) *sequences {
	return &sequences{entries: newVecMap[SequenceID, *SequenceInstance](capacity)}
}

func (s *sequences) add(si *SequenceInstance) bool {
	return s.entries.Insert(si.id, si)
}

func (s *sequences) get(id SequenceID) (*SequenceInstance, bool) {
	return s.entries.Get(id)
}

func (s *sequences) remove(id SequenceID) bool {
	_, ok := s.entries.Remove(id)
	return ok
}

func (s *sequences) len() int {
	return s.entries.Len()
}

// advance steps every running sequence forward by dt and reaps any that
// finished this tick. Returns the number reaped.
func (s *sequences) advance(dt float64, ctx sequenceContext) int {
	var finished []SequenceID
	s.entries.Each(func(id SequenceID, si *SequenceInstance) {
		si.advance(dt, ctx)
		if si.Finished() {
			finished = append(finished, id)
		}
	})
	for _, id := range finished {
		s.entries.Remove(id)
	}
	return len(finished)
}
