package soundstage

// streams is the audio-thread registry of active AudioStream handles,
// fixed capacity, reject-on-full.
type streams struct {
	entries *vecMap[StreamID, *streamHandle]
}

func newStreams(capacity int) *streams {
	return &streams{entries: newVecMap[StreamID, *streamHandle](capacity)}
}

func (s *streams) add(h *streamHandle) bool {
	return s.entries.Insert(h.id, h)
}

func (s *streams) remove(id StreamID) bool {
	_, ok := s.entries.Remove(id)
	return ok
}

func (s *streams) len() int {
	return s.entries.Len()
}

// process pulls one frame from every active stream, scales it by the
// handle's volume, and mixes it into the track it targets.
func (s *streams) process(dt float64, mixer *Mixer, params *parameters) {
	s.entries.Each(func(_ StreamID, h *streamHandle) {
		h.Volume.Update(params)
		frame := h.stream.Next(dt).Scale(h.Volume.Get())
		mixer.addInput(h.track, frame)
	})
}
