package soundstage

// Mixer owns the Main track, the Sub-track DAG, and the Send tracks, and
// runs the per-tick mixing pass (§4.5). Sub-tracks route to a parent
// (Main or another Sub) and may additionally route a copy of their output
// to any number of Send tracks; Send tracks themselves always feed Main.
type Mixer struct {
	main  *Track
	subs  *vecMap[TrackID, *Track]
	sends *vecMap[SendTrackID, *Track]

	// order holds the Sub-track ids in leaves-before-parent processing
	// order. It is rebuilt only when the Sub-track topology changes
	// (AddSubTrack, sweepRemoved), never on the per-tick path, so process
	// can walk it without allocating.
	order     []TrackID
	orderSeen map[TrackID]bool
}

func newMixer(settings AudioManagerSettings) *Mixer {
	return &Mixer{
		main:      newMainTrack(),
		subs:      newVecMap[TrackID, *Track](settings.NumSubTracks),
		sends:     newVecMap[SendTrackID, *Track](settings.NumSendTracks),
		order:     make([]TrackID, 0, settings.NumSubTracks),
		orderSeen: make(map[TrackID]bool, settings.NumSubTracks),
	}
}

// Main returns the root track every Sub ultimately feeds.
func (m *Mixer) Main() *Track { return m.main }

// AddSubTrack creates a new Sub-track routed to parent (Main if parent is
// the zero TrackID), returning ErrSubTrackLimitReached if the mixer is at
// capacity.
func (m *Mixer) AddSubTrack(id TrackID, parent TrackID) (*Track, error) {
	t := newSubTrack(id, parent)
	if !m.subs.Insert(id, t) {
		return nil, ErrSubTrackLimitReached
	}
	m.recomputeOrder()
	return t, nil
}

// AddSendTrack creates a new Send track, returning ErrSendTrackLimitReached
// if the mixer is at capacity.
func (m *Mixer) AddSendTrack(id SendTrackID) (*Track, error) {
	t := newSendTrack(TrackID(id))
	if !m.sends.Insert(id, t) {
		return nil, ErrSendTrackLimitReached
	}
	return t, nil
}

// RemoveSubTrack marks a Sub-track for removal. Removal is deferred: the
// track keeps mixing (any instance still routed to it keeps sounding)
// until FreeUnusedResources sweeps it away once nothing references it
// anymore (§4.5).
func (m *Mixer) RemoveSubTrack(id TrackID) bool {
	t, ok := m.subs.Get(id)
	if !ok {
		return false
	}
	t.removed = true
	return true
}

// RemoveSendTrack marks a Send track for deferred removal.
func (m *Mixer) RemoveSendTrack(id SendTrackID) bool {
	t, ok := m.sends.Get(id)
	if !ok {
		return false
	}
	t.removed = true
	return true
}

// track resolves a TrackID to its Track, treating the zero value as Main.
func (m *Mixer) track(id TrackID) (*Track, bool) {
	if id == 0 {
		return m.main, true
	}
	return m.subs.Get(id)
}

// addInput routes a rendered frame from an instance or stream into the
// track it targets.
func (m *Mixer) addInput(track TrackID, f Frame) {
	if t, ok := m.track(track); ok {
		t.addInput(f)
	}
}

// recomputeOrder rebuilds m.order from the current Sub-track parent links.
// Depth-first, parent-before-child recursion with the result reversed
// below gives the leaves-before-root order the mix needs: a track's
// output must be folded into its parent's accumulator before the
// parent's own chain runs. Called only when the topology changes
// (AddSubTrack, sweepRemoved), never from the per-tick process path.
func (m *Mixer) recomputeOrder() {
	m.order = m.order[:0]
	for id := range m.orderSeen {
		delete(m.orderSeen, id)
	}
	var postorder func(id TrackID)
	postorder = func(id TrackID) {
		if m.orderSeen[id] {
			return
		}
		t, ok := m.subs.Get(id)
		if !ok {
			return
		}
		m.orderSeen[id] = true
		if t.parent != 0 {
			postorder(t.parent)
		}
		m.order = append(m.order, id)
	}
	for _, id := range m.subs.Keys() {
		postorder(id)
	}
	// m.order currently lists parents before children (ancestor visited
	// first in postorder's recursive call); reverse so leaves mix first.
	for i, j := 0, len(m.order)-1; i < j; i, j = i+1, j-1 {
		m.order[i], m.order[j] = m.order[j], m.order[i]
	}
}

// process runs one mixer tick: every Sub-track's chain in leaves-before-
// parent order, routing its output to its parent and to any Sends it
// feeds; then every Send track's chain into Main; then Main's own chain,
// which is the block's final output. All accumulators are cleared
// afterward so the next tick starts from silence (§4.5). The walk itself
// performs no heap allocation: m.order is rebuilt only when the topology
// changes, never here.
func (m *Mixer) process(dt float64, params *parameters) Frame {
	for _, id := range m.order {
		t, ok := m.subs.Get(id)
		if !ok || t.removed {
			continue
		}
		out := t.processChain(dt, params)
		if parent, ok := m.track(t.parent); ok {
			parent.addInput(out)
		}
		for sendID, level := range t.sends {
			if send, ok := m.sends.Get(sendID); ok {
				level.Update(params)
				send.addInput(out.Scale(level.Get()))
			}
		}
	}

	m.sends.Each(func(_ SendTrackID, t *Track) {
		if t.removed {
			return
		}
		out := t.processChain(dt, params)
		m.main.addInput(out)
	})

	result := m.main.processChain(dt, params)

	m.main.clear()
	m.subs.Each(func(_ TrackID, t *Track) { t.clear() })
	m.sends.Each(func(_ SendTrackID, t *Track) { t.clear() })

	return result
}

// sweepRemoved drops every Sub/Send track marked removed whose id is not
// referenced by any live instance or routing, called from
// FreeUnusedResources (§4.5 deferred removal).
func (m *Mixer) sweepRemoved(liveTracks map[TrackID]bool) {
	removed := false
	for _, id := range m.subs.Keys() {
		t, ok := m.subs.Get(id)
		if ok && t.removed && !liveTracks[id] {
			m.subs.Remove(id)
			removed = true
		}
	}
	for _, id := range m.sends.Keys() {
		t, ok := m.sends.Get(id)
		if ok && t.removed && !liveTracks[TrackID(id)] {
			m.sends.Remove(id)
		}
	}
	if removed {
		m.recomputeOrder()
	}
}
