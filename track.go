package soundstage

type trackKind int

const (
	trackMain trackKind = iota
	trackSub
	trackSend
)

// Track is one node in the mixer's routing DAG: Main, Sub(id, parent), or
// Send(id) (§3). Every Sub has exactly one parent; Send tracks are sinks
// reachable only via a Sub's send routings.
type Track struct {
	id     TrackID
	kind   trackKind
	parent TrackID

	input   Frame
	Volume  CachedValue
	effects []*EffectSlot

	sends map[SendTrackID]*CachedValue

	removed bool // deferred-removal marker, see §4.5
}

func newMainTrack() *Track {
	return &Track{kind: trackMain, Volume: NewCachedValue(FixedValue(1))}
}

func newSubTrack(id TrackID, parent TrackID) *Track {
	return &Track{
		id:     id,
		kind:   trackSub,
		parent: parent,
		Volume: NewCachedValue(FixedValue(1)),
		sends:  make(map[SendTrackID]*CachedValue),
	}
}

func newSendTrack(id TrackID) *Track {
	return &Track{id: id, kind: trackSend, Volume: NewCachedValue(FixedValue(1))}
}

// ID returns the track's identifier (zero for Main).
func (t *Track) ID() TrackID { return t.id }

// AddEffect appends an effect slot to the end of the processing chain,
// returning the new slot.
func (t *Track) AddEffect(id EffectID, effect Effect, mix Value) *EffectSlot {
	slot := newEffectSlot(id, effect, mix)
	t.effects = append(t.effects, slot)
	return slot
}

// RemoveEffect removes the slot with the given id, if present.
func (t *Track) RemoveEffect(id EffectID) bool {
	for i, slot := range t.effects {
		if slot.id == id {
			t.effects = append(t.effects[:i], t.effects[i+1:]...)
			return true
		}
	}
	return false
}

// SetSend sets (or adds) the send level for routing this Sub-track's
// output to the given SendTrack.
func (t *Track) SetSend(send SendTrackID, level Value) {
	if t.sends == nil {
		t.sends = make(map[SendTrackID]*CachedValue)
	}
	if cv, ok := t.sends[send]; ok {
		cv.Set(level)
		return
	}
	cv := NewCachedValue(level)
	t.sends[send] = &cv
}

// addInput accumulates a frame into this track's per-block input
// accumulator. Called by instances, streams, and by child tracks routing
// up to their parent.
func (t *Track) addInput(f Frame) {
	t.input = t.input.Add(f)
}

func (t *Track) clear() {
	t.input = Frame{}
}

// processChain runs this track's effect chain against its accumulated
// input and returns input*volume after effects, per §4.5 step 2/3/4.
func (t *Track) processChain(dt float64, params *parameters) Frame {
	t.Volume.Update(params)
	out := t.input
	for _, slot := range t.effects {
		slot.Mix.Update(params)
		out = slot.process(out, dt, params)
	}
	return out.Scale(t.Volume.Get())
}
