package soundstage

import (
	"sync/atomic"

	"soundstage/internal/reclaim"
)

// capacityCounter is a lock-free "how many of this pool are reserved"
// tracker the control thread consults before ever pushing a command, so
// every pool except Instances can return its …LimitReached error
// synchronously instead of waiting on a round trip to the audio thread
// (§7, §9).
type capacityCounter struct {
	n        atomic.Int64
	capacity int64
}

func newCapacityCounter(capacity int) *capacityCounter {
	return &capacityCounter{capacity: int64(capacity)}
}

func (c *capacityCounter) reserve() bool {
	for {
		cur := c.n.Load()
		if cur >= c.capacity {
			return false
		}
		if c.n.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (c *capacityCounter) release() {
	c.n.Add(-1)
}

// Manager is the control-plane handle to an audio engine: the surface a
// game or application calls into from any goroutine. Every mutating call
// either returns a …LimitReached/No...WithID error immediately or pushes
// a command for the audio thread to apply on its next tick (§4.1, §6).
type Manager struct {
	settings AudioManagerSettings
	ids      idAllocators

	writer commandWriter
	events chan Event

	reclaimSounds  *reclaim.Queue[reclaim.Box[SoundData]]
	reclaimStreams *reclaim.Queue[reclaim.Box[AudioStream]]

	sounds     *capacityCounter
	parameters *capacityCounter
	subTracks  *capacityCounter
	sendTracks *capacityCounter
	groups     *capacityCounter
	metronomes *capacityCounter
	sequences  *capacityCounter
	streams    *capacityCounter

	backend *Backend
}

// NewManager constructs a Manager and its paired Backend. The caller is
// responsible for driving backend.Process from whatever audio callback or
// host loop it uses (see cmd/portaudiohost and cmd/otohost).
func NewManager(settings AudioManagerSettings) *Manager {
	writer, commandCh := newCommandChannel(settings.NumCommands)
	events := make(chan Event, settings.NumCommands)

	m := &Manager{
		settings:       settings,
		writer:         writer,
		events:         events,
		reclaimSounds:  reclaim.NewQueue[reclaim.Box[SoundData]](settings.NumSounds, nil),
		reclaimStreams: reclaim.NewQueue[reclaim.Box[AudioStream]](settings.NumStreams, nil),
		sounds:         newCapacityCounter(settings.NumSounds),
		parameters:     newCapacityCounter(settings.NumParameters),
		subTracks:      newCapacityCounter(settings.NumSubTracks),
		sendTracks:     newCapacityCounter(settings.NumSendTracks),
		groups:         newCapacityCounter(settings.NumGroups),
		metronomes:     newCapacityCounter(settings.NumMetronomes),
		sequences:      newCapacityCounter(settings.NumSequences),
		streams:        newCapacityCounter(settings.NumStreams),
	}

	droppedEvents := func() { m.backend.EventsDropped.Add(1) }
	sink := newEventSink(events, droppedEvents)
	m.backend = newBackend(settings, &m.ids, commandCh, sink, m.reclaimSounds, m.reclaimStreams)
	return m
}

// Backend returns the audio-plane handle a host driver calls Process on.
func (m *Manager) Backend() *Backend { return m.backend }

// Events returns the channel of Events (metronome interval crossings,
// sequence custom events) the audio thread reports. A slow consumer drops
// events rather than applying backpressure to the audio thread.
func (m *Manager) Events() <-chan Event { return m.events }

// AddSound registers a new Sound backed by data, returning its ID.
func (m *Manager) AddSound(data SoundData, settings SoundSettings) (SoundID, error) {
	if !m.sounds.reserve() {
		return 0, ErrSoundLimitReached
	}
	id := m.ids.sound.alloc()
	snd := newSound(id, data, settings)
	if err := m.writer.push(addSoundCommand{id: id, snd: snd}); err != nil {
		m.sounds.release()
		return 0, err
	}
	return id, nil
}

// RemoveSound removes a previously added Sound. Any instance still
// playing it keeps playing: the underlying SoundData is only released for
// reclamation once removed here.
func (m *Manager) RemoveSound(id SoundID) error {
	if err := m.writer.push(removeSoundCommand{id: id}); err != nil {
		return err
	}
	m.sounds.release()
	return nil
}

// Play starts a new Instance of sound and returns its ID immediately; the
// actual start happens on the audio thread's next tick. Instances never
// return a limit error — the oldest live instance is evicted instead.
func (m *Manager) Play(sound SoundID, settings InstanceSettings) (InstanceID, error) {
	id := m.ids.instance.alloc()
	if err := m.writer.push(playCommand{id: id, sound: sound, settings: settings}); err != nil {
		return 0, err
	}
	return id, nil
}

// Pause, Resume, Stop apply a fade-aware state transition to one instance.
func (m *Manager) Pause(id InstanceID, settings PauseSettings) error {
	return m.writer.push(pauseInstanceCommand{id: id, settings: settings})
}

func (m *Manager) Resume(id InstanceID, settings ResumeSettings) error {
	return m.writer.push(resumeInstanceCommand{id: id, settings: settings})
}

func (m *Manager) Stop(id InstanceID, settings StopSettings) error {
	return m.writer.push(stopInstanceCommand{id: id, settings: settings})
}

// SeekTo and SeekBy reposition a playing instance.
func (m *Manager) SeekTo(id InstanceID, position float64) error {
	return m.writer.push(seekToCommand{id: id, position: position})
}

func (m *Manager) SeekBy(id InstanceID, amount float64) error {
	return m.writer.push(seekByCommand{id: id, amount: amount})
}

// PauseInstancesOf, ResumeInstancesOf, StopInstancesOf affect every live
// instance of the given sound.
func (m *Manager) PauseInstancesOf(sound SoundID, settings PauseSettings) error {
	return m.writer.push(pauseInstancesOfCommand{sound: sound, settings: settings})
}

func (m *Manager) ResumeInstancesOf(sound SoundID, settings ResumeSettings) error {
	return m.writer.push(resumeInstancesOfCommand{sound: sound, settings: settings})
}

func (m *Manager) StopInstancesOf(sound SoundID, settings StopSettings) error {
	return m.writer.push(stopInstancesOfCommand{sound: sound, settings: settings})
}

// PauseGroup, ResumeGroup, StopGroup affect every live instance whose
// sound belongs to group, directly or via ancestry.
func (m *Manager) PauseGroup(group GroupID, settings PauseSettings) error {
	return m.writer.push(pauseGroupCommand{group: group, settings: settings})
}

func (m *Manager) ResumeGroup(group GroupID, settings ResumeSettings) error {
	return m.writer.push(resumeGroupCommand{group: group, settings: settings})
}

func (m *Manager) StopGroup(group GroupID, settings StopSettings) error {
	return m.writer.push(stopGroupCommand{group: group, settings: settings})
}

// PauseInstancesOfSequence, ResumeInstancesOfSequence,
// StopInstancesOfSequence affect every instance a running sequence
// started.
func (m *Manager) PauseInstancesOfSequence(seq SequenceID, settings PauseSettings) error {
	return m.writer.push(pauseInstancesOfSequenceCommand{sequence: seq, settings: settings})
}

func (m *Manager) ResumeInstancesOfSequence(seq SequenceID, settings ResumeSettings) error {
	return m.writer.push(resumeInstancesOfSequenceCommand{sequence: seq, settings: settings})
}

func (m *Manager) StopInstancesOfSequence(seq SequenceID, settings StopSettings) error {
	return m.writer.push(stopInstancesOfSequenceCommand{sequence: seq, settings: settings})
}

// AddParameter registers a new Parameter with the given initial value.
func (m *Manager) AddParameter(initial float64) (ParameterID, error) {
	if !m.parameters.reserve() {
		return 0, ErrParameterLimitReached
	}
	id := m.ids.parameter.alloc()
	if err := m.writer.push(addParameterCommand{id: id, initial: initial}); err != nil {
		m.parameters.release()
		return 0, err
	}
	return id, nil
}

// RemoveParameter removes a previously added Parameter.
func (m *Manager) RemoveParameter(id ParameterID) error {
	if err := m.writer.push(removeParameterCommand{id: id}); err != nil {
		return err
	}
	m.parameters.release()
	return nil
}

// SetParameter animates parameter toward target over tween (nil for an
// instant set).
func (m *Manager) SetParameter(id ParameterID, target float64, tween *Tween) error {
	return m.writer.push(setParameterCommand{id: id, target: target, tween: tween})
}

// AddSubTrack creates a new Sub-track routed to parent (the Main track's
// zero-value TrackID if parent is omitted).
func (m *Manager) AddSubTrack(parent TrackID) (TrackID, error) {
	if !m.subTracks.reserve() {
		return 0, ErrSubTrackLimitReached
	}
	id := m.ids.track.alloc()
	if err := m.writer.push(addSubTrackCommand{id: id, parent: parent}); err != nil {
		m.subTracks.release()
		return 0, err
	}
	return id, nil
}

// RemoveSubTrack marks a Sub-track for deferred removal.
func (m *Manager) RemoveSubTrack(id TrackID) error {
	if err := m.writer.push(removeSubTrackCommand{id: id}); err != nil {
		return err
	}
	m.subTracks.release()
	return nil
}

// AddSendTrack creates a new Send track.
func (m *Manager) AddSendTrack() (SendTrackID, error) {
	if !m.sendTracks.reserve() {
		return 0, ErrSendTrackLimitReached
	}
	id := m.ids.sendTrack.alloc()
	if err := m.writer.push(addSendTrackCommand{id: id}); err != nil {
		m.sendTracks.release()
		return 0, err
	}
	return id, nil
}

// RemoveSendTrack marks a Send track for deferred removal.
func (m *Manager) RemoveSendTrack(id SendTrackID) error {
	if err := m.writer.push(removeSendTrackCommand{id: id}); err != nil {
		return err
	}
	m.sendTracks.release()
	return nil
}

// SetTrackVolume sets the volume of Main, a Sub-track, or a Send track.
func (m *Manager) SetTrackVolume(track TrackID, volume Value) error {
	return m.writer.push(setTrackVolumeCommand{track: track, volume: volume})
}

// AddEffect appends an effect to the end of track's processing chain.
func (m *Manager) AddEffect(track TrackID, effect Effect, mix Value) EffectID {
	id := m.ids.effect.alloc()
	m.writer.push(addEffectCommand{track: track, effectID: id, effect: effect, mix: mix})
	return id
}

// RemoveEffect removes an effect slot from track.
func (m *Manager) RemoveEffect(track TrackID, effect EffectID) error {
	return m.writer.push(removeEffectCommand{track: track, effectID: effect})
}

// SetSend sets a Sub-track's routing level to a Send track.
func (m *Manager) SetSend(track TrackID, send SendTrackID, level Value) error {
	return m.writer.push(setSendCommand{track: track, send: send, level: level})
}

// AddGroup registers a new Group with the given parent groups.
func (m *Manager) AddGroup(parents ...GroupID) (GroupID, error) {
	if !m.groups.reserve() {
		return 0, ErrGroupLimitReached
	}
	id := m.ids.group.alloc()
	if err := m.writer.push(addGroupCommand{id: id, parents: parents}); err != nil {
		m.groups.release()
		return 0, err
	}
	return id, nil
}

// RemoveGroup removes a previously added Group.
func (m *Manager) RemoveGroup(id GroupID) error {
	if err := m.writer.push(removeGroupCommand{id: id}); err != nil {
		return err
	}
	m.groups.release()
	return nil
}

// AddMetronome registers a new Metronome with the given tempo (beats per
// minute), stopped until Start is called.
func (m *Manager) AddMetronome(tempo Value) (MetronomeID, error) {
	if !m.metronomes.reserve() {
		return 0, ErrMetronomeLimitReached
	}
	id := m.ids.metronome.alloc()
	if err := m.writer.push(addMetronomeCommand{id: id, tempo: tempo}); err != nil {
		m.metronomes.release()
		return 0, err
	}
	return id, nil
}

// RemoveMetronome removes a previously added Metronome.
func (m *Manager) RemoveMetronome(id MetronomeID) error {
	if err := m.writer.push(removeMetronomeCommand{id: id}); err != nil {
		return err
	}
	m.metronomes.release()
	return nil
}

func (m *Manager) StartMetronome(id MetronomeID) error {
	return m.writer.push(startMetronomeCommand{id: id})
}

func (m *Manager) PauseMetronome(id MetronomeID) error {
	return m.writer.push(pauseMetronomeCommand{id: id})
}

func (m *Manager) StopMetronome(id MetronomeID) error {
	return m.writer.push(stopMetronomeCommand{id: id})
}

// AddMetronomeInterval and RemoveMetronomeInterval register or unregister
// an interval (in beats) the metronome should signal crossings for.
func (m *Manager) AddMetronomeInterval(id MetronomeID, interval float64) error {
	return m.writer.push(addMetronomeIntervalCommand{id: id, interval: interval})
}

func (m *Manager) RemoveMetronomeInterval(id MetronomeID, interval float64) error {
	return m.writer.push(removeMetronomeIntervalCommand{id: id, interval: interval})
}

// AddSequence starts a new running SequenceInstance executing program.
func (m *Manager) AddSequence(program []Step) (SequenceID, error) {
	if !m.sequences.reserve() {
		return 0, ErrSequenceLimitReached
	}
	id := m.ids.sequence.alloc()
	if err := m.writer.push(addSequenceCommand{id: id, program: program}); err != nil {
		m.sequences.release()
		return 0, err
	}
	return id, nil
}

// RemoveSequence stops and removes a running sequence.
func (m *Manager) RemoveSequence(id SequenceID) error {
	if err := m.writer.push(removeSequenceCommand{id: id}); err != nil {
		return err
	}
	m.sequences.release()
	return nil
}

// MuteSequence mutes or unmutes a running sequence's Play steps without
// pausing its timeline.
func (m *Manager) MuteSequence(id SequenceID, muted bool) error {
	return m.writer.push(muteSequenceCommand{id: id, muted: muted})
}

// AddStream starts mixing an AudioStream into track at the given volume.
func (m *Manager) AddStream(track TrackID, stream AudioStream, volume Value) (StreamID, error) {
	if !m.streams.reserve() {
		return 0, ErrStreamLimitReached
	}
	id := m.ids.stream.alloc()
	if err := m.writer.push(addStreamCommand{id: id, track: track, stream: stream, volume: volume}); err != nil {
		m.streams.release()
		return 0, err
	}
	return id, nil
}

// RemoveStream stops and removes a stream, forwarding it for reclamation.
func (m *Manager) RemoveStream(id StreamID) error {
	if err := m.writer.push(removeStreamCommand{id: id}); err != nil {
		return err
	}
	m.streams.release()
	return nil
}

// FreeUnusedResources drains the reclaim queues for sounds and streams
// removed since the last call, running their Close (if any) here on the
// control thread. Call this periodically (e.g. once per game frame);
// never call it from the audio thread.
func (m *Manager) FreeUnusedResources() {
	for _, box := range m.reclaimSounds.Drain() {
		box.ReleaseNow()
	}
	for _, box := range m.reclaimStreams.Drain() {
		box.ReleaseNow()
	}
}
