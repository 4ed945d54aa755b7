package soundstage

import (
	"sync/atomic"

	"soundstage/internal/reclaim"
)

// intervalCrossing records one metronome interval crossing observed
// during the current tick, so WaitForInterval sequence steps can check it
// without the metronome itself needing to know about sequences.
type intervalCrossing struct {
	metronome MetronomeID
	interval  float64
}

// Backend is the audio-plane half of the engine: everything
// Backend.Process touches runs on the real-time audio thread and must
// never allocate on a steady-state tick, never block, and never return an
// error — unknown IDs and full pools are silently absorbed, with the
// diagnostic counters below left for a host to sample (§4.7, §7).
type Backend struct {
	sampleRate int
	commands   <-chan command
	ids        *idAllocators

	sounds     *sounds
	groups     *groupRegistry
	parameters *parameters
	instances  *instances
	mixer      *Mixer
	metronomes *metronomes
	sequences  *sequences
	streams    *streams

	events eventSink

	reclaimSounds  *reclaim.Queue[reclaim.Box[SoundData]]
	reclaimStreams *reclaim.Queue[reclaim.Box[AudioStream]]

	crossed []intervalCrossing

	CommandsDropped   atomic.Uint64
	EventsDropped     atomic.Uint64
	InstancesEvicted  atomic.Uint64
	SequencesReaped   atomic.Uint64
	InstancesReaped   atomic.Uint64
	FramesProduced    atomic.Uint64
}

func newBackend(
	settings AudioManagerSettings,
	ids *idAllocators,
	commands <-chan command,
	events eventSink,
	reclaimSounds *reclaim.Queue[reclaim.Box[SoundData]],
	reclaimStreams *reclaim.Queue[reclaim.Box[AudioStream]],
) *Backend {
	return &Backend{
		sampleRate:     settings.SampleRate,
		commands:       commands,
		ids:            ids,
		sounds:         newSounds(settings.NumSounds),
		groups:         newGroupRegistry(settings.NumGroups),
		parameters:     newParameters(settings.NumParameters),
		instances:      newInstances(settings.NumInstances),
		mixer:          newMixer(settings),
		metronomes:     newMetronomes(settings.NumMetronomes),
		sequences:      newSequences(settings.NumSequences),
		streams:        newStreams(settings.NumStreams),
		events:         events,
		reclaimSounds:  reclaimSounds,
		reclaimStreams: reclaimStreams,
	}
}

// Process runs one mixing tick of dt seconds and returns the resulting
// Main-track output frame. A host audio callback calls this once per
// sample (dt = 1/SampleRate) or once per block in a loop, depending on
// the driver (§4.7).
func (b *Backend) Process(dt float64) Frame {
	b.drainCommands()

	b.parameters.update(dt)

	b.crossed = b.crossed[:0]
	b.metronomes.advance(dt, b.parameters, func(id MetronomeID, interval float64) {
		b.crossed = append(b.crossed, intervalCrossing{metronome: id, interval: interval})
		b.events.emit(MetronomeIntervalEvent{Metronome: id, Interval: interval})
	})

	reaped := b.sequences.advance(dt, b)
	b.SequencesReaped.Add(uint64(reaped))

	reapedInstances := b.instances.process(dt, b.sounds, b.mixer, b.parameters)
	b.InstancesReaped.Add(uint64(reapedInstances))

	b.streams.process(dt, b.mixer, b.parameters)

	out := b.mixer.process(dt, b.parameters)

	b.sounds.advanceCooldowns(dt)

	b.FramesProduced.Add(1)
	return out.Clamp()
}

func (b *Backend) drainCommands() {
	for {
		select {
		case cmd := <-b.commands:
			cmd.apply(b)
		default:
			return
		}
	}
}

// play starts a new Instance of sound, evicting the oldest live instance
// first if the pool is full. A missing sound or a sound still on cooldown
// silently declines to start a new instance.
func (b *Backend) play(id InstanceID, soundID SoundID, settings InstanceSettings) {
	snd, ok := b.sounds.get(soundID)
	if !ok || snd.onCooldown() {
		return
	}
	inst := newInstance(id, snd, settings)
	if evicted := b.instances.insert(inst); evicted != nil {
		b.InstancesEvicted.Add(1)
	}
	snd.startCooldown()
}

// The methods below implement sequenceContext, letting a SequenceInstance
// drive playback/parameters/groups/events without importing anything
// beyond the interface itself.

func (b *Backend) playSound(sound SoundID, settings InstanceSettings, seq SequenceID) {
	settings.SequenceID = seq
	settings.HasSequence = true
	b.play(b.ids.instance.alloc(), sound, settings)
}

func (b *Backend) setParameter(id ParameterID, target float64, tween *Tween) {
	if p, ok := b.parameters.get(id); ok {
		p.Set(target, tween)
	}
}

func (b *Backend) emitCustomEvent(seq SequenceID, name string) {
	b.events.emit(SequenceEvent{Sequence: seq, Name: name})
}

func (b *Backend) pauseInstancesOf(sound SoundID, settings PauseSettings) {
	b.instances.PauseInstancesOf(sound, settings)
}

func (b *Backend) resumeInstancesOf(sound SoundID, settings ResumeSettings) {
	b.instances.ResumeInstancesOf(sound, settings)
}

func (b *Backend) stopInstancesOf(sound SoundID, settings StopSettings) {
	b.instances.StopInstancesOf(sound, settings)
}

func (b *Backend) pauseGroup(group GroupID, settings PauseSettings) {
	b.instances.PauseGroup(group, b.sounds, b.groups, settings)
}

func (b *Backend) resumeGroup(group GroupID, settings ResumeSettings) {
	b.instances.ResumeGroup(group, b.sounds, b.groups, settings)
}

func (b *Backend) stopGroup(group GroupID, settings StopSettings) {
	b.instances.StopGroup(group, b.sounds, b.groups, settings)
}

func (b *Backend) intervalElapsed(metronome MetronomeID, interval float64) bool {
	for _, c := range b.crossed {
		if c.metronome == metronome && c.interval == interval {
			return true
		}
	}
	return false
}
