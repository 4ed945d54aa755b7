package soundstage

import "soundstage/internal/reclaim"

// This file enumerates the concrete command types the control thread may
// push onto the command channel (§4.1). Capacity for every pool except
// Instances is reserved synchronously on the control thread (see
// Manager's reserve/release bookkeeping) before a command is ever sent,
// so apply() here never needs to report failure back — by the time a
// command reaches the audio thread its resource budget has already been
// accounted for.

// --- Resource (Sound) ---

type addSoundCommand struct {
	id  SoundID
	snd *Sound
}

func (c addSoundCommand) apply(b *Backend) { b.sounds.add(c.snd) }

type removeSoundCommand struct{ id SoundID }

// apply removes the sound from the audio-thread registry and forwards its
// SoundData to the reclaim queue rather than closing it here: any cgo
// decoder or file handle the data owns must be torn down off the audio
// thread.
func (c removeSoundCommand) apply(b *Backend) {
	snd, ok := b.sounds.remove(c.id)
	if !ok {
		return
	}
	box := reclaim.NewBox(snd.data, closeIfCloser[SoundData])
	box.Release(b.reclaimSounds)
}

// --- Instance ---

type playCommand struct {
	id       InstanceID
	sound    SoundID
	settings InstanceSettings
}

func (c playCommand) apply(b *Backend) { b.play(c.id, c.sound, c.settings) }

type pauseInstanceCommand struct {
	id       InstanceID
	settings PauseSettings
}

func (c pauseInstanceCommand) apply(b *Backend) { b.instances.pause(c.id, c.settings) }

type resumeInstanceCommand struct {
	id       InstanceID
	settings ResumeSettings
}

func (c resumeInstanceCommand) apply(b *Backend) { b.instances.resume(c.id, c.settings) }

type stopInstanceCommand struct {
	id       InstanceID
	settings StopSettings
}

func (c stopInstanceCommand) apply(b *Backend) { b.instances.stop(c.id, c.settings) }

type seekToCommand struct {
	id       InstanceID
	position float64
}

func (c seekToCommand) apply(b *Backend) { b.instances.seekTo(c.id, c.position) }

type seekByCommand struct {
	id     InstanceID
	amount float64
}

func (c seekByCommand) apply(b *Backend) { b.instances.seekBy(c.id, c.amount) }

type pauseInstancesOfCommand struct {
	sound    SoundID
	settings PauseSettings
}

func (c pauseInstancesOfCommand) apply(b *Backend) { b.instances.PauseInstancesOf(c.sound, c.settings) }

type resumeInstancesOfCommand struct {
	sound    SoundID
	settings ResumeSettings
}

func (c resumeInstancesOfCommand) apply(b *Backend) {
	b.instances.ResumeInstancesOf(c.sound, c.settings)
}

type stopInstancesOfCommand struct {
	sound    SoundID
	settings StopSettings
}

func (c stopInstancesOfCommand) apply(b *Backend) { b.instances.StopInstancesOf(c.sound, c.settings) }

type pauseGroupCommand struct {
	group    GroupID
	settings PauseSettings
}

func (c pauseGroupCommand) apply(b *Backend) {
	b.instances.PauseGroup(c.group, b.sounds, b.groups, c.settings)
}

type resumeGroupCommand struct {
	group    GroupID
	settings ResumeSettings
}

func (c resumeGroupCommand) apply(b *Backend) {
	b.instances.ResumeGroup(c.group, b.sounds, b.groups, c.settings)
}

type stopGroupCommand struct {
	group    GroupID
	settings StopSettings
}

func (c stopGroupCommand) apply(b *Backend) {
	b.instances.StopGroup(c.group, b.sounds, b.groups, c.settings)
}

type pauseInstancesOfSequenceCommand struct {
	sequence SequenceID
	settings PauseSettings
}

func (c pauseInstancesOfSequenceCommand) apply(b *Backend) {
	b.instances.PauseInstancesOfSequence(c.sequence, c.settings)
}

type resumeInstancesOfSequenceCommand struct {
	sequence SequenceID
	settings ResumeSettings
}

func (c resumeInstancesOfSequenceCommand) apply(b *Backend) {
	b.instances.ResumeInstancesOfSequence(c.sequence, c.settings)
}

type stopInstancesOfSequenceCommand struct {
	sequence SequenceID
	settings StopSettings
}

func (c stopInstancesOfSequenceCommand) apply(b *Backend) {
	b.instances.StopInstancesOfSequence(c.sequence, c.settings)
}

// --- Parameter ---

type addParameterCommand struct {
	id      ParameterID
	initial float64
}

func (c addParameterCommand) apply(b *Backend) {
	b.parameters.add(c.id, NewParameter(c.initial))
}

type removeParameterCommand struct{ id ParameterID }

func (c removeParameterCommand) apply(b *Backend) { b.parameters.remove(c.id) }

type setParameterCommand struct {
	id     ParameterID
	target float64
	tween  *Tween
}

func (c setParameterCommand) apply(b *Backend) {
	if p, ok := b.parameters.get(c.id); ok {
		p.Set(c.target, c.tween)
	}
}

// --- Mixer ---

type addSubTrackCommand struct {
	id     TrackID
	parent TrackID
}

func (c addSubTrackCommand) apply(b *Backend) { b.mixer.AddSubTrack(c.id, c.parent) }

type addSendTrackCommand struct{ id SendTrackID }

func (c addSendTrackCommand) apply(b *Backend) { b.mixer.AddSendTrack(c.id) }

type removeSubTrackCommand struct{ id TrackID }

func (c removeSubTrackCommand) apply(b *Backend) { b.mixer.RemoveSubTrack(c.id) }

type removeSendTrackCommand struct{ id SendTrackID }

func (c removeSendTrackCommand) apply(b *Backend) { b.mixer.RemoveSendTrack(c.id) }

type setTrackVolumeCommand struct {
	track  TrackID
	volume Value
}

func (c setTrackVolumeCommand) apply(b *Backend) {
	if t, ok := b.mixer.track(c.track); ok {
		t.Volume.Set(c.volume)
	}
}

type addEffectCommand struct {
	track    TrackID
	effectID EffectID
	effect   Effect
	mix      Value
}

func (c addEffectCommand) apply(b *Backend) {
	if t, ok := b.mixer.track(c.track); ok {
		t.AddEffect(c.effectID, c.effect, c.mix)
	}
}

type removeEffectCommand struct {
	track    TrackID
	effectID EffectID
}

func (c removeEffectCommand) apply(b *Backend) {
	if t, ok := b.mixer.track(c.track); ok {
		t.RemoveEffect(c.effectID)
	}
}

type setSendCommand struct {
	track TrackID
	send  SendTrackID
	level Value
}

func (c setSendCommand) apply(b *Backend) {
	if t, ok := b.mixer.track(c.track); ok {
		t.SetSend(c.send, c.level)
	}
}

// --- Group ---

type addGroupCommand struct {
	id      GroupID
	parents []GroupID
}

func (c addGroupCommand) apply(b *Backend) { b.groups.add(c.id, c.parents) }

type removeGroupCommand struct{ id GroupID }

func (c removeGroupCommand) apply(b *Backend) { b.groups.remove(c.id) }

// --- Metronome ---

type addMetronomeCommand struct {
	id    MetronomeID
	tempo Value
}

func (c addMetronomeCommand) apply(b *Backend) { b.metronomes.add(newMetronome(c.id, c.tempo)) }

type removeMetronomeCommand struct{ id MetronomeID }

func (c removeMetronomeCommand) apply(b *Backend) { b.metronomes.remove(c.id) }

type startMetronomeCommand struct{ id MetronomeID }

func (c startMetronomeCommand) apply(b *Backend) {
	if m, ok := b.metronomes.get(c.id); ok {
		m.Start()
	}
}

type pauseMetronomeCommand struct{ id MetronomeID }

func (c pauseMetronomeCommand) apply(b *Backend) {
	if m, ok := b.metronomes.get(c.id); ok {
		m.Pause()
	}
}

type stopMetronomeCommand struct{ id MetronomeID }

func (c stopMetronomeCommand) apply(b *Backend) {
	if m, ok := b.metronomes.get(c.id); ok {
		m.Stop()
	}
}

type addMetronomeIntervalCommand struct {
	id       MetronomeID
	interval float64
}

func (c addMetronomeIntervalCommand) apply(b *Backend) {
	if m, ok := b.metronomes.get(c.id); ok {
		m.AddInterval(c.interval)
	}
}

type removeMetronomeIntervalCommand struct {
	id       MetronomeID
	interval float64
}

func (c removeMetronomeIntervalCommand) apply(b *Backend) {
	if m, ok := b.metronomes.get(c.id); ok {
		m.RemoveInterval(c.interval)
	}
}

// --- Sequence ---

type addSequenceCommand struct {
	id      SequenceID
	program []Step
}

func (c addSequenceCommand) apply(b *Backend) {
	b.sequences.add(newSequenceInstance(c.id, c.program))
}

type removeSequenceCommand struct{ id SequenceID }

func (c removeSequenceCommand) apply(b *Backend) { b.sequences.remove(c.id) }

type muteSequenceCommand struct {
	id    SequenceID
	muted bool
}

func (c muteSequenceCommand) apply(b *Backend) {
	if si, ok := b.sequences.get(c.id); ok {
		si.Muted = c.muted
	}
}

// --- Stream ---

type addStreamCommand struct {
	id     StreamID
	track  TrackID
	stream AudioStream
	volume Value
}

func (c addStreamCommand) apply(b *Backend) {
	b.streams.add(newStreamHandle(c.id, c.track, c.stream, c.volume))
}

type removeStreamCommand struct{ id StreamID }

func (c removeStreamCommand) apply(b *Backend) {
	h, ok := b.streams.entries.Remove(c.id)
	if !ok {
		return
	}
	box := reclaim.NewBox(h.stream, closeIfCloser[AudioStream])
	box.Release(b.reclaimStreams)
}

// closeIfCloser calls Close on value if it implements io.Closer, ignoring
// any error: cleanup failures here have no control-thread caller left to
// report to.
func closeIfCloser[T any](value T) {
	if closer, ok := any(value).(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
