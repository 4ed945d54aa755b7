package soundstage

// instances is the audio-thread registry of live Instance values. Unlike
// every other pool in the engine it never rejects a Play at capacity:
// when full it evicts the oldest instance first (§4.4, §9 open question),
// stopping it without a fade so its Track/Sound references are released
// immediately rather than lingering through a fade-out nobody will hear
// over the new voice stealing its slot.
type instances struct {
	entries *vecMap[InstanceID, *Instance]

	// reapScratch is reused by process every tick so reaping stopped
	// instances doesn't allocate once a tick's capacity is reached.
	reapScratch []InstanceID
}

func newInstances(capacity int) *instances {
	return &instances{
		entries:     newVecMap[InstanceID, *Instance](capacity),
		reapScratch: make([]InstanceID, 0, capacity),
	}
}

func (in *instances) len() int {
	return in.entries.Len()
}

// insert adds inst, evicting the oldest surviving instance first if the
// registry is full. Returns the evicted instance, if any, so the caller
// can count it for diagnostics.
func (in *instances) insert(inst *Instance) (evicted *Instance) {
	if in.entries.Full() {
		if oldest, ok := in.entries.Oldest(); ok {
			evicted, _ = in.entries.Remove(oldest)
			if evicted != nil {
				evicted.stop(StopSettings{})
			}
		}
	}
	in.entries.Insert(inst.id, inst)
	return evicted
}

func (in *instances) get(id InstanceID) (*Instance, bool) {
	return in.entries.Get(id)
}

// pause/resume/stop apply to a single instance by id. No-ops if the
// instance is absent (it may already have finished and been reaped).
func (in *instances) pause(id InstanceID, settings PauseSettings) {
	if inst, ok := in.entries.Get(id); ok {
		inst.pause(settings)
	}
}

func (in *instances) resume(id InstanceID, settings ResumeSettings) {
	if inst, ok := in.entries.Get(id); ok {
		inst.resume(settings)
	}
}

func (in *instances) stop(id InstanceID, settings StopSettings) {
	if inst, ok := in.entries.Get(id); ok {
		inst.stop(settings)
	}
}

func (in *instances) seekTo(id InstanceID, position float64) {
	if inst, ok := in.entries.Get(id); ok {
		inst.seekTo(position)
	}
}

func (in *instances) seekBy(id InstanceID, amount float64) {
	if inst, ok := in.entries.Get(id); ok {
		inst.seekBy(amount)
	}
}

// eachInSound applies fn to every live instance of sound snd.
func (in *instances) eachInSound(snd SoundID, fn func(*Instance)) {
	in.entries.Each(func(_ InstanceID, inst *Instance) {
		if inst.soundID == snd {
			fn(inst)
		}
	})
}

// eachInGroup applies fn to every live instance whose Sound is a member of
// group g (directly or via ancestry), resolved against snds/groups.
func (in *instances) eachInGroup(g GroupID, snds *sounds, groups *groupRegistry, fn func(*Instance)) {
	in.entries.Each(func(_ InstanceID, inst *Instance) {
		snd, ok := snds.get(inst.soundID)
		if !ok {
			return
		}
		if snd.InGroup(g, groups) {
			fn(inst)
		}
	})
}

// eachInSequence applies fn to every live instance started by sequence seq.
func (in *instances) eachInSequence(seq SequenceID, fn func(*Instance)) {
	in.entries.Each(func(_ InstanceID, inst *Instance) {
		if inst.hasSeq && inst.sequenceID == seq {
			fn(inst)
		}
	})
}

// PauseInstancesOf pauses every live instance of the given sound.
func (in *instances) PauseInstancesOf(snd SoundID, settings PauseSettings) {
	in.eachInSound(snd, func(inst *Instance) { inst.pause(settings) })
}

// ResumeInstancesOf resumes every live instance of the given sound.
func (in *instances) ResumeInstancesOf(snd SoundID, settings ResumeSettings) {
	in.eachInSound(snd, func(inst *Instance) { inst.resume(settings) })
}

// StopInstancesOf stops every live instance of the given sound.
func (in *instances) StopInstancesOf(snd SoundID, settings StopSettings) {
	in.eachInSound(snd, func(inst *Instance) { inst.stop(settings) })
}

// PauseGroup pauses every live instance whose sound belongs to g.
func (in *instances) PauseGroup(g GroupID, snds *sounds, groups *groupRegistry, settings PauseSettings) {
	in.eachInGroup(g, snds, groups, func(inst *Instance) { inst.pause(settings) })
}

// ResumeGroup resumes every live instance whose sound belongs to g.
func (in *instances) ResumeGroup(g GroupID, snds *sounds, groups *groupRegistry, settings ResumeSettings) {
	in.eachInGroup(g, snds, groups, func(inst *Instance) { inst.resume(settings) })
}

// StopGroup stops every live instance whose sound belongs to g.
func (in *instances) StopGroup(g GroupID, snds *sounds, groups *groupRegistry, settings StopSettings) {
	in.eachInGroup(g, snds, groups, func(inst *Instance) { inst.stop(settings) })
}

// PauseInstancesOfSequence pauses every instance started by sequence seq.
func (in *instances) PauseInstancesOfSequence(seq SequenceID, settings PauseSettings) {
	in.eachInSequence(seq, func(inst *Instance) { inst.pause(settings) })
}

// ResumeInstancesOfSequence resumes every instance started by sequence seq.
func (in *instances) ResumeInstancesOfSequence(seq SequenceID, settings ResumeSettings) {
	in.eachInSequence(seq, func(inst *Instance) { inst.resume(settings) })
}

// StopInstancesOfSequence stops every instance started by sequence seq.
func (in *instances) StopInstancesOfSequence(seq SequenceID, settings StopSettings) {
	in.eachInSequence(seq, func(inst *Instance) { inst.stop(settings) })
}

// process samples every live instance, mixes its output into the mixer
// track it targets, advances it by dt, and reaps instances that have
// reached Stopped (§4.4, §4.7 step 6: sample, route, advance, reap).
// Sampling before advancing means an instance that transitions to
// Stopped this tick still contributes its final frame. Returns the
// number reaped, which Backend adds to its InstancesReaped counter.
func (in *instances) process(dt float64, snds *sounds, mixer *Mixer, params *parameters) int {
	in.reapScratch = in.reapScratch[:0]
	in.entries.Each(func(id InstanceID, inst *Instance) {
		if inst.playing() {
			if snd, ok := snds.get(inst.soundID); ok {
				frame := inst.sample(snd.data)
				mixer.addInput(inst.track, frame)
			}
		}
		inst.update(dt, params)
		if inst.state == StateStopped {
			in.reapScratch = append(in.reapScratch, id)
		}
	})
	for _, id := range in.reapScratch {
		in.entries.Remove(id)
	}
	return len(in.reapScratch)
}
