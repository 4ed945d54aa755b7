package soundstage

// InstanceState is the playback state of one Instance (§3, §4.3).
type InstanceState int

const (
	StatePlaying InstanceState = iota
	StatePaused
	StatePausing
	StateStopping
	StateStopped
)

func (s InstanceState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StatePausing:
		return "pausing"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// playing reports whether the state machine should still advance
// position/fade this tick — true for every state except Paused and
// Stopped, matching the table in §4.3.
func (s InstanceState) playing() bool {
	return s == StatePlaying || s == StatePausing || s == StateStopping
}

// InstanceSettings configures a new Instance at Play time.
type InstanceSettings struct {
	Track         TrackID
	Volume        Value
	PlaybackRate  Value
	Panning       Value
	Reverse       bool
	LoopStart     float64
	HasLoopStart  bool
	StartPosition float64
	FadeIn        *Tween
	SequenceID    SequenceID
	HasSequence   bool
}

// DefaultInstanceSettings returns unity volume/rate, centered pan, forward
// playback from position 0, no fade-in.
func DefaultInstanceSettings() InstanceSettings {
	return InstanceSettings{
		Volume:       FixedValue(1),
		PlaybackRate: FixedValue(1),
		Panning:      FixedValue(0),
	}
}

// PauseSettings configures Instance.pause.
type PauseSettings struct {
	Fade *Tween
}

// ResumeSettings configures Instance.resume.
type ResumeSettings struct {
	Fade                  *Tween
	RewindToPausePosition bool
}

// StopSettings configures Instance.stop.
type StopSettings struct {
	Fade *Tween
}

// Instance is one playing voice of one Sound (§3, §4.3). Transient: created
// cheaply on the control thread (it carries no audio data of its own,
// only a reference to its Sound) and shipped to the audio thread, which
// owns all further mutation.
type Instance struct {
	id         InstanceID
	soundID    SoundID
	sequenceID SequenceID
	hasSeq     bool
	track      TrackID

	duration float64

	volume       CachedValue
	playbackRate CachedValue
	panning      CachedValue

	reverse      bool
	loopStart    float64
	hasLoopStart bool

	position       float64
	publicPosition atomicFloat64

	state       InstanceState
	publicState atomicInt32

	pausedPosition float64
	fadeVolume     *Parameter
}

func newInstance(id InstanceID, snd *Sound, settings InstanceSettings) *Instance {
	loopStart := settings.LoopStart
	hasLoop := settings.HasLoopStart
	if !hasLoop && snd.hasDefaultLoop {
		loopStart, hasLoop = snd.defaultLoopStart, true
	}
	if hasLoop && loopStart > snd.Duration() {
		hasLoop = false // §9 open question: loop_start > duration means no loop
	}

	track := settings.Track
	if track == 0 {
		track = snd.defaultTrack
	}

	position := settings.StartPosition
	fade := NewParameter(1)
	if settings.FadeIn != nil {
		fade.Set(0, nil)
		fade.Set(1, settings.FadeIn)
	}

	inst := &Instance{
		id:           id,
		soundID:      snd.id,
		sequenceID:   settings.SequenceID,
		hasSeq:       settings.HasSequence,
		track:        track,
		duration:     snd.Duration(),
		volume:       NewCachedValue(settings.Volume),
		playbackRate: NewCachedValue(settings.PlaybackRate),
		panning:      NewCachedValue(settings.Panning),
		reverse:      settings.Reverse,
		loopStart:    loopStart,
		hasLoopStart: hasLoop,
		position:     position,
		state:        StatePlaying,
		fadeVolume:   fade,
	}
	inst.publicPosition.store(position)
	inst.publicState.store(int32(StatePlaying))
	return inst
}

// ID returns the instance's identifier.
func (i *Instance) ID() InstanceID { return i.id }

// SoundID returns the identifier of the sound this instance plays.
func (i *Instance) SoundID() SoundID { return i.soundID }

// Track returns the mixer track this instance's output feeds.
func (i *Instance) Track() TrackID { return i.track }

// PublicPosition is the control-thread-observable playback position,
// mirrored from the audio thread with relaxed-equivalent atomic loads.
func (i *Instance) PublicPosition() float64 {
	return i.publicPosition.load()
}

// PublicState is the control-thread-observable state.
func (i *Instance) PublicState() InstanceState {
	return InstanceState(i.publicState.load())
}

func (i *Instance) playing() bool {
	return i.state.playing()
}

// pause transitions Playing → Paused (no fade) or Playing → Pausing (with
// fade). A no-op outside Playing.
func (i *Instance) pause(settings PauseSettings) {
	if i.state != StatePlaying {
		return
	}
	i.pausedPosition = i.position
	if settings.Fade == nil {
		i.fadeVolume.Set(0, nil)
		i.setState(StatePaused)
	} else {
		i.fadeVolume.Set(0, settings.Fade)
		i.setState(StatePausing)
	}
}

// resume transitions Paused/Pausing → Playing. A no-op otherwise.
func (i *Instance) resume(settings ResumeSettings) {
	if i.state != StatePaused && i.state != StatePausing {
		return
	}
	if settings.RewindToPausePosition {
		i.position = i.pausedPosition
		i.publicPosition.store(i.position)
	}
	if settings.Fade == nil {
		i.fadeVolume.Set(1, nil)
	} else {
		// §9 open question: continue the fade from fade_volume's current
		// value rather than restarting from 0.
		i.fadeVolume.Set(1, settings.Fade)
	}
	i.setState(StatePlaying)
}

// stop transitions any non-Stopped state to Stopped (no fade) or Stopping
// (with fade).
func (i *Instance) stop(settings StopSettings) {
	if i.state == StateStopped {
		return
	}
	if settings.Fade == nil {
		i.fadeVolume.Set(0, nil)
		i.setState(StateStopped)
	} else {
		i.fadeVolume.Set(0, settings.Fade)
		i.setState(StateStopping)
	}
}

// seekTo sets the absolute playback position in seconds.
func (i *Instance) seekTo(position float64) {
	i.position = position
	i.publicPosition.store(position)
}

// seekBy adjusts the playback position by a relative offset in seconds.
func (i *Instance) seekBy(amount float64) {
	i.seekTo(i.position + amount)
}

func (i *Instance) setState(s InstanceState) {
	i.state = s
	i.publicState.store(int32(s))
}

// update advances position, loop/terminal handling, and the fade envelope
// by dt seconds. Runs for every instance every tick (even non-playing
// ones are visited by Instances.process, but update is a no-op unless
// playing() is true) so fades complete and states settle (§4.4).
func (i *Instance) update(dt float64, params *parameters) {
	if !i.playing() {
		return
	}

	i.volume.Update(params)
	i.playbackRate.Update(params)
	i.panning.Update(params)

	rate := i.playbackRate.Get()
	if i.reverse {
		rate = -rate
	}
	i.position += rate * dt

	i.applyLoopOrTerminal()

	if i.state.playing() {
		if i.fadeVolume.Update(dt) {
			switch i.state {
			case StatePausing:
				i.setState(StatePaused)
			case StateStopping:
				i.setState(StateStopped)
			}
		}
	}

	i.publicPosition.store(i.position)
}

func (i *Instance) applyLoopOrTerminal() {
	if i.state != StatePlaying && i.state != StatePausing && i.state != StateStopping {
		return
	}
	if !i.reverse {
		if i.position <= i.duration {
			return
		}
		if !i.hasLoopStart {
			i.setState(StateStopped)
			return
		}
		span := i.duration - i.loopStart
		if span <= 0 {
			i.setState(StateStopped)
			return
		}
		for i.position > i.duration {
			i.position -= span
		}
		return
	}

	if i.hasLoopStart {
		span := i.duration - i.loopStart
		if span <= 0 {
			i.setState(StateStopped)
			return
		}
		if i.position >= i.loopStart {
			return
		}
		for i.position < i.loopStart {
			i.position += span
		}
		return
	}

	if i.position >= 0 {
		return
	}
	i.setState(StateStopped)
}

// sample renders the instance's current output frame: source frame, pan,
// then scale by volume*fadeVolume. Only meaningful while playing().
func (i *Instance) sample(snd SoundData) Frame {
	f := snd.FrameAt(i.position)
	f = f.Pan(i.panning.Get())
	return f.Scale(i.volume.Get() * i.fadeVolume.Value())
}
