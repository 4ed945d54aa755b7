package soundstage

// SoundData is the contract any audio source implements (§6). Frame_at
// must be pure, deterministic, and bounded-time — the audio thread calls
// it once per playing instance per tick.
type SoundData interface {
	// Duration returns the source's length in seconds; +Inf for an
	// unbounded streaming source.
	Duration() float64
	// FrameAt returns the sample at positionSeconds. Out-of-range
	// positions return Silence.
	FrameAt(positionSeconds float64) Frame
}

// SoundSettings configures a Sound at construction time (§3).
type SoundSettings struct {
	DefaultTrack      TrackID
	Cooldown          float64 // seconds; 0 disables the cooldown
	SemanticDuration  float64 // used only when HasSemanticDur is set; otherwise Data.Duration()
	HasSemanticDur    bool
	DefaultLoopStart  float64
	HasDefaultLoop    bool
	Groups            []GroupID
}

// Sound is immutable after construction: a shared audio source plus
// playback defaults. Its Data is held via Go's ordinary reference
// semantics — every Instance retains its own reference to the same Sound,
// so removing a Sound from the Sounds registry does not invalidate
// instances still playing it; the underlying SoundData is only eligible
// for garbage collection once the last Instance referencing it is gone
// (the Go GC standing in for the spec's explicit refcounting, per the
// "shared sound data across instances" design note).
type Sound struct {
	id               SoundID
	data             SoundData
	defaultTrack     TrackID
	cooldown         float64
	cooldownTimer    float64
	semanticDuration float64
	hasSemanticDur   bool
	defaultLoopStart float64
	hasDefaultLoop   bool
	groups           map[GroupID]struct{}
}

func newSound(id SoundID, data SoundData, settings SoundSettings) *Sound {
	groups := make(map[GroupID]struct{}, len(settings.Groups))
	for _, g := range settings.Groups {
		groups[g] = struct{}{}
	}
	return &Sound{
		id:               id,
		data:             data,
		defaultTrack:     settings.DefaultTrack,
		cooldown:         settings.Cooldown,
		semanticDuration: settings.SemanticDuration,
		hasSemanticDur:   settings.HasSemanticDur,
		defaultLoopStart: settings.DefaultLoopStart,
		hasDefaultLoop:   settings.HasDefaultLoop,
		groups:           groups,
	}
}

// ID returns the sound's identifier.
func (s *Sound) ID() SoundID { return s.id }

// Duration returns the sound's playback length: the semantic duration if
// one was configured, otherwise the underlying data's duration.
func (s *Sound) Duration() float64 {
	if s.hasSemanticDur {
		return s.semanticDuration
	}
	return s.data.Duration()
}

// InGroup reports whether the sound belongs to group g, directly or via
// an ancestor group (§3's Group membership rule), using groups as the
// owning registry to resolve ancestry.
func (s *Sound) InGroup(g GroupID, groups *groupRegistry) bool {
	for member := range s.groups {
		if member == g || groups.isAncestor(g, member) {
			return true
		}
	}
	return false
}

// onCooldown reports whether the sound's cooldown is still running, in
// which case a new instance of it may not start.
func (s *Sound) onCooldown() bool {
	return s.cooldown > 0 && s.cooldownTimer > 0
}

// startCooldown resets the cooldown timer after a successful Play.
func (s *Sound) startCooldown() {
	if s.cooldown > 0 {
		s.cooldownTimer = s.cooldown
	}
}

// advanceCooldown ticks the cooldown timer down by dt seconds. Called once
// per Backend.Process tick (step 9, §4.7).
func (s *Sound) advanceCooldown(dt float64) {
	if s.cooldownTimer > 0 {
		s.cooldownTimer -= dt
		if s.cooldownTimer < 0 {
			s.cooldownTimer = 0
		}
	}
}
