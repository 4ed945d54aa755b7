package soundstage

import "errors"

// Control-plane errors. The audio plane never returns an error (§7):
// unknown IDs, a full internal queue, or a state-machine no-op are
// silently absorbed there. Of these, only an event dropped on a full
// event channel is counted, in Backend.EventsDropped.
var (
	// ErrCommandQueueFull is returned when the command channel to the
	// audio thread is at capacity. Retryable — the caller may try again
	// once the audio thread has drained more commands.
	ErrCommandQueueFull = errors.New("soundstage: command queue full")

	// ErrMutexPoisoned is returned when a prior panic left the command
	// producer's shared mutex in an unusable state. Unrecoverable.
	ErrMutexPoisoned = errors.New("soundstage: command producer mutex poisoned")

	ErrSoundLimitReached     = errors.New("soundstage: sound limit reached")
	ErrParameterLimitReached = errors.New("soundstage: parameter limit reached")
	ErrSubTrackLimitReached  = errors.New("soundstage: sub-track limit reached")
	ErrSendTrackLimitReached = errors.New("soundstage: send-track limit reached")
	ErrGroupLimitReached     = errors.New("soundstage: group limit reached")
	ErrMetronomeLimitReached = errors.New("soundstage: metronome limit reached")
	ErrStreamLimitReached    = errors.New("soundstage: stream limit reached")
	ErrSequenceLimitReached  = errors.New("soundstage: sequence limit reached")

	ErrNoSoundWithID     = errors.New("soundstage: no sound with that id")
	ErrNoParameterWithID = errors.New("soundstage: no parameter with that id")
	ErrNoTrackWithID     = errors.New("soundstage: no track with that id")
	ErrNoGroupWithID     = errors.New("soundstage: no group with that id")
	ErrNoMetronomeWithID = errors.New("soundstage: no metronome with that id")
	ErrNoSequenceWithID  = errors.New("soundstage: no sequence with that id")
	ErrNoStreamWithID    = errors.New("soundstage: no stream with that id")
)
