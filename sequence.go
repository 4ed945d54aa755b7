package soundstage

// StepKind tags which operation a Step performs. Programs are a flat,
// linear list of steps plus a program counter rather than a coroutine or
// callback chain: a SequenceInstance is just (program []Step, pc int) and
// a little wait state, which keeps the whole thing allocation-free to
// step and trivial to inspect mid-run (§4.6 design note).
type StepKind int

const (
	StepWait StepKind = iota
	StepWaitForInterval
	StepPlay
	StepSetParameter
	StepEmitCustomEvent
	StepStartLoop
	StepPauseInstancesOf
	StepResumeInstancesOf
	StepStopInstancesOf
	StepPauseGroup
	StepResumeGroup
	StepStopGroup
)

// Step is one instruction in a sequence program. Only the fields relevant
// to Kind are meaningful; building a program is a matter of appending
// Steps built with the constructor functions below.
type Step struct {
	Kind StepKind

	Seconds float64

	Metronome MetronomeID
	Interval  float64

	Sound            SoundID
	InstanceSettings InstanceSettings

	Parameter ParameterID
	Target    float64
	Tween     *Tween

	EventName string

	Group         GroupID
	PauseSettings PauseSettings
	ResumeSettings ResumeSettings
	StopSettings  StopSettings
}

// WaitStep pauses the program for the given number of seconds.
func WaitStep(seconds float64) Step { return Step{Kind: StepWait, Seconds: seconds} }

// WaitForIntervalStep pauses the program until the given metronome next
// crosses the given interval.
func WaitForIntervalStep(metronome MetronomeID, interval float64) Step {
	return Step{Kind: StepWaitForInterval, Metronome: metronome, Interval: interval}
}

// PlayStep starts a new Instance of sound with the given settings,
// tagging it as belonging to this sequence.
func PlayStep(sound SoundID, settings InstanceSettings) Step {
	return Step{Kind: StepPlay, Sound: sound, InstanceSettings: settings}
}

// SetParameterStep animates a parameter toward target over tween (nil for
// an instant set).
func SetParameterStep(parameter ParameterID, target float64, tween *Tween) Step {
	return Step{Kind: StepSetParameter, Parameter: parameter, Target: target, Tween: tween}
}

// EmitCustomEventStep reports a SequenceEvent named name through the
// engine's event sink.
func EmitCustomEventStep(name string) Step {
	return Step{Kind: StepEmitCustomEvent, EventName: name}
}

// StartLoopStep marks the next step as the jump target once the program
// runs off its end; a program with no StartLoopStep simply finishes.
func StartLoopStep() Step { return Step{Kind: StepStartLoop} }

// PauseInstancesOfStep, ResumeInstancesOfStep, StopInstancesOfStep affect
// every live instance of the given sound.
func PauseInstancesOfStep(sound SoundID, settings PauseSettings) Step {
	return Step{Kind: StepPauseInstancesOf, Sound: sound, PauseSettings: settings}
}
func ResumeInstancesOfStep(sound SoundID, settings ResumeSettings) Step {
	return Step{Kind: StepResumeInstancesOf, Sound: sound, ResumeSettings: settings}
}
func StopInstancesOfStep(sound SoundID, settings StopSettings) Step {
	return Step{Kind: StepStopInstancesOf, Sound: sound, StopSettings: settings}
}

// PauseGroupStep, ResumeGroupStep, StopGroupStep affect every live
// instance whose sound belongs to the given group.
func PauseGroupStep(group GroupID, settings PauseSettings) Step {
	return Step{Kind: StepPauseGroup, Group: group, PauseSettings: settings}
}
func ResumeGroupStep(group GroupID, settings ResumeSettings) Step {
	return Step{Kind: StepResumeGroup, Group: group, ResumeSettings: settings}
}
func StopGroupStep(group GroupID, settings StopSettings) Step {
	return Step{Kind: StepStopGroup, Group: group, StopSettings: settings}
}

// sequenceContext is the capability surface a SequenceInstance needs to
// execute its Play/SetParameter/group-command/event steps, implemented by
// Backend so a SequenceInstance itself stays free of any direct
// dependency on Instances/Mixer/Sounds.
type sequenceContext interface {
	playSound(sound SoundID, settings InstanceSettings, seq SequenceID)
	setParameter(id ParameterID, target float64, tween *Tween)
	emitCustomEvent(seq SequenceID, name string)
	pauseInstancesOf(sound SoundID, settings PauseSettings)
	resumeInstancesOf(sound SoundID, settings ResumeSettings)
	stopInstancesOf(sound SoundID, settings StopSettings)
	pauseGroup(group GroupID, settings PauseSettings)
	resumeGroup(group GroupID, settings ResumeSettings)
	stopGroup(group GroupID, settings StopSettings)
	intervalElapsed(metronome MetronomeID, interval float64) bool
}

// SequenceInstance is one running execution of a sequence program.
type SequenceInstance struct {
	id      SequenceID
	program []Step
	pc      int

	waitTimer float64

	waitingInterval   bool
	intervalMetronome MetronomeID
	intervalValue     float64

	loopPoint int // -1 means "no loop"

	Muted    bool
	finished bool
}

func newSequenceInstance(id SequenceID, program []Step) *SequenceInstance {
	return &SequenceInstance{id: id, program: program, loopPoint: -1}
}

// ID returns the sequence instance's identifier.
func (si *SequenceInstance) ID() SequenceID { return si.id }

// Finished reports whether the program has run to completion with no loop
// point to return to.
func (si *SequenceInstance) Finished() bool { return si.finished }

// advance runs the program forward by dt seconds of real time, executing
// every step it reaches until the next Wait/WaitForInterval or the
// program (and any loop) finishes. A loop body must contain at least one
// Wait or WaitForInterval step, or advance never returns.
func (si *SequenceInstance) advance(dt float64, ctx sequenceContext) {
	if si.finished {
		return
	}

	if si.waitingInterval {
		if !ctx.intervalElapsed(si.intervalMetronome, si.intervalValue) {
			return
		}
		si.waitingInterval = false
	}

	if si.waitTimer > 0 {
		si.waitTimer -= dt
		if si.waitTimer > 0 {
			return
		}
		si.waitTimer = 0
	}

	for {
		if si.pc >= len(si.program) {
			if si.loopPoint >= 0 {
				si.pc = si.loopPoint
				continue
			}
			si.finished = true
			return
		}

		step := si.program[si.pc]
		si.pc++

		switch step.Kind {
		case StepWait:
			si.waitTimer = step.Seconds
			return
		case StepWaitForInterval:
			si.waitingInterval = true
			si.intervalMetronome = step.Metronome
			si.intervalValue = step.Interval
			return
		case StepStartLoop:
			si.loopPoint = si.pc
		case StepPlay:
			if !si.Muted {
				ctx.playSound(step.Sound, step.InstanceSettings, si.id)
			}
		case StepSetParameter:
			ctx.setParameter(step.Parameter, step.Target, step.Tween)
		case StepEmitCustomEvent:
			ctx.emitCustomEvent(si.id, step.EventName)
		case StepPauseInstancesOf:
			ctx.pauseInstancesOf(step.Sound, step.PauseSettings)
		case StepResumeInstancesOf:
			ctx.resumeInstancesOf(step.Sound, step.ResumeSettings)
		case StepStopInstancesOf:
			ctx.stopInstancesOf(step.Sound, step.StopSettings)
		case StepPauseGroup:
			ctx.pauseGroup(step.Group, step.PauseSettings)
		case StepResumeGroup:
			ctx.resumeGroup(step.Group, step.ResumeSettings)
		case StepStopGroup:
			ctx.stopGroup(step.Group, step.StopSettings)
		}
	}
}
