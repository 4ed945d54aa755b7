package soundstage

import "testing"

// fakeSequenceContext records every call a SequenceInstance makes, standing
// in for Backend so sequence step execution can be tested in isolation.
type fakeSequenceContext struct {
	played       []SoundID
	setParams    []ParameterID
	events       []string
	elapsedFor   map[MetronomeID]bool
}

func newFakeSequenceContext() *fakeSequenceContext {
	return &fakeSequenceContext{elapsedFor: make(map[MetronomeID]bool)}
}

func (f *fakeSequenceContext) playSound(sound SoundID, settings InstanceSettings, seq SequenceID) {
	f.played = append(f.played, sound)
}
func (f *fakeSequenceContext) setParameter(id ParameterID, target float64, tween *Tween) {
	f.setParams = append(f.setParams, id)
}
func (f *fakeSequenceContext) emitCustomEvent(seq SequenceID, name string) {
	f.events = append(f.events, name)
}
func (f *fakeSequenceContext) pauseInstancesOf(sound SoundID, settings PauseSettings)   {}
func (f *fakeSequenceContext) resumeInstancesOf(sound SoundID, settings ResumeSettings) {}
func (f *fakeSequenceContext) stopInstancesOf(sound SoundID, settings StopSettings)     {}
func (f *fakeSequenceContext) pauseGroup(group GroupID, settings PauseSettings)         {}
func (f *fakeSequenceContext) resumeGroup(group GroupID, settings ResumeSettings)       {}
func (f *fakeSequenceContext) stopGroup(group GroupID, settings StopSettings)           {}
func (f *fakeSequenceContext) intervalElapsed(metronome MetronomeID, interval float64) bool {
	return f.elapsedFor[metronome]
}

func TestSequenceInstanceRunsUntilWait(t *testing.T) {
	program := []Step{
		PlayStep(1, DefaultInstanceSettings()),
		EmitCustomEventStep("intro"),
		WaitStep(1),
		PlayStep(2, DefaultInstanceSettings()),
	}
	si := newSequenceInstance(1, program)
	ctx := newFakeSequenceContext()

	si.advance(0, ctx)
	if len(ctx.played) != 1 || ctx.played[0] != 1 {
		t.Fatalf("played = %v, want [1] (should stop at the Wait step)", ctx.played)
	}
	if len(ctx.events) != 1 || ctx.events[0] != "intro" {
		t.Fatalf("events = %v, want [intro]", ctx.events)
	}
}

func TestSequenceInstanceResumesAfterWaitElapses(t *testing.T) {
	program := []Step{
		WaitStep(1),
		PlayStep(2, DefaultInstanceSettings()),
	}
	si := newSequenceInstance(1, program)
	ctx := newFakeSequenceContext()

	si.advance(0, ctx) // enters the wait
	si.advance(0.5, ctx)
	if len(ctx.played) != 0 {
		t.Fatalf("played = %v, want none before the wait elapses", ctx.played)
	}
	si.advance(0.6, ctx)
	if len(ctx.played) != 1 || ctx.played[0] != 2 {
		t.Fatalf("played = %v, want [2] once the wait has elapsed", ctx.played)
	}
}

func TestSequenceInstanceWaitsForMetronomeInterval(t *testing.T) {
	program := []Step{
		WaitForIntervalStep(1, 1),
		PlayStep(5, DefaultInstanceSettings()),
	}
	si := newSequenceInstance(1, program)
	ctx := newFakeSequenceContext()

	si.advance(0, ctx)
	if len(ctx.played) != 0 {
		t.Fatal("should not play before the interval elapses")
	}
	si.advance(0, ctx) // still not elapsed
	if len(ctx.played) != 0 {
		t.Fatal("should still not play before the interval elapses")
	}
	ctx.elapsedFor[1] = true
	si.advance(0, ctx)
	if len(ctx.played) != 1 {
		t.Fatal("should play once the metronome interval elapses")
	}
}

func TestSequenceInstanceLoopsToStartLoopMarker(t *testing.T) {
	// The loop body includes a Wait so each lap yields control back to the
	// caller instead of spinning the program counter forever in one call.
	program := []Step{
		PlayStep(1, DefaultInstanceSettings()),
		StartLoopStep(),
		PlayStep(2, DefaultInstanceSettings()),
		WaitStep(1),
	}
	si := newSequenceInstance(1, program)
	ctx := newFakeSequenceContext()

	si.advance(0, ctx) // plays 1, then 2, then hits Wait
	for i := 0; i < 3; i++ {
		si.advance(1.1, ctx) // clears the wait, loops back, plays 2 again, waits again
	}

	if si.Finished() {
		t.Error("a program with a loop point should never finish")
	}
	want := []SoundID{1, 2, 2, 2, 2}
	if len(ctx.played) != len(want) {
		t.Fatalf("played = %v, want %v", ctx.played, want)
	}
	for i := range want {
		if ctx.played[i] != want[i] {
			t.Errorf("played[%d] = %v, want %v", i, ctx.played[i], want[i])
		}
	}
}

func TestSequenceInstanceFinishesWithoutLoopPoint(t *testing.T) {
	program := []Step{PlayStep(1, DefaultInstanceSettings())}
	si := newSequenceInstance(1, program)
	ctx := newFakeSequenceContext()

	si.advance(0, ctx)
	if !si.Finished() {
		t.Error("program without a loop point should finish after its last step")
	}
}

func TestSequenceInstanceMutedSkipsPlay(t *testing.T) {
	program := []Step{PlayStep(1, DefaultInstanceSettings())}
	si := newSequenceInstance(1, program)
	si.Muted = true
	ctx := newFakeSequenceContext()

	si.advance(0, ctx)
	if len(ctx.played) != 0 {
		t.Error("muted sequence should not play sounds")
	}
}
