package soundstage

import "testing"

// constantData is a trivial SoundData returning the same frame everywhere,
// sufficient for exercising Sound/Instance bookkeeping without needing real
// sample data.
type constantData struct {
	duration float64
	frame    Frame
}

func (c constantData) Duration() float64 { return c.duration }

func (c constantData) FrameAt(pos float64) Frame {
	if pos < 0 || pos > c.duration {
		return Silence
	}
	return c.frame
}

func TestSoundDurationUsesDataByDefault(t *testing.T) {
	snd := newSound(1, constantData{duration: 2.5}, SoundSettings{})
	if snd.Duration() != 2.5 {
		t.Errorf("Duration() = %v, want 2.5", snd.Duration())
	}
}

func TestSoundSemanticDurationOverridesData(t *testing.T) {
	snd := newSound(1, constantData{duration: 2.5}, SoundSettings{
		SemanticDuration: 1.0,
		HasSemanticDur:   true,
	})
	if snd.Duration() != 1.0 {
		t.Errorf("Duration() = %v, want semantic 1.0", snd.Duration())
	}
}

func TestSoundCooldown(t *testing.T) {
	snd := newSound(1, constantData{duration: 1}, SoundSettings{Cooldown: 0.5})
	if snd.onCooldown() {
		t.Fatal("fresh sound should not be on cooldown")
	}
	snd.startCooldown()
	if !snd.onCooldown() {
		t.Fatal("sound should be on cooldown right after starting")
	}
	snd.advanceCooldown(0.3)
	if !snd.onCooldown() {
		t.Error("sound should still be on cooldown at 0.3/0.5")
	}
	snd.advanceCooldown(0.3)
	if snd.onCooldown() {
		t.Error("sound should be off cooldown once timer passes duration")
	}
}

func TestSoundInGroupDirectAndViaAncestor(t *testing.T) {
	groups := newGroupRegistry(8)
	parent := GroupID(1)
	child := GroupID(2)
	groups.add(parent, nil)
	groups.add(child, []GroupID{parent})

	snd := newSound(1, constantData{duration: 1}, SoundSettings{Groups: []GroupID{child}})
	if !snd.InGroup(child, groups) {
		t.Error("sound should be in its direct group")
	}
	if !snd.InGroup(parent, groups) {
		t.Error("sound should be in its group's ancestor")
	}
	if snd.InGroup(GroupID(99), groups) {
		t.Error("sound should not be in an unrelated group")
	}
}
