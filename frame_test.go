package soundstage

import "testing"

func TestFrameAdd(t *testing.T) {
	got := Frame{Left: 0.5, Right: -0.25}.Add(Frame{Left: 0.25, Right: 0.25})
	want := Frame{Left: 0.75, Right: 0}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}

func TestFrameScale(t *testing.T) {
	got := Frame{Left: 1, Right: 1}.Scale(0.5)
	if got.Left != 0.5 || got.Right != 0.5 {
		t.Errorf("Scale(0.5) = %+v", got)
	}
}

func TestFramePanCenterIsUnchanged(t *testing.T) {
	f := Frame{Left: 1, Right: 1}
	if got := f.Pan(0); got != f {
		t.Errorf("Pan(0) = %+v, want unchanged %+v", got, f)
	}
}

func TestFramePanHardLeftSilencesRight(t *testing.T) {
	got := Frame{Left: 1, Right: 1}.Pan(-1)
	if got.Left != 1 || got.Right != 0 {
		t.Errorf("Pan(-1) = %+v, want {1 0}", got)
	}
}

func TestFramePanHardRightSilencesLeft(t *testing.T) {
	got := Frame{Left: 1, Right: 1}.Pan(1)
	if got.Left != 0 || got.Right != 1 {
		t.Errorf("Pan(1) = %+v, want {0 1}", got)
	}
}

func TestFramePanClampsOutOfRange(t *testing.T) {
	got := Frame{Left: 1, Right: 1}.Pan(5)
	want := Frame{Left: 1, Right: 1}.Pan(1)
	if got != want {
		t.Errorf("Pan(5) = %+v, want clamped %+v", got, want)
	}
}

func TestFrameMono(t *testing.T) {
	if got := (Frame{Left: 1, Right: -1}).Mono(); got != 0 {
		t.Errorf("Mono() = %v, want 0", got)
	}
}

func TestFrameClamp(t *testing.T) {
	got := Frame{Left: 2, Right: -2}.Clamp()
	if got.Left != 1 || got.Right != -1 {
		t.Errorf("Clamp() = %+v, want {1 -1}", got)
	}
}
