package soundstage

import "testing"

type noopCommand struct{ applied *bool }

func (c noopCommand) apply(b *Backend) { *c.applied = true }

func TestCommandWriterPushDeliversToChannel(t *testing.T) {
	writer, ch := newCommandChannel(1)
	applied := false
	if err := writer.push(noopCommand{applied: &applied}); err != nil {
		t.Fatalf("push: %v", err)
	}
	cmd := <-ch
	cmd.apply(nil)
	if !applied {
		t.Error("apply should have run and set applied")
	}
}

func TestCommandWriterPushReturnsErrorWhenFull(t *testing.T) {
	writer, _ := newCommandChannel(1)
	applied := false
	if err := writer.push(noopCommand{applied: &applied}); err != nil {
		t.Fatalf("first push: %v", err)
	}
	if err := writer.push(noopCommand{applied: &applied}); err != ErrCommandQueueFull {
		t.Errorf("second push = %v, want ErrCommandQueueFull", err)
	}
}
