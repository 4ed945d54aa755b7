// Package reclaim implements the audio-to-control ownership hand-off: a
// value shipped to the audio thread must never have its cleanup run there
// (closing a cgo decoder, tearing down a network track — anything that
// might allocate or block). Releasing a Box on the audio thread only
// ever forwards the value over a channel; the control thread drains it and
// runs the real cleanup later, off the real-time thread.
//
// This mirrors the discipline a VoIP engine's audio callback observes
// around PortAudio streams: Pa_StopStream unblocks the callback, but the
// actual Pa_CloseStream only happens once the callback goroutine has
// returned — destructive work is deferred to a thread that can afford to
// wait.
package reclaim

// Queue is the audio→control channel carrying values whose cleanup must
// happen off the audio thread. Only the audio thread calls Push; only the
// control thread calls Drain.
type Queue[T any] struct {
	ch      chan T
	dropped func()
}

// NewQueue returns a Queue with the given capacity. onDrop, if non-nil, is
// called whenever Push finds the queue full — the value is discarded
// rather than leaking memory tracking, but the drop is observable so a
// host can alert if reclamation is falling behind.
func NewQueue[T any](capacity int, onDrop func()) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{ch: make(chan T, capacity), dropped: onDrop}
}

// Push enqueues value for later cleanup. Never blocks; if the queue is
// full the value is dropped (and onDrop, if set, is invoked) rather than
// stalling the audio thread.
func (q *Queue[T]) Push(value T) {
	select {
	case q.ch <- value:
	default:
		if q.dropped != nil {
			q.dropped()
		}
	}
}

// Drain removes and returns every value currently queued, for the control
// thread to clean up. Safe to call periodically (e.g. from
// Manager.FreeUnusedResources).
func (q *Queue[T]) Drain() []T {
	var out []T
	for {
		select {
		case v := <-q.ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

// Box wraps a value of type T with an optional Close-style cleanup. Box
// itself does nothing special when constructed; Release is what defers
// the cleanup to a reclaim Queue instead of running it inline.
type Box[T any] struct {
	Value T
	Close func(T)
}

// NewBox wraps value with the given cleanup function (may be nil).
func NewBox[T any](value T, close func(T)) Box[T] {
	return Box[T]{Value: value, Close: close}
}

// Release is called from the audio thread when it no longer needs the
// boxed value. It never runs Close itself — it forwards the box to queue,
// where the control thread eventually calls ReleaseNow.
func (b Box[T]) Release(queue *Queue[Box[T]]) {
	queue.Push(b)
}

// ReleaseNow runs the box's cleanup immediately. Only ever called from the
// control thread, typically while draining a reclaim Queue.
func (b Box[T]) ReleaseNow() {
	if b.Close != nil {
		b.Close(b.Value)
	}
}
