package soundstage

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 stores a float64 behind an atomic.Uint64, the same trick
// the teacher uses for its float32 notification-volume field
// (math.Float32bits/Float32frombits) scaled up to float64 precision for a
// playback position in seconds. Loads/stores use relaxed ordering: exact
// per-sample accuracy between threads is not required (§5).
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

func (a *atomicFloat64) load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// atomicInt32 is a thin alias kept distinct from atomic.Int32 so instance
// state reads/writes read clearly as "the public mirror" at call sites.
type atomicInt32 struct {
	v atomic.Int32
}

func (a *atomicInt32) store(v int32) {
	a.v.Store(v)
}

func (a *atomicInt32) load() int32 {
	return a.v.Load()
}
