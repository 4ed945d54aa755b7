package soundstage

import "sync/atomic"

// SoundID, InstanceID, ParameterID, ... are opaque, process-wide-unique,
// copyable, hashable identifiers. Each is generated by an atomic counter
// owned by the Manager that created it — never a package-level
// global — so two engines in the same process never collide. See the
// "per-thread registries over global singletons" design note.
type (
	SoundID      uint64
	InstanceID   uint64
	ParameterID  uint64
	TrackID      uint64
	SendTrackID  uint64
	GroupID      uint64
	MetronomeID  uint64
	SequenceID   uint64
	StreamID     uint64
	EffectID     uint64
)

// idAllocator hands out monotonically increasing IDs of type T, never
// reused within the lifetime of the process that owns it.
type idAllocator[T ~uint64] struct {
	next atomic.Uint64
}

// alloc returns the next ID. IDs start at 1 so the zero value of T can be
// used as a sentinel "no ID" outside this package.
func (a *idAllocator[T]) alloc() T {
	return T(a.next.Add(1))
}

// idAllocators bundles one allocator per entity kind; each Manager holds
// one (shared by pointer with its Backend) so every manager owns
// independent counters.
type idAllocators struct {
	sound     idAllocator[SoundID]
	instance  idAllocator[InstanceID]
	parameter idAllocator[ParameterID]
	track     idAllocator[TrackID]
	sendTrack idAllocator[SendTrackID]
	group     idAllocator[GroupID]
	metronome idAllocator[MetronomeID]
	sequence  idAllocator[SequenceID]
	stream    idAllocator[StreamID]
	effect    idAllocator[EffectID]
}
