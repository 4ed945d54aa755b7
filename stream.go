package soundstage

// AudioStream is a source of audio that, unlike SoundData, does not
// support seeking or a known duration: a live microphone capture, a
// network receive buffer, a procedural generator (§6). Next is called
// once per tick per active stream and must be bounded-time, same as
// SoundData.FrameAt.
type AudioStream interface {
	// Next returns the stream's next frame, advancing it by dt seconds.
	// Implementations that can run dry (e.g. an underrun network buffer)
	// return Silence rather than blocking.
	Next(dt float64) Frame
}

// streamHandle binds a running AudioStream to the mixer track it feeds
// and a volume it is scaled by, mirroring the Volume an Instance carries.
type streamHandle struct {
	id     StreamID
	track  TrackID
	stream AudioStream
	Volume CachedValue
}

func newStreamHandle(id StreamID, track TrackID, stream AudioStream, volume Value) *streamHandle {
	return &streamHandle{id: id, track: track, stream: stream, Volume: NewCachedValue(volume)}
}
