// Package netstream implements soundstage.AudioStream over a WebRTC
// remote audio track: RTP packets arrive on their own goroutine, get
// Opus-decoded, and are written into a fixed-size ring buffer that the
// audio thread drains one frame at a time from Next. The ring uses the
// same technique a voice-chat jitter buffer does — a power-of-two-sized
// array addressed by a monotonically increasing index masked down to
// slot range — except here there is exactly one producer and one
// consumer, so plain atomic counters replace the per-sender bookkeeping
// a multi-talker jitter buffer needs.
package netstream

import (
	"sync/atomic"

	opus "gopkg.in/hraban/opus.v2"
	"github.com/pion/webrtc/v4"

	"soundstage"
)

const (
	ringSize = 1 << 14 // 16384 samples, ~340ms at 48kHz: generous slack for network jitter
	ringMask = ringSize - 1

	maxFrameSamplesPerChannel = 5760 // 120ms at 48kHz, Opus's largest frame
)

// Stream decodes one WebRTC remote audio track into soundstage Frames.
// Implements soundstage.AudioStream.
type Stream struct {
	ring     [ringSize]soundstage.Frame
	writeIdx atomic.Uint64
	readIdx  atomic.Uint64

	done chan struct{}
}

// New starts decoding track in the background at the given sample rate
// and channel count (1 or 2), returning a Stream ready to mix.
func New(track *webrtc.TrackRemote, sampleRate, channels int) (*Stream, error) {
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	s := &Stream{done: make(chan struct{})}
	go s.readLoop(track, dec, channels)
	return s, nil
}

func (s *Stream) readLoop(track *webrtc.TrackRemote, dec *opus.Decoder, channels int) {
	pcm := make([]int16, maxFrameSamplesPerChannel*channels)
	for {
		select {
		case <-s.done:
			return
		default:
		}
		packet, _, err := track.ReadRTP()
		if err != nil {
			return
		}
		n, err := dec.Decode(packet.Payload, pcm)
		if err != nil {
			continue // one bad packet does not end the stream
		}
		s.pushFrames(pcm[:n*channels], channels)
	}
}

// pushFrames writes decoded PCM into the ring, overwriting the oldest
// unread samples if the audio thread has fallen far enough behind to
// lap the writer — preferring fresh audio with a glitch over an
// ever-growing latency buildup.
func (s *Stream) pushFrames(pcm []int16, channels int) {
	w := s.writeIdx.Load()
	if channels == 1 {
		for _, v := range pcm {
			f := soundstage.Frame{Left: int16ToFloat32(v), Right: int16ToFloat32(v)}
			s.ring[w&ringMask] = f
			w++
		}
	} else {
		for i := 0; i+1 < len(pcm); i += 2 {
			f := soundstage.Frame{Left: int16ToFloat32(pcm[i]), Right: int16ToFloat32(pcm[i+1])}
			s.ring[w&ringMask] = f
			w++
		}
	}
	s.writeIdx.Store(w)
}

func int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// Next returns the next buffered frame, or Silence if the ring has
// nothing new (an underrun — the network has fallen behind real time).
func (s *Stream) Next(dt float64) soundstage.Frame {
	_ = dt
	r := s.readIdx.Load()
	w := s.writeIdx.Load()
	if r >= w {
		return soundstage.Silence
	}
	f := s.ring[r&ringMask]
	s.readIdx.Store(r + 1)
	return f
}

// Close stops the decode goroutine. A later call is a no-op; the underlying
// track's next blocking ReadRTP will observe the track's own closure.
func (s *Stream) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}
