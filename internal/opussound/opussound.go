// Package opussound implements soundstage.SoundData over Opus-encoded
// audio: a sequence of raw Opus packets (e.g. read from a game asset
// container) decoded once into an in-memory PCM buffer, the same
// decode-up-front approach a short one-shot sound effect wants — the
// audio thread that later calls FrameAt only ever touches a plain slice
// index, never the cgo decoder.
package opussound

import (
	"fmt"

	opus "gopkg.in/hraban/opus.v2"

	"soundstage"
)

// maxFrameSamplesPerChannel bounds the largest single Opus frame this
// package will decode: 120ms at 48kHz, Opus's own maximum frame size.
const maxFrameSamplesPerChannel = 5760

// Sound is a fully-decoded Opus clip, implementing soundstage.SoundData.
type Sound struct {
	sampleRate int
	frames     []soundstage.Frame
}

// Decode decodes every packet in order at the given sample rate and
// channel count (1 or 2), concatenating them into a single PCM buffer.
func Decode(sampleRate, channels int, packets [][]byte) (*Sound, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("opussound: unsupported channel count %d", channels)
	}

	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("opussound: new decoder: %w", err)
	}

	pcm := make([]int16, maxFrameSamplesPerChannel*channels)
	frames := make([]soundstage.Frame, 0, len(packets)*960)

	for i, packet := range packets {
		n, err := dec.Decode(packet, pcm)
		if err != nil {
			return nil, fmt.Errorf("opussound: decode packet %d: %w", i, err)
		}
		frames = append(frames, pcmToFrames(pcm[:n*channels], channels)...)
	}

	return &Sound{sampleRate: sampleRate, frames: frames}, nil
}

func pcmToFrames(pcm []int16, channels int) []soundstage.Frame {
	if channels == 1 {
		out := make([]soundstage.Frame, len(pcm))
		for i, v := range pcm {
			s := int16ToFloat32(v)
			out[i] = soundstage.Frame{Left: s, Right: s}
		}
		return out
	}
	out := make([]soundstage.Frame, len(pcm)/2)
	for i := range out {
		out[i] = soundstage.Frame{
			Left:  int16ToFloat32(pcm[i*2]),
			Right: int16ToFloat32(pcm[i*2+1]),
		}
	}
	return out
}

func int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// Duration returns the decoded clip's length in seconds.
func (s *Sound) Duration() float64 {
	return float64(len(s.frames)) / float64(s.sampleRate)
}

// FrameAt returns the sample at or just before positionSeconds (the
// index is truncated, not rounded), or Silence if the position falls
// outside the decoded buffer.
func (s *Sound) FrameAt(positionSeconds float64) soundstage.Frame {
	if positionSeconds < 0 {
		return soundstage.Silence
	}
	idx := int(positionSeconds * float64(s.sampleRate))
	if idx < 0 || idx >= len(s.frames) {
		return soundstage.Silence
	}
	return s.frames[idx]
}
