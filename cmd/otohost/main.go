// Command otohost drives a soundstage engine through ebitengine's audio
// package (backed by ebitengine/oto), as an alternative to the PortAudio
// host for platforms where that binding is awkward to link (mobile,
// WASM). It adapts Backend.Process into the io.Reader contract
// ebitengine's audio.Context expects.
package main

import (
	"encoding/binary"
	"flag"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"soundstage"
)

// backendReader adapts a *soundstage.Backend into an io.Reader of
// interleaved little-endian float32 stereo samples, the format
// ebitaudio.Context.NewPlayerF32 consumes. Mirrors the lock-protected,
// reusable-buffer reader the teacher's MML player uses around its own
// SampleSource.
type backendReader struct {
	mu      sync.Mutex
	backend *soundstage.Backend
	dt      float64
	buf     []float32
}

func newBackendReader(backend *soundstage.Backend, sampleRate int) *backendReader {
	return &backendReader{backend: backend, dt: 1.0 / float64(sampleRate)}
}

func (r *backendReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	for i := 0; i < frames; i++ {
		f := r.backend.Process(r.dt)
		r.buf[i*2] = f.Left
		r.buf[i*2+1] = f.Right
	}
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	return frames * 8, nil
}

func (r *backendReader) Close() error { return nil }

func main() {
	sampleRate := flag.Int("rate", 48000, "sample rate in Hz")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings := soundstage.DefaultAudioManagerSettings()
	settings.SampleRate = *sampleRate
	mgr := soundstage.NewManager(settings)

	ctx := ebitaudio.NewContext(*sampleRate)
	reader := newBackendReader(mgr.Backend(), *sampleRate)
	player, err := ctx.NewPlayerF32(reader)
	if err != nil {
		logger.Error("create player failed", "error", err)
		os.Exit(1)
	}
	player.Play()

	logger.Info("oto host running", "sample_rate", *sampleRate)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-sig:
			logger.Info("shutting down")
			player.Pause()
			player.Close()
			mgr.FreeUnusedResources()
			return
		case <-ticker.C:
			mgr.FreeUnusedResources()
		}
	}
}
