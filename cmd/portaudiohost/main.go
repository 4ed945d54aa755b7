// Command portaudiohost drives a soundstage engine through a PortAudio
// output stream: a minimal demonstration host, not a full game-audio
// frontend. It opens the default output device, starts a Manager, and
// streams Backend.Process frames to the device until interrupted. It adds
// and plays no sound of its own, so the stream carries silence.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gordonklaus/portaudio"

	"soundstage"
)

const framesPerBuffer = 256

func main() {
	sampleRate := flag.Int("rate", 48000, "sample rate in Hz")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := portaudio.Initialize(); err != nil {
		logger.Error("portaudio init failed", "error", err)
		os.Exit(1)
	}
	defer portaudio.Terminate()

	settings := soundstage.DefaultAudioManagerSettings()
	settings.SampleRate = *sampleRate
	mgr := soundstage.NewManager(settings)
	backend := mgr.Backend()

	dt := 1.0 / float64(*sampleRate)

	callback := func(out []float32) {
		n := len(out) / 2
		for i := 0; i < n; i++ {
			frame := backend.Process(dt)
			out[i*2] = frame.Left
			out[i*2+1] = frame.Right
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(*sampleRate), framesPerBuffer, func(_, out []float32) {
		callback(out)
	})
	if err != nil {
		logger.Error("open stream failed", "error", err)
		os.Exit(1)
	}

	if err := stream.Start(); err != nil {
		logger.Error("start stream failed", "error", err)
		os.Exit(1)
	}

	logger.Info("portaudio host running", "sample_rate", *sampleRate, "frames_per_buffer", framesPerBuffer)

	var wg sync.WaitGroup
	wg.Add(1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer wg.Done()
		<-sig
		logger.Info("shutting down")
	}()
	wg.Wait()

	// Pa_StopStream unblocks the native callback; only once it has
	// returned is it safe to Pa_CloseStream, mirroring the sequencing the
	// capture/playback goroutines relied on.
	if err := stream.Stop(); err != nil {
		logger.Warn("stop stream", "error", err)
	}
	if err := stream.Close(); err != nil {
		logger.Warn("close stream", "error", err)
	}
	mgr.FreeUnusedResources()
}
