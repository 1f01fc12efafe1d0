package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Output plays an Oscillator on the default device through portaudio.
type Output struct {
	*Oscillator

	mu     sync.Mutex
	stream *portaudio.Stream
	log    *slog.Logger
}

func NewOutput(log *slog.Logger) *Output {
	if log == nil {
		log = slog.Default()
	}
	return &Output{Oscillator: NewOscillator(SampleRate), log: log}
}

func (a *Output) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	// output only; duplex streams often fail on Linux when devices differ
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	a.stream = stream
	a.log.Debug("audio started", "rate", SampleRate, "frequency", a.Frequency())
	return nil
}

func (a *Output) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stream == nil {
		return nil
	}

	err := a.stream.Stop()
	if cerr := a.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	a.stream = nil
	a.log.Debug("audio stopped")
	return err
}

func (a *Output) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stream != nil
}

func (a *Output) process(out [][]float32) {
	a.Fill(out[0])
	for ch := 1; ch < len(out); ch++ {
		copy(out[ch], out[0])
	}
}
