// Package audio plays the sound-waves tone.
package audio

import (
	"errors"
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// gainSmoothing is the per-sample approach rate of the gain ramp.
	gainSmoothing = 0.002
)

var ErrBadFrequency = errors.New("audio: frequency must be positive")

// Tone is a continuously playing sine whose pitch and level follow the
// sound-waves parameters.
type Tone interface {
	SetFrequency(hz float64) error
	SetGain(g float64)
	Start() error
	Stop() error
	Playing() bool
}

// Oscillator synthesizes a sine with a continuous phase across frequency
// changes and a ramped gain so level changes do not click.
type Oscillator struct {
	mu         sync.Mutex
	sampleRate float64
	freq       float64
	target     float64
	gain       float64
	phase      float64
}

func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{sampleRate: sampleRate, freq: 440}
}

func (o *Oscillator) SetFrequency(hz float64) error {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return ErrBadFrequency
	}
	o.mu.Lock()
	o.freq = hz
	o.mu.Unlock()
	return nil
}

// SetGain sets the target level, clamped to [0, 1].
func (o *Oscillator) SetGain(g float64) {
	o.mu.Lock()
	o.target = math.Max(0, math.Min(1, g))
	o.mu.Unlock()
}

func (o *Oscillator) Frequency() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.freq
}

// Gain returns the current, not the target, level.
func (o *Oscillator) Gain() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gain
}

// Fill writes the next len(out) samples.
func (o *Oscillator) Fill(out []float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	step := o.freq / o.sampleRate
	for i := range out {
		o.gain += (o.target - o.gain) * gainSmoothing
		out[i] = float32(o.gain * math.Sin(2*math.Pi*o.phase))
		o.phase += step
		if o.phase >= 1 {
			o.phase -= math.Floor(o.phase)
		}
	}
}
