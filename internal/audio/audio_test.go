package audio

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

var (
	_ Tone         = (*Output)(nil)
	_ Tone         = (*Null)(nil)
	_ sim.Listener = (*Binding)(nil)
)

func toFloat(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func TestOscillatorFrequency(t *testing.T) {
	for _, hz := range []float64{110, 440, 1500} {
		o := NewOscillator(SampleRate)
		if err := o.SetFrequency(hz); err != nil {
			t.Fatal(err)
		}
		o.SetGain(1)
		buf := make([]float32, 8192)
		o.Fill(buf)

		got, err := analysis.DominantFrequency(toFloat(buf[4096:]), SampleRate)
		if err != nil {
			t.Fatal(err)
		}
		if bin := float64(SampleRate) / 4096; math.Abs(got-hz) > bin {
			t.Errorf("expected %f Hz, got %f", hz, got)
		}
	}
}

func TestOscillatorPhaseContinuity(t *testing.T) {
	a, b := NewOscillator(SampleRate), NewOscillator(SampleRate)
	a.SetGain(0.5)
	b.SetGain(0.5)

	whole := make([]float32, 3*BufferSize)
	a.Fill(whole)

	var parts []float32
	for i := 0; i < 3; i++ {
		buf := make([]float32, BufferSize)
		b.Fill(buf)
		parts = append(parts, buf...)
	}
	for i := range whole {
		if whole[i] != parts[i] {
			t.Fatalf("sample %d differs across buffer boundary: %f vs %f", i, whole[i], parts[i])
		}
	}
}

func TestOscillatorGainRamp(t *testing.T) {
	o := NewOscillator(SampleRate)
	o.SetGain(1)
	buf := make([]float32, 16)
	o.Fill(buf)
	if g := o.Gain(); g <= 0 || g > 0.1 {
		t.Errorf("gain should ramp, got %f after 16 samples", g)
	}
	o.Fill(make([]float32, SampleRate))
	if g := o.Gain(); math.Abs(g-1) > 1e-3 {
		t.Errorf("gain should settle at 1, got %f", g)
	}

	o.SetGain(5)
	o.Fill(make([]float32, SampleRate))
	if g := o.Gain(); g > 1 {
		t.Errorf("gain should clamp to 1, got %f", g)
	}
}

func TestSetFrequencyRejectsNonPositive(t *testing.T) {
	o := NewOscillator(SampleRate)
	for _, hz := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if err := o.SetFrequency(hz); err == nil {
			t.Errorf("expected error for %v", hz)
		}
	}
	if o.Frequency() != 440 {
		t.Errorf("frequency changed to %f", o.Frequency())
	}
}

func TestSoundSessionDrivesTone(t *testing.T) {
	tone := NewNull()
	s, err := sim.NewSession(physics.NewSound(), sim.WithListener(NewBinding(tone, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if tone.Frequency() != 440 {
		t.Errorf("expected default 440 Hz pushed, got %f", tone.Frequency())
	}
	if tone.Playing() {
		t.Error("tone should wait for start")
	}

	if _, err := s.Commit("frequency", "880"); err != nil {
		t.Fatal(err)
	}
	if tone.Frequency() != 880 {
		t.Errorf("expected 880 Hz, got %f", tone.Frequency())
	}
	if _, err := s.Commit("frequency", "5000"); err == nil {
		t.Error("expected out-of-range frequency to be rejected")
	}
	if tone.Frequency() != 880 {
		t.Errorf("rejected commit reached the tone: %f", tone.Frequency())
	}

	s.Start()
	if !tone.Playing() {
		t.Error("start should play the tone")
	}
	if len(tone.Render(64)) != 64 {
		t.Error("expected 64 samples")
	}
	s.Toggle()
	if tone.Playing() {
		t.Error("pause should stop the tone")
	}
	s.Toggle()
	if tone.Starts() != 2 {
		t.Errorf("expected 2 starts, got %d", tone.Starts())
	}
}
