package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

func sine(freq, rate float64, n int) (times, values []float64) {
	for i := 0; i < n; i++ {
		t := float64(i) / rate
		times = append(times, t)
		values = append(values, math.Sin(2*math.Pi*freq*t+0.3))
	}
	return times, values
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		freq, rate float64
		n          int
	}{
		{1, 62.5, 1000},
		{0.35, 62.5, 1250},
		{440, 44100, 4096},
	}
	for _, tt := range tests {
		_, v := sine(tt.freq, tt.rate, tt.n)
		got, err := DominantFrequency(v, tt.rate)
		if err != nil {
			t.Fatal(err)
		}
		bin := tt.rate / float64(tt.n)
		if math.Abs(got-tt.freq) > bin {
			t.Errorf("expected %f Hz (±%f), got %f", tt.freq, bin, got)
		}
	}

	if _, err := DominantFrequency([]float64{1, 2}, 10); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestPowerSpectrumIgnoresOffset(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for k, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d = %f for a constant series", k, v)
		}
	}
}

func TestZeroCrossingPeriod(t *testing.T) {
	times, values := sine(0.5, 62.5, 1000)
	got, ok := ZeroCrossingPeriod(times, values)
	if !ok {
		t.Fatal("expected crossings")
	}
	if math.Abs(got-2) > 1e-3 {
		t.Errorf("expected period 2, got %f", got)
	}

	if _, ok := ZeroCrossingPeriod([]float64{0, 1, 2}, []float64{1, 1, 1}); ok {
		t.Error("expected no period for a constant series")
	}
}

func TestPhasePortrait(t *testing.T) {
	var states []dynamo.State
	for i := 0; i < 200; i++ {
		a := 2 * math.Pi * float64(i) / 200
		states = append(states, dynamo.State{math.Cos(a), math.Sin(a), 0})
	}
	p, err := NewPhasePortrait(states, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 200 {
		t.Errorf("expected 200 points, got %d", len(p.Points))
	}

	art := p.ASCII(40, 20)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 rows, got %d", len(lines))
	}
	if !strings.Contains(art, "•") || !strings.Contains(art, "│") {
		t.Error("expected points and a vertical axis")
	}

	if _, err := NewPhasePortrait(states, 0, 3); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension error, got %v", err)
	}
}
