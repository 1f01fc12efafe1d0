package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// ErrTooShort is returned when a series has too few samples to analyze.
var ErrTooShort = errors.New("analysis: series too short")

// PowerSpectrum returns |X(k)| for k in [0, n/2) after removing the mean
// and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	x := make([]float64, len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin,
// refined by parabolic interpolation between neighbouring bins.
func DominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	ps := PowerSpectrum(samples)
	if len(ps) < 3 {
		return 0, ErrTooShort
	}
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0, nil
	}

	offset := 0.0
	if best+1 < len(ps) {
		a, b, c := ps[best-1], ps[best], ps[best+1]
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + offset) * sampleRate / float64(len(samples)), nil
}

// ZeroCrossingPeriod estimates the period from successive positive-to-negative
// crossings, interpolating the crossing time linearly. ok is false with fewer
// than two crossings.
func ZeroCrossingPeriod(times, values []float64) (period float64, ok bool) {
	n := min(len(times), len(values))
	var crossings []float64
	for i := 1; i < n; i++ {
		a, b := values[i-1], values[i]
		if a > 0 && b <= 0 {
			frac := a / (a - b)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			crossings = append(crossings, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	if len(crossings) < 2 {
		return 0, false
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), true
}
