package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// SpeedOfSound in air, m/s.
const SpeedOfSound = 343.0

// Sound is a travelling pressure wave. Its session also drives the tone
// output, so frequency and amplitude are the tone's pitch and gain.
type Sound struct {
	Frequency float64
	Amplitude float64

	t float64
}

func NewSound() *Sound {
	return &Sound{Frequency: 440, Amplitude: 0.3}
}

func (w *Sound) Info() sim.Info {
	return sim.Info{Name: "sound-waves", Title: "Sound Waves", Kind: sim.ClosedForm, Width: 500, Height: 420}
}

func (w *Sound) Specs() []param.Spec {
	return []param.Spec{
		{Key: "frequency", Label: "frequency", Unit: "Hz", Min: 20, Max: 2000, Default: 440},
		{Key: "amplitude", Label: "amplitude", Min: 0, Max: 1, Default: 0.3},
	}
}

func (w *Sound) fields() fields {
	return fields{"frequency": &w.Frequency, "amplitude": &w.Amplitude}
}

func (w *Sound) GetParams() map[string]float64 { return w.fields().get() }

func (w *Sound) SetParam(name string, v float64) error { return w.fields().set(name, v) }

func (w *Sound) Reset() { w.t = 0 }

func (w *Sound) Step(dt float64) { w.t += dt }

func (w *Sound) Wavelength() float64 { return SpeedOfSound / w.Frequency }

func (w *Sound) Period() float64 { return 1 / w.Frequency }

// Displacement is y(x,t) = A·sin(2πx/λ + 2πft) with x in metres.
func (w *Sound) Displacement(x, t float64) float64 {
	return w.Amplitude * math.Sin(2*math.Pi*x/w.Wavelength()+2*math.Pi*w.Frequency*t)
}

func (w *Sound) Observe() dynamo.State {
	return dynamo.State{w.Displacement(0, w.t)}
}

func (w *Sound) Labels() []string { return []string{"y"} }

func (w *Sound) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "frequency", Label: "Frequency", Value: w.Frequency, Unit: "Hz"},
		{Key: "wavelength", Label: "Wavelength", Value: w.Wavelength(), Unit: "m"},
		{Key: "period", Label: "Period", Value: w.Period() * 1000, Unit: "ms"},
		{Key: "amplitude", Label: "Amplitude", Value: w.Amplitude},
	}
}

func (w *Sound) Draw(s render.Surface) {
	backdrop(s)
	width, h := s.Size()
	cy := h / 3

	// the displayed wave is slowed down so it stays visible at audio rates
	vis := w.Wavelength() * 100
	phase := w.t * math.Min(w.Frequency, 4) * 2 * math.Pi
	var xs, ys []float64
	for x := 0.0; x <= width; x += 2 {
		xs = append(xs, x)
		ys = append(ys, cy+w.Amplitude*80*math.Sin(x/vis*2*math.Pi+phase))
	}
	render.Polyline(s, xs, ys, render.Cyan)

	// compression rings from a speaker
	sx, sy := 60.0, 2*h/3+20
	s.FillRect(sx-20, sy-25, 20, 50, render.Muted)
	for i := 0; i < 6; i++ {
		r := math.Mod(float64(i)*15+w.t*math.Min(w.Frequency, 8)*20, 90)
		a := uint8(255 * math.Max(0, 1-r/90) * (0.3 + 0.7*w.Amplitude))
		s.Circle(sx, sy, r+10, render.Amber.WithAlpha(a))
	}
	s.Text(20, 30, fmt.Sprintf("f = %.0f Hz", w.Frequency), render.Text)
	s.Text(20, 50, fmt.Sprintf("λ = %.3f m", w.Wavelength()), render.Text)
}
