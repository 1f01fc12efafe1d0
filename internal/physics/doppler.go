package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// Doppler computes the frequency heard by a moving observer from a moving
// source. Positive velocities point from source towards observer for the
// source and towards the source for the observer.
type Doppler struct {
	Frequency float64
	Source    float64
	Observer  float64
	Speed     float64

	t float64
}

func NewDoppler() *Doppler {
	return &Doppler{Frequency: 440, Speed: SpeedOfSound}
}

func (d *Doppler) Info() sim.Info {
	return sim.Info{Name: "doppler-effect", Title: "Doppler Effect", Kind: sim.Static, AutoRun: true, Width: 600, Height: 400}
}

func (d *Doppler) Specs() []param.Spec {
	return []param.Spec{
		{Key: "frequency", Label: "source frequency", Unit: "Hz", Min: 200, Max: 800, Default: 440},
		{Key: "source", Label: "source velocity", Unit: "m/s", Min: -100, Max: 100, Default: 0},
		{Key: "observer", Label: "observer velocity", Unit: "m/s", Min: -100, Max: 100, Default: 0},
		{Key: "speed", Label: "speed of sound", Unit: "m/s", Min: 300, Max: 400, Default: SpeedOfSound},
	}
}

func (d *Doppler) fields() fields {
	return fields{"frequency": &d.Frequency, "source": &d.Source, "observer": &d.Observer, "speed": &d.Speed}
}

func (d *Doppler) GetParams() map[string]float64 { return d.fields().get() }

func (d *Doppler) SetParam(name string, v float64) error { return d.fields().set(name, v) }

func (d *Doppler) Reset() { d.t = 0 }

func (d *Doppler) Step(dt float64) { d.t += dt }

// Observed returns f' = f(c+vo)/(c−vs). A source at or above the speed of
// sound produces a shock front instead of a frequency, reported as ok=false.
func (d *Doppler) Observed() (f float64, ok bool) {
	den := d.Speed - d.Source
	if den <= 0 {
		return math.Inf(1), false
	}
	return d.Frequency * (d.Speed + d.Observer) / den, true
}

func (d *Doppler) Readings() []sim.Reading {
	f, ok := d.Observed()
	if !ok {
		return []sim.Reading{
			{Key: "observed", Label: "Observed frequency", Value: f, Text: "shock wave"},
			{Key: "mach", Label: "Mach", Value: d.Source / d.Speed},
		}
	}
	shift := f - d.Frequency
	return []sim.Reading{
		{Key: "observed", Label: "Observed frequency", Value: f, Unit: "Hz"},
		{Key: "shift", Label: "Shift", Value: shift, Unit: "Hz"},
		{Key: "percent", Label: "Change", Value: shift / d.Frequency * 100, Unit: "%"},
		{Key: "wavelength", Label: "Observed wavelength", Value: d.Speed / f, Unit: "m"},
		{Key: "mach", Label: "Mach", Value: d.Source / d.Speed},
	}
}

func (d *Doppler) Draw(s render.Surface) {
	backdrop(s)
	_, h := s.Size()
	cy := h / 2
	sx := 100 + d.Source*0.5
	ox := 500 + d.Observer*0.5

	// emitted wavefronts: each front is centred where the source was when
	// it was emitted, so fronts bunch up ahead of a moving source
	const fronts = 8
	period := 0.25
	vs := d.Source / d.Speed * 120
	for i := 0; i < fronts; i++ {
		age := math.Mod(d.t, period) + float64(i)*period
		r := age * 120
		cx := sx - vs*age
		a := uint8(200 * math.Max(0, 1-age/(fronts*period)))
		s.Circle(cx, cy, r, render.Cyan.WithAlpha(a))
	}

	srcColor := render.Blue
	if d.Source > 0 {
		srcColor = render.Red
	}
	s.FillCircle(sx, cy, 12, srcColor)
	s.FillCircle(ox, cy, 12, render.Pink)
	s.Text(sx-20, cy+35, "Source", render.Text)
	s.Text(ox-28, cy+35, "Observer", render.Text)
	if d.Source != 0 {
		render.Arrow(s, sx, cy-25, sx+d.Source*0.6, cy-25, 8, srcColor)
	}
	if d.Observer != 0 {
		render.Arrow(s, ox, cy-25, ox-d.Observer*0.6, cy-25, 8, render.Pink)
	}

	if f, ok := d.Observed(); ok {
		s.Text(20, 30, fmt.Sprintf("f' = %.1f Hz", f), render.Text)
	} else {
		s.Text(20, 30, "Shock wave: source at or above the speed of sound", render.Red)
	}
}
