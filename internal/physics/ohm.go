package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// OhmsLaw shows I = U/R with electrons drifting at a speed set by the current.
type OhmsLaw struct {
	Voltage    float64
	Resistance float64

	phase float64
}

func NewOhmsLaw() *OhmsLaw {
	return &OhmsLaw{Voltage: 6, Resistance: 3}
}

func (o *OhmsLaw) Info() sim.Info {
	return sim.Info{Name: "ohms-law", Title: "Ohm's Law", Kind: sim.Static, AutoRun: true, Width: 800, Height: 350}
}

func (o *OhmsLaw) Specs() []param.Spec {
	return []param.Spec{
		{Key: "voltage", Label: "voltage", Unit: "V", Min: 1, Max: 12, Default: 6},
		{Key: "resistance", Label: "resistance", Unit: "Ω", Min: 0.5, Max: 10, Default: 3},
	}
}

func (o *OhmsLaw) fields() fields {
	return fields{"voltage": &o.Voltage, "resistance": &o.Resistance}
}

func (o *OhmsLaw) GetParams() map[string]float64 { return o.fields().get() }

func (o *OhmsLaw) SetParam(name string, v float64) error { return o.fields().set(name, v) }

func (o *OhmsLaw) Current() float64 { return o.Voltage / o.Resistance }

func (o *OhmsLaw) Power() float64 { return o.Voltage * o.Current() }

func (o *OhmsLaw) Reset() { o.phase = 0 }

func (o *OhmsLaw) Step(dt float64) {
	o.phase = math.Mod(o.phase+dt*o.Current()*20, 1e6)
}

func (o *OhmsLaw) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "current", Label: "Current", Value: o.Current(), Unit: "A"},
		{Key: "power", Label: "Power", Value: o.Power(), Unit: "W"},
		{Key: "voltage", Label: "Voltage", Value: o.Voltage, Unit: "V"},
		{Key: "resistance", Label: "Resistance", Value: o.Resistance, Unit: "Ω"},
	}
}

func (o *OhmsLaw) Draw(s render.Surface) {
	backdrop(s)
	const x0, y0, w, h = 150.0, 80.0, 500.0, 200.0
	s.Rect(x0, y0, w, h, render.Cyan)
	s.FillRect(x0+w/2-60, y0-15, 120, 30, render.Pink.WithAlpha(160))
	s.Text(x0+w/2-20, y0+5, fmt.Sprintf("%.1fΩ", o.Resistance), render.Text)
	s.FillRect(x0-15, y0+h/2-40, 30, 80, render.Amber.WithAlpha(160))
	s.Text(x0-60, y0+h/2+5, fmt.Sprintf("%.0fV", o.Voltage), render.Text)

	const electrons = 24
	for i := 0; i < electrons; i++ {
		p := math.Mod(o.phase/(2*(w+h))+float64(i)/electrons, 1)
		ex, ey := loopPoint(p, x0, y0, w, h)
		s.FillCircle(ex, ey, 4, render.Blue)
	}
	s.Text(20, 30, fmt.Sprintf("I = U / R = %.2f A", o.Current()), render.Text)
	s.Text(20, 50, fmt.Sprintf("P = U · I = %.2f W", o.Power()), render.Text)
}
