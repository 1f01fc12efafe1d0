package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const maxCarriers = 20

// Circuit is a battery driving a single resistor. Charge carriers travel
// the loop at a speed that grows with the current.
type Circuit struct {
	Voltage    float64
	Resistance float64

	carriers []float64
}

func NewCircuit() *Circuit {
	return &Circuit{Voltage: 12, Resistance: 4}
}

func (c *Circuit) Info() sim.Info {
	return sim.Info{Name: "electric-circuit", Title: "Electric Circuit", Kind: sim.Static, Width: 500, Height: 400}
}

func (c *Circuit) Specs() []param.Spec {
	return []param.Spec{
		{Key: "voltage", Label: "voltage", Unit: "V", Min: 1, Max: 24, Default: 12, LockedWhileRunning: true},
		{Key: "resistance", Label: "resistance", Unit: "Ω", Min: 0.5, Max: 20, Default: 4, LockedWhileRunning: true},
	}
}

func (c *Circuit) fields() fields {
	return fields{"voltage": &c.Voltage, "resistance": &c.Resistance}
}

func (c *Circuit) GetParams() map[string]float64 { return c.fields().get() }

func (c *Circuit) SetParam(name string, v float64) error { return c.fields().set(name, v) }

func (c *Circuit) Current() float64 { return c.Voltage / c.Resistance }

func (c *Circuit) Power() float64 { return c.Voltage * c.Current() }

func (c *Circuit) Reset() { c.carriers = c.carriers[:0] }

// Step spawns a carrier per frame up to the limit and retires carriers that
// complete the loop.
func (c *Circuit) Step(dt float64) {
	if len(c.carriers) < maxCarriers {
		c.carriers = append(c.carriers, 0)
	}
	adv := (100 + c.Current()*30) / 10000 * dt / dynamo.FrameDt
	kept := c.carriers[:0]
	for _, p := range c.carriers {
		p += adv
		if p <= 1 {
			kept = append(kept, p)
		}
	}
	c.carriers = kept
}

func (c *Circuit) Carriers() []float64 { return append([]float64(nil), c.carriers...) }

func (c *Circuit) Readings() []sim.Reading {
	i := c.Current()
	return []sim.Reading{
		{Key: "current", Label: "Current", Value: i, Unit: "A"},
		{Key: "power", Label: "Power", Value: c.Power(), Unit: "W"},
		{Key: "energy", Label: "Energy per ms", Value: c.Power() * 0.001, Unit: "J"},
		{Key: "voltage", Label: "Voltage", Value: c.Voltage, Unit: "V"},
		{Key: "resistance", Label: "Resistance", Value: c.Resistance, Unit: "Ω"},
	}
}

// loopPoint maps progress in [0,1] onto the rectangular wire loop.
func loopPoint(p, x0, y0, w, h float64) (float64, float64) {
	per := 2 * (w + h)
	d := math.Mod(p, 1) * per
	switch {
	case d < w:
		return x0 + d, y0
	case d < w+h:
		return x0 + w, y0 + d - w
	case d < 2*w+h:
		return x0 + w - (d - w - h), y0 + h
	default:
		return x0, y0 + h - (d - 2*w - h)
	}
}

func (c *Circuit) Draw(s render.Surface) {
	backdrop(s)
	const x0, y0, w, h = 80.0, 80.0, 340.0, 240.0
	s.Rect(x0, y0, w, h, render.Cyan)

	// battery on the left edge
	s.FillRect(x0-12, y0+h/2-30, 24, 60, render.Background)
	s.Line(x0-14, y0+h/2-10, x0+14, y0+h/2-10, render.Amber)
	s.Line(x0-7, y0+h/2+10, x0+7, y0+h/2+10, render.Amber)
	s.Text(x0-50, y0+h/2+4, fmt.Sprintf("%.0fV", c.Voltage), render.Text)

	// resistor zigzag on the right edge
	rx, ry := x0+w, y0+h/2-40
	s.FillRect(rx-10, ry, 20, 80, render.Background)
	for k := 0; k < 8; k++ {
		dx := 8.0
		if k%2 == 1 {
			dx = -8
		}
		s.Line(rx-dx, ry+float64(k)*10, rx+dx, ry+float64(k+1)*10, render.Pink)
	}
	s.Text(rx+16, ry+44, fmt.Sprintf("%.1fΩ", c.Resistance), render.Text)

	bulb := math.Min(1, c.Power()/100)
	s.FillCircle(x0+w/2, y0, 10+10*bulb, render.Amber.WithAlpha(uint8(60+195*bulb)))

	for _, p := range c.carriers {
		px, py := loopPoint(p, x0, y0, w, h)
		s.FillCircle(px, py, 3, render.Blue)
	}
	s.Text(20, 30, fmt.Sprintf("I = %.2f A   P = %.1f W", c.Current(), c.Power()), render.Text)
}
