package physics

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// EnergyConservation drops a mass from rest and trades potential for
// kinetic energy until it lands.
type EnergyConservation struct {
	stepper

	Mass    float64
	Height  float64
	Gravity float64

	y, v    float64
	t       float64
	landed  bool
	impactV float64
}

func NewEnergyConservation() *EnergyConservation {
	e := &EnergyConservation{Mass: 1, Height: 3, Gravity: 9.81}
	e.Reset()
	return e
}

func (e *EnergyConservation) Info() sim.Info {
	return sim.Info{Name: "energy-conservation", Title: "Energy Conservation", Kind: sim.Euler, Width: 600, Height: 400}
}

func (e *EnergyConservation) Specs() []param.Spec {
	return []param.Spec{
		{Key: "mass", Label: "mass", Unit: "kg", Min: 0.5, Max: 3, Default: 1},
		{Key: "height", Label: "height", Unit: "m", Min: 0.5, Max: 3.5, Default: 3},
		{Key: "gravity", Label: "gravity", Unit: "m/s²", Min: 1, Max: 20, Default: 9.81},
	}
}

func (e *EnergyConservation) fields() fields {
	return fields{"mass": &e.Mass, "height": &e.Height, "gravity": &e.Gravity}
}

func (e *EnergyConservation) GetParams() map[string]float64 { return e.fields().get() }

func (e *EnergyConservation) SetParam(name string, v float64) error { return e.fields().set(name, v) }

func (e *EnergyConservation) Reset() {
	e.y, e.v, e.t = e.Height, 0, 0
	e.landed, e.impactV = false, 0
}

func (e *EnergyConservation) StateDim() int { return 2 }

func (e *EnergyConservation) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[1], -e.Gravity}
}

func (e *EnergyConservation) Energy(x dynamo.State) float64 {
	return e.Mass*e.Gravity*x[0] + 0.5*e.Mass*x[1]*x[1]
}

func (e *EnergyConservation) Step(dt float64) {
	if e.landed {
		return
	}
	x := e.step(e, dynamo.State{e.y, e.v}, e.t, dt)
	e.y, e.v = x[0], x[1]
	e.t += dt
	if e.y <= 0 {
		e.impactV = -e.v
		e.y, e.v = 0, 0
		e.landed = true
	}
}

func (e *EnergyConservation) Finished() bool { return e.landed }

func (e *EnergyConservation) Observe() dynamo.State { return dynamo.State{e.y, e.v} }

func (e *EnergyConservation) Labels() []string { return []string{"y", "v"} }

func (e *EnergyConservation) Readings() []sim.Reading {
	pe := e.Mass * e.Gravity * e.y
	ke := 0.5 * e.Mass * e.v * e.v
	rs := []sim.Reading{
		{Key: "height", Label: "Height", Value: e.y, Unit: "m"},
		{Key: "velocity", Label: "Velocity", Value: -e.v, Unit: "m/s"},
		{Key: "potential", Label: "Potential energy", Value: pe, Unit: "J"},
		{Key: "kinetic", Label: "Kinetic energy", Value: ke, Unit: "J"},
		{Key: "total", Label: "Total energy", Value: pe + ke, Unit: "J"},
		{Key: "initial", Label: "Initial energy", Value: e.Mass * e.Gravity * e.Height, Unit: "J"},
	}
	if e.landed {
		rs = append(rs, sim.Reading{Key: "impact", Label: "Impact speed", Value: e.impactV, Unit: "m/s"})
	}
	return rs
}

func (e *EnergyConservation) Draw(s render.Surface) {
	backdrop(s)
	w, h := s.Size()
	ground := h - 50
	scale := (ground - 40) / 3.5

	s.Line(0, ground, w, ground, render.Cyan.WithAlpha(80))
	s.Line(150, ground, 150, ground-e.Height*scale, render.Muted)
	r := 8 + 4*e.Mass
	s.FillCircle(150, ground-e.y*scale-r, r, render.Amber)

	// energy bars
	total := e.Mass * e.Gravity * e.Height
	if total > 0 {
		pe := e.Mass * e.Gravity * e.y
		ke := 0.5 * e.Mass * e.v * e.v
		barH := ground - 80
		for i, b := range []struct {
			v float64
			c render.Color
			l string
		}{{pe, render.Blue, "PE"}, {ke, render.Red, "KE"}, {pe + ke, render.Green, "E"}} {
			x := 360 + float64(i)*70
			fh := barH * b.v / total
			s.Rect(x, ground-barH, 40, barH, render.Muted)
			s.FillRect(x, ground-fh, 40, fh, b.c)
			s.Text(x+10, ground+20, b.l, render.Text)
		}
	}
	s.Text(20, 30, fmt.Sprintf("h = %.2f m", e.y), render.Text)
	s.Text(20, 50, fmt.Sprintf("v = %.2f m/s", -e.v), render.Text)
}
