package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// Pendulum is a damped simple pendulum. Length is in centimetres and drawn
// one pixel per centimetre; the dynamics use metres.
type Pendulum struct {
	stepper

	Angle   float64
	Length  float64
	Gravity float64
	Damping float64

	theta, omega float64
	t            float64
}

func NewPendulum() *Pendulum {
	p := &Pendulum{
		Angle:   45,
		Length:  200,
		Gravity: 9.81,
		Damping: 0.99,
	}
	p.Reset()
	return p
}

func (p *Pendulum) Info() sim.Info {
	return sim.Info{Name: "pendulum", Title: "Simple Pendulum", Kind: sim.Euler, Width: 500, Height: 500}
}

func (p *Pendulum) Specs() []param.Spec {
	return []param.Spec{
		{Key: "angle", Label: "angle", Unit: "°", Min: 0, Max: 89, Default: 45, LockedWhileRunning: true},
		{Key: "length", Label: "length", Unit: "cm", Min: 50, Max: 300, Default: 200, LockedWhileRunning: true},
		{Key: "gravity", Label: "gravity", Unit: "m/s²", Min: 1, Max: 20, Default: 9.81, LockedWhileRunning: true},
		{Key: "damping", Label: "damping", Min: 0.95, Max: 1, Default: 0.99},
	}
}

func (p *Pendulum) fields() fields {
	return fields{"angle": &p.Angle, "length": &p.Length, "gravity": &p.Gravity, "damping": &p.Damping}
}

func (p *Pendulum) GetParams() map[string]float64 { return p.fields().get() }

func (p *Pendulum) SetParam(name string, v float64) error { return p.fields().set(name, v) }

func (p *Pendulum) Reset() {
	p.theta = rad(p.Angle)
	p.omega = 0
	p.t = 0
}

func (p *Pendulum) StateDim() int { return 2 }

func (p *Pendulum) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[1], -(p.Gravity / p.meters()) * math.Sin(x[0])}
}

// Energy is the mechanical energy per kilogram.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	l := p.meters()
	v := l * x[1]
	return p.Gravity*l*(1-math.Cos(x[0])) + 0.5*v*v
}

// Step advances one frame; damping multiplies the angular velocity after
// the velocity update.
func (p *Pendulum) Step(dt float64) {
	x := p.step(p, dynamo.State{p.theta, p.omega}, p.t, dt)
	p.omega = x[1] * p.Damping
	p.theta = x[0] + (p.omega-x[1])*dt
	p.t += dt
}

func (p *Pendulum) meters() float64 { return p.Length / 100 }

// Period is the small-angle period 2π√(L/g).
func (p *Pendulum) Period() float64 {
	return 2 * math.Pi * math.Sqrt(p.meters()/p.Gravity)
}

func (p *Pendulum) Observe() dynamo.State { return dynamo.State{p.theta, p.omega} }

func (p *Pendulum) Labels() []string { return []string{"theta", "omega"} }

func (p *Pendulum) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "angle", Label: "Angle", Value: deg(p.theta), Unit: "°"},
		{Key: "omega", Label: "Angular velocity", Value: p.omega, Unit: "rad/s"},
		{Key: "period", Label: "Period", Value: p.Period(), Unit: "s"},
		{Key: "energy", Label: "Energy", Value: p.Energy(p.Observe()), Unit: "J/kg"},
		{Key: "time", Label: "Time", Value: p.t, Unit: "s"},
	}
}

func (p *Pendulum) Draw(s render.Surface) {
	drawPendulum(s, p.theta, p.Length)
	s.Text(20, 30, fmt.Sprintf("Angle: %.1f°", deg(p.theta)), render.Text)
	s.Text(20, 50, fmt.Sprintf("Velocity: %.2f rad/s", p.omega), render.Text)
	s.Text(20, 70, fmt.Sprintf("Length: %.0f cm", p.Length), render.Text)
}

func drawPendulum(s render.Surface, theta, length float64) {
	backdrop(s)
	w, h := s.Size()
	px, py := w/2, h/4
	bx, by := px+length*math.Sin(theta), py+length*math.Cos(theta)
	s.Line(px, py, bx, by, render.Cyan)
	s.FillCircle(px, py, 6, render.Cyan)
	s.FillCircle(bx, by, 12, render.Amber)
	s.Circle(bx, by, 14, render.Amber.WithAlpha(80))
}
