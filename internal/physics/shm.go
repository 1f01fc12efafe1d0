package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// HarmonicMotion evaluates x(t) = A·sin(ωt + φ) directly, so restarting
// only moves the time origin.
type HarmonicMotion struct {
	Amplitude float64
	Frequency float64
	Phase     float64

	t float64
}

func NewHarmonicMotion() *HarmonicMotion {
	return &HarmonicMotion{Amplitude: 50, Frequency: 1}
}

func (m *HarmonicMotion) Info() sim.Info {
	return sim.Info{Name: "simple-harmonic-motion", Title: "Simple Harmonic Motion", Kind: sim.ClosedForm, Width: 600, Height: 400}
}

func (m *HarmonicMotion) Specs() []param.Spec {
	return []param.Spec{
		{Key: "amplitude", Label: "amplitude", Unit: "px", Min: 10, Max: 100, Default: 50, LockedWhileRunning: true},
		{Key: "frequency", Label: "frequency", Unit: "Hz", Min: 0.5, Max: 3, Default: 1, LockedWhileRunning: true},
		{Key: "phase", Label: "phase", Unit: "rad", Min: 0, Max: 2 * math.Pi, Default: 0, LockedWhileRunning: true},
	}
}

func (m *HarmonicMotion) fields() fields {
	return fields{"amplitude": &m.Amplitude, "frequency": &m.Frequency, "phase": &m.Phase}
}

func (m *HarmonicMotion) GetParams() map[string]float64 { return m.fields().get() }

func (m *HarmonicMotion) SetParam(name string, v float64) error { return m.fields().set(name, v) }

func (m *HarmonicMotion) Reset() { m.t = 0 }

func (m *HarmonicMotion) Step(dt float64) { m.t += dt }

func (m *HarmonicMotion) omega() float64 { return 2 * math.Pi * m.Frequency }

// At returns position, velocity and acceleration at time t.
func (m *HarmonicMotion) At(t float64) (x, v, a float64) {
	w := m.omega()
	arg := w*t + m.Phase
	return m.Amplitude * math.Sin(arg), m.Amplitude * w * math.Cos(arg), -m.Amplitude * w * w * math.Sin(arg)
}

func (m *HarmonicMotion) Observe() dynamo.State {
	x, v, a := m.At(m.t)
	return dynamo.State{x, v, a}
}

func (m *HarmonicMotion) Labels() []string { return []string{"x", "v", "a"} }

func (m *HarmonicMotion) Readings() []sim.Reading {
	x, v, a := m.At(m.t)
	w := m.omega()
	return []sim.Reading{
		{Key: "position", Label: "Position", Value: x, Unit: "px"},
		{Key: "velocity", Label: "Velocity", Value: v, Unit: "px/s"},
		{Key: "acceleration", Label: "Acceleration", Value: a, Unit: "px/s²"},
		{Key: "period", Label: "Period", Value: 1 / m.Frequency, Unit: "s"},
		{Key: "omega", Label: "Angular frequency", Value: w, Unit: "rad/s"},
		{Key: "vmax", Label: "Max velocity", Value: m.Amplitude * w, Unit: "px/s"},
		{Key: "amax", Label: "Max acceleration", Value: m.Amplitude * w * w, Unit: "px/s²"},
	}
}

func (m *HarmonicMotion) Draw(s render.Surface) {
	backdrop(s)
	w, h := s.Size()
	const eq = 120.0
	cy := h / 2

	s.Line(eq, 0, eq, h, render.Cyan.WithAlpha(50))
	s.Line(eq-m.Amplitude, 0, eq-m.Amplitude, h, render.Blue.WithAlpha(25))
	s.Line(eq+m.Amplitude, 0, eq+m.Amplitude, h, render.Blue.WithAlpha(25))

	// position against time, with the current instant at the equilibrium line
	const scale = 30.0
	var xs, ys []float64
	for px := 0.0; px < w; px += 2 {
		x, _, _ := m.At(m.t + (px-eq)/scale)
		xs = append(xs, px)
		ys = append(ys, cy-x)
	}
	render.Polyline(s, xs, ys, render.Blue)

	x, v, _ := m.At(m.t)
	s.FillCircle(eq+x, cy, 10, render.Amber)
	render.Arrow(s, eq+x, cy, eq+x+v/5, cy, 6, render.Green)
	s.Text(20, 30, fmt.Sprintf("x = %.1f px", x), render.Text)
	s.Text(20, 50, fmt.Sprintf("t = %.2f s", m.t), render.Text)
}
