package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	sampleInterval  = 0.05
	maxMeasurements = 1000
	minCrossingGap  = 0.5
)

// Measurement is one sampled pendulum state.
type Measurement struct {
	Time     float64
	Angle    float64
	Velocity float64
}

// PendulumLab is a pendulum with a bob mass, an energy readout and a period
// measured from sampled zero crossings.
type PendulumLab struct {
	Pendulum
	Mass float64

	samples       *ring[Measurement]
	nextSample    float64
	oscillations  int
	firstCrossing float64
	lastCrossing  float64
}

func NewPendulumLab() *PendulumLab {
	p := &PendulumLab{
		Pendulum: Pendulum{Angle: 45, Length: 200, Gravity: 9.81, Damping: 0.99},
		Mass:     1,
		samples:  newRing[Measurement](maxMeasurements),
	}
	p.Reset()
	return p
}

func (p *PendulumLab) Info() sim.Info {
	return sim.Info{Name: "pendulum-lab", Title: "Pendulum Lab", Kind: sim.Euler, Width: 500, Height: 500}
}

func (p *PendulumLab) Specs() []param.Spec {
	specs := p.Pendulum.Specs()
	return append(specs[:3:3],
		param.Spec{Key: "mass", Label: "mass", Unit: "kg", Min: 0.1, Max: 5, Default: 1, LockedWhileRunning: true},
		specs[3],
	)
}

func (p *PendulumLab) fields() fields {
	f := p.Pendulum.fields()
	f["mass"] = &p.Mass
	return f
}

func (p *PendulumLab) GetParams() map[string]float64 { return p.fields().get() }

func (p *PendulumLab) SetParam(name string, v float64) error { return p.fields().set(name, v) }

func (p *PendulumLab) Reset() {
	p.Pendulum.Reset()
	p.samples.reset()
	p.nextSample = sampleInterval
	p.oscillations = 0
	p.firstCrossing = 0
	p.lastCrossing = 0
}

// Energy is the total mechanical energy of the bob.
func (p *PendulumLab) Energy(x dynamo.State) float64 {
	return p.Mass * p.Pendulum.Energy(x)
}

func (p *PendulumLab) Step(dt float64) {
	p.Pendulum.Step(dt)
	if p.t+1e-9 < p.nextSample {
		return
	}
	p.nextSample += sampleInterval

	m := Measurement{Time: p.t, Angle: p.theta, Velocity: p.omega}
	if prev, ok := p.samples.last(); ok {
		if prev.Angle > 0 && m.Angle <= 0 {
			at := prev.Time + (m.Time-prev.Time)*prev.Angle/(prev.Angle-m.Angle)
			if p.oscillations == 0 || at-p.lastCrossing > minCrossingGap {
				if p.oscillations == 0 {
					p.firstCrossing = at
				}
				p.lastCrossing = at
				p.oscillations++
			}
		}
	}
	p.samples.push(m)
}

func (p *PendulumLab) Measurements() []Measurement { return p.samples.items() }

func (p *PendulumLab) Oscillations() int { return p.oscillations }

// MeasuredPeriod is the mean time between downward zero crossings, or 0
// until two crossings have been seen.
func (p *PendulumLab) MeasuredPeriod() float64 {
	if p.oscillations < 2 {
		return 0
	}
	return (p.lastCrossing - p.firstCrossing) / float64(p.oscillations-1)
}

func (p *PendulumLab) Readings() []sim.Reading {
	x := p.Observe()
	l := p.meters()
	ke := 0.5 * p.Mass * (l * p.omega) * (l * p.omega)
	rs := []sim.Reading{
		{Key: "angle", Label: "Angle", Value: deg(p.theta), Unit: "°"},
		{Key: "omega", Label: "Angular velocity", Value: p.omega, Unit: "rad/s"},
		{Key: "period", Label: "Theoretical period", Value: p.Period(), Unit: "s"},
		{Key: "measured", Label: "Measured period", Value: p.MeasuredPeriod(), Unit: "s"},
		{Key: "oscillations", Label: "Oscillations", Value: float64(p.oscillations)},
		{Key: "kinetic", Label: "Kinetic energy", Value: ke, Unit: "J"},
		{Key: "potential", Label: "Potential energy", Value: p.Energy(x) - ke, Unit: "J"},
		{Key: "energy", Label: "Total energy", Value: p.Energy(x), Unit: "J"},
	}
	if p.oscillations < 2 {
		rs[3].Text = "-"
	}
	return rs
}

func (p *PendulumLab) Draw(s render.Surface) {
	drawPendulum(s, p.theta, p.Length)
	w, h := s.Size()

	// angle trace along the bottom strip
	ms := p.samples.items()
	if n := len(ms); n > 1 {
		span := math.Min(float64(n), 200)
		xs := make([]float64, 0, int(span))
		ys := make([]float64, 0, int(span))
		for i, m := range ms[n-int(span):] {
			xs = append(xs, 20+float64(i)*(w-40)/span)
			ys = append(ys, h-40-m.Angle*40)
		}
		render.Polyline(s, xs, ys, render.Green)
	}
	s.Text(20, 30, fmt.Sprintf("Angle: %.1f°", deg(p.theta)), render.Text)
	s.Text(20, 50, fmt.Sprintf("Energy: %.3f J", p.Energy(p.Observe())), render.Text)
	s.Text(20, 70, fmt.Sprintf("Oscillations: %d", p.oscillations), render.Text)
}
