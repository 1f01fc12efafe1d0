package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const projectileTrail = 200

type point struct{ x, y float64 }

// Projectile launches a body from the origin and integrates it until it
// returns to the ground. Units are metres and seconds.
type Projectile struct {
	stepper

	Velocity float64
	Angle    float64
	Gravity  float64

	x        dynamo.State
	t        float64
	trail    *ring[point]
	finished bool
}

func NewProjectile() *Projectile {
	p := &Projectile{Velocity: 30, Angle: 45, Gravity: 9.81, trail: newRing[point](projectileTrail)}
	p.Reset()
	return p
}

func (p *Projectile) Info() sim.Info {
	return sim.Info{Name: "projectile-motion", Title: "Projectile Motion", Kind: sim.Euler, Width: 600, Height: 500}
}

func (p *Projectile) Specs() []param.Spec {
	return []param.Spec{
		{Key: "velocity", Label: "initial velocity", Unit: "m/s", Min: 10, Max: 100, Default: 30, LockedWhileRunning: true},
		{Key: "angle", Label: "launch angle", Unit: "°", Min: 0, Max: 90, Default: 45, LockedWhileRunning: true},
		{Key: "gravity", Label: "gravity", Unit: "m/s²", Min: 1, Max: 20, Default: 9.81, LockedWhileRunning: true},
	}
}

func (p *Projectile) fields() fields {
	return fields{"velocity": &p.Velocity, "angle": &p.Angle, "gravity": &p.Gravity}
}

func (p *Projectile) GetParams() map[string]float64 { return p.fields().get() }

func (p *Projectile) SetParam(name string, v float64) error { return p.fields().set(name, v) }

func (p *Projectile) Reset() {
	a := rad(p.Angle)
	p.x = dynamo.State{0, 0, p.Velocity * math.Cos(a), p.Velocity * math.Sin(a)}
	p.t = 0
	p.trail.reset()
	p.finished = false
}

func (p *Projectile) StateDim() int { return 4 }

func (p *Projectile) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[2], x[3], 0, -p.Gravity}
}

func (p *Projectile) Energy(x dynamo.State) float64 {
	return p.Gravity*x[1] + 0.5*(x[2]*x[2]+x[3]*x[3])
}

func (p *Projectile) Step(dt float64) {
	if p.finished {
		return
	}
	p.x = p.step(p, p.x, p.t, dt)
	p.t += dt
	if p.x[1] <= 0 && p.t > 0 {
		p.x[1] = 0
		p.finished = true
	}
	p.trail.push(point{p.x[0], p.x[1]})
}

func (p *Projectile) Finished() bool { return p.finished }

func (p *Projectile) Observe() dynamo.State { return p.x.Clone() }

func (p *Projectile) Labels() []string { return []string{"x", "y", "vx", "vy"} }

func (p *Projectile) Range() float64 {
	return p.Velocity * p.Velocity * math.Sin(2*rad(p.Angle)) / p.Gravity
}

func (p *Projectile) MaxHeight() float64 {
	s := math.Sin(rad(p.Angle))
	return p.Velocity * p.Velocity * s * s / (2 * p.Gravity)
}

func (p *Projectile) FlightTime() float64 {
	return 2 * p.Velocity * math.Sin(rad(p.Angle)) / p.Gravity
}

func (p *Projectile) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "range", Label: "Range", Value: p.Range(), Unit: "m"},
		{Key: "max_height", Label: "Max height", Value: p.MaxHeight(), Unit: "m"},
		{Key: "flight_time", Label: "Flight time", Value: p.FlightTime(), Unit: "s"},
		{Key: "x", Label: "Distance", Value: p.x[0], Unit: "m"},
		{Key: "y", Label: "Height", Value: p.x[1], Unit: "m"},
		{Key: "speed", Label: "Speed", Value: math.Hypot(p.x[2], p.x[3]), Unit: "m/s"},
		{Key: "time", Label: "Time", Value: p.t, Unit: "s"},
	}
}

func (p *Projectile) Draw(s render.Surface) {
	backdrop(s)
	w, _ := s.Size()
	const ox, ground = 60.0, 450.0
	scale := math.Min((w-ox-40)/math.Max(p.Range(), 1), (ground-60)/math.Max(p.MaxHeight(), 1))

	s.Line(0, ground, w, ground, render.Cyan.WithAlpha(80))
	pts := p.trail.items()
	xs := make([]float64, 0, len(pts)+1)
	ys := make([]float64, 0, len(pts)+1)
	xs, ys = append(xs, ox), append(ys, ground)
	for _, pt := range pts {
		xs = append(xs, ox+pt.x*scale)
		ys = append(ys, ground-pt.y*scale)
	}
	render.Polyline(s, xs, ys, render.Cyan.WithAlpha(110))

	bx, by := ox+p.x[0]*scale, ground-p.x[1]*scale
	s.FillCircle(bx, by, 8, render.Amber)
	if !p.finished {
		render.Arrow(s, bx, by, bx+p.x[2]*0.8, by-p.x[3]*0.8, 6, render.Green)
	}
	a := rad(p.Angle)
	s.Line(ox, ground, ox+40*math.Cos(a), ground-40*math.Sin(a), render.Muted)
	s.Text(20, 30, fmt.Sprintf("x = %.1f m  y = %.1f m", p.x[0], p.x[1]), render.Text)
	s.Text(20, 50, fmt.Sprintf("t = %.2f s", p.t), render.Text)
}
