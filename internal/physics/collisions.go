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
	collisionWidth = 600.0
	collisionScale = 30.0 // px per velocity unit per second
	trailLength    = 100
)

const (
	Elastic = iota
	Inelastic
)

type Ball struct {
	X, V   float64
	Mass   float64
	Radius float64
}

func (b Ball) Momentum() float64 { return b.Mass * b.V }

func (b Ball) Kinetic() float64 { return 0.5 * b.Mass * b.V * b.V }

// Impact records the velocities either side of one resolved contact.
type Impact struct {
	Time          float64
	Before, After [2]float64
	MomentumIn    float64
	MomentumOut   float64
}

// Collisions is a one-dimensional two-ball track between reflecting walls.
type Collisions struct {
	Mass1, Velocity1 float64
	Mass2, Velocity2 float64
	Type             float64

	balls   [2]Ball
	trails  [2]*ring[float64]
	impacts []Impact
	t       float64
}

func NewCollisions() *Collisions {
	c := &Collisions{Mass1: 1, Velocity1: 5, Mass2: 1, Velocity2: -3, Type: Elastic}
	c.trails = [2]*ring[float64]{newRing[float64](trailLength), newRing[float64](trailLength)}
	c.Reset()
	return c
}

func (c *Collisions) Info() sim.Info {
	return sim.Info{Name: "collisions", Title: "Collisions", Kind: sim.Euler, Width: collisionWidth, Height: 300}
}

func (c *Collisions) Specs() []param.Spec {
	kind := param.Choice("type", "collision type", Elastic, "elastic", "inelastic")
	kind.LockedWhileRunning = true
	return []param.Spec{
		{Key: "mass1", Label: "mass 1", Unit: "kg", Min: 0.5, Max: 3, Default: 1, LockedWhileRunning: true},
		{Key: "velocity1", Label: "velocity 1", Unit: "m/s", Min: -10, Max: 10, Default: 5, LockedWhileRunning: true},
		{Key: "mass2", Label: "mass 2", Unit: "kg", Min: 0.5, Max: 3, Default: 1, LockedWhileRunning: true},
		{Key: "velocity2", Label: "velocity 2", Unit: "m/s", Min: -10, Max: 10, Default: -3, LockedWhileRunning: true},
		kind,
	}
}

func (c *Collisions) fields() fields {
	return fields{
		"mass1": &c.Mass1, "velocity1": &c.Velocity1,
		"mass2": &c.Mass2, "velocity2": &c.Velocity2,
		"type": &c.Type,
	}
}

func (c *Collisions) GetParams() map[string]float64 { return c.fields().get() }

func (c *Collisions) SetParam(name string, v float64) error { return c.fields().set(name, v) }

func (c *Collisions) Reset() {
	c.balls[0] = Ball{X: 120, V: c.Velocity1, Mass: c.Mass1, Radius: math.Sqrt(c.Mass1) * 8}
	c.balls[1] = Ball{X: 480, V: c.Velocity2, Mass: c.Mass2, Radius: math.Sqrt(c.Mass2) * 8}
	c.trails[0].reset()
	c.trails[1].reset()
	c.impacts = nil
	c.t = 0
}

func (c *Collisions) Balls() [2]Ball { return c.balls }

func (c *Collisions) Impacts() []Impact { return append([]Impact(nil), c.impacts...) }

// Step advances in sub-steps short enough that the balls close by less than
// half their contact distance per sub-step, so no contact is skipped.
func (c *Collisions) Step(dt float64) {
	b1, b2 := &c.balls[0], &c.balls[1]
	minDist := b1.Radius + b2.Radius
	closing := math.Abs(b1.V-b2.V) * dt * collisionScale
	n := max(1, int(math.Ceil(2*closing/minDist)))
	h := dt / float64(n)
	for range n {
		c.advance(h)
		c.t += h
	}
	c.trails[0].push(b1.X)
	c.trails[1].push(b2.X)
}

func (c *Collisions) advance(dt float64) {
	b1, b2 := &c.balls[0], &c.balls[1]
	b1.X += b1.V * dt * collisionScale
	b2.X += b2.V * dt * collisionScale

	dx := b2.X - b1.X
	dist := math.Abs(dx)
	minDist := b1.Radius + b2.Radius
	if dist < minDist && dx != 0 {
		c.resolve(b1, b2)
		overlap := (minDist - dist) / 2
		b1.X -= overlap
		b2.X += overlap
	}

	for _, b := range []*Ball{b1, b2} {
		if b.X-b.Radius < 0 {
			b.X = b.Radius
			b.V = math.Abs(b.V)
		}
		if b.X+b.Radius > collisionWidth {
			b.X = collisionWidth - b.Radius
			b.V = -math.Abs(b.V)
		}
	}
}

func (c *Collisions) resolve(b1, b2 *Ball) {
	imp := Impact{
		Time:       c.t,
		Before:     [2]float64{b1.V, b2.V},
		MomentumIn: b1.Momentum() + b2.Momentum(),
	}
	m1, m2 := b1.Mass, b2.Mass
	if c.Type == Inelastic {
		vf := (m1*b1.V + m2*b2.V) / (m1 + m2)
		b1.V, b2.V = vf, vf
	} else {
		v1 := ((m1-m2)*b1.V + 2*m2*b2.V) / (m1 + m2)
		v2 := ((m2-m1)*b2.V + 2*m1*b1.V) / (m1 + m2)
		b1.V, b2.V = v1, v2
	}
	imp.After = [2]float64{b1.V, b2.V}
	imp.MomentumOut = b1.Momentum() + b2.Momentum()
	c.impacts = append(c.impacts, imp)
}

func (c *Collisions) Observe() dynamo.State {
	return dynamo.State{c.balls[0].X, c.balls[1].X, c.balls[0].V, c.balls[1].V}
}

func (c *Collisions) Labels() []string { return []string{"x1", "x2", "v1", "v2"} }

// Momentum is the total momentum of a state vector from Observe.
func (c *Collisions) Momentum(x dynamo.State) float64 {
	return c.balls[0].Mass*x[2] + c.balls[1].Mass*x[3]
}

func (c *Collisions) Energy(x dynamo.State) float64 {
	return 0.5*c.balls[0].Mass*x[2]*x[2] + 0.5*c.balls[1].Mass*x[3]*x[3]
}

func (c *Collisions) Readings() []sim.Reading {
	b1, b2 := c.balls[0], c.balls[1]
	return []sim.Reading{
		{Key: "p1", Label: "Momentum 1", Value: b1.Momentum(), Unit: "kg·m/s"},
		{Key: "p2", Label: "Momentum 2", Value: b2.Momentum(), Unit: "kg·m/s"},
		{Key: "momentum", Label: "Total momentum", Value: b1.Momentum() + b2.Momentum(), Unit: "kg·m/s"},
		{Key: "kinetic", Label: "Total kinetic energy", Value: b1.Kinetic() + b2.Kinetic(), Unit: "J"},
		{Key: "collisions", Label: "Collisions", Value: float64(len(c.impacts))},
	}
}

func (c *Collisions) Draw(s render.Surface) {
	backdrop(s)
	_, h := s.Size()
	y := h / 2
	colors := [2]render.Color{render.Pink, render.Blue}

	s.Line(0, y+30, collisionWidth, y+30, render.Cyan.WithAlpha(80))
	for i, b := range c.balls {
		trail := c.trails[i].items()
		for j, x := range trail {
			a := uint8(20 + 100*j/len(trail))
			s.FillCircle(x, y, 2, colors[i].WithAlpha(a))
		}
		s.FillCircle(b.X, y, b.Radius, colors[i])
		if b.V != 0 {
			render.Arrow(s, b.X, y-b.Radius-10, b.X+b.V*5, y-b.Radius-10, 5, render.Green)
		}
		s.Text(b.X-10, y+b.Radius+20, fmt.Sprintf("%.1f", b.V), render.Text)
	}
	s.Text(20, 30, fmt.Sprintf("p = %.2f kg·m/s", c.balls[0].Momentum()+c.balls[1].Momentum()), render.Text)
	s.Text(20, 50, fmt.Sprintf("collisions: %d", len(c.impacts)), render.Text)
}
