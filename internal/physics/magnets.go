package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	North = iota
	South
)

const (
	magnetForceK = 50000.0
	magnetFieldK = 1000.0
)

type Magnet struct {
	X, Y     float64
	Strength float64
	North    bool
}

// Field is the contribution of m at (x, y). Points within 10 px of the
// centre carry no field.
func (m Magnet) Field(x, y float64) (bx, by float64) {
	dx, dy := x-m.X, y-m.Y
	d2 := dx*dx + dy*dy
	if d2 < 100 {
		return 0, 0
	}
	d := math.Sqrt(d2)
	pole := 1.0
	if !m.North {
		pole = -1
	}
	mag := m.Strength * pole * magnetFieldK / (d2 * d2)
	return mag * dx / d, mag * dy / d
}

// Magnets places a north-facing magnet and a second magnet of selectable
// polarity 300 px apart.
type Magnets struct {
	Strength1 float64
	Strength2 float64
	Polarity2 float64
	Density   float64

	t float64
}

func NewMagnets() *Magnets {
	return &Magnets{Strength1: 1, Strength2: 1, Polarity2: South, Density: 10}
}

func (m *Magnets) Info() sim.Info {
	return sim.Info{Name: "magnets", Title: "Magnets", Kind: sim.Static, AutoRun: true, Width: 600, Height: 400}
}

func (m *Magnets) Specs() []param.Spec {
	return []param.Spec{
		{Key: "strength1", Label: "magnet 1 strength", Min: 0.5, Max: 3, Default: 1},
		{Key: "strength2", Label: "magnet 2 strength", Min: 0.5, Max: 3, Default: 1},
		param.Choice("polarity2", "magnet 2 polarity", South, "N", "S"),
		{Key: "density", Label: "field density", Min: 5, Max: 25, Default: 10},
	}
}

func (m *Magnets) fields() fields {
	return fields{"strength1": &m.Strength1, "strength2": &m.Strength2, "polarity2": &m.Polarity2, "density": &m.Density}
}

func (m *Magnets) GetParams() map[string]float64 { return m.fields().get() }

func (m *Magnets) SetParam(name string, v float64) error { return m.fields().set(name, v) }

func (m *Magnets) Reset() { m.t = 0 }

func (m *Magnets) Step(dt float64) { m.t += dt }

func (m *Magnets) Magnets() [2]Magnet {
	return [2]Magnet{
		{X: 150, Y: 200, Strength: m.Strength1, North: true},
		{X: 450, Y: 200, Strength: m.Strength2, North: int(math.Round(m.Polarity2)) == North},
	}
}

// Repulsive reports whether facing poles match.
func (m *Magnets) Repulsive() bool {
	ms := m.Magnets()
	return ms[0].North == ms[1].North
}

// Force is the relative force k·s1·s2/d².
func (m *Magnets) Force() float64 {
	ms := m.Magnets()
	d := math.Abs(ms[1].X - ms[0].X)
	return magnetForceK * ms[0].Strength * ms[1].Strength / (d * d)
}

// FieldAt sums both magnets' fields.
func (m *Magnets) FieldAt(x, y float64) (float64, float64) {
	var bx, by float64
	for _, mg := range m.Magnets() {
		fx, fy := mg.Field(x, y)
		bx += fx
		by += fy
	}
	return bx, by
}

func (m *Magnets) Readings() []sim.Reading {
	kind := "attraction"
	if m.Repulsive() {
		kind = "repulsion"
	}
	return []sim.Reading{
		{Key: "force", Label: "Force (relative)", Value: m.Force(), Unit: "N"},
		{Key: "interaction", Label: "Interaction", Text: kind},
		{Key: "distance", Label: "Distance", Value: 300, Unit: "px"},
	}
}

func (m *Magnets) Draw(s render.Surface) {
	backdrop(s)
	w, h := s.Size()
	step := math.Max(5, 20-m.Density) * 2
	col := render.Green
	if m.Repulsive() {
		col = render.Red
	}
	for y := step / 2; y < h; y += step {
		for x := step / 2; x < w; x += step {
			bx, by := m.FieldAt(x, y)
			strength := math.Hypot(bx, by) * 1e6
			if strength < 0.01 {
				continue
			}
			l := math.Min(strength*3, step*0.8)
			a := math.Atan2(by, bx)
			s.Line(x, y, x+l*math.Cos(a), y+l*math.Sin(a), col.WithAlpha(uint8(math.Min(60+strength*40, 255))))
		}
	}

	for _, mg := range m.Magnets() {
		mw, mh := 40+mg.Strength*20, 60+mg.Strength*20
		left, right := render.Red, render.Blue
		ln, rn := "N", "S"
		if !mg.North {
			left, right = right, left
			ln, rn = rn, ln
		}
		s.FillRect(mg.X-mw/2, mg.Y-mh/2, mw/2, mh, left)
		s.FillRect(mg.X, mg.Y-mh/2, mw/2, mh, right)
		s.Text(mg.X-mw/4-4, mg.Y+4, ln, render.Text)
		s.Text(mg.X+mw/4-4, mg.Y+4, rn, render.Text)
	}

	ms := m.Magnets()
	ay := 90.0
	x0, x1 := ms[0].X+40, ms[1].X-40
	if m.Repulsive() {
		render.Arrow(s, (x0+x1)/2, ay, x0, ay, 10, col)
		render.Arrow(s, (x0+x1)/2, ay, x1, ay, 10, col)
	} else {
		render.Arrow(s, x0, ay, (x0+x1)/2-5, ay, 10, col)
		render.Arrow(s, x1, ay, (x0+x1)/2+5, ay, 10, col)
	}
	s.Text(20, 30, fmt.Sprintf("Force: %.2f N (relative)", m.Force()), render.Text)
}
