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
	Bohr = iota
	Quantum
)

const (
	rydberg    = 13.6  // eV
	bohrRadius = 0.529 // Å
	hcEVnm     = 1240.0
	maxLevel   = 4
)

// orbit radii in px for levels 1-4 before fitting them into the canvas
var orbitPixels = [maxLevel + 1]float64{0, 50, 200, 450, 800}

// Hydrogen shows the electron of a hydrogen atom at level n, either on a
// Bohr orbit or as a probability cloud.
type Hydrogen struct {
	Level float64
	Model float64

	t float64
}

func NewHydrogen() *Hydrogen {
	return &Hydrogen{Level: 1, Model: Bohr}
}

func (a *Hydrogen) Info() sim.Info {
	return sim.Info{Name: "hydrogen-atom", Title: "Hydrogen Atom", Kind: sim.ClosedForm, AutoRun: true, Width: 500, Height: 420}
}

func (a *Hydrogen) Specs() []param.Spec {
	return []param.Spec{
		{Key: "level", Label: "energy level", Min: 1, Max: maxLevel, Default: 1, Integer: true},
		param.Choice("model", "model", Bohr, "bohr", "quantum"),
	}
}

func (a *Hydrogen) fields() fields {
	return fields{"level": &a.Level, "model": &a.Model}
}

func (a *Hydrogen) GetParams() map[string]float64 { return a.fields().get() }

func (a *Hydrogen) SetParam(name string, v float64) error { return a.fields().set(name, v) }

func (a *Hydrogen) Reset() { a.t = 0 }

func (a *Hydrogen) Step(dt float64) { a.t += dt }

func (a *Hydrogen) n() int {
	n := int(math.Round(a.Level))
	return max(1, min(maxLevel, n))
}

// LevelEnergy is E_n = −13.6/n² eV.
func LevelEnergy(n int) float64 {
	return -rydberg / float64(n*n)
}

// Emission returns the photon energy and wavelength for a drop from level
// from to level to.
func Emission(from, to int) (ev, nm float64) {
	ev = LevelEnergy(from) - LevelEnergy(to)
	if ev <= 0 {
		return 0, 0
	}
	return ev, hcEVnm / ev
}

// ElectronAngle is the orbital angle; higher levels orbit more slowly.
func (a *Hydrogen) ElectronAngle() float64 {
	n := float64(a.n())
	return a.t * 3 / (n * n)
}

func (a *Hydrogen) Observe() dynamo.State {
	th := a.ElectronAngle()
	r := orbitPixels[a.n()]
	return dynamo.State{r * math.Cos(th), r * math.Sin(th)}
}

func (a *Hydrogen) Labels() []string { return []string{"x", "y"} }

func (a *Hydrogen) Readings() []sim.Reading {
	n := a.n()
	rs := []sim.Reading{
		{Key: "level", Label: "Level", Value: float64(n)},
		{Key: "energy", Label: "Energy", Value: LevelEnergy(n), Unit: "eV"},
		{Key: "radius", Label: "Orbit radius", Value: bohrRadius * float64(n*n), Unit: "Å"},
		{Key: "ionization", Label: "Ionization energy", Value: -LevelEnergy(n), Unit: "eV"},
	}
	if n > 1 {
		ev, nm := Emission(n, n-1)
		rs = append(rs,
			sim.Reading{Key: "photon", Label: fmt.Sprintf("Photon %d→%d", n, n-1), Value: ev, Unit: "eV"},
			sim.Reading{Key: "wavelength", Label: "Wavelength", Value: nm, Unit: "nm"},
		)
	}
	return rs
}

func (a *Hydrogen) Draw(s render.Surface) {
	backdrop(s)
	w, h := s.Size()
	cx, cy := w/2, h/2.2
	scale := (math.Min(w, h)/2 - 20) / orbitPixels[maxLevel]
	n := a.n()
	r := orbitPixels[n] * scale

	s.FillCircle(cx, cy, 8, render.Red)
	if int(a.Model) == Quantum {
		for ang := 0.0; ang < 2*math.Pi; ang += math.Pi / 16 {
			for rr := r / 2; rr < r*1.5; rr += math.Max(4, r/8) {
				jitter := math.Sin(a.t*2+ang+rr*0.01) * 10 * scale * 4
				op := math.Max(0, 1-math.Abs(rr-r)/(r/2))
				s.FillCircle(cx+(rr+jitter)*math.Cos(ang), cy+(rr+jitter)*math.Sin(ang), 2, render.Cyan.WithAlpha(uint8(30+150*op)))
			}
		}
	} else {
		for lvl := 1; lvl <= maxLevel; lvl++ {
			c := render.Cyan.WithAlpha(60)
			if lvl == n {
				c = render.Cyan
			}
			lr := orbitPixels[lvl] * scale
			s.Circle(cx, cy, lr, c)
			s.Text(cx+lr+4, cy-4, fmt.Sprintf("n=%d", lvl), c)
		}
		th := a.ElectronAngle()
		for i := 5; i > 0; i-- {
			ta := th - float64(i)*0.1
			s.FillCircle(cx+r*math.Cos(ta), cy+r*math.Sin(ta), 3, render.Amber.WithAlpha(uint8(40*(6-i))))
		}
		s.FillCircle(cx+r*math.Cos(th), cy+r*math.Sin(th), 6, render.Amber)
	}
	s.Text(20, 30, fmt.Sprintf("n = %d   E = %.2f eV", n, LevelEnergy(n)), render.Text)
}
