package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// Resistivities in Ω·mm²/m.
var resistivity = []float64{0.0172, 0.0265, 0.49}

var materials = []string{"copper", "aluminum", "constantan"}

// Wire computes R = ρL/A for a round conductor.
type Wire struct {
	Length   float64
	Diameter float64
	Material float64

	t float64
}

func NewWire() *Wire {
	return &Wire{Length: 10, Diameter: 2}
}

func (w *Wire) Info() sim.Info {
	return sim.Info{Name: "wire-resistance", Title: "Wire Resistance", Kind: sim.Static, AutoRun: true, Width: 500, Height: 420}
}

func (w *Wire) Specs() []param.Spec {
	return []param.Spec{
		{Key: "length", Label: "length", Unit: "m", Min: 1, Max: 100, Default: 10},
		{Key: "diameter", Label: "diameter", Unit: "mm", Min: 0.5, Max: 10, Default: 2},
		param.Choice("material", "material", 0, materials...),
	}
}

func (w *Wire) fields() fields {
	return fields{"length": &w.Length, "diameter": &w.Diameter, "material": &w.Material}
}

func (w *Wire) GetParams() map[string]float64 { return w.fields().get() }

func (w *Wire) SetParam(name string, v float64) error { return w.fields().set(name, v) }

func (w *Wire) Reset() { w.t = 0 }

func (w *Wire) Step(dt float64) { w.t += dt }

func (w *Wire) Resistivity() float64 {
	i := int(math.Round(w.Material))
	if i < 0 || i >= len(resistivity) {
		i = 0
	}
	return resistivity[i]
}

// Area is the cross-section in mm².
func (w *Wire) Area() float64 {
	r := w.Diameter / 2
	return math.Pi * r * r
}

func (w *Wire) Resistance() float64 { return w.Resistivity() * w.Length / w.Area() }

func (w *Wire) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "resistance", Label: "Resistance", Value: w.Resistance(), Unit: "Ω"},
		{Key: "area", Label: "Cross-section", Value: w.Area(), Unit: "mm²"},
		{Key: "resistivity", Label: "Resistivity", Value: w.Resistivity(), Unit: "Ω·mm²/m"},
	}
}

func (w *Wire) Draw(s render.Surface) {
	backdrop(s)
	colors := []render.Color{render.RGB(0xb8, 0x73, 0x33), render.RGB(0xc0, 0xc0, 0xc0), render.RGB(0x8b, 0x73, 0x55)}
	c := colors[int(math.Round(w.Material))%len(colors)]

	length := 60 + w.Length*3.4
	thick := 2 + w.Diameter*3
	x0 := (500 - length) / 2
	s.FillRect(x0, 200-thick/2, length, thick, c)
	s.Rect(x0, 200-thick/2, length, thick, render.Text)

	// cross-section
	s.Circle(250, 320, w.Diameter*5+4, render.Muted)
	s.FillCircle(250, 320, w.Diameter*5, c)

	s.Text(20, 30, fmt.Sprintf("R = ρL/A = %.4f Ω", w.Resistance()), render.Text)
	s.Text(20, 50, fmt.Sprintf("%s, %.1f m, Ø %.1f mm", materials[int(math.Round(w.Material))%len(materials)], w.Length, w.Diameter), render.Muted)
}
