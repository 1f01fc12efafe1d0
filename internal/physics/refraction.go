package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

// Refraction applies Snell's law at a flat boundary between two media.
type Refraction struct {
	Incident float64
	N1, N2   float64

	t float64
}

func NewRefraction() *Refraction {
	return &Refraction{Incident: 30, N1: 1.0, N2: 1.5}
}

func (r *Refraction) Info() sim.Info {
	return sim.Info{Name: "light-refraction", Title: "Light Refraction", Kind: sim.Static, AutoRun: true, Width: 500, Height: 500}
}

func (r *Refraction) Specs() []param.Spec {
	return []param.Spec{
		{Key: "incident", Label: "incident angle", Unit: "°", Min: 0, Max: 89, Default: 30},
		{Key: "n1", Label: "refractive index 1", Min: 1, Max: 3, Default: 1.0},
		{Key: "n2", Label: "refractive index 2", Min: 1, Max: 3, Default: 1.5},
	}
}

func (r *Refraction) fields() fields {
	return fields{"incident": &r.Incident, "n1": &r.N1, "n2": &r.N2}
}

func (r *Refraction) GetParams() map[string]float64 { return r.fields().get() }

func (r *Refraction) SetParam(name string, v float64) error { return r.fields().set(name, v) }

func (r *Refraction) Reset() { r.t = 0 }

func (r *Refraction) Step(dt float64) { r.t += dt }

// Refracted returns the refracted angle in degrees, or ok=false under total
// internal reflection.
func (r *Refraction) Refracted() (angle float64, ok bool) {
	s := r.N1 * math.Sin(rad(r.Incident)) / r.N2
	if s > 1 {
		return 0, false
	}
	return deg(math.Asin(s)), true
}

// CriticalAngle is defined only when light passes into a less dense medium.
func (r *Refraction) CriticalAngle() (float64, bool) {
	if r.N2 >= r.N1 {
		return 0, false
	}
	return deg(math.Asin(r.N2 / r.N1)), true
}

func (r *Refraction) Readings() []sim.Reading {
	rs := []sim.Reading{{Key: "incident", Label: "Incident angle", Value: r.Incident, Unit: "°"}}
	if a, ok := r.Refracted(); ok {
		rs = append(rs, sim.Reading{Key: "refracted", Label: "Refracted angle", Value: a, Unit: "°"})
	} else {
		rs = append(rs, sim.Reading{Key: "refracted", Label: "Refracted angle", Text: "total internal reflection"})
	}
	if c, ok := r.CriticalAngle(); ok {
		rs = append(rs, sim.Reading{Key: "critical", Label: "Critical angle", Value: c, Unit: "°"})
	}
	rs = append(rs, sim.Reading{Key: "reflected", Label: "Reflected angle", Value: r.Incident, Unit: "°"})
	return rs
}

func (r *Refraction) Draw(s render.Surface) {
	w, h := s.Size()
	s.Clear(render.Background)
	iy := h / 2
	s.FillRect(0, iy, w, h-iy, render.Blue.WithAlpha(uint8(math.Min(40*r.N2, 160))))
	s.FillRect(0, 0, w, iy, render.Blue.WithAlpha(uint8(math.Min(40*(r.N1-1), 160))))
	s.Line(0, iy, w, iy, render.Cyan)
	cx := w / 2
	s.Line(cx, iy-180, cx, iy+180, render.Muted)

	const ray = 200.0
	t1 := rad(r.Incident)
	s.Line(cx-ray*math.Sin(t1), iy-ray*math.Cos(t1), cx, iy, render.Amber)
	s.FillCircle(cx, iy, 6, render.Amber)

	if a, ok := r.Refracted(); ok {
		t2 := rad(a)
		s.Line(cx, iy, cx+ray*math.Sin(t2), iy+ray*math.Cos(t2), render.Green)
		s.Line(cx, iy, cx+ray*0.6*math.Sin(t1), iy-ray*0.6*math.Cos(t1), render.Amber.WithAlpha(70))
		s.Text(20, 50, fmt.Sprintf("θ2 = %.2f°", a), render.Text)
	} else {
		s.Line(cx, iy, cx+ray*math.Sin(t1), iy-ray*math.Cos(t1), render.Red)
		s.Text(20, 50, "Total internal reflection", render.Red)
	}
	s.Text(20, 30, fmt.Sprintf("θ1 = %.1f°", r.Incident), render.Text)
	if c, ok := r.CriticalAngle(); ok {
		s.Text(20, 70, fmt.Sprintf("Critical angle: %.1f°", c), render.Text)
	}
	s.Text(20, iy-10, fmt.Sprintf("n1 = %.2f", r.N1), render.Muted)
	s.Text(20, iy+20, fmt.Sprintf("n2 = %.2f", r.N2), render.Muted)
}
