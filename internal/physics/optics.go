package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	Lens = iota
	Mirror
)

const (
	Convex = iota
	Concave
	Flat
)

// Image is the result of the thin lens / mirror equation.
type Image struct {
	Distance      float64
	Magnification float64
	Height        float64
	Real          bool

	// AtInfinity is set when the object sits on the focal point.
	AtInfinity bool
}

// Optics forms the image of an upright object through a thin lens or a
// spherical mirror.
type Optics struct {
	Element  float64
	Shape    float64
	Focal    float64
	Distance float64
	Height   float64

	t float64
}

func NewOptics() *Optics {
	return &Optics{Element: Lens, Shape: Convex, Focal: 100, Distance: 150, Height: 30}
}

func (o *Optics) Info() sim.Info {
	return sim.Info{Name: "geometric-optics", Title: "Geometric Optics", Kind: sim.Static, AutoRun: true, Width: 600, Height: 400}
}

func (o *Optics) Specs() []param.Spec {
	return []param.Spec{
		param.Choice("element", "optical element", Lens, "lens", "mirror"),
		param.Choice("shape", "shape", Convex, "convex", "concave", "flat"),
		{Key: "focal", Label: "focal length", Unit: "px", Min: 10, Max: 200, Default: 100},
		{Key: "distance", Label: "object distance", Unit: "px", Min: 30, Max: 400, Default: 150},
		{Key: "height", Label: "object height", Unit: "px", Min: 10, Max: 50, Default: 30},
	}
}

func (o *Optics) fields() fields {
	return fields{"element": &o.Element, "shape": &o.Shape, "focal": &o.Focal, "distance": &o.Distance, "height": &o.Height}
}

func (o *Optics) GetParams() map[string]float64 { return o.fields().get() }

func (o *Optics) SetParam(name string, v float64) error { return o.fields().set(name, v) }

func (o *Optics) Reset() { o.t = 0 }

func (o *Optics) Step(dt float64) { o.t += dt }

// EffectiveFocal is the signed focal length: converging elements (convex
// lens, concave mirror) are positive, flat ones infinite.
func (o *Optics) EffectiveFocal() float64 {
	switch int(o.Shape) {
	case Flat:
		return math.Inf(1)
	case Concave:
		if int(o.Element) == Mirror {
			return o.Focal
		}
		return -o.Focal
	default:
		if int(o.Element) == Mirror {
			return -o.Focal
		}
		return o.Focal
	}
}

// Image solves 1/di = 1/f - 1/do.
func (o *Optics) Image() Image {
	f := o.EffectiveFocal()
	inv := 1/f - 1/o.Distance
	if math.Abs(inv) < 1e-12 {
		return Image{Distance: math.Inf(1), Magnification: math.Inf(1), Height: math.Inf(1), AtInfinity: true}
	}
	di := 1 / inv
	m := -di / o.Distance
	return Image{Distance: di, Magnification: m, Height: m * o.Height, Real: di > 0}
}

func (o *Optics) Readings() []sim.Reading {
	img := o.Image()
	rs := []sim.Reading{
		{Key: "focal", Label: "Focal length", Value: o.EffectiveFocal(), Unit: "px"},
		{Key: "image_distance", Label: "Image distance", Value: img.Distance, Unit: "px"},
		{Key: "magnification", Label: "Magnification", Value: img.Magnification, Unit: "×"},
		{Key: "image_height", Label: "Image height", Value: img.Height, Unit: "px"},
	}
	var kind string
	switch {
	case img.AtInfinity:
		for i := 1; i < len(rs); i++ {
			rs[i].Text = "∞"
		}
		kind = "no image (object at focus)"
	case img.Real:
		kind = "real, inverted"
	default:
		kind = "virtual, upright"
	}
	if math.IsInf(rs[0].Value, 0) {
		rs[0].Text = "∞"
	}
	return append(rs, sim.Reading{Key: "nature", Label: "Image", Text: kind})
}

func (o *Optics) Draw(s render.Surface) {
	backdrop(s)
	w, h := s.Size()
	cx, cy := w/2, h/2
	const scale = 0.5

	s.Line(0, cy, w, cy, render.Muted)
	if int(o.Element) == Lens {
		s.Line(cx, cy-100, cx, cy+100, render.Cyan)
		switch int(o.Shape) {
		case Convex:
			render.Arrow(s, cx, cy, cx, cy-100, 10, render.Cyan)
			render.Arrow(s, cx, cy, cx, cy+100, 10, render.Cyan)
		case Concave:
			render.Arrow(s, cx, cy-80, cx, cy-100, 10, render.Cyan)
			render.Arrow(s, cx, cy+80, cx, cy+100, 10, render.Cyan)
		}
	} else {
		s.Rect(cx, cy-100, 6, 200, render.Cyan)
	}

	f := o.EffectiveFocal()
	if !math.IsInf(f, 0) {
		for _, x := range []float64{cx - math.Abs(f)*scale, cx + math.Abs(f)*scale} {
			s.FillCircle(x, cy, 4, render.Amber)
		}
		s.Text(cx+math.Abs(f)*scale-4, cy+18, "F", render.Amber)
	}

	ox := cx - o.Distance*scale
	oh := o.Height
	render.Arrow(s, ox, cy, ox, cy-oh, 8, render.Green)

	img := o.Image()
	if img.AtInfinity {
		// parallel rays never meet
		s.Line(ox, cy-oh, cx, cy-oh, render.Amber.WithAlpha(120))
		s.Line(cx, cy-oh, w, cy-oh+(w-cx)*oh/(math.Abs(f)*scale), render.Amber.WithAlpha(120))
		s.Text(20, 30, "Image at infinity", render.Text)
		return
	}

	ix := cx + img.Distance*scale
	if int(o.Element) == Mirror {
		ix = cx - img.Distance*scale
	}
	ih := img.Height
	col := render.Pink
	if !img.Real {
		col = col.WithAlpha(110)
	}
	if math.Abs(ih) < 400 && math.Abs(ix) < 4*w {
		render.Arrow(s, ix, cy, ix, cy-ih, 8, col)
		// principal ray through the optical centre
		s.Line(ox, cy-oh, ix, cy-ih, render.Amber.WithAlpha(120))
	}
	s.Text(20, 30, fmt.Sprintf("di = %.1f px", img.Distance), render.Text)
	s.Text(20, 50, fmt.Sprintf("m = %.2f", img.Magnification), render.Text)
}
