package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const interferenceWidth = 600.0

// Interference superposes two travelling sine waves.
type Interference struct {
	F1, F2 float64
	A1, A2 float64
	Phase  float64

	t float64
}

func NewInterference() *Interference {
	return &Interference{F1: 1, F2: 1, A1: 30, A2: 30}
}

func (w *Interference) Info() sim.Info {
	return sim.Info{Name: "wave-interference", Title: "Wave Interference", Kind: sim.ClosedForm, AutoRun: true, Width: interferenceWidth, Height: 400}
}

func (w *Interference) Specs() []param.Spec {
	return []param.Spec{
		{Key: "f1", Label: "frequency 1", Unit: "Hz", Min: 0.5, Max: 3, Default: 1},
		{Key: "f2", Label: "frequency 2", Unit: "Hz", Min: 0.5, Max: 3, Default: 1},
		{Key: "a1", Label: "amplitude 1", Unit: "px", Min: 10, Max: 60, Default: 30},
		{Key: "a2", Label: "amplitude 2", Unit: "px", Min: 10, Max: 60, Default: 30},
		{Key: "phase", Label: "phase difference", Unit: "rad", Min: 0, Max: 2 * math.Pi, Default: 0},
	}
}

func (w *Interference) fields() fields {
	return fields{"f1": &w.F1, "f2": &w.F2, "a1": &w.A1, "a2": &w.A2, "phase": &w.Phase}
}

func (w *Interference) GetParams() map[string]float64 { return w.fields().get() }

func (w *Interference) SetParam(name string, v float64) error { return w.fields().set(name, v) }

func (w *Interference) Reset() { w.t = 0 }

func (w *Interference) Step(dt float64) { w.t += dt }

// Waves returns both components at canvas position x and time t.
func (w *Interference) Waves(x, t float64) (y1, y2 float64) {
	k := x / interferenceWidth * 4 * math.Pi
	y1 = w.A1 * math.Sin(k*w.F1-2*math.Pi*w.F1*t)
	y2 = w.A2 * math.Sin(k*w.F2-2*math.Pi*w.F2*t+w.Phase)
	return y1, y2
}

func (w *Interference) At(x, t float64) float64 {
	y1, y2 := w.Waves(x, t)
	return y1 + y2
}

// Classify names the interference for equal frequencies from the phase
// difference; unequal frequencies beat.
func (w *Interference) Classify() string {
	if math.Abs(w.F1-w.F2) > 1e-9 {
		return "beats"
	}
	d := math.Mod(w.Phase, 2*math.Pi)
	switch {
	case d < 0.2*math.Pi || d > 1.8*math.Pi:
		return "constructive"
	case math.Abs(d-math.Pi) < 0.2*math.Pi:
		return "destructive"
	}
	return "partial"
}

// ResultAmplitude is the amplitude of the sum for equal frequencies.
func (w *Interference) ResultAmplitude() float64 {
	if math.Abs(w.F1-w.F2) > 1e-9 {
		return w.A1 + w.A2
	}
	return math.Sqrt(w.A1*w.A1 + w.A2*w.A2 + 2*w.A1*w.A2*math.Cos(w.Phase))
}

func (w *Interference) Observe() dynamo.State {
	y1, y2 := w.Waves(interferenceWidth/2, w.t)
	return dynamo.State{y1, y2, y1 + y2}
}

func (w *Interference) Labels() []string { return []string{"y1", "y2", "sum"} }

func (w *Interference) Readings() []sim.Reading {
	return []sim.Reading{
		{Key: "amplitude", Label: "Resulting amplitude", Value: w.ResultAmplitude(), Unit: "px"},
		{Key: "phase", Label: "Phase difference", Value: deg(w.Phase), Unit: "°"},
		{Key: "beat", Label: "Beat frequency", Value: math.Abs(w.F1 - w.F2), Unit: "Hz"},
		{Key: "type", Label: "Interference", Text: w.Classify()},
	}
}

func (w *Interference) Draw(s render.Surface) {
	backdrop(s)
	width, h := s.Size()
	rows := []float64{h / 5, 2 * h / 5, 3.3 * h / 5}
	var xs []float64
	var y1s, y2s, sums []float64
	for x := 0.0; x <= width; x += 2 {
		y1, y2 := w.Waves(x, w.t)
		xs = append(xs, x)
		y1s = append(y1s, rows[0]+y1*0.6)
		y2s = append(y2s, rows[1]+y2*0.6)
		sums = append(sums, rows[2]+(y1+y2)*0.6)
	}
	for _, r := range rows {
		s.Line(0, r, width, r, render.Muted.WithAlpha(80))
	}
	render.Polyline(s, xs, y1s, render.Blue)
	render.Polyline(s, xs, y2s, render.Pink)
	render.Polyline(s, xs, sums, render.Amber)

	c := render.Green
	if w.Classify() == "destructive" {
		c = render.Red
	}
	s.Text(20, 25, fmt.Sprintf("Wave 1: f = %.2f, A = %.0f", w.F1, w.A1), render.Text)
	s.Text(20, 45, fmt.Sprintf("Wave 2: f = %.2f, A = %.0f", w.F2, w.A2), render.Text)
	s.Text(20, h-20, "Interference: "+w.Classify(), c)
}
