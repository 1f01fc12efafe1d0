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
	GridSize  = 20
	hotCols   = 3
	coldCols  = 3
	cellPixel = 20.0
)

// Heat relaxes a temperature grid held between a hot left edge and a cold
// right edge. Each step is one Jacobi sweep; no stability bound is placed on
// the conductivity.
type Heat struct {
	Hot          float64
	Cold         float64
	Ambient      float64
	Conductivity float64

	grid, next [GridSize][GridSize]float64
	steps      int
}

func NewHeat() *Heat {
	h := &Heat{Hot: 100, Cold: 0, Ambient: 20, Conductivity: 0.2}
	h.Reset()
	return h
}

func (h *Heat) Info() sim.Info {
	return sim.Info{Name: "heat-transfer", Title: "Heat Transfer", Kind: sim.Euler, Width: 400, Height: 400}
}

func (h *Heat) Specs() []param.Spec {
	return []param.Spec{
		{Key: "hot", Label: "hot temperature", Unit: "°C", Min: 0, Max: 150, Default: 100, LockedWhileRunning: true},
		{Key: "cold", Label: "cold temperature", Unit: "°C", Min: -50, Max: 50, Default: 0, LockedWhileRunning: true},
		{Key: "ambient", Label: "ambient temperature", Unit: "°C", Min: -20, Max: 50, Default: 20, LockedWhileRunning: true},
		{Key: "conductivity", Label: "conductivity", Min: 0.01, Max: 0.5, Default: 0.2},
	}
}

func (h *Heat) fields() fields {
	return fields{"hot": &h.Hot, "cold": &h.Cold, "ambient": &h.Ambient, "conductivity": &h.Conductivity}
}

func (h *Heat) GetParams() map[string]float64 { return h.fields().get() }

func (h *Heat) SetParam(name string, v float64) error { return h.fields().set(name, v) }

func (h *Heat) boundary(i int) (float64, bool) {
	switch {
	case i < hotCols:
		return h.Hot, true
	case i >= GridSize-coldCols:
		return h.Cold, true
	}
	return 0, false
}

func (h *Heat) Reset() {
	for i := range h.grid {
		t, fixed := h.boundary(i)
		if !fixed {
			t = h.Ambient
		}
		for j := range h.grid[i] {
			h.grid[i][j] = t
		}
	}
	h.steps = 0
}

// Step performs one relaxation sweep regardless of dt.
func (h *Heat) Step(float64) {
	for i := 0; i < GridSize; i++ {
		if t, fixed := h.boundary(i); fixed {
			for j := range h.next[i] {
				h.next[i][j] = t
			}
			continue
		}
		for j := 0; j < GridSize; j++ {
			c := h.grid[i][j]
			sum := 0.0
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				ni, nj := i+d[0], j+d[1]
				if ni < 0 || ni >= GridSize || nj < 0 || nj >= GridSize {
					continue
				}
				sum += h.grid[ni][nj] - c
			}
			h.next[i][j] = c + h.Conductivity*sum
		}
	}
	h.grid, h.next = h.next, h.grid
	h.steps++
}

// Temperature returns the cell at column i, row j.
func (h *Heat) Temperature(i, j int) float64 { return h.grid[i][j] }

// Grid returns a copy of the temperatures indexed [column][row].
func (h *Heat) Grid() [GridSize][GridSize]float64 { return h.grid }

func (h *Heat) stats() (mean, lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	n := 0
	for i := hotCols; i < GridSize-coldCols; i++ {
		for _, t := range h.grid[i] {
			mean += t
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
			n++
		}
	}
	return mean / float64(n), lo, hi
}

func (h *Heat) Observe() dynamo.State {
	mean, lo, hi := h.stats()
	return dynamo.State{mean, lo, hi, h.grid[GridSize/2][GridSize/2]}
}

func (h *Heat) Labels() []string { return []string{"mean", "min", "max", "center"} }

func (h *Heat) Readings() []sim.Reading {
	mean, lo, hi := h.stats()
	return []sim.Reading{
		{Key: "mean", Label: "Mean interior", Value: mean, Unit: "°C"},
		{Key: "min", Label: "Coldest interior", Value: lo, Unit: "°C"},
		{Key: "max", Label: "Hottest interior", Value: hi, Unit: "°C"},
		{Key: "center", Label: "Centre", Value: h.grid[GridSize/2][GridSize/2], Unit: "°C"},
		{Key: "gradient", Label: "Gradient", Value: (h.Hot - h.Cold) / (GridSize - 1), Unit: "°C/cell"},
		{Key: "steps", Label: "Sweeps", Value: float64(h.steps)},
	}
}

func (h *Heat) Draw(s render.Surface) {
	s.Clear(render.Background)
	for i := range h.grid {
		for j, t := range h.grid[i] {
			s.FillRect(float64(i)*cellPixel, float64(j)*cellPixel, cellPixel, cellPixel, render.HeatColor(t))
		}
	}
	s.Rect(0, 0, hotCols*cellPixel, GridSize*cellPixel, render.Red)
	s.Rect((GridSize-coldCols)*cellPixel, 0, coldCols*cellPixel, GridSize*cellPixel, render.Blue)
	mean, _, _ := h.stats()
	s.Text(80, 20, fmt.Sprintf("mean %.1f°C", mean), render.Background)
}
