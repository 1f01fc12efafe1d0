// Package sim drives a single simulation view: it gates parameter commits,
// tracks the running flag and elapsed time, and advances the model once per
// animation frame.
package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
)

// Kind is how a model's state evolves between frames.
type Kind int

const (
	// Static views only animate decoration; every reading is a pure function
	// of the parameters.
	Static Kind = iota
	// ClosedForm views compute their state from elapsed time.
	ClosedForm
	// Euler views integrate their state one step per frame.
	Euler
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case ClosedForm:
		return "closed-form"
	case Euler:
		return "euler"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Info struct {
	Name  string
	Title string
	Kind  Kind

	// AutoRun views start running as soon as the session is created.
	AutoRun bool

	// Width and Height are the logical canvas size Draw paints into.
	Width, Height float64
}

type Reading struct {
	Key   string
	Label string
	Value float64
	Unit  string

	// Text replaces the formatted value for distinguished states such as
	// an infinite image distance or total internal reflection.
	Text string
}

func (r Reading) String() string {
	return r.Label + ": " + r.Display()
}

// Display renders the value with its unit.
func (r Reading) Display() string {
	if r.Text != "" {
		return r.Text
	}
	var s string
	switch {
	case math.IsInf(r.Value, 0):
		s = "∞"
	case math.Abs(r.Value) >= 1e4 || (r.Value != 0 && math.Abs(r.Value) < 1e-2):
		s = fmt.Sprintf("%.3g", r.Value)
	default:
		s = fmt.Sprintf("%.2f", r.Value)
	}
	if r.Unit != "" {
		s += " " + r.Unit
	}
	return s
}

// Model is one simulation: its parameters, its mutable state and a renderer
// that reads both.
type Model interface {
	dynamo.Configurable

	Info() Info
	Specs() []param.Spec

	// Reset reinitializes the state from the current parameters.
	Reset()

	// Step advances the state by dt seconds.
	Step(dt float64)

	// Readings recomputes the displayed quantities from the current state.
	Readings() []Reading

	// Draw paints the current state. It must not mutate the model.
	Draw(s render.Surface)
}

// Observable models expose a state vector for recording.
type Observable interface {
	Observe() dynamo.State
	Labels() []string
}

// Finisher models reach a terminal state, after which the session pauses.
type Finisher interface {
	Finished() bool
}

// Find returns the reading with the given key.
func Find(rs []Reading, key string) (Reading, bool) {
	for _, r := range rs {
		if r.Key == key {
			return r, true
		}
	}
	return Reading{}, false
}
