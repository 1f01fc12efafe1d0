package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/render"
)

// Integrated models evolve through a pluggable integrator.
type Integrated interface {
	SetIntegrator(i dynamo.Integrator)
}

type stepper struct {
	integ dynamo.Integrator
}

func (s *stepper) SetIntegrator(i dynamo.Integrator) { s.integ = i }

func (s *stepper) step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	if s.integ == nil {
		s.integ = integrators.NewSemiImplicitEuler()
	}
	return s.integ.Step(sys, x, t, dt)
}

// fields maps parameter keys onto model fields for GetParams/SetParam.
type fields map[string]*float64

func (f fields) get() map[string]float64 {
	out := make(map[string]float64, len(f))
	for k, p := range f {
		out[k] = *p
	}
	return out
}

func (f fields) set(name string, v float64) error {
	p, ok := f[name]
	if !ok {
		return dynamo.UnknownParam(name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dynamo.ErrParameterBounds
	}
	*p = v
	return nil
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

func backdrop(s render.Surface) {
	s.Clear(render.Background)
	render.GridLines(s, 40)
}

// ring keeps the most recent n values.
type ring[T any] struct {
	buf  []T
	next int
	full bool
}

func newRing[T any](n int) *ring[T] { return &ring[T]{buf: make([]T, n)} }

func (r *ring[T]) push(v T) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring[T]) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// items returns the values oldest first.
func (r *ring[T]) items() []T {
	if !r.full {
		return append([]T(nil), r.buf[:r.next]...)
	}
	out := make([]T, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

func (r *ring[T]) last() (T, bool) {
	var zero T
	if r.len() == 0 {
		return zero, false
	}
	return r.buf[(r.next-1+len(r.buf))%len(r.buf)], true
}

func (r *ring[T]) reset() {
	r.next, r.full = 0, false
}
