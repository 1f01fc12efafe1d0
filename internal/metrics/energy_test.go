package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

type spring struct{}

func (spring) Energy(x dynamo.State) float64 { return 0.5*x[0]*x[0] + 0.5*x[1]*x[1] }

type carts struct{}

func (carts) Momentum(x dynamo.State) float64 { return x[0] + x[1] }

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(spring{})

	m.Observe(dynamo.State{1, 0}, 0)
	m.Observe(dynamo.State{0, 1.1}, 0.1)
	m.Observe(dynamo.State{-1, 0}, 0.2)

	expected := 1.21 - 1
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected drift %f, got %f", expected, m.Value())
	}
	if m.Current() != 0.5 {
		t.Errorf("expected current energy 0.5, got %f", m.Current())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentum(t *testing.T) {
	tests := []struct {
		name   string
		states []dynamo.State
		want   float64
	}{
		{"conserved", []dynamo.State{{2, 1}, {1, 2}, {3, 0}}, 0},
		{"relative", []dynamo.State{{2, 2}, {2, 3}}, 0.25},
		{"absolute from rest", []dynamo.State{{1, -1}, {1, -0.5}}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMomentum(carts{})
			for i, x := range tt.states {
				m.Observe(x, float64(i))
			}
			if math.Abs(m.Value()-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, m.Value())
			}
		})
	}
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	if s.Value() != 1 {
		t.Error("expected full stability before any sample")
	}
	s.Observe(dynamo.State{1, 2}, 0)
	s.Observe(dynamo.State{1, 20}, 1)
	s.Observe(dynamo.State{math.NaN(), 0}, 2)
	s.Observe(dynamo.State{0, 0}, 3)
	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestFor(t *testing.T) {
	names := func(ms []Metric) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Name())
		}
		return out
	}
	got := names(For(spring{}))
	if len(got) != 2 || got[0] != "energy_drift" || got[1] != "stability" {
		t.Errorf("spring metrics = %v", got)
	}
	got = names(For(carts{}))
	if len(got) != 2 || got[0] != "momentum_drift" {
		t.Errorf("carts metrics = %v", got)
	}
}
