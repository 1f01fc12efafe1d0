package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/experiment"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 90, 4)
	want := []float64{0, 30, 60, 90}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Linspace[%d] = %g, want %g", i, got[i], want[i])
		}
	}
	if got := Linspace(5, 9, 1); len(got) != 1 || got[0] != 5 {
		t.Errorf("Linspace n=1 = %v", got)
	}
}

func TestProjectileBestAngle(t *testing.T) {
	g := NewGridSearch([]string{"angle"}, [][]float64{Linspace(15, 75, 5)})
	base := experiment.Config{Simulation: "projectile-motion", Dt: 0.016, Duration: 0.05}

	params, best, err := g.Search(context.Background(), experiment.NewRegistry(), base, Reading("range", true))
	if err != nil {
		t.Fatal(err)
	}
	if params["angle"] != 45 {
		t.Errorf("best angle = %g, want 45", params["angle"])
	}
	if best >= 0 {
		t.Errorf("objective = %g, want negated range", best)
	}
	if g.Evaluated() != 5 {
		t.Errorf("evaluated = %d, want 5", g.Evaluated())
	}
}

func TestGridSkipsRejected(t *testing.T) {
	// 120 is outside the pendulum's angle range
	g := NewGridSearch([]string{"angle", "damping"}, [][]float64{{10, 120}, {0.99, 1}})
	base := experiment.Config{Simulation: "pendulum", Dt: 0.016, Duration: 1}

	params, _, err := g.Search(context.Background(), experiment.NewRegistry(), base, Metric("energy_drift"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Evaluated() != 2 {
		t.Errorf("evaluated = %d, want 2", g.Evaluated())
	}
	if params["damping"] != 1 {
		t.Errorf("least drift at damping %g, want 1", params["damping"])
	}
}

func TestGridNoCandidate(t *testing.T) {
	g := NewGridSearch([]string{"angle"}, [][]float64{{120}})
	base := experiment.Config{Simulation: "pendulum", Dt: 0.016, Duration: 0.1}
	if _, _, err := g.Search(context.Background(), experiment.NewRegistry(), base, Metric("energy_drift")); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("err = %v, want ErrNoCandidate", err)
	}
}
