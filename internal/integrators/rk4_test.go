package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

// oscillator is x'' = -x laid out as [x, v].
type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

func (o *oscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK4Accuracy(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerSingleStep(t *testing.T) {
	x := NewEuler().Step(&oscillator{}, dynamo.State{1, 0}, 0, 0.1)
	if x[0] != 1 || math.Abs(x[1]+0.1) > 1e-12 {
		t.Errorf("unexpected euler step %v", x)
	}
}

func TestSemiImplicitEulerUsesUpdatedVelocity(t *testing.T) {
	x := NewSemiImplicitEuler().Step(&oscillator{}, dynamo.State{1, 0}, 0, 0.1)
	// v = 0 - 1*0.1, x = 1 + (-0.1)*0.1
	if math.Abs(x[1]+0.1) > 1e-12 || math.Abs(x[0]-0.99) > 1e-12 {
		t.Errorf("unexpected semi-implicit step %v", x)
	}
}

func TestEnergyBehaviour(t *testing.T) {
	sys := &oscillator{}
	e0 := sys.Energy(dynamo.State{1, 0})

	tests := []struct {
		name     string
		integ    dynamo.Integrator
		maxDrift float64
	}{
		{"semi-implicit", NewSemiImplicitEuler(), 0.02},
		{"verlet", NewVerlet(), 1e-3},
		{"rk4", NewRK4(), 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := dynamo.State{1, 0}
			for i := 0; i < 5000; i++ {
				x = tt.integ.Step(sys, x, float64(i)*0.016, 0.016)
			}
			drift := math.Abs(sys.Energy(x)-e0) / e0
			if drift > tt.maxDrift {
				t.Errorf("energy drift %.2e exceeds %.2e", drift, tt.maxDrift)
			}
		})
	}

	x := dynamo.State{1, 0}
	euler := NewEuler()
	for i := 0; i < 5000; i++ {
		x = euler.Step(sys, x, 0, 0.016)
	}
	if sys.Energy(x) <= e0 {
		t.Error("explicit euler is expected to gain energy on an oscillator")
	}
}
