package integrators

import (
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	sys := &oscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, dynamo.FrameDt)
	}
}

func BenchmarkEuler(b *testing.B)        { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkSemiImplicit(b *testing.B) { benchmarkIntegrator(b, NewSemiImplicitEuler()) }
func BenchmarkRK4(b *testing.B)          { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkVerlet(b *testing.B)       { benchmarkIntegrator(b, NewVerlet()) }
