// Package metrics summarizes a recorded run with scalar quality measures.
package metrics

import (
	"github.com/san-kum/physlab/internal/dynamo"
)

// Metric observes every recorded frame and reports one value at the end.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// MomentumReporter is implemented by models with a conserved total momentum.
type MomentumReporter interface {
	Momentum(x dynamo.State) float64
}

// DefaultBound is the state magnitude past which a frame counts as unstable.
const DefaultBound = 1e6

// For returns the metrics that apply to model.
func For(model any) []Metric {
	var ms []Metric
	if h, ok := model.(dynamo.Hamiltonian); ok {
		ms = append(ms, NewEnergyDrift(h))
	}
	if p, ok := model.(MomentumReporter); ok {
		ms = append(ms, NewMomentum(p))
	}
	return append(ms, NewStability(DefaultBound))
}
