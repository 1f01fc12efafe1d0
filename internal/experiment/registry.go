package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

type Registry struct {
	models      map[string]func() sim.Model
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() sim.Model),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	for _, name := range physics.Names() {
		r.models[name] = physics.Constructor(name)
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["semi-implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	return r
}

func (r *Registry) GetModel(name string) (sim.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown simulation: %s", name)
	}
	return fn(), nil
}

// Constructor returns the factory for name, for callers that build several
// independent copies.
func (r *Registry) Constructor(name string) (func() sim.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown simulation: %s", name)
	}
	return fn, nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
