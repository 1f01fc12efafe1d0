package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/sim"
)

var catalog = map[string]func() sim.Model{
	"pendulum":               func() sim.Model { return NewPendulum() },
	"pendulum-lab":           func() sim.Model { return NewPendulumLab() },
	"simple-harmonic-motion": func() sim.Model { return NewHarmonicMotion() },
	"energy-conservation":    func() sim.Model { return NewEnergyConservation() },
	"collisions":             func() sim.Model { return NewCollisions() },
	"projectile-motion":      func() sim.Model { return NewProjectile() },
	"light-refraction":       func() sim.Model { return NewRefraction() },
	"geometric-optics":       func() sim.Model { return NewOptics() },
	"heat-transfer":          func() sim.Model { return NewHeat() },
	"electric-circuit":       func() sim.Model { return NewCircuit() },
	"ohms-law":               func() sim.Model { return NewOhmsLaw() },
	"wire-resistance":        func() sim.Model { return NewWire() },
	"magnets":                func() sim.Model { return NewMagnets() },
	"sound-waves":            func() sim.Model { return NewSound() },
	"wave-interference":      func() sim.Model { return NewInterference() },
	"doppler-effect":         func() sim.Model { return NewDoppler() },
	"hydrogen-atom":          func() sim.Model { return NewHydrogen() },
}

// New builds a fresh model by name.
func New(name string) (sim.Model, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown simulation: %s", name)
	}
	return fn(), nil
}

// Constructor returns the factory for name, or nil.
func Constructor(name string) func() sim.Model {
	return catalog[name]
}

// Names lists every simulation, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
