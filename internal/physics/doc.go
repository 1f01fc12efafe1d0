// Package physics provides the gallery's simulation models.
//
// Every model implements [sim.Model]: it declares its parameters, keeps its
// own mutable state, advances that state once per frame and draws it onto a
// [render.Surface]. Models evolve in one of three ways:
//
//   - static: readings are pure functions of the parameters ([Refraction],
//     [Optics], [OhmsLaw], [Circuit], [Wire], [Magnets], [Doppler])
//   - closed form: state is a function of elapsed time ([HarmonicMotion],
//     [Sound], [Interference], [Hydrogen])
//   - integrated: one integrator step per frame ([Pendulum], [PendulumLab],
//     [EnergyConservation], [Projectile], [Collisions], [Heat])
//
// Integrated models that describe an ODE also implement [dynamo.System] and
// [dynamo.Hamiltonian], so their integrator can be swapped and their energy
// drift measured:
//
//	p := physics.NewPendulum()
//	p.SetIntegrator(integrators.NewRK4())
//	e0 := p.Energy(p.Observe())
package physics
