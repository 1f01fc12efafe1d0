// Package dynamo provides the numeric primitives shared by every simulation
// in the gallery.
//
//   - [State]: flat vector of physical state
//   - [System]: ODE form dX/dt = f(X, t) used by the integrators
//   - [Integrator]: one explicit step of a System
//   - [Hamiltonian]: models that can report total mechanical energy
//   - [Configurable]: named float parameters pushed in by a session
//
// Time is advanced in frames of [FrameDt] seconds; wall-clock loops clamp
// their step to [MaxFrameDt].
package dynamo
