// Package flow provides the core value types for the conical
// shock-wave solver:
//
//   - [FreeStream]: upstream Mach number, wave angle and specific-heat ratio
//   - [State]: non-dimensional (Vr, Vtheta) velocity vector along a ray
//   - [Field]: ODE right-hand side dY/dtheta = f(theta, Y)
//   - [Trace]: ordered record of one integration
//
// All types are plain values with no hidden shared state; every solver
// component takes them as explicit inputs and returns new values, so
// independent solves may run concurrently without locking.
package flow
