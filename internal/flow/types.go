package flow

import (
	"fmt"
	"math"
)

// State is the conical-flow ODE state vector: the non-dimensional
// radial and ray-tangential velocity components, normalized by the
// maximum (vacuum) speed. The polar ray angle theta is the independent
// variable and is carried alongside the state, not inside it.
type State []float64

const (
	// VR indexes the radial velocity component.
	VR = 0
	// VT indexes the tangential velocity component.
	VT = 1
)

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Speed returns the non-dimensional total speed sqrt(Vr^2 + Vt^2).
// Physical states keep Speed strictly inside (0, 1).
func (s State) Speed() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Field is the ODE right-hand side dY/dtheta = f(theta, Y). Evaluation
// can fail near the limit line, so the derivative carries an error.
type Field interface {
	Derive(theta float64, y State) (State, error)
}

// FieldFunc adapts a plain function to the Field interface.
type FieldFunc func(theta float64, y State) (State, error)

func (f FieldFunc) Derive(theta float64, y State) (State, error) {
	return f(theta, y)
}

// FreeStream holds the upstream flow configuration for an oblique
// shock: free-stream Mach number, wave angle (radians, measured from
// the free-stream direction) and ratio of specific heats. It is a
// value type threaded explicitly through every solver call.
type FreeStream struct {
	Mach       float64
	ShockAngle float64
	Gamma      float64
}

// MachAngle returns asin(1/M), the weak-shock limit of the wave angle.
func (fs FreeStream) MachAngle() float64 {
	return math.Asin(1 / fs.Mach)
}

// Validate checks the physical admissibility constraints: M > 1,
// gamma > 1 and Mach angle < shock angle < pi/2.
func (fs FreeStream) Validate() error {
	if fs.Mach <= 1 {
		return fmt.Errorf("%w: free-stream Mach %g is not supersonic", ErrInvalidConfiguration, fs.Mach)
	}
	if fs.Gamma <= 1 {
		return fmt.Errorf("%w: specific-heat ratio %g must exceed 1", ErrInvalidConfiguration, fs.Gamma)
	}
	if fs.ShockAngle >= math.Pi/2 {
		return fmt.Errorf("%w: shock angle %g rad is not below pi/2", ErrInvalidConfiguration, fs.ShockAngle)
	}
	if mu := fs.MachAngle(); fs.ShockAngle <= mu {
		return fmt.Errorf("%w: shock angle %g rad is at or below the Mach angle %g rad", ErrInvalidConfiguration, fs.ShockAngle, mu)
	}
	return nil
}

// Trace is the ordered record of one integration: parallel slices of
// ray angles and state snapshots. It is read-only once produced.
type Trace struct {
	Thetas []float64
	States []State
}

func (tr *Trace) Len() int {
	return len(tr.Thetas)
}

// Last returns the final (theta, state) pair of the trace.
func (tr *Trace) Last() (float64, State) {
	n := len(tr.Thetas)
	if n == 0 {
		return 0, nil
	}
	return tr.Thetas[n-1], tr.States[n-1]
}

// Append records one integration step. The state is cloned so later
// steps cannot alias earlier snapshots.
func (tr *Trace) Append(theta float64, y State) {
	tr.Thetas = append(tr.Thetas, theta)
	tr.States = append(tr.States, y.Clone())
}

// LocalMach recovers the local Mach number from a non-dimensional
// speed via the energy equation v = (2/((gamma-1)M^2) + 1)^(-1/2).
func LocalMach(speed, gamma float64) float64 {
	return math.Sqrt(2 / ((gamma - 1) * (1/(speed*speed) - 1)))
}

// MaxSpeed is the upper bound on sqrt(Vr^2+Vt^2) in units where the
// critical bound of the energy equation is 2/(gamma-1)+1; with the
// vacuum-speed normalization used here it is exactly 1.
const MaxSpeed = 1.0
