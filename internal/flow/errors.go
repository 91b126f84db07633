package flow

import (
	"errors"
	"fmt"
)

// Domain errors for the conical-flow solver.
var (
	// ErrInvalidConfiguration indicates an unphysical free-stream setup:
	// subsonic Mach, gamma <= 1, or a wave angle outside (Mach angle, pi/2).
	ErrInvalidConfiguration = errors.New("flow: invalid configuration")

	// ErrSingularity indicates the Taylor-Maccoll denominator vanished
	// (limit line) or cot(theta) was evaluated at theta = 0.
	ErrSingularity = errors.New("flow: field singularity")

	// ErrNonConvergence indicates an exhausted step or iteration budget.
	ErrNonConvergence = errors.New("flow: failed to converge")

	// ErrDerivativeSingularity indicates a numerically zero finite-difference
	// derivative during Newton-Raphson.
	ErrDerivativeSingularity = errors.New("flow: residual derivative is singular")

	// ErrInvalidState indicates NaN/Inf components or a speed outside the
	// energy-equation bound.
	ErrInvalidState = errors.New("flow: invalid state")
)

// StepError annotates an integration failure with the step index and
// ray angle at which it occurred.
type StepError struct {
	Step    int
	Theta   float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (theta=%.6f rad): %v", e.Step, e.Theta, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
