// Package integrators provides fixed-step explicit steppers over the
// conical-flow state and the driver loop that turns them into an
// integration trace.
package integrators

import (
	"fmt"

	"github.com/wrosendoeng/coneflow/internal/flow"
)

// Stepper advances the state by one fixed step of the independent
// variable.
type Stepper interface {
	Name() string
	Step(f flow.Field, theta float64, y flow.State, dtheta float64) (flow.State, error)
}

// StopFunc inspects the newest (theta, state) pair; returning true
// ends the integration successfully.
type StopFunc func(theta float64, y flow.State) bool

// Integrate runs the stepper from (theta0, y0) with the signed step
// dtheta until the stopping predicate holds, recording every snapshot.
//
// Failure modes, all annotated with the failing step index and theta:
//   - a field evaluation error is propagated unchanged (never clamped),
//   - a NaN/Inf component or a speed outside (0, 1) fails with
//     flow.ErrInvalidState,
//   - exhausting maxSteps without the predicate fails with
//     flow.ErrNonConvergence.
//
// The loop is deterministic: identical inputs yield identical traces.
func Integrate(st Stepper, f flow.Field, theta0 float64, y0 flow.State, dtheta float64, maxSteps int, stop StopFunc) (*flow.Trace, error) {
	if dtheta == 0 {
		return nil, fmt.Errorf("%w: step size must be non-zero", flow.ErrInvalidConfiguration)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("%w: step budget must be positive", flow.ErrInvalidConfiguration)
	}
	if err := checkState(y0); err != nil {
		return nil, &flow.StepError{Step: 0, Theta: theta0, Wrapped: err}
	}

	tr := &flow.Trace{
		Thetas: make([]float64, 0, maxSteps+1),
		States: make([]flow.State, 0, maxSteps+1),
	}

	theta := theta0
	y := y0.Clone()
	tr.Append(theta, y)
	if stop != nil && stop(theta, y) {
		return tr, nil
	}

	for i := 0; i < maxSteps; i++ {
		next, err := st.Step(f, theta, y, dtheta)
		if err != nil {
			return tr, &flow.StepError{Step: i, Theta: theta, Wrapped: err}
		}
		if err := checkState(next); err != nil {
			return tr, &flow.StepError{Step: i, Theta: theta, Wrapped: err}
		}

		theta += dtheta
		y = next
		tr.Append(theta, y)

		if stop != nil && stop(theta, y) {
			return tr, nil
		}
	}

	return tr, fmt.Errorf("%w: step budget %d exhausted at theta=%.6f rad", flow.ErrNonConvergence, maxSteps, theta)
}

// checkState enforces the energy-equation bound: every component
// finite and the non-dimensional speed strictly inside (0, 1).
func checkState(y flow.State) error {
	if !y.IsValid() {
		return fmt.Errorf("%w: NaN or Inf component", flow.ErrInvalidState)
	}
	if v := y.Speed(); v <= 0 || v >= flow.MaxSpeed {
		return fmt.Errorf("%w: speed %.6f outside (0, 1)", flow.ErrInvalidState, v)
	}
	return nil
}
