package integrators

import "github.com/wrosendoeng/coneflow/internal/flow"

// Euler is the first-order explicit stepper, kept for accuracy
// comparison against RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f flow.Field, theta float64, y flow.State, dtheta float64) (flow.State, error) {
	dy, err := f.Derive(theta, y)
	if err != nil {
		return nil, err
	}
	result := make(flow.State, len(y))
	for i := range y {
		result[i] = y[i] + dtheta*dy[i]
	}
	return result, nil
}
