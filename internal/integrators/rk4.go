package integrators

import "github.com/wrosendoeng/coneflow/internal/flow"

// RK4 is the classical explicit 4th-order Runge-Kutta stepper with a
// fixed, signed step. Steppers reuse scratch buffers and are not safe
// for concurrent use; create one per goroutine.
type RK4 struct {
	k1, k2, k3, k4 flow.State
	scratch        flow.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(flow.State, n)
		r.k2 = make(flow.State, n)
		r.k3 = make(flow.State, n)
		r.k4 = make(flow.State, n)
		r.scratch = make(flow.State, n)
	}
}

// Step advances y by one step of size dtheta. A field evaluation error
// at any of the four stages aborts the step.
func (r *RK4) Step(f flow.Field, theta float64, y flow.State, dtheta float64) (flow.State, error) {
	n := len(y)
	r.ensureScratch(n)

	k1, err := f.Derive(theta, y)
	if err != nil {
		return nil, err
	}
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dtheta*0.5*r.k1[i]
	}
	k2, err := f.Derive(theta+dtheta*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dtheta*0.5*r.k2[i]
	}
	k3, err := f.Derive(theta+dtheta*0.5, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dtheta*r.k3[i]
	}
	k4, err := f.Derive(theta+dtheta, r.scratch)
	if err != nil {
		return nil, err
	}
	copy(r.k4, k4)

	result := make(flow.State, n)
	dt6 := dtheta / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result, nil
}
